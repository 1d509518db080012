package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// ToInt64 converts integer types to int64 using explicit type switching.
// Floats are accepted only when they hold a whole number.
func ToInt64(val any) (int64, bool) {
	switch v := val.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int16:
		return int64(v), true
	case int8:
		return int64(v), true
	case uint:
		return int64(v), true
	case uint64:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint8:
		return int64(v), true
	case float64:
		if v == float64(int64(v)) {
			return int64(v), true
		}
		return 0, false
	case float32:
		if v == float32(int64(v)) {
			return int64(v), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// ToFloat64 converts numeric types to float64.
func ToFloat64(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	default:
		if i, ok := ToInt64(v); ok {
			return float64(i), true
		}
		return 0, false
	}
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool converts bool and the textual spellings True/False (any case) to bool.
func ToBool(val any) (bool, bool) {
	switch v := val.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(v) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
		return false, false
	default:
		return false, false
	}
}

// FormatSize renders a byte count as a human-readable size with no space before the
// unit ("628B", "1.5kB"). With raw set it returns the plain decimal count.
func FormatSize(size int64, raw bool) string {
	if raw || size < 0 {
		return strconv.FormatInt(size, 10)
	}
	return strings.ReplaceAll(humanize.Bytes(uint64(size)), " ", "")
}
