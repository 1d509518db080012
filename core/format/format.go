package format

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Format is the canonical tag of a supported codec.
type Format int

const (
	Unknown Format = iota
	Parquet
	CSV
	TSV
	TXT
	JSON
	NPY
	Blob
)

// Direction tells Resolve whether the format is needed to read or to write.
// It only changes the wording of the error.
type Direction int

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Output {
		return "outputformat"
	}
	return "inputformat"
}

// ErrInvalidFormat is returned when an explicit or inferred format is not allowed.
var ErrInvalidFormat = errors.New("invalid format")

// Tabular lists the formats accepted by the dataframe helpers, in the order used in error messages.
var Tabular = []Format{Parquet, TXT, CSV, TSV}

var names = map[Format]string{
	Parquet: "parquet",
	CSV:     "csv",
	TSV:     "tsv",
	TXT:     "txt",
	JSON:    "json",
	NPY:     "npy",
	Blob:    "joblib",
}

func (f Format) String() string {
	if name, ok := names[f]; ok {
		return name
	}
	return "unknown"
}

// IsTabular reports whether f can hold a dataframe.
func (f Format) IsTabular() bool {
	switch f {
	case Parquet, CSV, TSV, TXT:
		return true
	default:
		return false
	}
}

// Delimiter returns the field separator of a delimited text format, or 0.
func (f Format) Delimiter() rune {
	switch f {
	case CSV:
		return ','
	case TSV, TXT:
		return '\t'
	default:
		return 0
	}
}

// ContentType returns the MIME type stored with objects of this format.
func (f Format) ContentType() string {
	switch f {
	case CSV:
		return "text/csv"
	case TSV:
		return "text/tab-separated-values"
	case TXT:
		return "text/plain"
	case JSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// Normalize strips a leading dot and lowercases s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
}

// Suffix returns the normalized text after the last dot of the key's final path segment,
// or "" when there is none.
func Suffix(key string) string {
	key = key[strings.LastIndex(key, "/")+1:]
	i := strings.LastIndex(key, ".")
	if i < 0 {
		return ""
	}
	return Normalize(key[i+1:])
}

// Parse maps a suffix or format name to its tag.
func Parse(s string) (Format, bool) {
	switch Normalize(s) {
	case "parquet":
		return Parquet, true
	case "csv":
		return CSV, true
	case "tsv":
		return TSV, true
	case "txt":
		return TXT, true
	case "json":
		return JSON, true
	case "npy":
		return NPY, true
	case "joblib":
		return Blob, true
	default:
		return Unknown, false
	}
}

// Resolve picks the tabular format for key. An explicit format wins over the key's suffix.
// Anything outside the tabular set fails with ErrInvalidFormat.
func Resolve(key, explicit string, dir Direction) (Format, error) {
	value := explicit
	if explicit == "" {
		value = Suffix(key)
	}

	if f, ok := Parse(value); ok && f.IsTabular() {
		return f, nil
	}
	return Unknown, errors.Mark(errors.Newf("Invalid (inferred) %s. Use one of: %s.", dir, allowed()), ErrInvalidFormat)
}

func allowed() string {
	parts := make([]string, len(Tabular))
	for i, f := range Tabular {
		parts[i] = f.String()
	}
	return strings.Join(parts, ", ")
}
