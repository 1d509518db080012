package ndarray

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/sbinet/npyio"
)

const (
	npyMagic      = "\x93NUMPY"
	npyAlignment  = 64
	npyMaxHeader  = 1<<16 - 1
	npyPreambleV1 = len(npyMagic) + 2 + 2
)

// EncodeNPY writes a as a NumPy .npy (format version 1.0) file in C order.
func EncodeNPY(a *Array) ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	header := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': %s, }",
		dtypes[a.DType].descr, shapeTuple(a.Shape))
	// The preamble plus header is padded with spaces and ends in a newline on a 64 byte boundary.
	padding := (npyAlignment - (npyPreambleV1+len(header)+1)%npyAlignment) % npyAlignment
	header += strings.Repeat(" ", padding) + "\n"
	if len(header) > npyMaxHeader {
		return nil, fmt.Errorf("npy header too large (%d bytes)", len(header))
	}

	var buf bytes.Buffer
	buf.WriteString(npyMagic)
	buf.Write([]byte{1, 0})
	_ = binary.Write(&buf, binary.LittleEndian, uint16(len(header)))
	buf.WriteString(header)
	if err := binary.Write(&buf, binary.LittleEndian, a.Data); err != nil {
		return nil, fmt.Errorf("failed to write array data: %w", err)
	}
	return buf.Bytes(), nil
}

func shapeTuple(shape []int) string {
	switch len(shape) {
	case 0:
		return "()"
	case 1:
		return "(" + strconv.Itoa(shape[0]) + ",)"
	default:
		dims := make([]string, len(shape))
		for i, dim := range shape {
			dims[i] = strconv.Itoa(dim)
		}
		return "(" + strings.Join(dims, ", ") + ")"
	}
}

// DecodeNPY reads a NumPy .npy file. Fortran-ordered arrays are rejected.
func DecodeNPY(data []byte) (*Array, error) {
	r, err := npyio.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read npy header: %w", err)
	}
	if r.Header.Descr.Fortran {
		return nil, fmt.Errorf("fortran-ordered arrays are not supported")
	}

	dtype, err := dtypeOfDescr(r.Header.Descr.Type)
	if err != nil {
		return nil, err
	}

	a := &Array{DType: dtype, Shape: append([]int{}, r.Header.Descr.Shape...)}
	n, err := elements(a.Shape)
	if err != nil {
		return nil, err
	}
	sliceType := dtypes[dtype].slice
	// The payload can never hold more elements than the file has bytes.
	if size := int(sliceType.Elem().Size()); n > len(data)/size {
		return nil, fmt.Errorf("shape %v needs %d elements, file holds at most %d", a.Shape, n, len(data)/size)
	}
	ptr := reflect.New(sliceType)
	ptr.Elem().Set(reflect.MakeSlice(sliceType, n, n))
	if err := r.Read(ptr.Interface()); err != nil {
		return nil, fmt.Errorf("failed to read npy data: %w", err)
	}
	a.Data = ptr.Elem().Interface()

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func dtypeOfDescr(descr string) (DType, error) {
	code := strings.TrimLeft(descr, "<>|=")
	switch code {
	case "b1", "?":
		return Bool, nil
	case "i1":
		return Int8, nil
	case "i2":
		return Int16, nil
	case "i4":
		return Int32, nil
	case "i8":
		return Int64, nil
	case "u1":
		return Uint8, nil
	case "u2":
		return Uint16, nil
	case "u4":
		return Uint32, nil
	case "u8":
		return Uint64, nil
	case "f4":
		return Float32, nil
	case "f8":
		return Float64, nil
	default:
		return "", fmt.Errorf("unsupported npy dtype %q", descr)
	}
}
