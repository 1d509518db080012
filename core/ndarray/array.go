package ndarray

import (
	"fmt"
	"math"
	"reflect"
)

// DType names the element type of an array.
type DType string

const (
	Bool    DType = "bool"
	Int8    DType = "int8"
	Int16   DType = "int16"
	Int32   DType = "int32"
	Int64   DType = "int64"
	Uint8   DType = "uint8"
	Uint16  DType = "uint16"
	Uint32  DType = "uint32"
	Uint64  DType = "uint64"
	Float32 DType = "float32"
	Float64 DType = "float64"
)

// dtypes maps each supported dtype to its Go slice type and NumPy descriptor.
var dtypes = map[DType]struct {
	slice reflect.Type
	descr string
}{
	Bool:    {reflect.TypeOf([]bool(nil)), "|b1"},
	Int8:    {reflect.TypeOf([]int8(nil)), "|i1"},
	Int16:   {reflect.TypeOf([]int16(nil)), "<i2"},
	Int32:   {reflect.TypeOf([]int32(nil)), "<i4"},
	Int64:   {reflect.TypeOf([]int64(nil)), "<i8"},
	Uint8:   {reflect.TypeOf([]uint8(nil)), "|u1"},
	Uint16:  {reflect.TypeOf([]uint16(nil)), "<u2"},
	Uint32:  {reflect.TypeOf([]uint32(nil)), "<u4"},
	Uint64:  {reflect.TypeOf([]uint64(nil)), "<u8"},
	Float32: {reflect.TypeOf([]float32(nil)), "<f4"},
	Float64: {reflect.TypeOf([]float64(nil)), "<f8"},
}

// Array is an n-dimensional array stored flat in C (row-major) order.
// Data is a slice whose element type matches DType, e.g. []float64 for Float64.
type Array struct {
	DType DType
	Shape []int
	Data  any
}

// New wraps a typed slice. Without a shape the array is one-dimensional.
func New(data any, shape ...int) (*Array, error) {
	dtype, ok := dtypeOf(data)
	if !ok {
		return nil, fmt.Errorf("unsupported array data %T", data)
	}
	if len(shape) == 0 {
		shape = []int{reflect.ValueOf(data).Len()}
	}
	a := &Array{DType: dtype, Shape: shape, Data: data}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func dtypeOf(data any) (DType, bool) {
	t := reflect.TypeOf(data)
	for dtype, info := range dtypes {
		if info.slice == t {
			return dtype, true
		}
	}
	return "", false
}

// Len returns the number of elements implied by the shape. A zero-dimensional array has one.
// It returns -1 when the shape has a negative dimension or the product overflows int.
func (a *Array) Len() int {
	n, err := elements(a.Shape)
	if err != nil {
		return -1
	}
	return n
}

func elements(shape []int) (int, error) {
	n := 1
	for _, dim := range shape {
		if dim < 0 {
			return 0, fmt.Errorf("negative dimension in shape %v", shape)
		}
		if dim != 0 && n > math.MaxInt/dim {
			return 0, fmt.Errorf("shape %v overflows the element count", shape)
		}
		n *= dim
	}
	return n, nil
}

// Validate checks that the data type matches DType and the length matches Shape.
func (a *Array) Validate() error {
	info, ok := dtypes[a.DType]
	if !ok {
		return fmt.Errorf("unsupported dtype %q", a.DType)
	}
	if reflect.TypeOf(a.Data) != info.slice {
		return fmt.Errorf("data %T does not match dtype %s", a.Data, a.DType)
	}
	want, err := elements(a.Shape)
	if err != nil {
		return err
	}
	if n := reflect.ValueOf(a.Data).Len(); n != want {
		return fmt.Errorf("shape %v needs %d elements, got %d", a.Shape, want, n)
	}
	return nil
}
