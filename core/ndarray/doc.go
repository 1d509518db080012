// Package ndarray holds n-dimensional numeric arrays and their NumPy .npy codec.
//
// Arrays are stored flat in C order with an explicit shape and dtype, so an
// encode/decode round trip preserves shape, dtype and element order exactly.
// Files are written in .npy format version 1.0, little-endian; decoding accepts any
// byte order for the supported dtypes but rejects Fortran-ordered data.
package ndarray
