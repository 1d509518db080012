// Package frame provides the in-memory table used by the dataframe helpers and its
// codecs.
//
// A Frame is an ordered list of named, typed columns of equal length. Cells are
// int64, float64, string or bool values, and nil marks a missing cell.
//
// # Codecs
//
//   - EncodeParquet / DecodeParquet: binary columnar, lossless for all column types.
//     Column order is stored in the file's key/value metadata.
//   - EncodeDelimited / DecodeDelimited: text with a header row, parameterized by
//     delimiter (',' for csv, '\t' for tsv and txt). Column types are inferred on decode.
//
// Text formats cannot tell an empty string from a missing cell, nor a string that
// looks like a number from a number; frames holding such strings only round trip
// through parquet.
package frame
