// Package format maps object keys and explicit overrides to codec tags.
//
// Resolution is a pure function: an explicit format wins, otherwise the suffix of
// the key's last path segment is used. Only the tabular formats (parquet, csv, tsv,
// txt) are accepted by Resolve; everything else fails with ErrInvalidFormat and a
// message naming the allowed set. There is no fallback format.
//
// txt is an alias of tsv and shares its tab delimiter.
package format
