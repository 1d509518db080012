// Package blob serializes arbitrary Go values into opaque binary objects.
//
// Blobs are msgpack-encoded, zstd-compressed and prefixed with a short magic and
// version byte. They are meant to be read back by the same program: the encoding
// follows the Go types involved, so a blob is not portable across languages and may
// not decode after the value's type changes. Equality after a round trip is
// structural, not byte-exact.
package blob
