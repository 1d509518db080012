// Package utils provides common utility functions for the objectio module.
// It includes helpers for loose type conversion of cell values and for rendering
// object sizes, shared logic that doesn't fit into a single codec package.
package utils
