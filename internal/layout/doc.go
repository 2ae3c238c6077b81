// Package layout renders coerced values into output records: fixed-width
// padding and truncation, delimited quoting, and the final character
// encoding of the whole buffer.
package layout
