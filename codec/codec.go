// Package codec converts between the textual wire forms used in schema
// examples and their native Go values.
package codec

// Codec performs a bidirectional transformation between the wire
// representation A and the native representation B.
type Codec[A, B any] interface {
	Decode(a A) (B, error) // wire -> native
	Encode(b B) (A, error) // native -> wire
}
