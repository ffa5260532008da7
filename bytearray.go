package byteable

// ByteArray is the fixed-size wire image of a value.
//
// A ByteArray is always exactly as long as the layout that produced it;
// the length is a property of the type, never of the value. Collaborators
// that move byte arrays across process boundaries must fill or drain them
// completely; a partially written ByteArray is a caller bug, and Unmarshal
// rejects any slice whose length does not match the layout size.
//
// Byte arrays compose contiguously: the wire image of a fixed-size array of
// values is the concatenation of each element's wire image, with no gaps.
type ByteArray []byte

// NewByteArray returns a zeroed byte array of the given size.
// Size must be non-negative; a zero-size array is valid and represents
// the unique wire image of a zero-field layout.
func NewByteArray(size int) ByteArray {
	return make(ByteArray, size)
}

// Size returns the length of the byte array.
func (ba ByteArray) Size() int {
	return len(ba)
}

// Bytes returns the array's contents as a plain byte slice.
// The slice aliases the array; it is not a copy.
func (ba ByteArray) Bytes() []byte {
	return ba
}

// Clone returns an independent copy of the byte array.
func (ba ByteArray) Clone() ByteArray {
	out := make(ByteArray, len(ba))
	copy(out, ba)
	return out
}
