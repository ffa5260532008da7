package byteable

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Scalar is the closed set of fixed-width numeric types that can carry an
// explicit byte order. The set is exact (no ~) on purpose: a named type
// built on one of these kinds has its own identity on the wire and must go
// through a layout or an enum registration instead.
type Scalar interface {
	uint8 | uint16 | uint32 | uint64 |
		int8 | int16 | int32 | int64 |
		float32 | float64
}

// scalarBits returns the value's raw bit pattern and width in bytes.
// Signed values are reported as their two's complement bits; floats as
// their IEEE 754 bits.
func scalarBits[T Scalar](v T) (bits uint64, width int) {
	switch x := any(v).(type) {
	case uint8:
		return uint64(x), 1
	case int8:
		return uint64(uint8(x)), 1
	case uint16:
		return uint64(x), 2
	case int16:
		return uint64(uint16(x)), 2
	case uint32:
		return uint64(x), 4
	case int32:
		return uint64(uint32(x)), 4
	case uint64:
		return x, 8
	case int64:
		return uint64(x), 8
	case float32:
		return uint64(math.Float32bits(x)), 4
	case float64:
		return math.Float64bits(x), 8
	}
	panic("byteable: unreachable scalar kind")
}

// scalarFromBits rebuilds a scalar from its raw bit pattern.
func scalarFromBits[T Scalar](bits uint64) T {
	var v T
	switch p := any(&v).(type) {
	case *uint8:
		*p = uint8(bits)
	case *int8:
		*p = int8(uint8(bits))
	case *uint16:
		*p = uint16(bits)
	case *int16:
		*p = int16(uint16(bits))
	case *uint32:
		*p = uint32(bits)
	case *int32:
		*p = int32(uint32(bits))
	case *uint64:
		*p = bits
	case *int64:
		*p = int64(bits)
	case *float32:
		*p = math.Float32frombits(uint32(bits))
	case *float64:
		*p = math.Float64frombits(bits)
	}
	return v
}

// scalarWidth returns the width in bytes of T without needing a value.
func scalarWidth[T Scalar]() int {
	var zero T
	_, width := scalarBits(zero)
	return width
}

// putBits writes a bit pattern of the given width into dst in the given order.
func putBits(dst []byte, bits uint64, width int, order binary.ByteOrder) {
	switch width {
	case 1:
		dst[0] = byte(bits)
	case 2:
		order.PutUint16(dst, uint16(bits))
	case 4:
		order.PutUint32(dst, uint32(bits))
	case 8:
		order.PutUint64(dst, bits)
	}
}

// getBits reads a bit pattern of the given width from src in the given order.
func getBits(src []byte, width int, order binary.ByteOrder) uint64 {
	switch width {
	case 1:
		return uint64(src[0])
	case 2:
		return uint64(order.Uint16(src))
	case 4:
		return uint64(order.Uint32(src))
	case 8:
		return order.Uint64(src)
	}
	return 0
}

// endianValue is the layout engine's view of an endian wrapper field:
// a fixed width and the stored, already-ordered bytes.
type endianValue interface {
	ByteSize() int
	RawBytes() ByteArray
}

// endianSetter is the settable counterpart, satisfied by wrapper pointers.
type endianSetter interface {
	setRaw(src []byte)
}

// BigEndian stores a scalar pre-converted to big-endian (network) byte
// order. The wrapper owns the ordered bytes, never the native value:
// construction converts once, Get converts back once, and RawBytes exposes
// the stored bytes untouched.
//
// Wrappers of the same type are comparable with ==. Because the stored
// encoding is injective, byte equality and value equality coincide; ordering
// and formatting, however, must go through Get: the raw bytes of a
// big-endian and a little-endian wrapper holding the same number differ.
//
//	port := byteable.NewBigEndian[uint16](443)
//	port.RawBytes() // [0x01, 0xBB]
//	port.Get()      // 443
type BigEndian[T Scalar] struct {
	raw [8]byte
}

// NewBigEndian wraps v, storing its big-endian byte representation.
func NewBigEndian[T Scalar](v T) BigEndian[T] {
	var w BigEndian[T]
	bits, width := scalarBits(v)
	putBits(w.raw[:width], bits, width, binary.BigEndian)
	return w
}

// Get converts the stored bytes back to the native value.
// NewBigEndian followed by Get is the identity.
func (w BigEndian[T]) Get() T {
	width := scalarWidth[T]()
	return scalarFromBits[T](getBits(w.raw[:width], width, binary.BigEndian))
}

// RawBytes returns the stored big-endian bytes without conversion.
func (w BigEndian[T]) RawBytes() ByteArray {
	width := scalarWidth[T]()
	return ByteArray(w.raw[:width:width])
}

// ByteSize returns the wire width of the wrapped scalar.
func (w BigEndian[T]) ByteSize() int {
	return scalarWidth[T]()
}

// WireSafe marks the wrapper as valid for every byte pattern: any sequence
// of ByteSize bytes decodes to some value of T.
func (w BigEndian[T]) WireSafe() {}

func (w *BigEndian[T]) setRaw(src []byte) {
	copy(w.raw[:scalarWidth[T]()], src)
}

// String formats the native value, not the raw bytes.
func (w BigEndian[T]) String() string {
	return fmt.Sprintf("BigEndian(%v)", w.Get())
}

// LittleEndian stores a scalar pre-converted to little-endian byte order.
// See BigEndian for the invariants; the two differ only in stored order.
type LittleEndian[T Scalar] struct {
	raw [8]byte
}

// NewLittleEndian wraps v, storing its little-endian byte representation.
func NewLittleEndian[T Scalar](v T) LittleEndian[T] {
	var w LittleEndian[T]
	bits, width := scalarBits(v)
	putBits(w.raw[:width], bits, width, binary.LittleEndian)
	return w
}

// Get converts the stored bytes back to the native value.
// NewLittleEndian followed by Get is the identity.
func (w LittleEndian[T]) Get() T {
	width := scalarWidth[T]()
	return scalarFromBits[T](getBits(w.raw[:width], width, binary.LittleEndian))
}

// RawBytes returns the stored little-endian bytes without conversion.
func (w LittleEndian[T]) RawBytes() ByteArray {
	width := scalarWidth[T]()
	return ByteArray(w.raw[:width:width])
}

// ByteSize returns the wire width of the wrapped scalar.
func (w LittleEndian[T]) ByteSize() int {
	return scalarWidth[T]()
}

// WireSafe marks the wrapper as valid for every byte pattern.
func (w LittleEndian[T]) WireSafe() {}

func (w *LittleEndian[T]) setRaw(src []byte) {
	copy(w.raw[:scalarWidth[T]()], src)
}

// String formats the native value, not the raw bytes.
func (w LittleEndian[T]) String() string {
	return fmt.Sprintf("LittleEndian(%v)", w.Get())
}
