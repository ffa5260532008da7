package byteable

import "encoding/binary"

// FieldTag is a keyword accepted in the `byteable` struct tag.
// Use these constants in struct tags: `byteable:"little_endian"`.
type FieldTag string

const (
	// TagNone leaves the field type as-is. Valid only for field types that
	// are unambiguous on the wire: byte-sized integers, endian wrappers,
	// and fixed-size arrays of those.
	TagNone FieldTag = ""

	// TagLittleEndian writes a multi-byte scalar field in little-endian
	// order regardless of the platform.
	TagLittleEndian FieldTag = "little_endian"

	// TagBigEndian writes a multi-byte scalar field in big-endian
	// (network) order regardless of the platform.
	TagBigEndian FieldTag = "big_endian"

	// TagTransparent embeds a nested type through its own layout. The
	// nested layout must be infallible; decoding the parent can then never
	// fail on this field.
	TagTransparent FieldTag = "transparent"

	// TagTryTransparent embeds a nested type through its own fallible
	// layout. Required for registered enum fields and for any nested type
	// whose decode can reject byte patterns. The nested error propagates
	// verbatim as the parent's decode error.
	TagTryTransparent FieldTag = "try_transparent"
)

// validFieldTags contains all accepted tag keywords for schema validation.
var validFieldTags = map[FieldTag]bool{
	TagNone:           true,
	TagLittleEndian:   true,
	TagBigEndian:      true,
	TagTransparent:    true,
	TagTryTransparent: true,
}

// IsValidFieldTag returns true if the keyword is a known field tag.
func IsValidFieldTag(tag FieldTag) bool {
	return validFieldTags[tag]
}

// ByteOrder declares the wire byte order of an enum's backing integer.
// Multi-byte backings must state an order explicitly at registration;
// native order is available but only by opting in with OrderNative.
type ByteOrder string

const (
	// OrderLittleEndian stores the discriminant little-endian.
	OrderLittleEndian ByteOrder = "little_endian"

	// OrderBigEndian stores the discriminant big-endian.
	OrderBigEndian ByteOrder = "big_endian"

	// OrderNative stores the discriminant in the platform's native order.
	// Values written with OrderNative are not portable across platforms of
	// differing endianness; prefer an explicit order for interchange.
	OrderNative ByteOrder = "native"
)

// validByteOrders contains all accepted byte orders for registration.
var validByteOrders = map[ByteOrder]bool{
	OrderLittleEndian: true,
	OrderBigEndian:    true,
	OrderNative:       true,
}

// IsValidByteOrder returns true if the order is a known byte order.
func IsValidByteOrder(order ByteOrder) bool {
	return validByteOrders[order]
}

// binaryOrder maps the declared order onto an encoding/binary order.
func (o ByteOrder) binaryOrder() binary.ByteOrder {
	switch o {
	case OrderLittleEndian:
		return binary.LittleEndian
	case OrderBigEndian:
		return binary.BigEndian
	default:
		return binary.NativeEndian
	}
}
