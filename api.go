// Package byteable converts structured values to and from fixed-size byte
// arrays with explicit, per-field control over byte order.
//
// Every convertible type has a compiled Layout: its exact wire size, field
// offsets, byte orders, and discriminant tables, resolved once per type and
// cached. Conversion is bit-exact and portable: a value's wire image is
// identical on every platform, because byte order is always a declared
// property, never an inherited one.
//
// # Tag Syntax
//
// Field behavior is declared via the byteable struct tag:
//
//	byteable:"{keyword}"
//
// Valid keywords:
//
//	little_endian    - write this scalar field little-endian
//	big_endian       - write this scalar field big-endian (network order)
//	transparent      - embed a nested type through its own layout (infallible)
//	try_transparent  - embed through a fallible layout (enums, opaque types)
//
// Untagged fields must already be unambiguous on the wire: byte-sized
// integers, BigEndian/LittleEndian wrappers, wire-safe marshaler types, or
// fixed-size arrays of those. An untagged uint32 is a schema error; byte
// order is a visible decision at every multi-byte field.
//
// # Basic Usage
//
//	type Header struct {
//	    Version uint8
//	    Flags   uint8
//	    Length  uint16 `byteable:"big_endian"`
//	    Serial  uint32 `byteable:"little_endian"`
//	}
//
//	layout, _ := byteable.For[Header]()
//	ba := layout.Marshal(Header{Version: 1, Length: 512, Serial: 7})
//	// ba is exactly 8 bytes: 1 + 1 + 2 + 4, no padding
//
//	back, _ := layout.Unmarshal(ba)
//
// # Enums
//
// A Go enum is a named integer type with a closed constant set. Register
// its variants to obtain validated decoding:
//
//	type Status uint8
//	const (
//	    StatusIdle    Status = 0
//	    StatusRunning Status = 1
//	)
//
//	byteable.MustRegisterEnum([]Status{StatusIdle, StatusRunning})
//
//	type Message struct {
//	    Status  Status `byteable:"try_transparent"`
//	    Payload uint64 `byteable:"little_endian"`
//	}
//
// Decoding a Message whose status byte matches no declared variant returns
// an EnumError carrying the rejected value and the enum's type name; the
// value is never silently mapped to a default variant. Multi-byte backings
// must declare their order with WithByteOrder at registration.
//
// # Fallibility
//
// Encoding is always total. Decoding is fallible exactly when the layout
// contains a discriminant-validated or opaque field; Layout.Infallible
// reports which case applies, and every layout serves the fallible
// Unmarshal interface uniformly, so callers never need per-type plumbing.
//
// # Generation-time errors
//
// All schema defects (unknown tag keywords, untagged multi-byte scalars,
// unsupported field types, unexported fields, duplicate or missing
// discriminants) are reported by For and RegisterEnum, never deferred
// into Marshal or Unmarshal.
//
// # Concurrency
//
// Layouts are immutable after compilation and all conversions are pure;
// every function in this package is safe for unlimited concurrent use with
// no locking beyond the one-time compilation caches.
package byteable

import (
	"context"
	"time"
)

// Size returns the wire size of T in bytes, compiling T's layout if
// needed. The size is a constant of the type.
func Size[T any]() (int, error) {
	layout, err := For[T]()
	if err != nil {
		return 0, err
	}
	return layout.Size(), nil
}

// Marshal converts a value into its byte array using T's cached layout.
// The only possible error is a schema error from first-time compilation;
// encoding itself is total.
func Marshal[T any](v T) (ByteArray, error) {
	layout, err := For[T]()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	ba := layout.Marshal(v)
	emitEncodeComplete(context.Background(), layout.TypeName(), len(ba), time.Since(start))
	return ba, nil
}

// Unmarshal converts a byte array back into a value of T using T's cached
// layout. The array must be exactly Size[T]() bytes.
func Unmarshal[T any](ba ByteArray) (T, error) {
	var zero T
	layout, err := For[T]()
	if err != nil {
		return zero, err
	}
	start := time.Now()
	v, err := layout.Unmarshal(ba)
	emitDecodeComplete(context.Background(), layout.TypeName(), len(ba), time.Since(start), err)
	return v, err
}
