package byteable

// Override interfaces allow types to bypass plan-based conversion.
// When a field type implements both interfaces, the layout embeds it
// through its own encoding instead of compiling a plan for it.
//
// This provides two benefits:
// 1. Performance: Avoid reflection traversal for hot types
// 2. Custom logic: Fixed-size encodings a tag schema can't express
//
// These interfaces are designed for codegen: a generator can emit them from
// a schema, giving compile-time safety and optimal performance while
// remaining embeddable in tag-driven layouts.
//
// A marshaler type embeds as a plain or transparent field only when it also
// implements WireSafe; otherwise it must be tagged try_transparent and its
// UnmarshalByteArray errors propagate as the parent's decode error.

// ByteArrayMarshaler supplies a type's own fixed-size encoding.
type ByteArrayMarshaler interface {
	// ByteSize returns the fixed wire width. It must be constant for the
	// type and must not depend on the receiver's value.
	ByteSize() int

	// MarshalByteArray returns the wire image, exactly ByteSize bytes.
	// Encoding is total; there is no error path.
	MarshalByteArray() ByteArray
}

// ByteArrayUnmarshaler reconstructs a value from its wire image.
// Implement on the pointer receiver.
type ByteArrayUnmarshaler interface {
	// UnmarshalByteArray fills the receiver from exactly ByteSize bytes.
	// Returning an error marks the byte pattern invalid for this type;
	// types implementing WireSafe must never return one.
	UnmarshalByteArray(src ByteArray) error
}
