package byteable

// WireSafe is a capability, not a behavior: implementing it asserts that
// every possible byte pattern of the type's wire image is a valid value.
// The layout compiler relies on this assertion when it embeds a field
// infallibly: a WireSafe field can be decoded from arbitrary bytes with
// no validation and no error path.
//
// The assertion holds for:
//
//   - uint8/int8 and named types of those kinds (all 256 patterns valid)
//   - BigEndian[T] and LittleEndian[T] for every Scalar T
//   - fixed-size arrays and structs composed entirely of the above
//
// The compiler grants it to those shapes automatically; the interface
// exists for opaque types that implement ByteArrayMarshaler and
// ByteArrayUnmarshaler themselves. Implement it only after checking that
// UnmarshalByteArray genuinely accepts every input of the declared size.
// An incorrect WireSafe declaration is the one way this package can decode
// garbage into a value that the owning type considers impossible: booleans
// that are neither true nor false have no Go representation, but a
// validity-constrained wrapper type decoded unchecked will happily hold a
// discriminant no variant declares. When in doubt, leave it off and embed
// the type with the try_transparent tag instead.
type WireSafe interface {
	// WireSafe is a marker method; implementations are empty.
	WireSafe()
}
