package byteable

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUnknownTag indicates a `byteable` struct tag carries an unknown
	// keyword.
	ErrUnknownTag = errors.New("unknown byteable tag")

	// ErrMissingEndianness indicates a multi-byte scalar field has no
	// declared byte order. Byte order is never inferred; tag the field
	// little_endian/big_endian or use an endian wrapper type.
	ErrMissingEndianness = errors.New("missing endianness")

	// ErrUnsupportedType indicates a type has no fixed-size, every-pattern
	// -valid wire representation (bool, string, slice, map, pointer, ...).
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnexportedField indicates a struct contains an unexported field.
	// A hidden field would silently change the wire size and cannot be set
	// on decode, so schemas must consist of exported fields only.
	ErrUnexportedField = errors.New("unexported field")

	// ErrFallibleField indicates a field whose decode can fail (an enum,
	// or a nested layout containing one) was declared without the
	// try_transparent tag. Fallibility is never hidden inside an
	// infallible layout.
	ErrFallibleField = errors.New("fallible field requires try_transparent")

	// ErrUnknownEnum indicates a try_transparent integer field's type has
	// no registered discriminant table.
	ErrUnknownEnum = errors.New("enum not registered")

	// ErrNoVariants indicates an enum was registered with an empty
	// variant list.
	ErrNoVariants = errors.New("enum has no variants")

	// ErrDuplicateDiscriminant indicates two variants of an enum share a
	// discriminant value.
	ErrDuplicateDiscriminant = errors.New("duplicate discriminant")

	// ErrMissingByteOrder indicates an enum with a multi-byte backing was
	// registered without an explicit byte order.
	ErrMissingByteOrder = errors.New("missing byte order")

	// ErrEnumRedefined indicates an enum type was registered twice.
	ErrEnumRedefined = errors.New("enum already registered")

	// ErrUnknownDiscriminant indicates a decoded discriminant value
	// matches no declared variant. Carried by EnumError.
	ErrUnknownDiscriminant = errors.New("unknown discriminant")

	// ErrSize indicates a byte array's length does not match the layout
	// size. This is a collaborator error: buffers must be filled or
	// drained completely before conversion. Carried by SizeError.
	ErrSize = errors.New("byte array size mismatch")
)

// SchemaError represents a layout-generation failure. It wraps a sentinel
// error with the type and field that triggered it. Schema errors surface
// from For/RegisterEnum, never from Marshal or Unmarshal.
type SchemaError struct {
	Err    error  // Underlying sentinel error (ErrUnknownTag, etc.)
	Type   string // Type whose schema failed to compile
	Field  string // Field that triggered the error, if any
	Detail string // Extra context (offending keyword, duplicate value, ...)
}

func (e *SchemaError) Error() string {
	msg := "byteable: " + e.Err.Error()
	if e.Type != "" {
		msg += ": type " + e.Type
	}
	if e.Field != "" {
		msg += ", field " + e.Field
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// EnumError reports a discriminant value that matches no declared variant.
// It carries the literal value tagged with its concrete integer width and
// signedness, plus the enum's type name, enough to diagnose a wire-format
// mismatch with no additional context. Decode never maps an unknown
// discriminant to a default variant.
type EnumError struct {
	Type         string       // Enum type name
	Discriminant Discriminant // Rejected value, width/signedness-tagged
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("byteable: value %s is not a valid discriminant of %s", e.Discriminant, e.Type)
}

func (e *EnumError) Unwrap() error {
	return ErrUnknownDiscriminant
}

// SizeError reports a byte array whose length does not match the layout
// size it was offered to.
type SizeError struct {
	Type string // Layout type name
	Want int    // Layout size
	Got  int    // Offered length
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("byteable: %s requires exactly %d bytes, got %d", e.Type, e.Want, e.Got)
}

func (e *SizeError) Unwrap() error {
	return ErrSize
}

// newSchemaError creates a SchemaError for a layout-generation failure.
func newSchemaError(sentinel error, typeName, field, detail string) error {
	return &SchemaError{
		Err:    sentinel,
		Type:   typeName,
		Field:  field,
		Detail: detail,
	}
}
