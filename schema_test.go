package byteable_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zoobzio/byteable"
)

func TestSchema_UnknownKeyword(t *testing.T) {
	type Bad struct {
		A uint16 `byteable:"middle_endian"`
	}
	_, err := byteable.For[Bad]()
	require.ErrorIs(t, err, byteable.ErrUnknownTag)

	var schemaErr *byteable.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, "Bad", schemaErr.Type)
	require.Equal(t, "A", schemaErr.Field)
	require.Contains(t, schemaErr.Error(), "middle_endian")
}

func TestSchema_UntaggedMultiByteScalar(t *testing.T) {
	type Bad struct {
		ID     uint8
		Length uint16 // no order declared
	}
	_, err := byteable.For[Bad]()
	require.ErrorIs(t, err, byteable.ErrMissingEndianness)

	var schemaErr *byteable.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, "Length", schemaErr.Field)
}

func TestSchema_UntaggedFloat(t *testing.T) {
	type Bad struct {
		Gain float64
	}
	_, err := byteable.For[Bad]()
	require.ErrorIs(t, err, byteable.ErrMissingEndianness)
}

func TestSchema_InvalidFieldTypes(t *testing.T) {
	type WithBool struct{ B bool }
	type WithString struct{ S string }
	type WithSlice struct{ S []uint8 }
	type WithMap struct{ M map[uint8]uint8 }
	type WithPointer struct{ P *uint8 }

	for name, check := range map[string]func() error{
		"bool":    func() error { _, err := byteable.For[WithBool](); return err },
		"string":  func() error { _, err := byteable.For[WithString](); return err },
		"slice":   func() error { _, err := byteable.For[WithSlice](); return err },
		"map":     func() error { _, err := byteable.For[WithMap](); return err },
		"pointer": func() error { _, err := byteable.For[WithPointer](); return err },
	} {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, check(), byteable.ErrUnsupportedType)
		})
	}
}

func TestSchema_TopLevelUnsupported(t *testing.T) {
	_, err := byteable.For[string]()
	require.ErrorIs(t, err, byteable.ErrUnsupportedType)

	_, err = byteable.For[[]uint8]()
	require.ErrorIs(t, err, byteable.ErrUnsupportedType)
}

func TestSchema_NestedStructRequiresTag(t *testing.T) {
	type Inner struct{ A uint8 }
	type Bad struct {
		Inner Inner // missing transparent tag
	}
	_, err := byteable.For[Bad]()
	require.ErrorIs(t, err, byteable.ErrUnsupportedType)
	require.Contains(t, err.Error(), "transparent")
}

func TestSchema_UnexportedField(t *testing.T) {
	type Bad struct {
		A uint8
		b uint8 //nolint:unused // the hidden field is the point
	}
	_, err := byteable.For[Bad]()
	require.ErrorIs(t, err, byteable.ErrUnexportedField)
}

func TestSchema_EndianTagOnWrapper(t *testing.T) {
	type Bad struct {
		V byteable.BigEndian[uint16] `byteable:"little_endian"`
	}
	_, err := byteable.For[Bad]()
	require.ErrorIs(t, err, byteable.ErrUnsupportedType)
	require.Contains(t, err.Error(), "already carry an order")
}

func TestSchema_TransparentOnScalar(t *testing.T) {
	type Bad struct {
		N uint32 `byteable:"transparent"`
	}
	_, err := byteable.For[Bad]()
	require.ErrorIs(t, err, byteable.ErrUnsupportedType)
}

func TestSchema_TryTransparentOnUnregisteredInteger(t *testing.T) {
	type NotAnEnum uint8
	type Bad struct {
		V NotAnEnum `byteable:"try_transparent"`
	}
	_, err := byteable.For[Bad]()
	require.ErrorIs(t, err, byteable.ErrUnknownEnum)
}

func TestSchema_ErrorsAreGenerationTimeOnly(t *testing.T) {
	// A failed For leaves no cached layout behind; retrying reports the
	// same schema error rather than a stale success.
	type Bad struct{ N uint64 }
	_, err1 := byteable.For[Bad]()
	_, err2 := byteable.For[Bad]()
	require.ErrorIs(t, err1, byteable.ErrMissingEndianness)
	require.ErrorIs(t, err2, byteable.ErrMissingEndianness)
}

func TestSchema_TagValidation(t *testing.T) {
	require.True(t, byteable.IsValidFieldTag(byteable.TagNone))
	require.True(t, byteable.IsValidFieldTag(byteable.TagLittleEndian))
	require.True(t, byteable.IsValidFieldTag(byteable.TagBigEndian))
	require.True(t, byteable.IsValidFieldTag(byteable.TagTransparent))
	require.True(t, byteable.IsValidFieldTag(byteable.TagTryTransparent))
	require.False(t, byteable.IsValidFieldTag("network"))

	require.True(t, byteable.IsValidByteOrder(byteable.OrderLittleEndian))
	require.True(t, byteable.IsValidByteOrder(byteable.OrderBigEndian))
	require.True(t, byteable.IsValidByteOrder(byteable.OrderNative))
	require.False(t, byteable.IsValidByteOrder("middle"))
}
