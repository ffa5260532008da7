package byteable_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zoobzio/byteable"
)

// Status is a one-byte enum shared across enum tests.
type Status uint8

const (
	StatusIdle      Status = 0
	StatusRunning   Status = 1
	StatusCompleted Status = 2
	StatusFailed    Status = 3
)

// Command is a two-byte little-endian enum.
type Command uint16

const (
	CommandStart Command = 0x1000
	CommandStop  Command = 0x2000
	CommandPause Command = 0x3000
)

// Verdict is a signed enum with a negative discriminant.
type Verdict int16

const (
	VerdictReject Verdict = -1
	VerdictAccept Verdict = 1
)

func init() {
	byteable.MustRegisterEnum([]Status{StatusIdle, StatusRunning, StatusCompleted, StatusFailed})
	byteable.MustRegisterEnum([]Command{CommandStart, CommandStop, CommandPause},
		byteable.WithByteOrder(byteable.OrderLittleEndian))
	byteable.MustRegisterEnum([]Verdict{VerdictReject, VerdictAccept},
		byteable.WithByteOrder(byteable.OrderBigEndian))
}

func TestEnum_EncodeDecodeAllVariants(t *testing.T) {
	layout, err := byteable.For[Status]()
	require.NoError(t, err)
	require.Equal(t, 1, layout.Size())
	require.False(t, layout.Infallible())

	for _, s := range []Status{StatusIdle, StatusRunning, StatusCompleted, StatusFailed} {
		ba := layout.Marshal(s)
		require.Equal(t, byteable.ByteArray{uint8(s)}, ba)

		out, err := layout.Unmarshal(ba)
		require.NoError(t, err)
		require.Equal(t, s, out)
	}
}

func TestEnum_InvalidDiscriminant(t *testing.T) {
	layout, err := byteable.For[Status]()
	require.NoError(t, err)

	_, err = layout.Unmarshal(byteable.ByteArray{255})
	require.ErrorIs(t, err, byteable.ErrUnknownDiscriminant)

	var enumErr *byteable.EnumError
	require.ErrorAs(t, err, &enumErr)
	require.Equal(t, "Status", enumErr.Type)
	require.Equal(t, byteable.DiscriminantOf(Status(255)), enumErr.Discriminant)
	require.Contains(t, enumErr.Error(), "255 (uint8)")
	require.Contains(t, enumErr.Error(), "Status")
}

func TestEnum_TwoByteLittleEndian(t *testing.T) {
	layout, err := byteable.For[Command]()
	require.NoError(t, err)
	require.Equal(t, 2, layout.Size())

	ba := layout.Marshal(CommandPause)
	require.Equal(t, byteable.ByteArray{0x00, 0x30}, ba)

	out, err := layout.Unmarshal(ba)
	require.NoError(t, err)
	require.Equal(t, CommandPause, out)

	_, err = layout.Unmarshal(byteable.ByteArray{0x99, 0x99})
	require.ErrorIs(t, err, byteable.ErrUnknownDiscriminant)
}

func TestEnum_SignedDiscriminant(t *testing.T) {
	layout, err := byteable.For[Verdict]()
	require.NoError(t, err)

	// -1 big-endian is 0xFFFF
	ba := layout.Marshal(VerdictReject)
	require.Equal(t, byteable.ByteArray{0xFF, 0xFF}, ba)

	out, err := layout.Unmarshal(ba)
	require.NoError(t, err)
	require.Equal(t, VerdictReject, out)

	_, err = layout.Unmarshal(byteable.ByteArray{0xFF, 0xFD})
	var enumErr *byteable.EnumError
	require.ErrorAs(t, err, &enumErr)
	require.Contains(t, enumErr.Error(), "-3 (int16)")
}

func TestEnum_TryTransparentField(t *testing.T) {
	type Message struct {
		Status  Status `byteable:"try_transparent"`
		Payload uint64 `byteable:"little_endian"`
	}
	layout, err := byteable.For[Message]()
	require.NoError(t, err)
	require.Equal(t, 9, layout.Size())
	require.False(t, layout.Infallible())

	in := Message{Status: StatusRunning, Payload: 0xABCDEF}
	out, err := layout.Unmarshal(layout.Marshal(in))
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestEnum_TryTransparentPropagatesVerbatim(t *testing.T) {
	type Message struct {
		Status  Status `byteable:"try_transparent"`
		Payload uint8
	}
	layout, err := byteable.For[Message]()
	require.NoError(t, err)

	// Decode the struct with a bad status byte, then decode the enum
	// alone from the same byte: the error payloads must match exactly.
	_, structErr := layout.Unmarshal(byteable.ByteArray{77, 0})
	_, enumOnlyErr := byteable.Unmarshal[Status](byteable.ByteArray{77})

	var fromStruct, fromEnum *byteable.EnumError
	require.ErrorAs(t, structErr, &fromStruct)
	require.ErrorAs(t, enumOnlyErr, &fromEnum)
	require.Equal(t, fromEnum.Type, fromStruct.Type)
	require.Equal(t, fromEnum.Discriminant, fromStruct.Discriminant)
}

func TestEnum_FieldWithoutTryIsRejected(t *testing.T) {
	type Bad struct {
		Status Status // fallible type, no try_transparent
	}
	_, err := byteable.For[Bad]()
	require.ErrorIs(t, err, byteable.ErrFallibleField)

	type AlsoBad struct {
		Cmd Command `byteable:"little_endian"`
	}
	_, err = byteable.For[AlsoBad]()
	require.ErrorIs(t, err, byteable.ErrFallibleField)
}

func TestEnum_TransparentOnFallibleNested(t *testing.T) {
	type Inner struct {
		Status Status `byteable:"try_transparent"`
	}
	type Bad struct {
		Inner Inner `byteable:"transparent"` // must be try_transparent
	}
	_, err := byteable.For[Bad]()
	require.ErrorIs(t, err, byteable.ErrFallibleField)
}

func TestEnum_TryTransparentNestedStruct(t *testing.T) {
	type Inner struct {
		Status Status `byteable:"try_transparent"`
		Extra  uint8
	}
	type Outer struct {
		Lead  uint8
		Inner Inner `byteable:"try_transparent"`
	}
	layout, err := byteable.For[Outer]()
	require.NoError(t, err)
	require.False(t, layout.Infallible())
	require.Equal(t, 3, layout.Size())

	in := Outer{Lead: 9, Inner: Inner{Status: StatusFailed, Extra: 4}}
	out, err := layout.Unmarshal(layout.Marshal(in))
	require.NoError(t, err)
	require.Equal(t, in, out)

	_, err = layout.Unmarshal(byteable.ByteArray{9, 200, 4})
	require.ErrorIs(t, err, byteable.ErrUnknownDiscriminant)
}

func TestRegisterEnum_EmptyVariants(t *testing.T) {
	type Hollow uint8
	err := byteable.RegisterEnum([]Hollow{})
	require.ErrorIs(t, err, byteable.ErrNoVariants)
}

func TestRegisterEnum_DuplicateDiscriminant(t *testing.T) {
	type Doubled uint8
	err := byteable.RegisterEnum([]Doubled{1, 2, 1})
	require.ErrorIs(t, err, byteable.ErrDuplicateDiscriminant)
	require.Contains(t, err.Error(), "1 (uint8)")
}

func TestRegisterEnum_MultiByteRequiresOrder(t *testing.T) {
	type Wide uint32
	err := byteable.RegisterEnum([]Wide{1, 2})
	require.ErrorIs(t, err, byteable.ErrMissingByteOrder)

	require.NoError(t, byteable.RegisterEnum([]Wide{1, 2},
		byteable.WithByteOrder(byteable.OrderBigEndian)))
}

func TestRegisterEnum_InvalidOrderKeyword(t *testing.T) {
	type Sideways uint16
	err := byteable.RegisterEnum([]Sideways{1}, byteable.WithByteOrder("middle"))
	require.ErrorIs(t, err, byteable.ErrUnknownTag)
}

func TestRegisterEnum_Redefinition(t *testing.T) {
	type Once uint8
	require.NoError(t, byteable.RegisterEnum([]Once{1}))
	err := byteable.RegisterEnum([]Once{1, 2})
	require.ErrorIs(t, err, byteable.ErrEnumRedefined)
}

func TestDiscriminant_String(t *testing.T) {
	require.Equal(t, "255 (uint8)", byteable.DiscriminantOf(uint8(255)).String())
	require.Equal(t, "-2 (int16)", byteable.DiscriminantOf(int16(-2)).String())
	require.Equal(t, "4096 (uint16)", byteable.DiscriminantOf(Command(0x1000)).String())
}
