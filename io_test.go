package byteable_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zoobzio/byteable"
)

func TestRead_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	in := PacketHeader{Version: 1, Flags: 2, Length: 300, Serial: 0xCAFEBABE}

	require.NoError(t, byteable.Write(&buf, in))
	require.Equal(t, 8, buf.Len())

	out, err := byteable.Read[PacketHeader](&buf)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestRead_Sequential(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, byteable.Write[uint8](&buf, 1))
	require.NoError(t, byteable.Write[uint8](&buf, 2))
	require.NoError(t, byteable.Write[uint8](&buf, 3))

	for want := uint8(1); want <= 3; want++ {
		got, err := byteable.Read[uint8](&buf)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestRead_ShortReadIsIOError(t *testing.T) {
	// Three bytes where the layout needs eight: the failure is the
	// reader's, not a conversion error.
	r := bytes.NewReader([]byte{1, 2, 3})
	_, err := byteable.Read[PacketHeader](r)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	require.NotErrorIs(t, err, byteable.ErrSize)
	require.NotErrorIs(t, err, byteable.ErrUnknownDiscriminant)
}

func TestRead_EmptyReaderIsEOF(t *testing.T) {
	_, err := byteable.Read[PacketHeader](bytes.NewReader(nil))
	require.ErrorIs(t, err, io.EOF)
}

func TestRead_DecodeErrorIsConversionError(t *testing.T) {
	r := bytes.NewReader([]byte{255})
	_, err := byteable.Read[Status](r)
	require.ErrorIs(t, err, byteable.ErrUnknownDiscriminant)
}

type failingWriter struct{ err error }

func (w failingWriter) Write(p []byte) (int, error) { return 0, w.err }

type shortWriter struct{}

func (w shortWriter) Write(p []byte) (int, error) { return len(p) - 1, nil }

func TestWrite_PropagatesWriterError(t *testing.T) {
	wantErr := errors.New("connection reset")
	err := byteable.Write(failingWriter{err: wantErr}, PacketHeader{})
	require.ErrorIs(t, err, wantErr)
}

func TestWrite_ShortWrite(t *testing.T) {
	err := byteable.Write(shortWriter{}, PacketHeader{})
	require.ErrorIs(t, err, io.ErrShortWrite)
}

func TestWrite_SchemaErrorSurfaces(t *testing.T) {
	type Bad struct{ N uint32 }
	var buf bytes.Buffer
	err := byteable.Write(&buf, Bad{})
	require.ErrorIs(t, err, byteable.ErrMissingEndianness)
}
