package byteable

import (
	"context"
	"io"
	"time"
)

// Stream collaborators: read or write exactly one wire image per call.
//
// I/O errors stay structurally distinct from conversion errors. A short
// read surfaces as the reader's own error (io.ErrUnexpectedEOF from
// io.ReadFull), never as a SizeError or EnumError, so callers can always
// tell "the bytes never arrived" from "the bytes arrived but did not
// decode".

// Read reads exactly Size[T]() bytes from r and decodes them.
//
//	header, err := byteable.Read[Header](conn)
func Read[T any](r io.Reader) (T, error) {
	var zero T
	layout, err := For[T]()
	if err != nil {
		return zero, err
	}

	ba := layout.NewByteArray()
	if _, err := io.ReadFull(r, ba); err != nil {
		return zero, err
	}

	start := time.Now()
	v, err := layout.Unmarshal(ba)
	emitDecodeComplete(context.Background(), layout.TypeName(), len(ba), time.Since(start), err)
	return v, err
}

// Write encodes v and writes its full wire image to w. A partial write
// surfaces as the writer's error, or io.ErrShortWrite if the writer lied
// about the count.
func Write[T any](w io.Writer, v T) error {
	layout, err := For[T]()
	if err != nil {
		return err
	}

	start := time.Now()
	ba := layout.Marshal(v)
	emitEncodeComplete(context.Background(), layout.TypeName(), len(ba), time.Since(start))

	n, err := w.Write(ba)
	if err != nil {
		return err
	}
	if n != len(ba) {
		return io.ErrShortWrite
	}
	return nil
}
