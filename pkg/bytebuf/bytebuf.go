// Package bytebuf provides a big-endian, cursor-addressable byte buffer
// used by the SMF codec for both decoding and encoding.
//
// The buffer keeps a single absolute cursor shared by reads and writes.
// Writes grow the backing store as needed and may overwrite earlier bytes
// when the cursor has been moved back, which is how the track codec
// backpatches its length field.
package bytebuf

import (
	"errors"
	"fmt"
)

// ErrShortRead is returned when a read or peek needs more bytes than
// remain between the cursor and the end of the buffer.
var ErrShortRead = errors.New("not enough bytes in buffer")

// ErrBadCursor is returned when the cursor would be moved outside the
// buffer.
var ErrBadCursor = errors.New("cursor out of range")

// Buffer is a growable byte store with an absolute read/write cursor.
// The zero value is an empty buffer ready for writing. A Buffer must not
// be shared between concurrent decode or encode passes.
type Buffer struct {
	data   []byte
	cursor int
}

// New returns a buffer reading from (and potentially overwriting) data.
// The buffer takes ownership of the slice.
func New(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Len returns the number of bytes currently in the buffer.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Remaining returns the number of bytes between the cursor and the end.
func (b *Buffer) Remaining() int {
	return len(b.data) - b.cursor
}

// Cursor returns the current absolute byte offset.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// SetCursor moves the cursor to the absolute offset pos. The cursor may
// be placed one past the last byte (the append position).
func (b *Buffer) SetCursor(pos int) error {
	if pos < 0 || pos > len(b.data) {
		return fmt.Errorf("%w: %d (len %d)", ErrBadCursor, pos, len(b.data))
	}
	b.cursor = pos
	return nil
}

// Skip advances the cursor by n bytes without interpreting them.
func (b *Buffer) Skip(n int) error {
	return b.SetCursor(b.cursor + n)
}

// ReadUint8 reads one byte and advances the cursor.
func (b *Buffer) ReadUint8() (byte, error) {
	if b.Remaining() < 1 {
		return 0, fmt.Errorf("%w: need 1 byte at offset %d", ErrShortRead, b.cursor)
	}
	v := b.data[b.cursor]
	b.cursor++
	return v, nil
}

// ReadBytes reads n bytes and advances the cursor. The returned slice is
// a copy and stays valid after further buffer operations.
func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	if n < 0 || b.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d (have %d)",
			ErrShortRead, n, b.cursor, b.Remaining())
	}
	v := make([]byte, n)
	copy(v, b.data[b.cursor:b.cursor+n])
	b.cursor += n
	return v, nil
}

// PeekBytes returns the next n bytes without moving the cursor.
func (b *Buffer) PeekBytes(n int) ([]byte, error) {
	if n < 0 || b.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d (have %d)",
			ErrShortRead, n, b.cursor, b.Remaining())
	}
	v := make([]byte, n)
	copy(v, b.data[b.cursor:b.cursor+n])
	return v, nil
}

// ReadUint16 reads a big-endian 16-bit value.
func (b *Buffer) ReadUint16() (uint16, error) {
	raw, err := b.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(raw[0])<<8 | uint16(raw[1]), nil
}

// ReadUint32 reads a big-endian 32-bit value.
func (b *Buffer) ReadUint32() (uint32, error) {
	raw, err := b.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(raw[0])<<24 | uint32(raw[1])<<16 | uint32(raw[2])<<8 | uint32(raw[3]), nil
}

// grow ensures the backing store covers [0, end).
func (b *Buffer) grow(end int) {
	if end <= len(b.data) {
		return
	}
	if end <= cap(b.data) {
		b.data = b.data[:end]
		return
	}
	next := make([]byte, end, max(end, 2*cap(b.data)+64))
	copy(next, b.data)
	b.data = next
}

// WriteUint8 writes one byte at the cursor, growing the buffer if the
// cursor is at the end.
func (b *Buffer) WriteUint8(v byte) {
	b.grow(b.cursor + 1)
	b.data[b.cursor] = v
	b.cursor++
}

// WriteBytes writes p at the cursor.
func (b *Buffer) WriteBytes(p []byte) {
	b.grow(b.cursor + len(p))
	copy(b.data[b.cursor:], p)
	b.cursor += len(p)
}

// WriteUint16 writes a big-endian 16-bit value at the cursor.
func (b *Buffer) WriteUint16(v uint16) {
	b.WriteBytes([]byte{byte(v >> 8), byte(v)})
}

// WriteUint32 writes a big-endian 32-bit value at the cursor.
func (b *Buffer) WriteUint32(v uint32) {
	b.WriteBytes([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

// Bytes returns exactly the bytes written so far. The slice aliases the
// backing store; callers that keep writing should copy it first.
func (b *Buffer) Bytes() []byte {
	return b.data
}
