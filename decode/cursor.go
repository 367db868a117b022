// Package decode implements the X431 diagnostic log decoder: it locates
// the channel metadata table embedded in a log buffer, resolves the
// per-channel name, unit and calibration parameters, and streams the
// timestamped records that follow as rows of resolved numeric values.
package decode

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
)

// Cursor is a sequential, bounds-checked reader over an in-memory log
// buffer. It tracks a current offset and never reads past the buffer
// end; it is the single bounds-checking choke point, no other component
// indexes the buffer directly.
type Cursor struct {
	buf   []byte
	off   int
	order binary.ByteOrder
}

// NewCursor creates a cursor positioned at the start of buf. A nil byte
// order defaults to little endian, the order used by the scanner logs.
func NewCursor(buf []byte, order binary.ByteOrder) *Cursor {
	if order == nil {
		order = binary.LittleEndian
	}
	return &Cursor{buf: buf, order: order}
}

// Offset returns the current absolute offset.
func (c *Cursor) Offset() int {
	return c.off
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.off
}

// Seek moves the cursor to an absolute offset. Seeking to the buffer
// length is allowed and leaves the cursor with zero remaining bytes.
func (c *Cursor) Seek(off int) error {
	if off < 0 || off > len(c.buf) {
		return newError(KindInvalidOffset, off, "seek target outside buffer of %d bytes", len(c.buf))
	}
	c.off = off
	return nil
}

func (c *Cursor) need(n int) error {
	if n < 0 || n > c.Remaining() {
		return newError(KindTruncatedInput, c.off, "need %d bytes, %d remain", n, c.Remaining())
	}
	return nil
}

// ReadBytes reads a fixed-length run of n bytes. The returned slice
// aliases the underlying buffer and must not be modified.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

// ReadUint8 reads one unsigned byte.
func (c *Cursor) ReadUint8() (uint8, error) {
	b, err := c.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16 reads an unsigned 16-bit integer in the cursor's byte order.
func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return c.order.Uint16(b), nil
}

// ReadUint32 reads an unsigned 32-bit integer in the cursor's byte order.
func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return c.order.Uint32(b), nil
}

// ReadFloat64 reads an IEEE-754 double in the cursor's byte order.
func (c *Cursor) ReadFloat64() (float64, error) {
	b, err := c.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(c.order.Uint64(b)), nil
}

// ReadCString reads a string of at most max bytes, stopping at a null
// terminator when one occurs first. The terminator is consumed; trailing
// null and space padding is trimmed from the result. The returned string
// is an owned copy, independent of the buffer.
func (c *Cursor) ReadCString(max int) (string, error) {
	if max <= 0 {
		return "", nil
	}
	n := max
	if rem := c.Remaining(); n > rem {
		n = rem
	}
	window := c.buf[c.off : c.off+n]
	if i := bytes.IndexByte(window, 0); i >= 0 {
		c.off += i + 1
		return trimPadding(window[:i]), nil
	}
	if n < max {
		return "", newError(KindTruncatedInput, c.off, "unterminated string: need up to %d bytes, %d remain", max, n)
	}
	c.off += max
	return trimPadding(window), nil
}

func trimPadding(b []byte) string {
	return strings.TrimRight(string(b), "\x00 ")
}
