/*
Package endian implements a binary writer whose byte order can be changed at
any point in the stream.

Engine container formats mix byte orders within a single file, so the order
is a property of the writer rather than of each call. The writer also tracks
how many bytes it has written so it can pad the stream to an alignment
boundary.
*/
package endian

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

var (
	// ErrInvalidAlignment is recorded when Align is asked for a boundary
	// that is not a positive power of two.
	ErrInvalidAlignment = errors.New("endian: alignment must be a power of two")
)

var zeroes [16]byte

// Writer writes fixed width values to an underlying io.Writer. The first
// error returned by the underlying writer is kept and every following write
// becomes a no-op; use Err to check it.
type Writer struct {
	w     io.Writer
	order binary.ByteOrder
	pos   int64
	err   error
	tmp   [8]byte
}

// NewWriter returns a Writer writing to w using the given byte order.
func NewWriter(w io.Writer, order binary.ByteOrder) *Writer {
	return &Writer{
		w:     w,
		order: order,
	}
}

// Order returns the byte order currently in use.
func (w *Writer) Order() binary.ByteOrder {
	return w.order
}

// SetOrder changes the byte order used by every following write.
func (w *Writer) SetOrder(order binary.ByteOrder) {
	w.order = order
}

// Position returns the number of bytes written so far.
func (w *Writer) Position() int64 {
	return w.pos
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error {
	return w.err
}

// Write writes p unchanged. It implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(p)
	w.pos += int64(n)
	if err == nil && n != len(p) {
		err = io.ErrShortWrite
	}
	w.err = err
	return n, err
}

func (w *Writer) write(p []byte) {
	_, _ = w.Write(p)
}

func (w *Writer) WriteUint8(v uint8) {
	w.tmp[0] = v
	w.write(w.tmp[:1])
}

func (w *Writer) WriteInt8(v int8) {
	w.WriteUint8(uint8(v))
}

// WriteBool writes a single byte, 1 for true and 0 for false.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteUint8(1)
		return
	}
	w.WriteUint8(0)
}

func (w *Writer) WriteUint16(v uint16) {
	w.order.PutUint16(w.tmp[:2], v)
	w.write(w.tmp[:2])
}

func (w *Writer) WriteInt16(v int16) {
	w.WriteUint16(uint16(v))
}

func (w *Writer) WriteUint32(v uint32) {
	w.order.PutUint32(w.tmp[:4], v)
	w.write(w.tmp[:4])
}

func (w *Writer) WriteInt32(v int32) {
	w.WriteUint32(uint32(v))
}

func (w *Writer) WriteUint64(v uint64) {
	w.order.PutUint64(w.tmp[:8], v)
	w.write(w.tmp[:8])
}

func (w *Writer) WriteInt64(v int64) {
	w.WriteUint64(uint64(v))
}

func (w *Writer) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

func (w *Writer) WriteFloat64(v float64) {
	w.WriteUint64(math.Float64bits(v))
}

// WriteCString writes the bytes of s followed by a NUL byte.
func (w *Writer) WriteCString(s string) {
	w.write([]byte(s))
	w.WriteUint8(0)
}

// WriteAlignedString writes the length of s as a 32-bit integer, the bytes
// of s and then pads the stream to the next 4 byte boundary.
func (w *Writer) WriteAlignedString(s string) {
	w.WriteUint32(uint32(len(s)))
	w.write([]byte(s))
	w.Align(4)
}

// Align writes zero bytes until the position is a multiple of n.
func (w *Writer) Align(n int) {
	if n <= 0 || n&(n-1) != 0 {
		if w.err == nil {
			w.err = ErrInvalidAlignment
		}
		return
	}
	pad := int((int64(n) - w.pos%int64(n)) % int64(n))
	for pad > 0 {
		chunk := pad
		if chunk > len(zeroes) {
			chunk = len(zeroes)
		}
		w.write(zeroes[:chunk])
		pad -= chunk
	}
}

// Pad writes n zero bytes.
func (w *Writer) Pad(n int) {
	for n > 0 {
		chunk := n
		if chunk > len(zeroes) {
			chunk = len(zeroes)
		}
		w.write(zeroes[:chunk])
		n -= chunk
	}
}

// RoundUp returns v rounded up to the next multiple of n, which must be a
// power of two.
func RoundUp(v, n int64) int64 {
	return (v + n - 1) &^ (n - 1)
}
