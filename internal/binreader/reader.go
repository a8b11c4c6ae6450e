// Package binreader provides a bounds-checked little-endian cursor over a byte buffer.
//
// The reader knows nothing about JWW. Every read either succeeds and advances
// the cursor, or fails with a diag.KindUnexpectedEOF error and leaves the
// cursor where it was.
package binreader

import (
	"encoding/binary"
	"math"

	"github.com/roboco-io/jww2dxf/internal/diag"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
)

// Reader reads typed values from an immutable byte buffer.
type Reader struct {
	data   []byte
	offset int
	enc    encoding.Encoding
}

// New creates a reader over data that decodes legacy strings as Shift-JIS.
func New(data []byte) *Reader {
	return &Reader{
		data: data,
		enc:  japanese.ShiftJIS,
	}
}

// NewWithEncoding creates a reader that decodes legacy strings with enc.
func NewWithEncoding(data []byte, enc encoding.Encoding) *Reader {
	return &Reader{
		data: data,
		enc:  enc,
	}
}

// Offset returns the current cursor position.
func (r *Reader) Offset() int64 {
	return int64(r.offset)
}

// Len returns the size of the underlying buffer.
func (r *Reader) Len() int {
	return len(r.data)
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.offset
}

// Seek moves the cursor to an absolute offset within the buffer.
func (r *Reader) Seek(offset int64) error {
	if offset < 0 || offset > int64(len(r.data)) {
		return diag.Errorf(diag.KindUnexpectedEOF, offset, "seek outside buffer of %d bytes", len(r.data))
	}
	r.offset = int(offset)
	return nil
}

// Clone returns an independent cursor over the same buffer.
func (r *Reader) Clone() *Reader {
	c := *r
	return &c
}

// Peek returns the next n bytes without advancing. The slice aliases the buffer.
func (r *Reader) Peek(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	return r.data[r.offset : r.offset+n], nil
}

// Bytes reads a fixed-length slice. The slice aliases the buffer and must not be modified.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.data[r.offset : r.offset+n]
	r.offset += n
	return b, nil
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) error {
	if err := r.need(n); err != nil {
		return err
	}
	r.offset += n
	return nil
}

func (r *Reader) need(n int) error {
	if n < 0 {
		return diag.Errorf(diag.KindUnexpectedEOF, int64(r.offset), "negative length %d", n)
	}
	if n > len(r.data)-r.offset {
		return diag.Errorf(diag.KindUnexpectedEOF, int64(r.offset),
			"need %d bytes, have %d", n, len(r.data)-r.offset)
	}
	return nil
}

// U8 reads an unsigned byte.
func (r *Reader) U8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.data[r.offset]
	r.offset++
	return v, nil
}

// U16 reads a little-endian uint16 (WORD).
func (r *Reader) U16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.data[r.offset:])
	r.offset += 2
	return v, nil
}

// U32 reads a little-endian uint32 (DWORD).
func (r *Reader) U32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.data[r.offset:])
	r.offset += 4
	return v, nil
}

// U64 reads a little-endian uint64.
func (r *Reader) U64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.data[r.offset:])
	r.offset += 8
	return v, nil
}

// I8 reads a signed byte.
func (r *Reader) I8() (int8, error) {
	v, err := r.U8()
	return int8(v), err
}

// I16 reads a little-endian int16.
func (r *Reader) I16() (int16, error) {
	v, err := r.U16()
	return int16(v), err
}

// I32 reads a little-endian int32.
func (r *Reader) I32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

// I64 reads a little-endian int64.
func (r *Reader) I64() (int64, error) {
	v, err := r.U64()
	return int64(v), err
}

// F32 reads a little-endian IEEE-754 single.
func (r *Reader) F32() (float32, error) {
	v, err := r.U32()
	return math.Float32frombits(v), err
}

// F64 reads a little-endian IEEE-754 double.
func (r *Reader) F64() (float64, error) {
	v, err := r.U64()
	return math.Float64frombits(v), err
}
