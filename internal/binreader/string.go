package binreader

import (
	"bytes"
	"unicode/utf8"

	"github.com/roboco-io/jww2dxf/internal/diag"
)

// Placeholder replaces byte sequences that cannot be decoded.
const Placeholder = '�'

// LengthFunc reads a string length prefix.
type LengthFunc func(r *Reader) (int, error)

// Len8 reads a one-byte length prefix.
func Len8(r *Reader) (int, error) {
	v, err := r.U8()
	return int(v), err
}

// Len16 reads a WORD length prefix.
func Len16(r *Reader) (int, error) {
	v, err := r.U16()
	return int(v), err
}

// Len32 reads a DWORD length prefix.
func Len32(r *Reader) (int, error) {
	v, err := r.U32()
	if err != nil {
		return 0, err
	}
	if uint64(v) > uint64(r.Remaining()) {
		return 0, diag.Errorf(diag.KindUnexpectedEOF, r.Offset(), "string length %d exceeds buffer", v)
	}
	return int(v), nil
}

// MFCLength reads an MFC CString length: a byte, escalating to a WORD after
// 0xFF and to a DWORD after 0xFFFF.
func MFCLength(r *Reader) (int, error) {
	b, err := r.U8()
	if err != nil {
		return 0, err
	}
	if b < 0xFF {
		return int(b), nil
	}
	w, err := r.U16()
	if err != nil {
		return 0, err
	}
	if w < 0xFFFF {
		return int(w), nil
	}
	return Len32(r)
}

// String reads a length-prefixed legacy-encoded string and returns it as UTF-8.
// Trailing NUL bytes are dropped. On failure the cursor is restored.
func (r *Reader) String(prefix LengthFunc) (string, error) {
	start := r.offset
	n, err := prefix(r)
	if err != nil {
		r.offset = start
		return "", err
	}
	raw, err := r.Bytes(n)
	if err != nil {
		r.offset = start
		return "", err
	}
	return r.Decode(raw), nil
}

// FixedString reads n bytes and decodes them, stopping at the first NUL.
func (r *Reader) FixedString(n int) (string, error) {
	raw, err := r.Bytes(n)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return r.Decode(raw), nil
}

// Decode converts legacy-encoded bytes to UTF-8. Undecodable sequences become
// Placeholder instead of failing.
func (r *Reader) Decode(raw []byte) string {
	raw = bytes.TrimRight(raw, "\x00")
	if len(raw) == 0 {
		return ""
	}
	out, err := r.enc.NewDecoder().Bytes(raw)
	if err == nil {
		return string(out)
	}
	return r.decodeLossy(raw)
}

// decodeLossy decodes one character at a time so a bad sequence only costs
// a single placeholder.
func (r *Reader) decodeLossy(raw []byte) string {
	var sb bytes.Buffer
	dec := r.enc.NewDecoder()
	for i := 0; i < len(raw); {
		if raw[i] < 0x80 {
			sb.WriteByte(raw[i])
			i++
			continue
		}
		decoded := false
		for width := 1; width <= 2 && i+width <= len(raw); width++ {
			out, err := dec.Bytes(raw[i : i+width])
			if err == nil && utf8.Valid(out) && len(out) > 0 {
				sb.Write(out)
				i += width
				decoded = true
				break
			}
		}
		if !decoded {
			sb.WriteRune(Placeholder)
			i++
		}
	}
	return sb.String()
}
