package jww

import "github.com/roboco-io/jww2dxf/internal/binreader"

// fields reads a run of record fields and keeps the first error, so a
// decoder can read a whole record and check once at the end.
type fields struct {
	r   *binreader.Reader
	err error
}

func (f *fields) u8() uint8 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.U8()
	f.err = err
	return v
}

func (f *fields) u16() uint16 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.U16()
	f.err = err
	return v
}

func (f *fields) u32() uint32 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.U32()
	f.err = err
	return v
}

func (f *fields) f64() float64 {
	if f.err != nil {
		return 0
	}
	v, err := f.r.F64()
	f.err = err
	return v
}

func (f *fields) cstring() string {
	if f.err != nil {
		return ""
	}
	v, err := f.r.String(binreader.MFCLength)
	f.err = err
	return v
}
