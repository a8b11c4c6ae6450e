package jww

import (
	"encoding/binary"
	"strings"

	"github.com/roboco-io/jww2dxf/internal/binreader"
	"github.com/roboco-io/jww2dxf/internal/diag"
)

// archive tracks MFC CArchive object tags. Classes and objects draw their
// PIDs from one counter that lives for the whole body.
type archive struct {
	r       *binreader.Reader
	version uint32
	classes map[uint32]string // PID -> class name
	nextPID uint32
}

func newArchive(r *binreader.Reader, version uint32) *archive {
	return &archive{
		r:       r,
		version: version,
		classes: make(map[uint32]string),
		nextPID: 1,
	}
}

// readObjectTag reads the tag in front of an object and returns its class
// name. null is true for a NULL object, which has no body.
// The object's PID is taken before its body is read, as MFC does, so nested
// objects are numbered after their parent.
func (a *archive) readObjectTag() (class string, null bool, err error) {
	start := a.r.Offset()
	w, err := a.r.U16()
	if err != nil {
		return "", false, err
	}

	switch {
	case w == tagNewClass:
		f := fields{r: a.r}
		_ = f.u16() // schema
		n := f.u16()
		if f.err != nil {
			return "", false, f.err
		}
		name, err := a.r.Bytes(int(n))
		if err != nil {
			return "", false, err
		}
		class = string(name)
		a.classes[a.nextPID] = class
		a.nextPID++

	case w == tagNull:
		return "", true, nil

	case w == tagBigObject:
		dw, err := a.r.U32()
		if err != nil {
			return "", false, err
		}
		if dw&bigClassFlag == 0 {
			return "", false, diag.Errorf(diag.KindUnknownEntityType, start,
				"object back-reference %d is not supported", dw)
		}
		if class, err = a.lookup(dw&^bigClassFlag, start); err != nil {
			return "", false, err
		}

	case w&tagClassFlag != 0:
		if class, err = a.lookup(uint32(w&^tagClassFlag), start); err != nil {
			return "", false, err
		}

	default:
		return "", false, diag.Errorf(diag.KindUnknownEntityType, start,
			"object back-reference %d is not supported", w)
	}

	a.nextPID++
	return class, false, nil
}

func (a *archive) lookup(pid uint32, offset int64) (string, error) {
	class, ok := a.classes[pid]
	if !ok {
		return "", diag.Errorf(diag.KindUnknownEntityType, offset, "class PID %d was never defined", pid)
	}
	return class, nil
}

// readCount reads an MFC collection count: a WORD, or 0xFFFF followed by a DWORD.
func (a *archive) readCount() (int, error) {
	start := a.r.Offset()
	w, err := a.r.U16()
	if err != nil {
		return 0, err
	}
	if w != countEscape {
		return int(w), nil
	}
	dw, err := a.r.U32()
	if err != nil {
		_ = a.r.Seek(start)
		return 0, err
	}
	return int(dw), nil
}

// isEntityClassTag reports whether data[i:] starts with a new-class tag for a
// CData class written with schema version.
func isEntityClassTag(data []byte, i int, version uint32) (name string, ok bool) {
	if i < 0 || i+6 > len(data) {
		return "", false
	}
	if binary.LittleEndian.Uint16(data[i:]) != tagNewClass {
		return "", false
	}
	if binary.LittleEndian.Uint16(data[i+2:]) != uint16(version) {
		return "", false
	}
	n := int(binary.LittleEndian.Uint16(data[i+4:]))
	if n < minClassNameLen || n > maxClassNameLen || i+6+n > len(data) {
		return "", false
	}
	name = string(data[i+6 : i+6+n])
	if !strings.HasPrefix(name, classPrefix) || !isIdent(name) {
		return "", false
	}
	return name, true
}

func isIdent(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			return false
		}
	}
	return true
}
