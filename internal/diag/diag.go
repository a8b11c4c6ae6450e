// Package diag defines the error taxonomy shared by the JWW parser and the DXF converter.
//
// Fatal conditions are returned as *Error. Record-level problems that do not
// abort a call are collected as Diagnostic values in a List.
package diag

import (
	"errors"
	"fmt"
)

// Kind identifies one member of the closed error taxonomy.
type Kind int

const (
	KindUnexpectedEOF            Kind = iota + 1 // read past the end of the buffer
	KindInvalidHeader                            // signature or version family not recognized
	KindUnknownEntityType                        // type tag without a decoder
	KindUnresolvedBlockReference                 // block insert with no definition
	KindLossyConversion                          // no exact DXF representation
)

// String returns the taxonomy name of the kind.
func (k Kind) String() string {
	switch k {
	case KindUnexpectedEOF:
		return "UnexpectedEof"
	case KindInvalidHeader:
		return "InvalidHeader"
	case KindUnknownEntityType:
		return "UnknownEntityType"
	case KindUnresolvedBlockReference:
		return "UnresolvedBlockReference"
	case KindLossyConversion:
		return "LossyConversion"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText lets kinds appear by name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name produced by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	for c := KindUnexpectedEOF; c <= KindLossyConversion; c++ {
		if c.String() == string(text) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown diagnostic kind %q", text)
}

// NoOffset marks errors and diagnostics that have no meaningful byte position.
const NoOffset int64 = -1

// Error is a fatal decode or convert failure.
type Error struct {
	Kind   Kind
	Offset int64 // byte offset into the input, or NoOffset
	Msg    string
	Err    error
}

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrUnexpectedEOF            = &Error{Kind: KindUnexpectedEOF, Offset: NoOffset}
	ErrInvalidHeader            = &Error{Kind: KindInvalidHeader, Offset: NoOffset}
	ErrUnknownEntityType        = &Error{Kind: KindUnknownEntityType, Offset: NoOffset}
	ErrUnresolvedBlockReference = &Error{Kind: KindUnresolvedBlockReference, Offset: NoOffset}
	ErrLossyConversion          = &Error{Kind: KindLossyConversion, Offset: NoOffset}
)

// Errorf creates an Error of the given kind at offset.
func Errorf(kind Kind, offset int64, format string, args ...any) *Error {
	return &Error{Kind: kind, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error of the given kind that wraps cause.
func Wrap(kind Kind, offset int64, cause error, msg string) *Error {
	return &Error{Kind: kind, Offset: offset, Msg: msg, Err: cause}
}

func (e *Error) Error() string {
	s := e.Kind.String()
	if e.Offset != NoOffset {
		s += fmt.Sprintf(" at offset %d", e.Offset)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// OffsetOf returns the offset of the first *Error in err's chain, or NoOffset.
func OffsetOf(err error) int64 {
	var e *Error
	if errors.As(err, &e) {
		return e.Offset
	}
	return NoOffset
}
