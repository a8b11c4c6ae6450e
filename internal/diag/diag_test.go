package diag

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_IsMatchesKind(t *testing.T) {
	err := Errorf(KindInvalidHeader, 0, "bad signature %q", "XXXX")
	wrapped := fmt.Errorf("parse: %w", err)

	if !errors.Is(wrapped, ErrInvalidHeader) {
		t.Error("expected wrapped error to match ErrInvalidHeader")
	}
	if errors.Is(wrapped, ErrUnexpectedEOF) {
		t.Error("expected wrapped error not to match ErrUnexpectedEOF")
	}
	if KindOf(wrapped) != KindInvalidHeader {
		t.Errorf("expected InvalidHeader, got %s", KindOf(wrapped))
	}
	if OffsetOf(wrapped) != 0 {
		t.Errorf("expected offset 0, got %d", OffsetOf(wrapped))
	}
}

func TestError_Message(t *testing.T) {
	cause := errors.New("short buffer")
	err := Wrap(KindUnexpectedEOF, 42, cause, "reading line")

	got := err.Error()
	for _, want := range []string{"UnexpectedEof", "offset 42", "reading line", "short buffer"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in %q", want, got)
		}
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}

	noOffset := Errorf(KindLossyConversion, NoOffset, "x")
	if strings.Contains(noOffset.Error(), "offset") {
		t.Errorf("expected no offset in %q", noOffset.Error())
	}
}

func TestKindOf_PlainError(t *testing.T) {
	if KindOf(errors.New("plain")) != 0 {
		t.Error("expected zero kind for plain error")
	}
	if OffsetOf(errors.New("plain")) != NoOffset {
		t.Error("expected NoOffset for plain error")
	}
}

func TestKind_TextRoundTrip(t *testing.T) {
	for k := KindUnexpectedEOF; k <= KindLossyConversion; k++ {
		b, err := k.MarshalText()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var got Kind
		if err := got.UnmarshalText(b); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != k {
			t.Errorf("expected %s, got %s", k, got)
		}
	}

	var k Kind
	if err := k.UnmarshalText([]byte("Nope")); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestList(t *testing.T) {
	var l List
	l.Add(KindLossyConversion, NoOffset, 3, "color %d", 42)
	l.Add(KindLossyConversion, NoOffset, 4, "line type %d", 12)
	l.AddError(Errorf(KindUnknownEntityType, 100, "CDataFoo"), -1)
	l.AddError(errors.New("plain"), -1)

	if l.Count(KindLossyConversion) != 2 {
		t.Errorf("expected 2 lossy diagnostics, got %d", l.Count(KindLossyConversion))
	}
	if !l.Has(KindUnknownEntityType) {
		t.Error("expected UnknownEntityType diagnostic")
	}
	if l.Has(KindInvalidHeader) {
		t.Error("did not expect InvalidHeader diagnostic")
	}
	if l[2].Offset != 100 {
		t.Errorf("expected offset 100, got %d", l[2].Offset)
	}
	if l[3].Kind != KindUnexpectedEOF {
		t.Errorf("expected plain error to be filed as UnexpectedEof, got %s", l[3].Kind)
	}
	if !strings.Contains(l[0].String(), "[entity 3]") {
		t.Errorf("expected entity index in %q", l[0].String())
	}
}

func TestDiagnostic_JSON(t *testing.T) {
	d := Diagnostic{Kind: KindUnresolvedBlockReference, Offset: NoOffset, Entity: 2, Message: "BLOCK_7"}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(b), `"kind":"UnresolvedBlockReference"`) {
		t.Errorf("expected kind by name, got %s", b)
	}

	var back Diagnostic
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back != d {
		t.Errorf("expected %+v, got %+v", d, back)
	}
}
