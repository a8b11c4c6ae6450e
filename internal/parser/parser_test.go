package parser

import (
	"bytes"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected Format
	}{
		{
			name:     "jww extension",
			path:     "drawing.jww",
			expected: FormatJWW,
		},
		{
			name:     "JWW uppercase",
			path:     "DRAWING.JWW",
			expected: FormatJWW,
		},
		{
			name:     "dxf extension",
			path:     "drawing.dxf",
			expected: FormatUnknown,
		},
		{
			name:     "no extension",
			path:     "drawing",
			expected: FormatUnknown,
		},
		{
			name:     "path with directory",
			path:     "/path/to/図面.jww",
			expected: FormatJWW,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectFormat(tc.path)
			if got != tc.expected {
				t.Errorf("DetectFormat(%q) = %v, want %v", tc.path, got, tc.expected)
			}
		})
	}
}

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format   Format
		expected string
	}{
		{FormatJWW, "jww"},
		{FormatUnknown, "unknown"},
		{Format(999), "unknown"},
	}

	for _, tc := range tests {
		got := tc.format.String()
		if got != tc.expected {
			t.Errorf("Format(%d).String() = %q, want %q", int(tc.format), got, tc.expected)
		}
	}
}

func TestDetectFormatFromReader(t *testing.T) {
	jwwHeader := append([]byte("JwwData."), 0x5E, 0x01, 0, 0)
	unknownHeader := []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}

	tests := []struct {
		name     string
		data     []byte
		expected Format
	}{
		{
			name:     "jww format",
			data:     jwwHeader,
			expected: FormatJWW,
		},
		{
			name:     "unknown format",
			data:     unknownHeader,
			expected: FormatUnknown,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reader := bytes.NewReader(tc.data)
			got, err := DetectFormatFromReader(reader)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("DetectFormatFromReader() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestDetectFormatFromReader_ShortData(t *testing.T) {
	reader := bytes.NewReader([]byte("Jww"))

	_, err := DetectFormatFromReader(reader)
	if err == nil {
		t.Error("expected error for short data")
	}
}

func TestParseStopRule(t *testing.T) {
	tests := []struct {
		in      string
		want    StopRule
		wantErr bool
	}{
		{"", StopAuto, false},
		{"auto", StopAuto, false},
		{"COUNT", StopCount, false},
		{" eof ", StopEOF, false},
		{"sometimes", StopAuto, true},
	}

	for _, tc := range tests {
		got, err := ParseStopRule(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseStopRule(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParseStopRule(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Strict {
		t.Error("expected lenient parsing by default")
	}
	if opts.StopRule != StopAuto {
		t.Errorf("expected auto stop rule, got %q", opts.StopRule)
	}
	if opts.Log() == nil {
		t.Error("expected a no-op logger when none is configured")
	}
}
