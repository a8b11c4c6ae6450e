package dxfread

import (
	"strings"
	"testing"
)

const sample = `  0
SECTION
  2
HEADER
  9
$ACADVER
  1
AC1015
  9
$EXTMIN
 10
-1.0
 20
2.5
  0
ENDSEC
  0
SECTION
  2
TABLES
  0
TABLE
  2
LAYER
 70
2
  0
LAYER
  2
0
  0
LAYER
  2
\U+56F3
  0
ENDTAB
  0
ENDSEC
  0
SECTION
  2
BLOCKS
  0
BLOCK
  8
0
  2
DOOR
  0
LINE
  8
0
 10
0.0
  0
ENDBLK
  8
0
  0
ENDSEC
  0
SECTION
  2
ENTITIES
  0
LINE
  8
0-1
  6
DASHED
 62
3
 10
1.5
 20
2.0
 11
3.0
 21
4.0
  0
TEXT
  8
0
  1
\U+65E5\U+672C
  0
LINE
  8
0
  0
ENDSEC
  0
EOF
`

func TestRead(t *testing.T) {
	d, err := ReadString(sample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.HeaderString("$ACADVER") != "AC1015" {
		t.Errorf("expected AC1015, got %q", d.HeaderString("$ACADVER"))
	}
	if ext := d.Header["$EXTMIN"]; len(ext) != 2 || ext[0].AsFloat() != -1 {
		t.Errorf("unexpected $EXTMIN %+v", ext)
	}
	if len(d.Layers) != 2 || d.Layers[1] != "図" {
		t.Errorf("unexpected layers %v", d.Layers)
	}
	if len(d.Blocks) != 1 || d.Blocks[0].Name != "DOOR" || len(d.Blocks[0].Entities) != 1 {
		t.Errorf("unexpected blocks %+v", d.Blocks)
	}
	if len(d.Entities) != 3 {
		t.Fatalf("expected 3 entities, got %d", len(d.Entities))
	}

	line := d.Entities[0]
	if line.Type != "LINE" || line.Layer != "0-1" || line.Color != 3 || line.LineType != "DASHED" {
		t.Errorf("unexpected line properties %+v", line)
	}
	if x, ok := line.Float(11); !ok || x != 3 {
		t.Errorf("expected x2 = 3, got %v", x)
	}
	if _, ok := line.Float(40); ok {
		t.Error("did not expect group 40 on a line")
	}
	if d.Entities[1].String(1) != "日本" {
		t.Errorf("expected decoded text, got %q", d.Entities[1].String(1))
	}

	counts := d.Counts()
	if counts["LINE"] != 2 || counts["TEXT"] != 1 {
		t.Errorf("unexpected counts %v", counts)
	}
	if types := d.Types(); strings.Join(types, ",") != "LINE,TEXT" {
		t.Errorf("unexpected types %v", types)
	}
}

func TestRead_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad code", "  x\nSECTION\n"},
		{"missing value", "  0\nSECTION\n  2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadString(tt.input); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{`\U+00E9t\U+00E9`, "été"},
		{`\U+ZZZZ`, `\U+ZZZZ`},
		{`tail\U+00`, `tail\U+00`},
	}
	for _, tt := range tests {
		if got := Unescape(tt.in); got != tt.want {
			t.Errorf("Unescape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
