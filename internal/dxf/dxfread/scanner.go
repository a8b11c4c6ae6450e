// Package dxfread is a minimal ASCII DXF reader. It is independent of the
// writer in package dxf and is used to check converted output.
package dxfread

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Tag is one group code/value pair.
type Tag struct {
	Code  int
	Value string
}

// AsString returns the value with \U+XXXX escapes decoded.
func (t Tag) AsString() string {
	return Unescape(t.Value)
}

// AsFloat returns the value parsed as a float, or 0.
func (t Tag) AsFloat() float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(t.Value), 64)
	return v
}

// AsInt returns the value parsed as an integer, or 0.
func (t Tag) AsInt() int {
	v, _ := strconv.Atoi(strings.TrimSpace(t.Value))
	return v
}

// Scanner reads group code/value pairs line by line.
type Scanner struct {
	sc      *bufio.Scanner
	LastTag Tag
	line    int
	err     error
}

// NewScanner creates a scanner over r.
func NewScanner(r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Scanner{sc: sc}
}

// Next advances to the next pair. It returns false at the end of input or
// on a malformed pair; Err distinguishes the two.
func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}
	if !s.sc.Scan() {
		s.err = s.sc.Err()
		return false
	}
	s.line++
	codeLine := strings.TrimSpace(s.sc.Text())
	code, err := strconv.Atoi(codeLine)
	if err != nil {
		s.err = fmt.Errorf("line %d: invalid group code %q", s.line, codeLine)
		return false
	}
	if !s.sc.Scan() {
		if s.err = s.sc.Err(); s.err == nil {
			s.err = fmt.Errorf("line %d: group code %d without value", s.line, code)
		}
		return false
	}
	s.line++
	s.LastTag = Tag{Code: code, Value: strings.TrimRight(s.sc.Text(), "\r")}
	return true
}

// Err returns the first error met by Next.
func (s *Scanner) Err() error {
	return s.err
}

// Unescape decodes \U+XXXX sequences.
func Unescape(s string) string {
	if !strings.Contains(s, `\U+`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], `\U+`) && i+7 <= len(s) {
			if r, err := strconv.ParseUint(s[i+3:i+7], 16, 32); err == nil {
				sb.WriteRune(rune(r))
				i += 7
				continue
			}
		}
		sb.WriteByte(s[i])
		i++
	}
	return sb.String()
}
