package props

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrInvalidUTF8 is returned when a line is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// ParseError reports a failure while reading a properties stream.
type ParseError struct {
	// Line is the 1-based physical line being read when the failure occurred.
	// Zero means the failure happened before the first line was read.
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("parse: %v", e.Err)
	}
	return fmt.Sprintf("parse: line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// lineReader yields trimmed physical lines and tracks the line number.
// Lines end at "\n", "\r\n" or a lone "\r".
type lineReader struct {
	r    *bufio.Reader
	line int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

// next returns the next trimmed line. ok is false at end of input or on error.
func (lr *lineReader) next() (string, bool, error) {
	raw, ok, err := lr.readLine()
	if err != nil {
		return "", false, &ParseError{Line: lr.line + 1, Err: err}
	}
	if !ok {
		return "", false, nil
	}
	lr.line++
	if lr.line == 1 {
		raw = bytes.TrimPrefix(raw, utf8BOM)
	}
	if !utf8.Valid(raw) {
		return "", false, &ParseError{Line: lr.line, Err: ErrInvalidUTF8}
	}
	return strings.TrimFunc(string(raw), isTrimmable), true, nil
}

// readLine reads one physical line without its terminator. An unterminated
// final line is returned as is.
func (lr *lineReader) readLine() ([]byte, bool, error) {
	var line []byte
	for {
		b, err := lr.r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return line, len(line) > 0, nil
			}
			return nil, false, err
		}
		switch b {
		case '\n':
			return line, true, nil
		case '\r':
			if next, err := lr.r.Peek(1); err == nil && next[0] == '\n' {
				_, _ = lr.r.ReadByte()
			}
			return line, true, nil
		}
		line = append(line, b)
	}
}

// isTrimmable matches ASCII space and control characters. Unicode spaces
// such as U+3000 are part of the line.
func isTrimmable(r rune) bool {
	return r <= ' '
}

// Parse reads a properties stream into an ordered set.
//
// A key that appears twice keeps the position and comment of its first
// occurrence and the raw line of its last. A comment block that is not
// followed by a property line is dropped.
func Parse(r io.Reader) (*Properties, error) {
	props := New()
	lr := newLineReader(r)
	var comment strings.Builder

	for {
		line, ok, err := lr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return props, nil
		}

		switch {
		case strings.HasPrefix(line, "#"):
			comment.WriteString(line)
			comment.WriteString("\n")
		case isPropertyLine(line):
			logical, err := readContinuation(lr, line)
			if err != nil {
				return nil, err
			}
			props.Set(Entry{
				Key:     logical[:separatorIndex(logical)],
				Raw:     logical,
				Comment: comment.String(),
			})
			comment.Reset()
		}
	}
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Properties, error) {
	return Parse(strings.NewReader(s))
}

// readContinuation joins following lines while the logical line ends in a
// backslash. End of input terminates the continuation.
func readContinuation(lr *lineReader, line string) (string, error) {
	for strings.HasSuffix(line, `\`) {
		next, ok, err := lr.next()
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}
		line += "\n" + next
	}
	return line, nil
}

// isPropertyLine reports whether line has '=' or ':' after its first character.
func isPropertyLine(line string) bool {
	return strings.IndexByte(line, '=') > 0 || strings.IndexByte(line, ':') > 0
}

// separatorIndex returns the position of the first '=', or of the first ':'
// when the line has no '='.
func separatorIndex(line string) int {
	if i := strings.IndexByte(line, '='); i >= 0 {
		return i
	}
	return strings.IndexByte(line, ':')
}
