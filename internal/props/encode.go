package props

import (
	"bytes"
	"io"
)

// WriteTo writes the entries in order. An entry with a comment is preceded by
// a blank line and its comment text. Every raw line ends with "\n".
func (p *Properties) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, e := range p.entries {
		if e.Comment != "" {
			c, err := io.WriteString(w, "\n"+e.Comment)
			n += int64(c)
			if err != nil {
				return n, err
			}
		}
		c, err := io.WriteString(w, e.Raw+"\n")
		n += int64(c)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// Encode renders the entries into a byte slice.
func (p *Properties) Encode() []byte {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer do not fail.
	_, _ = p.WriteTo(&buf)
	return buf.Bytes()
}
