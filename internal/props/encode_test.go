package props

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTo(t *testing.T) {
	p := New()
	p.Set(Entry{Key: "a", Raw: "a=1", Comment: "# one\n# two\n"})
	p.Set(Entry{Key: "b", Raw: "b : 2"})
	p.Set(Entry{Key: "c", Raw: "c=x\\\ny"})

	var sb strings.Builder
	n, err := p.WriteTo(&sb)
	require.NoError(t, err)

	want := "\n# one\n# two\na=1\nb : 2\nc=x\\\ny\n"
	assert.Equal(t, want, sb.String())
	assert.Equal(t, int64(len(want)), n)
}

func TestWriteTo_Empty(t *testing.T) {
	assert.Empty(t, New().Encode())
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"a=1\nb=2\n",
		"# header\n# more\nkey = value\nother:thing\n",
		"   spaced   =   out   \n# c\nmulti=1\\\n   2\\\n   3\nlast=x\n",
		"# dup\nk=1\nk=2\n# tail\nz=9\n# dropped\n",
	}

	for _, input := range inputs {
		first := mustParse(t, input)
		second := mustParse(t, string(first.Encode()))
		assert.True(t, first.Equal(second), "round trip of %q produced %q", input, first.Encode())
	}
}

type failingWriter struct {
	after int
	calls int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.calls >= w.after {
		return 0, errors.New("disk full")
	}
	w.calls++
	return len(p), nil
}

func TestWriteTo_PropagatesWriterError(t *testing.T) {
	p := mustParse(t, "# c\na=1\nb=2\n")

	n, err := p.WriteTo(&failingWriter{after: 2})
	require.Error(t, err)
	assert.Equal(t, "disk full", err.Error())
	assert.Equal(t, int64(len("\n# c\n")+len("a=1\n")), n)
}
