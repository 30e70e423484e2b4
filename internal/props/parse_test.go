package props

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Entry
	}{
		{
			name:  "equals and colon separators",
			input: "a=1\nb:2\n",
			want: []Entry{
				{Key: "a", Raw: "a=1"},
				{Key: "b", Raw: "b:2"},
			},
		},
		{
			name:  "comment block attaches to next entry",
			input: "# one\n# two\na=1\nb=2\n",
			want: []Entry{
				{Key: "a", Raw: "a=1", Comment: "# one\n# two\n"},
				{Key: "b", Raw: "b=2"},
			},
		},
		{
			name:  "lines are trimmed but keys are not split on spaces",
			input: "   a = 1   \n\t# indented\n b=2",
			want: []Entry{
				{Key: "a ", Raw: "a = 1"},
				{Key: "b", Raw: "b=2", Comment: "# indented\n"},
			},
		},
		{
			name:  "blank lines are skipped",
			input: "\n\na=1\n\n\nb=2\n\n",
			want: []Entry{
				{Key: "a", Raw: "a=1"},
				{Key: "b", Raw: "b=2"},
			},
		},
		{
			name:  "continuation lines are joined with newlines",
			input: "a=one \\\n    two \\\n  three\nb=4\n",
			want: []Entry{
				{Key: "a", Raw: "a=one \\\ntwo \\\nthree"},
				{Key: "b", Raw: "b=4"},
			},
		},
		{
			name:  "continuation swallows comment-looking lines",
			input: "a=1\\\n# not a comment\nb=2\n",
			want: []Entry{
				{Key: "a", Raw: "a=1\\\n# not a comment"},
				{Key: "b", Raw: "b=2"},
			},
		},
		{
			name:  "continuation at end of input",
			input: "a=1\\",
			want: []Entry{
				{Key: "a", Raw: "a=1\\"},
			},
		},
		{
			name:  "duplicate key keeps first position and comment",
			input: "# first\na=1\nb=2\n# second\na=3\n",
			want: []Entry{
				{Key: "a", Raw: "a=3", Comment: "# first\n"},
				{Key: "b", Raw: "b=2"},
			},
		},
		{
			name:  "duplicate key drops its own comment even when first had none",
			input: "a=1\n# later\na=2\n",
			want: []Entry{
				{Key: "a", Raw: "a=2"},
			},
		},
		{
			name:  "trailing comment block is dropped",
			input: "a=1\n# orphan\n# block\n",
			want: []Entry{
				{Key: "a", Raw: "a=1"},
			},
		},
		{
			name:  "lines without separator keep the pending comment",
			input: "# kept\njunk\n\na=1\n",
			want: []Entry{
				{Key: "a", Raw: "a=1", Comment: "# kept\n"},
			},
		},
		{
			name:  "separator in first column is not a property",
			input: "=a\n:b\n",
			want:  []Entry{},
		},
		{
			name:  "equals takes precedence over an earlier colon",
			input: "url:http://host/path=x\n",
			want: []Entry{
				{Key: "url:http://host/path", Raw: "url:http://host/path=x"},
			},
		},
		{
			name:  "first colon splits when there is no equals",
			input: "host:example.com:8080\n",
			want: []Entry{
				{Key: "host", Raw: "host:example.com:8080"},
			},
		},
		{
			name:  "equals in first column with a later colon",
			input: "=x:y\n",
			want: []Entry{
				{Key: "", Raw: "=x:y"},
			},
		},
		{
			name:  "crlf line endings",
			input: "# c\r\na=1\r\nb=2\r\n",
			want: []Entry{
				{Key: "a", Raw: "a=1", Comment: "# c\n"},
				{Key: "b", Raw: "b=2"},
			},
		},
		{
			name:  "lone carriage returns end lines",
			input: "# c\ra=1\rb=2\r",
			want: []Entry{
				{Key: "a", Raw: "a=1", Comment: "# c\n"},
				{Key: "b", Raw: "b=2"},
			},
		},
		{
			name:  "unicode spaces are not trimmed",
			input: "msg=你好\u3000\nnbsp=x\u00a0\n",
			want: []Entry{
				{Key: "msg", Raw: "msg=你好\u3000"},
				{Key: "nbsp", Raw: "nbsp=x\u00a0"},
			},
		},
		{
			name:  "ascii whitespace and control characters are trimmed",
			input: "\t a=1 \x0b\f\n",
			want: []Entry{
				{Key: "a", Raw: "a=1"},
			},
		},
		{
			name:  "byte order mark is ignored",
			input: "\ufeffa=1\n",
			want: []Entry{
				{Key: "a", Raw: "a=1"},
			},
		},
		{
			name:  "non-ascii text",
			input: "# 問候\ngreeting=你好\n",
			want: []Entry{
				{Key: "greeting", Raw: "greeting=你好", Comment: "# 問候\n"},
			},
		},
		{
			name:  "empty input",
			input: "",
			want:  []Entry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Entries())
		})
	}
}

func TestParse_LongLine(t *testing.T) {
	value := strings.Repeat("v", 5*1024*1024)

	got, err := ParseString("big=" + value + "\nsmall=1\n")
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())

	e, ok := got.Get("big")
	require.True(t, ok)
	assert.Equal(t, "big="+value, e.Raw)
}

func TestParse_InvalidUTF8(t *testing.T) {
	_, err := ParseString("a=1\nb=\xff\xfe\n")
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Line)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestParse_ReadError(t *testing.T) {
	boom := errors.New("boom")

	got, err := Parse(iotest.ErrReader(boom))
	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, boom)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.Line)
}

func TestParseError_Message(t *testing.T) {
	err := &ParseError{Line: 3, Err: ErrInvalidUTF8}
	assert.Equal(t, "parse: line 3: invalid UTF-8", err.Error())

	err = &ParseError{Err: ErrInvalidUTF8}
	assert.Equal(t, "parse: invalid UTF-8", err.Error())
}
