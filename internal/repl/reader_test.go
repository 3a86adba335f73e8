package repl

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DirectLineReader_ReadLine(t *testing.T) {
	assert := assert.New(t)

	r := NewDirectReader(strings.NewReader("load foo.txt\n\nll1 a b c\n"))
	defer r.Close()

	line, err := r.ReadLine()
	assert.NoError(err)
	assert.Equal("load foo.txt", line)

	line, err = r.ReadLine()
	assert.NoError(err)
	assert.Equal("ll1 a b c", line, "a blank line is skipped by default")
}

func Test_DirectLineReader_AllowBlank(t *testing.T) {
	assert := assert.New(t)

	r := NewDirectReader(strings.NewReader("\nnext\n"))
	defer r.Close()
	r.AllowBlank(true)

	line, err := r.ReadLine()
	assert.NoError(err)
	assert.Equal("", line, "a blank line is returned as-is once allowed")

	line, err = r.ReadLine()
	assert.NoError(err)
	assert.Equal("next", line)
}

func Test_DirectLineReader_ReadLine_eof(t *testing.T) {
	assert := assert.New(t)

	r := NewDirectReader(strings.NewReader(""))
	defer r.Close()

	_, err := r.ReadLine()
	assert.ErrorIs(err, io.EOF)
}

func Test_DirectLineReader_ReadLine_noTrailingNewline(t *testing.T) {
	assert := assert.New(t)

	r := NewDirectReader(strings.NewReader("load foo.txt"))
	defer r.Close()

	line, err := r.ReadLine()
	assert.NoError(err)
	assert.Equal("load foo.txt", line, "the last line is still returned even without a trailing newline")
}
