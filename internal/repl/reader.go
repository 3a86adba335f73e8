// Package repl contains the line reader the interactive analyze/ll1/lr1
// sessions use to get command lines and token input from the user.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// LineReader reads one line of free-form input at a time, either directly
// from a stream or interactively with GNU-readline-style editing and
// history. A LineReader must have Close called on it once it is no longer
// needed.
type LineReader interface {
	ReadLine() (string, error)
	AllowBlank(allow bool)
	Close() error
}

// DirectLineReader reads lines from any io.Reader without interactive
// editing. It does not sanitize control or escape sequences out of the
// input, so it should only be used on non-TTY streams (files, pipes).
//
// DirectLineReader should not be constructed directly; use NewDirectReader.
type DirectLineReader struct {
	r             *bufio.Reader
	blanksAllowed bool
}

// InteractiveLineReader reads lines from stdin using a Go implementation of
// GNU Readline. This keeps the terminal clear of editing escape sequences
// and provides line history across ReadLine calls, so it should generally
// only be used when directly connected to a TTY.
//
// InteractiveLineReader should not be constructed directly; use
// NewInteractiveReader.
type InteractiveLineReader struct {
	rl            *readline.Instance
	blanksAllowed bool
	prompt        string
}

// NewDirectReader creates a DirectLineReader that reads from r.
func NewDirectReader(r io.Reader) *DirectLineReader {
	return &DirectLineReader{
		r: bufio.NewReader(r),
	}
}

// NewInteractiveReader creates an InteractiveLineReader with the given
// prompt and initializes readline.
func NewInteractiveReader(prompt string) (*InteractiveLineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveLineReader{
		rl:     rl,
		prompt: prompt,
	}, nil
}

// Close releases resources associated with the DirectLineReader. It does not
// own any, but must still be called so DirectLineReader and
// InteractiveLineReader can be used interchangeably as a LineReader.
func (dr *DirectLineReader) Close() error {
	return nil
}

// Close tears down readline resources.
func (ir *InteractiveLineReader) Close() error {
	return ir.rl.Close()
}

// ReadLine reads the next non-blank line from the stream, unless blanks have
// been allowed with AllowBlank.
//
// At end of input the returned string is empty and the error is io.EOF. Any
// other read error is returned the same way.
func (dr *DirectLineReader) ReadLine() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = dr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line == "" && dr.blanksAllowed {
			return line, nil
		}
	}

	return line, nil
}

// ReadLine reads the next non-blank line from stdin via readline, unless
// blanks have been allowed with AllowBlank.
func (ir *InteractiveLineReader) ReadLine() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = ir.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line == "" && ir.blanksAllowed {
			return line, nil
		}
	}

	return line, nil
}

// AllowBlank sets whether a blank line is returned as-is rather than
// skipped. By default blanks are skipped.
func (dr *DirectLineReader) AllowBlank(allow bool) {
	dr.blanksAllowed = allow
}

// AllowBlank sets whether a blank line is returned as-is rather than
// skipped. By default blanks are skipped.
func (ir *InteractiveLineReader) AllowBlank(allow bool) {
	ir.blanksAllowed = allow
}

// SetPrompt updates the prompt shown before each ReadLine call.
func (ir *InteractiveLineReader) SetPrompt(p string) {
	ir.prompt = p
	ir.rl.SetPrompt(p)
}

// GetPrompt returns the current prompt text.
func (ir *InteractiveLineReader) GetPrompt() string {
	return ir.prompt
}
