// Package cfgerrors defines the structured error kinds cfgkit's analysis
// pipeline can produce: a malformed rule line, an I/O failure while loading,
// a table-cell conflict discovered while building the LL(1) or LR(1) tables,
// and a driver getting stuck mid-parse. Each is a concrete struct rather than
// a sentinel so an embedder can pull the coordinates (which cell, which
// state, both candidate entries) back out without string-parsing Error().
package cfgerrors

import "fmt"

// GrammarFormatError reports a single malformed rule line encountered by the
// loader. It never aborts loading on its own; the loader collects these and
// keeps going, per spec.md §7.
type GrammarFormatError struct {
	Line   int
	Text   string
	Reason string
}

func (e *GrammarFormatError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// IoError wraps an underlying read failure at load time. Unlike
// GrammarFormatError, it aborts loading.
type IoError struct {
	Cause error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("reading grammar source: %s", e.Cause.Error())
}

func (e *IoError) Unwrap() error {
	return e.Cause
}

// LL1Conflict reports that two distinct productions were both assigned to
// the same LL(1) table cell.
type LL1Conflict struct {
	NonTerminal string
	Terminal    string
	Existing    []string
	New         []string
}

func (e *LL1Conflict) Error() string {
	return fmt.Sprintf("LL(1) conflict at M[%s, %s]: existing entry %s conflicts with new entry %s",
		e.NonTerminal, e.Terminal, productionString(e.Existing), productionString(e.New))
}

// LR1Conflict reports that two distinct ACTION entries were both assigned
// to the same cell (GOTO entries are never checked for conflicts): shift/reduce, reduce/reduce, and inconsistent
// shifts are all reported through this same type, per spec.md §4.8.
type LR1Conflict struct {
	State    string
	Terminal string
	Existing string
	New      string
}

func (e *LR1Conflict) Error() string {
	return fmt.Sprintf("LR(1) conflict in state %s on %q: %s vs %s", e.State, e.Terminal, e.Existing, e.New)
}

// ParseError is returned by a driver when it reaches a configuration with no
// applicable action: a missing ACTION entry, a missing GOTO entry after a
// reduce, or a lookahead symbol the grammar never declared as a terminal
// (UndefinedLookahead, per spec.md §7, is reported through this same type).
type ParseError struct {
	State     string
	Lookahead string
	Reason    string
}

func (e *ParseError) Error() string {
	if e.State != "" {
		return fmt.Sprintf("parse error in state %s on lookahead %q: %s", e.State, e.Lookahead, e.Reason)
	}
	return fmt.Sprintf("parse error on lookahead %q: %s", e.Lookahead, e.Reason)
}

func productionString(rhs []string) string {
	if len(rhs) == 0 {
		return "ε"
	}
	out := ""
	for i, s := range rhs {
		if i > 0 {
			out += " "
		}
		out += s
	}
	return out
}
