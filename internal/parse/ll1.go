package parse

import (
	"fmt"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/cfgkit/internal/cfgerrors"
	"github.com/dekarrin/cfgkit/internal/grammar"
	"github.com/dekarrin/cfgkit/internal/trace"
	"github.com/dekarrin/cfgkit/internal/util"
)

// LL1Table is a predictive parsing table M[nonterminal, terminal] ->
// production (spec.md §4.4). A missing cell and a cell holding the empty
// (ε) production are distinguished explicitly: Get's second return value
// is false only when no entry was ever written for that pair, never merely
// because the entry happens to be ε.
type LL1Table struct {
	cells map[string]map[string]grammar.Production
	nts   []string
	terms []string
}

// Get looks up M[nt, term]. ok is false if no entry exists.
func (t LL1Table) Get(nt, term string) (grammar.Production, bool) {
	row, ok := t.cells[nt]
	if !ok {
		return nil, false
	}
	p, ok := row[term]
	return p, ok
}

func (t *LL1Table) set(nt, term string, p grammar.Production) error {
	if t.cells == nil {
		t.cells = map[string]map[string]grammar.Production{}
	}
	row, ok := t.cells[nt]
	if !ok {
		row = map[string]grammar.Production{}
		t.cells[nt] = row
	}
	if existing, ok := row[term]; ok && !existing.Equal(p) {
		return &cfgerrors.LL1Conflict{
			NonTerminal: nt,
			Terminal:    term,
			Existing:    existing,
			New:         p,
		}
	}
	row[term] = p
	return nil
}

// NonTerminals returns the table's row labels, alphabetized.
func (t LL1Table) NonTerminals() []string {
	return append([]string(nil), t.nts...)
}

// Terminals returns the table's column labels, alphabetized.
func (t LL1Table) Terminals() []string {
	return append([]string(nil), t.terms...)
}

// String renders t at a default 100-column width with ε shown as the
// epsilon symbol. Render gives control over both.
func (t LL1Table) String() string {
	return t.Render(100, grammar.Epsilon)
}

// Render renders t with its columns fit to width (the rosed table-layout
// parameter internal/config's Display.Width governs) and every empty
// production shown as epsilonText instead of grammar.Epsilon, when
// Display.ShowEpsilonAsSymbol is false.
func (t LL1Table) Render(width int, epsilonText string) string {
	data := [][]string{}

	headers := []string{"M"}
	headers = append(headers, t.terms...)
	data = append(data, headers)

	for _, nt := range t.nts {
		row := []string{nt}
		for _, term := range t.terms {
			cell := ""
			if p, ok := t.Get(nt, term); ok {
				rhs := p.String()
				if p.Epsilon() {
					rhs = epsilonText
				}
				cell = nt + " -> " + rhs
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, width, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// LL1TableData is the exported, rezi-serializable form of an LL1Table: a
// flat list of cells rather than the nested maps String's receiver keeps
// unexported. internal/store persists this shape, not LL1Table itself.
type LL1TableData struct {
	NonTerminals []string
	Terminals    []string
	Cells        []LL1Cell
}

// LL1Cell is one non-empty M[NonTerminal, Terminal] entry.
type LL1Cell struct {
	NonTerminal string
	Terminal    string
	Production  grammar.Production
}

// Snapshot converts t to its serializable form.
func (t LL1Table) Snapshot() LL1TableData {
	data := LL1TableData{
		NonTerminals: append([]string(nil), t.nts...),
		Terminals:    append([]string(nil), t.terms...),
	}
	for _, nt := range t.nts {
		for _, term := range t.terms {
			if p, ok := t.Get(nt, term); ok {
				data.Cells = append(data.Cells, LL1Cell{NonTerminal: nt, Terminal: term, Production: p})
			}
		}
	}
	return data
}

// LL1TableFromSnapshot rebuilds the table Snapshot flattened, for a cache
// hit in internal/store.
func LL1TableFromSnapshot(data LL1TableData) LL1Table {
	table := LL1Table{
		nts:   append([]string(nil), data.NonTerminals...),
		terms: append([]string(nil), data.Terminals...),
	}
	for _, c := range data.Cells {
		// a snapshot round-trip never reproduces a conflict that wasn't
		// already rejected when the table was first built, so the error
		// return can't fire here.
		_ = table.set(c.NonTerminal, c.Terminal, c.Production)
	}
	return table
}

// BuildLL1Table builds the LL(1) predictive parsing table for g (spec.md
// §4.4): for every production A -> β, FIRST(β) (minus ε) is entered at
// M[A, a] for each a, and if β can derive ε, FOLLOW(A) is entered too. A
// cell written twice with two different productions is a conflict, and
// means g is not LL(1); BuildLL1Table reports the first one it finds as a
// *cfgerrors.LL1Conflict and stops.
//
// This is a free function rather than a Grammar method so that grammar
// does not need to import parse: parse already imports grammar for
// Production and Grammar, and the reverse import would cycle.
func BuildLL1Table(g grammar.Grammar) (LL1Table, error) {
	first := grammar.FIRST(g)
	follow := grammar.FOLLOW(g, first)

	table := LL1Table{
		nts:   g.NonTerminals(),
		terms: g.Terminals(),
	}

	for _, nt := range table.nts {
		for _, p := range g.Rule(nt).Productions {
			seq := []string(p)
			firstSeq := grammar.FirstOfSequence(g, first, seq)

			for _, a := range firstSeq.Sorted() {
				if a == grammar.Epsilon {
					continue
				}
				if err := table.set(nt, a, p); err != nil {
					return LL1Table{}, err
				}
			}

			if firstSeq.Has(grammar.Epsilon) {
				for _, b := range follow[nt].Sorted() {
					if err := table.set(nt, b, p); err != nil {
						return LL1Table{}, err
					}
				}
			}
		}
	}

	return table, nil
}

// ParseLL1 drives table over tokens (a sequence of bare terminal names,
// already lexed by the caller; spec.md's Non-goals exclude lexer synthesis)
// starting from g's start symbol, producing the step-by-step derivation
// trace spec.md §4.9 describes. It returns a *cfgerrors.ParseError if it
// reaches a stack/lookahead pair with no table entry, or a lookahead the
// grammar never declared as a terminal.
func ParseLL1(table LL1Table, g grammar.Grammar, tokens []string) (trace.Steps, error) {
	input := append(append([]string(nil), tokens...), grammar.EndOfInput)

	stack := util.Stack[string]{Of: []string{grammar.EndOfInput, g.StartSymbol()}}
	rec := trace.Recorder{}

	pos := 0
	next := func() string { return input[pos] }

	for !stack.Empty() {
		top := stack.Peek()
		lookahead := next()

		if top == grammar.EndOfInput {
			if lookahead == grammar.EndOfInput {
				rec.Record(stack.Of, input[pos:], "accept")
				stack.Pop()
				break
			}
			return rec.Steps(), &cfgerrors.ParseError{
				Lookahead: lookahead,
				Reason:    "input remains after the stack emptied",
			}
		}

		if g.IsNonTerminal(top) {
			if !g.IsTerminal(lookahead) && lookahead != grammar.EndOfInput {
				return rec.Steps(), &cfgerrors.ParseError{
					Lookahead: lookahead,
					Reason:    fmt.Sprintf("%q was never declared as a terminal", lookahead),
				}
			}

			p, ok := table.Get(top, lookahead)
			if !ok {
				return rec.Steps(), &cfgerrors.ParseError{
					Lookahead: lookahead,
					Reason:    fmt.Sprintf("no production for %s on lookahead %q", top, lookahead),
				}
			}

			rec.Record(stack.Of, input[pos:], fmt.Sprintf("predict %s -> %s", top, p.String()))

			stack.Pop()
			for i := len(p) - 1; i >= 0; i-- {
				stack.Push(p[i])
			}
		} else {
			if top != lookahead {
				return rec.Steps(), &cfgerrors.ParseError{
					Lookahead: lookahead,
					Reason:    fmt.Sprintf("expected %q", top),
				}
			}

			rec.Record(stack.Of, input[pos:], fmt.Sprintf("match %s", top))
			stack.Pop()
			pos++
		}
	}

	return rec.Steps(), nil
}

// reverse returns of reversed, so the top of a Stack (the last element) is
// printed first in a trace, the way spec.md §6.4's stepper reads.
func reverse(of []string) []string {
	out := make([]string, len(of))
	for i, v := range of {
		out[len(of)-1-i] = v
	}
	return out
}
