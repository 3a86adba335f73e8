package parse

import (
	"fmt"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/cfgkit/internal/automaton"
	"github.com/dekarrin/cfgkit/internal/cfgerrors"
	"github.com/dekarrin/cfgkit/internal/grammar"
	"github.com/dekarrin/cfgkit/internal/trace"
	"github.com/dekarrin/cfgkit/internal/util"
)

// LR1Table is the ACTION/GOTO table produced from an LR(1) canonical
// collection (spec.md §4.8): Algorithm 4.56 from the purple dragon book,
// "Construction of canonical-LR parsing tables".
type LR1Table struct {
	action map[string]map[string]LRAction
	goTo   map[string]map[string]string

	initial string
	terms   []string
	nts     []string
	states  []string // discovery order, for stable display numbering
}

// Initial returns the collection's start state.
func (t LR1Table) Initial() string {
	return t.initial
}

// Action returns ACTION[state, term]; the zero LRAction (Type LRError) if
// no entry was written.
func (t LR1Table) Action(state, term string) LRAction {
	return t.action[state][term]
}

// Goto returns GOTO[state, symbol] and whether an entry exists.
func (t LR1Table) Goto(state, symbol string) (string, bool) {
	s, ok := t.goTo[state][symbol]
	return s, ok
}

func (t *LR1Table) setAction(state, term string, act LRAction) error {
	if t.action == nil {
		t.action = map[string]map[string]LRAction{}
	}
	row, ok := t.action[state]
	if !ok {
		row = map[string]LRAction{}
		t.action[state] = row
	}
	if existing, ok := row[term]; ok && !existing.Equal(act) {
		return &cfgerrors.LR1Conflict{
			State:    state,
			Terminal: term,
			Existing: describeConflict(existing),
			New:      describeConflict(act),
		}
	}
	row[term] = act
	return nil
}

func (t *LR1Table) setGoto(state, symbol, to string) {
	if t.goTo == nil {
		t.goTo = map[string]map[string]string{}
	}
	row, ok := t.goTo[state]
	if !ok {
		row = map[string]string{}
		t.goTo[state] = row
	}
	row[symbol] = to
}

// String renders t at a default 100-column width with ε shown as the
// epsilon symbol. Render gives control over both.
func (t LR1Table) String() string {
	return t.Render(100, grammar.Epsilon)
}

// Render renders t with its columns fit to width (the rosed table-layout
// parameter internal/config's Display.Width governs) and every reduction
// of an empty production shown as epsilonText instead of grammar.Epsilon,
// when Display.ShowEpsilonAsSymbol is false.
func (t LR1Table) Render(width int, epsilonText string) string {
	data := [][]string{}

	headers := []string{"state"}
	for _, term := range t.terms {
		headers = append(headers, "a:"+term)
	}
	headers = append(headers, "|")
	for _, nt := range t.nts {
		headers = append(headers, "g:"+nt)
	}
	data = append(data, headers)

	refs := map[string]string{}
	for i, s := range t.states {
		refs[s] = fmt.Sprintf("%d", i)
	}

	for _, s := range t.states {
		row := []string{refs[s]}
		for _, term := range t.terms {
			act := t.Action(s, term)
			cell := ""
			switch act.Type {
			case LRAccept:
				cell = "acc"
			case LRShift:
				cell = "s" + refs[act.State]
			case LRReduce:
				rhs := act.Production.String()
				if act.Production.Epsilon() {
					rhs = epsilonText
				}
				cell = "r:" + act.Symbol + " -> " + rhs
			}
			row = append(row, cell)
		}
		row = append(row, "|")
		for _, nt := range t.nts {
			cell := ""
			if to, ok := t.Goto(s, nt); ok {
				cell = refs[to]
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

// LR1TableData is the exported, rezi-serializable form of an LR1Table: a
// flat list of cells rather than the nested maps String's receiver keeps
// unexported. internal/store persists this shape, not LR1Table itself.
type LR1TableData struct {
	Initial      string
	Terminals    []string
	NonTerminals []string
	States       []string
	Actions      []LR1ActionCell
	Gotos        []LR1GotoCell
}

// LR1ActionCell is one non-error ACTION[State, Terminal] entry.
type LR1ActionCell struct {
	State    string
	Terminal string
	Action   LRAction
}

// LR1GotoCell is one GOTO[State, NonTerminal] entry.
type LR1GotoCell struct {
	State       string
	NonTerminal string
	To          string
}

// Snapshot converts t to its serializable form.
func (t LR1Table) Snapshot() LR1TableData {
	data := LR1TableData{
		Initial:      t.initial,
		Terminals:    append([]string(nil), t.terms...),
		NonTerminals: append([]string(nil), t.nts...),
		States:       append([]string(nil), t.states...),
	}
	for _, s := range t.states {
		for _, term := range t.terms {
			if act := t.Action(s, term); act.Type != LRError {
				data.Actions = append(data.Actions, LR1ActionCell{State: s, Terminal: term, Action: act})
			}
		}
		for _, nt := range t.nts {
			if to, ok := t.Goto(s, nt); ok {
				data.Gotos = append(data.Gotos, LR1GotoCell{State: s, NonTerminal: nt, To: to})
			}
		}
	}
	return data
}

// LR1TableFromSnapshot rebuilds the table Snapshot flattened, for a cache
// hit in internal/store.
func LR1TableFromSnapshot(data LR1TableData) LR1Table {
	table := LR1Table{
		initial: data.Initial,
		terms:   append([]string(nil), data.Terminals...),
		nts:     append([]string(nil), data.NonTerminals...),
		states:  append([]string(nil), data.States...),
	}
	for _, c := range data.Actions {
		// a snapshot round-trip never reproduces a conflict that wasn't
		// already rejected when the table was first built, so the error
		// return can't fire here.
		_ = table.setAction(c.State, c.Terminal, c.Action)
	}
	for _, c := range data.Gotos {
		table.setGoto(c.State, c.NonTerminal, c.To)
	}
	return table
}

// BuildLR1Table constructs the ACTION/GOTO table from g and its canonical
// LR(1) collection, per spec.md §4.8 / dragon book algorithm 4.56:
//
//  1. [A -> α.aβ, b] in state i, GOTO(i, a) = j  =>  ACTION[i, a] = shift j
//  2. [A -> α., a] in state i, A != S'           =>  ACTION[i, a] = reduce A -> α
//  3. [S' -> S., $] in state i                   =>  ACTION[i, $] = accept
//  4. GOTO(i, A) = j for nonterminal A           =>  GOTO[i, A] = j
//
// Two entries disagreeing on the same cell means g is not LR(1); the first
// such conflict is returned as a *cfgerrors.LR1Conflict.
func BuildLR1Table(g grammar.Grammar, coll automaton.Collection) (LR1Table, error) {
	gPrime := g.Augmented()

	table := LR1Table{
		initial: coll.DFA.Start,
		terms:   g.Terminals(),
		nts:     g.NonTerminals(),
		states:  coll.Order,
	}

	for _, i := range coll.Order {
		items := coll.State(i)

		for _, item := range items {
			A := item.NonTerminal
			alpha := item.Left
			beta := item.Right
			b := item.Lookahead

			if len(beta) > 0 {
				a := beta[0]
				if g.IsTerminal(a) {
					if j := coll.DFA.Next(i, a); j != "" {
						if err := table.setAction(i, a, LRAction{Type: LRShift, State: j}); err != nil {
							return LR1Table{}, err
						}
					}
				}
				continue
			}

			// beta is empty: either a reduction, or the accepting item.
			if A == gPrime.StartSymbol() && len(alpha) == 1 && alpha[0] == g.StartSymbol() && b == grammar.EndOfInput {
				if err := table.setAction(i, grammar.EndOfInput, LRAction{Type: LRAccept}); err != nil {
					return LR1Table{}, err
				}
				continue
			}

			if A != gPrime.StartSymbol() {
				if err := table.setAction(i, b, LRAction{Type: LRReduce, Symbol: A, Production: grammar.Production(alpha)}); err != nil {
					return LR1Table{}, err
				}
			}
		}

		for _, nt := range table.nts {
			if j := coll.DFA.Next(i, nt); j != "" {
				table.setGoto(i, nt, j)
			}
		}
	}

	return table, nil
}

// ParseLR1 drives table over tokens (bare terminal names, already lexed by
// the caller) using the shift-reduce automaton, producing the step trace
// spec.md §4.9 describes. This is an implementation of Algorithm 4.44,
// "LR-parsing algorithm", from the purple dragon book.
func ParseLR1(table LR1Table, tokens []string) (trace.Steps, error) {
	input := append(append([]string(nil), tokens...), grammar.EndOfInput)

	states := util.Stack[string]{Of: []string{table.Initial()}}
	symbols := util.Stack[string]{Of: []string{}}
	rec := trace.Recorder{}

	pos := 0

	for {
		s := states.Peek()
		a := input[pos]

		act := table.Action(s, a)

		switch act.Type {
		case LRShift:
			rec.Record(append(reverse(symbols.Of), states.Of...), input[pos:], fmt.Sprintf("shift %s", act.State))
			symbols.Push(a)
			states.Push(act.State)
			pos++

		case LRReduce:
			rec.Record(append(reverse(symbols.Of), states.Of...), input[pos:], fmt.Sprintf("reduce %s -> %s", act.Symbol, act.Production.String()))
			for range act.Production {
				states.Pop()
				symbols.Pop()
			}
			t := states.Peek()
			to, ok := table.Goto(t, act.Symbol)
			if !ok {
				return rec.Steps(), &cfgerrors.ParseError{
					State:     t,
					Lookahead: a,
					Reason:    fmt.Sprintf("no GOTO entry for %s", act.Symbol),
				}
			}
			symbols.Push(act.Symbol)
			states.Push(to)

		case LRAccept:
			rec.Record(append(reverse(symbols.Of), states.Of...), input[pos:], "accept")
			return rec.Steps(), nil

		default:
			return rec.Steps(), &cfgerrors.ParseError{
				State:     s,
				Lookahead: a,
				Reason:    "no ACTION entry",
			}
		}
	}
}
