package grammar

import (
	"fmt"
	"sort"
	"strings"
)

// Grammar is a context-free grammar: a mapping from nonterminal name to its
// ordered list of productions, the set of terminal names, the start symbol,
// and the raw rule text the grammar was built from (kept for reproducibility
// of table ordering, per spec.md §3).
//
// All exported methods treat Grammar as logically immutable once built,
// except AddTerm/AddRule, which are only meant to be called while
// constructing the grammar (directly, or from the loader in loader.go).
// Nothing in this package mutates a Grammar handed to FIRST/FOLLOW/table
// construction.
type Grammar struct {
	rules map[string]*Rule
	order []string // nonterminal names, in first-add order; order[0] is the start symbol
	terms map[string]bool
	raw   []string
}

// AddTerm declares name as a terminal. Declaring the same name twice has no
// effect.
func (g *Grammar) AddTerm(name string) {
	if g.terms == nil {
		g.terms = map[string]bool{}
	}
	g.terms[name] = true
}

// AddRule appends production p as an alternative for nonterminal nt. The
// first distinct nonterminal ever passed to AddRule becomes the grammar's
// start symbol (spec.md §3).
func (g *Grammar) AddRule(nt string, p Production) {
	if g.rules == nil {
		g.rules = map[string]*Rule{}
	}
	r, ok := g.rules[nt]
	if !ok {
		r = &Rule{NonTerminal: nt}
		g.rules[nt] = r
		g.order = append(g.order, nt)
	}
	r.Productions = append(r.Productions, p.Copy())
}

// SetRawRules stores the raw, as-loaded rule text for reproducibility. Only
// the loader calls this; grammars built directly through AddRule have no
// raw text and RawRules returns nil.
func (g *Grammar) SetRawRules(lines []string) {
	g.raw = append([]string(nil), lines...)
}

// RawRules returns the raw rule lines the grammar was loaded from, if any.
func (g Grammar) RawRules() []string {
	return append([]string(nil), g.raw...)
}

// StartSymbol returns the LHS of the first rule ever added. spec.md §9
// preserves this by contract even though it means reordering a grammar file
// changes the start symbol; embedders that want an explicit start should
// pass it in separately rather than rely on file order.
func (g Grammar) StartSymbol() string {
	if len(g.order) == 0 {
		return ""
	}
	return g.order[0]
}

// Rule returns the productions registered for nt. The zero Rule is returned
// if nt has no productions.
func (g Grammar) Rule(nt string) Rule {
	r, ok := g.rules[nt]
	if !ok {
		return Rule{NonTerminal: nt}
	}
	return *r
}

// NonTerminals returns every declared nonterminal name, sorted
// lexicographically (spec.md §4.1's ordering policy: display/iteration
// order is always alphabetical, independent of discovery order).
func (g Grammar) NonTerminals() []string {
	out := make([]string, 0, len(g.rules))
	for nt := range g.rules {
		out = append(out, nt)
	}
	sort.Strings(out)
	return out
}

// Terminals returns every declared terminal name plus the reserved
// end-marker "$", sorted lexicographically.
func (g Grammar) Terminals() []string {
	out := make([]string, 0, len(g.terms)+1)
	seenEnd := false
	for t := range g.terms {
		if t == EndOfInput {
			seenEnd = true
		}
		out = append(out, t)
	}
	if !seenEnd {
		out = append(out, EndOfInput)
	}
	sort.Strings(out)
	return out
}

// IsNonTerminal reports whether name was ever used as the LHS of a rule.
func (g Grammar) IsNonTerminal(name string) bool {
	_, ok := g.rules[name]
	return ok
}

// IsTerminal reports whether name is a declared terminal, or the reserved
// end marker. Per spec.md §3, any RHS symbol that is not a nonterminal is
// implicitly a terminal even if it was never passed to AddTerm; this method
// only answers for the explicitly-declared set plus "$", since "implicitly
// a terminal" is a property of where a symbol appears, not something
// Grammar alone can decide without seeing the production it's used in.
func (g Grammar) IsTerminal(name string) bool {
	if name == EndOfInput {
		return true
	}
	return g.terms[name]
}

// Validate checks the minimal well-formedness spec.md requires: at least
// one rule, at least one declared terminal, and a start symbol.
func (g Grammar) Validate() error {
	if len(g.rules) == 0 {
		return fmt.Errorf("grammar has no rules")
	}
	if len(g.terms) == 0 {
		return fmt.Errorf("grammar declares no terminals")
	}
	if g.StartSymbol() == "" {
		return fmt.Errorf("grammar has no start symbol")
	}
	for _, nt := range g.order {
		for _, p := range g.rules[nt].Productions {
			for _, sym := range p {
				if sym == EndOfInput {
					return fmt.Errorf("production %s -> %s uses reserved end marker %q on its right-hand side", nt, p.String(), EndOfInput)
				}
			}
		}
	}
	return nil
}

// Copy returns a deep, independent copy of g.
func (g Grammar) Copy() Grammar {
	out := Grammar{
		rules: make(map[string]*Rule, len(g.rules)),
		order: append([]string(nil), g.order...),
		terms: make(map[string]bool, len(g.terms)),
		raw:   append([]string(nil), g.raw...),
	}
	for k, v := range g.terms {
		out.terms[k] = v
	}
	for k, v := range g.rules {
		prods := make([]Production, len(v.Productions))
		for i, p := range v.Productions {
			prods[i] = p.Copy()
		}
		out.rules[k] = &Rule{NonTerminal: v.NonTerminal, Productions: prods}
	}
	return out
}

// Augmented returns a copy of g extended with a fresh start nonterminal S'
// and a single production S' -> S, per spec.md §3. The fresh name is
// produced by suffixing "'" onto the old start symbol until it no longer
// collides with an existing nonterminal.
func (g Grammar) Augmented() Grammar {
	out := g.Copy()
	oldStart := out.StartSymbol()

	freshStart := oldStart + "'"
	for out.IsNonTerminal(freshStart) {
		freshStart += "'"
	}

	// splice the fresh start in as the new first entry so StartSymbol()
	// reports it.
	out.rules[freshStart] = &Rule{NonTerminal: freshStart, Productions: []Production{{oldStart}}}
	out.order = append([]string{freshStart}, out.order...)

	return out
}

// LR0Items enumerates every LR0 item reachable by placing the dot at every
// position of every production of every nonterminal in g, including the
// fresh augmenting production if g is already augmented. This is the state
// space the LR(0)/LR(1) item-based NFA view (spec.md §4.7) is built over.
func (g Grammar) LR0Items() []LR0Item {
	var items []LR0Item
	for _, nt := range g.order {
		for _, p := range g.rules[nt].Productions {
			rhs := []string(p)
			if p.Epsilon() {
				rhs = nil
			}
			for dot := 0; dot <= len(rhs); dot++ {
				items = append(items, LR0Item{
					NonTerminal: nt,
					Left:        append([]string(nil), rhs[:dot]...),
					Right:       append([]string(nil), rhs[dot:]...),
				})
			}
		}
	}
	return items
}

func (g Grammar) String() string {
	var sb strings.Builder
	for i, nt := range g.order {
		sb.WriteString(g.rules[nt].String())
		if i+1 < len(g.order) {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
