package grammar

import "strings"

// Epsilon is the reserved terminal name denoting the empty string. It can
// appear as a FIRST-set member and, textually, as either "ε" or "''" in
// source rules (see Load in loader.go); internally it is always normalized
// to this one constant.
const Epsilon = "ε"

// EndOfInput is the reserved end-of-input marker. It is never declared as a
// nonterminal, never appears on a production's right-hand side, and is
// implicitly appended to every token stream a driver consumes.
const EndOfInput = "$"

// Production is the right-hand side of a rule: an ordered sequence of
// symbol names. A nil or zero-length Production denotes an ε-production.
type Production []string

// Epsilon reports whether p is the empty production.
func (p Production) Epsilon() bool {
	return len(p) == 0
}

// Equal reports whether p and o name the exact same symbols in the same
// order. Two empty productions are always equal regardless of nilness.
func (p Production) Equal(o Production) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// String renders the production the way spec.md §6.3 requires productions
// to appear in reduction traces: symbols space-joined, "ε" for empty.
func (p Production) String() string {
	if p.Epsilon() {
		return Epsilon
	}
	return strings.Join(p, " ")
}

// Copy returns an independent copy of p.
func (p Production) Copy() Production {
	out := make(Production, len(p))
	copy(out, p)
	return out
}

// Rule is every production defined for a single nonterminal, in the order
// they were added (textual order, per spec.md §4.1's ordering policy).
type Rule struct {
	NonTerminal string
	Productions []Production
}

func (r Rule) String() string {
	alts := make([]string, len(r.Productions))
	for i, p := range r.Productions {
		alts[i] = p.String()
	}
	return r.NonTerminal + " -> " + strings.Join(alts, " | ")
}

// Equal reports whether r and o have the same nonterminal and, order
// sensitively, the exact same list of productions.
func (r Rule) Equal(o Rule) bool {
	if r.NonTerminal != o.NonTerminal || len(r.Productions) != len(o.Productions) {
		return false
	}
	for i := range r.Productions {
		if !r.Productions[i].Equal(o.Productions[i]) {
			return false
		}
	}
	return true
}
