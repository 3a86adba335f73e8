package grammar

import "github.com/dekarrin/cfgkit/internal/util"

// FIRST computes the FIRST set of every nonterminal in g by iterating the
// productions to a fixed point (spec.md §4.2). The lattice is finite and
// every step is a monotone union, so termination is guaranteed regardless of
// how the grammar is structured, including grammars with cycles or mutual
// recursion (spec.md §9).
//
// The returned map holds one entry per declared nonterminal; ε is included
// in a nonterminal's set iff that nonterminal can derive the empty string.
func FIRST(g Grammar) map[string]util.StringSet {
	first := map[string]util.StringSet{}
	for _, nt := range g.NonTerminals() {
		first[nt] = util.NewStringSet()
	}

	changed := true
	for changed {
		changed = false
		for _, nt := range g.order {
			for _, p := range g.rules[nt].Productions {
				seq := firstOfSequence(g, first, []string(p))
				before := first[nt].Len()
				first[nt].AddAll(seq)
				if first[nt].Len() != before {
					changed = true
				}
			}
		}
	}

	return first
}

// FirstOfSequence computes FIRST(β) for an arbitrary symbol sequence using
// an already-converged FIRST map, per spec.md §4.2: build left to right,
// adding FIRST(Xi)\{ε} and stopping as soon as some Xi cannot derive ε; if
// every symbol in the sequence can derive ε, ε is added to the result.
func FirstOfSequence(g Grammar, first map[string]util.StringSet, seq []string) util.StringSet {
	return firstOfSequence(g, first, seq)
}

func firstOfSequence(g Grammar, first map[string]util.StringSet, seq []string) util.StringSet {
	result := util.NewStringSet()

	if len(seq) == 0 {
		result.Add(Epsilon)
		return result
	}

	for _, sym := range seq {
		var symFirst util.StringSet
		switch {
		case sym == Epsilon:
			symFirst = util.NewStringSet()
			symFirst.Add(Epsilon)
		case g.IsNonTerminal(sym):
			symFirst = first[sym]
			if symFirst == nil {
				symFirst = util.NewStringSet()
			}
		default:
			// declared terminal, or an undeclared symbol that spec.md §3
			// treats as an implicit terminal literal.
			symFirst = util.NewStringSet()
			symFirst.Add(sym)
		}

		for t := range symFirst {
			if t != Epsilon {
				result.Add(t)
			}
		}

		if !symFirst.Has(Epsilon) {
			// this symbol can't vanish, so the sequence's FIRST set stops
			// accumulating here.
			return result
		}
	}

	// every symbol in the sequence could derive ε.
	result.Add(Epsilon)
	return result
}
