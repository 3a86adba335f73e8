package grammar

import "github.com/dekarrin/cfgkit/internal/util"

// FOLLOW computes the FOLLOW set of every nonterminal in g, given an
// already-converged FIRST map, by iterating spec.md §4.3's rules to a fixed
// point: FOLLOW(start) always contains "$"; for every production B -> X1
// ... Xn and every position i where Xi is a nonterminal, FIRST(Xi+1...Xn)\
// {ε} is added to FOLLOW(Xi), and if that remainder can vanish (or Xi is
// the last symbol), FOLLOW(B) is added to FOLLOW(Xi) too.
//
// A single left-to-right pass is not enough in general: FOLLOW(B) can
// itself grow on a later pass as other productions are processed, which
// then needs to propagate back into every Xi that depended on it. The
// dirty-bit fixed-point loop here handles that the same way FIRST does.
func FOLLOW(g Grammar, first map[string]util.StringSet) map[string]util.StringSet {
	follow := map[string]util.StringSet{}
	for _, nt := range g.NonTerminals() {
		follow[nt] = util.NewStringSet()
	}
	if start := g.StartSymbol(); start != "" {
		if _, ok := follow[start]; ok {
			follow[start].Add(EndOfInput)
		}
	}

	changed := true
	for changed {
		changed = false
		for _, nt := range g.order {
			for _, p := range g.rules[nt].Productions {
				seq := []string(p)
				for i, sym := range seq {
					if !g.IsNonTerminal(sym) {
						continue
					}

					rest := seq[i+1:]
					restFirst := firstOfSequence(g, first, rest)

					before := follow[sym].Len()

					for t := range restFirst {
						if t != Epsilon {
							follow[sym].Add(t)
						}
					}

					if len(rest) == 0 || restFirst.Has(Epsilon) {
						follow[sym].AddAll(follow[nt])
					}

					if follow[sym].Len() != before {
						changed = true
					}
				}
			}
		}
	}

	return follow
}
