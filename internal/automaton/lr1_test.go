package automaton

import (
	"testing"

	"github.com/dekarrin/cfgkit/internal/grammar"
	"github.com/stretchr/testify/assert"
)

// ccGrammar is the purple dragon book's canonical example for LR(1)
// construction (example 4.54): S -> C C, C -> c C | d. Its canonical LR(1)
// collection has 10 states, with cores repeated under different lookaheads,
// which is why the book uses it to demonstrate canonical-LR1 construction.
func ccGrammar() grammar.Grammar {
	g, errs := grammar.Load(`
		S -> C C
		C -> c C
		   | d
	`)
	if len(errs) != 0 {
		panic(errs)
	}
	return g
}

func Test_Closure(t *testing.T) {
	assert := assert.New(t)

	g := ccGrammar().Augmented()
	initial := grammar.LR1Item{
		LR0Item:   grammar.LR0Item{NonTerminal: g.StartSymbol(), Right: []string{"S"}},
		Lookahead: grammar.EndOfInput,
	}

	closure := Closure(g, map[string]grammar.LR1Item{initial.String(): initial})

	// closure of the initial item must include itself, plus every way of
	// starting to derive S and then C: [S -> .CC, $], [C -> .cC, c/d],
	// [C -> .d, c/d].
	assert.True(closure.Has(initial.String()))

	wantCores := map[string]bool{
		"S' -> · S":   true,
		"S -> · C C":  true,
		"C -> · c C":  true,
		"C -> · d":    true,
	}
	gotCores := map[string]bool{}
	for _, item := range closure {
		gotCores[item.Core().String()] = true
	}
	assert.Equal(wantCores, gotCores)
}

func Test_Goto(t *testing.T) {
	assert := assert.New(t)

	g := ccGrammar().Augmented()
	initial := grammar.LR1Item{
		LR0Item:   grammar.LR0Item{NonTerminal: g.StartSymbol(), Right: []string{"S"}},
		Lookahead: grammar.EndOfInput,
	}
	I0 := Closure(g, map[string]grammar.LR1Item{initial.String(): initial})

	onC := Goto(g, I0, "C")
	assert.False(onC.Empty())

	// GOTO(I0, C) must contain [S -> C.C, $] and the closure items for the
	// second C (lookahead $, since nothing follows it).
	found := false
	for _, item := range onC {
		if item.NonTerminal == "S" && len(item.Left) == 1 && item.Left[0] == "C" && len(item.Right) == 1 && item.Right[0] == "C" {
			found = true
			assert.Equal(grammar.EndOfInput, item.Lookahead)
		}
	}
	assert.True(found)
}

func Test_LR1Collection_directAndNFAConstructionAgree(t *testing.T) {
	assert := assert.New(t)

	g := ccGrammar()

	direct := NewLR1Collection(g)
	viaNFA := NewLR1CollectionViaNFA(g)

	assert.Equal(len(direct.Order), len(viaNFA.Order), "same number of states")

	directSets := map[string]bool{}
	for _, name := range direct.Order {
		directSets[direct.State(name).StringOrdered()] = true
	}
	nfaSets := map[string]bool{}
	for _, name := range viaNFA.Order {
		nfaSets[viaNFA.State(name).StringOrdered()] = true
	}

	assert.Equal(directSets, nfaSets, "both constructions reach the same collection of item sets")
}
