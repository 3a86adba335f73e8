package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// aikenGrammar is the little example Aiken's CS143 notes use for LL(1)
// table construction, with ( ) + * spelled lparen rparen p m:
// S -> T X, T -> lparen S rparen | int Y, X -> p S | ε, Y -> m T | ε.
func aikenGrammar() Grammar {
	g, errs := Load(`
		S -> T X
		T -> lparen S rparen
		   | int Y
		X -> p S
		   | ''
		Y -> m T
		   | ''
	`)
	if len(errs) != 0 {
		panic(errs)
	}
	return g
}

func Test_FIRST(t *testing.T) {
	testCases := []struct {
		name   string
		g      func() Grammar
		symbol string
		expect []string
	}{
		{
			name:   "terminal-leading alternatives",
			g:      aikenGrammar,
			symbol: "S",
			expect: []string{"int", "lparen"},
		},
		{
			name:   "nonterminal that can vanish",
			g:      aikenGrammar,
			symbol: "X",
			expect: []string{Epsilon, "p"},
		},
		{
			name:   "another nonterminal that can vanish",
			g:      aikenGrammar,
			symbol: "Y",
			expect: []string{Epsilon, "m"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			g := tc.g()
			first := FIRST(g)
			assert.ElementsMatch(tc.expect, first[tc.symbol].Elements())
		})
	}
}

func Test_FirstOfSequence(t *testing.T) {
	assert := assert.New(t)
	g := aikenGrammar()
	first := FIRST(g)

	// X Y can both vanish, so FIRST(X Y) must include ε.
	result := FirstOfSequence(g, first, []string{"X", "Y"})
	assert.True(result.Has(Epsilon))
	assert.True(result.Has("p"))
	assert.True(result.Has("m"))
}
