package parse

import (
	"testing"

	"github.com/dekarrin/cfgkit/internal/automaton"
	"github.com/dekarrin/cfgkit/internal/grammar"
	"github.com/stretchr/testify/assert"
)

// ccGrammar is the purple dragon book's canonical LR(1) example (4.54):
// S -> C C, C -> c C | d. Its canonical collection has 10 states.
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

func Test_BuildLR1Table_noConflicts(t *testing.T) {
	assert := assert.New(t)

	g := ccGrammar()
	coll := automaton.NewLR1Collection(g)

	table, err := BuildLR1Table(g, coll)
	assert.NoError(err)
	assert.Equal(coll.DFA.Start, table.Initial())
}

func Test_ParseLR1(t *testing.T) {
	testCases := []struct {
		name      string
		tokens    []string
		expectErr bool
	}{
		{name: "two single-d derivations", tokens: []string{"d", "d"}},
		{name: "nested c chain", tokens: []string{"c", "d", "d"}},
		{name: "both sides nested", tokens: []string{"c", "c", "d", "c", "d"}},
		{name: "missing second C", tokens: []string{"d"}, expectErr: true},
		{name: "unexpected token", tokens: []string{"d", "x"}, expectErr: true},
	}

	g := ccGrammar()
	coll := automaton.NewLR1Collection(g)
	table, err := BuildLR1Table(g, coll)
	if err != nil {
		t.Fatal(err)
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			steps, err := ParseLR1(table, tc.tokens)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.NotEmpty(steps)
			assert.Equal("accept", steps[len(steps)-1].Action)
		})
	}
}

func Test_LR1Table_agreesViaNFAConstruction(t *testing.T) {
	assert := assert.New(t)

	g := ccGrammar()

	direct, err := BuildLR1Table(g, automaton.NewLR1Collection(g))
	assert.NoError(err)

	viaNFA, err := BuildLR1Table(g, automaton.NewLR1CollectionViaNFA(g))
	assert.NoError(err)

	steps1, err := ParseLR1(direct, []string{"c", "d", "d"})
	assert.NoError(err)

	steps2, err := ParseLR1(viaNFA, []string{"c", "d", "d"})
	assert.NoError(err)

	assert.Equal(len(steps1), len(steps2))
	assert.Equal(steps1[len(steps1)-1].Action, steps2[len(steps2)-1].Action)
}
