package parse

import (
	"testing"

	"github.com/dekarrin/cfgkit/internal/cfgerrors"
	"github.com/dekarrin/cfgkit/internal/grammar"
	"github.com/stretchr/testify/assert"
)

// aikenGrammar mirrors the LL(1) example from Aiken's CS143 notes:
// S -> T X, T -> lparen S rparen | int Y, X -> p S | ε, Y -> m T | ε.
func aikenGrammar() grammar.Grammar {
	g, errs := grammar.Load(`
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

func Test_BuildLL1Table(t *testing.T) {
	assert := assert.New(t)

	g := aikenGrammar()
	table, err := BuildLL1Table(g)
	assert.NoError(err)

	testCases := []struct {
		nt      string
		term    string
		expect  grammar.Production
		present bool
	}{
		{nt: "S", term: "int", expect: grammar.Production{"T", "X"}, present: true},
		{nt: "S", term: "lparen", expect: grammar.Production{"T", "X"}, present: true},
		{nt: "T", term: "int", expect: grammar.Production{"int", "Y"}, present: true},
		{nt: "T", term: "lparen", expect: grammar.Production{"lparen", "S", "rparen"}, present: true},
		{nt: "X", term: "p", expect: grammar.Production{"p", "S"}, present: true},
		{nt: "X", term: "rparen", expect: grammar.Production{}, present: true},
		{nt: "X", term: grammar.EndOfInput, expect: grammar.Production{}, present: true},
		{nt: "Y", term: "m", expect: grammar.Production{"m", "T"}, present: true},
		{nt: "Y", term: "p", expect: grammar.Production{}, present: true},
		{nt: "Y", term: "rparen", expect: grammar.Production{}, present: true},
		{nt: "Y", term: grammar.EndOfInput, expect: grammar.Production{}, present: true},
		{nt: "X", term: "int", present: false},
	}

	for _, tc := range testCases {
		got, ok := table.Get(tc.nt, tc.term)
		assert.Equal(tc.present, ok, "M[%s, %s] presence", tc.nt, tc.term)
		if tc.present {
			assert.True(tc.expect.Equal(got), "M[%s, %s] = %s, want %s", tc.nt, tc.term, got.String(), tc.expect.String())
		}
	}
}

func Test_BuildLL1Table_conflict(t *testing.T) {
	assert := assert.New(t)

	g, errs := grammar.Load(`S -> a | a b`)
	assert.Empty(errs)

	_, err := BuildLL1Table(g)
	assert.Error(err)

	var conflict *cfgerrors.LL1Conflict
	assert.ErrorAs(err, &conflict)
}

func Test_ParseLL1(t *testing.T) {
	testCases := []struct {
		name      string
		tokens    []string
		expectErr bool
	}{
		{name: "minimal valid program", tokens: []string{"int"}},
		{name: "parenthesized", tokens: []string{"lparen", "int", "rparen"}},
		{name: "trailing plus chain", tokens: []string{"int", "p", "int"}},
		{name: "unexpected token", tokens: []string{"m"}, expectErr: true},
	}

	g := aikenGrammar()
	table, err := BuildLL1Table(g)
	if err != nil {
		t.Fatal(err)
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			steps, err := ParseLL1(table, g, tc.tokens)
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
