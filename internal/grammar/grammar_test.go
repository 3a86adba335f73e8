package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		g         Grammar
		expectErr bool
	}{
		{
			name:      "empty grammar",
			g:         Grammar{},
			expectErr: true,
		},
		{
			name: "no terminals",
			g: func() Grammar {
				var g Grammar
				g.AddRule("S", Production{"S"})
				return g
			}(),
			expectErr: true,
		},
		{
			name: "well-formed single rule",
			g: func() Grammar {
				var g Grammar
				g.AddTerm("a")
				g.AddRule("S", Production{"a"})
				return g
			}(),
			expectErr: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			err := tc.g.Validate()
			if tc.expectErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func Test_Grammar_StartSymbol_isFirstRuleAdded(t *testing.T) {
	assert := assert.New(t)

	var g Grammar
	g.AddTerm("b")
	g.AddTerm("a")
	g.AddRule("B", Production{"b"})
	g.AddRule("A", Production{"a"})

	assert.Equal("B", g.StartSymbol())
}

func Test_Grammar_Augmented(t *testing.T) {
	assert := assert.New(t)

	g := aikenGrammar()
	aug := g.Augmented()

	assert.Equal("S'", aug.StartSymbol())
	rule := aug.Rule("S'")
	assert.Equal([]Production{{"S"}}, rule.Productions)

	// the original grammar is untouched
	assert.Equal("S", g.StartSymbol())
}

func Test_Grammar_Augmented_avoidsNameCollision(t *testing.T) {
	assert := assert.New(t)

	var g Grammar
	g.AddTerm("a")
	g.AddRule("S", Production{"a"})
	g.AddRule("S'", Production{"S"})

	aug := g.Augmented()
	assert.Equal("S''", aug.StartSymbol())
}

func Test_Grammar_LR0Items(t *testing.T) {
	assert := assert.New(t)

	var g Grammar
	g.AddTerm("a")
	g.AddRule("S", Production{"a", "a"})

	items := g.LR0Items()

	// one item per dot position: before a, between the two a's, after both
	assert.Len(items, 3)
	assert.Equal("S", items[0].NonTerminal)
	assert.Empty(items[0].Left)
	assert.Equal([]string{"a", "a"}, items[0].Right)
	assert.Equal([]string{"a", "a"}, items[len(items)-1].Left)
	if assert.NotEmpty(items) {
		last := items[len(items)-1]
		assert.Empty(last.Right)
	}
}
