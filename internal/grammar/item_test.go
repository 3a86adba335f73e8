package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_LR0Item_String(t *testing.T) {
	testCases := []struct {
		name   string
		item   LR0Item
		expect string
	}{
		{
			name:   "dot at start",
			item:   LR0Item{NonTerminal: "E", Right: []string{"E", "+", "T"}},
			expect: "E -> · E + T",
		},
		{
			name:   "dot in middle",
			item:   LR0Item{NonTerminal: "E", Left: []string{"E", "+"}, Right: []string{"T"}},
			expect: "E -> E + · T",
		},
		{
			name:   "dot at end",
			item:   LR0Item{NonTerminal: "E", Left: []string{"E", "+", "T"}},
			expect: "E -> E + T ·",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.item.String())
		})
	}
}

func Test_LR0Item_Advance(t *testing.T) {
	assert := assert.New(t)

	item := LR0Item{NonTerminal: "E", Right: []string{"T", "+", "E"}}
	next := item.Advance()

	assert.Equal([]string{"T"}, next.Left)
	assert.Equal([]string{"+", "E"}, next.Right)

	// advancing the original item doesn't mutate it
	assert.Empty(item.Left)
}

func Test_LR1Item_Equal(t *testing.T) {
	assert := assert.New(t)

	a := LR1Item{LR0Item: LR0Item{NonTerminal: "S", Right: []string{"a"}}, Lookahead: "$"}
	b := LR1Item{LR0Item: LR0Item{NonTerminal: "S", Right: []string{"a"}}, Lookahead: "$"}
	c := LR1Item{LR0Item: LR0Item{NonTerminal: "S", Right: []string{"a"}}, Lookahead: "b"}

	assert.True(a.Equal(b))
	assert.False(a.Equal(c))
}

func Test_LR1Item_Core(t *testing.T) {
	assert := assert.New(t)

	item := LR1Item{LR0Item: LR0Item{NonTerminal: "S", Right: []string{"a"}}, Lookahead: "$"}
	assert.Equal(LR0Item{NonTerminal: "S", Right: []string{"a"}}, item.Core())
}
