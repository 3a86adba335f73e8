package grammar

import (
	"testing"

	"github.com/dekarrin/cfgkit/internal/cfgerrors"
	"github.com/stretchr/testify/assert"
)

func Test_Load(t *testing.T) {
	testCases := []struct {
		name          string
		text          string
		expectStart   string
		expectNTs     []string
		expectTerms   []string
		expectErrLine int // 0 if no error expected
	}{
		{
			name:        "single rule",
			text:        "S -> a b",
			expectStart: "S",
			expectNTs:   []string{"S"},
			expectTerms: []string{"$", "a", "b"},
		},
		{
			name: "alternatives and epsilon",
			text: `
				S -> a S b
				   | ε
			`,
			expectStart: "S",
			expectNTs:   []string{"S"},
			expectTerms: []string{"$", "a", "b"},
		},
		{
			name: "quoted terminals and comments",
			text: `
				# a tiny arithmetic grammar
				E -> T '+' E | T
				T -> 'id'
			`,
			expectStart: "E",
			expectNTs:   []string{"E", "T"},
			expectTerms: []string{"$", "+", "id"},
		},
		{
			name:          "malformed line has no arrow",
			text:          "S a b\n",
			expectErrLine: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g, errs := Load(tc.text)

			if tc.expectErrLine != 0 {
				if assert.NotEmpty(errs) {
					fmtErr, ok := errs[0].(*cfgerrors.GrammarFormatError)
					if assert.True(ok, "expected a *cfgerrors.GrammarFormatError") {
						assert.Equal(tc.expectErrLine, fmtErr.Line)
					}
				}
				return
			}

			assert.Empty(errs)
			assert.Equal(tc.expectStart, g.StartSymbol())
			assert.Equal(tc.expectNTs, g.NonTerminals())
			assert.Equal(tc.expectTerms, g.Terminals())
		})
	}
}

func Test_Load_epsilonProduction(t *testing.T) {
	assert := assert.New(t)

	g, errs := Load(`S -> a S | ''`)
	assert.Empty(errs)

	rule := g.Rule("S")
	assert.Len(rule.Productions, 2)
	assert.True(rule.Productions[1].Epsilon())
}

func Test_LoadFile_missing(t *testing.T) {
	assert := assert.New(t)

	_, _, err := LoadFile("/nonexistent/path/to/a/grammar.txt")
	assert.Error(err)
}
