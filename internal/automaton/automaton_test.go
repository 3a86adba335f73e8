package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildDFA(transitions map[string]map[string]string, start string, accepting []string) DFA[string] {
	dfa := DFA[string]{}
	acceptSet := map[string]bool{}
	for _, s := range accepting {
		acceptSet[s] = true
	}

	for s := range transitions {
		dfa.AddState(s, acceptSet[s])
		dfa.SetValue(s, s)
	}
	for s, outs := range transitions {
		for input, to := range outs {
			dfa.AddTransition(s, input, to)
		}
	}
	dfa.Start = start
	return dfa
}

func Test_DFA_Next(t *testing.T) {
	assert := assert.New(t)

	dfa := buildDFA(map[string]map[string]string{
		"q0": {"a": "q1"},
		"q1": {"b": "q2"},
		"q2": {},
	}, "q0", []string{"q2"})

	assert.Equal("q1", dfa.Next("q0", "a"))
	assert.Equal("q2", dfa.Next("q1", "b"))
	assert.Equal("", dfa.Next("q0", "b"))
	assert.Equal("", dfa.Next("nonexistent", "a"))
	assert.True(dfa.IsAccepting("q2"))
	assert.False(dfa.IsAccepting("q0"))
}

func Test_NFA_EpsilonClosure(t *testing.T) {
	assert := assert.New(t)

	nfa := NFA[string]{}
	for _, s := range []string{"a", "b", "c"} {
		nfa.AddState(s, s == "c")
		nfa.SetValue(s, s)
	}
	nfa.AddTransition("a", "", "b")
	nfa.AddTransition("b", "", "c")
	nfa.Start = "a"

	closure := nfa.EpsilonClosure("a")
	assert.True(closure.Has("a"))
	assert.True(closure.Has("b"))
	assert.True(closure.Has("c"))
	assert.Equal(3, closure.Len())
}

func Test_NFA_ToDFA_subsetConstruction(t *testing.T) {
	assert := assert.New(t)

	// classic ambiguous NFA: a|ab, accepting after either branch, used only
	// to exercise ToDFA's subset construction on a non-trivial shape.
	nfa := NFA[string]{}
	for _, s := range []string{"s0", "s1", "s2"} {
		nfa.AddState(s, s == "s1" || s == "s2")
		nfa.SetValue(s, s)
	}
	nfa.AddTransition("s0", "a", "s1")
	nfa.AddTransition("s0", "a", "s2")
	nfa.AddTransition("s2", "b", "s1")
	nfa.Start = "s0"

	dfa := nfa.ToDFA()

	startName := dfa.Start
	assert.True(dfa.IsAccepting(dfa.Next(startName, "a")))

	onA := dfa.Next(startName, "a")
	onAB := dfa.Next(onA, "b")
	assert.NotEmpty(onAB)
	assert.True(dfa.IsAccepting(onAB))
}
