// Package automaton implements the generic finite-automaton machinery the
// LR(1) canonical collection is built on top of: a deterministic and a
// non-deterministic finite automaton type parameterized on the value
// carried at each state, NFA-to-DFA subset construction (purple dragon
// book algorithm 3.20), and the two ways of building the canonical
// collection of LR(1) item sets that spec.md §4.7 asks for side by side
// (direct closure/goto construction, and the equivalent item-NFA-plus-
// subset-construction view).
package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/cfgkit/internal/util"
)

// FATransition is a single labeled edge. An empty Input denotes an
// epsilon-move.
type FATransition struct {
	Input string
	Next  string
}

func (t FATransition) String() string {
	inp := t.Input
	if inp == "" {
		inp = "ε"
	}
	return fmt.Sprintf("=(%s)=> %s", inp, t.Next)
}

// DFAState is one state of a DFA[E], carrying an arbitrary value of type E
// (for the LR(1) automaton, the item set the state represents).
type DFAState[E any] struct {
	name        string
	value       E
	transitions map[string]FATransition
	accepting   bool
}

func (ns DFAState[E]) String() string {
	var moves strings.Builder
	inputs := util.OrderedKeys(ns.transitions)
	for i, input := range inputs {
		moves.WriteString(ns.transitions[input].String())
		if i+1 < len(inputs) {
			moves.WriteString(", ")
		}
	}
	str := fmt.Sprintf("(%s [%s])", ns.name, moves.String())
	if ns.accepting {
		str = "(" + str + ")"
	}
	return str
}

// NFAState is one state of an NFA[E]; unlike DFAState it may carry more
// than one transition per input symbol, including the empty-string input
// for epsilon-moves.
type NFAState[E any] struct {
	name        string
	value       E
	transitions map[string][]FATransition
	accepting   bool
}

func (ns NFAState[E]) String() string {
	var moves strings.Builder
	inputs := util.OrderedKeys(ns.transitions)
	for i, input := range inputs {
		var tStrings []string
		for _, t := range ns.transitions[input] {
			tStrings = append(tStrings, t.String())
		}
		sort.Strings(tStrings)
		for tIdx, t := range tStrings {
			moves.WriteString(t)
			if tIdx+1 < len(tStrings) || i+1 < len(inputs) {
				moves.WriteString(", ")
			}
		}
	}
	str := fmt.Sprintf("(%s [%s])", ns.name, moves.String())
	if ns.accepting {
		str = "(" + str + ")"
	}
	return str
}

// DFA is a deterministic finite automaton whose states each carry a value
// of type E.
type DFA[E any] struct {
	states map[string]DFAState[E]
	Start  string
}

func (dfa *DFA[E]) SetValue(state string, v E) {
	s, ok := dfa.states[state]
	if !ok {
		panic(fmt.Sprintf("setting value on non-existing state: %q", state))
	}
	s.value = v
	dfa.states[state] = s
}

func (dfa DFA[E]) GetValue(state string) E {
	s := dfa.states[state]
	return s.value
}

// IsAccepting reports whether state is an accepting state. Returns false
// for a state that does not exist.
func (dfa DFA[E]) IsAccepting(state string) bool {
	s, ok := dfa.states[state]
	return ok && s.accepting
}

// States returns the names of every state in the DFA.
func (dfa DFA[E]) States() util.StringSet {
	out := util.NewStringSet()
	for k := range dfa.states {
		out.Add(k)
	}
	return out
}

// Next returns the state reached from fromState on input, or "" if there
// is no such state or no such transition.
func (dfa DFA[E]) Next(fromState string, input string) string {
	state, ok := dfa.states[fromState]
	if !ok {
		return ""
	}
	return state.transitions[input].Next
}

func (dfa *DFA[E]) AddState(state string, accepting bool) {
	if _, ok := dfa.states[state]; ok {
		return
	}
	if dfa.states == nil {
		dfa.states = map[string]DFAState[E]{}
	}
	dfa.states[state] = DFAState[E]{
		name:        state,
		transitions: map[string]FATransition{},
		accepting:   accepting,
	}
}

func (dfa *DFA[E]) AddTransition(fromState, input, toState string) {
	cur, ok := dfa.states[fromState]
	if !ok {
		panic(fmt.Sprintf("add transition from non-existent state %q", fromState))
	}
	if _, ok := dfa.states[toState]; !ok {
		panic(fmt.Sprintf("add transition to non-existent state %q", toState))
	}
	cur.transitions[input] = FATransition{Input: input, Next: toState}
	dfa.states[fromState] = cur
}

func (dfa DFA[E]) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<START: %q, STATES:", dfa.Start))
	ordered := util.OrderedKeys(dfa.states)
	for i, name := range ordered {
		sb.WriteString("\n\t")
		sb.WriteString(dfa.states[name].String())
		if i+1 < len(ordered) {
			sb.WriteRune(',')
		} else {
			sb.WriteRune('\n')
		}
	}
	sb.WriteRune('>')
	return sb.String()
}

// NFA is a non-deterministic finite automaton whose states each carry a
// value of type E.
type NFA[E any] struct {
	states map[string]NFAState[E]
	Start  string
}

func (nfa NFA[E]) States() util.StringSet {
	out := util.NewStringSet()
	for k := range nfa.states {
		out.Add(k)
	}
	return out
}

func (nfa *NFA[E]) AddState(state string, accepting bool) {
	if _, ok := nfa.states[state]; ok {
		return
	}
	if nfa.states == nil {
		nfa.states = map[string]NFAState[E]{}
	}
	nfa.states[state] = NFAState[E]{
		name:        state,
		transitions: map[string][]FATransition{},
		accepting:   accepting,
	}
}

func (nfa *NFA[E]) SetValue(state string, v E) {
	s, ok := nfa.states[state]
	if !ok {
		panic(fmt.Sprintf("setting value on non-existing state: %q", state))
	}
	s.value = v
	nfa.states[state] = s
}

func (nfa NFA[E]) GetValue(state string) E {
	return nfa.states[state].value
}

func (nfa *NFA[E]) AddTransition(fromState, input, toState string) {
	cur, ok := nfa.states[fromState]
	if !ok {
		panic(fmt.Sprintf("add transition from non-existent state %q", fromState))
	}
	if _, ok := nfa.states[toState]; !ok {
		panic(fmt.Sprintf("add transition to non-existent state %q", toState))
	}
	cur.transitions[input] = append(cur.transitions[input], FATransition{Input: input, Next: toState})
	nfa.states[fromState] = cur
}

// InputSymbols returns every input symbol labeling some transition in the
// NFA (the empty string, if present, stands for epsilon-moves).
func (nfa NFA[E]) InputSymbols() util.StringSet {
	out := util.NewStringSet()
	for _, st := range nfa.states {
		for a := range st.transitions {
			out.Add(a)
		}
	}
	return out
}

// MOVE returns the set of states reachable by one transition on input a
// from some state in X. Purple dragon book calls this MOVE(T, a), part of
// algorithm 3.20.
func (nfa NFA[E]) MOVE(X util.ISet[string], a string) util.StringSet {
	out := util.NewStringSet()
	for _, s := range X.Elements() {
		st, ok := nfa.states[s]
		if !ok {
			continue
		}
		for _, t := range st.transitions[a] {
			out.Add(t.Next)
		}
	}
	return out
}

// EpsilonClosure returns the set of states reachable from s using zero or
// more epsilon-moves.
func (nfa NFA[E]) EpsilonClosure(s string) util.StringSet {
	start, ok := nfa.states[s]
	if !ok {
		return nil
	}

	closure := util.NewStringSet()
	pending := util.Stack[NFAState[E]]{}
	pending.Push(start)

	for pending.Len() > 0 {
		cur := pending.Pop()
		if closure.Has(cur.name) {
			continue
		}
		closure.Add(cur.name)

		for _, move := range cur.transitions[""] {
			next, ok := nfa.states[move.Next]
			if !ok {
				panic(fmt.Sprintf("points to invalid state: %q", move.Next))
			}
			pending.Push(next)
		}
	}

	return closure
}

// EpsilonClosureOfSet is EpsilonClosure extended over every state in X.
func (nfa NFA[E]) EpsilonClosureOfSet(X util.ISet[string]) util.StringSet {
	out := util.NewStringSet()
	for _, s := range X.Elements() {
		out.AddAll(nfa.EpsilonClosure(s))
	}
	return out
}

func (nfa NFA[E]) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<START: %q, STATES:", nfa.Start))
	ordered := util.OrderedKeys(nfa.states)
	for i, name := range ordered {
		sb.WriteString("\n\t")
		sb.WriteString(nfa.states[name].String())
		if i+1 < len(ordered) {
			sb.WriteRune(',')
		} else {
			sb.WriteRune('\n')
		}
	}
	sb.WriteRune('>')
	return sb.String()
}

// ToDFA converts the NFA into a deterministic automaton accepting from the
// same states via subset construction: purple dragon book algorithm 3.20.
// Each resulting DFA state is named by the alphabetized string form of the
// NFA-state-name set it collapses, which keeps the name stable regardless
// of the order states were discovered in (spec.md §4.7's determinism
// requirement). Its value is the SVSet mapping each contributing NFA state
// name back to the E it carried, letting a caller recover (for example)
// the LR(1) items making up an automaton state.
func (nfa NFA[E]) ToDFA() DFA[util.SVSet[E]] {
	inputSymbols := nfa.InputSymbols()

	dStart := nfa.EpsilonClosure(nfa.Start)

	marked := util.NewStringSet()
	dStates := map[string]util.StringSet{}
	dStates[dStart.StringOrdered()] = dStart

	dfa := DFA[util.SVSet[E]]{states: map[string]DFAState[util.SVSet[E]]{}}

	for {
		names := util.StringSetOf(util.OrderedKeys(dStates))
		unmarked := names.Difference(marked)
		if unmarked.Len() < 1 {
			break
		}

		for _, tName := range unmarked.Sorted() {
			T := dStates[tName]
			marked.Add(tName)

			values := util.NewSVSet[E]()
			for nfaState := range T {
				values.Set(nfaState, nfa.GetValue(nfaState))
			}

			newState := DFAState[util.SVSet[E]]{name: tName, value: values, transitions: map[string]FATransition{}}
			if T.Any(func(v string) bool { return nfa.states[v].accepting }) {
				newState.accepting = true
			}

			for _, a := range inputSymbols.Sorted() {
				if a == "" {
					continue
				}

				U := nfa.EpsilonClosureOfSet(nfa.MOVE(T, a))
				if U.Empty() {
					continue
				}

				uName := U.StringOrdered()
				if !names.Has(uName) {
					names.Add(uName)
					dStates[uName] = U
				}

				newState.transitions[a] = FATransition{Input: a, Next: uName}
			}

			dfa.states[tName] = newState
			if dfa.Start == "" {
				dfa.Start = tName
			}
		}
	}

	return dfa
}
