// Package trace centralizes the step-by-step derivation record both parser
// drivers produce (spec.md §4.9, §6.4): a Step per stack/input/action
// triple, collected into Steps by a Recorder, plus the stable String()
// forms of the stack and input a Step carries so the same rendering is
// used whether a step is printed to a terminal or persisted.
package trace

import "strings"

// Step is one row of a derivation trace: the parser's stack and remaining
// input at the moment Action was taken. Input is next-token-first. Stack is
// the snapshot the driver passed to Record: ParseLL1 gives its symbol stack
// bottom to top (top last); ParseLR1 gives its symbol stack top first,
// followed by its state stack bottom to top.
type Step struct {
	Stack  []string
	Input  []string
	Action string
}

func (s Step) String() string {
	return "[" + strings.Join(s.Stack, " ") + "]  [" + strings.Join(s.Input, " ") + "]  " + s.Action
}

// Steps is a complete derivation trace, in the order the driver produced
// them.
type Steps []Step

func (s Steps) String() string {
	lines := make([]string, len(s))
	for i, step := range s {
		lines[i] = step.String()
	}
	return strings.Join(lines, "\n")
}

// Recorder accumulates Steps as a driver runs. The zero value is ready to
// use.
type Recorder struct {
	steps Steps
}

// Record snapshots stack and input (copying both, since drivers mutate
// their working stacks in place) alongside the action just taken.
func (r *Recorder) Record(stack, input []string, action string) {
	r.steps = append(r.steps, Step{
		Stack:  append([]string(nil), stack...),
		Input:  append([]string(nil), input...),
		Action: action,
	})
}

// Steps returns the trace recorded so far.
func (r *Recorder) Steps() Steps {
	return r.steps
}
