// Package parse implements LL(1) and LR(1) table construction and the two
// table-driven parser drivers built on top of them (spec.md §4.4, §4.8,
// §4.9): no lexer synthesis, no error recovery, and no grammar
// transformation happen here — a driver that reaches a dead end reports it
// and stops.
package parse

import (
	"fmt"

	"github.com/dekarrin/cfgkit/internal/grammar"
)

// LRActionType is the kind of action an LR(1) ACTION table cell holds.
type LRActionType int

// LRError is deliberately the zero value: an LR1Table cell nobody ever
// wrote an entry for (table.action[s][a] on a missing key returns a zero
// LRAction) must read as "no action here," not as a silent shift.
const (
	LRError LRActionType = iota
	LRShift
	LRReduce
	LRAccept
)

func (t LRActionType) String() string {
	switch t {
	case LRShift:
		return "shift"
	case LRReduce:
		return "reduce"
	case LRAccept:
		return "accept"
	default:
		return "error"
	}
}

// LRAction is one ACTION table cell.
type LRAction struct {
	Type LRActionType

	// Production and Symbol are set when Type is LRReduce: the A -> β being
	// reduced.
	Production grammar.Production
	Symbol     string

	// State is set when Type is LRShift: the state shifted to.
	State string
}

func (act LRAction) String() string {
	switch act.Type {
	case LRAccept:
		return "accept"
	case LRReduce:
		return fmt.Sprintf("reduce %s -> %s", act.Symbol, act.Production.String())
	case LRShift:
		return fmt.Sprintf("shift %s", act.State)
	default:
		return "error"
	}
}

func (act LRAction) Equal(o LRAction) bool {
	return act.Type == o.Type &&
		act.Production.Equal(o.Production) &&
		act.Symbol == o.Symbol &&
		act.State == o.State
}

// describeConflict renders a human-readable description of an action for
// use in a conflict error, distinguishing shift/reduce, reduce/reduce, and
// accept conflicts the way spec.md §4.8 requires them reported.
func describeConflict(act LRAction) string {
	switch act.Type {
	case LRShift:
		return fmt.Sprintf("shift to %s", act.State)
	case LRReduce:
		return fmt.Sprintf("reduce %s -> %s", act.Symbol, act.Production.String())
	case LRAccept:
		return "accept"
	default:
		return "error"
	}
}
