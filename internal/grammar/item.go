package grammar

import (
	"fmt"
	"strings"
)

// LR0Item is a production with a dot: the NonTerminal's Left (consumed)
// symbols and Right (remaining) symbols. Items are small immutable value
// types; copies are cheap and there are deliberately no back-pointers to
// the state that contains an item (spec.md §9).
type LR0Item struct {
	NonTerminal string
	Left        []string
	Right       []string
}

// Equal compares all fields structurally.
func (i LR0Item) Equal(o LR0Item) bool {
	if i.NonTerminal != o.NonTerminal {
		return false
	}
	if len(i.Left) != len(o.Left) || len(i.Right) != len(o.Right) {
		return false
	}
	for k := range i.Left {
		if i.Left[k] != o.Left[k] {
			return false
		}
	}
	for k := range i.Right {
		if i.Right[k] != o.Right[k] {
			return false
		}
	}
	return true
}

// AtDot returns the symbol immediately after the dot and whether one
// exists (false if the dot is at the end of the production).
func (i LR0Item) AtDot() (string, bool) {
	if len(i.Right) == 0 {
		return "", false
	}
	return i.Right[0], true
}

// Advance returns the item with the dot moved one position to the right
// over symbol X. The caller must already know X == i.Right[0].
func (i LR0Item) Advance() LR0Item {
	next := LR0Item{
		NonTerminal: i.NonTerminal,
		Left:        make([]string, len(i.Left)+1),
		Right:       make([]string, len(i.Right)-1),
	}
	copy(next.Left, i.Left)
	next.Left[len(i.Left)] = i.Right[0]
	copy(next.Right, i.Right[1:])
	return next
}

// String renders the item using the middle-dot form spec.md §6.3 mandates:
// "A -> α·β".
func (i LR0Item) String() string {
	left := strings.Join(i.Left, " ")
	right := strings.Join(i.Right, " ")
	if left != "" {
		left += " "
	}
	if right != "" {
		right = " " + right
	}
	return fmt.Sprintf("%s -> %s·%s", i.NonTerminal, left, right)
}

// LR1Item pairs an LR0Item with a one-symbol lookahead.
type LR1Item struct {
	LR0Item
	Lookahead string
}

// Equal compares all four fields: NonTerminal, Left, Right, and Lookahead.
func (i LR1Item) Equal(o LR1Item) bool {
	return i.LR0Item.Equal(o.LR0Item) && i.Lookahead == o.Lookahead
}

// Copy returns an independent copy of i.
func (i LR1Item) Copy() LR1Item {
	out := LR1Item{
		LR0Item: LR0Item{
			NonTerminal: i.NonTerminal,
			Left:        make([]string, len(i.Left)),
			Right:       make([]string, len(i.Right)),
		},
		Lookahead: i.Lookahead,
	}
	copy(out.Left, i.Left)
	copy(out.Right, i.Right)
	return out
}

// Advance moves the dot one position to the right, keeping the lookahead.
func (i LR1Item) Advance() LR1Item {
	return LR1Item{LR0Item: i.LR0Item.Advance(), Lookahead: i.Lookahead}
}

func (i LR1Item) String() string {
	return fmt.Sprintf("%s, %s", i.LR0Item.String(), i.Lookahead)
}

// Core strips the lookahead, returning just the LR0Item. Two LR1 items with
// the same core but different lookaheads are what an LALR(1) merge would
// collapse; cfgkit does not implement LALR merging (spec.md's Non-goals).
// The automaton package does not use Core: it keys items and states by the
// full LR1Item.String(), lookahead included.
func (i LR1Item) Core() LR0Item {
	return i.LR0Item
}
