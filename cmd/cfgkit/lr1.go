package main

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"

	"github.com/dekarrin/cfgkit/internal/automaton"
	"github.com/dekarrin/cfgkit/internal/cfgerrors"
	"github.com/dekarrin/cfgkit/internal/config"
	"github.com/dekarrin/cfgkit/internal/parse"
)

func runLR1(cfg config.Config, args []string, viaNFA bool) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: cfgkit lr1 GRAMMAR_FILE [TOKENS...]")
	}

	res, err := loadGrammar(cfg, args[0])
	if err != nil {
		return err
	}
	defer res.close()
	g := res.g

	var coll automaton.Collection
	if viaNFA {
		coll = automaton.NewLR1CollectionViaNFA(g)
	} else {
		coll = automaton.NewLR1Collection(g)
	}
	pterm.Info.Printfln("canonical collection has %d states", len(coll.Order))

	table, err := cachedLR1Table(res, func() (parse.LR1Table, error) { return parse.BuildLR1Table(g, coll) })
	if err != nil {
		var conflict *cfgerrors.LR1Conflict
		if errors.As(err, &conflict) {
			pterm.Error.Println(conflict.Error())
			return nil
		}
		return err
	}

	fmt.Println(table.Render(cfg.Display.Width, epsilonText(cfg)))

	tokens := args[1:]
	if len(tokens) == 0 {
		return nil
	}

	steps, err := parse.ParseLR1(table, tokens)
	if err != nil {
		var parseErr *cfgerrors.ParseError
		if errors.As(err, &parseErr) {
			pterm.Error.Println(parseErr.Error())
			return nil
		}
		return err
	}

	fmt.Println(steps.String())
	pterm.Success.Println("accepted")
	return nil
}
