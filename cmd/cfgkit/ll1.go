package main

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"

	"github.com/dekarrin/cfgkit/internal/cfgerrors"
	"github.com/dekarrin/cfgkit/internal/config"
	"github.com/dekarrin/cfgkit/internal/parse"
)

func runLL1(cfg config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: cfgkit ll1 GRAMMAR_FILE [TOKENS...]")
	}

	res, err := loadGrammar(cfg, args[0])
	if err != nil {
		return err
	}
	defer res.close()
	g := res.g

	table, err := cachedLL1Table(res, func() (parse.LL1Table, error) { return parse.BuildLL1Table(g) })
	if err != nil {
		var conflict *cfgerrors.LL1Conflict
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

	steps, err := parse.ParseLL1(table, g, tokens)
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
