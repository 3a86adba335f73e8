package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/dekarrin/cfgkit/internal/automaton"
	"github.com/dekarrin/cfgkit/internal/cfgerrors"
	"github.com/dekarrin/cfgkit/internal/config"
	"github.com/dekarrin/cfgkit/internal/grammar"
	"github.com/dekarrin/cfgkit/internal/parse"
	"github.com/dekarrin/cfgkit/internal/util"
)

func runAnalyze(cfg config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: cfgkit analyze GRAMMAR_FILE")
	}

	res, err := loadGrammar(cfg, args[0])
	if err != nil {
		return err
	}
	defer res.close()
	g := res.g

	nts := g.NonTerminals()
	terms := g.Terminals()
	pterm.Info.Printfln("loaded %s production rules over %s nonterminals and %s terminals",
		humanize.Comma(int64(len(g.RawRules()))), humanize.Comma(int64(len(nts))), humanize.Comma(int64(len(terms))))
	fmt.Printf("nonterminals: %s\n", util.MakeTextList(append([]string(nil), nts...)))

	first := grammar.FIRST(g)
	follow := grammar.FOLLOW(g, first)

	fmt.Println("FIRST sets:")
	for _, nt := range nts {
		fmt.Printf("  FIRST(%s) = %s\n", nt, first[nt].StringOrdered())
	}

	fmt.Println("FOLLOW sets:")
	for _, nt := range nts {
		fmt.Printf("  FOLLOW(%s) = %s\n", nt, follow[nt].StringOrdered())
	}

	epsilon := epsilonText(cfg)

	ll1, err := cachedLL1Table(res, func() (parse.LL1Table, error) { return parse.BuildLL1Table(g) })
	if err != nil {
		var conflict *cfgerrors.LL1Conflict
		if errors.As(err, &conflict) {
			pterm.Warning.Printfln("not LL(1): %s", conflict.Error())
		} else {
			return err
		}
	} else {
		fmt.Println("LL(1) table:")
		fmt.Println(ll1.Render(cfg.Display.Width, epsilon))
	}

	coll := automaton.NewLR1Collection(g)
	lr1, err := cachedLR1Table(res, func() (parse.LR1Table, error) { return parse.BuildLR1Table(g, coll) })
	if err != nil {
		var conflict *cfgerrors.LR1Conflict
		if errors.As(err, &conflict) {
			pterm.Warning.Printfln("not LR(1): %s", conflict.Error())
		} else {
			return err
		}
	} else {
		fmt.Println("LR(1) table:")
		fmt.Println(lr1.Render(cfg.Display.Width, epsilon))
	}

	return nil
}
