package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"github.com/dekarrin/cfgkit/internal/automaton"
	"github.com/dekarrin/cfgkit/internal/cfgerrors"
	"github.com/dekarrin/cfgkit/internal/config"
	"github.com/dekarrin/cfgkit/internal/grammar"
	"github.com/dekarrin/cfgkit/internal/parse"
	"github.com/dekarrin/cfgkit/internal/repl"
)

// replSession holds the grammar currently loaded in an interactive session,
// plus the set of grammar files visited so far (for the "recent" command).
type replSession struct {
	cfg     config.Config
	res     loadResult
	loaded  bool
	visited *treeset.Set
	reader  repl.LineReader
}

func runREPL(cfg config.Config, args []string, forceDirect bool) error {
	sessionID := uuid.New()
	pterm.Info.Printfln("cfgkit interactive session %s", sessionID.String())
	pterm.Info.Println(`type "load FILE" to begin, or "help" for a list of commands`)

	var reader repl.LineReader
	if forceDirect {
		reader = repl.NewDirectReader(os.Stdin)
	} else {
		ir, err := repl.NewInteractiveReader("cfgkit> ")
		if err != nil {
			return err
		}
		reader = ir
	}
	defer reader.Close()

	sess := &replSession{cfg: cfg, visited: treeset.NewWith(utils.StringComparator), reader: reader}
	defer sess.res.close()

	if len(args) > 0 {
		sess.load(args[:1])
	}

	for {
		line, err := reader.ReadLine()
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}

		if !sess.dispatch(line) {
			return nil
		}
	}
}

// dispatch runs one REPL command line. It returns false when the session
// should end.
func (sess *replSession) dispatch(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	cmd, rest := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit":
		return false
	case "help":
		sess.printHelp()
	case "recent":
		sess.printRecent()
	case "load":
		sess.load(rest)
	case "analyze":
		sess.analyze()
	case "ll1":
		sess.ll1(rest)
	case "lr1":
		sess.lr1(rest, false)
	case "lr1nfa":
		sess.lr1(rest, true)
	default:
		pterm.Warning.Printfln("unrecognized command %q; type \"help\" for a list", cmd)
	}
	return true
}

func (sess *replSession) printHelp() {
	fmt.Println(`commands:
  load FILE        load a grammar from FILE
  recent           list grammar files loaded so far this session
  analyze          print FIRST/FOLLOW sets for the loaded grammar
  ll1 [TOKENS...]  build the LL(1) table, parsing TOKENS if given
  lr1 [TOKENS...]  build the LR(1) table via direct construction
  lr1nfa [TOKENS...]  build the LR(1) table via the item-NFA/subset construction
  quit             end the session`)
}

func (sess *replSession) printRecent() {
	if sess.visited.Empty() {
		pterm.Info.Println("no grammars loaded yet")
		return
	}
	for _, v := range sess.visited.Values() {
		fmt.Printf("  %s\n", v)
	}
}

func (sess *replSession) load(args []string) {
	if len(args) < 1 {
		pterm.Warning.Println("usage: load FILE")
		return
	}
	res, err := loadGrammar(sess.cfg, args[0])
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	sess.res.close()
	sess.res = res
	sess.loaded = true
	sess.visited.Add(args[0])
	pterm.Success.Printfln("loaded %s", args[0])
}

func (sess *replSession) requireLoaded() bool {
	if !sess.loaded {
		pterm.Warning.Println(`no grammar loaded; use "load FILE" first`)
		return false
	}
	return true
}

// promptForTokens asks the user for a token string to drive a just-built
// table with, the way tqi's engine.inputFunc borrows the underlying reader
// for a one-off prompted read: swap in a sub-prompt on an interactive
// reader (a direct reader has no prompt to swap), allow a blank answer to
// mean "skip", then restore.
func (sess *replSession) promptForTokens() []string {
	ir, interactive := sess.reader.(*repl.InteractiveLineReader)

	var oldPrompt string
	if interactive {
		oldPrompt = ir.GetPrompt()
		ir.SetPrompt("tokens (blank to skip)> ")
	} else {
		fmt.Print("tokens (blank to skip)> ")
	}

	sess.reader.AllowBlank(true)
	line, err := sess.reader.ReadLine()
	sess.reader.AllowBlank(false)

	if interactive {
		ir.SetPrompt(oldPrompt)
	}

	if err != nil || strings.TrimSpace(line) == "" {
		return nil
	}
	return strings.Fields(line)
}

func (sess *replSession) analyze() {
	if !sess.requireLoaded() {
		return
	}
	g := sess.res.g
	first := grammar.FIRST(g)
	follow := grammar.FOLLOW(g, first)
	for _, nt := range g.NonTerminals() {
		fmt.Printf("FIRST(%s) = %s\n", nt, first[nt].StringOrdered())
	}
	for _, nt := range g.NonTerminals() {
		fmt.Printf("FOLLOW(%s) = %s\n", nt, follow[nt].StringOrdered())
	}
}

func (sess *replSession) ll1(tokens []string) {
	if !sess.requireLoaded() {
		return
	}
	g := sess.res.g
	table, err := cachedLL1Table(sess.res, func() (parse.LL1Table, error) { return parse.BuildLL1Table(g) })
	if err != nil {
		var conflict *cfgerrors.LL1Conflict
		if errors.As(err, &conflict) {
			pterm.Error.Println(conflict.Error())
			return
		}
		pterm.Error.Println(err.Error())
		return
	}
	fmt.Println(table.Render(sess.cfg.Display.Width, epsilonText(sess.cfg)))

	if len(tokens) == 0 {
		tokens = sess.promptForTokens()
		if len(tokens) == 0 {
			return
		}
	}
	steps, err := parse.ParseLL1(table, g, tokens)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	fmt.Println(steps.String())
	pterm.Success.Println("accepted")
}

func (sess *replSession) lr1(tokens []string, viaNFA bool) {
	if !sess.requireLoaded() {
		return
	}
	g := sess.res.g

	var coll automaton.Collection
	if viaNFA {
		coll = automaton.NewLR1CollectionViaNFA(g)
	} else {
		coll = automaton.NewLR1Collection(g)
	}

	table, err := cachedLR1Table(sess.res, func() (parse.LR1Table, error) { return parse.BuildLR1Table(g, coll) })
	if err != nil {
		var conflict *cfgerrors.LR1Conflict
		if errors.As(err, &conflict) {
			pterm.Error.Println(conflict.Error())
			return
		}
		pterm.Error.Println(err.Error())
		return
	}
	fmt.Println(table.Render(sess.cfg.Display.Width, epsilonText(sess.cfg)))

	if len(tokens) == 0 {
		tokens = sess.promptForTokens()
		if len(tokens) == 0 {
			return
		}
	}
	steps, err := parse.ParseLR1(table, tokens)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	fmt.Println(steps.String())
	pterm.Success.Println("accepted")
}
