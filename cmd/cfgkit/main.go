/*
Cfgkit is an interactive toolkit for analyzing context-free grammars: it
computes FIRST/FOLLOW sets, builds LL(1) predictive parsing tables and
canonical LR(1) ACTION/GOTO tables, reports grammar conflicts, and drives
both kinds of table through sample token strings while recording every step
of the derivation.

Usage:

	cfgkit [flags] <command> [command flags]

The commands are:

	analyze GRAMMAR_FILE
		Load a grammar and report its FIRST and FOLLOW sets, then its LL(1)
		and LR(1) tables (either table is skipped, with a warning, if the
		grammar has a conflict in it).

	ll1 GRAMMAR_FILE [TOKENS...]
		Build the grammar's LL(1) predictive table. If any conflict is found it
		is reported and no table is printed. If TOKENS are given, parse them
		against the table and print the derivation trace.

	lr1 GRAMMAR_FILE [TOKENS...]
		Build the grammar's canonical LR(1) ACTION/GOTO table via direct
		closure/goto construction. If TOKENS are given, parse them against the
		table and print the derivation trace.

	repl [GRAMMAR_FILE]
		Start an interactive session. If GRAMMAR_FILE is given it is loaded
		immediately; otherwise use "load FILE" once in the session. Run any
		combination of the above analyses against the loaded grammar
		repeatedly from there.

The flags are:

	-v, --version
		Print the current version of cfgkit and exit.

	-c, --config FILE
		Read CLI defaults from the given TOML file instead of the built-in
		defaults.

	--nfa
		For the lr1 command, build the canonical collection via the item-NFA
		and subset construction instead of direct closure/goto. Both
		constructions produce equivalent tables; this flag exists to exercise
		and compare them.

	--no-cache
		Disable the on-disk grammar/table cache for this invocation even if
		the config enables it.

	-d, --direct
		For the repl command, force reading session input directly from
		stdin instead of going through GNU readline. Use this when piping
		commands into a repl session from a file or another process.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dekarrin/cfgkit/internal/config"
	"github.com/dekarrin/cfgkit/internal/version"
)

const (
	ExitSuccess = iota
	ExitUsageError
	ExitAnalysisError
	ExitInitError
)

var (
	returnCode int = ExitSuccess

	flagVersion = pflag.BoolP("version", "v", false, "Print the current version and exit")
	flagConfig  = pflag.StringP("config", "c", "", "Read CLI defaults from the given TOML file")
	flagViaNFA  = pflag.Bool("nfa", false, "Build the LR(1) collection via item-NFA + subset construction")
	flagNoCache = pflag.Bool("no-cache", false, "Disable the on-disk grammar/table cache")
	flagDirect  = pflag.BoolP("direct", "d", false, "Force the repl command to read stdin directly instead of via GNU readline")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("cfgkit %s\n", version.Current)
		return
	}

	cfg := config.Default()
	if *flagConfig != "" {
		loaded, err := config.Load(*flagConfig)
		if err != nil && err != config.ErrNoConfigFile {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
		cfg = loaded
	}
	if *flagNoCache {
		cfg.Cache.Enabled = false
	}

	args := pflag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "ERROR: expected a command (analyze, ll1, lr1, repl)")
		returnCode = ExitUsageError
		return
	}

	cmd, rest := args[0], args[1:]

	var err error
	switch cmd {
	case "analyze":
		err = runAnalyze(cfg, rest)
	case "ll1":
		err = runLL1(cfg, rest)
	case "lr1":
		err = runLR1(cfg, rest, *flagViaNFA)
	case "repl":
		err = runREPL(cfg, rest, *flagDirect)
	default:
		fmt.Fprintf(os.Stderr, "ERROR: unknown command %q\n", cmd)
		returnCode = ExitUsageError
		return
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitAnalysisError
	}
}
