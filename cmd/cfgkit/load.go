package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/dekarrin/rezi"

	"github.com/dekarrin/cfgkit/internal/config"
	"github.com/dekarrin/cfgkit/internal/grammar"
	"github.com/dekarrin/cfgkit/internal/parse"
	"github.com/dekarrin/cfgkit/internal/store"
)

// loadResult bundles a loaded grammar with the (possibly nil) open cache
// connection and content hash needed to look up or store its compiled
// tables. st is nil whenever cfg.Cache.Enabled is false or the cache file
// could not be opened; every table-building helper in this package must
// treat a nil st as "no cache available" rather than an error.
type loadResult struct {
	g    grammar.Grammar
	st   *store.Store
	hash string
}

// close releases the cache connection, if one was opened. Safe to call on
// a zero loadResult.
func (res loadResult) close() {
	if res.st != nil {
		res.st.Close()
	}
}

// loadGrammar reads and parses the grammar file at path, reporting any
// malformed-line errors to stderr via pterm without treating them as fatal
// unless they leave the grammar empty, and registers the source with the
// on-disk cache when cfg.Cache.Enabled.
func loadGrammar(cfg config.Config, path string) (loadResult, error) {
	g, errs, err := grammar.LoadFile(path)
	if err != nil {
		return loadResult{}, err
	}
	for _, e := range errs {
		pterm.Warning.Println(e.Error())
	}
	if len(g.NonTerminals()) == 0 {
		return loadResult{}, fmt.Errorf("%s: no usable rules were loaded", path)
	}

	res := loadResult{g: g}

	if !cfg.Cache.Enabled {
		return res, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		pterm.Warning.Printfln("could not read %s for caching: %s", path, err.Error())
		return res, nil
	}
	res.hash = store.HashSource(string(raw))

	st, err := store.Open(cfg.Cache.Path)
	if err != nil {
		pterm.Warning.Printfln("could not open cache: %s", err.Error())
		return res, nil
	}
	res.st = st

	if _, err := st.PutGrammar(context.Background(), string(raw)); err != nil {
		pterm.Warning.Printfln("could not cache grammar: %s", err.Error())
	}

	return res, nil
}

// epsilonText returns the string cfg.Display wants empty productions
// rendered as in table output.
func epsilonText(cfg config.Config) string {
	if cfg.Display.ShowEpsilonAsSymbol {
		return grammar.Epsilon
	}
	return "(empty)"
}

// cachedLL1Table returns the LL(1) table cached for res's grammar, if one
// is on file, rebuilding and caching it with build otherwise. A cache miss,
// a disabled cache, or a corrupt cache entry all fall back to build; only
// build's own error is returned, since the cache is an optimization and
// never a correctness requirement.
func cachedLL1Table(res loadResult, build func() (parse.LL1Table, error)) (parse.LL1Table, error) {
	const kind = "ll1"

	if res.st != nil {
		if entry, ok, err := res.st.FindByHash(context.Background(), res.hash); err == nil && ok && entry.TableKind == kind {
			var snapshot parse.LL1TableData
			if _, err := rezi.DecBinary(entry.TableData, &snapshot); err == nil {
				return parse.LL1TableFromSnapshot(snapshot), nil
			}
			pterm.Warning.Println("ignoring corrupt cached LL(1) table")
		}
	}

	table, err := build()
	if err != nil {
		return parse.LL1Table{}, err
	}

	if res.st != nil {
		if entry, ok, err := res.st.FindByHash(context.Background(), res.hash); err == nil && ok {
			data := rezi.EncBinary(table.Snapshot())
			if err := res.st.PutTable(context.Background(), entry.ID, kind, data); err != nil {
				pterm.Warning.Printfln("could not cache LL(1) table: %s", err.Error())
			}
		}
	}

	return table, nil
}

// cachedLR1Table is cachedLL1Table's LR(1) counterpart.
func cachedLR1Table(res loadResult, build func() (parse.LR1Table, error)) (parse.LR1Table, error) {
	const kind = "lr1"

	if res.st != nil {
		if entry, ok, err := res.st.FindByHash(context.Background(), res.hash); err == nil && ok && entry.TableKind == kind {
			var snapshot parse.LR1TableData
			if _, err := rezi.DecBinary(entry.TableData, &snapshot); err == nil {
				return parse.LR1TableFromSnapshot(snapshot), nil
			}
			pterm.Warning.Println("ignoring corrupt cached LR(1) table")
		}
	}

	table, err := build()
	if err != nil {
		return parse.LR1Table{}, err
	}

	if res.st != nil {
		if entry, ok, err := res.st.FindByHash(context.Background(), res.hash); err == nil && ok {
			data := rezi.EncBinary(table.Snapshot())
			if err := res.st.PutTable(context.Background(), entry.ID, kind, data); err != nil {
				pterm.Warning.Printfln("could not cache LR(1) table: %s", err.Error())
			}
		}
	}

	return table, nil
}
