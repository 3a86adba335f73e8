// Package grammar implements the symbol model, grammar loader, and the
// FIRST/FOLLOW fixed-point engines from spec.md §3, §4.1, §4.2, and §4.3.
package grammar

import (
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/dekarrin/cfgkit/internal/cfgerrors"
)

// Load parses a textual rule list (spec.md §6.1) into a Grammar.
//
// One rule per logical line, in the shape "LHS -> ALT1 | ALT2 | ...". A
// line may continue a prior rule's alternative list by starting with "|"
// (used to spread a long rule over multiple physical lines, as in the
// dragon-book examples this toolkit's tests are drawn from). "#" starts a
// comment line; blank lines are ignored.
//
// Malformed lines (no "->", or outside of a continuation, a "|" with no
// preceding rule) are collected as *cfgerrors.GrammarFormatError and
// skipped; Load never aborts because of them. The returned error slice is
// empty on a fully clean parse.
func Load(text string) (Grammar, []error) {
	var g Grammar
	var errs []error
	var rawRules []string

	logicalLines, lineNos := joinContinuations(text)

	// First pass: every LHS is a nonterminal, regardless of where it's
	// later referenced from. This lets the second pass decide, symbol by
	// symbol, whether a bare RHS token is a nonterminal reference or an
	// implicit terminal (spec.md §3).
	nonTerminals := map[string]bool{}
	for _, line := range logicalLines {
		if lhs, _, ok := splitRule(line); ok {
			nonTerminals[lhs] = true
		}
	}

	for idx, line := range logicalLines {
		lhs, rhsText, ok := splitRule(line)
		if !ok {
			errs = append(errs, &cfgerrors.GrammarFormatError{
				Line:   lineNos[idx],
				Text:   line,
				Reason: "expected a rule of the form LHS -> ALT1 | ALT2",
			})
			continue
		}

		rawRules = append(rawRules, line)

		for _, altText := range strings.Split(rhsText, "|") {
			prod := parseAlternative(altText, nonTerminals, &g)
			g.AddRule(lhs, prod)
		}
	}

	g.SetRawRules(rawRules)
	return g, errs
}

// LoadFile reads path and parses it with Load. A read failure is reported
// as *cfgerrors.IoError and aborts loading entirely, unlike a malformed
// individual rule line.
func LoadFile(path string) (Grammar, []error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Grammar{}, nil, &cfgerrors.IoError{Cause: err}
	}
	g, errs := Load(string(data))
	return g, errs, nil
}

// joinContinuations groups physical lines into logical rule lines: a line
// whose trimmed form starts with "|" is appended to the previous logical
// line rather than starting a new one. Comment and blank lines are dropped
// and never join with anything. lineNos[i] is the 1-indexed source line
// the logical line at index i started on.
func joinContinuations(text string) (logical []string, lineNos []int) {
	var cur strings.Builder
	curStart := 0
	hasCur := false

	flush := func() {
		if hasCur {
			logical = append(logical, cur.String())
			lineNos = append(lineNos, curStart)
			cur.Reset()
			hasCur = false
		}
	}

	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		trimmed := strings.TrimSpace(raw)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			flush()
			continue
		}

		if strings.HasPrefix(trimmed, "|") {
			if hasCur {
				cur.WriteString(" ")
				cur.WriteString(trimmed)
				continue
			}
			// a continuation with nothing to continue: keep it as its own
			// malformed logical line so the caller can report it.
			flush()
			logical = append(logical, trimmed)
			lineNos = append(lineNos, lineNo)
			continue
		}

		flush()
		cur.WriteString(trimmed)
		curStart = lineNo
		hasCur = true
	}
	flush()

	return logical, lineNos
}

// splitRule splits a logical rule line into its LHS and the text of its
// alternatives. ok is false if the line has no "->".
func splitRule(line string) (lhs string, rhsText string, ok bool) {
	idx := strings.Index(line, "->")
	if idx < 0 {
		return "", "", false
	}
	lhs = norm.NFC.String(strings.TrimSpace(line[:idx]))
	if lhs == "" {
		return "", "", false
	}
	return lhs, strings.TrimSpace(line[idx+2:]), true
}

// parseAlternative turns one "|"-delimited alternative into a Production,
// declaring any bare, non-nonterminal token on g as a terminal. "''" and
// "ε" (case-insensitive), alone, denote the empty alternative.
func parseAlternative(altText string, nonTerminals map[string]bool, g *Grammar) Production {
	fields := strings.Fields(altText)

	if len(fields) == 1 && isEpsilonToken(fields[0]) {
		return Production{}
	}

	var prod Production
	for _, tok := range fields {
		sym := unquote(tok)
		if sym == "" {
			continue
		}
		if !nonTerminals[sym] {
			g.AddTerm(sym)
		}
		prod = append(prod, sym)
	}
	return prod
}

func isEpsilonToken(tok string) bool {
	tok = norm.NFC.String(tok)
	return tok == "''" || strings.EqualFold(tok, Epsilon)
}

// unquote strips a single layer of balanced single quotes from tok, per
// spec.md §6.1: 'x' and bare x denote the same terminal x. The result is
// normalized to Unicode NFC so that a differently-composed source encoding
// of a symbol (most importantly "ε" itself, which has more than one valid
// Unicode representation) still compares equal to every other occurrence of
// the same symbol once it reaches the Grammar and the FIRST/FOLLOW tables.
func unquote(tok string) string {
	tok = norm.NFC.String(tok)
	if len(tok) >= 2 && strings.HasPrefix(tok, "'") && strings.HasSuffix(tok, "'") {
		inner := tok[1 : len(tok)-1]
		if inner == "" {
			return ""
		}
		return inner
	}
	return tok
}
