// Copyright © 2025 The cljsym authors

package lsp

import "strings"

// candidate is one symbol span found in a document, together with the
// namespace it occurs in.
type candidate struct {
	text string
	pos  int // byte offset into the document
	line int // 0-based
	col  int // 0-based byte column
	ns   string
}

// defaultNamespace is assumed for text before the first ns form, matching
// what a fresh REPL session would use.
const defaultNamespace = "user"

// scanCandidates finds the symbol spans a classifier should look at. It
// skips comments, strings, character literals, keywords, and numbers, and
// tracks the current namespace through (ns foo) and (in-ns 'foo) forms so
// every candidate carries the namespace it textually occurs in. Reader
// prefixes (quote and var-quote) are trimmed off so the span starts at
// the symbol itself.
//
// This is a flat token scan, not a reader: it does not need to understand
// the whole language to find symbol spans and the namespace forms that
// affect them.
func scanCandidates(src string) []candidate {
	var out []candidate
	ns := defaultNamespace
	line, lineStart := 0, 0

	// pendingNS is set right after an ns or in-ns symbol is read at the
	// head of a form; the next symbol then names the namespace.
	pendingNS := false
	prevOpen := false

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '\n':
			line++
			i++
			lineStart = i
		case c == ';':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '"':
			i = skipString(src, i)
			prevOpen = false
		case c == '\\':
			// Character literal: skip the backslash and the named char.
			i++
			if i < len(src) {
				i++
			}
			for i < len(src) && isSymbolChar(src[i]) {
				i++
			}
			prevOpen = false
		case isSymbolChar(c):
			start := i
			for i < len(src) && isSymbolChar(src[i]) {
				i++
			}
			raw := src[start:i]
			text := strings.TrimLeft(raw, "#'")
			tokStart := start + len(raw) - len(text)
			switch {
			case text == "" || skipToken(text):
			case pendingNS:
				ns = text
				pendingNS = false
			case prevOpen && (text == "ns" || text == "in-ns"):
				pendingNS = true
			default:
				out = append(out, candidate{
					text: text,
					pos:  tokStart,
					line: line,
					col:  tokStart - lineStart,
					ns:   ns,
				})
			}
			prevOpen = false
		default:
			prevOpen = c == '('
			i++
		}
	}
	return out
}

// skipString returns the offset just past the string starting at i.
func skipString(src string, i int) int {
	i++ // opening quote
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
			continue
		case '"':
			return i + 1
		}
		i++
	}
	return i
}

// skipToken reports whether a scanned token is not a classification
// candidate: keywords and numeric literals.
func skipToken(text string) bool {
	if text[0] == ':' {
		return true
	}
	c := text[0]
	if c >= '0' && c <= '9' {
		return true
	}
	if (c == '+' || c == '-') && len(text) > 1 && text[1] >= '0' && text[1] <= '9' {
		return true
	}
	return false
}

// isSymbolChar reports whether c can appear in a symbol, keyword, or
// numeric token. Delimiters, whitespace, quotes, and comment starters
// cannot.
func isSymbolChar(c byte) bool {
	switch c {
	case '(', ')', '[', ']', '{', '}', '"', ';', ',', '\\', '`', '~', '@', '^':
		return false
	}
	return c > ' '
}
