// Copyright © 2025 The cljsym authors

package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateTexts(cands []candidate) []string {
	texts := make([]string, len(cands))
	for i, c := range cands {
		texts[i] = c.text
	}
	return texts
}

func TestScanCandidates_Basic(t *testing.T) {
	cands := scanCandidates("(handler req)")
	assert.Equal(t, []string{"handler", "req"}, candidateTexts(cands))
	require.Len(t, cands, 2)
	assert.Equal(t, 1, cands[0].pos)
	assert.Equal(t, 0, cands[0].line)
	assert.Equal(t, 1, cands[0].col)
	assert.Equal(t, defaultNamespace, cands[0].ns)
}

func TestScanCandidates_SkipsNonSymbols(t *testing.T) {
	src := `(foo :kw "a string (not code)" 42 -7 \newline) ; bar comment`
	cands := scanCandidates(src)
	assert.Equal(t, []string{"foo"}, candidateTexts(cands))
}

func TestScanCandidates_TracksNamespace(t *testing.T) {
	src := "(ns my.app)\n(handler req)\n(in-ns 'other.ns)\n(go)"
	cands := scanCandidates(src)
	require.Len(t, cands, 3)
	assert.Equal(t, "handler", cands[0].text)
	assert.Equal(t, "my.app", cands[0].ns)
	assert.Equal(t, "req", cands[1].text)
	assert.Equal(t, "my.app", cands[1].ns)
	assert.Equal(t, "go", cands[2].text)
	assert.Equal(t, "other.ns", cands[2].ns)
}

func TestScanCandidates_VarQuote(t *testing.T) {
	src := "#'handler"
	cands := scanCandidates(src)
	require.Len(t, cands, 1)
	assert.Equal(t, "handler", cands[0].text)
	// The span starts at the symbol, just past the #' prefix.
	assert.Equal(t, 2, cands[0].pos)
}

func TestScanCandidates_QualifiedSymbols(t *testing.T) {
	cands := scanCandidates("(str/join xs)")
	require.Len(t, cands, 2)
	assert.Equal(t, "str/join", cands[0].text)
}

func TestScanCandidates_LinesAndColumns(t *testing.T) {
	src := "(a)\n  (b)"
	cands := scanCandidates(src)
	require.Len(t, cands, 2)
	assert.Equal(t, 0, cands[0].line)
	assert.Equal(t, 1, cands[0].col)
	assert.Equal(t, 1, cands[1].line)
	assert.Equal(t, 3, cands[1].col)
}

func TestScanCandidates_UnterminatedString(t *testing.T) {
	// A string missing its closing quote swallows the rest of the buffer
	// without faulting.
	cands := scanCandidates(`(foo "unterminated`)
	assert.Equal(t, []string{"foo"}, candidateTexts(cands))
}
