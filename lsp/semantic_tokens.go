// Copyright © 2025 The cljsym authors

package lsp

import (
	"context"

	"github.com/luthersystems/cljsym/classify"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"go.opentelemetry.io/otel/attribute"
)

// Semantic token type indices — must match the order in semanticTokenLegend().
const (
	semTokenMacro = iota
	semTokenFunction
	semTokenVariable
)

// Semantic token modifier bit flags — must match the order in semanticTokenLegend().
const (
	semModInstrumented = 1 << iota
)

// semanticTokenLegend returns the legend that the client uses to decode tokens.
func semanticTokenLegend() protocol.SemanticTokensLegend {
	return protocol.SemanticTokensLegend{
		TokenTypes: []string{
			"macro",    // 0
			"function", // 1
			"variable", // 2
		},
		TokenModifiers: []string{
			"instrumented", // bit 0
		},
	}
}

// rawToken is an intermediate representation before delta encoding.
type rawToken struct {
	line      int // 0-based
	startChar int // 0-based
	length    int
	tokenType int
	modifiers int
}

// tracerName identifies spans recorded around document classification.
const tracerName = "cljsym-lsp"

// textDocumentSemanticTokensFull handles the textDocument/semanticTokens/full
// request. Candidates are scanned from the document text and classified
// against the snapshot handle read once at the start of the request.
// Unresolved candidates simply produce no token.
func (s *Server) textDocumentSemanticTokensFull(_ *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	snap := s.snapshot()
	content, candidates := doc.snapshotContent()

	_, span := s.tracer.Start(context.Background(), "semanticTokens.full")
	span.SetAttributes(
		attribute.String("document.uri", params.TextDocument.URI),
		attribute.Int("document.candidates", len(candidates)),
	)
	defer span.End()

	var tokens []rawToken
	for _, cand := range candidates {
		spec := classify.Classify(snap, classify.Token{
			Text: cand.text,
			NS:   cand.ns,
			Pos:  cand.pos,
			Src:  content,
		}, s.policy)
		if spec == nil {
			continue
		}
		tokType, ok := specTokenType(spec)
		if !ok {
			continue
		}
		mods := 0
		if spec.Has(classify.FaceInstrumented) {
			mods |= semModInstrumented
		}
		tokens = append(tokens, rawToken{
			line:      cand.line,
			startChar: cand.col,
			length:    len(cand.text),
			tokenType: tokType,
			modifiers: mods,
		})
	}
	span.SetAttributes(attribute.Int("document.tokens", len(tokens)))

	// Candidates are scanned in document order, so the list is already
	// sorted for delta encoding.
	return &protocol.SemanticTokens{Data: deltaEncode(tokens)}, nil
}

// specTokenType maps a classification onto the legend. Specs carrying
// only the instrumentation overlay map to the variable type so the
// overlay remains visible.
func specTokenType(spec *classify.Spec) (int, bool) {
	switch {
	case spec.Has(classify.FaceMacro):
		return semTokenMacro, true
	case spec.Has(classify.FaceFunction):
		return semTokenFunction, true
	case spec.Has(classify.FaceVar):
		return semTokenVariable, true
	case spec.Has(classify.FaceInstrumented):
		return semTokenVariable, true
	}
	return 0, false
}

// deltaEncode converts sorted raw tokens into the LSP delta-encoded format.
// Each token is 5 integers: [deltaLine, deltaStartChar, length, tokenType, tokenModifiers].
func deltaEncode(tokens []rawToken) []protocol.UInteger {
	data := make([]protocol.UInteger, 0, len(tokens)*5)
	prevLine := 0
	prevChar := 0
	for _, tok := range tokens {
		deltaLine := tok.line - prevLine
		deltaChar := tok.startChar
		if deltaLine == 0 {
			deltaChar = tok.startChar - prevChar
		}
		data = append(data,
			protocol.UInteger(deltaLine),
			protocol.UInteger(deltaChar),
			protocol.UInteger(tok.length),
			protocol.UInteger(tok.tokenType),
			protocol.UInteger(tok.modifiers),
		)
		prevLine = tok.line
		prevChar = tok.startChar
	}
	return data
}
