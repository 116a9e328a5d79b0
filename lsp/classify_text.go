// Copyright © 2025 The cljsym authors

package lsp

import (
	"github.com/luthersystems/cljsym/classify"
	"github.com/luthersystems/cljsym/nscache"
)

// ClassifiedToken is one scanned candidate together with its
// classification. Spec is nil for candidates that did not classify under
// the policy.
type ClassifiedToken struct {
	Text string
	Line int // 0-based
	Col  int // 0-based byte column
	NS   string
	Spec *classify.Spec
}

// ClassifyText scans src for candidate symbols and classifies each one
// against snap under the given policy. Unlike the semantic-tokens handler
// it does not cache the scan, so it suits one-shot batch use.
func ClassifyText(snap *nscache.Snapshot, src string, policy classify.Policy) []ClassifiedToken {
	cands := scanCandidates(src)
	out := make([]ClassifiedToken, 0, len(cands))
	for _, cand := range cands {
		spec := classify.Classify(snap, classify.Token{
			Text: cand.text,
			NS:   cand.ns,
			Pos:  cand.pos,
			Src:  src,
		}, policy)
		out = append(out, ClassifiedToken{
			Text: cand.text,
			Line: cand.line,
			Col:  cand.col,
			NS:   cand.ns,
			Spec: spec,
		})
	}
	return out
}
