// Copyright © 2025 The cljsym authors

package classify

import (
	"github.com/luthersystems/cljsym/nscache"
	"github.com/luthersystems/cljsym/resolve"
)

// Token is one candidate symbol span handed over by the host's matcher.
type Token struct {
	// Text is the matched symbol text, possibly namespace-qualified.
	Text string

	// NS is the namespace the token textually occurs in.
	NS string

	// Pos is the byte offset of the token's first character in Src.
	Pos int

	// Src is the surrounding buffer text, consulted only to decide
	// whether Pos is a position where a macro call can appear.
	Src string

	// Static is an optional face the host already assigns to this span
	// independent of resolution; it is carried into the result untouched.
	Static *Face
}

// Classify resolves tok against snap and combines the outcome with the
// verbosity policy into the token's final face list. It returns nil when
// nothing contributes a face: the token is unresolved (or its
// classification is suppressed by policy), carries no instrumentation,
// and has no static face.
//
// The decision is ordered macro before function before plain var, so a
// var that is both a macro and callable classifies as a macro when it
// sits in a valid macro position. A symbol resolving into clojure.core is
// classified even when its kind is excluded from the policy, provided the
// policy's core member is enabled.
func Classify(snap *nscache.Snapshot, tok Token, policy Policy) *Spec {
	meta := resolve.Var(snap, tok.NS, tok.Text)

	coreHit := false
	if policy.Core() {
		if ns, ok := resolve.VarNamespace(snap, tok.NS, tok.Text); ok {
			coreHit = ns == nscache.CoreNamespace
		}
	}

	var faces []Face
	if tok.Static != nil {
		faces = append(faces, *tok.Static)
	}
	if meta.IsInstrumented() {
		faces = append(faces, FaceInstrumented)
	}

	switch {
	case meta.IsMacro() && (coreHit || policy.Macro()) && ValidMacroPosition(tok.Src, tok.Pos):
		faces = append(faces, FaceMacro)
	case meta.HasArglist() && (coreHit || policy.Function()):
		faces = append(faces, FaceFunction)
	case meta != nil && (coreHit || policy.Var()):
		faces = append(faces, FaceVar)
	}

	if len(faces) == 0 {
		return nil
	}
	return &Spec{Faces: faces}
}
