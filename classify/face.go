// Copyright © 2025 The cljsym authors

// Package classify assigns highlighting classifications to matched symbol
// tokens using the resolve package and a configurable verbosity policy.
package classify

// Face identifies one highlighting face attached to a token.
type Face int

const (
	FaceMacro        Face = iota // resolved to a macro in a callable position
	FaceFunction                 // resolved to a var with an arglist
	FaceVar                      // resolved to a plain var
	FaceInstrumented             // var carries the instrumented marker
)

func (f Face) String() string {
	switch f {
	case FaceMacro:
		return "macro"
	case FaceFunction:
		return "function"
	case FaceVar:
		return "var"
	case FaceInstrumented:
		return "instrumented"
	default:
		return "unknown"
	}
}

// Spec is the classification produced for one matched token: an ordered
// list of faces for the host to merge into its rendering of the span. A
// nil *Spec means the token gets no classification at all, which is
// distinct from a Spec carrying only the caller's static face.
type Spec struct {
	Faces []Face
}

// Has reports whether the spec carries the given face.
func (s *Spec) Has(face Face) bool {
	if s == nil {
		return false
	}
	for _, f := range s.Faces {
		if f == face {
			return true
		}
	}
	return false
}
