// Copyright © 2025 The cljsym authors

package classify

import (
	"fmt"
	"sort"
	"strings"
)

// Policy controls which classifications are emitted. It is either maximal
// (everything) or an explicit set drawn from {macro, function, var, core}.
// The core member does not name a classification of its own: when present,
// any symbol resolving into clojure.core is classified even if its kind is
// otherwise excluded.
type Policy struct {
	maximal  bool
	macro    bool
	function bool
	variable bool
	core     bool
}

// PolicyMaximal classifies everything.
var PolicyMaximal = Policy{maximal: true}

// ParsePolicy builds a Policy from configuration strings: the single word
// "maximal", or any subset of "macro", "function", "var", "core". An empty
// list yields a policy that classifies nothing.
func ParsePolicy(words []string) (Policy, error) {
	var p Policy
	for _, w := range words {
		switch strings.TrimSpace(w) {
		case "maximal":
			if len(words) != 1 {
				return Policy{}, fmt.Errorf(`policy "maximal" cannot be combined with other members`)
			}
			return PolicyMaximal, nil
		case "macro":
			p.macro = true
		case "function":
			p.function = true
		case "var":
			p.variable = true
		case "core":
			p.core = true
		case "":
		default:
			return Policy{}, fmt.Errorf("unknown policy member: %q", w)
		}
	}
	return p, nil
}

// Maximal reports whether the policy classifies everything.
func (p Policy) Maximal() bool { return p.maximal }

// Macro reports whether macro classifications are enabled.
func (p Policy) Macro() bool { return p.maximal || p.macro }

// Function reports whether function classifications are enabled.
func (p Policy) Function() bool { return p.maximal || p.function }

// Var reports whether plain-var classifications are enabled.
func (p Policy) Var() bool { return p.maximal || p.variable }

// Core reports whether clojure.core hits override the per-kind members.
func (p Policy) Core() bool { return p.maximal || p.core }

// String renders the policy in the form ParsePolicy accepts.
func (p Policy) String() string {
	if p.maximal {
		return "maximal"
	}
	var words []string
	if p.macro {
		words = append(words, "macro")
	}
	if p.function {
		words = append(words, "function")
	}
	if p.variable {
		words = append(words, "var")
	}
	if p.core {
		words = append(words, "core")
	}
	sort.Strings(words)
	return strings.Join(words, ",")
}
