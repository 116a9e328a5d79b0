// Copyright © 2025 The cljsym authors

// Package resolve maps symbol references to cached var definitions.
//
// A reference is resolved relative to the namespace it textually occurs
// in: an explicit "prefix/name" reference goes through the namespace's
// alias table, an unqualified name is tried against the namespace's own
// interns, then its refers, and finally against clojure.core. Failure to
// resolve is a normal outcome, not an error; callers receive nil and
// decide what that means for them.
//
// Every function takes the cache snapshot explicitly and only reads it,
// so resolution is a pure function of its arguments and is safe to call
// from any goroutine holding a consistent snapshot.
package resolve

import (
	"strings"

	"github.com/luthersystems/cljsym/nscache"
)

// maxReferralHops bounds referral-chain recursion so that malformed or
// cyclic cache data degrades to unresolved instead of looping.
const maxReferralHops = 16

// SplitQualified splits a reference at its first '/' into an optional
// namespace prefix and a name. A reference without '/' has an empty
// prefix. Any further '/' characters belong to the name.
func SplitQualified(ref string) (prefix, name string) {
	if i := strings.Index(ref, "/"); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return "", ref
}

// Alias expands a namespace alias used inside ns to the full namespace
// name it stands for. An alias missing from the table (or a namespace
// missing from the snapshot) is returned unchanged: by convention the
// token is then already a full namespace name.
func Alias(snap *nscache.Snapshot, ns, alias string) string {
	if rec := snap.Lookup(ns); rec != nil {
		if full, ok := rec.Aliases[alias]; ok {
			return full
		}
	}
	return alias
}

// Var resolves ref, as written inside ns, to the metadata of the var it
// denotes. It returns nil when the reference does not resolve.
//
// A qualified reference is looked up only in the interns of the prefixed
// namespace (after alias expansion); the explicit prefix disables the
// referral and core fallbacks, so a qualified miss is definitive. An
// unqualified name tries ns's interns, then its refers (following chained
// referrals), then clojure.core.
func Var(snap *nscache.Snapshot, ns, ref string) *nscache.VarMeta {
	return resolveVar(snap, ns, ref, maxReferralHops)
}

func resolveVar(snap *nscache.Snapshot, ns, ref string, hops int) *nscache.VarMeta {
	if hops <= 0 {
		return nil
	}
	prefix, name := SplitQualified(ref)
	if prefix != "" {
		target := Alias(snap, ns, prefix)
		if rec := snap.Lookup(target); rec != nil {
			return rec.Interns[name]
		}
		return nil
	}
	rec := snap.Lookup(ns)
	if rec != nil {
		if meta, ok := rec.Interns[name]; ok {
			return meta
		}
		if referral, ok := rec.Refers[name]; ok {
			referralNS, _ := SplitQualified(referral)
			return resolveVar(snap, referralNS, referral, hops-1)
		}
	}
	if ns != nscache.CoreNamespace {
		return resolveVar(snap, nscache.CoreNamespace, name, hops)
	}
	return nil
}

// VarNamespace reports which namespace ref, as written inside ns,
// resolves into. It mirrors Var's traversal but only tracks provenance:
//
// An explicit prefix is trusted as-is; the expanded alias is returned
// without checking that the var exists there. A referral reports the
// referral's own namespace prefix rather than re-running full resolution
// on it, since referrals are stored already qualified. The core fallback
// reports clojure.core only when the name actually resolves there.
//
// The second return value is false when the reference does not resolve
// to any namespace.
func VarNamespace(snap *nscache.Snapshot, ns, ref string) (string, bool) {
	prefix, name := SplitQualified(ref)
	if prefix != "" {
		return Alias(snap, ns, prefix), true
	}
	if rec := snap.Lookup(ns); rec != nil {
		if _, ok := rec.Interns[name]; ok {
			return ns, true
		}
		if referral, ok := rec.Refers[name]; ok {
			referralNS, _ := SplitQualified(referral)
			return referralNS, true
		}
	}
	if ns != nscache.CoreNamespace {
		if Var(snap, nscache.CoreNamespace, name) != nil {
			return nscache.CoreNamespace, true
		}
	}
	return "", false
}
