// Copyright © 2025 The cljsym authors

// Package nscache holds a read-only snapshot of namespace metadata as
// reported by a running Clojure process.
//
// A Snapshot maps namespace names to per-namespace records listing the
// namespace's aliases, interned vars, and referred symbols. Snapshots are
// produced wholesale by whatever component talks to the runtime (an nREPL
// state-tracking middleware, a file importer) and replaced atomically on
// namespace reload. Consumers treat a snapshot as immutable; the resolve
// and classify packages only ever read it.
package nscache

// CoreNamespace is the implicit fallback namespace consulted when a symbol
// resolves nowhere else.
const CoreNamespace = "clojure.core"

// Namespace is the cached record for a single named namespace.
type Namespace struct {
	// Name is the full namespace name, e.g. "clojure.string".
	Name string

	// Aliases maps short local aliases to full namespace names, e.g.
	// "str" -> "clojure.string". The mapping is not required to be
	// injective and may be empty.
	Aliases map[string]string

	// Interns maps unqualified symbol names to metadata for every var
	// defined directly in this namespace.
	Interns map[string]*VarMeta

	// Refers maps unqualified symbol names to fully qualified "ns/name"
	// references for symbols imported from other namespaces and usable
	// here without a prefix.
	Refers map[string]string
}

// NewNamespace initializes and returns an empty namespace record.
func NewNamespace(name string) *Namespace {
	return &Namespace{
		Name:    name,
		Aliases: make(map[string]string),
		Interns: make(map[string]*VarMeta),
		Refers:  make(map[string]string),
	}
}

// Snapshot is one consistent view of all known namespaces. A nil *Snapshot
// is valid and behaves as an empty cache (every lookup misses), which is
// how the absence of a runtime connection is represented.
type Snapshot struct {
	namespaces map[string]*Namespace
}

// New initializes and returns an empty snapshot.
func New() *Snapshot {
	return &Snapshot{namespaces: make(map[string]*Namespace)}
}

// Define returns the record for name, creating an empty one if the
// snapshot does not know the namespace yet.
func (s *Snapshot) Define(name string) *Namespace {
	ns, ok := s.namespaces[name]
	if ok {
		return ns
	}
	ns = NewNamespace(name)
	s.namespaces[name] = ns
	return ns
}

// Lookup returns the record for name, or nil when the namespace is unknown
// or the snapshot itself is nil.
func (s *Snapshot) Lookup(name string) *Namespace {
	if s == nil {
		return nil
	}
	return s.namespaces[name]
}

// Len returns the number of namespaces in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.namespaces)
}

// Names returns the names of all namespaces in the snapshot, in map order.
func (s *Snapshot) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.namespaces))
	for name := range s.namespaces {
		names = append(names, name)
	}
	return names
}
