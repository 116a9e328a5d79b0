// Copyright © 2025 The cljsym authors

package nscache

// VarMeta describes one interned var. The runtime attaches arbitrary
// metadata to vars; the fields this package cares about are broken out
// explicitly and everything else is preserved in Attrs.
type VarMeta struct {
	// Name is the var's unqualified name.
	Name string

	// NS is the name of the namespace the var is interned in.
	NS string

	// Macro is set when the var holds a macro.
	Macro bool

	// Arglists holds the printed argument vectors for callable vars. A
	// non-empty list marks the var as invocable.
	Arglists []string

	// Instrumented is set when the var has been instrumented (e.g. by a
	// spec or debugging tool) and should be highlighted as such.
	Instrumented bool

	// Doc is the var's docstring, when the runtime reported one.
	Doc string

	// Attrs preserves metadata keys this package does not interpret.
	Attrs map[string]string
}

// IsMacro reports whether the var holds a macro. Safe on nil metadata.
func (m *VarMeta) IsMacro() bool {
	return m != nil && m.Macro
}

// HasArglist reports whether the var is invocable as a function.
// Safe on nil metadata.
func (m *VarMeta) HasArglist() bool {
	return m != nil && len(m.Arglists) > 0
}

// IsInstrumented reports whether the var carries the instrumented marker.
// Safe on nil metadata.
func (m *VarMeta) IsInstrumented() bool {
	return m != nil && m.Instrumented
}

// QualifiedName returns the var's "ns/name" form, or just the name when
// the namespace is unknown.
func (m *VarMeta) QualifiedName() string {
	if m == nil {
		return ""
	}
	if m.NS == "" {
		return m.Name
	}
	return m.NS + "/" + m.Name
}
