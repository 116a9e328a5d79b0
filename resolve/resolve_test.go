// Copyright © 2025 The cljsym authors

package resolve

import (
	"testing"

	"github.com/luthersystems/cljsym/nscache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSnapshot builds a small cache covering aliasing, referrals, and core
// fallback. Layout:
//
//	my.app      aliases  str -> clojure.string
//	            interns  handler (fn), with-conn (macro), local-var
//	            refers   join -> clojure.string/join
//	clojure.string  interns  join (fn), split (fn)
//	clojure.core    interns  map (fn), defn (macro)
func testSnapshot() *nscache.Snapshot {
	snap := nscache.New()

	app := snap.Define("my.app")
	app.Aliases["str"] = "clojure.string"
	app.Interns["handler"] = &nscache.VarMeta{
		Name: "handler", NS: "my.app", Arglists: []string{"[req]"},
	}
	app.Interns["with-conn"] = &nscache.VarMeta{
		Name: "with-conn", NS: "my.app", Macro: true, Arglists: []string{"[conn & body]"},
	}
	app.Interns["local-var"] = &nscache.VarMeta{Name: "local-var", NS: "my.app"}
	app.Refers["join"] = "clojure.string/join"

	str := snap.Define("clojure.string")
	str.Interns["join"] = &nscache.VarMeta{
		Name: "join", NS: "clojure.string", Arglists: []string{"[coll]", "[sep coll]"},
	}
	str.Interns["split"] = &nscache.VarMeta{
		Name: "split", NS: "clojure.string", Arglists: []string{"[s re]"},
	}

	core := snap.Define(nscache.CoreNamespace)
	core.Interns["map"] = &nscache.VarMeta{
		Name: "map", NS: nscache.CoreNamespace, Arglists: []string{"[f coll]"},
	}
	core.Interns["defn"] = &nscache.VarMeta{
		Name: "defn", NS: nscache.CoreNamespace, Macro: true, Arglists: []string{"[name & fdecl]"},
	}

	return snap
}

func TestSplitQualified(t *testing.T) {
	tests := []struct {
		name       string
		ref        string
		wantPrefix string
		wantName   string
	}{
		{"unqualified", "join", "", "join"},
		{"qualified", "str/join", "str", "join"},
		{"dotted prefix", "clojure.string/join", "clojure.string", "join"},
		{"multiple slashes split once", "a/b/c", "a", "b/c"},
		{"division operator", "/", "", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, name := SplitQualified(tt.ref)
			assert.Equal(t, tt.wantPrefix, prefix)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestAlias(t *testing.T) {
	snap := testSnapshot()

	// A known alias expands to its full namespace name.
	assert.Equal(t, "clojure.string", Alias(snap, "my.app", "str"))

	// An unknown alias is returned unchanged.
	assert.Equal(t, "clojure.string", Alias(snap, "my.app", "clojure.string"))
	assert.Equal(t, "no.such.alias", Alias(snap, "my.app", "no.such.alias"))

	// An unknown namespace behaves like an empty alias table.
	assert.Equal(t, "str", Alias(snap, "unknown.ns", "str"))

	// A nil snapshot behaves the same.
	assert.Equal(t, "str", Alias(nil, "my.app", "str"))
}

func TestVar_Qualified(t *testing.T) {
	snap := testSnapshot()

	// Alias-qualified reference resolves through the alias table.
	meta := Var(snap, "my.app", "str/join")
	require.NotNil(t, meta)
	assert.Equal(t, "clojure.string/join", meta.QualifiedName())

	// Fully qualified reference resolves without an alias.
	meta = Var(snap, "my.app", "clojure.string/split")
	require.NotNil(t, meta)
	assert.Equal(t, "split", meta.Name)
}

func TestVar_PrefixDisablesFallback(t *testing.T) {
	snap := testSnapshot()

	// "map" exists in clojure.core, but a qualified miss never falls
	// through to referrals or core.
	assert.Nil(t, Var(snap, "my.app", "str/map"))
	assert.Nil(t, Var(snap, "my.app", "clojure.string/map"))
	assert.Nil(t, Var(snap, "my.app", "no.such.ns/map"))
}

func TestVar_InternsBeforeRefers(t *testing.T) {
	snap := testSnapshot()
	app := snap.Lookup("my.app")
	require.NotNil(t, app)

	// Shadow the referred join with a local intern of the same name.
	local := &nscache.VarMeta{Name: "join", NS: "my.app"}
	app.Interns["join"] = local

	assert.Same(t, local, Var(snap, "my.app", "join"))
}

func TestVar_ReferralChain(t *testing.T) {
	snap := testSnapshot()

	meta := Var(snap, "my.app", "join")
	require.NotNil(t, meta)
	assert.Equal(t, "clojure.string", meta.NS)
	assert.Equal(t, "join", meta.Name)
}

func TestVar_CoreFallback(t *testing.T) {
	snap := testSnapshot()

	meta := Var(snap, "my.app", "map")
	require.NotNil(t, meta)
	assert.Equal(t, nscache.CoreNamespace, meta.NS)

	// The fallback also applies from namespaces absent from the snapshot.
	meta = Var(snap, "unknown.ns", "map")
	require.NotNil(t, meta)
	assert.Equal(t, nscache.CoreNamespace, meta.NS)
}

func TestVar_CoreSelfTerminates(t *testing.T) {
	snap := testSnapshot()

	// Resolving an unknown name directly in clojure.core must terminate
	// without re-entering the core fallback.
	assert.Nil(t, Var(snap, nscache.CoreNamespace, "undefined-name"))
}

func TestVar_CyclicReferrals(t *testing.T) {
	snap := nscache.New()
	a := snap.Define("cycle.a")
	b := snap.Define("cycle.b")
	a.Refers["x"] = "cycle.b/x"
	b.Refers["x"] = "cycle.a/x"

	// Neither namespace interns x; the chain degrades to unresolved
	// instead of looping.
	assert.Nil(t, Var(snap, "cycle.a", "x"))
}

func TestVar_NilSnapshot(t *testing.T) {
	assert.Nil(t, Var(nil, "my.app", "map"))
	assert.Nil(t, Var(nil, "my.app", "str/join"))

	_, ok := VarNamespace(nil, "my.app", "map")
	assert.False(t, ok)
}

func TestVarNamespace(t *testing.T) {
	snap := testSnapshot()

	tests := []struct {
		name   string
		ns     string
		ref    string
		want   string
		wantOK bool
	}{
		{"interned locally", "my.app", "handler", "my.app", true},
		{"referred", "my.app", "join", "clojure.string", true},
		{"core fallback", "my.app", "map", nscache.CoreNamespace, true},
		{"unresolved", "my.app", "no-such-var", "", false},
		{"unresolved in core", nscache.CoreNamespace, "no-such-var", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := VarNamespace(snap, tt.ns, tt.ref)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVarNamespace_PrefixTrustedAsIs(t *testing.T) {
	snap := testSnapshot()

	// An explicit prefix reports the aliased namespace without checking
	// that the var actually exists there.
	got, ok := VarNamespace(snap, "my.app", "str/no-such-var")
	assert.True(t, ok)
	assert.Equal(t, "clojure.string", got)

	got, ok = VarNamespace(snap, "my.app", "no.such.ns/whatever")
	assert.True(t, ok)
	assert.Equal(t, "no.such.ns", got)
}

func TestVarNamespace_ReferralPrefixNotReResolved(t *testing.T) {
	// A referral whose target namespace is absent from the snapshot still
	// reports the referral's literal prefix. Provenance tracking reads the
	// qualified referral text directly instead of re-running resolution,
	// so it can disagree with Var on malformed data; that behavior is
	// intentional and pinned here.
	snap := nscache.New()
	app := snap.Define("my.app")
	app.Refers["gone"] = "missing.ns/gone"

	got, ok := VarNamespace(snap, "my.app", "gone")
	assert.True(t, ok)
	assert.Equal(t, "missing.ns", got)
	assert.Nil(t, Var(snap, "my.app", "gone"))
}
