// Copyright © 2025 The cljsym authors

package repl

import (
	"bytes"
	"testing"

	"github.com/luthersystems/cljsym/nscache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShell() (*Shell, *bytes.Buffer) {
	snap := nscache.New()

	app := snap.Define("my.app")
	app.Aliases["str"] = "clojure.string"
	app.Interns["handler"] = &nscache.VarMeta{
		Name: "handler", NS: "my.app", Arglists: []string{"[req]"}, Doc: "Ring handler.",
	}
	app.Refers["join"] = "clojure.string/join"

	str := snap.Define("clojure.string")
	str.Interns["join"] = &nscache.VarMeta{
		Name: "join", NS: "clojure.string", Arglists: []string{"[coll]"},
	}

	core := snap.Define(nscache.CoreNamespace)
	core.Interns["when"] = &nscache.VarMeta{
		Name: "when", NS: nscache.CoreNamespace, Macro: true, Arglists: []string{"[test & body]"},
	}

	sh := NewShell(snap)
	var buf bytes.Buffer
	sh.out = &buf
	return sh, &buf
}

func exec(t *testing.T, sh *Shell, buf *bytes.Buffer, line string) string {
	t.Helper()
	buf.Reset()
	require.True(t, sh.Exec(line))
	return buf.String()
}

func TestShell_Resolve(t *testing.T) {
	sh, buf := testShell()
	exec(t, sh, buf, "in-ns my.app")

	out := exec(t, sh, buf, "resolve handler")
	assert.Contains(t, out, "my.app/handler")
	assert.Contains(t, out, "(function)")
	assert.Contains(t, out, "[req]")
	assert.Contains(t, out, "Ring handler.")
}

func TestShell_BareSymbolResolves(t *testing.T) {
	sh, buf := testShell()
	exec(t, sh, buf, "in-ns my.app")

	out := exec(t, sh, buf, "handler")
	assert.Contains(t, out, "my.app/handler")
}

func TestShell_ExplainsBranches(t *testing.T) {
	sh, buf := testShell()
	exec(t, sh, buf, "in-ns my.app")

	out := exec(t, sh, buf, "resolve str/join")
	assert.Contains(t, out, "via alias str -> clojure.string")

	out = exec(t, sh, buf, "resolve join")
	assert.Contains(t, out, "via refer clojure.string/join")

	out = exec(t, sh, buf, "resolve when")
	assert.Contains(t, out, "(macro)")
	assert.Contains(t, out, "via clojure.core fallback")
}

func TestShell_Unresolved(t *testing.T) {
	sh, buf := testShell()
	out := exec(t, sh, buf, "resolve no-such-symbol")
	assert.Contains(t, out, "unresolved")
}

func TestShell_NsOf(t *testing.T) {
	sh, buf := testShell()
	exec(t, sh, buf, "in-ns my.app")

	out := exec(t, sh, buf, "ns-of join")
	assert.Contains(t, out, "clojure.string")

	out = exec(t, sh, buf, "ns-of nothing-here")
	assert.Contains(t, out, "unresolved")
}

func TestShell_Aliases(t *testing.T) {
	sh, buf := testShell()
	exec(t, sh, buf, "in-ns my.app")
	out := exec(t, sh, buf, "aliases")
	assert.Contains(t, out, "str -> clojure.string")

	exec(t, sh, buf, "in-ns empty.ns")
	out = exec(t, sh, buf, "aliases")
	assert.Contains(t, out, "no aliases")
}

func TestShell_Quit(t *testing.T) {
	sh, _ := testShell()
	assert.False(t, sh.Exec("quit"))
	assert.False(t, sh.Exec("exit"))
}
