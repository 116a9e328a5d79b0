// Copyright © 2025 The cljsym authors

// Package repl provides an interactive shell for querying a namespace
// cache snapshot: resolve symbols, inspect aliases, and see which
// resolution branch produced an answer. It is mainly a debugging aid for
// cache contents.
package repl

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ergochat/readline"
	"github.com/luthersystems/cljsym/nscache"
	"github.com/luthersystems/cljsym/resolve"
)

type config struct {
	stdin  io.ReadCloser
	stderr io.WriteCloser
}

func newConfig(opts ...Option) *config {
	config := &config{}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// Option configures the shell.
type Option func(*config)

// WithStdin allows overriding the input to the shell.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output of the shell.
func WithStderr(stderr io.WriteCloser) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// Shell holds the state of one interactive session.
type Shell struct {
	snap *nscache.Snapshot
	ns   string
	out  io.Writer
}

// NewShell creates a session over snap starting in the user namespace.
func NewShell(snap *nscache.Snapshot) *Shell {
	return &Shell{snap: snap, ns: "user", out: os.Stderr}
}

// Run runs the shell until EOF.
func Run(snap *nscache.Snapshot, prompt string, opts ...Option) {
	sh := NewShell(snap)
	cfg := newConfig(opts...)
	if cfg.stderr != nil {
		sh.out = cfg.stderr
	}

	rlCfg := &readline.Config{
		Prompt:            prompt,
		HistoryFile:       historyPath(),
		HistorySearchFold: true,
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	if cfg.stderr != nil {
		rlCfg.Stdout = cfg.stderr
		rlCfg.Stderr = cfg.stderr
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		panic(err)
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	for {
		raw, err := rl.ReadSlice()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			break
		}
		line := string(bytes.TrimSpace(raw))
		if line == "" {
			continue
		}
		if !sh.Exec(line) {
			break
		}
		rl.SetPrompt(sh.ns + "> ")
	}
}

// Exec runs one shell command line. It returns false when the session
// should end.
func (sh *Shell) Exec(line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "quit", "exit":
		return false
	case "help":
		sh.printHelp()
	case "in-ns":
		if len(args) != 1 {
			sh.printf("usage: in-ns NAMESPACE")
			break
		}
		sh.ns = strings.TrimPrefix(args[0], "'")
		sh.printf("now in %s", sh.ns)
	case "ns-list":
		names := sh.snap.Names()
		sort.Strings(names)
		for _, name := range names {
			sh.printf("%s", name)
		}
	case "aliases":
		sh.printAliases()
	case "resolve":
		if len(args) != 1 {
			sh.printf("usage: resolve SYMBOL")
			break
		}
		sh.explain(args[0])
	case "ns-of":
		if len(args) != 1 {
			sh.printf("usage: ns-of SYMBOL")
			break
		}
		if ns, ok := resolve.VarNamespace(sh.snap, sh.ns, args[0]); ok {
			sh.printf("%s", ns)
		} else {
			sh.printf("unresolved")
		}
	case "load":
		if len(args) != 1 {
			sh.printf("usage: load FILE")
			break
		}
		sh.load(args[0])
	default:
		// Bare symbols resolve directly, saving a few keystrokes.
		sh.explain(cmd)
	}
	return true
}

// explain resolves ref and reports which branch matched.
func (sh *Shell) explain(ref string) {
	meta := resolve.Var(sh.snap, sh.ns, ref)
	if meta == nil {
		sh.printf("unresolved")
		return
	}
	kind := "var"
	switch {
	case meta.IsMacro():
		kind = "macro"
	case meta.HasArglist():
		kind = "function"
	}
	sh.printf("%s  (%s)", meta.QualifiedName(), kind)
	for _, arglist := range meta.Arglists {
		sh.printf("  %s", arglist)
	}
	if meta.Doc != "" {
		sh.printf("  %s", meta.Doc)
	}
	if meta.IsInstrumented() {
		sh.printf("  instrumented")
	}

	prefix, _ := resolve.SplitQualified(ref)
	switch {
	case prefix != "":
		full := resolve.Alias(sh.snap, sh.ns, prefix)
		if full != prefix {
			sh.printf("  via alias %s -> %s", prefix, full)
		}
	case meta.NS != sh.ns:
		if rec := sh.snap.Lookup(sh.ns); rec != nil {
			if referral, ok := rec.Refers[ref]; ok {
				sh.printf("  via refer %s", referral)
				return
			}
		}
		if meta.NS == nscache.CoreNamespace {
			sh.printf("  via %s fallback", nscache.CoreNamespace)
		}
	}
}

func (sh *Shell) printAliases() {
	rec := sh.snap.Lookup(sh.ns)
	if rec == nil || len(rec.Aliases) == 0 {
		sh.printf("no aliases in %s", sh.ns)
		return
	}
	shorts := make([]string, 0, len(rec.Aliases))
	for short := range rec.Aliases {
		shorts = append(shorts, short)
	}
	sort.Strings(shorts)
	for _, short := range shorts {
		sh.printf("%s -> %s", short, rec.Aliases[short])
	}
}

func (sh *Shell) load(path string) {
	f, err := os.Open(path)
	if err != nil {
		sh.printf("load: %v", err)
		return
	}
	defer f.Close() //nolint:errcheck // read-only file
	snap, err := nscache.ReadSnapshot(f)
	if err != nil {
		sh.printf("load: %v", err)
		return
	}
	sh.snap = snap
	sh.printf("loaded %d namespaces", snap.Len())
}

func (sh *Shell) printHelp() {
	sh.printf("commands:")
	sh.printf("  SYMBOL           resolve SYMBOL in the current namespace")
	sh.printf("  resolve SYMBOL   same, explicitly")
	sh.printf("  ns-of SYMBOL     show which namespace SYMBOL resolves into")
	sh.printf("  in-ns NAMESPACE  switch the current namespace")
	sh.printf("  aliases          list aliases of the current namespace")
	sh.printf("  ns-list          list namespaces in the snapshot")
	sh.printf("  load FILE        load an EDN snapshot file")
	sh.printf("  quit             exit")
}

func (sh *Shell) printf(format string, v ...interface{}) {
	fmt.Fprintf(sh.out, format+"\n", v...) //nolint:errcheck // best-effort shell output
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cljsym_history")
}
