// Copyright © 2025 The cljsym authors

// Package lsp implements a small Language Server Protocol server that
// exposes namespace-aware token classification as semantic tokens.
// Editors connect it to get macro/function/var highlighting driven by a
// namespace cache snapshot, typically one exported from a live REPL
// session.
package lsp

import (
	"os"
	"sync"

	"github.com/luthersystems/cljsym/classify"
	"github.com/luthersystems/cljsym/nscache"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const serverName = "cljsym-lsp"

// Server is the cljsym language server.
type Server struct {
	handler protocol.Handler
	glspSrv *glspserver.Server
	docs    *DocumentStore

	// The active cache snapshot, replaced wholesale via SetSnapshot.
	// Handlers read the handle once per request so each request sees one
	// consistent snapshot.
	snapMu sync.RWMutex
	snap   *nscache.Snapshot

	policy classify.Policy

	// tracer records a span per full-document classification pass.
	tracer trace.Tracer

	// exitFn is called on the LSP exit notification. Defaults to os.Exit.
	// Overridable for testing.
	exitFn func(int)
}

// Option configures the LSP server.
type Option func(*Server)

// WithSnapshot sets the initial namespace cache snapshot.
func WithSnapshot(snap *nscache.Snapshot) Option {
	return func(s *Server) { s.snap = snap }
}

// WithPolicy sets the verbosity policy used for classification.
func WithPolicy(policy classify.Policy) Option {
	return func(s *Server) { s.policy = policy }
}

// New creates a new cljsym LSP server. Without WithSnapshot the server
// starts with no cache and classifies nothing until SetSnapshot is called.
func New(opts ...Option) *Server {
	s := &Server{
		docs:   NewDocumentStore(),
		policy: classify.PolicyMaximal,
		tracer: otel.GetTracerProvider().Tracer(tracerName),
		exitFn: os.Exit,
	}
	for _, o := range opts {
		o(s)
	}

	s.handler = protocol.Handler{
		Initialize: s.initialize,
		Shutdown:   s.shutdown,
		Exit:       s.exit,
		SetTrace:   s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentSemanticTokensFull: s.textDocumentSemanticTokensFull,
	}

	s.glspSrv = glspserver.NewServer(&s.handler, serverName, false)
	return s
}

// SetSnapshot atomically replaces the namespace cache snapshot. In-flight
// requests keep the snapshot they already read; later requests see the
// new one.
func (s *Server) SetSnapshot(snap *nscache.Snapshot) {
	s.snapMu.Lock()
	s.snap = snap
	s.snapMu.Unlock()
}

// snapshot returns the current snapshot handle.
func (s *Server) snapshot() *nscache.Snapshot {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return s.snap
}

// RunStdio starts the server using stdio transport.
func (s *Server) RunStdio() error {
	return s.glspSrv.RunStdio()
}

// RunTCP starts the server listening on the given address.
func (s *Server) RunTCP(addr string) error {
	return s.glspSrv.RunTCP(addr)
}

// initialize handles the LSP initialize request.
func (s *Server) initialize(_ *glsp.Context, _ *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
	}
	capabilities.SemanticTokensProvider = &protocol.SemanticTokensOptions{
		Legend: semanticTokenLegend(),
		Full:   true,
	}

	version := "0.1.0"
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &version,
		},
	}, nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	return nil
}

// exit handles the LSP exit notification by terminating the process.
func (s *Server) exit(_ *glsp.Context) error {
	s.exitFn(0)
	return nil
}

// setTrace handles the $/setTrace notification (required by some clients).
func (s *Server) setTrace(_ *glsp.Context, _ *protocol.SetTraceParams) error {
	return nil
}

func (s *Server) textDocumentDidOpen(_ *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.docs.Open(params.TextDocument.URI, int32(params.TextDocument.Version), params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(_ *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	// With full sync, the last content change is the complete document.
	var content string
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			content = c.Text
		case protocol.TextDocumentContentChangeEvent:
			content = c.Text
		}
	}
	s.docs.Change(params.TextDocument.URI, int32(params.TextDocument.Version), content)
	return nil
}

func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.Close(params.TextDocument.URI)
	return nil
}

func boolPtr(b bool) *bool { return &b }
