// Copyright © 2025 The cljsym authors

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/luthersystems/cljsym/lsp"
	"github.com/spf13/cobra"
)

// lspCmd represents the lsp command
var lspCmd = &cobra.Command{
	Use:   "lsp [flags]",
	Short: "Start the cljsym Language Server Protocol server",
	Long: `Start an LSP server that publishes namespace-aware semantic tokens for
Clojure source files.

Each open document is scanned for candidate symbols, every candidate is
resolved against the namespace cache snapshot, and resolved macros,
functions, and vars are reported as semantic tokens for the editor to
style. Instrumented vars carry an "instrumented" token modifier.

Transport modes:
  --stdio      Use stdin/stdout for LSP communication (default)
  --port N     Listen for an LSP client on TCP port N

Examples:
  cljsym lsp -s state.edn                  Start with stdio transport
  cljsym lsp -s state.edn --port 7999      Start with TCP on port 7999`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		snap, err := loadSnapshot()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		policy, err := loadPolicy()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		srv := lsp.New(lsp.WithSnapshot(snap), lsp.WithPolicy(policy))

		if !lspStdio && lspPort > 0 {
			addr := fmt.Sprintf("localhost:%d", lspPort)
			log.Printf("cljsym LSP server listening on %s", addr)
			if err := srv.RunTCP(addr); err != nil {
				fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
				os.Exit(1)
			}
		} else {
			if err := srv.RunStdio(); err != nil {
				fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
				os.Exit(1)
			}
		}
	},
}

var (
	lspStdio bool
	lspPort  int
)

func init() {
	rootCmd.AddCommand(lspCmd)

	lspCmd.Flags().BoolVar(&lspStdio, "stdio", false,
		"Use stdin/stdout for LSP communication (default behavior)")
	lspCmd.Flags().IntVar(&lspPort, "port", 0,
		"TCP port for LSP server (use instead of --stdio)")
}
