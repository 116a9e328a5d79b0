// Copyright © 2025 The cljsym authors

package cmd

import (
	"fmt"
	"os"

	"github.com/luthersystems/cljsym/repl"
	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive resolution shell",
	Long: `Start an interactive shell for querying the namespace cache snapshot.

Type a symbol to resolve it in the current namespace; use in-ns to move
between namespaces and load to swap in a different snapshot file. Line
editing and in-session command history are supported via readline. Use
Ctrl-D to exit.

Example session:
  user> in-ns my.app
  now in my.app
  my.app> str/join
  clojure.string/join  (function)
    [coll]
    via alias str -> clojure.string
  my.app> ns-of join
  clojure.string
  my.app> help
  ...`,
	Run: func(_ *cobra.Command, _ []string) {
		snap, err := loadSnapshot()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		repl.Run(snap, "user> ")
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
