// Copyright © 2025 The cljsym authors

package cmd

import (
	"fmt"
	"os"

	"github.com/luthersystems/cljsym/resolve"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

var resolveNS string

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve [flags] SYMBOL",
	Short: "Resolve a symbol reference against the namespace cache",
	Long: `Resolve one symbol reference the way the highlighter would, and print
the resolved var's metadata.

The reference is resolved relative to the namespace given with -n, which
defaults to user. Qualified references (str/join) expand their prefix
through that namespace's alias table; unqualified names try the
namespace's interns, refers, and finally clojure.core.

Examples:
  cljsym resolve -s state.edn -n my.app str/join
  cljsym resolve -s state.edn -n my.app handler
  cljsym resolve -s state.edn map`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		if err := resolveExec(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func resolveExec(ref string) error {
	snap, err := loadSnapshot()
	if err != nil {
		return err
	}
	if snap == nil {
		fmt.Println("unresolved (no snapshot loaded; use --snapshot)")
		return nil
	}

	meta := resolve.Var(snap, resolveNS, ref)
	if meta == nil {
		fmt.Println("unresolved")
		return nil
	}

	kind := "var"
	switch {
	case meta.IsMacro():
		kind = "macro"
	case meta.HasArglist():
		kind = "function"
	}
	fmt.Printf("%s  (%s)\n", meta.QualifiedName(), kind)
	for _, arglist := range meta.Arglists {
		fmt.Printf("  %s\n", arglist)
	}
	if meta.IsInstrumented() {
		fmt.Println("  instrumented")
	}
	if ns, ok := resolve.VarNamespace(snap, resolveNS, ref); ok && ns != resolveNS {
		fmt.Printf("  from %s\n", ns)
	}
	if meta.Doc != "" {
		fmt.Println()
		fmt.Println(indent.String(wordwrap.String(meta.Doc, 72), 2))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVarP(&resolveNS, "ns", "n", "user",
		"namespace the reference occurs in")
}
