// Copyright © 2025 The cljsym authors

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/luthersystems/cljsym/lsp"
	"github.com/spf13/cobra"
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify [flags] FILE",
	Short: "Classify every candidate symbol in a source file",
	Long: `Scan a Clojure source file for candidate symbols and classify each one
against the namespace cache snapshot, printing one line per classified
token:

  LINE:COL  TEXT  FACES

The scan tracks the current namespace through (ns ...) and (in-ns '...)
forms, so symbols after a namespace switch resolve in the right context.
Unclassified tokens (unresolved symbols under the active policy) are
omitted; pass --all to print them too.

Examples:
  cljsym classify -s state.edn src/my/app.clj
  cljsym classify -s state.edn --policy macro,core src/my/app.clj`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		if err := classifyExec(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

var classifyAll bool

func classifyExec(path string) error {
	snap, err := loadSnapshot()
	if err != nil {
		return err
	}
	policy, err := loadPolicy()
	if err != nil {
		return err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	for _, tok := range lsp.ClassifyText(snap, string(src), policy) {
		if tok.Spec == nil {
			if classifyAll {
				fmt.Printf("%d:%d\t%s\t-\n", tok.Line+1, tok.Col+1, tok.Text)
			}
			continue
		}
		faces := make([]string, len(tok.Spec.Faces))
		for i, f := range tok.Spec.Faces {
			faces[i] = f.String()
		}
		fmt.Printf("%d:%d\t%s\t%s\n", tok.Line+1, tok.Col+1, tok.Text, strings.Join(faces, ","))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().BoolVar(&classifyAll, "all", false,
		"also print unclassified candidates")
}
