// Copyright © 2025 The cljsym authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile      string
	snapshotFile string
	policyWords  []string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cljsym",
	Short: "cljsym — namespace-aware Clojure symbol resolution",
	Long: `cljsym resolves Clojure symbol references against a namespace cache
snapshot and classifies them for syntax highlighting. The snapshot is an
EDN file describing each namespace's aliases, interned vars, and referred
symbols, typically exported from a live REPL session by a state-tracking
middleware.

Getting started:
  cljsym resolve -s state.edn -n my.app str/join   Resolve one reference
  cljsym classify -s state.edn src/my/app.clj      Classify a source file
  cljsym repl -s state.edn                         Interactive queries
  cljsym lsp -s state.edn                          Run the language server

Resolution semantics:
  A qualified reference (str/join) expands its prefix through the current
  namespace's alias table and is looked up only in the target namespace's
  interned vars. An unqualified name tries the current namespace's interns,
  then its refers, then falls back to clojure.core. Unresolved symbols are
  a normal outcome, not an error.

The --policy flag controls which classifications are emitted: "maximal"
(the default) or any subset of macro, function, var, and core. The core
member classifies clojure.core symbols even when their kind is excluded.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cljsym.yaml)")
	rootCmd.PersistentFlags().StringVarP(&snapshotFile, "snapshot", "s", "",
		"EDN namespace cache snapshot file")
	rootCmd.PersistentFlags().StringSliceVar(&policyWords, "policy", []string{"maximal"},
		`classification policy: "maximal" or a subset of macro,function,var,core`)
	_ = viper.BindPFlag("snapshot", rootCmd.PersistentFlags().Lookup("snapshot"))
	_ = viper.BindPFlag("policy", rootCmd.PersistentFlags().Lookup("policy"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".cljsym" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".cljsym")
	}

	viper.SetEnvPrefix("cljsym")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
