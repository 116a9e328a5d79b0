// Copyright © 2025 The cljsym authors

package cmd

import (
	"fmt"
	"os"

	"github.com/luthersystems/cljsym/classify"
	"github.com/luthersystems/cljsym/nscache"
	"github.com/spf13/viper"
)

// loadSnapshot reads the snapshot named by the --snapshot flag or the
// viper "snapshot" key. A missing setting yields a nil snapshot, which
// resolves nothing; commands that require cache data should tell the user
// so rather than fail.
func loadSnapshot() (*nscache.Snapshot, error) {
	path := viper.GetString("snapshot")
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file
	snap, err := nscache.ReadSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return snap, nil
}

// loadPolicy parses the --policy flag or the viper "policy" key.
func loadPolicy() (classify.Policy, error) {
	words := viper.GetStringSlice("policy")
	if len(words) == 0 {
		return classify.PolicyMaximal, nil
	}
	return classify.ParsePolicy(words)
}
