// Copyright © 2025 The cljsym authors

package main

import "github.com/luthersystems/cljsym/cmd"

func main() {
	cmd.Execute()
}
