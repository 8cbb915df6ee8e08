// Copyright (c) Axiom Studio AI (axiomstudio.ai)

package main

import (
	"fmt"
	"os"

	"odooforge-cli/internal/odooforgecli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	odooforgecli.SetVersionInfo(version, commit, date)
	if err := odooforgecli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
