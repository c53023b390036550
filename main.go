package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/mrlokans/archivist/internal/cli"
	"github.com/mrlokans/archivist/internal/config"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg := config.NewConfig()

	root := cli.NewRootCommand(cfg, Version+" ("+Commit+")", afero.NewOsFs())
	// With no command given, run the HTTP server
	if len(os.Args) < 2 {
		root.SetArgs([]string{"serve"})
	}
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
