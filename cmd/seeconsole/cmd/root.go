// Package cmd implements seeconsole, a thin cobra-based demo of the
// pkg/see embedder API. It is not a source-language shell front end
// (out of scope for this substrate) — every subcommand builds its
// "program" by hand from native functions and objects.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "seeconsole",
	Short: "Demo console for the see embeddable-interpreter substrate",
	Long: `seeconsole drives internal/runtime and pkg/see from the command
line, exercising the embedder API: constructing interpreters, building
native-function callables, interning strings, and forcing a collection
pass with a finalizer barrier.

It does not parse or run scripts in any source language; that layer is
out of scope for this substrate.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("{{with .Name}}{{printf \"%%s \" .}}{{end}}{{printf \"version %%s\" .Version}}\nCommit: %s\n", GitCommit))
}
