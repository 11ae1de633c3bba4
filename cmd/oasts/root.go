package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// runOptions holds the command-line flags.
type runOptions struct {
	input      string
	configPath string
	output     string
	check      bool
	watch      bool
	noCache    bool
	verbose    bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "oasts [input]",
		Short: "Generate TypeScript types from OpenAPI and JSON Schema documents",
		Long: `oasts reads an OpenAPI 3, Swagger 2 or JSON Schema document and writes one
TypeScript type alias per named schema.

Settings come from oasts.config.yaml (or .json) in the working directory,
OASTS_* environment variables and flags, in increasing precedence.`,
		Example: `  # Generate types.ts from a document
  oasts openapi.yaml

  # Write somewhere else
  oasts openapi.yaml -o src/api/types.ts

  # Fail in CI when the checked-in file is stale
  oasts --check

  # Regenerate on every change
  oasts --watch`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.input = args[0]
			}
			return runGenerate(cmd.Context(), opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to a config file (default: oasts.config.yaml|json in the working directory)")
	flags.StringVarP(&opts.output, "output", "o", "", "output file, overrides the config")
	flags.BoolVar(&opts.check, "check", false, "compare the output file with a fresh generation and exit 1 when it differs")
	flags.BoolVar(&opts.watch, "watch", false, "regenerate whenever the input or config file changes")
	flags.BoolVar(&opts.noCache, "no-cache", false, "always regenerate, ignoring and not writing the build cache")
	flags.BoolVar(&opts.verbose, "verbose", false, "log each step")
	cmd.MarkFlagsMutuallyExclusive("check", "watch")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the oasts version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "oasts", version)
		},
	}
}
