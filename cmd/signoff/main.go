// cmd/signoff/main.go
//
// This is the entry point for the signoff CLI.
// When you run `signoff` from any directory, this is what executes.
//
// Flow:
// 1. Initialize .signoff in the project directory and load its config
// 2. Open the structured log and the journey logbook
// 3. Build the stepper controller with its notification sinks
// 4. Launch the TUI

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	projectDir   string
	initialStep  int
	catalogPath  string
	signatureOut string
	debug        bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "signoff",
		Short:         "Walk a multi-step approval with assignee, manager and e-signature sign-off",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.projectDir != "" {
				return nil
			}
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			opts.projectDir = cwd
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.projectDir, "project-dir", "", "Project directory holding .signoff (default: working directory)")
	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "YAML step catalog (default: built-in five steps)")
	root.Flags().IntVar(&opts.initialStep, "initial-step", 0, "Step to start on (default: config initial_step)")
	root.Flags().StringVar(&opts.signatureOut, "signature-out", "", "Write the captured signature PNG to this path")
	root.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	root.AddCommand(newStepsCmd(opts))
	root.AddCommand(newValidateCatalogCmd())
	return root
}
