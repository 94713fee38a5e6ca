package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/triage/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate [knowledge files...]",
	Short: "Check configuration, routing table and knowledge sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.RunValidate(cmd.Context(), cmd.OutOrStdout(), globalOptions(cmd), args...); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All checks passed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
