package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/triage/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "triage",
	Short: "Triage routes compliance questions to domain experts",
	Long: `Triage classifies regulatory, assessment, analytics and general compliance
questions and answers them from curated knowledge, topic specialists or a
clarifying fallback.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./triage.{yaml,toml,json})")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// globalOptions reads the persistent flags.
func globalOptions(cmd *cobra.Command) cli.Options {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.Options{ConfigPath: path, Debug: debug}
}
