package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/triage/internal/cli"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a single question",
	Example: `  triage ask "What are the FDA requirements for AI/ML medical devices?"
  triage ask --expertise beginner --json "How is my readiness score calculated?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.AskOptions{
			Options:  globalOptions(cmd),
			Question: strings.Join(args, " "),
		}
		opts.Context, _ = cmd.Flags().GetString("context")
		opts.Expertise, _ = cmd.Flags().GetString("expertise")
		opts.Style, _ = cmd.Flags().GetString("style")
		opts.Area, _ = cmd.Flags().GetString("area")
		opts.JSON, _ = cmd.Flags().GetBool("json")

		return cli.RunAsk(cmd.Context(), cmd.OutOrStdout(), opts)
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().String("context", "", "Session context as JSON")
	askCmd.Flags().String("expertise", "", "Expertise level: beginner, intermediate, expert")
	askCmd.Flags().String("style", "", "Response style: detailed, concise")
	askCmd.Flags().String("area", "", "Therapeutic area")
	askCmd.Flags().Bool("json", false, "Print the raw response as JSON")
}
