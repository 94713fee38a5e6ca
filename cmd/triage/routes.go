package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/triage/internal/cli"
)

var routesCmd = &cobra.Command{
	Use:   "routes [question]",
	Short: "List domains, or show where a question would be routed",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		mermaid, _ := cmd.Flags().GetBool("mermaid")
		return cli.RunRoutes(cmd.Context(), cmd.OutOrStdout(), cli.RoutesOptions{
			Options:  globalOptions(cmd),
			Question: strings.Join(args, " "),
			JSON:     asJSON,
			Mermaid:  mermaid,
		})
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
	routesCmd.Flags().Bool("json", false, "Print JSON")
	routesCmd.Flags().Bool("mermaid", false, "Print the routing table as a Mermaid flowchart")
}
