package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/triage/internal/cli"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Exposes POST /ask, GET /capabilities, /healthz, /metrics and /openapi.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")
		watch, _ := cmd.Flags().GetBool("watch")
		return cli.RunServe(cli.ServeOptions{
			Options: globalOptions(cmd),
			Port:    port,
			Watch:   watch,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides http.port)")
	serveCmd.Flags().Bool("watch", false, "Reload the knowledge directory on change")
}
