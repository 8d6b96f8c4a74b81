package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitgoal/gitgoal/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing the summary engine for editor and CI
integration.

Endpoints:
  GET  /health        — Health check
  POST /api/summary   — Generate a summary from a diff
  POST /api/validate  — Run quality gates over a summary
  POST /api/fix       — Auto-fix a summary and revalidate`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "a", "127.0.0.1", "address to listen on")
	serveCmd.Flags().IntP("port", "p", 6142, "port to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	port, _ := cmd.Flags().GetInt("port")

	listen := fmt.Sprintf("%s:%d", addr, port)
	srv := api.New(listen, loadConfig())
	fmt.Printf("Listening on http://%s\n", listen)
	return srv.ListenAndServe()
}
