package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/keywarden/cli/internal/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the agent-protocol server over stdio",
	Long: `Expose credential tracking as a set of tools over the Model Context
Protocol. The server speaks JSON-RPC on stdin and stdout, so all
diagnostics go to stderr.

Examples:
  keywarden serve
  keywarden serve --store ./team.keywarden.json`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	level := slog.LevelInfo
	if quietMode(cmd) {
		level = slog.LevelWarn
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	storePath, _ := cmd.Flags().GetString("store")
	srv := mcpserver.New(Version, storePath, log)

	log.Info("starting server", "version", Version, "transport", "stdio")
	return srv.Run(ctx)
}
