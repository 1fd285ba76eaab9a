package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eringen/devlog"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the blog server",
	Long: `Load the content directory and serve the blog over HTTP.

With --watch the content directory is watched and reloaded on change; a
reload that fails keeps serving the previous content.

Examples:
  devlog serve
  devlog serve --addr :8080 --watch`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default :3000)")
	serveCmd.Flags().Bool("watch", false, "reload when posts change")
	cobra.CheckErr(bindFlag("addr", serveCmd, "addr"))
	cobra.CheckErr(bindFlag("watch", serveCmd, "watch"))
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := devlog.New(GetConfig(), devlog.WithLogger(slog.Default()))
	defer app.Close()

	return app.Start(ctx)
}
