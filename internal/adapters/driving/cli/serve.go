package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/redlinehq/redline/internal/adapters/driven/workspace/file"
	"github.com/redlinehq/redline/internal/adapters/driving/httpapi"
	"github.com/redlinehq/redline/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the annotation API server",
	Long: `Start the HTTP server that review frontends talk to.

The server exposes annotation CRUD under /api/annotations and the
workspace state under /api/workspace. With --watch, the document tree
snapshot is kept in sync with the PDFs under the given directories.`,
	RunE: runServe,
}

// Flags for serve.
var (
	serveAddr  string
	watchRoots []string
)

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "127.0.0.1:8335", "Listen address")
	serveCmd.Flags().StringSliceVarP(&watchRoots, "watch", "w", nil, "Document root to watch (repeatable)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := httpapi.NewServer(serveAddr, annotationService, workspaceService)
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}
	cmd.Printf("Annotation API listening on http://%s\n", server.Addr())

	if len(watchRoots) > 0 {
		if workspaceStore == nil {
			return errors.New("workspace store not configured")
		}
		watcher := file.NewTreeWatcher(watchRoots, workspaceStore)
		go func() {
			if err := watcher.Watch(ctx); err != nil && !errors.Is(err, ctx.Err()) {
				logger.Error("document tree watcher stopped: %v", err)
			}
		}()
		cmd.Printf("Watching %d document root(s)\n", len(watchRoots))
	}

	<-ctx.Done()
	cmd.Println("Shutting down...")
	return server.Stop()
}
