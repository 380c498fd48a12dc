// Package cli implements the redline command-line interface.
// Commands talk to the core services through the driving ports; the
// services are injected from main via SetServices before Execute runs.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/redlinehq/redline/internal/core/ports/driven"
	"github.com/redlinehq/redline/internal/core/ports/driving"
	"github.com/redlinehq/redline/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by main before Execute.
var (
	annotationService driving.AnnotationService
	workspaceService  driving.WorkspaceService
	synchronizer      driving.Synchronizer
	workspaceStore    driven.WorkspaceStore
	configStore       driven.ConfigStore
)

// verboseFlag enables debug logging.
var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "redline",
	Short: "Contract review annotation service",
	Long: `Redline keeps PDF contract annotations in sync between reviewers.

It serves the annotation CRUD API that review frontends talk to, keeps
a local cache reconciled against a remote store, and exposes the same
collection to AI assistants over MCP.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

// Services bundles everything the CLI needs from the application root.
type Services struct {
	Annotations  driving.AnnotationService
	Workspace    driving.WorkspaceService
	Synchronizer driving.Synchronizer

	// WorkspaceStore backs the document tree watcher in serve mode.
	WorkspaceStore driven.WorkspaceStore

	// ConfigStore backs the config command group.
	ConfigStore driven.ConfigStore
}

// SetServices injects the core services the commands run against.
func SetServices(s Services) {
	annotationService = s.Annotations
	workspaceService = s.Workspace
	synchronizer = s.Synchronizer
	workspaceStore = s.WorkspaceStore
	configStore = s.ConfigStore
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
