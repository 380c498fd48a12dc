// Command redline is the contract review annotation service.
// It wires the storage, remote, and workspace adapters to the core
// services and hands them to the CLI.
package main

import (
	"fmt"
	"os"

	configfile "github.com/redlinehq/redline/internal/adapters/driven/config/file"
	"github.com/redlinehq/redline/internal/adapters/driven/remote/httpclient"
	"github.com/redlinehq/redline/internal/adapters/driven/storage/sqlite"
	workspacefile "github.com/redlinehq/redline/internal/adapters/driven/workspace/file"
	"github.com/redlinehq/redline/internal/adapters/driving/cli"
	"github.com/redlinehq/redline/internal/core/ports/driven"
	"github.com/redlinehq/redline/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewStore(config.GetString(configfile.KeyStorageDataDir))
	if err != nil {
		return fmt.Errorf("opening annotation store: %w", err)
	}
	defer store.Close()

	// The workspace state lives in JSON files when a state dir is
	// configured; otherwise it shares the SQLite database.
	var workspaceStore driven.WorkspaceStore = store.WorkspaceStore()
	if stateDir := config.GetString(configfile.KeyWorkspaceStateDir); stateDir != "" {
		fileStore, err := workspacefile.NewWorkspaceStore(stateDir)
		if err != nil {
			return fmt.Errorf("opening workspace store: %w", err)
		}
		workspaceStore = fileStore
	}

	remote := httpclient.NewClient(remoteConfig(config))

	cli.SetServices(cli.Services{
		Annotations:    services.NewAnnotationService(store.AnnotationStore()),
		Workspace:      services.NewWorkspaceService(workspaceStore),
		Synchronizer:   services.NewSynchronizer(remote),
		WorkspaceStore: workspaceStore,
		ConfigStore:    config,
	})

	return cli.Execute()
}

// remoteConfig builds the remote client config from stored settings,
// falling back to the client defaults for anything unset.
func remoteConfig(config driven.ConfigStore) httpclient.Config {
	cfg := httpclient.Config{
		BaseURL: config.GetString(configfile.KeyServerBaseURL),
	}
	if rps := config.GetInt(configfile.KeyRemoteRateLimit); rps > 0 {
		cfg.RateLimit.RequestsPerSecond = float64(rps)
	}
	if burst := config.GetInt(configfile.KeyRemoteBurst); burst > 0 {
		cfg.RateLimit.BurstSize = burst
	}
	return cfg
}
