package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Manage recently opened documents",
}

var recentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recently opened documents",
	Args:  cobra.NoArgs,
	RunE:  runRecentList,
}

var recentAddCmd = &cobra.Command{
	Use:   "add [path]",
	Short: "Record a document as opened",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecentAdd,
}

// recentName is a flag for the add command.
var recentName string

func init() {
	recentAddCmd.Flags().StringVarP(&recentName, "name", "n", "", "Display name (defaults to the file name)")

	recentCmd.AddCommand(recentListCmd)
	recentCmd.AddCommand(recentAddCmd)
	rootCmd.AddCommand(recentCmd)
}

func runRecentList(cmd *cobra.Command, _ []string) error {
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}

	ctx := context.Background()

	files, err := workspaceService.RecentFiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to list recent files: %w", err)
	}

	if len(files) == 0 {
		cmd.Println("No recent documents.")
		return nil
	}

	cmd.Println("Recent documents:")
	for _, f := range files {
		cmd.Printf("  %s  %s\n", f.OpenedAt.Format("2006-01-02 15:04"), f.Path)
	}
	return nil
}

func runRecentAdd(cmd *cobra.Command, args []string) error {
	if workspaceService == nil {
		return errors.New("workspace service not configured")
	}

	path := args[0]
	ctx := context.Background()

	if err := workspaceService.TouchRecent(ctx, path, recentName); err != nil {
		return fmt.Errorf("failed to record recent file: %w", err)
	}

	cmd.Printf("Recorded %s.\n", path)
	return nil
}
