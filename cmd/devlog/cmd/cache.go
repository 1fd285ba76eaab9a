package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/devlog"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or purge the build cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print how many parsed posts the build cache holds",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := devlog.NewStore(GetConfig().CacheDatabasePath)
		if err != nil {
			return fmt.Errorf("open build cache: %w", err)
		}
		defer store.Close()
		n, err := store.Count()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d cached posts\n", GetConfig().CacheDatabasePath, n)
		return nil
	},
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Drop every cached post; the next load parses all files",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := devlog.NewStore(GetConfig().CacheDatabasePath)
		if err != nil {
			return fmt.Errorf("open build cache: %w", err)
		}
		defer store.Close()
		if err := store.Purge(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "build cache purged")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd, cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}
