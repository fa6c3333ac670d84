package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MisterMaroki/Superclip-sub001/internal/config"
	"github.com/MisterMaroki/Superclip-sub001/internal/store"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the persisted clipboard history",
	Long:  `Remove the history document from disk. A running engine keeps its in-memory history until it next saves.`,
	RunE:  runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	path, err := cfg.HistoryPath()
	if err != nil {
		return fmt.Errorf("failed to resolve history path: %w", err)
	}

	if err := store.New(path, cfg.History.Debounce, nil).DeleteHistoryFile(); err != nil {
		return err
	}

	fmt.Printf("Cleared clipboard history (%s)\n", path)
	return nil
}
