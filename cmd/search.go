package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MisterMaroki/Superclip-sub001/internal/config"
	"github.com/MisterMaroki/Superclip-sub001/internal/search"
	"github.com/MisterMaroki/Superclip-sub001/internal/store"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the persisted clipboard history",
	Long:  `Rank the saved clipboard history against a query and print the best matches, most relevant first.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of results to print")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	path, err := cfg.HistoryPath()
	if err != nil {
		return fmt.Errorf("failed to resolve history path: %w", err)
	}

	entries := store.New(path, cfg.History.Debounce, nil).Load()
	results := search.Search(strings.Join(args, " "), entries)

	if len(results) == 0 {
		fmt.Println("No matches.")
		return nil
	}

	if searchLimit > 0 && len(results) > searchLimit {
		results = results[:searchLimit]
	}

	for _, entry := range results {
		fmt.Printf("%s  [%s]  %s\n",
			entry.Timestamp.Local().Format("2006-01-02 15:04"),
			entry.TypeLabel,
			preview(entry.Content, 80))
	}
	return nil
}

// preview flattens and truncates content for one-line display.
func preview(content string, max int) string {
	flat := strings.Join(strings.Fields(content), " ")
	runes := []rune(flat)
	if len(runes) > max {
		return string(runes[:max-1]) + "…"
	}
	return flat
}
