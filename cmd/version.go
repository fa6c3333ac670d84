package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MisterMaroki/Superclip-sub001/internal/app"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s (%s)\n", app.AppName, app.Version, app.GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
