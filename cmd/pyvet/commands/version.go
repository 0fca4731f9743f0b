package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pyvet/pyvet/internal/update"
)

// Version and Commit are set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
)

var flagCheckUpdate bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pyvet %s (commit: %s)\n", Version, Commit)
		if flagCheckUpdate {
			if result := update.CheckLatest(Version, "pyvet/pyvet"); result != nil && result.NeedsUpdate() {
				fmt.Printf("update available: %s -> %s (%s)\n", result.Current, result.Latest, result.UpdateURL)
			} else {
				fmt.Println("up to date")
			}
		}
	},
}

func init() {
	versionCmd.Flags().BoolVar(&flagCheckUpdate, "check", false, "Check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}
