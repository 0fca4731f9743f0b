package commands

import (
	"github.com/spf13/cobra"
)

var (
	flagSeverity      string
	flagFormat        string
	flagOutput        string
	flagWorkers       int
	flagChecks        string
	flagNoColor       bool
	flagDisableChecks []string
)

var rootCmd = &cobra.Command{
	Use:   "pyvet",
	Short: "Automated code review for Python",
	Long:  `Pyvet reviews Python source for structural problems, insecure constructs, performance anti-patterns, and missing or inadequate documentation.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagSeverity, "severity", "low", "Minimum severity to report (high, medium, low)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "terminal", "Output format (terminal, json, sarif, markdown)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "Number of worker goroutines (default: NumCPU)")
	rootCmd.PersistentFlags().StringVar(&flagChecks, "checks", "", "Additional checks directory")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringSliceVar(&flagDisableChecks, "disable-check", nil, "Check IDs to disable (comma-separated, repeatable)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
