package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pyvet/pyvet/internal/checks"
	"github.com/pyvet/pyvet/internal/config"
)

var flagCategory string

var listChecksCmd = &cobra.Command{
	Use:   "list-checks",
	Short: "List all available checks",
	RunE:  runListChecks,
}

func init() {
	listChecksCmd.Flags().StringVar(&flagCategory, "category", "", "Filter by category (structure, security, performance, documentation)")
	rootCmd.AddCommand(listChecksCmd)
}

func runListChecks(cmd *cobra.Command, args []string) error {
	compiled, err := loadAndCompileChecks(config.Config{})
	if err != nil {
		return err
	}

	infos := make([]checks.Info, 0, len(compiled)+7)
	for _, c := range compiled {
		infos = append(infos, checks.Info{
			ID:       c.ID,
			Name:     c.Name,
			Category: string(c.Category),
			Severity: c.Severity.String(),
		})
	}
	// The tree-based analyzer checks have no table entries but still carry
	// IDs a finding can report, so they are listed too.
	if len(flagDisableChecks) == 0 {
		infos = append(infos, checks.Static()...)
	} else {
		disabled := make(map[string]bool)
		for _, id := range flagDisableChecks {
			disabled[strings.ToUpper(strings.TrimSpace(id))] = true
		}
		for _, s := range checks.Static() {
			if !disabled[s.ID] {
				infos = append(infos, s)
			}
		}
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})

	if flagCategory != "" {
		var filtered []checks.Info
		for _, info := range infos {
			if strings.EqualFold(info.Category, flagCategory) {
				filtered = append(filtered, info)
			}
		}
		infos = filtered
	}

	w := cmd.OutOrStdout()

	if strings.ToLower(flagFormat) == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tNAME\tSEVERITY\tCATEGORY\n")
	fmt.Fprintf(tw, "--\t----\t--------\t--------\n")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.ID, info.Name, info.Severity, info.Category)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d checks loaded\n", len(infos))

	return nil
}
