package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pyvet/pyvet/internal/checks"
	"github.com/pyvet/pyvet/internal/config"
)

var explainCmd = &cobra.Command{
	Use:   "explain <CHECK_ID>",
	Short: "Show detailed information about a check",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

type explainInfo struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Severity string   `json:"severity"`
	Category string   `json:"category"`
	Pattern  string   `json:"pattern,omitempty"`
	Message  string   `json:"message,omitempty"`
	LoopOnly bool     `json:"loop_only,omitempty"`
	Flagged  []string `json:"flagged_examples,omitempty"`
	Clean    []string `json:"clean_examples,omitempty"`
}

func runExplain(cmd *cobra.Command, args []string) error {
	checkID := strings.ToUpper(strings.TrimSpace(args[0]))

	compiled, err := loadAndCompileChecks(config.Config{})
	if err != nil {
		return err
	}

	var info *explainInfo
	for _, c := range compiled {
		if c.ID != checkID {
			continue
		}
		info = &explainInfo{
			ID:       c.ID,
			Name:     c.Name,
			Severity: c.Severity.String(),
			Category: string(c.Category),
			Pattern:  c.Pattern,
			Message:  c.Message,
			LoopOnly: c.LoopOnly,
			Flagged:  c.Examples.Flagged,
			Clean:    c.Examples.Clean,
		}
		break
	}
	if info == nil {
		for _, s := range checks.Static() {
			if s.ID != checkID {
				continue
			}
			info = &explainInfo{
				ID:       s.ID,
				Name:     s.Name,
				Severity: s.Severity,
				Category: s.Category,
				Message:  "Implemented by the tree-based analyzers; not configurable through check files.",
			}
			break
		}
	}
	if info == nil {
		return fmt.Errorf("check %q not found", checkID)
	}

	w := cmd.OutOrStdout()

	if strings.ToLower(flagFormat) == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	color := func(code, text string) string {
		if flagNoColor {
			return text
		}
		return code + text + "\033[0m"
	}

	bold := "\033[1m"
	dim := "\033[2m"
	yellow := "\033[33m"
	cyan := "\033[36m"
	red := "\033[31m"
	green := "\033[32m"

	sevColor := cyan
	switch info.Severity {
	case "HIGH":
		sevColor = red
	case "MEDIUM":
		sevColor = yellow
	}

	fmt.Fprintf(w, "\n%s %s\n", color(dim, "Check:"), color(bold, info.ID))
	fmt.Fprintf(w, "%s %s\n", color(dim, "Name:"), info.Name)
	fmt.Fprintf(w, "%s %s\n", color(dim, "Severity:"), color(sevColor, info.Severity))
	fmt.Fprintf(w, "%s %s\n", color(dim, "Category:"), info.Category)

	if info.Pattern != "" {
		scope := "any line"
		if info.LoopOnly {
			scope = "lines inside loops"
		}
		fmt.Fprintf(w, "%s %s %s\n", color(dim, "Pattern:"), info.Pattern, color(dim, "("+scope+")"))
	}

	if info.Message != "" {
		fmt.Fprintf(w, "\n%s\n%s\n", color(bold, "Message:"), info.Message)
	}

	if len(info.Flagged) > 0 {
		fmt.Fprintf(w, "\n%s\n", color(bold, "Flagged:"))
		for _, ex := range info.Flagged {
			fmt.Fprintf(w, "  %s %s\n", color(red, "✖"), ex)
		}
	}

	if len(info.Clean) > 0 {
		fmt.Fprintf(w, "\n%s\n", color(bold, "Clean:"))
		for _, ex := range info.Clean {
			fmt.Fprintf(w, "  %s %s\n", color(green, "✔"), ex)
		}
	}

	fmt.Fprintln(w)
	return nil
}
