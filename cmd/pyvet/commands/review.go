package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pyvet/pyvet/internal/checks"
	"github.com/pyvet/pyvet/internal/config"
	"github.com/pyvet/pyvet/internal/output"
	"github.com/pyvet/pyvet/internal/review"
	"github.com/pyvet/pyvet/internal/state"
	"github.com/pyvet/pyvet/internal/types"
)

var (
	flagFailOn         string
	flagCI             bool
	flagVerbose        bool
	flagChanged        bool
	flagBaseline       string
	flagUpdateBaseline bool
)

var reviewCmd = &cobra.Command{
	Use:   "review <path>",
	Short: "Review a Python file or directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runReview,
}

func init() {
	reviewCmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Exit with code 1 if findings at or above this severity (high, medium, low)")
	reviewCmd.Flags().BoolVar(&flagCI, "ci", false, "CI mode: equivalent to --fail-on high --format terminal --no-color")
	reviewCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Show code elements and snippets for each finding")
	reviewCmd.Flags().BoolVar(&flagChanged, "changed", false, "Only review git-changed files (staged, unstaged, untracked)")
	reviewCmd.Flags().StringVar(&flagBaseline, "baseline", "", "Baseline file for suppressing known findings (default: .pyvet-baseline.json beside the target)")
	reviewCmd.Flags().BoolVar(&flagUpdateBaseline, "update-baseline", false, "Record current findings in the baseline instead of reporting them")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	cfg := loadReviewConfig(cmd, targetPath)
	applyCIDefaults()

	minSev, err := parseSeverityFlag()
	if err != nil {
		return err
	}

	compiled, err := loadAndCompileChecks(cfg)
	if err != nil {
		return err
	}

	r, store := buildReviewer(compiled, cfg, minSev, targetPath)

	ctx, cancel := contextWithInterrupt()
	defer cancel()

	report, err := executeReview(ctx, r, targetPath)
	if err != nil {
		return err
	}
	report.Target = targetPath

	if store != nil && flagUpdateBaseline {
		if err := store.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: saving baseline: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "baseline updated: %d findings recorded in %s\n", store.Len(), store.Path())
		}
	}

	if err := writeOutput(report); err != nil {
		return err
	}

	return checkFailOnThreshold(report)
}

func loadReviewConfig(cmd *cobra.Command, targetPath string) config.Config {
	cfg, err := config.Load(targetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if !cmd.Flags().Changed("severity") && cfg.Severity != "" {
		flagSeverity = cfg.Severity
	}
	if !cmd.Flags().Changed("format") && cfg.Format != "" {
		flagFormat = cfg.Format
	}
	if !cmd.Flags().Changed("fail-on") && cfg.FailOn != "" {
		flagFailOn = cfg.FailOn
	}
	if !cmd.Flags().Changed("checks") && cfg.Checks != "" {
		flagChecks = cfg.Checks
	}
	if !cmd.Flags().Changed("baseline") && cfg.Baseline != "" {
		flagBaseline = cfg.Baseline
	}
	return cfg
}

func applyCIDefaults() {
	if flagCI {
		if flagFailOn == "" {
			flagFailOn = "high"
		}
		if flagFormat == "terminal" {
			flagNoColor = true
		}
	}
	if os.Getenv("NO_COLOR") != "" {
		flagNoColor = true
	}
}

func parseSeverityFlag() (types.Severity, error) {
	if flagSeverity == "" {
		return types.SeverityLow, nil
	}
	sev, err := types.ParseSeverity(flagSeverity)
	if err != nil {
		return 0, fmt.Errorf("invalid --severity: %w", err)
	}
	return sev, nil
}

func loadAndCompileChecks(cfg config.Config) ([]*checks.Compiled, error) {
	compiled := checks.MustBuiltin()

	if flagChecks != "" {
		raws, err := checks.LoadFromDir(flagChecks)
		if err != nil {
			return nil, fmt.Errorf("loading custom checks from %s: %w", flagChecks, err)
		}
		custom, errs := checks.CompileAll(raws)
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "warning: %v\n", e)
		}
		compiled = append(append([]*checks.Compiled{}, compiled...), custom...)
	}

	if len(cfg.CheckOverrides) > 0 {
		overrides := make(map[string]checks.Override, len(cfg.CheckOverrides))
		for id, ovr := range cfg.CheckOverrides {
			overrides[id] = checks.Override{Severity: ovr.Severity, Disabled: ovr.Disabled}
		}
		var ovrErrs []error
		compiled, ovrErrs = checks.ApplyOverrides(compiled, overrides)
		for _, e := range ovrErrs {
			fmt.Fprintf(os.Stderr, "warning: %v\n", e)
		}
	}

	if len(flagDisableChecks) > 0 {
		disabled := make(map[string]bool)
		for _, id := range flagDisableChecks {
			disabled[strings.ToUpper(strings.TrimSpace(id))] = true
		}
		compiled = checks.FilterByIDs(compiled, disabled)
	}

	return compiled, nil
}

func buildReviewer(compiled []*checks.Compiled, cfg config.Config, minSev types.Severity, targetPath string) (*review.Reviewer, *state.Store) {
	r := review.New(compiled, flagWorkers)
	r.SetMinSeverity(minSev)
	if len(cfg.Ignore) > 0 {
		r.SetIgnorePatterns(cfg.Ignore)
	}

	var store *state.Store
	if flagBaseline != "" || flagUpdateBaseline {
		path := flagBaseline
		if path == "" {
			path = state.DefaultPath(targetPath)
		}
		store = state.New(path)
		if err := store.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: loading baseline: %v\n", err)
		}
		r.SetBaseline(store, flagUpdateBaseline)
	}

	return r, store
}

func contextWithInterrupt() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}

func executeReview(ctx context.Context, r *review.Reviewer, targetPath string) (*review.Report, error) {
	if flagChanged {
		return reviewChangedFiles(ctx, r, targetPath)
	}
	report, err := r.Review(ctx, targetPath)
	if err != nil {
		return nil, fmt.Errorf("review failed: %w", err)
	}
	return report, nil
}

func reviewChangedFiles(ctx context.Context, r *review.Reviewer, targetPath string) (*review.Report, error) {
	changed, err := review.GitChangedFiles(targetPath)
	if err != nil {
		return nil, fmt.Errorf("getting changed files: %w", err)
	}
	var targets []*review.Target
	for _, relPath := range changed {
		absPath := filepath.Join(targetPath, relPath)
		if _, err := os.Stat(absPath); err != nil {
			continue
		}
		targets = append(targets, &review.Target{
			Path:     absPath,
			RelPath:  relPath,
			Markdown: strings.HasSuffix(relPath, ".md") || strings.HasSuffix(relPath, ".markdown"),
		})
	}
	report, err := r.ReviewTargets(ctx, targets)
	if err != nil {
		return nil, fmt.Errorf("review failed: %w", err)
	}
	return report, nil
}

func writeOutput(report *review.Report) error {
	output.ToolVersion = Version

	var formatter output.Formatter
	switch strings.ToLower(flagFormat) {
	case "json":
		formatter = &output.JSONFormatter{}
	case "sarif":
		formatter = &output.SARIFFormatter{}
	case "markdown", "md":
		formatter = &output.MarkdownFormatter{}
	default:
		formatter = &output.TerminalFormatter{NoColor: flagNoColor, Verbose: flagVerbose}
	}

	w := os.Stdout
	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	return formatter.Format(w, report)
}

func checkFailOnThreshold(report *review.Report) error {
	if flagFailOn == "" {
		return nil
	}
	threshold, err := types.ParseSeverity(flagFailOn)
	if err != nil {
		return fmt.Errorf("invalid --fail-on: %w", err)
	}
	for _, f := range report.Findings {
		if f.Severity >= threshold {
			os.Exit(1)
		}
	}
	return nil
}
