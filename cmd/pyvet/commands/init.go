package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	flagHook   bool
	flagCIOnly bool
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize pyvet configuration files",
	Long:  `Scaffolds .pyvet.yml, .pyvetignore, an example custom check, and a GitHub Actions workflow for pyvet review.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&flagHook, "hook", false, "Create a git pre-commit hook that runs pyvet")
	initCmd.Flags().BoolVar(&flagCIOnly, "ci", false, "Only generate GitHub Actions workflow (skip config files)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	if flagHook {
		return initHook(dir)
	}

	if flagCIOnly {
		return initCIOnly(dir)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	files := []struct {
		path    string
		content string
	}{
		{
			path:    filepath.Join(dir, ".pyvet.yml"),
			content: configTemplate,
		},
		{
			path:    filepath.Join(dir, ".pyvetignore"),
			content: ignoreTemplate,
		},
		{
			path:    filepath.Join(dir, "pyvet-checks", "example.yaml"),
			content: checkTemplate,
		},
		{
			path:    filepath.Join(dir, ".github", "workflows", "pyvet.yml"),
			content: workflowTemplate,
		},
	}

	for _, f := range files {
		if _, err := os.Stat(f.path); err == nil {
			fmt.Printf("  skip %s (already exists)\n", f.path)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", f.path, err)
		}
		if err := os.WriteFile(f.path, []byte(f.content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", f.path, err)
		}
		fmt.Printf("  create %s\n", f.path)
	}

	return nil
}

func initHook(dir string) error {
	gitDir := filepath.Join(dir, ".git")
	if _, err := os.Stat(gitDir); os.IsNotExist(err) {
		return fmt.Errorf("no .git directory found in %s (is this a git repository?)", dir)
	}

	hookPath := filepath.Join(gitDir, "hooks", "pre-commit")
	if _, err := os.Stat(hookPath); err == nil {
		fmt.Printf("  skip %s (already exists)\n", hookPath)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(hookPath), 0755); err != nil {
		return fmt.Errorf("creating hooks directory: %w", err)
	}
	if err := os.WriteFile(hookPath, []byte(preCommitTemplate), 0755); err != nil {
		return fmt.Errorf("writing pre-commit hook: %w", err)
	}
	fmt.Printf("  create %s\n", hookPath)
	return nil
}

func initCIOnly(dir string) error {
	wfPath := filepath.Join(dir, ".github", "workflows", "pyvet.yml")
	if _, err := os.Stat(wfPath); err == nil {
		fmt.Printf("  skip %s (already exists)\n", wfPath)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(wfPath), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", wfPath, err)
	}
	if err := os.WriteFile(wfPath, []byte(workflowTemplate), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", wfPath, err)
	}
	fmt.Printf("  create %s\n", wfPath)
	return nil
}

const configTemplate = `# pyvet code review configuration
# https://github.com/pyvet/pyvet

# File patterns to ignore
ignore:
  - "*.log"
  - "vendor/"
  - ".venv/"
  - "__pycache__/"

# Minimum severity to report: high, medium, low
severity: low

# Exit with code 1 if findings at or above this severity
# fail_on: high

# Output format: terminal, json, sarif, markdown
format: terminal

# Additional checks directory
# checks: pyvet-checks/

# Baseline file for suppressing known findings
# baseline: .pyvet-baseline.json

# Per-check overrides
# check_overrides:
#   SEC007:
#     severity: LOW
#   PERF005:
#     disabled: true
`

const ignoreTemplate = `# pyvet ignore patterns
# Files matching these patterns will be skipped during review

# Dependencies and environments
vendor/
.venv/
venv/
__pycache__/

# Build artifacts
dist/
build/
*.egg-info/

# Generated code
*_pb2.py
migrations/

# IDE and editor
.idea/
.vscode/
*.swp

# Test coverage
htmlcov/
.coverage
`

const checkTemplate = `# Example custom check. Each document in this file is one check;
# run "pyvet review --checks pyvet-checks ..." to load it.
id: SEC900
name: Use of assert for validation
category: security
severity: MEDIUM
pattern: "assert "
message: "assert is stripped under python -O; do not use it for validation"
examples:
  flagged:
    - "assert user.is_admin"
  clean:
    - "if not user.is_admin: raise PermissionError"
`

const preCommitTemplate = `#!/bin/sh
# pyvet pre-commit hook
echo "Running pyvet review..."
pyvet review . --changed --fail-on high --no-color
exit $?
`

const workflowTemplate = `name: Pyvet Code Review

on:
  push:
    branches: [main]
  pull_request:
    branches: [main]

permissions:
  security-events: write
  contents: read

jobs:
  pyvet:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4

      - name: Cache pyvet binary
        uses: actions/cache@v4
        with:
          path: ./pyvet
          key: pyvet-linux-amd64

      - name: Install pyvet
        run: |
          if [ ! -f ./pyvet ]; then
            curl -sSL https://github.com/pyvet/pyvet/releases/latest/download/pyvet-linux-amd64 -o pyvet
            chmod +x pyvet
          fi

      - name: Run pyvet review
        id: review
        continue-on-error: true
        run: ./pyvet review . --format sarif --output results.sarif --fail-on high

      - name: Upload SARIF results
        if: always()
        uses: github/codeql-action/upload-sarif@v3
        with:
          sarif_file: results.sarif

      - name: Fail on findings
        if: steps.review.outcome == 'failure'
        run: exit 1
`
