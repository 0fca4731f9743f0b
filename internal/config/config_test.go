package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pyvet/pyvet/internal/config"
	"github.com/stretchr/testify/require"
)

func TestLoadFullConfig(t *testing.T) {
	dir := t.TempDir()
	content := `ignore:
  - "vendor/"
  - "*.generated.py"
severity: medium
fail_on: high
format: json
checks: custom-checks/
baseline: .pyvet-baseline.json
check_overrides:
  SEC007:
    severity: LOW
  PERF005:
    disabled: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".pyvet.yml"), []byte(content), 0o644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	require.Equal(t, []string{"vendor/", "*.generated.py"}, cfg.Ignore)
	require.Equal(t, "medium", cfg.Severity)
	require.Equal(t, "high", cfg.FailOn)
	require.Equal(t, "json", cfg.Format)
	require.Equal(t, "custom-checks/", cfg.Checks)
	require.Equal(t, ".pyvet-baseline.json", cfg.Baseline)
	require.Equal(t, "LOW", cfg.CheckOverrides["SEC007"].Severity)
	require.True(t, cfg.CheckOverrides["PERF005"].Disabled)
}

func TestLoadMissingConfig(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, config.Config{}, cfg)
}

func TestLoadFromFilePathUsesParentDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".pyvet.yml"), []byte("severity: high\n"), 0o644))
	target := filepath.Join(dir, "app.py")
	require.NoError(t, os.WriteFile(target, []byte("x = 1\n"), 0o644))

	cfg, err := config.Load(target)
	require.NoError(t, err)
	require.Equal(t, "high", cfg.Severity)
}

func TestLoadPrefersYmlOverYaml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".pyvet.yml"), []byte("severity: high\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".pyvet.yaml"), []byte("severity: low\n"), 0o644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	require.Equal(t, "high", cfg.Severity)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".pyvet.yml"), []byte("severity: [broken\n"), 0o644))

	_, err := config.Load(dir)
	require.Error(t, err)
}
