package pyvet

// reviewConfig holds the resolved configuration for a review.
type reviewConfig struct {
	customChecksDir string
	disabledChecks  []string
	checkOverrides  map[string]CheckOverride
	minSeverity     Severity
	workers         int
	ignorePatterns  []string
	category        string // only for ListChecks
}

// Option configures a review operation.
type Option func(*reviewConfig)

// WithCustomChecks loads additional pattern checks from a directory.
func WithCustomChecks(dir string) Option {
	return func(c *reviewConfig) {
		c.customChecksDir = dir
	}
}

// WithDisabledChecks excludes specific check IDs.
func WithDisabledChecks(ids ...string) Option {
	return func(c *reviewConfig) {
		c.disabledChecks = append(c.disabledChecks, ids...)
	}
}

// WithCheckOverrides applies severity overrides or disables checks.
func WithCheckOverrides(overrides map[string]CheckOverride) Option {
	return func(c *reviewConfig) {
		c.checkOverrides = overrides
	}
}

// WithMinSeverity sets the minimum severity threshold for the flattened
// finding list of Review and ReviewContent. Per-analyzer results are not
// filtered.
func WithMinSeverity(sev Severity) Option {
	return func(c *reviewConfig) {
		c.minSeverity = sev
	}
}

// WithWorkers sets the number of concurrent workers (default: NumCPU).
func WithWorkers(n int) Option {
	return func(c *reviewConfig) {
		c.workers = n
	}
}

// WithIgnorePatterns sets file patterns to ignore during directory review.
func WithIgnorePatterns(patterns ...string) Option {
	return func(c *reviewConfig) {
		c.ignorePatterns = append(c.ignorePatterns, patterns...)
	}
}

// WithCategory filters checks by category (only applies to ListChecks).
func WithCategory(cat string) Option {
	return func(c *reviewConfig) {
		c.category = cat
	}
}
