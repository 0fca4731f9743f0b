// Package builtin embeds the YAML pattern-check files via go:embed.
package builtin

import "embed"

//go:embed *.yaml
var builtinChecks embed.FS

// FS returns the embedded filesystem containing the built-in checks.
func FS() embed.FS {
	return builtinChecks
}
