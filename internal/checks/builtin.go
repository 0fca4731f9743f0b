package checks

import (
	"fmt"
	"sync"

	"github.com/pyvet/pyvet/internal/checks/builtin"
)

var loadBuiltin = sync.OnceValues(func() ([]*Compiled, error) {
	raws, err := LoadFromFS(builtin.FS())
	if err != nil {
		return nil, fmt.Errorf("loading built-in checks: %w", err)
	}
	compiled, errs := CompileAll(raws)
	if len(errs) > 0 {
		return nil, fmt.Errorf("compiling built-in checks: %v", errs[0])
	}
	return compiled, nil
})

// MustBuiltin returns the compiled built-in check tables. It panics only if
// the embedded YAML is invalid, which is a build defect rather than a runtime
// condition.
func MustBuiltin() []*Compiled {
	compiled, err := loadBuiltin()
	if err != nil {
		panic(err)
	}
	return compiled
}
