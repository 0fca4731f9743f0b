package output

import (
	"encoding/json"
	"io"

	"github.com/pyvet/pyvet/internal/review"
)

// JSONFormatter outputs the full report, including every per-file analyzer
// result, as indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, report *review.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
