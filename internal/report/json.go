package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgallion1/docfreq/internal/pipeline"
)

// WriteJSON writes res as JSON. The full table is dropped unless
// fullTable is set.
func WriteJSON(w io.Writer, res *pipeline.Result, fullTable, pretty bool) error {
	out := *res
	if !fullTable {
		out.Table = nil
	}
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	return nil
}
