package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/nmendoza/tombacal/internal/syncer"
)

// writeSummary prints the run totals of a sync phase.
func writeSummary(w io.Writer, result *syncer.Result) {
	rule := strings.Repeat("=", 50)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  Created: %d\n", result.Created)
	fmt.Fprintf(w, "  Updated: %d\n", result.Updated)
	if result.Failed > 0 {
		fmt.Fprintf(w, "  Failed:  %d\n", result.Failed)
	}
	fmt.Fprintf(w, "  Total:   %d\n", result.Total)
	fmt.Fprintln(w, rule)
}
