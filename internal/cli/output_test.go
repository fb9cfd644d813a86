package cli

import (
	"strings"
	"testing"

	"github.com/nmendoza/tombacal/internal/syncer"
)

func TestWriteSummary(t *testing.T) {
	var buf strings.Builder
	writeSummary(&buf, &syncer.Result{Created: 3, Updated: 2, Total: 5})

	out := buf.String()
	for _, want := range []string{"Created: 3", "Updated: 2", "Total:   5"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Failed") {
		t.Error("summary should omit the failed line when nothing failed")
	}
}

func TestWriteSummaryWithFailures(t *testing.T) {
	var buf strings.Builder
	writeSummary(&buf, &syncer.Result{Created: 1, Failed: 2, Total: 3})

	if !strings.Contains(buf.String(), "Failed:  2") {
		t.Errorf("summary should report failures:\n%s", buf.String())
	}
}
