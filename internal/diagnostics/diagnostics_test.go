package diagnostics

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriter_NonFileOutputIsNeverColorized(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	w.Info("fetching %s", "page 2")
	w.Warn("retrying %s", "after timeout")
	w.Error("giving up on %s", "page 3")

	got := buf.String()
	if strings.Contains(got, "\x1b[") {
		t.Errorf("expected no ANSI escape codes against a non-file writer, got %q", got)
	}
	for _, want := range []string{"fetching page 2", "retrying after timeout", "giving up on page 3"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got %q", want, got)
		}
	}
}
