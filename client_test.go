package rodata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// A root-level scalar is reachable end to end via RunProperty. Rendered
// as XML it must come out bare, with no wrapping element — regression
// test for a bug where the root case fell through to the same
// element-wrapping path as a nested scalar.
func TestRunProperty_FormatXML_RootScalarRendersBare(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`"a raw value"`))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "out.xml")
	c := NewClient()
	q := PropertyQuery{URL: srv.URL}
	if err := c.RunProperty(context.Background(), q, FormatXML, out); err != nil {
		t.Fatalf("RunProperty() error = %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(got) != "a raw value" {
		t.Errorf("got %q, want bare %q", got, "a raw value")
	}
}
