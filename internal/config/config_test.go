package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rodata.yaml")
	content := "base_url: http://host/odata\nformat: csv\noutput: out.csv\n" +
		"delimiter: \",\"\nnewline: \"\\n\"\ntimeout_seconds: 30\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if d.BaseURL != "http://host/odata" || d.Format != "csv" || d.Output != "out.csv" {
		t.Errorf("got %+v, want matching top-level fields", d)
	}
	if d.Delimiter != "," || d.Newline != "\n" {
		t.Errorf("got delimiter=%q newline=%q, want \",\" and \"\\n\"", d.Delimiter, d.Newline)
	}
	if got, want := d.Timeout(), 30*time.Second; got != want {
		t.Errorf("Timeout() = %v, want %v", got, want)
	}
}

func TestDefaults_TimeoutZeroWhenUnset(t *testing.T) {
	var d Defaults
	if got := d.Timeout(); got != 0 {
		t.Errorf("Timeout() = %v, want 0", got)
	}
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	d, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if d != (Defaults{}) {
		t.Errorf("got %+v, want zero value", d)
	}
}
