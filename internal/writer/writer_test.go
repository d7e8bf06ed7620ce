package writer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestWriter_WritesChunksInOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	w, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	chunks := make(chan string, 4)
	chunks <- "a;b\r\n"
	chunks <- "1;2\r\n"
	close(chunks)

	if err := w.Run(context.Background(), chunks); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	want := "a;b\r\n1;2\r\n"
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriter_StdoutSentinelOpensWithoutError(t *testing.T) {
	w, err := Open("-")
	if err != nil {
		t.Fatalf("Open(\"-\") error = %v", err)
	}
	chunks := make(chan string)
	close(chunks)
	if err := w.Run(context.Background(), chunks); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}
