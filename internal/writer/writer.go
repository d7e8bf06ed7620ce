// Package writer implements the sink half of the pipeline: draining the
// converter's output channel and appending each chunk to a file or
// standard output.
package writer

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/recera/rodata/internal/obs"
)

// stdoutSentinel selects standard output in place of a file path.
const stdoutSentinel = "-"

// bufferSize matches the pipeline's configured write-buffer size.
const bufferSize = 1 << 20 // 1,048,576 bytes

// Writer buffers output chunks before appending them to its sink.
type Writer struct {
	buf    *bufio.Writer
	closer io.Closer
}

// Open resolves path to a sink: stdoutSentinel selects os.Stdout (never
// closed), anything else is created/truncated as a file.
func Open(path string) (*Writer, error) {
	if path == stdoutSentinel {
		return &Writer{buf: bufio.NewWriterSize(os.Stdout, bufferSize)}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &Writer{buf: bufio.NewWriterSize(f, bufferSize), closer: f}, nil
}

// Run drains chunks until the channel is closed, appending each to the
// sink. Once a write fails, Run keeps draining chunks — so upstream
// stages can still unwind through ordinary backpressure instead of
// blocking forever on a writer that stopped listening — but silently
// discards every subsequent chunk rather than attempting to recover
// mid-stream. The first write error (if any) is what Run returns.
func (w *Writer) Run(ctx context.Context, chunks <-chan string) error {
	var firstErr error
	for chunk := range chunks {
		if firstErr != nil {
			continue
		}
		if _, err := w.buf.WriteString(chunk); err != nil {
			firstErr = err
			continue
		}
		obs.RecordOutputChunk(ctx)
	}

	if err := w.buf.Flush(); err != nil && firstErr == nil {
		firstErr = err
	}
	if w.closer != nil {
		if err := w.closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
