package sensitivedata

import (
	"io"
	"sync"
)

// Writer wraps an io.Writer and scrubs every write.
// slog handlers emit one record per Write, so a secret never spans two calls.
type Writer struct {
	underlying io.Writer
	redactor   *Redactor
	mu         sync.Mutex
}

// NewWriter creates a scrubbing writer. A nil redactor passes data through.
func NewWriter(w io.Writer, r *Redactor) *Writer {
	return &Writer{
		underlying: w,
		redactor:   r,
	}
}

// Write scrubs p and writes the result. It reports len(p) on success so
// callers never see a short write when the scrubbed text differs in length.
func (w *Writer) Write(p []byte) (int, error) {
	out := p
	if w.redactor != nil {
		out = []byte(w.redactor.ScrubString(string(p)))
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.underlying.Write(out); err != nil {
		return 0, err
	}
	return len(p), nil
}
