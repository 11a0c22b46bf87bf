// Package toast delivers transient success and error notifications.
package toast

import (
	"fmt"
	"io"
)

// Notifier emits one-line, non-blocking notifications.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Writer is a Notifier over CLI streams: successes go to Out (suppressed
// when Quiet), errors go to Err with the standard error prefix.
type Writer struct {
	Out   io.Writer
	Err   io.Writer
	Quiet bool
}

func (w *Writer) Success(msg string) {
	if w.Quiet || w.Out == nil {
		return
	}
	fmt.Fprintln(w.Out, msg)
}

func (w *Writer) Error(msg string) {
	if w.Err == nil {
		return
	}
	fmt.Fprintf(w.Err, "error: %s\n", msg)
}
