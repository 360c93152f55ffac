// Package progress reports per-task download and extraction progress.
//
// Two implementations exist: a terminal progress bar and a plain-text
// fallback for non-interactive output. The implementation is chosen once at
// startup; tasks never branch on display capabilities themselves.
package progress

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Reporter creates progress tasks. Bytes is for transfers with a known (or
// unknown, total <= 0) byte size; Count is for member-counted work such as
// archive extraction, where the total is not known up front.
type Reporter interface {
	Bytes(label string, total int64) Task
	Count(label string) Task
}

// Task tracks one unit of work. Add is called from the goroutine running the
// task; Done must be called exactly once when the task finishes.
type Task interface {
	Add(n int64)
	Done(err error)
}

// Detect picks the bar renderer on interactive terminals and the plain
// printer everywhere else.
func Detect(out *os.File) Reporter {
	if isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()) {
		return NewBar(out)
	}
	return NewPlain(out)
}
