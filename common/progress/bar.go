package progress

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

type barReporter struct {
	out io.Writer
}

// NewBar returns a Reporter rendering terminal progress bars.
func NewBar(out io.Writer) Reporter {
	return &barReporter{out: out}
}

func (r *barReporter) Bytes(label string, total int64) Task {
	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSpinnerType(14),
	)
	return &barTask{bar: bar}
}

func (r *barReporter) Count(label string) Task {
	bar := progressbar.NewOptions64(-1,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSpinnerType(14),
	)
	return &barTask{bar: bar}
}

type barTask struct {
	bar *progressbar.ProgressBar
}

func (t *barTask) Add(n int64) {
	t.bar.Add64(n)
}

func (t *barTask) Done(err error) {
	if err != nil {
		t.bar.Exit()
		return
	}
	t.bar.Finish()
}
