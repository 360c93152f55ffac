package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mocapkit/amassget/common/utils/dlutil"
)

// countPrintEvery is how many members pass between plain-mode count updates.
const countPrintEvery = 100

// plainReporter prints in-place progress lines. The line is the only state
// shared between concurrent tasks, so a single mutex guards it.
type plainReporter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewPlain returns the plain-text fallback Reporter.
func NewPlain(out io.Writer) Reporter {
	return &plainReporter{out: out}
}

func (r *plainReporter) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, format, args...)
}

func (r *plainReporter) Bytes(label string, total int64) Task {
	return &plainBytesTask{r: r, label: label, total: total, start: time.Now()}
}

func (r *plainReporter) Count(label string) Task {
	return &plainCountTask{r: r, label: label}
}

type plainBytesTask struct {
	r       *plainReporter
	label   string
	total   int64
	start   time.Time
	written int64
	lastPct int
}

func (t *plainBytesTask) Add(n int64) {
	t.written += n
	if t.total <= 0 {
		// Size unknown, print every 8 MiB.
		if t.written/(8<<20) != (t.written-n)/(8<<20) {
			t.r.printf("\r%s: %s", t.label, humanize.IBytes(uint64(t.written)))
		}
		return
	}
	pct := int(float64(t.written) / float64(t.total) * 100)
	if pct != t.lastPct {
		t.lastPct = pct
		t.r.printf("\r%s: %d%%", t.label, pct)
	}
}

func (t *plainBytesTask) Done(err error) {
	if err != nil {
		t.r.printf("\n")
		return
	}
	speed := dlutil.GetSpeed(t.written, t.start)
	t.r.printf("\r%s: %s (%s/s)\n", t.label, humanize.IBytes(uint64(t.written)), humanize.IBytes(uint64(speed)))
}

type plainCountTask struct {
	r     *plainReporter
	label string
	count int64
}

func (t *plainCountTask) Add(n int64) {
	t.count += n
	if t.count%countPrintEvery == 0 {
		t.r.printf("\r%s: %d members", t.label, t.count)
	}
}

func (t *plainCountTask) Done(err error) {
	if err != nil {
		t.r.printf("\n")
		return
	}
	t.r.printf("\r%s: %d members\n", t.label, t.count)
}
