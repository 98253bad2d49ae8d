package installer

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Progress receives byte counts while a download streams to disk.
type Progress interface {
	Add(n int)
	Finish()
}

// ProgressFactory creates the Progress for one download. total is the declared
// Content-Length, or -1 when the server sent none.
type ProgressFactory func(total int64, description string) Progress

// percentComplete returns read*100/total, or -1 when that value cannot be shown.
func percentComplete(read, total int64) int {
	if total <= 0 {
		return -1
	}
	p := read * 100 / total
	if p < 0 || p > 100 {
		return -1
	}
	return int(p)
}

type percentPrinter struct {
	w     io.Writer
	total int64
	read  int64
}

// PercentProgress prints a "\rNN%" indicator after every chunk, or "\r--%"
// when the declared length is absent or wrong.
func PercentProgress(w io.Writer) ProgressFactory {
	return func(total int64, _ string) Progress {
		return &percentPrinter{w: w, total: total}
	}
}

func (p *percentPrinter) Add(n int) {
	p.read += int64(n)
	if pct := percentComplete(p.read, p.total); pct >= 0 {
		fmt.Fprintf(p.w, "\r%02d%%", pct)
	} else {
		fmt.Fprint(p.w, "\r--%")
	}
}

func (p *percentPrinter) Finish() {
	fmt.Fprintln(p.w)
}

type barProgress struct {
	bar *progressbar.ProgressBar
}

// BarProgress draws a byte-count progress bar. Without a declared length the
// bar degrades to a spinner.
func BarProgress(w io.Writer) ProgressFactory {
	return func(total int64, description string) Progress {
		return &barProgress{bar: progressbar.NewOptions64(
			total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetDescription(description),
			progressbar.OptionThrottle(80*time.Millisecond),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(w)
			}),
		)}
	}
}

func (b *barProgress) Add(n int) {
	_ = b.bar.Add(n)
}

func (b *barProgress) Finish() {
	_ = b.bar.Finish()
}

type discardProgress struct{}

func (discardProgress) Add(int) {}
func (discardProgress) Finish() {}

// NoProgress drops all progress updates.
func NoProgress() ProgressFactory {
	return func(int64, string) Progress { return discardProgress{} }
}
