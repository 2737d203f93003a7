package main

import (
	"fmt"
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/muratgenctav/topkmers/counting"
)

// bars shows one spinner-style counter per worker. The record count of a
// file is unknown up front, so bars have no total until they finish.
type bars struct {
	p *mpb.Progress
}

func newBars(w io.Writer) *bars {
	return &bars{p: mpb.New(mpb.WithWidth(40), mpb.WithOutput(w))}
}

func (b *bars) Track(worker int, part counting.Partition) counting.Tracker {
	name := fmt.Sprintf("worker %d [%d,%d) ", worker, uint64(part.Start), uint64(part.End))
	bar := b.p.AddBar(0,
		mpb.PrependDecorators(
			decor.Name(name, decor.WC{W: len(name), C: decor.DindentRight}),
			decor.CurrentNoUnit("%d records"),
		),
		mpb.AppendDecorators(
			decor.Elapsed(decor.ET_STYLE_GO),
			decor.OnComplete(decor.Name(""), " done"),
		),
	)
	return barTracker{bar}
}

// Wait blocks until every bar has been completed.
func (b *bars) Wait() { b.p.Wait() }

type barTracker struct {
	bar *mpb.Bar
}

func (t barTracker) Record() { t.bar.Increment() }

func (t barTracker) Done() { t.bar.SetTotal(-1, true) }
