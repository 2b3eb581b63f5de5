package engine

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
)

// TableStats snapshots a Table's occupancy and hit-rate at a point in time.
type TableStats struct {
	Size    uint64
	Count   uint64
	Hits    uint64
	Probes  uint64
	Density float64
}

// String renders the table stats as an aligned two-column report, in the
// absence of any table-formatting library in the dependency set.
func (ts TableStats) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "table size:\t%s\n", humanize.Comma(int64(ts.Size)))
	fmt.Fprintf(w, "table count:\t%s\n", humanize.Comma(int64(ts.Count)))
	fmt.Fprintf(w, "table density:\t%.6f\n", ts.Density)
	fmt.Fprintf(w, "table hits/probes:\t%s / %s\n", humanize.Comma(int64(ts.Hits)), humanize.Comma(int64(ts.Probes)))
	w.Flush()
	return b.String()
}

func (t *Table) statsSnapshot() TableStats {
	count := t.Count()
	size := t.Size()
	var density float64
	if size > 0 {
		density = float64(count) / float64(size)
	}
	return TableStats{
		Size:    size,
		Count:   count,
		Hits:    t.Hits(),
		Probes:  t.Probes(),
		Density: density,
	}
}

// Stats reports on a single driver call.
type Stats struct {
	Elapsed     time.Duration
	TimedOut    bool
	NullWindows int
	Nodes       uint64
	Table       TableStats
}

// String renders the search stats as an aligned report.
func (s Stats) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)

	timeout := ""
	if s.TimedOut {
		timeout = " TIMEOUT"
	}
	fmt.Fprintf(w, "search time:\t%dms%s\n", s.Elapsed.Milliseconds(), timeout)
	if s.NullWindows > 0 {
		fmt.Fprintf(w, "null windows:\t%d\n", s.NullWindows)
	}
	fmt.Fprintf(w, "states visited:\t%s\n", humanize.Comma(int64(s.Nodes)))
	w.Flush()

	return b.String() + "\n" + s.Table.String()
}
