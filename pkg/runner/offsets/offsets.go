// Package offsets prints where the calendar list would scroll for a set of
// months and days, without starting the UI.
package offsets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"tableflip.dev/calscroll/pkg/calendarlist"
	"tableflip.dev/calscroll/pkg/config"
	"tableflip.dev/calscroll/pkg/dateutil"
)

// Target kinds.
const (
	KindMonth = "month"
	KindDay   = "day"
)

// Row is one computed scroll target.
type Row struct {
	Target  string `json:"target" yaml:"target"`
	Kind    string `json:"kind" yaml:"kind"`
	Label   string `json:"label" yaml:"label"`
	Index   int    `json:"index" yaml:"index"`
	Offset  int    `json:"offset" yaml:"offset"`
	WeekRow int    `json:"weekRow,omitempty" yaml:"week-row,omitempty"`
	InRange bool   `json:"inRange" yaml:"in-range"`
}

// Report is the full output of the command.
type Report struct {
	Current      string `json:"current" yaml:"current"`
	ItemCount    int    `json:"itemCount" yaml:"item-count"`
	InitialIndex int    `json:"initialIndex" yaml:"initial-index"`
	Extent       int    `json:"extent" yaml:"extent"`
	Paging       bool   `json:"paging" yaml:"paging"`
	Rows         []Row  `json:"rows" yaml:"rows"`
}

// Offsets computes scroll offsets against a host that only records.
type Offsets struct {
	Config  *config.Config
	Current any
	Months  []string
	Days    []string
	// Output is "", "json" or "yaml".
	Output string
	// ViewportWidth is used as the month extent of horizontal lists without
	// an explicit width.
	ViewportWidth int

	Out io.Writer
	Now func() time.Time
}

// recorder is a Host that remembers the last scroll request.
type recorder struct {
	width  int
	offset int
	index  int
}

func (r *recorder) ScrollToOffset(offset int, _ bool) { r.offset = offset }
func (r *recorder) ScrollToIndex(index int, _ bool)   { r.index = index }
func (r *recorder) ViewportSize() (int, int)          { return r.width, 0 }

// Compute builds the report.
func (o *Offsets) Compute() (*Report, error) {
	if o.Config == nil {
		return nil, errors.New("offsets: config required")
	}
	opts := o.Config.ListOptions(o.Current)
	if o.Now != nil {
		opts.Now = o.Now
	}
	host := &recorder{width: o.ViewportWidth}
	list := calendarlist.New(opts, host, nil)
	hc := list.HostConfig()

	report := &Report{
		Current:      list.OpenDate().Format("2006-01-02"),
		ItemCount:    hc.ItemCount,
		InitialIndex: hc.InitialIndex,
		Extent:       list.ItemLayout(0).Length,
		Paging:       hc.PagingEnabled,
	}

	for _, m := range o.Months {
		t, ok := dateutil.Parse(m)
		if !ok {
			return nil, fmt.Errorf("offsets: unknown month %q", m)
		}
		list.ScrollToMonth(t)
		idx := list.MonthIndex(t)
		report.Rows = append(report.Rows, Row{
			Target:  m,
			Kind:    KindMonth,
			Label:   dateutil.MonthLabel(t),
			Index:   idx,
			Offset:  host.offset,
			InRange: idx >= 0 && idx < hc.ItemCount,
		})
	}
	for _, d := range o.Days {
		t, ok := dateutil.Parse(d)
		if !ok {
			return nil, fmt.Errorf("offsets: unknown day %q", d)
		}
		list.ScrollToDay(t, 0, false)
		idx := list.MonthIndex(t)
		row := Row{
			Target:  d,
			Kind:    KindDay,
			Label:   t.Format("Mon Jan 2 2006"),
			Index:   idx,
			Offset:  host.offset,
			InRange: idx >= 0 && idx < hc.ItemCount,
		}
		if !opts.Horizontal {
			row.WeekRow = dateutil.WeekIndex(t, opts.FirstDay)
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}

// Do computes and prints the report.
func (o *Offsets) Do(_ context.Context) error {
	report, err := o.Compute()
	if err != nil {
		return err
	}
	out := o.Out
	if out == nil {
		out = color.Output
	}

	switch o.Output {
	case "json":
		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case "":
		return o.table(out, report)
	default:
		return fmt.Errorf("offsets: unknown output %q, want json or yaml", o.Output)
	}
}

func (o *Offsets) table(out io.Writer, report *Report) error {
	if !colorful(out) {
		color.NoColor = true
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	warn := color.New(color.FgYellow)

	_, _ = fmt.Fprintf(out, "%s %s  %s\n",
		bold.Sprint("current"), report.Current,
		faint.Sprintf("(%d months, start at %d, extent %d)", report.ItemCount, report.InitialIndex, report.Extent))

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Target"), bold.Sprint("Kind"), bold.Sprint("Label"), bold.Sprint("Index"), bold.Sprint("Week"), bold.Sprint("Offset"))
	for _, r := range report.Rows {
		index := fmt.Sprint(r.Index)
		if !r.InRange {
			index = warn.Sprint(index + " (out of range)")
		}
		week := "-"
		if r.Kind == KindDay {
			week = fmt.Sprint(r.WeekRow)
		}
		tbl.AddRow(r.Target, r.Kind, r.Label, index, week, r.Offset)
	}
	tbl.RightAlign(3)
	tbl.RightAlign(5)

	_, err := fmt.Fprintln(out, tbl)
	return err
}

// colorful reports whether out is a terminal that takes colors.
func colorful(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.NewOutput(f).Profile != termenv.Ascii
}
