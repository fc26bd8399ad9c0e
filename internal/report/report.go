package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"gapscan/internal/analysis"
	"gapscan/internal/series"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// ErrNoClose is returned when the series has no last close to measure against.
var ErrNoClose = errors.New("report: no close price")

// Options controls which columns a report shows and how it is stamped.
type Options struct {
	Ticker       string
	FastSMA      int
	SlowSMA      int
	CrossFastSMA int // zero pair means FastSMA/SlowSMA
	CrossSlowSMA int
	Location     *time.Location // nil means UTC
	Now          time.Time      // zero means time.Now()
}

// Line is one price on the report with its distance from the close.
type Line struct {
	Label string
	Value decimal.Decimal // rounded to 2 dp
	Pct   decimal.Decimal // |value/close - 1| * 100, rounded to 2 dp
	IsRef bool            // the close itself; no distance shown
}

// Report is a price ladder for one instrument, highest value first.
type Report struct {
	Ticker string
	Time   time.Time
	Lines  []Line
	Cross  analysis.CrossSignal
}

// Build collects support/resistance, close, the two SMAs and all open gaps of
// res into a report. Missing levels or SMAs are left out, never an error.
func Build(res *analysis.Result, opts Options) (Report, error) {
	closeF, ok := res.Last(series.ColClose)
	if !ok {
		return Report{}, ErrNoClose
	}
	closeD := round2(closeF)

	var lines []Line
	add := func(label string, v float64) {
		d := round2(v)
		l := Line{Label: label, Value: d}
		if !closeD.IsZero() {
			l.Pct = d.Div(closeD).Sub(one).Mul(hundred).Abs().Round(2)
		}
		lines = append(lines, l)
	}

	if v, ok := res.Resistance(); ok {
		add("Resistance", v)
	}
	lines = append(lines, Line{Label: "Close", Value: closeD, IsRef: true})
	if v, ok := res.Support(); ok {
		add("Support", v)
	}
	for _, w := range []int{opts.FastSMA, opts.SlowSMA} {
		if w <= 0 {
			continue
		}
		if v, ok := res.Last(series.SMAColumn(w)); ok {
			add(fmt.Sprintf("SMA%d", w), v)
		}
	}
	open := res.OpenGaps()
	for i, g := range open {
		add(fmt.Sprintf("Gap %d", len(open)-i), g.From)
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Value.GreaterThan(lines[j].Value) })

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	fast, slow := opts.CrossFastSMA, opts.CrossSlowSMA
	if fast == 0 && slow == 0 {
		fast, slow = opts.FastSMA, opts.SlowSMA
	}
	return Report{
		Ticker: opts.Ticker,
		Time:   now.In(loc),
		Lines:  lines,
		Cross:  analysis.Cross(res.Series(), fast, slow),
	}, nil
}

// String renders the report as a chat-ready message.
func (r Report) String() string {
	var b strings.Builder
	if r.Ticker != "" {
		b.WriteString(r.Ticker)
		b.WriteString(" ")
	}
	b.WriteString(r.Time.Format("02-01-2006 15:04"))
	for _, l := range r.Lines {
		b.WriteString("\n")
		b.WriteString(l.Label)
		b.WriteString(": ")
		b.WriteString(FormatNumber(l.Value))
		if !l.IsRef {
			b.WriteString(" (")
			b.WriteString(l.Pct.StringFixed(2))
			b.WriteString("%)")
		}
	}
	b.WriteString("\nCross: ")
	b.WriteString(r.Cross.String())
	return b.String()
}

func round2(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// FormatNumber prints d with two decimals and English thousands separators, e.g. 6,070.00.
func FormatNumber(d decimal.Decimal) string {
	return message.NewPrinter(language.English).Sprintf("%.2f", d.Round(2).InexactFloat64())
}
