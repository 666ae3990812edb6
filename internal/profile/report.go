package profile

import (
	"sort"
	"strconv"
	"strings"

	"github.com/KaramelBytes/colstat-cli/internal/stats"
)

// Mode names the kind of profile a report holds.
type Mode string

const (
	ModeNumber      Mode = "number"
	ModeGroupNumber Mode = "group-number"
	ModeGroupString Mode = "group-string"
	ModeCSV         Mode = "csv"
)

// Row is one output line: the group key components followed by the
// formatted statistics.
type Row struct {
	Group []string
	Stats []string
}

// Report is a sorted, pre-formatted snapshot handed to a renderer. Titles are
// the human readable column headers, Fields the machine readable names.
type Report struct {
	Mode   Mode
	Titles []string
	Fields []string
	Rows   []Row
}

// GroupWidth is the number of group columns preceding the stats.
func (r *Report) GroupWidth() int {
	w := 0
	for _, row := range r.Rows {
		if len(row.Group) > w {
			w = len(row.Group)
		}
	}
	return w
}

// pad right-pads group tuples with empty cells so every row has the same width.
func (r *Report) pad() {
	w := r.GroupWidth()
	for i := range r.Rows {
		for len(r.Rows[i].Group) < w {
			r.Rows[i].Group = append(r.Rows[i].Group, "")
		}
	}
}

var (
	numberTitles = []string{"Count", "Empty", "Error", "Min", "Max", "Sum", "Mean", "StdDev"}
	numberFields = []string{"count", "empty", "error", "min", "max", "sum", "mean", "stddev"}

	stringTitles = []string{"Count", "Empty", "Error", "Cardinality", "Min", "Max", "Length Min", "Length Max", "Length Mean", "Length StdDev"}
	stringFields = []string{"count", "empty", "error", "cardinality", "min", "max", "length_min", "length_max", "length_mean", "length_stddev"}

	csvTitles = []string{
		"Count", "Cardinality", "String Empty", "String Min", "String Max",
		"Number Empty", "Number Error", "Number Min", "Number Max", "Number Mean", "Number StdDev",
		"Length Min", "Length Max", "Length Mean", "Length StdDev",
	}
	csvFields = []string{
		"count", "cardinality", "string_empty", "string_min", "string_max",
		"number_empty", "number_error", "number_min", "number_max", "number_mean", "number_stddev",
		"length_min", "length_max", "length_mean", "length_stddev",
	}
)

func formatFloat(x float64, precision int) string {
	return strconv.FormatFloat(x, 'f', precision, 64)
}

func formatCount(n uint64) string { return strconv.FormatUint(n, 10) }

func formatOptFloat(x float64, ok bool, precision int) string {
	if !ok {
		x = 0
	}
	return formatFloat(x, precision)
}

func formatOptString(s string, ok bool) string {
	if !ok {
		return ""
	}
	return s
}

func formatCardinality(s *stats.StringStats) string {
	switch {
	case !s.CardinalityEnabled():
		return "disabled"
	case s.IsCardinalityCapped():
		return formatCount(s.Cardinality()) + "+"
	default:
		return formatCount(s.Cardinality())
	}
}

func numberStats(s *stats.NumberStats, precision int) []string {
	mn, okMin := s.Min()
	mx, okMax := s.Max()
	return []string{
		formatCount(s.Count()),
		formatCount(s.EmptyCount()),
		formatCount(s.ErrorCount()),
		formatOptFloat(mn, okMin, precision),
		formatOptFloat(mx, okMax, precision),
		strconv.FormatFloat(s.Sum(), 'e', -1, 64),
		formatFloat(s.Mean(), precision),
		formatFloat(s.StdDev(), precision),
	}
}

// lengthStats renders min/max as integers and mean/stddev at precision.
func lengthStats(s *stats.NumberStats, precision int) []string {
	mn, okMin := s.Min()
	mx, okMax := s.Max()
	return []string{
		formatOptFloat(mn, okMin, 0),
		formatOptFloat(mx, okMax, 0),
		formatFloat(s.Mean(), precision),
		formatFloat(s.StdDev(), precision),
	}
}

// NumberReport renders the single series of number mode.
func NumberReport(s *stats.NumberStats, precision int) *Report {
	return &Report{
		Mode:   ModeNumber,
		Titles: numberTitles,
		Fields: numberFields,
		Rows:   []Row{{Stats: numberStats(s, precision)}},
	}
}

func splitKey(key string, delim rune) []string {
	if delim == 0 {
		delim = ','
	}
	return strings.Split(key, string(delim))
}

// GroupNumberReport renders one row per group in descending key order.
func GroupNumberReport(t *GroupTable[*stats.NumberStats], delim rune, precision int) *Report {
	rep := &Report{Mode: ModeGroupNumber, Titles: numberTitles, Fields: numberFields}
	for _, k := range t.Keys() {
		s, _ := t.Lookup(k)
		rep.Rows = append(rep.Rows, Row{Group: splitKey(k, delim), Stats: numberStats(s, precision)})
	}
	rep.pad()
	return rep
}

// GroupStringReport renders one row per group in descending key order.
func GroupStringReport(t *GroupTable[*StringGroup], delim rune, precision int) *Report {
	rep := &Report{Mode: ModeGroupString, Titles: stringTitles, Fields: stringFields}
	for _, k := range t.Keys() {
		g, _ := t.Lookup(k)
		mn, okMin := g.Values.Min()
		mx, okMax := g.Values.Max()
		row := []string{
			formatCount(g.Values.Count()),
			formatCount(g.Values.EmptyCount()),
			formatCount(g.Values.ErrorCount()),
			formatCardinality(g.Values),
			formatOptString(mn, okMin),
			formatOptString(mx, okMax),
		}
		row = append(row, lengthStats(g.Lengths, precision)...)
		rep.Rows = append(rep.Rows, Row{Group: splitKey(k, delim), Stats: row})
	}
	rep.pad()
	return rep
}

// ColumnReport renders one row per CSV column, descending by header name.
// Columns sharing a header keep their relative order.
func ColumnReport(t *ColumnTable, precision int) *Report {
	cols := make([]*Column, len(t.Columns))
	copy(cols, t.Columns)
	sort.SliceStable(cols, func(i, j int) bool { return cols[i].Header > cols[j].Header })

	rep := &Report{Mode: ModeCSV, Titles: csvTitles, Fields: csvFields}
	for _, c := range cols {
		smin, okSMin := c.Strings.Min()
		smax, okSMax := c.Strings.Max()
		nmin, okNMin := c.Numbers.Min()
		nmax, okNMax := c.Numbers.Max()
		row := []string{
			formatCount(c.Strings.Count()),
			formatCardinality(c.Strings),
			formatCount(c.Strings.EmptyCount()),
			formatOptString(smin, okSMin),
			formatOptString(smax, okSMax),
			formatCount(c.Numbers.EmptyCount()),
			formatCount(c.Numbers.ErrorCount()),
			formatOptFloat(nmin, okNMin, precision),
			formatOptFloat(nmax, okNMax, precision),
			formatFloat(c.Numbers.Mean(), precision),
			formatFloat(c.Numbers.StdDev(), precision),
		}
		row = append(row, lengthStats(c.Lengths, precision)...)
		rep.Rows = append(rep.Rows, Row{Group: []string{c.Header}, Stats: row})
	}
	return rep
}
