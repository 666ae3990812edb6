package profile

import (
	"sort"

	"github.com/KaramelBytes/colstat-cli/internal/stats"
)

// InvalidKey is the sentinel group that absorbs lines without a delimiter.
const InvalidKey = "<INVALID>"

// GroupTable maps raw group keys to accumulators. Entries are created on
// first use and never removed. A table belongs to a single run.
type GroupTable[T any] struct {
	entries  map[string]T
	newEntry func() T
}

// NewGroupTable returns an empty table that builds entries with newEntry.
func NewGroupTable[T any](newEntry func() T) *GroupTable[T] {
	return &GroupTable[T]{entries: make(map[string]T), newEntry: newEntry}
}

// Get returns the entry for key, creating it if needed.
func (t *GroupTable[T]) Get(key string) T {
	e, ok := t.entries[key]
	if !ok {
		e = t.newEntry()
		t.entries[key] = e
	}
	return e
}

// Lookup returns the entry for key without creating it.
func (t *GroupTable[T]) Lookup(key string) (T, bool) {
	e, ok := t.entries[key]
	return e, ok
}

func (t *GroupTable[T]) Len() int { return len(t.entries) }

// Keys returns all keys in descending byte order.
func (t *GroupTable[T]) Keys() []string {
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}

// StringGroup profiles the last field of grouped lines as text.
type StringGroup struct {
	Values  *stats.StringStats
	Lengths *stats.NumberStats
}

func newStringGroup(o stats.CardinalityOptions) *StringGroup {
	return &StringGroup{Values: stats.NewStringStats(o), Lengths: stats.NewNumberStats()}
}

// Column profiles one CSV column as text, as a number and by length.
type Column struct {
	Header  string
	Strings *stats.StringStats
	Numbers *stats.NumberStats
	Lengths *stats.NumberStats
}

// ColumnTable holds one Column per header, in header order. Headers need not
// be unique.
type ColumnTable struct {
	Columns []*Column
}

func newColumnTable(headers []string, o stats.CardinalityOptions) *ColumnTable {
	cols := make([]*Column, len(headers))
	for i, h := range headers {
		cols[i] = &Column{
			Header:  h,
			Strings: stats.NewStringStats(o),
			Numbers: stats.NewNumberStats(),
			Lengths: stats.NewNumberStats(),
		}
	}
	return &ColumnTable{Columns: cols}
}

// Headers returns the column names in header order.
func (t *ColumnTable) Headers() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Header
	}
	return out
}
