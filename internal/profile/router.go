// Package profile routes a line stream into per-group and per-column
// accumulators and turns them into sorted, formatted report rows.
package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KaramelBytes/colstat-cli/internal/stats"
)

// ErrMissingHeader is returned by ProfileColumns when the stream has no lines.
var ErrMissingHeader = errors.New("missing header: csv input has no lines")

// Options controls routing and classification.
type Options struct {
	// Delimiter separates fields. Defaults to ','.
	Delimiter rune
	// ZeroAsEmpty counts parsed zeros as empty values.
	ZeroAsEmpty bool
	// Cardinality configures distinct counting for string accumulators.
	Cardinality stats.CardinalityOptions
}

// DefaultOptions returns comma-delimited routing with exact cardinality.
func DefaultOptions() Options {
	return Options{
		Delimiter:   ',',
		Cardinality: stats.DefaultCardinalityOptions(),
	}
}

func (o Options) delimiter() string {
	if o.Delimiter == 0 {
		return ","
	}
	return string(o.Delimiter)
}

// LineSource is a lazy sequence of lines, such as *input.Lines.
type LineSource interface {
	Next() bool
	Text() string
	Err() error
}

// ProfileNumbers treats every line as one numeric field.
func ProfileNumbers(src LineSource, opt Options) (*stats.NumberStats, error) {
	s := stats.NewNumberStats()
	for src.Next() {
		s.Observe(stats.Classify(src.Text(), opt.ZeroAsEmpty))
	}
	if err := src.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// splitLast splits at the last delimiter. ok is false when there is none.
func splitLast(line, delim string) (group, value string, ok bool) {
	i := strings.LastIndex(line, delim)
	if i < 0 {
		return "", "", false
	}
	return line[:i], line[i+len(delim):], true
}

// GroupNumbers keys each line by everything before its last delimiter and
// profiles the last field as a number.
func GroupNumbers(src LineSource, opt Options) (*GroupTable[*stats.NumberStats], error) {
	delim := opt.delimiter()
	t := NewGroupTable(stats.NewNumberStats)
	for src.Next() {
		group, value, ok := splitLast(src.Text(), delim)
		if !ok {
			t.Get(InvalidKey).AddError()
			continue
		}
		t.Get(group).Observe(stats.Classify(value, opt.ZeroAsEmpty))
	}
	if err := src.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// GroupStrings keys lines like GroupNumbers and profiles the last field as
// text and by length.
func GroupStrings(src LineSource, opt Options) (*GroupTable[*StringGroup], error) {
	delim := opt.delimiter()
	t := NewGroupTable(func() *StringGroup { return newStringGroup(opt.Cardinality) })
	for src.Next() {
		group, value, ok := splitLast(src.Text(), delim)
		if !ok {
			t.Get(InvalidKey).Values.AddError()
			continue
		}
		g := t.Get(group)
		if value == "" {
			g.Values.AddEmpty()
			g.Lengths.AddEmpty()
			continue
		}
		g.Values.Add(value)
		g.Lengths.Add(float64(len(value)))
	}
	if err := src.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

// ProfileColumns reads a header line and profiles every following line
// positionally. Short rows leave trailing columns untouched; extra fields
// are dropped.
func ProfileColumns(src LineSource, opt Options) (*ColumnTable, error) {
	delim := opt.delimiter()
	if !src.Next() {
		if err := src.Err(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		return nil, ErrMissingHeader
	}
	t := newColumnTable(strings.Split(src.Text(), delim), opt.Cardinality)
	for src.Next() {
		fields := strings.Split(src.Text(), delim)
		for i, c := range t.Columns {
			if i >= len(fields) {
				break
			}
			observeField(c, fields[i], opt.ZeroAsEmpty)
		}
	}
	if err := src.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

func observeField(c *Column, v string, zeroAsEmpty bool) {
	if v == "" {
		c.Strings.AddEmpty()
		c.Numbers.AddEmpty()
		c.Lengths.AddEmpty()
		return
	}
	c.Strings.Add(v)
	c.Lengths.Add(float64(len(v)))
	c.Numbers.Observe(stats.Classify(v, zeroAsEmpty))
}
