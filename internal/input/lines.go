package input

import (
	"bufio"
	"fmt"
	"io"
)

// DefaultMaxLineSize bounds a single line when the caller gives no limit.
const DefaultMaxLineSize = 16 << 20

// Lines yields newline-delimited lines of r without their terminator. A
// trailing "\r" is dropped and a final line without newline is still
// returned. It counts lines and bytes for progress reporting.
type Lines struct {
	sc    *bufio.Scanner
	line  string
	count int64
	bytes int64
	err   error
}

// NewLines wraps r; maxLine <= 0 selects DefaultMaxLineSize.
func NewLines(r io.Reader, maxLine int) *Lines {
	if maxLine <= 0 {
		maxLine = DefaultMaxLineSize
	}
	sc := bufio.NewScanner(r)
	initial := 64 << 10
	if initial > maxLine {
		initial = maxLine
	}
	sc.Buffer(make([]byte, 0, initial), maxLine)
	return &Lines{sc: sc}
}

// Next advances to the next line. It returns false at end of input or on
// error; check Err afterwards.
func (l *Lines) Next() bool {
	if l.err != nil {
		return false
	}
	if !l.sc.Scan() {
		if err := l.sc.Err(); err != nil {
			l.err = fmt.Errorf("read line %d: %w", l.count+1, err)
		}
		return false
	}
	l.line = l.sc.Text()
	l.count++
	l.bytes += int64(len(l.line)) + 1
	return true
}

// Text returns the current line.
func (l *Lines) Text() string { return l.line }

// Err returns the first read error, nil at clean end of input.
func (l *Lines) Err() error { return l.err }

// Count is the number of lines read so far.
func (l *Lines) Count() int64 { return l.count }

// Bytes approximates the bytes consumed, counting one terminator per line.
func (l *Lines) Bytes() int64 { return l.bytes }
