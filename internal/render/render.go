// Package render prints profile reports as a bordered table or as
// delimited text.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/colstat-cli/internal/profile"
	"github.com/olekukonko/tablewriter"
)

// TableOptions tweaks table output.
type TableOptions struct {
	// Bold emits ANSI bold for the title row; set it only for terminals.
	Bold bool
}

// Table writes rep as a bordered table. Group cells are left aligned, stat
// cells right aligned.
func Table(w io.Writer, rep *profile.Report, opt TableOptions) error {
	width := rep.GroupWidth()
	header := make([]string, 0, width+len(rep.Titles))
	align := make([]int, 0, width+len(rep.Titles))
	for i := 0; i < width; i++ {
		header = append(header, "")
		align = append(align, tablewriter.ALIGN_LEFT)
	}
	for _, t := range rep.Titles {
		header = append(header, t)
		align = append(align, tablewriter.ALIGN_RIGHT)
	}

	tbl := tablewriter.NewWriter(w)
	tbl.SetAutoFormatHeaders(false)
	tbl.SetAutoWrapText(false)
	tbl.SetBorder(true)
	tbl.SetHeader(header)
	tbl.SetHeaderAlignment(tablewriter.ALIGN_RIGHT)
	tbl.SetColumnAlignment(align)
	if opt.Bold {
		colors := make([]tablewriter.Colors, len(header))
		for i := range colors {
			colors[i] = tablewriter.Colors{tablewriter.Bold}
		}
		tbl.SetHeaderColor(colors...)
	}
	for _, row := range rep.Rows {
		cells := make([]string, 0, len(header))
		cells = append(cells, row.Group...)
		cells = append(cells, row.Stats...)
		tbl.Append(cells)
	}
	tbl.Render()
	return nil
}

// Delimited writes rep as flat text. The header row starts with one
// delimiter per group column so that field names line up with the stats.
func Delimited(w io.Writer, rep *profile.Report, delim rune) error {
	d := string(delim)
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s%s\n", strings.Repeat(d, rep.GroupWidth()), strings.Join(rep.Fields, d)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rep.Rows {
		line := strings.Join(row.Stats, d)
		if len(row.Group) > 0 {
			line = strings.Join(row.Group, d) + d + line
		}
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
