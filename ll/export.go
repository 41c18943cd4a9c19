package ll

import (
	"fmt"
	"html"
	"io"
	"strings"
	"text/tabwriter"
)

// Dump writes a human readable form of the table to w: one row per
// non-terminal, one column per lookahead, cells containing rule numbers.
func (t *Table) Dump(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := []string{""}
	for _, la := range t.lookaheads {
		header = append(header, la.String())
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range t.Rows() {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// Rows returns the table as rows of strings, one row per non-terminal. The
// first column holds the non-terminal, the following columns the rule numbers
// for the lookaheads as returned by Lookaheads(). Empty cells are empty strings.
func (t *Table) Rows() [][]string {
	rows := make([][]string, 0, len(t.g.nonterms))
	for i, A := range t.g.nonterms {
		row := make([]string, 1, len(t.lookaheads)+1)
		row[0] = A.String()
		for j := range t.lookaheads {
			if v := t.matrix.Value(i, j); v != t.matrix.NullValue() {
				row = append(row, fmt.Sprintf("%d", v))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// TableAsHTML exports a parse table in HTML-format, followed by the list of
// rules the table cells refer to.
func TableAsHTML(t *Table, w io.Writer) {
	if t == nil {
		tracer().Errorf("parse table not yet created, cannot export to HTML")
		return
	}
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("LL(1) table for %s, %d entries<p>", html.EscapeString(t.g.Name), t.Size()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	for _, la := range t.lookaheads {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", html.EscapeString(la.String())))
	}
	io.WriteString(w, "</tr>\n")
	for _, row := range t.Rows() {
		io.WriteString(w, fmt.Sprintf("<tr><td>%s</td>\n", html.EscapeString(row[0])))
		for _, td := range row[1:] {
			if td == "" {
				td = "&nbsp;"
			}
			io.WriteString(w, "<td>")
			io.WriteString(w, td)
			io.WriteString(w, "</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table><p><ol start=0>\n")
	for _, r := range t.g.rules {
		io.WriteString(w, fmt.Sprintf("<li>%s</li>\n", html.EscapeString(r.String())))
	}
	io.WriteString(w, "</ol></body></html>\n")
}
