// Package markdown assembles generated reference documents: a fixed header,
// introductory paragraphs, sections holding one table each, and footer
// links. Rendering is deterministic so regenerated files only change when
// their sources do.
package markdown

import (
	"strings"
)

// Document is one generated Markdown file
type Document struct {
	Title     string
	Generator string // command that regenerates the document
	Intro     []string
	Sections  []Section
	Footer    []string
}

// Section is a heading with optional paragraphs, a table, nested sections
// and footer lines, rendered in that order
type Section struct {
	Level    int // heading level, 2 when zero
	Title    string
	Intro    []string
	Table    *Table
	Children []Section
	Footer   []string
}

// Table is a pipe table. Cells are escaped when rendered.
type Table struct {
	Headers []string
	Rows    [][]string
}

// AddRow appends a row
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render returns the document text. Every block is followed by a blank line
// and the text ends with a newline.
func (d *Document) Render() string {
	var lines []string
	lines = append(lines,
		"# "+d.Title,
		"",
		"<!-- Auto-generated from source code -->",
		"<!-- Regenerate: "+d.Generator+" -->",
		"",
	)
	for _, p := range d.Intro {
		lines = append(lines, p, "")
	}
	for _, s := range d.Sections {
		lines = s.appendLines(lines)
	}
	for _, f := range d.Footer {
		lines = append(lines, f, "")
	}
	return strings.Join(lines, "\n")
}

func (s *Section) appendLines(lines []string) []string {
	level := s.Level
	if level == 0 {
		level = 2
	}
	lines = append(lines, strings.Repeat("#", level)+" "+s.Title, "")
	for _, p := range s.Intro {
		lines = append(lines, p, "")
	}
	if s.Table != nil {
		lines = append(lines, s.Table.lines()...)
		lines = append(lines, "")
	}
	for i := range s.Children {
		lines = s.Children[i].appendLines(lines)
	}
	for _, f := range s.Footer {
		lines = append(lines, f, "")
	}
	return lines
}

func (t *Table) lines() []string {
	out := make([]string, 0, len(t.Rows)+2)
	out = append(out, row(t.Headers, false))

	seps := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		seps[i] = strings.Repeat("-", len(h)+2)
	}
	out = append(out, "|"+strings.Join(seps, "|")+"|")

	for _, r := range t.Rows {
		out = append(out, row(r, true))
	}
	return out
}

func row(cells []string, escape bool) string {
	var b strings.Builder
	b.WriteString("|")
	for _, c := range cells {
		if escape {
			c = Escape(c)
		}
		b.WriteString(" ")
		b.WriteString(c)
		b.WriteString(" |")
	}
	return b.String()
}

var cellReplacer = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

// Escape makes text safe for a single table cell
func Escape(s string) string {
	return cellReplacer.Replace(s)
}

// Code wraps s in backticks
func Code(s string) string {
	return "`" + s + "`"
}

// Quote wraps s in double quotes
func Quote(s string) string {
	return `"` + s + `"`
}

// SourceLink renders the footer link to a source file, relative to a
// documentation repository checked out next to its sources
func SourceLink(rel string) string {
	return "[Source: " + rel + "](../../" + rel + ")"
}
