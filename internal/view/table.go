package view

// Column defines one column of the generic list table. Every list page
// renders through the same partial driven by these definitions.
type Column struct {
	Key   string
	Label string
	Align string
}

// Cell is one rendered table cell. Tone, when set, renders the cell text as
// a status badge.
type Cell struct {
	Text string
	Tone string
	Href string
}

// Row is a rendered table row keyed by column key.
type Row map[string]Cell

// Table couples column definitions with pre-rendered rows.
type Table struct {
	Columns []Column
	Rows    []Row
	Empty   string
}

// TextCell is shorthand for a plain cell.
func TextCell(text string) Cell {
	return Cell{Text: text}
}

// BadgeCell renders text as a toned status badge.
func BadgeCell(text, tone string) Cell {
	return Cell{Text: text, Tone: tone}
}

// LinkCell renders text as a link.
func LinkCell(text, href string) Cell {
	return Cell{Text: text, Href: href}
}
