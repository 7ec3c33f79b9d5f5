package textutil

import "github.com/mattn/go-runewidth"

// DefaultTabWidth is the tab stop used when none is configured.
const DefaultTabWidth = 4

// Row is one visual row of wrapped text covering runes [Start, End).
// A newline ends a row and belongs to neither it nor the next one.
type Row struct {
	Start int
	End   int
}

// RuneColumns reports how many cells ru occupies when drawn at column col.
func RuneColumns(ru rune, col, tabWidth int) int {
	if ru == '\t' {
		if tabWidth <= 0 {
			tabWidth = DefaultTabWidth
		}
		return tabWidth - (col % tabWidth)
	}
	if ru < 0x20 || ru == 0x7f || isFormattingRune(ru) {
		return 1
	}
	w := runewidth.RuneWidth(ru)
	if w <= 0 {
		w = 1
	}
	return w
}

// CellRune returns the rune drawn for ru inside an editing pane. Control and
// formatting runes collapse to a single visible placeholder so that every
// rune keeps exactly one caret stop.
func CellRune(ru rune) rune {
	switch {
	case ru == '\t':
		return ' '
	case ru < 0x20 || ru == 0x7f:
		return '?'
	case isFormattingRune(ru):
		return '·'
	default:
		return ru
	}
}

// WrapRows splits runes into rows no wider than width cells. It always
// returns at least one row; text ending in a newline gets an empty last row.
func WrapRows(runes []rune, width, tabWidth int) []Row {
	if width < 1 {
		width = 1
	}
	rows := make([]Row, 0, len(runes)/width+1)
	start, col := 0, 0
	for i, ru := range runes {
		if ru == '\n' {
			rows = append(rows, Row{Start: start, End: i})
			start, col = i+1, 0
			continue
		}
		w := RuneColumns(ru, col, tabWidth)
		if col > 0 && col+w > width {
			rows = append(rows, Row{Start: start, End: i})
			start, col = i, 0
			w = RuneColumns(ru, col, tabWidth)
		}
		col += w
	}
	return append(rows, Row{Start: start, End: len(runes)})
}

// RowOf returns the index of the row holding offset. At a soft wrap the
// offset belongs to the later row.
func RowOf(rows []Row, offset int) int {
	for i := len(rows) - 1; i > 0; i-- {
		if rows[i].Start <= offset {
			return i
		}
	}
	return 0
}

// ColumnOf returns the cell column of offset within row.
func ColumnOf(runes []rune, row Row, offset, tabWidth int) int {
	col := 0
	for i := row.Start; i < offset && i < row.End; i++ {
		col += RuneColumns(runes[i], col, tabWidth)
	}
	return col
}

// OffsetAt returns the rune offset nearest to cell column col within row.
func OffsetAt(runes []rune, row Row, col, tabWidth int) int {
	x := 0
	for i := row.Start; i < row.End; i++ {
		w := RuneColumns(runes[i], x, tabWidth)
		if col < x+w {
			if col-x >= (w+1)/2 && w > 1 {
				return i + 1
			}
			return i
		}
		x += w
	}
	return row.End
}
