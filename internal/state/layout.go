package state

// Pane is a block of screen rows. The pane title sits on row Top-1.
type Pane struct {
	Top  int
	Rows int
}

// Contains reports whether screen row y falls inside the pane body.
func (p Pane) Contains(y int) bool {
	return y >= p.Top && y < p.Top+p.Rows
}

// Layout places the header, the three panes and the two bottom lines.
type Layout struct {
	Width        int
	ContentX     int
	ContentWidth int
	Pattern      Pane
	Subject      Pane
	Result       Pane
	StatusY      int
	FooterY      int
}

const (
	maxPatternRows = 3
	maxResultRows  = 10
	// header + three pane titles + status + footer
	fixedRows = 6
)

// ComputeLayout splits a width x height screen. Panes shrink to zero rows on
// tiny screens rather than overlapping.
func ComputeLayout(width, height int) Layout {
	l := Layout{Width: width, ContentX: 1}
	l.ContentWidth = width - 2
	if l.ContentWidth < 1 {
		l.ContentWidth = 1
	}

	avail := height - fixedRows
	if avail < 0 {
		avail = 0
	}

	patternRows := 1
	if avail >= 12 {
		patternRows = maxPatternRows
	} else if avail >= 8 {
		patternRows = 2
	}
	if patternRows > avail {
		patternRows = avail
	}

	resultRows := (avail - patternRows) * 2 / 5
	if resultRows > maxResultRows {
		resultRows = maxResultRows
	}
	if resultRows < 1 && avail-patternRows >= 2 {
		resultRows = 1
	}
	subjectRows := avail - patternRows - resultRows
	if subjectRows < 0 {
		subjectRows = 0
	}

	l.Pattern = Pane{Top: 2, Rows: patternRows}
	l.Subject = Pane{Top: l.Pattern.Top + patternRows + 1, Rows: subjectRows}
	l.Result = Pane{Top: l.Subject.Top + subjectRows + 1, Rows: resultRows}
	l.StatusY = height - 2
	l.FooterY = height - 1
	return l
}

// Layout returns the layout for the current screen size.
func (s *AppState) Layout() Layout {
	return ComputeLayout(s.ScreenWidth, s.ScreenHeight)
}

// PaneFor returns the pane showing focus f.
func (l Layout) PaneFor(f Focus) Pane {
	switch f {
	case FocusSubject:
		return l.Subject
	case FocusResult:
		return l.Result
	default:
		return l.Pattern
	}
}
