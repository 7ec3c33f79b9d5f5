package render

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/regexfu/internal/match"
	"github.com/kk-code-lab/regexfu/internal/session"
	statepkg "github.com/kk-code-lab/regexfu/internal/state"
	"github.com/kk-code-lab/regexfu/internal/textutil"
)

const appTitle = "Regex-Fu!"

// Renderer handles all UI rendering
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	version          string
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// SetTheme replaces the colour theme.
func (r *Renderer) SetTheme(theme ColorTheme) {
	r.theme = theme
}

// SetVersion sets the version shown next to the title.
func (r *Renderer) SetVersion(version string) {
	r.version = version
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()
	r.screen.HideCursor()

	w, h := r.screen.Size()
	if state == nil || w <= 0 || h <= 0 {
		r.screen.Show()
		return
	}

	if state.HelpVisible {
		r.drawHelpOverlay(state, w, h)
		r.screen.Show()
		return
	}

	layout := statepkg.ComputeLayout(w, h)

	r.drawHeader(state, w)
	for f := statepkg.FocusPattern; f <= statepkg.FocusResult; f++ {
		r.drawPaneTitle(state, layout, f)
		r.drawPane(state, layout, f)
	}
	r.drawStatusLine(state, layout)
	r.drawFooter(state, layout)

	r.screen.Show()
}

// drawHeader renders the title, engine, modifier toggles and history position
func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	r.fillLine(0, w, 0, headerStyle)

	title := appTitle
	if r.version != "" {
		title += " " + r.version
	}
	x := r.drawTextLine(0, 0, w, " "+title+" ", headerStyle.Bold(true))
	x = r.drawTextLine(x, 0, w-x, state.Session.EngineName()+"  ", headerStyle)

	flags := state.Session.Flags()
	for _, m := range match.Modifiers {
		style := headerStyle.Foreground(r.theme.FlagOffFg)
		if flags.Has(m.Flag) {
			style = headerStyle.Background(r.theme.FlagOnBg).Foreground(r.theme.FlagOnFg).Bold(true)
		}
		x = r.drawTextLine(x, 0, w-x, "["+string(m.Letter)+"]", style)
	}

	cur, total := state.HistoryPosition()
	right := fmt.Sprintf(" history %d/%d ", cur, total)
	rightX := w - r.measureTextWidth(right)
	if rightX > x {
		r.drawTextLine(rightX, 0, w-rightX, right, headerStyle)
	}
}

func (r *Renderer) paneTitle(state *statepkg.AppState, f statepkg.Focus) string {
	switch f {
	case statepkg.FocusPattern:
		return "Pattern"
	case statepkg.FocusSubject:
		if state.SubjectSource != "" {
			title := "Subject · " + state.SubjectSource
			if state.WatchActive {
				title += " (watching)"
			}
			return title
		}
		return "Subject"
	default:
		if n := state.Session.MatchCount(); n > 0 {
			return fmt.Sprintf("Result · %d", n)
		}
		return "Result"
	}
}

func (r *Renderer) drawPaneTitle(state *statepkg.AppState, layout statepkg.Layout, f statepkg.Focus) {
	pane := layout.PaneFor(f)
	y := pane.Top - 1
	if y <= 0 || y >= layout.StatusY {
		return
	}
	base := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.TitleFg)
	style := base
	if state.Focus == f {
		style = tcell.StyleDefault.Background(r.theme.FocusTitleBg).Foreground(r.theme.FocusTitleFg).Bold(true)
	}
	text := r.truncateTextToWidth(" "+r.paneTitle(state, f)+" ", layout.Width)
	x := r.drawTextLine(0, y, layout.Width, text, style)
	for ; x < layout.Width; x++ {
		r.screen.SetContent(x, y, '─', nil, base)
	}
}

var paneHints = map[statepkg.Focus]string{
	statepkg.FocusPattern: "type a regular expression, Enter to match",
	statepkg.FocusSubject: "type or paste the text to search",
}

// drawPane draws the wrapped rows of a buffer with its highlights and, for
// the focused input pane, places the terminal cursor on the caret.
func (r *Renderer) drawPane(state *statepkg.AppState, layout statepkg.Layout, f statepkg.Focus) {
	pane := layout.PaneFor(f)
	if pane.Rows <= 0 {
		return
	}
	buf := state.Buffer(f)
	maxX := layout.ContentX + layout.ContentWidth

	base := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	if f == statepkg.FocusResult && state.Session.ResultIsError() {
		base = base.Foreground(r.theme.Error)
	}

	if buf.Empty() {
		if hint := paneHints[f]; hint != "" {
			hintStyle := base.Foreground(r.theme.HintFg).Italic(true)
			r.drawTextLine(layout.ContentX, pane.Top, layout.ContentWidth, r.truncateTextToWidth(hint, layout.ContentWidth), hintStyle)
		}
	}

	runes := buf.Runes()
	rows := textutil.WrapRows(runes, layout.ContentWidth, state.TabWidth)
	scroll := state.Scroll(f)
	marks := buf.Highlights()

	for i := 0; i < pane.Rows; i++ {
		ri := scroll + i
		if ri >= len(rows) {
			break
		}
		row := rows[ri]
		y := pane.Top + i
		x := layout.ContentX
		col := 0
		for off := row.Start; off < row.End; off++ {
			ru := runes[off]
			w := textutil.RuneColumns(ru, col, state.TabWidth)
			style := base
			if kind, ok := marks.KindAt(off); ok {
				style = r.theme.highlightStyle(base, kind)
			}
			x = r.drawCell(x, y, maxX, textutil.CellRune(ru), w, style)
			col += w
		}
	}

	if f != state.Focus || f == statepkg.FocusResult {
		return
	}
	caret := buf.Caret()
	caretRow := textutil.RowOf(rows, caret)
	if caretRow < scroll || caretRow >= scroll+pane.Rows {
		return
	}
	x := layout.ContentX + textutil.ColumnOf(runes, rows[caretRow], caret, state.TabWidth)
	if x >= layout.Width {
		x = layout.Width - 1
	}
	r.screen.ShowCursor(x, pane.Top+caretRow-scroll)
}

// drawStatusLine shows the last error, a status message or the match summary.
func (r *Renderer) drawStatusLine(state *statepkg.AppState, layout statepkg.Layout) {
	y := layout.StatusY
	if y <= 0 {
		return
	}
	normalStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	flashStyle := tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)

	style := normalStyle
	text := statusSummary(state)
	switch {
	case state.LastError != nil:
		style = normalStyle.Foreground(r.theme.Error)
		text = "Error: " + state.LastError.Error()
	case state.StatusMessage != "":
		text = state.StatusMessage
	}

	// Flash within 0.1 seconds of the last yank
	if !state.LastYankTime.IsZero() && time.Since(state.LastYankTime) < 100*time.Millisecond {
		style = flashStyle
	}

	r.fillLine(0, layout.Width, y, style)
	r.drawTextLine(0, y, layout.Width, r.truncateTextToWidth(" "+text, layout.Width), style)
}

func statusSummary(state *statepkg.AppState) string {
	n := state.Session.MatchCount()
	switch state.Session.Phase() {
	case session.PhaseReady:
		return fmt.Sprintf("%d %s so far · Ctrl+N for next", n, plural(n, "match", "matches"))
	case session.PhaseExhausted:
		return fmt.Sprintf("done · %d %s", n, plural(n, "match", "matches"))
	default:
		if state.Session.CompileError() != nil {
			return "pattern error"
		}
		if !state.CanSubmit() {
			return "enter a pattern and a subject"
		}
		return "ready to match"
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func (r *Renderer) drawFooter(state *statepkg.AppState, layout statepkg.Layout) {
	y := layout.FooterY
	if y <= 0 {
		return
	}
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	r.fillLine(0, layout.Width, y, style)
	text := buildFooterHelpText(state)
	r.drawTextLine(0, y, layout.Width, r.truncateTextToWidth(text, layout.Width), style)
}
