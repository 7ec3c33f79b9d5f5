package state

import (
	"errors"
	"fmt"

	"github.com/kk-code-lab/regexfu/internal/history"
	"github.com/kk-code-lab/regexfu/internal/match"
	"github.com/kk-code-lab/regexfu/internal/session"
	"github.com/kk-code-lab/regexfu/internal/textbuf"
	"github.com/kk-code-lab/regexfu/internal/textutil"
)

// ===== REDUCER =====

// StateReducer applies actions to state
type StateReducer struct{}

// NewStateReducer creates a new reducer
func NewStateReducer() *StateReducer {
	return &StateReducer{}
}

// Reduce applies an action to state and returns new state.
// Buffers and session are mutated in place; the returned pointer is state.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {

	// ===== EDITING =====

	case InsertRuneAction:
		r.edit(state, func(b *textbuf.Buffer) bool {
			b.Insert(a.Rune)
			return true
		})
		return state, nil

	case InsertTextAction:
		r.edit(state, func(b *textbuf.Buffer) bool { return b.InsertString(a.Text) })
		return state, nil

	case BackspaceAction:
		r.edit(state, (*textbuf.Buffer).Backspace)
		return state, nil

	case DeleteAction:
		r.edit(state, (*textbuf.Buffer).Delete)
		return state, nil

	case DeleteWordAction:
		r.edit(state, (*textbuf.Buffer).DeleteWordBackward)
		return state, nil

	case ClearInputAction:
		r.edit(state, (*textbuf.Buffer).Clear)
		return state, nil

	case MoveCaretAction:
		r.moveCaret(state, a.Direction)
		return state, nil

	// ===== FOCUS & MOUSE =====

	case FocusNextAction:
		state.Focus = (state.Focus + 1) % focusCount
		return state, nil

	case FocusPrevAction:
		state.Focus = (state.Focus + focusCount - 1) % focusCount
		return state, nil

	case ClickAction:
		r.click(state, a.X, a.Y)
		return state, nil

	case ScrollResultAction:
		r.scrollBy(state, FocusResult, a.Delta)
		return state, nil

	// ===== MATCHING =====

	case ToggleFlagAction:
		state.Session.OnToggleFlag(a.Flag)
		r.afterEdit(state, FocusPattern)
		return state, nil

	case SubmitAction:
		r.clearStatus(state)
		err := state.Session.OnSubmit()
		state.ResultScroll = 0
		var ce *match.CompileError
		switch {
		case err == nil:
			r.followResult(state)
			return state, nil
		case errors.As(err, &ce):
			state.StatusMessage = "Pattern does not compile"
			return state, nil
		default:
			return state, err
		}

	case NextMatchAction:
		r.clearStatus(state)
		_, err := state.Session.OnNext()
		r.followResult(state)
		if err != nil && !errors.Is(err, match.ErrExhausted) {
			return state, err
		}
		return state, nil

	case SeekHistoryAction:
		r.clearStatus(state)
		if _, err := state.Session.OnSeekHistory(a.Delta); err != nil {
			if errors.Is(err, history.ErrOutOfRange) {
				return state, nil
			}
			return state, err
		}
		state.Focus = FocusPattern
		r.afterEdit(state, FocusPattern)
		return state, nil

	case ResetAction:
		state.Session.OnReset()
		state.SubjectSource = ""
		state.PatternScroll, state.SubjectScroll, state.ResultScroll = 0, 0, 0
		state.Focus = FocusPattern
		r.clearStatus(state)
		return state, nil

	case SubjectLoadedAction:
		if a.Err != nil {
			return state, fmt.Errorf("load %s: %w", a.Source, a.Err)
		}
		state.Subject.SetText(a.Text)
		state.Subject.SetCaret(0)
		state.SubjectSource = a.Source
		state.Session.OnSubjectChanged()
		state.SubjectScroll = 0
		r.clearStatus(state)
		if a.Source != "" {
			state.StatusMessage = "Loaded " + textutil.SanitizeTerminalText(a.Source)
		}
		return state, nil

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		for f := FocusPattern; f < focusCount; f++ {
			r.ensureCaretVisible(state, f)
		}
		return state, nil

	case HelpToggleAction:
		state.HelpVisible = !state.HelpVisible
		return state, nil

	case HelpHideAction:
		if state.HelpVisible {
			state.HelpVisible = false
		}
		return state, nil

	default:
		return state, fmt.Errorf("unknown action: %T", action)
	}
}

// edit applies fn to the focused input buffer and notifies the session.
func (r *StateReducer) edit(state *AppState, fn func(*textbuf.Buffer) bool) {
	b := state.FocusedBuffer()
	if b == nil {
		return
	}
	if !fn(b) {
		return
	}
	r.clearStatus(state)
	switch state.Focus {
	case FocusPattern:
		state.Session.OnPatternChanged()
	case FocusSubject:
		state.Session.OnSubjectChanged()
	}
	r.afterEdit(state, state.Focus)
}

func (r *StateReducer) afterEdit(state *AppState, f Focus) {
	r.ensureCaretVisible(state, f)
	state.ResultScroll = 0
}

func (r *StateReducer) moveCaret(state *AppState, direction string) {
	if state.Focus == FocusResult {
		rows := state.Layout().Result.Rows
		switch direction {
		case "up", "left", "word-left":
			r.scrollBy(state, FocusResult, -1)
		case "down", "right", "word-right":
			r.scrollBy(state, FocusResult, 1)
		case "page-up":
			r.scrollBy(state, FocusResult, -maxInt(rows-1, 1))
		case "page-down":
			r.scrollBy(state, FocusResult, maxInt(rows-1, 1))
		case "home", "start":
			state.ResultScroll = 0
		case "end", "finish":
			r.followResult(state)
		}
		return
	}

	b := state.FocusedBuffer()
	switch direction {
	case "page-up", "page-down":
		step, dir := state.Layout().PaneFor(state.Focus).Rows-1, "down"
		if direction == "page-up" {
			dir = "up"
		}
		for i := 0; i < maxInt(step, 1); i++ {
			if !b.Move(dir) {
				break
			}
		}
	default:
		if !b.Move(direction) {
			return
		}
	}
	if state.Focus == FocusPattern {
		state.Session.OnCaretMoved()
	}
	r.ensureCaretVisible(state, state.Focus)
}

// click focuses the pane under (x, y) and moves the caret to that cell.
func (r *StateReducer) click(state *AppState, x, y int) {
	layout := state.Layout()
	for f := FocusPattern; f < focusCount; f++ {
		pane := layout.PaneFor(f)
		if !pane.Contains(y) {
			continue
		}
		state.Focus = f
		if f == FocusResult {
			return
		}
		b := state.Buffer(f)
		rows := state.Rows(f)
		idx := state.Scroll(f) + y - pane.Top
		if idx >= len(rows) {
			idx = len(rows) - 1
		}
		col := x - layout.ContentX
		if col < 0 {
			col = 0
		}
		b.SetCaret(textutil.OffsetAt(b.Runes(), rows[idx], col, state.TabWidth))
		if f == FocusPattern {
			state.Session.OnCaretMoved()
		}
		return
	}
}

// ensureCaretVisible adjusts the pane scroll so the caret row is on screen.
func (r *StateReducer) ensureCaretVisible(state *AppState, f Focus) {
	if f == FocusResult {
		r.scrollBy(state, f, 0)
		return
	}
	pane := state.Layout().PaneFor(f)
	rows := state.Rows(f)
	caretRow := textutil.RowOf(rows, state.Buffer(f).Caret())
	scroll := state.Scroll(f)
	if caretRow < scroll {
		scroll = caretRow
	}
	if pane.Rows > 0 && caretRow >= scroll+pane.Rows {
		scroll = caretRow - pane.Rows + 1
	}
	state.setScroll(f, clampScroll(scroll, len(rows), pane.Rows))
}

func (r *StateReducer) scrollBy(state *AppState, f Focus, delta int) {
	pane := state.Layout().PaneFor(f)
	rows := state.Rows(f)
	state.setScroll(f, clampScroll(state.Scroll(f)+delta, len(rows), pane.Rows))
}

// followResult scrolls the transcript to its last row.
func (r *StateReducer) followResult(state *AppState) {
	pane := state.Layout().Result
	rows := state.Rows(FocusResult)
	state.ResultScroll = clampScroll(len(rows), len(rows), pane.Rows)
}

func (r *StateReducer) clearStatus(state *AppState) {
	state.StatusMessage = ""
	state.LastError = nil
}

func clampScroll(scroll, total, visible int) int {
	maxScroll := total - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if scroll > maxScroll {
		scroll = maxScroll
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// CanSubmit reports whether a submit would run.
func (s *AppState) CanSubmit() bool {
	return s.Session.CanSubmit()
}

// Phase reports the session phase.
func (s *AppState) Phase() session.Phase {
	return s.Session.Phase()
}
