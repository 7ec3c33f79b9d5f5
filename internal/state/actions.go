package state

import "github.com/kk-code-lab/regexfu/internal/match"

// Action represents any user action
type Action interface{}

// ===== EDITING =====

type InsertRuneAction struct {
	Rune rune
}
type InsertTextAction struct {
	Text string
}
type BackspaceAction struct{}
type DeleteAction struct{}
type DeleteWordAction struct{}
type ClearInputAction struct{}

// MoveCaretAction moves the caret in an input pane or scrolls the result pane.
// Direction is one of the textbuf motions plus "page-up" and "page-down".
type MoveCaretAction struct {
	Direction string
}

// ===== FOCUS & MOUSE =====

type FocusNextAction struct{}
type FocusPrevAction struct{}

// ClickAction focuses the pane under screen cell (X, Y) and places the caret.
type ClickAction struct {
	X int
	Y int
}

// ScrollResultAction scrolls the transcript by Delta rows.
type ScrollResultAction struct {
	Delta int
}

// ===== MATCHING =====

type ToggleFlagAction struct {
	Flag match.Flags
}
type SubmitAction struct{}
type NextMatchAction struct{}
type SeekHistoryAction struct {
	Delta int
}
type ResetAction struct{}

// SubjectLoadedAction replaces the subject with file contents. A non-nil Err
// reports a failed (re)load and leaves the subject untouched.
type SubjectLoadedAction struct {
	Text   string
	Source string
	Err    error
}

// ===== VIEW =====

type ResizeAction struct {
	Width  int
	Height int
}
type HelpToggleAction struct{}
type HelpHideAction struct{}

// ===== APPLICATION =====

type YankResultAction struct{}
type YankPatternAction struct{}
type QuitAction struct{}
type SuspendAction struct{}
