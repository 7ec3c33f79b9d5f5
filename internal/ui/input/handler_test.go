package input

import (
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/regexfu/internal/match"
	statepkg "github.com/kk-code-lab/regexfu/internal/state"
)

func newTestHandler(focus statepkg.Focus) (*InputHandler, chan statepkg.Action, *statepkg.AppState) {
	actionChan := make(chan statepkg.Action, 4)
	handler := NewInputHandler(actionChan)
	state := &statepkg.AppState{Focus: focus}
	handler.SetState(state)
	return handler, actionChan, state
}

func expectAction(t *testing.T, actionChan chan statepkg.Action, want statepkg.Action) {
	t.Helper()
	select {
	case action := <-actionChan:
		if !reflect.DeepEqual(action, want) {
			t.Fatalf("expected %#v, got %#v", want, action)
		}
	default:
		t.Fatalf("expected %T to be emitted", want)
	}
}

func expectNoAction(t *testing.T, actionChan chan statepkg.Action) {
	t.Helper()
	select {
	case action := <-actionChan:
		t.Fatalf("expected no action, got %#v", action)
	default:
	}
}

func TestKeyBindings(t *testing.T) {
	tests := []struct {
		name  string
		focus statepkg.Focus
		event *tcell.EventKey
		want  statepkg.Action
	}{
		{"rune inserts", statepkg.FocusPattern, tcell.NewEventKey(tcell.KeyRune, '(', tcell.ModNone), statepkg.InsertRuneAction{Rune: '('}},
		{"enter in pattern submits", statepkg.FocusPattern, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), statepkg.SubmitAction{}},
		{"enter in subject inserts newline", statepkg.FocusSubject, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), statepkg.InsertRuneAction{Rune: '\n'}},
		{"enter in result asks for next", statepkg.FocusResult, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), statepkg.NextMatchAction{}},
		{"ctrl+f submits from anywhere", statepkg.FocusSubject, tcell.NewEventKey(tcell.KeyCtrlF, 0, tcell.ModCtrl), statepkg.SubmitAction{}},
		{"ctrl+n next", statepkg.FocusSubject, tcell.NewEventKey(tcell.KeyCtrlN, 0, tcell.ModCtrl), statepkg.NextMatchAction{}},
		{"f3 next", statepkg.FocusPattern, tcell.NewEventKey(tcell.KeyF3, 0, tcell.ModNone), statepkg.NextMatchAction{}},
		{"ctrl+r reset", statepkg.FocusPattern, tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), statepkg.ResetAction{}},
		{"ctrl+p history back", statepkg.FocusPattern, tcell.NewEventKey(tcell.KeyCtrlP, 0, tcell.ModCtrl), statepkg.SeekHistoryAction{Delta: -1}},
		{"alt+up history back", statepkg.FocusSubject, tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModAlt), statepkg.SeekHistoryAction{Delta: -1}},
		{"alt+down history forward", statepkg.FocusPattern, tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModAlt), statepkg.SeekHistoryAction{Delta: 1}},
		{"alt+i toggles case", statepkg.FocusPattern, tcell.NewEventKey(tcell.KeyRune, 'i', tcell.ModAlt), statepkg.ToggleFlagAction{Flag: match.CaseInsensitive}},
		{"alt+x toggles extended", statepkg.FocusSubject, tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), statepkg.ToggleFlagAction{Flag: match.Extended}},
		{"tab focus next", statepkg.FocusPattern, tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), statepkg.FocusNextAction{}},
		{"backtab focus prev", statepkg.FocusPattern, tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModShift), statepkg.FocusPrevAction{}},
		{"ctrl+left word", statepkg.FocusPattern, tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModCtrl), statepkg.MoveCaretAction{Direction: "word-left"}},
		{"ctrl+home start", statepkg.FocusSubject, tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModCtrl), statepkg.MoveCaretAction{Direction: "start"}},
		{"page down", statepkg.FocusResult, tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), statepkg.MoveCaretAction{Direction: "page-down"}},
		{"backspace", statepkg.FocusPattern, tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), statepkg.BackspaceAction{}},
		{"ctrl+w delete word", statepkg.FocusPattern, tcell.NewEventKey(tcell.KeyCtrlW, 0, tcell.ModCtrl), statepkg.DeleteWordAction{}},
		{"ctrl+u clear", statepkg.FocusSubject, tcell.NewEventKey(tcell.KeyCtrlU, 0, tcell.ModCtrl), statepkg.ClearInputAction{}},
		{"ctrl+y yank transcript", statepkg.FocusPattern, tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl), statepkg.YankResultAction{}},
		{"ctrl+k yank pattern", statepkg.FocusPattern, tcell.NewEventKey(tcell.KeyCtrlK, 0, tcell.ModCtrl), statepkg.YankPatternAction{}},
		{"f1 help", statepkg.FocusPattern, tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), statepkg.HelpToggleAction{}},
		{"ctrl+z suspend", statepkg.FocusPattern, tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), statepkg.SuspendAction{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, actionChan, _ := newTestHandler(tt.focus)
			if !handler.ProcessEvent(tt.event) {
				t.Fatalf("event should not quit")
			}
			expectAction(t, actionChan, tt.want)
		})
	}
}

func TestQuestionMarkIsTextNotHelp(t *testing.T) {
	handler, actionChan, _ := newTestHandler(statepkg.FocusPattern)

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, '?', tcell.ModNone))
	expectAction(t, actionChan, statepkg.InsertRuneAction{Rune: '?'})
}

func TestAltWithUnknownLetterIsIgnored(t *testing.T) {
	handler, actionChan, _ := newTestHandler(statepkg.FocusPattern)

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModAlt))
	expectNoAction(t, actionChan)
}

func TestCtrlCQuits(t *testing.T) {
	handler, actionChan, _ := newTestHandler(statepkg.FocusSubject)

	if handler.ProcessEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)) {
		t.Fatalf("Ctrl+C should stop the loop")
	}
	expectAction(t, actionChan, statepkg.QuitAction{})
}

func TestHelpOverlaySwallowsKeys(t *testing.T) {
	handler, actionChan, state := newTestHandler(statepkg.FocusPattern)
	state.HelpVisible = true

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	expectNoAction(t, actionChan)

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	expectAction(t, actionChan, statepkg.HelpHideAction{})

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	expectAction(t, actionChan, statepkg.HelpHideAction{})

	if handler.ProcessEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)) {
		t.Fatalf("Ctrl+C must quit even with help open")
	}
	expectAction(t, actionChan, statepkg.QuitAction{})
}

func TestResizeEmitsAction(t *testing.T) {
	handler, actionChan, _ := newTestHandler(statepkg.FocusPattern)

	handler.ProcessEvent(tcell.NewEventResize(100, 40))
	expectAction(t, actionChan, statepkg.ResizeAction{Width: 100, Height: 40})
}

func TestMouseEvents(t *testing.T) {
	handler, actionChan, _ := newTestHandler(statepkg.FocusPattern)

	handler.ProcessEvent(tcell.NewEventMouse(7, 9, tcell.Button1, tcell.ModNone))
	expectAction(t, actionChan, statepkg.ClickAction{X: 7, Y: 9})

	handler.ProcessEvent(tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone))
	expectAction(t, actionChan, statepkg.ScrollResultAction{Delta: 1})
}
