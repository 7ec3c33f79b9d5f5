package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/regexfu/internal/match"
	statepkg "github.com/kk-code-lab/regexfu/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for focus checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for focus checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false when
// the event asks the application to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	case *tcell.EventMouse:
		return ih.processMouseEvent(ev)
	default:
		return true
	}
}

func (ih *InputHandler) focus() statepkg.Focus {
	if ih.state == nil {
		return statepkg.FocusPattern
	}
	return ih.state.Focus
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	helpVisible := ih.state != nil && ih.state.HelpVisible
	alt := ev.Modifiers()&tcell.ModAlt != 0
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0

	if helpVisible {
		switch ev.Key() {
		case tcell.KeyCtrlC, tcell.KeyCtrlQ:
			ih.actionChan <- statepkg.QuitAction{}
			return false
		case tcell.KeyEscape, tcell.KeyF1, tcell.KeyEnter:
			ih.actionChan <- statepkg.HelpHideAction{}
			return true
		case tcell.KeyRune:
			if r := ev.Rune(); r == 'q' || r == 'Q' || r == '?' {
				ih.actionChan <- statepkg.HelpHideAction{}
			}
			return true
		default:
			return true
		}
	}

	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		ih.actionChan <- statepkg.QuitAction{}
		return false

	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
		return true

	case tcell.KeyF1:
		ih.actionChan <- statepkg.HelpToggleAction{}
		return true

	case tcell.KeyEscape:
		return true

	// ===== MATCHING =====

	case tcell.KeyEnter:
		switch ih.focus() {
		case statepkg.FocusPattern:
			ih.actionChan <- statepkg.SubmitAction{}
		case statepkg.FocusSubject:
			ih.actionChan <- statepkg.InsertRuneAction{Rune: '\n'}
		case statepkg.FocusResult:
			ih.actionChan <- statepkg.NextMatchAction{}
		}
		return true

	case tcell.KeyCtrlF:
		ih.actionChan <- statepkg.SubmitAction{}
		return true

	case tcell.KeyCtrlN, tcell.KeyF3:
		ih.actionChan <- statepkg.NextMatchAction{}
		return true

	case tcell.KeyCtrlR:
		ih.actionChan <- statepkg.ResetAction{}
		return true

	case tcell.KeyCtrlP:
		ih.actionChan <- statepkg.SeekHistoryAction{Delta: -1}
		return true

	// ===== CLIPBOARD =====

	case tcell.KeyCtrlY:
		ih.actionChan <- statepkg.YankResultAction{}
		return true

	case tcell.KeyCtrlK:
		ih.actionChan <- statepkg.YankPatternAction{}
		return true

	// ===== FOCUS =====

	case tcell.KeyTab:
		ih.actionChan <- statepkg.FocusNextAction{}
		return true

	case tcell.KeyBacktab:
		ih.actionChan <- statepkg.FocusPrevAction{}
		return true

	// ===== CARET =====

	case tcell.KeyUp:
		if alt {
			ih.actionChan <- statepkg.SeekHistoryAction{Delta: -1}
			return true
		}
		ih.move("up")
		return true

	case tcell.KeyDown:
		if alt {
			ih.actionChan <- statepkg.SeekHistoryAction{Delta: 1}
			return true
		}
		ih.move("down")
		return true

	case tcell.KeyLeft:
		if ctrl || alt {
			ih.move("word-left")
		} else {
			ih.move("left")
		}
		return true

	case tcell.KeyRight:
		if ctrl || alt {
			ih.move("word-right")
		} else {
			ih.move("right")
		}
		return true

	case tcell.KeyHome, tcell.KeyCtrlA:
		if ctrl && ev.Key() == tcell.KeyHome {
			ih.move("start")
		} else {
			ih.move("home")
		}
		return true

	case tcell.KeyEnd, tcell.KeyCtrlE:
		if ctrl && ev.Key() == tcell.KeyEnd {
			ih.move("finish")
		} else {
			ih.move("end")
		}
		return true

	case tcell.KeyPgUp:
		ih.move("page-up")
		return true

	case tcell.KeyPgDn:
		ih.move("page-down")
		return true

	// ===== EDITING =====

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if alt {
			ih.actionChan <- statepkg.DeleteWordAction{}
		} else {
			ih.actionChan <- statepkg.BackspaceAction{}
		}
		return true

	case tcell.KeyDelete, tcell.KeyCtrlD:
		ih.actionChan <- statepkg.DeleteAction{}
		return true

	case tcell.KeyCtrlW:
		ih.actionChan <- statepkg.DeleteWordAction{}
		return true

	case tcell.KeyCtrlU:
		ih.actionChan <- statepkg.ClearInputAction{}
		return true

	case tcell.KeyRune:
		r := ev.Rune()
		if alt {
			if mod, ok := match.ModifierFor(r); ok {
				ih.actionChan <- statepkg.ToggleFlagAction{Flag: mod.Flag}
			}
			return true
		}
		ih.actionChan <- statepkg.InsertRuneAction{Rune: r}
		return true

	default:
		return true
	}
}

func (ih *InputHandler) move(direction string) {
	ih.actionChan <- statepkg.MoveCaretAction{Direction: direction}
}

// processMouseEvent maps primary clicks to focus/caret placement and the
// wheel to result scrolling.
func (ih *InputHandler) processMouseEvent(ev *tcell.EventMouse) bool {
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.Button1 != 0:
		x, y := ev.Position()
		ih.actionChan <- statepkg.ClickAction{X: x, Y: y}
	case buttons&tcell.WheelUp != 0:
		ih.actionChan <- statepkg.ScrollResultAction{Delta: -1}
	case buttons&tcell.WheelDown != 0:
		ih.actionChan <- statepkg.ScrollResultAction{Delta: 1}
	}
	return true
}
