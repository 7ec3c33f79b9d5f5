package app

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/regexfu/internal/fs"
	"github.com/kk-code-lab/regexfu/internal/match"
	"github.com/kk-code-lab/regexfu/internal/session"
	statepkg "github.com/kk-code-lab/regexfu/internal/state"
	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestApplication(t *testing.T, opts Options) (*Application, *[]string) {
	t.Helper()
	if opts.Engine == nil {
		engine, err := match.NewEngine(match.EngineRegexp2, match.Options{})
		if err != nil {
			t.Fatalf("NewEngine: %v", err)
		}
		opts.Engine = engine
	}
	if opts.Screen == nil {
		opts.Screen = tcell.NewSimulationScreen("")
	}
	opts.Logger = newTestLogger()

	app, err := NewApplication(opts)
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	var copied []string
	app.state.ClipboardAvailable = true
	app.writeClipboard = func(text string) error {
		copied = append(copied, text)
		return nil
	}
	return app, &copied
}

func TestYankResultCopiesTranscript(t *testing.T) {
	app, copied := newTestApplication(t, Options{Pattern: "b", Subject: "abc"})

	app.handleAction(statepkg.SubmitAction{})
	if app.state.LastError != nil {
		t.Fatalf("submit: %v", app.state.LastError)
	}
	app.handleAction(statepkg.YankResultAction{})

	if len(*copied) != 1 || (*copied)[0] != app.state.Result.Text() {
		t.Fatalf("copied %q, want result %q", *copied, app.state.Result.Text())
	}
	if app.state.LastYankTime.IsZero() {
		t.Fatalf("expected LastYankTime to update on success")
	}
	if !app.shouldAnimate() {
		t.Fatalf("expected flash animation right after a yank")
	}
	if !strings.Contains(app.state.StatusMessage, "result") {
		t.Fatalf("status = %q", app.state.StatusMessage)
	}
}

func TestYankPatternCopiesPattern(t *testing.T) {
	app, copied := newTestApplication(t, Options{Pattern: `\d+`})

	app.handleAction(statepkg.YankPatternAction{})
	if len(*copied) != 1 || (*copied)[0] != `\d+` {
		t.Fatalf("copied %q", *copied)
	}
}

func TestYankFailures(t *testing.T) {
	t.Run("write error", func(t *testing.T) {
		app, _ := newTestApplication(t, Options{Pattern: "a"})
		app.writeClipboard = func(string) error { return errors.New("xclip missing") }

		app.handleAction(statepkg.YankPatternAction{})
		if app.state.LastError == nil || !strings.Contains(app.state.LastError.Error(), "xclip missing") {
			t.Fatalf("LastError = %v", app.state.LastError)
		}
		if !app.state.LastYankTime.IsZero() {
			t.Fatalf("expected LastYankTime to remain zero on failure")
		}
	})

	t.Run("empty text", func(t *testing.T) {
		app, copied := newTestApplication(t, Options{})
		app.handleAction(statepkg.YankResultAction{})
		if !errors.Is(app.state.LastError, errNothingToCopy) {
			t.Fatalf("LastError = %v", app.state.LastError)
		}
		if len(*copied) != 0 {
			t.Fatalf("nothing should be copied")
		}
	})

	t.Run("clipboard unavailable", func(t *testing.T) {
		app, _ := newTestApplication(t, Options{Pattern: "a"})
		app.state.ClipboardAvailable = false
		app.handleAction(statepkg.YankPatternAction{})
		if !errors.Is(app.state.LastError, errClipboardUnavailable) {
			t.Fatalf("LastError = %v", app.state.LastError)
		}
	})
}

func TestHandleActionRecordsReducerErrors(t *testing.T) {
	app, _ := newTestApplication(t, Options{Pattern: "a", Subject: "a"})

	app.handleAction(statepkg.NextMatchAction{})
	if !errors.Is(app.state.LastError, session.ErrNotReady) {
		t.Fatalf("LastError = %v, want ErrNotReady", app.state.LastError)
	}
}

func TestQuitActionStopsLoop(t *testing.T) {
	app, _ := newTestApplication(t, Options{})
	if app.handleAction(statepkg.QuitAction{}) {
		t.Fatalf("quit should not request a render")
	}
	if !app.shouldQuit {
		t.Fatalf("expected shouldQuit")
	}
}

func TestProcessActionsDrainsQueue(t *testing.T) {
	app, _ := newTestApplication(t, Options{})
	app.actionCh <- statepkg.InsertTextAction{Text: "a+"}
	app.actionCh <- statepkg.FocusNextAction{}

	if !app.processActions() {
		t.Fatalf("expected render after processing actions")
	}
	if got := app.state.Pattern.Text(); got != "a+" {
		t.Fatalf("pattern = %q", got)
	}
	if app.state.Focus != statepkg.FocusSubject {
		t.Fatalf("focus = %v", app.state.Focus)
	}
}

func TestSubjectUpdateIsDispatched(t *testing.T) {
	app, _ := newTestApplication(t, Options{SubjectPath: "notes.txt", Subject: "old"})

	app.onSubjectUpdate(fsutil.SubjectUpdate{Text: "new text"})
	app.processActions()
	if got := app.state.Subject.Text(); got != "new text" {
		t.Fatalf("subject = %q", got)
	}
	if app.state.SubjectSource != "notes.txt" {
		t.Fatalf("source = %q", app.state.SubjectSource)
	}

	app.onSubjectUpdate(fsutil.SubjectUpdate{Err: errors.New("permission denied")})
	app.processActions()
	if app.state.LastError == nil {
		t.Fatalf("expected reload error")
	}
	if got := app.state.Subject.Text(); got != "new text" {
		t.Fatalf("failed reload must keep the subject, got %q", got)
	}
}

func TestWatchReloadsSubjectFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subject.txt")
	if err := os.WriteFile(path, []byte("first"), 0o600); err != nil {
		t.Fatal(err)
	}

	app, _ := newTestApplication(t, Options{Subject: "first", SubjectPath: path, Watch: true})
	if !app.state.WatchActive {
		t.Fatalf("expected watcher to be active, LastError=%v", app.state.LastError)
	}

	if err := os.WriteFile(path, []byte("second"), 0o600); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for app.state.Subject.Text() != "second" {
		select {
		case action := <-app.actionCh:
			app.handleAction(action)
		case <-deadline:
			t.Fatalf("subject not reloaded, got %q", app.state.Subject.Text())
		}
	}
}

func TestRunProcessesKeysUntilQuit(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	app, _ := newTestApplication(t, Options{Screen: screen, Subject: "xaax"})

	done := make(chan struct{})
	go func() {
		app.Run()
		close(done)
	}()

	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, '+', tcell.ModNone)
	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after Ctrl+C")
	}

	if got := app.state.Pattern.Text(); got != "a+" {
		t.Fatalf("pattern = %q", got)
	}
	if app.state.Session.MatchCount() != 1 {
		t.Fatalf("match count = %d", app.state.Session.MatchCount())
	}
}
