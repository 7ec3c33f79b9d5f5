package app

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	fsutil "github.com/kk-code-lab/regexfu/internal/fs"
	"github.com/kk-code-lab/regexfu/internal/match"
	statepkg "github.com/kk-code-lab/regexfu/internal/state"
	inputui "github.com/kk-code-lab/regexfu/internal/ui/input"
	renderui "github.com/kk-code-lab/regexfu/internal/ui/render"
	"github.com/sirupsen/logrus"
)

// Options configures a new Application.
type Options struct {
	// Screen is used as-is when set; otherwise a terminal screen is created.
	Screen tcell.Screen

	Engine   match.Engine
	Flags    match.Flags
	Logger   logrus.FieldLogger
	Theme    *renderui.ColorTheme
	Version  string
	TabWidth int

	Pattern string
	Subject string
	// SubjectPath is the file the subject was loaded from, if any.
	SubjectPath string
	// Watch reloads SubjectPath when it changes on disk.
	Watch bool
}

// Application represents the running app.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.AppState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	actionCh   chan statepkg.Action
	done       chan struct{}
	shouldQuit bool
	logger     logrus.FieldLogger
	watcher    *fsutil.SubjectWatcher
	subject    string

	writeClipboard func(string) error
}

// NewApplication initialises the screen and the application state.
func NewApplication(opts Options) (*Application, error) {
	if opts.Engine == nil {
		return nil, fmt.Errorf("no regex engine configured")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	screen := opts.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return nil, err
		}
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Parse mouse sequences so clicks don't leak as key events.
	screen.EnableMouse()

	state := statepkg.NewAppState(statepkg.Options{
		Engine:        opts.Engine,
		Flags:         opts.Flags,
		Logger:        logger,
		Pattern:       opts.Pattern,
		Subject:       opts.Subject,
		SubjectSource: opts.SubjectPath,
		TabWidth:      opts.TabWidth,
	})
	state.ClipboardAvailable = !clipboard.Unsupported
	w, h := screen.Size()
	state.ScreenWidth = w
	state.ScreenHeight = h

	actionCh := make(chan statepkg.Action, 10)
	reducer := statepkg.NewStateReducer()
	renderer := renderui.NewRenderer(screen)
	renderer.SetVersion(opts.Version)
	if opts.Theme != nil {
		renderer.SetTheme(*opts.Theme)
	}
	inputHandler := inputui.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	app := &Application{
		screen:         screen,
		state:          state,
		reducer:        reducer,
		renderer:       renderer,
		input:          inputHandler,
		actionCh:       actionCh,
		done:           make(chan struct{}),
		logger:         logger,
		subject:        opts.SubjectPath,
		writeClipboard: clipboard.WriteAll,
	}

	// Settle scroll offsets for the real screen size.
	if _, err := reducer.Reduce(state, statepkg.ResizeAction{Width: w, Height: h}); err != nil {
		state.LastError = err
	}

	if opts.Watch && opts.SubjectPath != "" {
		watcher, err := fsutil.WatchSubject(opts.SubjectPath, fsutil.DefaultDebounce, logger, app.onSubjectUpdate)
		if err != nil {
			logger.WithError(err).Warn("watch subject file")
			state.LastError = fmt.Errorf("watch %s: %w", opts.SubjectPath, err)
		} else {
			app.watcher = watcher
			state.WatchActive = true
		}
	}

	logger.WithFields(logrus.Fields{
		"engine":    opts.Engine.Name(),
		"flags":     opts.Flags.String(),
		"clipboard": state.ClipboardAvailable,
		"watch":     state.WatchActive,
	}).Info("application started")

	return app, nil
}

// State exposes the current application state.
func (app *Application) State() *statepkg.AppState {
	return app.state
}

// Close cleans up resources.
func (app *Application) Close() error {
	var err error
	if app.watcher != nil {
		err = app.watcher.Close()
		app.watcher = nil
	}
	select {
	case <-app.done:
	default:
		close(app.done)
	}
	app.screen.Fini()
	return err
}

// onSubjectUpdate runs on the watcher goroutine and hands the reload to the
// event loop.
func (app *Application) onSubjectUpdate(u fsutil.SubjectUpdate) {
	app.dispatch(statepkg.SubjectLoadedAction{
		Text:   u.Text,
		Source: app.subject,
		Err:    u.Err,
	})
}

// dispatch queues an action from outside the event loop without blocking
// the caller.
func (app *Application) dispatch(action statepkg.Action) {
	select {
	case app.actionCh <- action:
	default:
		go func() {
			select {
			case app.actionCh <- action:
			case <-app.done:
			}
		}()
	}
}
