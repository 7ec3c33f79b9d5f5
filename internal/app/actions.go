package app

import (
	"errors"
	"fmt"
	"time"
)

var (
	errClipboardUnavailable = errors.New("clipboard is not available")
	errNothingToCopy        = errors.New("nothing to copy")
)

// handleYank copies text to the system clipboard and flashes the status line.
func (app *Application) handleYank(what, text string) bool {
	app.state.StatusMessage = ""
	app.state.LastError = nil

	switch {
	case !app.state.ClipboardAvailable || app.writeClipboard == nil:
		app.state.LastError = errClipboardUnavailable
		return true
	case text == "":
		app.state.LastError = fmt.Errorf("%s: %w", what, errNothingToCopy)
		return true
	}

	if err := app.writeClipboard(text); err != nil {
		app.logger.WithError(err).Warn("clipboard write failed")
		app.state.LastError = fmt.Errorf("copy %s: %w", what, err)
		return true
	}

	app.state.LastYankTime = time.Now()
	app.state.StatusMessage = fmt.Sprintf("Copied %s to clipboard", what)
	app.logger.WithField("bytes", len(text)).Debugf("copied %s", what)
	return true
}
