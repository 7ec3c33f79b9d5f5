package state

import (
	"time"

	"github.com/kk-code-lab/regexfu/internal/match"
	"github.com/kk-code-lab/regexfu/internal/session"
	"github.com/kk-code-lab/regexfu/internal/textbuf"
	"github.com/kk-code-lab/regexfu/internal/textutil"
	"github.com/sirupsen/logrus"
)

// Focus names the pane receiving keyboard input.
type Focus int

const (
	FocusPattern Focus = iota
	FocusSubject
	FocusResult
	focusCount
)

func (f Focus) String() string {
	switch f {
	case FocusPattern:
		return "pattern"
	case FocusSubject:
		return "subject"
	case FocusResult:
		return "result"
	default:
		return "unknown"
	}
}

// ===== STATE DEFINITIONS =====

// AppState is the single source of truth
type AppState struct {
	// Buffers
	Pattern *textbuf.Buffer
	Subject *textbuf.Buffer
	Result  *textbuf.Buffer

	// Brace index, history and match walker
	Session *session.Session

	// Input focus and per-pane scroll (in wrapped rows)
	Focus         Focus
	PatternScroll int
	SubjectScroll int
	ResultScroll  int

	HelpVisible bool
	TabWidth    int

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Subject file, when loaded from disk
	SubjectSource string
	WatchActive   bool

	// Status line
	ClipboardAvailable bool
	LastYankTime       time.Time
	StatusMessage      string

	// Error state
	LastError error
}

// Options seeds a new AppState.
type Options struct {
	Engine        match.Engine
	Flags         match.Flags
	Logger        logrus.FieldLogger
	Pattern       string
	Subject       string
	SubjectSource string
	TabWidth      int
}

// NewAppState builds the buffers and session. The caret starts at the end of
// each seeded buffer and focus starts on the pattern.
func NewAppState(opts Options) *AppState {
	s := &AppState{
		Pattern:       textbuf.NewString(opts.Pattern),
		Subject:       textbuf.NewString(opts.Subject),
		Result:        textbuf.New(),
		SubjectSource: opts.SubjectSource,
		TabWidth:      opts.TabWidth,
	}
	if s.TabWidth <= 0 {
		s.TabWidth = textutil.DefaultTabWidth
	}
	s.Session = session.New(s.Pattern, s.Subject, s.Result, session.Options{
		Engine: opts.Engine,
		Flags:  opts.Flags,
		Logger: opts.Logger,
	})
	return s
}

// ===== HELPER METHODS =====

// Buffer returns the buffer shown in pane f.
func (s *AppState) Buffer(f Focus) *textbuf.Buffer {
	switch f {
	case FocusSubject:
		return s.Subject
	case FocusResult:
		return s.Result
	default:
		return s.Pattern
	}
}

// FocusedBuffer returns the editable buffer with focus, or nil when the
// read-only result pane has focus.
func (s *AppState) FocusedBuffer() *textbuf.Buffer {
	if s.Focus == FocusResult {
		return nil
	}
	return s.Buffer(s.Focus)
}

// Scroll returns the first visible row of pane f.
func (s *AppState) Scroll(f Focus) int {
	switch f {
	case FocusSubject:
		return s.SubjectScroll
	case FocusResult:
		return s.ResultScroll
	default:
		return s.PatternScroll
	}
}

func (s *AppState) setScroll(f Focus, v int) {
	switch f {
	case FocusSubject:
		s.SubjectScroll = v
	case FocusResult:
		s.ResultScroll = v
	default:
		s.PatternScroll = v
	}
}

// Rows wraps the text of pane f to the current content width.
func (s *AppState) Rows(f Focus) []textutil.Row {
	return textutil.WrapRows(s.Buffer(f).Runes(), s.Layout().ContentWidth, s.TabWidth)
}

// HistoryPosition reports the 1-based history cursor and the entry count.
func (s *AppState) HistoryPosition() (int, int) {
	h := s.Session.History()
	return h.Cursor() + 1, h.Len()
}
