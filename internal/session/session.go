package session

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/kk-code-lab/regexfu/internal/brace"
	"github.com/kk-code-lab/regexfu/internal/highlight"
	"github.com/kk-code-lab/regexfu/internal/history"
	"github.com/kk-code-lab/regexfu/internal/match"
	"github.com/sirupsen/logrus"
)

// Phase is the submission lifecycle state.
type Phase int

const (
	// PhaseIdle: nothing submitted since the last edit, or the last submit failed to compile.
	PhaseIdle Phase = iota
	// PhaseReady: a walker exists and may produce more matches.
	PhaseReady
	// PhaseExhausted: the walker ran out of matches.
	PhaseExhausted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseReady:
		return "ready"
	case PhaseExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

var (
	ErrNothingToMatch = errors.New("pattern and subject are both required")
	ErrNotReady       = errors.New("no match in progress")
)

// Buffer is the text collaborator the session reads from and reports to.
type Buffer interface {
	Text() string
	SetText(text string) bool
	Append(text string) int
	Caret() int
	Marks() highlight.Sink
}

// Options configures a Session.
type Options struct {
	Engine match.Engine
	Flags  match.Flags
	Logger logrus.FieldLogger
}

// Session ties the brace index, history and match walker to three buffers:
// the pattern input, the subject input and the read-only result transcript.
// It is driven synchronously by the On* event methods.
type Session struct {
	engine  match.Engine
	log     logrus.FieldLogger
	pattern Buffer
	subject Buffer
	result  Buffer

	flags      match.Flags
	braces     brace.Index
	braceMarks *brace.Highlighter
	history    *history.Log

	walker      *match.Walker
	phase       Phase
	compileErr  error
	resultError bool
}

// New creates a session in PhaseIdle.
func New(pattern, subject, result Buffer, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	engine := opts.Engine
	if engine == nil {
		engine, _ = match.NewEngine(match.EngineRegexp2, match.Options{})
	}
	s := &Session{
		engine:     engine,
		log:        logger.WithField("component", "session"),
		pattern:    pattern,
		subject:    subject,
		result:     result,
		flags:      opts.Flags,
		braceMarks: brace.NewHighlighter(pattern.Marks()),
		history:    history.New(),
	}
	s.OnPatternChanged()
	return s
}

// OnPatternChanged rebuilds the brace index and drops any walker.
func (s *Session) OnPatternChanged() {
	s.braces = brace.BuildString(s.pattern.Text())
	s.discard()
	s.OnCaretMoved()
}

// OnSubjectChanged drops any walker.
func (s *Session) OnSubjectChanged() {
	s.discard()
}

// OnCaretMoved re-evaluates the brace highlight for the pattern caret.
func (s *Session) OnCaretMoved() {
	s.braceMarks.Update(s.braces, s.pattern.Caret())
}

// OnToggleFlag flips a modifier. Like any edit it returns the session to idle.
func (s *Session) OnToggleFlag(flag match.Flags) {
	s.flags = s.flags.Toggle(flag)
	s.discard()
}

// SetFlags replaces the modifier set.
func (s *Session) SetFlags(flags match.Flags) {
	if flags == s.flags {
		return
	}
	s.flags = flags
	s.discard()
}

// OnSubmit records the pattern in history, compiles it and reports the first
// match. A compile failure is written to the transcript and returned.
func (s *Session) OnSubmit() error {
	patternText := s.pattern.Text()
	subjectText := s.subject.Text()
	if patternText == "" || subjectText == "" {
		return ErrNothingToMatch
	}

	s.discard()
	s.history.Record(patternText, s.flags)

	fields := logrus.Fields{
		"engine":  s.engine.Name(),
		"pattern": patternText,
		"flags":   s.flags.String(),
	}
	walker, err := match.Start(s.engine, patternText, s.flags, subjectText)
	if err != nil {
		s.compileErr = err
		s.resultError = true
		s.result.SetText(err.Error())
		s.log.WithFields(fields).WithError(err).Debug("pattern failed to compile")
		return err
	}
	s.log.WithFields(fields).Debug("pattern compiled")

	s.walker = walker
	s.phase = PhaseReady
	_, err = s.OnNext()
	if errors.Is(err, match.ErrExhausted) {
		return nil
	}
	return err
}

// OnNext pulls the next match and reports it. It returns match.ErrExhausted
// when the walker runs dry and ErrNotReady outside PhaseReady.
func (s *Session) OnNext() (match.Result, error) {
	if s.phase != PhaseReady || s.walker == nil {
		return match.Result{}, ErrNotReady
	}

	if s.walker.Count() > 0 {
		s.result.Append("\n\n")
	}

	res, err := s.walker.Next()
	if err != nil {
		s.phase = PhaseExhausted
		switch {
		case errors.Is(err, match.ErrExhausted):
			if s.walker.Count() == 0 {
				s.result.Append("No matches")
			} else {
				s.result.Append("No more matches")
			}
			s.log.WithField("matches", s.walker.Count()).Debug("matches exhausted")
		default:
			s.result.Append("Matching stopped: " + err.Error())
			s.log.WithError(err).Warn("matching stopped")
		}
		return match.Result{}, err
	}

	kind := highlight.MatchKind(res.Number - 1)
	if _, err := s.subject.Marks().AddHighlight(res.Span.Start, res.Span.End, kind); err != nil {
		s.log.WithError(err).Debug("subject highlight skipped")
	}

	title := fmt.Sprintf("Match #%d", res.Number)
	start := s.result.Append(title + fmt.Sprintf(": %d-%d", res.Span.Start, res.Span.End))
	if _, err := s.result.Marks().AddHighlight(start, start+utf8.RuneCountInString(title), kind); err != nil {
		s.log.WithError(err).Debug("result highlight skipped")
	}
	s.result.Append(formatGroups(res.Groups))

	return res, nil
}

func formatGroups(groups []match.Group) string {
	if len(groups) == 0 {
		return ""
	}
	var b strings.Builder
	for _, g := range groups {
		label := fmt.Sprintf("%d", g.Index)
		if g.Name != "" {
			label += " " + g.Name
		}
		if !g.Matched {
			fmt.Fprintf(&b, "\n[%s] no match", label)
			continue
		}
		fmt.Fprintf(&b, "\n[%s] %d-%d = |%s|", label, g.Span.Start, g.Span.End, g.Text)
	}
	return b.String()
}

// OnSeekHistory moves the history cursor by delta and restores that entry
// into the pattern buffer and modifier set.
func (s *Session) OnSeekHistory(delta int) (history.Entry, error) {
	if (delta < 0 && !s.history.CanSeekBack()) || (delta > 0 && !s.history.CanSeekForward()) {
		return history.Entry{}, history.ErrOutOfRange
	}
	entry, err := s.history.Seek(delta)
	if err != nil {
		return history.Entry{}, err
	}
	s.pattern.SetText(entry.Pattern)
	s.flags = entry.Flags
	s.OnPatternChanged()
	s.log.WithFields(logrus.Fields{
		"cursor":  s.history.Cursor(),
		"pattern": entry.Pattern,
	}).Debug("history entry restored")
	return entry, nil
}

// OnReset clears both inputs, the modifiers and the history.
func (s *Session) OnReset() {
	s.pattern.SetText("")
	s.subject.SetText("")
	s.flags = 0
	s.history.Reset()
	s.OnPatternChanged()
}

func (s *Session) discard() {
	s.walker = nil
	s.phase = PhaseIdle
	s.compileErr = nil
	s.resultError = false
	s.subject.Marks().RemoveAll()
	s.result.Marks().RemoveAll()
	s.result.SetText("")
}

// Phase reports the lifecycle state.
func (s *Session) Phase() Phase {
	return s.phase
}

// Flags reports the current modifier set.
func (s *Session) Flags() match.Flags {
	return s.flags
}

// History exposes the log for display. Mutate it only through the session.
func (s *Session) History() *history.Log {
	return s.history
}

// Braces returns the current brace index.
func (s *Session) Braces() brace.Index {
	return s.braces
}

// BracePair returns the highlighted bracket offsets, if any.
func (s *Session) BracePair() (int, int, bool) {
	return s.braceMarks.Pair()
}

// MatchCount reports matches produced by the current walker.
func (s *Session) MatchCount() int {
	if s.walker == nil {
		return 0
	}
	return s.walker.Count()
}

// CanSubmit reports whether a first-match request would run.
func (s *Session) CanSubmit() bool {
	return s.pattern.Text() != "" && s.subject.Text() != ""
}

// CanNext reports whether a next-match request would run.
func (s *Session) CanNext() bool {
	return s.phase == PhaseReady
}

// CompileError returns the last compile failure while still idle.
func (s *Session) CompileError() error {
	return s.compileErr
}

// ResultIsError reports whether the transcript holds an error message.
func (s *Session) ResultIsError() bool {
	return s.resultError
}

// EngineName names the regex engine in use.
func (s *Session) EngineName() string {
	return s.engine.Name()
}
