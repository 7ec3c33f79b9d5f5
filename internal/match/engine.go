package match

import (
	"fmt"
	"time"
)

const (
	EngineRegexp2 = "regexp2"
	EngineRE2     = "re2"
)

// EngineNames lists the engines NewEngine accepts.
var EngineNames = []string{EngineRegexp2, EngineRE2}

// Span is a half-open rune range [Start, End).
type Span struct {
	Start int
	End   int
}

// Len returns the number of runes covered.
func (s Span) Len() int {
	return s.End - s.Start
}

// Group is one capturing group of a match. Matched is false when the group
// did not take part in the match; Span is then meaningless.
type Group struct {
	Index   int
	Name    string
	Span    Span
	Matched bool
	Text    string
}

// Result is one match: the whole span plus one entry per capturing group.
type Result struct {
	Number int
	Span   Span
	Text   string
	Groups []Group
}

// Engine compiles patterns. Implementations wrap a concrete regex library.
type Engine interface {
	Name() string
	Compile(pattern string, flags Flags) (Pattern, error)
}

// Pattern is a compiled expression.
type Pattern interface {
	NumGroups() int
	Matcher(subject string) Matcher
}

// Matcher walks one subject forward. Find reports false once no further
// occurrence exists.
type Matcher interface {
	Find() (Result, bool, error)
}

// Options tunes engine construction.
type Options struct {
	// MatchTimeout bounds a single Find on engines that support it. Zero disables it.
	MatchTimeout time.Duration
}

// CompileError carries the engine's diagnostic for a pattern that failed to compile.
type CompileError struct {
	Engine  string
	Pattern string
	Message string
	Err     error
}

func (e *CompileError) Error() string {
	return e.Message
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// NewEngine returns the engine registered under name.
func NewEngine(name string, opts Options) (Engine, error) {
	switch name {
	case "", EngineRegexp2:
		return &regexp2Engine{timeout: opts.MatchTimeout}, nil
	case EngineRE2:
		return re2Engine{}, nil
	default:
		return nil, fmt.Errorf("unknown regex engine %q (want one of %v)", name, EngineNames)
	}
}
