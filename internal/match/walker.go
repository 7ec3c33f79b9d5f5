package match

import "errors"

// ErrExhausted is returned by Walker.Next once no further match exists.
var ErrExhausted = errors.New("no more matches")

// Walker is a forward-only producer of successive matches of one compiled
// pattern against one subject. It cannot be rewound; start a new one instead.
type Walker struct {
	pattern Pattern
	matcher Matcher
	count   int
	done    bool
}

// Start compiles pattern with flags and prepares a walker over subject.
// A compile failure is returned as *CompileError and no walker is created.
func Start(engine Engine, pattern string, flags Flags, subject string) (*Walker, error) {
	compiled, err := engine.Compile(pattern, flags)
	if err != nil {
		return nil, err
	}
	return &Walker{
		pattern: compiled,
		matcher: compiled.Matcher(subject),
	}, nil
}

// Next returns the next match, numbered from 1. After ErrExhausted (or any
// engine error) every further call returns ErrExhausted.
func (w *Walker) Next() (Result, error) {
	if w.done {
		return Result{}, ErrExhausted
	}
	res, ok, err := w.matcher.Find()
	if err != nil {
		w.done = true
		return Result{}, err
	}
	if !ok {
		w.done = true
		return Result{}, ErrExhausted
	}
	w.count++
	res.Number = w.count
	return res, nil
}

// Count reports how many matches have been produced.
func (w *Walker) Count() int {
	return w.count
}

// Exhausted reports whether the walker has run out of matches.
func (w *Walker) Exhausted() bool {
	return w.done
}

// NumGroups reports the number of capturing groups in the pattern.
func (w *Walker) NumGroups() int {
	return w.pattern.NumGroups()
}
