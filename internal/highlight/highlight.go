package highlight

import (
	"errors"
	"sort"
)

// Kind selects how a highlighted span is painted.
type Kind int

const (
	KindBrace Kind = iota
	KindMatch0
	KindMatch1
	KindMatch2
	KindError
)

// MatchKinds is the rotation used for successive matches.
var MatchKinds = [...]Kind{KindMatch0, KindMatch1, KindMatch2}

// MatchKind returns the rotating kind for the n-th match (0-based).
func MatchKind(n int) Kind {
	if n < 0 {
		n = -n
	}
	return MatchKinds[n%len(MatchKinds)]
}

// Handle identifies a span added to a Sink. The zero Handle is never issued.
type Handle int

// ErrOutOfRange is returned when a span does not fit the underlying text.
var ErrOutOfRange = errors.New("highlight span out of range")

// Sink is the capability a text view exposes for marking spans.
type Sink interface {
	AddHighlight(start, end int, kind Kind) (Handle, error)
	RemoveHighlight(h Handle)
	RemoveAll()
}

// Span is a half-open rune range [Start, End) painted with Kind.
type Span struct {
	Start int
	End   int
	Kind  Kind
}

// Layer is an in-memory Sink bounded by the length reported by size.
type Layer struct {
	size  func() int
	next  Handle
	spans map[Handle]Span
}

// NewLayer creates a layer whose valid offsets are [0, size()].
func NewLayer(size func() int) *Layer {
	return &Layer{
		size:  size,
		spans: make(map[Handle]Span),
	}
}

// AddHighlight records a span and returns its handle.
func (l *Layer) AddHighlight(start, end int, kind Kind) (Handle, error) {
	limit := 0
	if l.size != nil {
		limit = l.size()
	}
	if start < 0 || end < start || end > limit {
		return 0, ErrOutOfRange
	}
	l.next++
	l.spans[l.next] = Span{Start: start, End: end, Kind: kind}
	return l.next, nil
}

// RemoveHighlight drops a span. Unknown handles are ignored.
func (l *Layer) RemoveHighlight(h Handle) {
	delete(l.spans, h)
}

// RemoveAll drops every span.
func (l *Layer) RemoveAll() {
	if len(l.spans) == 0 {
		return
	}
	l.spans = make(map[Handle]Span)
}

// Len reports the number of active spans.
func (l *Layer) Len() int {
	return len(l.spans)
}

// Spans returns the active spans ordered by start offset, then insertion.
func (l *Layer) Spans() []Span {
	if len(l.spans) == 0 {
		return nil
	}
	handles := make([]Handle, 0, len(l.spans))
	for h := range l.spans {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool {
		a, b := l.spans[handles[i]], l.spans[handles[j]]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return handles[i] < handles[j]
	})
	out := make([]Span, len(handles))
	for i, h := range handles {
		out[i] = l.spans[h]
	}
	return out
}

// KindAt returns the kind of the latest span covering offset, if any.
func (l *Layer) KindAt(offset int) (Kind, bool) {
	var (
		best  Handle
		found bool
	)
	for h, span := range l.spans {
		if offset >= span.Start && offset < span.End && (!found || h > best) {
			best = h
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return l.spans[best].Kind, true
}
