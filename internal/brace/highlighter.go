package brace

import "github.com/kk-code-lab/regexfu/internal/highlight"

// Highlighter marks the bracket pair touching the caret.
type Highlighter struct {
	sink    highlight.Sink
	handles []highlight.Handle
	pair    [2]int
	active  bool
}

// NewHighlighter creates a highlighter that paints onto sink.
func NewHighlighter(sink highlight.Sink) *Highlighter {
	return &Highlighter{sink: sink}
}

// Update clears the previous pair and marks the pair at caret-1, or failing
// that the pair at caret. It reports the highlighted offsets.
func (h *Highlighter) Update(idx Index, caret int) (int, int, bool) {
	h.Clear()

	for _, pos := range [...]int{caret - 1, caret} {
		partner, ok := idx.Partner(pos)
		if !ok {
			continue
		}
		h.mark(pos)
		h.mark(partner)
		h.pair = [2]int{pos, partner}
		h.active = true
		return pos, partner, true
	}
	return 0, 0, false
}

// Clear removes the highlights this highlighter added.
func (h *Highlighter) Clear() {
	for _, handle := range h.handles {
		h.sink.RemoveHighlight(handle)
	}
	h.handles = h.handles[:0]
	h.active = false
}

// Pair returns the currently highlighted offsets.
func (h *Highlighter) Pair() (int, int, bool) {
	return h.pair[0], h.pair[1], h.active
}

func (h *Highlighter) mark(pos int) {
	handle, err := h.sink.AddHighlight(pos, pos+1, highlight.KindBrace)
	if err != nil {
		// Offsets come from the index; a stale index is not worth surfacing.
		return
	}
	h.handles = append(h.handles, handle)
}
