package textbuf

import (
	"unicode"

	"github.com/kk-code-lab/regexfu/internal/highlight"
)

// Buffer is an editable rune buffer with a caret and a highlight layer.
// Offsets are rune offsets; the caret ranges over [0, Len()].
type Buffer struct {
	runes    []rune
	caret    int
	revision int
	marks    *highlight.Layer
}

// New returns an empty buffer.
func New() *Buffer {
	b := &Buffer{}
	b.marks = highlight.NewLayer(b.Len)
	return b
}

// NewString returns a buffer holding text with the caret at its end.
func NewString(text string) *Buffer {
	b := New()
	b.SetText(text)
	return b
}

// Text returns the buffer contents.
func (b *Buffer) Text() string {
	return string(b.runes)
}

// Runes exposes the underlying runes. Callers must not modify the slice.
func (b *Buffer) Runes() []rune {
	return b.runes
}

// Len reports the number of runes.
func (b *Buffer) Len() int {
	return len(b.runes)
}

// Empty reports whether the buffer holds no text.
func (b *Buffer) Empty() bool {
	return len(b.runes) == 0
}

// Caret returns the caret offset.
func (b *Buffer) Caret() int {
	return b.caret
}

// Revision increases on every content change.
func (b *Buffer) Revision() int {
	return b.revision
}

// Marks returns the buffer's highlight sink.
func (b *Buffer) Marks() highlight.Sink {
	return b.marks
}

// Highlights returns the buffer's highlight layer for rendering.
func (b *Buffer) Highlights() *highlight.Layer {
	return b.marks
}

// SetText replaces the contents and moves the caret to the end.
func (b *Buffer) SetText(text string) bool {
	next := []rune(text)
	same := string(next) == string(b.runes)
	b.runes = next
	b.caret = len(next)
	if same {
		return false
	}
	b.revision++
	return true
}

// Append adds text at the end and returns the offset where it starts.
func (b *Buffer) Append(text string) int {
	start := len(b.runes)
	if text == "" {
		return start
	}
	b.runes = append(b.runes, []rune(text)...)
	b.caret = len(b.runes)
	b.revision++
	return start
}

// Insert puts r at the caret.
func (b *Buffer) Insert(r rune) {
	b.InsertString(string(r))
}

// InsertString puts text at the caret and moves the caret past it.
func (b *Buffer) InsertString(text string) bool {
	if text == "" {
		return false
	}
	ins := []rune(text)
	next := make([]rune, 0, len(b.runes)+len(ins))
	next = append(next, b.runes[:b.caret]...)
	next = append(next, ins...)
	next = append(next, b.runes[b.caret:]...)
	b.runes = next
	b.caret += len(ins)
	b.revision++
	return true
}

// Backspace removes the rune before the caret.
func (b *Buffer) Backspace() bool {
	if b.caret == 0 {
		return false
	}
	return b.deleteRange(b.caret-1, b.caret)
}

// Delete removes the rune after the caret.
func (b *Buffer) Delete() bool {
	if b.caret >= len(b.runes) {
		return false
	}
	return b.deleteRange(b.caret, b.caret+1)
}

// DeleteWordBackward removes from the previous word boundary to the caret.
func (b *Buffer) DeleteWordBackward() bool {
	start := previousWordBoundary(b.runes, b.caret)
	if start == b.caret {
		return false
	}
	return b.deleteRange(start, b.caret)
}

// Clear empties the buffer.
func (b *Buffer) Clear() bool {
	return b.SetText("")
}

func (b *Buffer) deleteRange(start, end int) bool {
	b.runes = append(b.runes[:start:start], b.runes[end:]...)
	b.caret = start
	b.revision++
	return true
}

// SetCaret moves the caret, clamped to the text. It reports whether it moved.
func (b *Buffer) SetCaret(pos int) bool {
	if pos < 0 {
		pos = 0
	}
	if pos > len(b.runes) {
		pos = len(b.runes)
	}
	if pos == b.caret {
		return false
	}
	b.caret = pos
	return true
}

// Move applies a caret motion: "left", "right", "word-left", "word-right",
// "home", "end", "up", "down", "start", "finish".
func (b *Buffer) Move(direction string) bool {
	switch direction {
	case "left":
		return b.SetCaret(b.caret - 1)
	case "right":
		return b.SetCaret(b.caret + 1)
	case "word-left":
		return b.SetCaret(previousWordBoundary(b.runes, b.caret))
	case "word-right":
		return b.SetCaret(nextWordBoundary(b.runes, b.caret))
	case "home":
		return b.SetCaret(b.LineStart(b.caret))
	case "end":
		return b.SetCaret(b.LineEnd(b.caret))
	case "up":
		return b.moveVertical(-1)
	case "down":
		return b.moveVertical(1)
	case "start":
		return b.SetCaret(0)
	case "finish":
		return b.SetCaret(len(b.runes))
	}
	return false
}

func (b *Buffer) moveVertical(delta int) bool {
	start := b.LineStart(b.caret)
	col := b.caret - start
	var target int
	if delta < 0 {
		if start == 0 {
			return b.SetCaret(0)
		}
		target = b.LineStart(start - 1)
	} else {
		end := b.LineEnd(b.caret)
		if end >= len(b.runes) {
			return b.SetCaret(len(b.runes))
		}
		target = end + 1
	}
	lineEnd := b.LineEnd(target)
	if target+col > lineEnd {
		return b.SetCaret(lineEnd)
	}
	return b.SetCaret(target + col)
}

// LineStart returns the offset of the first rune of the line holding pos.
func (b *Buffer) LineStart(pos int) int {
	if pos > len(b.runes) {
		pos = len(b.runes)
	}
	for pos > 0 && b.runes[pos-1] != '\n' {
		pos--
	}
	return pos
}

// LineEnd returns the offset of the newline (or text end) ending the line holding pos.
func (b *Buffer) LineEnd(pos int) int {
	if pos < 0 {
		pos = 0
	}
	for pos < len(b.runes) && b.runes[pos] != '\n' {
		pos++
	}
	return pos
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func previousWordBoundary(runes []rune, pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}

	i := pos - 1
	for i >= 0 && !isWordChar(runes[i]) {
		i--
	}
	for i >= 0 && isWordChar(runes[i]) {
		i--
	}
	return i + 1
}

func nextWordBoundary(runes []rune, pos int) int {
	if pos >= len(runes) {
		return len(runes)
	}
	if pos < 0 {
		pos = 0
	}

	i := pos
	for i < len(runes) && !isWordChar(runes[i]) {
		i++
	}
	for i < len(runes) && isWordChar(runes[i]) {
		i++
	}
	return i
}
