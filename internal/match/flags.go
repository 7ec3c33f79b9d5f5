package match

import (
	"fmt"
	"strings"
)

// Flags is a set of pattern modifiers combined by bitwise OR.
type Flags uint8

const (
	CaseInsensitive Flags = 1 << iota
	Multiline
	DotAll
	Extended
)

// Modifier describes one toggleable flag.
type Modifier struct {
	Letter rune
	Flag   Flags
	Name   string
}

// Modifiers lists the supported flags in display order.
var Modifiers = [...]Modifier{
	{Letter: 'i', Flag: CaseInsensitive, Name: "case-insensitive"},
	{Letter: 'm', Flag: Multiline, Name: "multiline"},
	{Letter: 's', Flag: DotAll, Name: "dot matches newline"},
	{Letter: 'x', Flag: Extended, Name: "extended"},
}

// Has reports whether every bit of g is set.
func (f Flags) Has(g Flags) bool {
	return f&g == g
}

// Toggle flips the bits of g.
func (f Flags) Toggle(g Flags) Flags {
	return f ^ g
}

// String renders the set as modifier letters, e.g. "im".
func (f Flags) String() string {
	var b strings.Builder
	for _, m := range Modifiers {
		if f.Has(m.Flag) {
			b.WriteRune(m.Letter)
		}
	}
	return b.String()
}

// ModifierFor looks up a modifier by its letter.
func ModifierFor(letter rune) (Modifier, bool) {
	for _, m := range Modifiers {
		if m.Letter == letter {
			return m, true
		}
	}
	return Modifier{}, false
}

// ParseFlags reads a string of modifier letters. Order and repeats are ignored.
func ParseFlags(s string) (Flags, error) {
	var f Flags
	for _, r := range strings.TrimSpace(s) {
		m, ok := ModifierFor(r)
		if !ok {
			return 0, fmt.Errorf("unknown modifier %q (use any of \"imsx\")", r)
		}
		f |= m.Flag
	}
	return f, nil
}
