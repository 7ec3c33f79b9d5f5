package brace

// closers maps each closing bracket to the opener it pairs with.
var closers = map[rune]rune{
	')': '(',
	']': '[',
	'}': '{',
}

// openers is the set of opening bracket characters.
var openers = map[rune]bool{
	'(': true,
	'[': true,
	'{': true,
}

// Index maps the offset of every matched bracket to its partner's offset.
// The mapping is symmetric and contains no unmatched or escaped brackets.
type Index struct {
	partner map[int]int
}

// Build scans text once and pairs brackets per kind. A bracket preceded by
// an odd run of backslashes is escaped and ignored. Unmatched closers are
// dropped silently, as are openers left on a stack at the end.
func Build(text []rune) Index {
	idx := Index{partner: make(map[int]int)}
	stacks := make(map[rune][]int, len(openers))
	backslashes := 0

	for i, ch := range text {
		escaped := backslashes%2 == 1
		if ch == '\\' {
			backslashes++
			continue
		}
		backslashes = 0
		if escaped {
			continue
		}

		if openers[ch] {
			stacks[ch] = append(stacks[ch], i)
			continue
		}

		open, ok := closers[ch]
		if !ok {
			continue
		}
		stack := stacks[open]
		if len(stack) == 0 {
			continue
		}
		j := stack[len(stack)-1]
		stacks[open] = stack[:len(stack)-1]
		idx.partner[i] = j
		idx.partner[j] = i
	}

	return idx
}

// BuildString is Build for a string.
func BuildString(text string) Index {
	return Build([]rune(text))
}

// Partner returns the offset paired with pos.
func (x Index) Partner(pos int) (int, bool) {
	j, ok := x.partner[pos]
	return j, ok
}

// Len reports the number of mapped offsets (twice the number of pairs).
func (x Index) Len() int {
	return len(x.partner)
}

// Equal reports whether both indexes hold the same mapping.
func (x Index) Equal(other Index) bool {
	if len(x.partner) != len(other.partner) {
		return false
	}
	for k, v := range x.partner {
		if w, ok := other.partner[k]; !ok || w != v {
			return false
		}
	}
	return true
}

// Offsets returns a copy of the mapping.
func (x Index) Offsets() map[int]int {
	out := make(map[int]int, len(x.partner))
	for k, v := range x.partner {
		out[k] = v
	}
	return out
}
