package match

import (
	"regexp"
	"unicode/utf8"
)

// re2Engine wraps the standard library. RE2 has no extended mode, so the x
// modifier is rejected at compile time.
type re2Engine struct{}

func (re2Engine) Name() string { return EngineRE2 }

func (re2Engine) Compile(pattern string, flags Flags) (Pattern, error) {
	if flags.Has(Extended) {
		return nil, &CompileError{
			Engine:  EngineRE2,
			Pattern: pattern,
			Message: "extended mode (x) is not supported by the re2 engine",
		}
	}
	re, err := regexp.Compile(re2Prefix(flags) + pattern)
	if err != nil {
		return nil, &CompileError{
			Engine:  EngineRE2,
			Pattern: pattern,
			Message: err.Error(),
			Err:     err,
		}
	}
	return &re2Pattern{re: re}, nil
}

func re2Prefix(flags Flags) string {
	var letters []byte
	if flags.Has(CaseInsensitive) {
		letters = append(letters, 'i')
	}
	if flags.Has(Multiline) {
		letters = append(letters, 'm')
	}
	if flags.Has(DotAll) {
		letters = append(letters, 's')
	}
	if len(letters) == 0 {
		return ""
	}
	return "(?" + string(letters) + ")"
}

type re2Pattern struct {
	re *regexp.Regexp
}

func (p *re2Pattern) NumGroups() int {
	return p.re.NumSubexp()
}

func (p *re2Pattern) Matcher(subject string) Matcher {
	return &re2Matcher{re: p.re, subject: subject}
}

// re2Matcher resolves all matches on the first Find: the standard library
// cannot resume a search at an offset while keeping anchor context.
type re2Matcher struct {
	re      *regexp.Regexp
	subject string
	matches [][]int
	loaded  bool
	next    int
}

func (m *re2Matcher) Find() (Result, bool, error) {
	if !m.loaded {
		m.loaded = true
		m.matches = m.re.FindAllStringSubmatchIndex(m.subject, -1)
	}
	if m.next >= len(m.matches) {
		return Result{}, false, nil
	}
	loc := m.matches[m.next]
	m.next++

	names := m.re.SubexpNames()
	res := Result{
		Span: m.span(loc[0], loc[1]),
		Text: m.subject[loc[0]:loc[1]],
	}
	for i := 1; i*2 < len(loc); i++ {
		group := Group{Index: i, Name: names[i]}
		start, end := loc[2*i], loc[2*i+1]
		if start >= 0 {
			group.Matched = true
			group.Span = m.span(start, end)
			group.Text = m.subject[start:end]
		}
		res.Groups = append(res.Groups, group)
	}
	return res, true, nil
}

func (m *re2Matcher) span(start, end int) Span {
	from := utf8.RuneCountInString(m.subject[:start])
	return Span{Start: from, End: from + utf8.RuneCountInString(m.subject[start:end])}
}
