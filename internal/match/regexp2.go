package match

import (
	"strconv"
	"time"

	"github.com/dlclark/regexp2"
)

type regexp2Engine struct {
	timeout time.Duration
}

func (e *regexp2Engine) Name() string { return EngineRegexp2 }

func (e *regexp2Engine) Compile(pattern string, flags Flags) (Pattern, error) {
	re, err := regexp2.Compile(pattern, regexp2Options(flags))
	if err != nil {
		return nil, &CompileError{
			Engine:  EngineRegexp2,
			Pattern: pattern,
			Message: err.Error(),
			Err:     err,
		}
	}
	if e.timeout > 0 {
		re.MatchTimeout = e.timeout
	}
	return &regexp2Pattern{re: re}, nil
}

func regexp2Options(flags Flags) regexp2.RegexOptions {
	opts := regexp2.None
	if flags.Has(CaseInsensitive) {
		opts |= regexp2.IgnoreCase
	}
	if flags.Has(Multiline) {
		opts |= regexp2.Multiline
	}
	if flags.Has(DotAll) {
		opts |= regexp2.Singleline
	}
	if flags.Has(Extended) {
		opts |= regexp2.IgnorePatternWhitespace
	}
	return opts
}

type regexp2Pattern struct {
	re *regexp2.Regexp
}

func (p *regexp2Pattern) NumGroups() int {
	// GetGroupNumbers includes group 0.
	return len(p.re.GetGroupNumbers()) - 1
}

func (p *regexp2Pattern) Matcher(subject string) Matcher {
	return &regexp2Matcher{re: p.re, subject: subject}
}

type regexp2Matcher struct {
	re      *regexp2.Regexp
	subject string
	last    *regexp2.Match
	started bool
	done    bool
}

func (m *regexp2Matcher) Find() (Result, bool, error) {
	if m.done {
		return Result{}, false, nil
	}

	var (
		next *regexp2.Match
		err  error
	)
	if !m.started {
		m.started = true
		next, err = m.re.FindStringMatch(m.subject)
	} else {
		next, err = m.re.FindNextMatch(m.last)
	}
	if err != nil {
		m.done = true
		return Result{}, false, err
	}
	if next == nil {
		m.done = true
		return Result{}, false, nil
	}
	m.last = next

	res := Result{
		Span: Span{Start: next.Index, End: next.Index + next.Length},
		Text: next.String(),
	}
	for _, g := range next.Groups()[1:] {
		num := m.re.GroupNumberFromName(g.Name)
		group := Group{Index: num}
		if g.Name != strconv.Itoa(num) {
			group.Name = g.Name
		}
		if len(g.Captures) > 0 {
			group.Matched = true
			group.Span = Span{Start: g.Index, End: g.Index + g.Length}
			group.Text = g.String()
		}
		res.Groups = append(res.Groups, group)
	}
	return res, true, nil
}
