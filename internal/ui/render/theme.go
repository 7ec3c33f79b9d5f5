package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/regexfu/internal/highlight"
)

// ColorTheme defines application colors.
type ColorTheme struct {
	Background   tcell.Color
	Foreground   tcell.Color
	HeaderBg     tcell.Color
	HeaderFg     tcell.Color
	TitleFg      tcell.Color
	FocusTitleBg tcell.Color
	FocusTitleFg tcell.Color
	FlagOnBg     tcell.Color
	FlagOnFg     tcell.Color
	FlagOffFg    tcell.Color
	HintFg       tcell.Color
	FooterBg     tcell.Color
	FooterFg     tcell.Color
	Matches      []tcell.Color
	Brace        tcell.Color
	Error        tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:   tcell.ColorDefault,
		Foreground:   tcell.ColorDefault,
		HeaderBg:     tcell.Color33,
		HeaderFg:     tcell.ColorWhite,
		TitleFg:      tcell.ColorLightSlateGray,
		FocusTitleBg: tcell.Color33,
		FocusTitleFg: tcell.ColorWhite,
		FlagOnBg:     tcell.ColorWhite,
		FlagOnFg:     tcell.ColorBlack,
		FlagOffFg:    tcell.Color111,
		HintFg:       tcell.ColorGray,
		FooterBg:     tcell.ColorDefault,
		FooterFg:     tcell.ColorDefault,
		Matches:      []tcell.Color{tcell.ColorYellow, tcell.ColorAqua, tcell.ColorFuchsia},
		Brace:        tcell.ColorLime,
		Error:        tcell.ColorRed,
	}
}

// WithColorNames overrides the highlight colours by name ("yellow", "#ffcc00").
// Empty names keep the current colour.
func (t ColorTheme) WithColorNames(matches []string, brace, errColor string) (ColorTheme, error) {
	if len(matches) > 0 {
		colors := make([]tcell.Color, 0, len(matches))
		for _, name := range matches {
			c, err := parseColor(name)
			if err != nil {
				return t, err
			}
			colors = append(colors, c)
		}
		t.Matches = colors
	}
	if brace != "" {
		c, err := parseColor(brace)
		if err != nil {
			return t, err
		}
		t.Brace = c
	}
	if errColor != "" {
		c, err := parseColor(errColor)
		if err != nil {
			return t, err
		}
		t.Error = c
	}
	return t, nil
}

func parseColor(name string) (tcell.Color, error) {
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault && name != "default" {
		return c, fmt.Errorf("unknown colour %q", name)
	}
	return c, nil
}

// highlightStyle paints a span of kind on top of base.
func (t ColorTheme) highlightStyle(base tcell.Style, kind highlight.Kind) tcell.Style {
	switch kind {
	case highlight.KindBrace:
		return base.Background(t.Brace).Foreground(tcell.ColorBlack).Bold(true)
	case highlight.KindError:
		return base.Foreground(t.Error).Underline(true)
	default:
		return base.Background(t.matchColor(kind)).Foreground(tcell.ColorBlack)
	}
}

func (t ColorTheme) matchColor(kind highlight.Kind) tcell.Color {
	if len(t.Matches) == 0 {
		return tcell.ColorYellow
	}
	n := 0
	for i, k := range highlight.MatchKinds {
		if k == kind {
			n = i
		}
	}
	return t.Matches[n%len(t.Matches)]
}
