package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/regexfu/internal/match"
	statepkg "github.com/kk-code-lab/regexfu/internal/state"
	textutil "github.com/kk-code-lab/regexfu/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines(state *statepkg.AppState) []string {
	flagEntries := make([]helpOverlayEntry, 0, len(match.Modifiers))
	for _, m := range match.Modifiers {
		desc := "Toggle " + m.Name
		if state != nil && state.Session != nil && state.Session.Flags().Has(m.Flag) {
			desc += " (on)"
		}
		flagEntries = append(flagEntries, helpOverlayEntry{keys: "Alt+" + string(m.Letter), desc: desc})
	}

	sections := []helpOverlaySection{
		{
			title: "Matching",
			entries: []helpOverlayEntry{
				{keys: "↵ (pattern)", desc: "First match"},
				{keys: "Ctrl+F", desc: "First match from any pane"},
				{keys: "Ctrl+N or F3", desc: "Next match"},
				{keys: "Ctrl+R", desc: "Reset pattern, subject, flags and history"},
			},
		},
		{
			title:   "Modifiers",
			entries: flagEntries,
		},
		{
			title: "History",
			entries: []helpOverlayEntry{
				{keys: "Alt+↑ / Ctrl+P", desc: "Older pattern"},
				{keys: "Alt+↓", desc: "Newer pattern"},
			},
		},
		{
			title: "Editing",
			entries: []helpOverlayEntry{
				{keys: "Tab / Shift+Tab", desc: "Switch pane"},
				{keys: "Ctrl+←/→", desc: "Move by word"},
				{keys: "Ctrl+A / Ctrl+E", desc: "Line start / end"},
				{keys: "Ctrl+W", desc: "Delete word"},
				{keys: "Ctrl+U", desc: "Clear pane"},
			},
		},
		{
			title: "Clipboard",
			entries: []helpOverlayEntry{
				{keys: "Ctrl+Y", desc: "Copy result transcript"},
				{keys: "Ctrl+K", desc: "Copy pattern"},
			},
		},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "Ctrl+Z", desc: "Suspend"},
				{keys: "Ctrl+C / Ctrl+Q", desc: "Quit"},
				{keys: "F1", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 40)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}

	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	desc := textutil.SanitizeTerminalText(entry.desc)
	return fmt.Sprintf("  %-16s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(state *statepkg.AppState, w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		r.fillLine(0, w, y, baseStyle)
	}

	title := " " + appTitle + " Help "
	headerStyle := baseStyle.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg).Bold(true)
	titleStart := 0
	titleWidth := r.measureTextWidth(title)
	if w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	lines := buildHelpOverlayLines(state)
	row := 2
	maxRow := h - 1
	for _, line := range lines {
		if row >= maxRow {
			break
		}
		text := strings.TrimRight(line, " ")
		text = r.truncateTextToWidth(text, w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	footer := "F1 toggle · Esc/q close"
	if h > 1 {
		r.fillLine(0, w, h-1, headerStyle)
		r.drawTextLine(0, h-1, w, r.truncateTextToWidth(footer, w), headerStyle)
	}
}
