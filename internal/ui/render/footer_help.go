package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/regexfu/internal/state"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints for the footer.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	segments := contextualHelpSegments(state)
	segments = append(segments, persistentHelpSegments(state)...)

	return segments
}

func contextualHelpSegments(state *statepkg.AppState) []string {
	switch state.Focus {
	case statepkg.FocusPattern:
		segments := []string{"↵: first match"}
		if state.Session.CanNext() {
			segments = append(segments, "^N: next")
		}
		return append(segments, "Alt+imsx: flags", "Alt+↑↓: history")
	case statepkg.FocusSubject:
		segments := []string{"^F: first match"}
		if state.Session.CanNext() {
			segments = append(segments, "^N: next")
		}
		return segments
	default:
		return []string{"↵: next", "↑↓/Pg: scroll"}
	}
}

func persistentHelpSegments(state *statepkg.AppState) []string {
	segments := []string{"Tab: pane", "^R: reset"}
	if state.ClipboardAvailable {
		segments = append(segments, "^Y: copy result")
	}
	return append(segments, "F1: help", "^C: quit")
}
