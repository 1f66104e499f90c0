package ai

import (
	"strings"

	"github.com/thomas-vilte/matestory/internal/regex"
)

// FallbackTitle is used when no usable title can be found in a completion.
const FallbackTitle = "User Story"

// titleRule matches a single trimmed line and yields a title candidate.
// The slice order below is the tie-break contract: the first rule that
// matches a line wins, and earlier lines win over later ones.
type titleRule struct {
	name  string
	match func(line string) (string, bool)
}

var titleRules = []titleRule{
	{
		name: "markdown-heading",
		match: func(line string) (string, bool) {
			if !strings.HasPrefix(line, "# ") {
				return "", false
			}
			return strings.TrimSpace(line[2:]), true
		},
	},
	{
		name: "title-prefix",
		match: func(line string) (string, bool) {
			if !regex.TitlePrefix.MatchString(line) {
				return "", false
			}
			_, after, _ := strings.Cut(line, ":")
			return strings.TrimSpace(after), true
		},
	},
}

// ExtractTitle scans the completion top to bottom and returns the first
// title a rule produces. With no rule match it falls back to the first
// non-empty line stripped of leading '#' runs, and finally to
// FallbackTitle. The result is never empty.
func ExtractTitle(completion string) string {
	lines := splitLines(completion)

	if _, title, ok := markerLine(lines); ok {
		if title == "" {
			return FallbackTitle
		}
		return title
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		title := strings.TrimSpace(strings.TrimLeft(line, "#"))
		if title == "" {
			continue
		}
		return title
	}

	return FallbackTitle
}

// ExtractBody returns everything strictly after the title marker line,
// joined and trimmed. When no marker exists the whole trimmed completion
// is the body, so no generated text is ever lost.
func ExtractBody(completion string) string {
	lines := splitLines(completion)

	if idx, _, ok := markerLine(lines); ok {
		return strings.TrimSpace(strings.Join(lines[idx+1:], "\n"))
	}

	return strings.TrimSpace(completion)
}

// markerLine finds the first line any title rule matches. It returns the
// line index, the extracted title (possibly empty) and whether a marker
// was found at all.
func markerLine(lines []string) (int, string, bool) {
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		for _, rule := range titleRules {
			if title, ok := rule.match(line); ok {
				return i, title, true
			}
		}
	}
	return -1, "", false
}

func splitLines(completion string) []string {
	trimmed := strings.TrimSpace(completion)
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
