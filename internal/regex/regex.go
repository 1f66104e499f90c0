package regex

import "regexp"

var (
	// Completion title markers
	TitlePrefix = regexp.MustCompile(`(?i)^title:`)

	// Placeholder detection. Titles matching these are still passed through
	// verbatim; the patterns only drive warnings in the CLI.
	PlaceholderTitle    = regexp.MustCompile(`(?i)^title$`)
	PlaceholderBrackets = regexp.MustCompile(`^\[.*]$`)

	// Repo targeting
	OwnerRepo = regexp.MustCompile(`^([^/\s]+)/([^/\s]+)$`)

	// Markdown structure
	MarkdownCheckbox = regexp.MustCompile(`^\s*[\-*+]\s+\[([ xX])]\s+(.+)`)
)
