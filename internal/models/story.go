package models

// StoryParams contains the user-provided inputs that steer story generation.
type StoryParams struct {
	// Title is the short working title of the feature or task
	Title string

	// Description is a brief description of the feature or user story
	Description string

	// Complexity is the expected complexity level (e.g.: "Low", "Medium", "High")
	Complexity string

	// Duration is the estimated duration (e.g.: "1 week")
	Duration string

	// Language is the language for content generation (e.g.: "es", "en")
	Language string
}

// StoryCompletion is the raw, unstructured completion returned by the AI
// provider. No structure is assumed beyond line breaks.
type StoryCompletion struct {
	// Text is the full completion text
	Text string

	// Usage contains metadata on token usage by the AI
	Usage *TokenUsage
}

// StoryDraft is the structured issue content extracted from a completion.
// Title and Body partition the raw text: every line not consumed as the
// title marker appears in the body, in original order.
type StoryDraft struct {
	// Title is the extracted issue title, never empty
	Title string

	// Body is the extracted issue body (may be empty)
	Body string

	// Raw is the completion the draft was extracted from
	Raw string

	// Usage contains metadata on token usage by the AI
	Usage *TokenUsage
}
