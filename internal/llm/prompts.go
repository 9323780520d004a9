package llm

import _ "embed"

var (
	//go:embed prompts/interview.txt
	interviewPrompt string
	//go:embed prompts/keywords.txt
	keywordsPrompt string
	//go:embed prompts/selection.txt
	selectionPrompt string
	//go:embed prompts/audience_name.txt
	audienceNamePrompt string
	//go:embed prompts/scan_summary.txt
	scanSummaryPrompt string
)

// InterviewPrompt returns the instruction set for the clarifying-question interview.
func InterviewPrompt() string {
	return interviewPrompt
}

// KeywordsPrompt returns the instruction set for search-keyword expansion.
func KeywordsPrompt() string {
	return keywordsPrompt
}

// SelectionPrompt returns the instruction set for grouping candidate titles into tiers.
func SelectionPrompt() string {
	return selectionPrompt
}

// AudienceNamePrompt returns the addendum instructing the model to produce a
// campaign-style audience name. Appended to the selection prompt in the
// full-context flow.
func AudienceNamePrompt() string {
	return audienceNamePrompt
}

// ScanSummaryPrompt returns the instruction set for summarizing scanned websites.
func ScanSummaryPrompt() string {
	return scanSummaryPrompt
}
