package chat

import (
	"context"
	"fmt"
	"strings"

	"targeting-backend/internal/llm"
	"targeting-backend/internal/shared/metrics"
	"targeting-backend/internal/shared/telemetry"
)

const (
	fallbackHighCount   = 15
	fallbackMediumCount = 15

	parseFailureReason = "Could not parse structured response."
	noMatchReason      = "No matches found for the given description."
	noMatchMessage     = "I couldn't find any matching titles. Try describing your audience differently - for example, mention the job function, seniority level, or industry."
	defaultIntro       = "Here are my suggestions:"
)

// generateTitles runs the two-call generation pipeline: keyword expansion,
// local candidate retrieval, then title selection over the candidates. A
// non-empty contextOverride is used verbatim as the working context;
// otherwise the context is rebuilt from every user-authored turn plus the
// new message.
func (s *Service) generateTitles(ctx context.Context, message string, history []Turn, contextOverride string) (Response, error) {
	workingContext := strings.TrimSpace(contextOverride)
	fullContext := workingContext == ""
	if fullContext {
		workingContext = buildWorkingContext(message, history)
	}

	terms, err := s.expandKeywords(ctx, workingContext)
	if err != nil {
		return Response{}, err
	}
	if terms == "" {
		terms = message
	}

	candidates := s.Catalog.Search(terms + " " + workingContext)
	telemetry.Debug("chat.retrieve", map[string]any{
		"candidates": len(candidates),
		"override":   !fullContext,
	})
	if len(candidates) == 0 {
		return Response{
			Type:      TypeTitles,
			Message:   noMatchMessage,
			Titles:    &TitleTiers{High: []string{}, Medium: []string{}, Explore: []string{}},
			Reasoning: noMatchReason,
		}, nil
	}

	system := llm.SelectionPrompt()
	if fullContext {
		system += "\n\n" + llm.AudienceNamePrompt()
	}

	messages := make([]llm.Message, 0, len(history)+1)
	for _, turn := range history {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: selectionRequest(message, candidates)})

	text, err := s.complete(ctx, system, messages)
	if err != nil {
		return Response{}, err
	}

	payload, err := extractPayload(text)
	if err != nil {
		metrics.IncTitlesGenerated()
		return positionalFallback(text, candidates), nil
	}

	high := stringSliceField(payload, "high")
	medium := stringSliceField(payload, "medium")
	explore := stringSliceField(payload, "explore")
	resp := Response{
		Type:         TypeTitles,
		Message:      stringField(payload, "intro"),
		AudienceName: stringField(payload, "audienceName"),
		Titles:       &TitleTiers{High: high, Medium: medium, Explore: explore},
		TotalCount:   len(high) + len(medium) + len(explore),
		Reasoning:    stringField(payload, "reasoning"),
		Tip:          stringField(payload, "tip"),
	}
	if resp.Message == "" {
		resp.Message = defaultIntro
	}
	metrics.IncTitlesGenerated()
	return resp, nil
}

// expandKeywords asks the reasoning service for search-term expansions of the
// working context. Empty output is "nothing usable" and falls back to the
// caller; transport errors propagate.
func (s *Service) expandKeywords(ctx context.Context, workingContext string) (string, error) {
	text, err := s.complete(ctx, llm.KeywordsPrompt(), []llm.Message{
		{Role: llm.RoleUser, Content: workingContext},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func buildWorkingContext(message string, history []Turn) string {
	var parts []string
	for _, turn := range history {
		if turn.Role == RoleUser && strings.TrimSpace(turn.Content) != "" {
			parts = append(parts, turn.Content)
		}
	}
	parts = append(parts, message)
	return strings.Join(parts, "\n")
}

func selectionRequest(message string, candidates []string) string {
	return fmt.Sprintf("Target audience description: %q\n\nHere are %d candidate job titles from LinkedIn's database. Select and group the most relevant ones:\n\n%s",
		message, len(candidates), strings.Join(candidates, "\n"))
}

// positionalFallback synthesizes tiers by slicing the ranked candidate list
// when the selection output cannot be parsed.
func positionalFallback(text string, candidates []string) Response {
	high := candidates
	if len(high) > fallbackHighCount {
		high = high[:fallbackHighCount]
	}
	medium := []string{}
	if len(candidates) > fallbackHighCount {
		medium = candidates[fallbackHighCount:]
		if len(medium) > fallbackMediumCount {
			medium = medium[:fallbackMediumCount]
		}
	}
	return Response{
		Type:       TypeTitles,
		Message:    strings.TrimSpace(text),
		Titles:     &TitleTiers{High: high, Medium: medium, Explore: []string{}},
		TotalCount: len(high) + len(medium),
		Reasoning:  parseFailureReason,
	}
}
