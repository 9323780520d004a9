package chat

import (
	"context"
	"strings"

	"targeting-backend/internal/llm"
)

// interviewWindow bounds how much history the interview instruction set sees.
const interviewWindow = 10

type interviewResult struct {
	ready             bool
	message           string
	questionNumber    int
	totalQuestions    int
	context           AudienceContext
	searchDescription string
}

// runInterview drives one turn of the clarifying-question interview. The
// reasoning service decides when enough topics are answered; this step only
// relays the window and normalizes the reply. Unparseable output degrades to
// a plain question at position 0 of 0 rather than an error.
func (s *Service) runInterview(ctx context.Context, message string, history []Turn) (interviewResult, error) {
	window := history
	if len(window) > interviewWindow {
		window = window[len(window)-interviewWindow:]
	}

	messages := make([]llm.Message, 0, len(window)+1)
	for _, turn := range window {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: message})

	text, err := s.complete(ctx, llm.InterviewPrompt(), messages)
	if err != nil {
		return interviewResult{}, err
	}

	payload, err := extractPayload(text)
	if err != nil {
		return interviewResult{message: strings.TrimSpace(text)}, nil
	}

	res := interviewResult{
		ready:             stringField(payload, "type") == TypeReady,
		message:           stringField(payload, "message"),
		questionNumber:    intField(payload, "questionNumber"),
		totalQuestions:    intField(payload, "totalQuestions"),
		context:           contextField(payload, "context"),
		searchDescription: stringField(payload, "searchDescription"),
	}
	if res.message == "" {
		res.message = strings.TrimSpace(text)
	}
	return res, nil
}
