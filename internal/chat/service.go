// Package chat implements the multi-turn targeting dialogue: a short guided
// interview, candidate retrieval over the title catalog, and a reasoning call
// that groups results into tiers. The service is stateless between calls;
// every request replays the caller-owned history to rebuild its state.
package chat

import (
	"context"
	"errors"
	"strings"

	"targeting-backend/internal/catalog"
	"targeting-backend/internal/llm"
	"targeting-backend/internal/shared/metrics"
	"targeting-backend/internal/shared/telemetry"
)

// ErrInvalidInput marks requests rejected before any external call.
var ErrInvalidInput = errors.New("message is required")

// Service contains the dialogue business logic.
type Service struct {
	Catalog *catalog.Catalog
	LLM     llm.Client
}

// Chat handles one message against the given history and returns a
// discriminated result: an interview question, a ready signal, or a tiered
// title recommendation. At most two sequential reasoning calls are made per
// invocation.
func (s *Service) Chat(ctx context.Context, message string, history []Turn) (Response, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Response{}, ErrInvalidInput
	}
	metrics.IncChatRequest()

	branch, searchDescription := classifyStage(history)
	telemetry.Debug("chat.stage", map[string]any{
		"stage":   branch.String(),
		"history": len(history),
	})

	switch branch {
	case stageRefinement:
		return s.generateTitles(ctx, message, history, "")
	case stageReady:
		return s.generateTitles(ctx, message, history, searchDescription)
	default:
		result, err := s.runInterview(ctx, message, history)
		if err != nil {
			return Response{}, err
		}
		audienceCtx := result.context
		if result.ready {
			return Response{
				Type:              TypeReady,
				Message:           result.message,
				Context:           &audienceCtx,
				SearchDescription: result.searchDescription,
			}, nil
		}
		return Response{
			Type:           TypeQuestion,
			Message:        result.message,
			QuestionNumber: result.questionNumber,
			TotalQuestions: result.totalQuestions,
			Context:        &audienceCtx,
		}, nil
	}
}

// complete proxies to the configured reasoning client and records call
// metrics on the way through.
func (s *Service) complete(ctx context.Context, system string, messages []llm.Message) (string, error) {
	metrics.IncReasoningCall()
	start := metrics.NowMillis()
	text, err := s.LLM.Complete(ctx, system, messages)
	metrics.ObserveReasoningDurationMs(metrics.NowMillis() - start)
	if err != nil {
		metrics.IncReasoningFailure()
	}
	return text, err
}

func (st stage) String() string {
	switch st {
	case stageRefinement:
		return "refinement"
	case stageReady:
		return "ready"
	default:
		return "interview"
	}
}
