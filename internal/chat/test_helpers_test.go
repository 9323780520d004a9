package chat

import (
	"context"

	"targeting-backend/internal/llm"
)

// fakeLLM replays scripted responses in call order and records every call.
type fakeLLM struct {
	responses []string
	errs      []error
	calls     []llmCall
}

type llmCall struct {
	system   string
	messages []llm.Message
}

func (f *fakeLLM) Complete(ctx context.Context, system string, messages []llm.Message) (string, error) {
	i := len(f.calls)
	f.calls = append(f.calls, llmCall{system: system, messages: messages})
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var resp string
	if i < len(f.responses) {
		resp = f.responses[i]
	}
	return resp, err
}

func (f *fakeLLM) lastUserContent() string {
	if len(f.calls) == 0 {
		return ""
	}
	msgs := f.calls[len(f.calls)-1].messages
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1].Content
}
