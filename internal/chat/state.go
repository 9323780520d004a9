package chat

// stage is the execution branch inferred from conversation history.
type stage int

const (
	stageInterview stage = iota
	stageReady
	stageRefinement
)

// classifyStage decides the execution branch from history alone. It returns
// the stage and, for stageReady, the search description carried by the ready
// payload (authoritative context override for generation).
//
// Refinement wins over everything: once any turn carries a titles result,
// every later message is a refinement request. Otherwise the most recent
// assistant turn decides: a ready payload selects generation, anything else
// falls through to the interview. Turns that do not parse as structured
// payloads are plain conversational text, never errors.
func classifyStage(history []Turn) (stage, string) {
	for _, turn := range history {
		payload, err := extractPayload(turn.Content)
		if err != nil {
			continue
		}
		if isTitlesPayload(payload) {
			return stageRefinement, ""
		}
	}

	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role != RoleAssistant {
			continue
		}
		if payload, err := extractPayload(history[i].Content); err == nil {
			if stringField(payload, "type") == TypeReady {
				return stageReady, stringField(payload, "searchDescription")
			}
		}
		break
	}

	return stageInterview, ""
}

func isTitlesPayload(payload map[string]any) bool {
	if stringField(payload, "type") == TypeTitles {
		return true
	}
	_, ok := payload["titles"]
	return ok
}
