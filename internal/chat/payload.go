package chat

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnparseable marks reasoning output that could not be interpreted as a
// structured payload. Every caller has a defined fallback for it; it is never
// surfaced to the HTTP caller.
var ErrUnparseable = errors.New("unparseable reasoning output")

var fenceMarker = regexp.MustCompile("```(?:json)?\n?")

// extractPayload interprets free text as a JSON object. It strips markdown
// code fences, and when the text carries leading or trailing commentary it
// falls back to the first balanced {...} span.
func extractPayload(text string) (map[string]any, error) {
	cleaned := strings.TrimSpace(fenceMarker.ReplaceAllString(text, ""))
	if cleaned == "" {
		return nil, ErrUnparseable
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(cleaned), &payload); err == nil {
		return payload, nil
	}

	span, ok := firstBalancedObject(cleaned)
	if !ok {
		return nil, ErrUnparseable
	}
	if err := json.Unmarshal([]byte(span), &payload); err != nil {
		return nil, ErrUnparseable
	}
	return payload, nil
}

// firstBalancedObject returns the first {...} span with balanced braces,
// ignoring braces inside JSON strings.
func firstBalancedObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

func stringField(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func intField(payload map[string]any, key string) int {
	switch v := payload[key].(type) {
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func stringSliceField(payload map[string]any, key string) []string {
	raw, ok := payload[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

func contextField(payload map[string]any, key string) AudienceContext {
	raw, ok := payload[key].(map[string]any)
	if !ok {
		return AudienceContext{}
	}
	return AudienceContext{
		Company:     stringField(raw, "company"),
		Seniority:   stringField(raw, "seniority"),
		Industry:    stringField(raw, "industry"),
		CompanySize: stringField(raw, "companySize"),
		Exclusions:  stringField(raw, "exclusions"),
	}
}
