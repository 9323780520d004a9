package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"targeting-backend/internal/catalog"
)

func testCatalog(extra ...string) *catalog.Catalog {
	titles := append([]string{
		"Chief Information Officer",
		"IT Director",
		"VP of Sales",
		"Sales Director",
		"Software Engineer",
	}, extra...)
	return catalog.New(titles)
}

func TestGenerateUsesContextOverrideVerbatim(t *testing.T) {
	llmStub := &fakeLLM{responses: []string{
		"sales, vp",
		`{"intro":"ok","high":["VP of Sales"],"medium":[],"explore":[]}`,
	}}
	svc := &Service{Catalog: testCatalog(), LLM: llmStub}

	history := []Turn{
		{Role: RoleUser, Content: "this history content must be ignored"},
	}
	_, err := svc.generateTitles(context.Background(), "go ahead", history, "VP of sales, enterprise SaaS")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	keywordInput := llmStub.calls[0].messages[0].Content
	if keywordInput != "VP of sales, enterprise SaaS" {
		t.Fatalf("expected override as keyword input, got %q", keywordInput)
	}
}

func TestGenerateBuildsContextFromUserTurns(t *testing.T) {
	llmStub := &fakeLLM{responses: []string{
		"sales",
		`{"intro":"ok","high":["VP of Sales"],"medium":[],"explore":[]}`,
	}}
	svc := &Service{Catalog: testCatalog(), LLM: llmStub}

	history := []Turn{
		{Role: RoleUser, Content: "we sell CRM software"},
		{Role: RoleAssistant, Content: "who buys it?"},
		{Role: RoleUser, Content: "sales leaders"},
	}
	if _, err := svc.generateTitles(context.Background(), "show me titles", history, ""); err != nil {
		t.Fatalf("generate: %v", err)
	}

	keywordInput := llmStub.calls[0].messages[0].Content
	want := "we sell CRM software\nsales leaders\nshow me titles"
	if keywordInput != want {
		t.Fatalf("expected working context %q, got %q", want, keywordInput)
	}
}

func TestGenerateKeywordFallbackToMessage(t *testing.T) {
	llmStub := &fakeLLM{responses: []string{
		"   ",
		`{"intro":"ok","high":["Sales Director"],"medium":[],"explore":[]}`,
	}}
	svc := &Service{Catalog: testCatalog(), LLM: llmStub}

	if _, err := svc.generateTitles(context.Background(), "sales leadership", nil, ""); err != nil {
		t.Fatalf("generate: %v", err)
	}
	// Second call happened, meaning retrieval found candidates from the
	// message alone.
	if len(llmStub.calls) != 2 {
		t.Fatalf("expected 2 reasoning calls, got %d", len(llmStub.calls))
	}
}

func TestGenerateNoCandidatesShortCircuits(t *testing.T) {
	llmStub := &fakeLLM{responses: []string{"quux, xyzzy"}}
	svc := &Service{Catalog: testCatalog(), LLM: llmStub}

	resp, err := svc.generateTitles(context.Background(), "xyzzy", nil, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(llmStub.calls) != 1 {
		t.Fatalf("no-match must not make a second reasoning call, got %d calls", len(llmStub.calls))
	}
	if resp.TotalCount != 0 {
		t.Fatalf("expected totalCount 0, got %d", resp.TotalCount)
	}
	if len(resp.Titles.High)+len(resp.Titles.Medium)+len(resp.Titles.Explore) != 0 {
		t.Fatalf("expected empty tiers, got %+v", resp.Titles)
	}
	if !strings.Contains(resp.Message, "describing your audience differently") {
		t.Fatalf("unexpected no-match message: %q", resp.Message)
	}
}

func TestGeneratePositionalFallbackOnUnparseableOutput(t *testing.T) {
	titles := make([]string, 40)
	for i := range titles {
		titles[i] = fmt.Sprintf("Sales Manager %02d", i)
	}
	llmStub := &fakeLLM{responses: []string{
		"sales",
		"Here are some thoughts in plain prose, no JSON at all.",
	}}
	svc := &Service{Catalog: catalog.New(titles), LLM: llmStub}

	resp, err := svc.generateTitles(context.Background(), "sales managers", nil, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(resp.Titles.High) != 15 {
		t.Fatalf("expected 15 high, got %d", len(resp.Titles.High))
	}
	if len(resp.Titles.Medium) != 15 {
		t.Fatalf("expected 15 medium, got %d", len(resp.Titles.Medium))
	}
	if len(resp.Titles.Explore) != 0 {
		t.Fatalf("expected empty explore, got %d", len(resp.Titles.Explore))
	}
	if resp.TotalCount != 30 {
		t.Fatalf("expected totalCount 30, got %d", resp.TotalCount)
	}
	if resp.Reasoning != parseFailureReason {
		t.Fatalf("expected parse-failure reasoning, got %q", resp.Reasoning)
	}
	if resp.Message != "Here are some thoughts in plain prose, no JSON at all." {
		t.Fatalf("fallback must pass raw text through, got %q", resp.Message)
	}
}

func TestGenerateParsedResponseDefaults(t *testing.T) {
	llmStub := &fakeLLM{responses: []string{
		"sales",
		`{"high":["VP of Sales","Sales Director"]}`,
	}}
	svc := &Service{Catalog: testCatalog(), LLM: llmStub}

	resp, err := svc.generateTitles(context.Background(), "sales leaders", nil, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp.TotalCount != 2 {
		t.Fatalf("expected totalCount 2, got %d", resp.TotalCount)
	}
	if len(resp.Titles.Medium) != 0 || len(resp.Titles.Explore) != 0 {
		t.Fatalf("absent tiers must default empty: %+v", resp.Titles)
	}
	if resp.Message != defaultIntro {
		t.Fatalf("expected default intro, got %q", resp.Message)
	}
}

func TestGenerateSelectionPromptIncludesCandidates(t *testing.T) {
	llmStub := &fakeLLM{responses: []string{
		"sales director",
		`{"intro":"ok","high":["Sales Director"],"medium":[],"explore":[]}`,
	}}
	svc := &Service{Catalog: testCatalog(), LLM: llmStub}

	if _, err := svc.generateTitles(context.Background(), "sales directors", nil, ""); err != nil {
		t.Fatalf("generate: %v", err)
	}

	request := llmStub.lastUserContent()
	if !strings.Contains(request, "Sales Director") {
		t.Fatalf("selection request must list candidates, got %q", request)
	}
	if !strings.Contains(request, "candidate job titles") {
		t.Fatalf("selection request missing candidate count line: %q", request)
	}
}

func TestGenerateAudienceNameOnlyInFullContextFlow(t *testing.T) {
	run := func(override string) string {
		llmStub := &fakeLLM{responses: []string{
			"sales",
			`{"intro":"ok","high":["VP of Sales"]}`,
		}}
		svc := &Service{Catalog: testCatalog(), LLM: llmStub}
		if _, err := svc.generateTitles(context.Background(), "sales leaders", nil, override); err != nil {
			t.Fatalf("generate: %v", err)
		}
		return llmStub.calls[1].system
	}

	if sys := run(""); !strings.Contains(sys, "audienceName") {
		t.Fatal("full-context flow must request an audience name")
	}
	if sys := run("VP of sales"); strings.Contains(sys, "audienceName") {
		t.Fatal("override flow must not request an audience name")
	}
}

func TestGeneratePropagatesKeywordCallFailure(t *testing.T) {
	wantErr := errors.New("timeout")
	llmStub := &fakeLLM{errs: []error{wantErr}}
	svc := &Service{Catalog: testCatalog(), LLM: llmStub}

	if _, err := svc.generateTitles(context.Background(), "sales", nil, ""); !errors.Is(err, wantErr) {
		t.Fatalf("expected propagated error, got %v", err)
	}
}
