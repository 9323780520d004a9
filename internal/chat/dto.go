package chat

// Turn is one conversation turn. History is caller-owned and passed in full
// on every request; the service keeps no state between calls.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Response type discriminators.
const (
	TypeQuestion = "question"
	TypeReady    = "ready"
	TypeTitles   = "titles"
)

// AudienceContext is the targeting context gathered during the interview.
type AudienceContext struct {
	Company     string `json:"company"`
	Seniority   string `json:"seniority"`
	Industry    string `json:"industry"`
	CompanySize string `json:"companySize"`
	Exclusions  string `json:"exclusions"`
}

// TitleTiers partitions a recommendation by match confidence.
type TitleTiers struct {
	High    []string `json:"high"`
	Medium  []string `json:"medium"`
	Explore []string `json:"explore"`
}

// Response is the discriminated chat result: an interview question, a ready
// signal, or a tiered title recommendation.
type Response struct {
	Type              string           `json:"type"`
	Message           string           `json:"message"`
	QuestionNumber    int              `json:"questionNumber,omitempty"`
	TotalQuestions    int              `json:"totalQuestions,omitempty"`
	Context           *AudienceContext `json:"context,omitempty"`
	SearchDescription string           `json:"searchDescription,omitempty"`
	AudienceName      string           `json:"audienceName,omitempty"`
	Titles            *TitleTiers      `json:"titles,omitempty"`
	TotalCount        int              `json:"totalCount"`
	Reasoning         string           `json:"reasoning,omitempty"`
	Tip               string           `json:"tip,omitempty"`
}
