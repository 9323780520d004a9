// Package webscan fetches a website, strips it to readable text, and
// summarizes it for use as conversational context in the chat flow.
package webscan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"

	"targeting-backend/internal/llm"
	"targeting-backend/internal/shared/telemetry"
)

const (
	defaultMaxChars = 12000
	maxBodyBytes    = 4 << 20 // 4MB
	userAgent       = "TargetingBot/1.0"
)

// ErrInvalidURL marks scan requests rejected before any fetch is attempted.
var ErrInvalidURL = errors.New("a valid http or https url is required")

// Result is the outcome of one website scan.
type Result struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// Service fetches and summarizes websites.
type Service struct {
	LLM        llm.Client
	HTTPClient *http.Client
	MaxChars   int
}

// NewService constructs a Service with a bounded HTTP client.
func NewService(client llm.Client, maxChars int) *Service {
	if maxChars <= 0 {
		maxChars = defaultMaxChars
	}
	return &Service{
		LLM:        client,
		HTTPClient: &http.Client{Timeout: 20 * time.Second},
		MaxChars:   maxChars,
	}
}

// Scan fetches rawURL, extracts the readable text, and summarizes it through
// the reasoning service. The summary feeds back into the chat flow as
// ordinary conversational context.
func (s *Service) Scan(ctx context.Context, rawURL string) (Result, error) {
	parsed, err := parseScanURL(rawURL)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("fetch website: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("fetch website: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Result{}, fmt.Errorf("read website: %w", err)
	}

	article, err := readability.FromReader(strings.NewReader(string(body)), parsed)
	if err != nil {
		return Result{}, fmt.Errorf("extract content: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return Result{}, fmt.Errorf("no readable content at %s", parsed.String())
	}
	if len(text) > s.MaxChars {
		cut := s.MaxChars
		// Back up to a rune boundary so the cap never splits a multi-byte
		// character.
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	summary, err := s.LLM.Complete(ctx, llm.ScanSummaryPrompt(), []llm.Message{
		{Role: llm.RoleUser, Content: text},
	})
	if err != nil {
		return Result{}, err
	}

	telemetry.Info("webscan.complete", map[string]any{
		"url":   parsed.String(),
		"chars": len(text),
	})

	return Result{
		URL:     parsed.String(),
		Title:   strings.TrimSpace(article.Title),
		Summary: strings.TrimSpace(summary),
	}, nil
}

func parseScanURL(rawURL string) (*url.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, ErrInvalidURL
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, ErrInvalidURL
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, ErrInvalidURL
	}
	if parsed.Host == "" {
		return nil, ErrInvalidURL
	}
	return parsed, nil
}
