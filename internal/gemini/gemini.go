// Package gemini produces optional abstractive summaries next to the
// extractive ones.
package gemini

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/deusflow/newsbrief/internal/logger"
)

const maxContentChars = 6000

type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// Summarize asks the model for a short English summary of one article.
func (c *Client) Summarize(ctx context.Context, title, content string) (string, error) {
	model := c.client.GenerativeModel(c.model)

	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(title, sanitize(content))))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	response := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return parseResponse(response)
}

// sanitize collapses whitespace and cuts long content on a rune boundary,
// preferring to end at a sentence.
func sanitize(content string) string {
	content = strings.ReplaceAll(content, "\r", "")
	content = strings.Join(strings.Fields(content), " ")
	if utf8.RuneCountInString(content) <= maxContentChars {
		return content
	}

	runes := []rune(content)
	trimmed := string(runes[:maxContentChars])
	if idx := strings.LastIndex(trimmed, ". "); idx > 1200 {
		trimmed = trimmed[:idx+1]
	}
	return trimmed + "\n[TRUNCATED]"
}

func buildPrompt(title, content string) string {
	return fmt.Sprintf(`Summarize this news article in 3-5 plain sentences.

ARTICLE:
Title: %s
Content: %s

RULES:
Keep names of people, places and organisations unchanged.
Do not start with phrases like "This article is about".

Answer strictly in this format:

SUMMARY: <summary>
`, title, content)
}

var summaryLabel = regexp.MustCompile(`(?i)^\**\s*(SUMMARY|TL;DR)\s*(:\s*\**|\**\s*:)\s*`)

// parseResponse takes the text after the SUMMARY label, including
// continuation lines. Without a label the whole answer is used.
func parseResponse(response string) (string, error) {
	var b strings.Builder
	inSummary := false

	for _, raw := range strings.Split(response, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if summaryLabel.MatchString(line) {
			inSummary = true
			line = strings.TrimSpace(summaryLabel.ReplaceAllString(line, ""))
		}
		if !inSummary || line == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(line)
	}

	summary := strings.TrimSpace(b.String())
	if summary == "" {
		summary = strings.Join(strings.Fields(response), " ")
		if summary != "" {
			logger.Warn("gemini answer without SUMMARY label, using raw text")
		}
	}
	if summary == "" {
		return "", fmt.Errorf("could not parse Gemini response: empty summary")
	}
	return summary, nil
}
