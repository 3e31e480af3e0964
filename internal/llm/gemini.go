package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// Gemini implements Client with the Google GenAI SDK against the Gemini API backend.
type Gemini struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewGemini returns a Client for the Gemini API with the given key.
func NewGemini(apiKey string) *Gemini {
	return &Gemini{apiKey: apiKey}
}

// WithBaseURL points the client at another host (tests, proxies).
func (c *Gemini) WithBaseURL(u string) *Gemini {
	c.baseURL = u
	return c
}

func geminiContents(history []Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := genai.Role(genai.RoleUser)
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		out = append(out, genai.NewContentFromText(m.Content, role))
	}
	return out
}

// Complete sends the history with the system prompt as system instruction.
func (c *Gemini) Complete(ctx context.Context, model, systemPrompt string, history []Message) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("gemini: %w", ErrNoAPIKey)
	}
	if model == "" {
		model = defaultGeminiModel
	}
	cc := &genai.ClientConfig{
		APIKey:     c.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.client,
	}
	if c.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return "", fmt.Errorf("gemini: failed to create client: %w", err)
	}

	var config *genai.GenerateContentConfig
	if systemPrompt != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		}
	}
	resp, err := client.Models.GenerateContent(ctx, model, geminiContents(history), config)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return text, nil
}
