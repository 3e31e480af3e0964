package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	openAIBaseURL = "https://api.openai.com/v1/chat/completions"
	groqBaseURL   = "https://api.groq.com/openai/v1/chat/completions"
	xaiBaseURL    = "https://api.x.ai/v1/chat/completions"
)

// OpenAI implements Client against an OpenAI-compatible Chat Completions endpoint.
// Groq and xAI speak the same shape, so they are OpenAI clients with another URL and default model.
type OpenAI struct {
	name         string
	url          string
	defaultModel string
	apiKey       string
	client       *http.Client
}

// NewOpenAI returns a Client that uses the OpenAI API with the given API key.
func NewOpenAI(apiKey string) *OpenAI {
	return NewCompatible("openai", openAIBaseURL, "gpt-4o-mini", apiKey)
}

// NewGroq returns a Client that uses Groq's OpenAI-compatible API.
func NewGroq(apiKey string) *OpenAI {
	return NewCompatible("groq", groqBaseURL, "llama-3.1-8b-instant", apiKey)
}

// NewXAI returns a Client that uses xAI's OpenAI-compatible API.
func NewXAI(apiKey string) *OpenAI {
	return NewCompatible("xai", xaiBaseURL, "grok-3-mini", apiKey)
}

// NewCompatible returns a Client for any OpenAI-compatible endpoint. name prefixes errors.
func NewCompatible(name, url, defaultModel, apiKey string) *OpenAI {
	return &OpenAI{
		name:         name,
		url:          url,
		defaultModel: defaultModel,
		apiKey:       apiKey,
		client:       http.DefaultClient,
	}
}

// Name is the provider name used in errors and logs.
func (c *OpenAI) Name() string {
	return c.name
}

type openAIRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type openAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends the system prompt and history and returns the assistant reply.
func (c *OpenAI) Complete(ctx context.Context, model, systemPrompt string, history []Message) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%s: %w", c.name, ErrNoAPIKey)
	}
	if model == "" {
		model = c.defaultModel
	}
	reqBody := openAIRequest{
		Model:    model,
		Messages: withSystem(systemPrompt, history),
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.name, err)
	}
	defer resp.Body.Close()

	var out openAIResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)
	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && out.Error != nil && out.Error.Message != "" {
			return "", fmt.Errorf("%s: %s: %s", c.name, resp.Status, out.Error.Message)
		}
		return "", fmt.Errorf("%s: %s", c.name, resp.Status)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("%s: %w", c.name, decodeErr)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices in response", c.name)
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
