package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// DefaultOllamaBaseURL is the default base URL for a local Ollama server.
const DefaultOllamaBaseURL = "http://localhost:11434"

const defaultOllamaModel = "llama3.2"

// Ollama implements Client using the Ollama /api/chat endpoint.
type Ollama struct {
	baseURL string
	client  *http.Client
}

// NewOllama returns a Client that uses the Ollama API at baseURL (e.g. http://localhost:11434).
// If baseURL is empty, DefaultOllamaBaseURL is used.
func NewOllama(baseURL string) *Ollama {
	u := strings.TrimSuffix(baseURL, "/")
	if u == "" {
		u = DefaultOllamaBaseURL
	}
	return &Ollama{
		baseURL: u,
		client:  http.DefaultClient,
	}
}

type ollamaChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type ollamaChatResponse struct {
	Message Message `json:"message"`
	Error   string  `json:"error,omitempty"`
}

// Complete sends the system prompt and history to Ollama and returns the assistant reply.
func (c *Ollama) Complete(ctx context.Context, model, systemPrompt string, history []Message) (string, error) {
	if model == "" {
		model = defaultOllamaModel
	}
	reqBody := ollamaChatRequest{
		Model:    model,
		Stream:   false,
		Messages: withSystem(systemPrompt, history),
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	url := c.baseURL + "/api/chat"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama: %w", err)
	}
	defer resp.Body.Close()

	var out ollamaChatResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)
	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && out.Error != "" {
			return "", fmt.Errorf("ollama: %s: %s", resp.Status, out.Error)
		}
		return "", fmt.Errorf("ollama: %s", resp.Status)
	}
	if decodeErr != nil {
		return "", fmt.Errorf("ollama: %w", decodeErr)
	}
	return strings.TrimSpace(out.Message.Content), nil
}
