package llm

import (
	"context"
	"fmt"
)

// Fallback tries primary first; if it returns an error, tries secondary.
// Use when the hosted provider may be unreachable but a local one (e.g. Ollama) is running.
type Fallback struct {
	Primary   Client
	Secondary Client
	// SecondaryModel, if set, replaces the model for the secondary call (model names rarely carry across providers).
	SecondaryModel string
}

// Complete calls Primary.Complete; on any error, calls Secondary.Complete.
// When both fail the returned error carries both causes.
func (f *Fallback) Complete(ctx context.Context, model, systemPrompt string, history []Message) (string, error) {
	s, err := f.Primary.Complete(ctx, model, systemPrompt, history)
	if err == nil || f.Secondary == nil {
		return s, err
	}
	if f.SecondaryModel != "" {
		model = f.SecondaryModel
	}
	s, err2 := f.Secondary.Complete(ctx, model, systemPrompt, history)
	if err2 != nil {
		return "", fmt.Errorf("%w (after primary failed: %v)", err2, err)
	}
	return s, nil
}
