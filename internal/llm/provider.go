package llm

import (
	"fmt"
	"os"
	"strings"
)

// Provider names accepted by FromConfig.
const (
	ProviderAuto   = "auto"
	ProviderOpenAI = "openai"
	ProviderGroq   = "groq"
	ProviderXAI    = "xai"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// Settings selects a provider. Keys are read from the environment by FromConfig.
type Settings struct {
	Provider  string
	Model     string
	OllamaURL string
}

// envKeys lists hosted providers in auto-detection order.
var envKeys = []struct {
	envVar   string
	provider string
}{
	{"OPENAI_API_KEY", ProviderOpenAI},
	{"GROQ_API_KEY", ProviderGroq},
	{"XAI_API_KEY", ProviderXAI},
	{"GEMINI_API_KEY", ProviderGemini},
}

func hosted(provider, key string) Client {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAI(key)
	case ProviderGroq:
		return NewGroq(key)
	case ProviderXAI:
		return NewXAI(key)
	case ProviderGemini:
		return NewGemini(key)
	}
	return nil
}

func keyFor(provider string) string {
	for _, k := range envKeys {
		if k.provider == provider {
			return os.Getenv(k.envVar)
		}
	}
	return ""
}

// FromConfig builds the chat client for s and returns the model to pass to Complete.
// "auto" picks the first hosted provider with a key in the environment and falls back to a
// local Ollama server; with no keys at all it is Ollama alone. Auto mode always uses each
// provider's default model, since s.Model names one provider's catalogue.
func FromConfig(s Settings) (Client, string, error) {
	provider := strings.ToLower(strings.TrimSpace(s.Provider))
	switch provider {
	case "", ProviderAuto:
		for _, k := range envKeys {
			if key := os.Getenv(k.envVar); key != "" {
				return &Fallback{
					Primary:        hosted(k.provider, key),
					Secondary:      NewOllama(s.OllamaURL),
					SecondaryModel: defaultOllamaModel,
				}, "", nil
			}
		}
		return NewOllama(s.OllamaURL), "", nil
	case ProviderOllama:
		return NewOllama(s.OllamaURL), s.Model, nil
	case ProviderOpenAI, ProviderGroq, ProviderXAI, ProviderGemini:
		key := keyFor(provider)
		if key == "" {
			return nil, "", fmt.Errorf("%s: %w", provider, ErrNoAPIKey)
		}
		return hosted(provider, key), s.Model, nil
	default:
		return nil, "", fmt.Errorf("unknown provider: %s", s.Provider)
	}
}
