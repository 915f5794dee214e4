package models

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ErrNoAPIKey is returned when listing without credentials
var ErrNoAPIKey = errors.New("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure audio.openai_key in .cropvoice.yaml")

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister. baseURL may be empty.
func NewLister(apiKey, baseURL string) *Lister {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
	}
}

// Catalog groups model IDs by what cropvoice uses them for
type Catalog struct {
	Speech []string
	Chat   []string
}

// Fetch retrieves and categorizes the models of the account
func (l *Lister) Fetch(ctx context.Context) (*Catalog, error) {
	if l.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	cat := &Catalog{}
	for _, model := range models.Models {
		id := model.ID
		switch {
		case strings.Contains(id, "tts"):
			cat.Speech = append(cat.Speech, id)
		case strings.Contains(id, "gpt") || strings.Contains(id, "chat"):
			if strings.Contains(id, "audio") || strings.Contains(id, "realtime") || strings.Contains(id, "transcribe") {
				continue
			}
			cat.Chat = append(cat.Chat, id)
		}
	}

	sort.Strings(cat.Speech)
	sort.Strings(cat.Chat)
	return cat, nil
}

// ListAvailableModels prints the speech and translation models
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	cat, err := l.Fetch(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Available OpenAI Models:")
	fmt.Fprintln(w, "\nText-to-Speech Models (--openai-model):")
	if len(cat.Speech) == 0 {
		fmt.Fprintln(w, "  No TTS models found")
	}
	for _, model := range cat.Speech {
		fmt.Fprintf(w, "  %s\n", model)
	}

	fmt.Fprintln(w, "\nTranslation Models (--translate-model):")
	if len(cat.Chat) == 0 {
		fmt.Fprintln(w, "  No chat models found")
	}
	for _, model := range cat.Chat {
		fmt.Fprintf(w, "  %s\n", model)
	}

	return nil
}
