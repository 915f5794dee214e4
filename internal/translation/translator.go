package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ErrTranslation marks failed remote translations
var ErrTranslation = errors.New("translation failed")

// ErrNoBackend is the cause reported when a translation is requested but
// no backend could be set up
var ErrNoBackend = errors.New("no translation backend configured")

// Translator is a remote translation backend
type Translator interface {
	// Translate converts text from the source to the destination language code
	Translate(ctx context.Context, text, sourceLang, destLang string) (string, error)

	// Name returns the backend name
	Name() string
}

// Error is a recoverable translation failure. The caller keeps using the
// original text.
type Error struct {
	Backend    string
	SourceLang string
	DestLang   string
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("translation %s->%s via %s failed: %v", e.SourceLang, e.DestLang, e.Backend, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrTranslation
func (e *Error) Is(target error) bool { return target == ErrTranslation }

// Config holds translation backend settings
type Config struct {
	Provider string // "openai", "gemini" or "none"

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	GeminiKey   string
	GeminiModel string

	Timeout           time.Duration
	RequestsPerMinute int
	FailureThreshold  uint32
	CooldownPeriod    time.Duration
}

// DefaultConfig returns default translation settings
func DefaultConfig() *Config {
	return &Config{
		Provider:          "openai",
		OpenAIModel:       "gpt-4o-mini",
		GeminiModel:       "gemini-2.0-flash",
		Timeout:           20 * time.Second,
		RequestsPerMinute: 60,
		FailureThreshold:  3,
		CooldownPeriod:    30 * time.Second,
	}
}

// NewTranslator creates the backend named in config. The "none" provider
// returns a nil Translator, which Service treats as pass-through.
func NewTranslator(ctx context.Context, config *Config) (Translator, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch strings.ToLower(config.Provider) {
	case "openai":
		t, err := NewOpenAITranslator(config)
		if err != nil {
			return nil, err
		}
		return t, nil
	case "gemini":
		t, err := NewGeminiTranslator(ctx, config)
		if err != nil {
			return nil, err
		}
		return t, nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", config.Provider)
	}
}

// buildPrompt is shared by the chat-style backends
func buildPrompt(text, sourceLang, destLang string) string {
	return fmt.Sprintf("Translate the following text from the language with ISO 639-1 code '%s' "+
		"to the language with ISO 639-1 code '%s'. Keep one output line per input line and keep "+
		"each line's label before the colon translated as well. Respond with only the translation, "+
		"nothing else.\n\n%s", sourceLang, destLang, text)
}

// TranslationCache stores translations in memory
type TranslationCache struct {
	mu           sync.RWMutex
	translations map[string]string
}

// NewTranslationCache creates a new translation cache
func NewTranslationCache() *TranslationCache {
	return &TranslationCache{
		translations: make(map[string]string),
	}
}

func cacheKey(text, sourceLang, destLang string) string {
	return sourceLang + "\x00" + destLang + "\x00" + text
}

// Add adds a translation to the cache
func (tc *TranslationCache) Add(text, sourceLang, destLang, translation string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.translations[cacheKey(text, sourceLang, destLang)] = translation
}

// Get retrieves a translation from the cache
func (tc *TranslationCache) Get(text, sourceLang, destLang string) (string, bool) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	translation, ok := tc.translations[cacheKey(text, sourceLang, destLang)]
	return translation, ok
}

// Len returns the number of cached translations
func (tc *TranslationCache) Len() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.translations)
}
