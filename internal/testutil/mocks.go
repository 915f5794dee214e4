package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"

	"codeberg.org/snonux/cropvoice/internal/audio"
)

// MockProvider mocks a text-to-speech provider. It writes Data to the
// output file unless an error is configured.
type MockProvider struct {
	ProviderName string
	Data         []byte
	Err          error
	AvailableErr error

	mu    sync.Mutex
	calls []audio.Speech
}

// NewMockProvider returns a provider that writes mock MP3 data
func NewMockProvider() *MockProvider {
	return &MockProvider{
		ProviderName: "mock",
		Data:         (&TestDataGenerator{}).GenerateAudioData(),
	}
}

// GenerateAudio records the call and writes the mock audio
func (m *MockProvider) GenerateAudio(ctx context.Context, speech audio.Speech, outputFile string) error {
	m.mu.Lock()
	m.calls = append(m.calls, speech)
	m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(outputFile, m.Data, 0644)
}

// Name returns the provider name
func (m *MockProvider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// IsAvailable returns the configured availability error
func (m *MockProvider) IsAvailable() error {
	return m.AvailableErr
}

// Calls returns the speech requests seen so far
func (m *MockProvider) Calls() []audio.Speech {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]audio.Speech(nil), m.calls...)
}

// MockTranslator mocks translation service
type MockTranslator struct {
	Translations map[string]string
	Errors       map[string]error
	Err          error

	mu    sync.Mutex
	Calls []string
}

// Translate mocks translating text
func (m *MockTranslator) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, fmt.Sprintf("Translate: %s (%s->%s)", text, fromLang, toLang))
	m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}

	if err, ok := m.Errors[text]; ok {
		return "", err
	}

	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}

	// Default mock translation
	return fmt.Sprintf("[%s] %s", toLang, text), nil
}

// Name returns the backend name
func (m *MockTranslator) Name() string {
	return "mock"
}

// CallCount returns the number of Translate calls
func (m *MockTranslator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// TestDataGenerator generates test data
type TestDataGenerator struct{}

// GenerateAudioData generates mock audio data
func (g *TestDataGenerator) GenerateAudioData() []byte {
	// Simple mock MP3 header
	return []byte{0xFF, 0xFB, 0x90, 0x00, 0x00, 0x00, 0x00, 0x00}
}
