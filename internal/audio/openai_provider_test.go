package audio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/cropvoice/internal/language"
)

// newSpeechServer fakes the OpenAI speech endpoint and records the last request body
func newSpeechServer(t *testing.T, payload []byte, got *map[string]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/speech" {
			http.NotFound(w, r)
			return
		}
		if got != nil {
			if err := json.NewDecoder(r.Body).Decode(got); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(payload)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewOpenAIProvider(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "missing API key",
			config:  &Config{OpenAIKey: ""},
			wantErr: true,
			errMsg:  "OpenAI API key is required",
		},
		{
			name:    "valid config",
			config:  &Config{OpenAIKey: "test-key"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewOpenAIProvider(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewOpenAIProvider() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != nil && err.Error() != tt.errMsg {
				t.Errorf("NewOpenAIProvider() error = %v, want %v", err.Error(), tt.errMsg)
			}
			if !tt.wantErr && provider.Name() != "openai" {
				t.Errorf("Name() = %v, want %v", provider.Name(), "openai")
			}
		})
	}
}

func TestOpenAIProviderIsAvailable(t *testing.T) {
	p := &OpenAIProvider{config: &Config{}}
	if err := p.IsAvailable(); err == nil {
		t.Error("IsAvailable() expected error without key")
	}

	p.config.OpenAIKey = "test-key"
	if err := p.IsAvailable(); err != nil {
		t.Errorf("IsAvailable() unexpected error: %v", err)
	}
}

func TestPreprocessText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"adds full stops", "Crop: Maize\nDisease: Rust", "Crop: Maize.\nDisease: Rust."},
		{"keeps punctuation", "Done!\nReally?", "Done!\nReally?"},
		{"empty label keeps colon", "Causes:", "Causes:"},
		{"drops blank lines", "a\n\n b ", "a.\nb."},
		{"ethiopic full stop", "በቆሎ።", "በቆሎ።"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preprocessText(tt.input); got != tt.want {
				t.Errorf("preprocessText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestInstructionFor(t *testing.T) {
	p := &OpenAIProvider{config: &Config{OpenAIInstruction: "Speak slowly."}}
	table := language.DefaultTable()

	sel, err := table.Select("English", "Australia")
	if err != nil {
		t.Fatalf("Select() error: %v", err)
	}
	got := p.instructionFor(sel)
	if !strings.HasPrefix(got, "Speak slowly.") {
		t.Errorf("instruction lost base text: %q", got)
	}
	if !strings.Contains(got, "as spoken in Australia") {
		t.Errorf("instruction missing accent: %q", got)
	}

	sel, err = table.Select("Swahili", "Australia")
	if err != nil {
		t.Fatalf("Select() error: %v", err)
	}
	got = p.instructionFor(sel)
	if strings.Contains(got, "accent") {
		t.Errorf("non-accent language got an accent instruction: %q", got)
	}
	if !strings.Contains(got, "Swahili") {
		t.Errorf("instruction missing language: %q", got)
	}
}

func TestGenerateAudioValidation(t *testing.T) {
	p := &OpenAIProvider{config: &Config{OpenAIKey: "test-key"}}
	out := filepath.Join(t.TempDir(), "x.mp3")

	if err := p.GenerateAudio(context.Background(), Speech{Text: ""}, out); err == nil {
		t.Error("GenerateAudio() expected error for empty text")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output file should not exist after validation failure")
	}
}

func TestOpenAIGenerateAudio(t *testing.T) {
	var body map[string]any
	server := newSpeechServer(t, []byte("ID3fake-mp3"), &body)

	config := DefaultProviderConfig()
	config.OpenAIKey = "test-key"
	config.OpenAIBaseURL = server.URL + "/v1"

	provider, err := NewOpenAIProvider(config)
	if err != nil {
		t.Fatalf("NewOpenAIProvider() error: %v", err)
	}

	sel, _ := language.DefaultTable().Select("en", "co.uk")
	out := filepath.Join(t.TempDir(), "Maize_Rust.mp3")
	err = provider.GenerateAudio(context.Background(), Speech{Text: "Crop: Maize\nDisease: Rust", Selection: sel}, out)
	if err != nil {
		t.Fatalf("GenerateAudio() error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if string(data) != "ID3fake-mp3" {
		t.Errorf("unexpected output %q", data)
	}

	if body["response_format"] != "mp3" {
		t.Errorf("response_format = %v, want mp3", body["response_format"])
	}
	if instr, _ := body["instructions"].(string); !strings.Contains(instr, "United Kingdom") {
		t.Errorf("instructions = %q, want accent", instr)
	}
	if input, _ := body["input"].(string); input != "Crop: Maize.\nDisease: Rust." {
		t.Errorf("input = %q", input)
	}
}

func TestOpenAIGenerateAudioEmptyResponse(t *testing.T) {
	server := newSpeechServer(t, nil, nil)

	config := DefaultProviderConfig()
	config.OpenAIKey = "test-key"
	config.OpenAIBaseURL = server.URL + "/v1"

	provider, _ := NewOpenAIProvider(config)
	out := filepath.Join(t.TempDir(), "empty.mp3")
	err := provider.GenerateAudio(context.Background(), Speech{Text: "hello"}, out)
	if err == nil || !strings.Contains(err.Error(), "no audio data") {
		t.Errorf("expected no audio data error, got %v", err)
	}
}
