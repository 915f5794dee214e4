package audio

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/cropvoice/internal/language"
)

// OpenAIProvider implements Provider interface for OpenAI TTS
type OpenAIProvider struct {
	client *openai.Client
	config *Config
}

// NewOpenAIProvider creates a new OpenAI TTS provider
func NewOpenAIProvider(config *Config) (Provider, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// supportsInstructions reports whether the model takes voice instructions
func (p *OpenAIProvider) supportsInstructions() bool {
	return p.config.OpenAIModel == "gpt-4o-mini-tts" || p.config.OpenAIModel == "gpt-4o-mini-audio-preview"
}

// GenerateAudio generates audio using OpenAI TTS
func (p *OpenAIProvider) GenerateAudio(ctx context.Context, speech Speech, outputFile string) error {
	if err := ValidateText(speech.Text); err != nil {
		return err
	}

	processedText := preprocessText(speech.Text)

	req := openai.CreateSpeechRequest{
		Model: openai.SpeechModel(p.config.OpenAIModel),
		Input: processedText,
		Voice: openai.SpeechVoice(p.config.OpenAIVoice),
		Speed: p.config.OpenAISpeed,
	}

	if p.supportsInstructions() {
		req.Instructions = p.instructionFor(speech.Selection)
	} else if speech.Selection.Accent.Name != "" {
		log.Debug("accent ignored, model takes no voice instructions", "model", p.config.OpenAIModel, "accent", speech.Selection.Accent.Name)
	}

	log.Debug("OpenAI TTS request",
		"model", p.config.OpenAIModel,
		"voice", p.config.OpenAIVoice,
		"speed", p.config.OpenAISpeed,
		"language", speech.Selection.String())

	// Determine response format based on output file extension
	switch strings.ToLower(filepath.Ext(outputFile)) {
	case ".wav":
		req.ResponseFormat = openai.SpeechResponseFormatWav
	case ".opus":
		req.ResponseFormat = openai.SpeechResponseFormatOpus
	case ".aac":
		req.ResponseFormat = openai.SpeechResponseFormatAac
	case ".flac":
		req.ResponseFormat = openai.SpeechResponseFormatFlac
	default:
		req.ResponseFormat = openai.SpeechResponseFormatMp3
	}

	response, err := p.client.CreateSpeech(ctx, req)
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "does not have access to model") && p.supportsInstructions() {
			return fmt.Errorf("OpenAI TTS API error: %w\nNote: The %s model requires access. Try using --openai-model tts-1-hd instead", err, p.config.OpenAIModel)
		}
		return fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	out, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, response)
	if err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	if written == 0 {
		return fmt.Errorf("no audio data received from OpenAI")
	}

	return nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the OpenAI API is accessible
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}

// instructionFor builds the voice instruction for a language selection.
// The accent sentence is only added when the selection carries one.
func (p *OpenAIProvider) instructionFor(sel language.Selection) string {
	var parts []string
	if p.config.OpenAIInstruction != "" {
		parts = append(parts, p.config.OpenAIInstruction)
	}
	if sel.Language.Name != "" {
		parts = append(parts, fmt.Sprintf("The text is in %s; pronounce it with authentic %s phonetics.",
			sel.Language.Name, sel.Language.Name))
	}
	if sel.Accent.Name != "" {
		parts = append(parts, fmt.Sprintf("Use the accent of %s as spoken in %s.", sel.Language.Name, sel.Accent.Name))
	}
	return strings.Join(parts, " ")
}

// preprocessText ends every line with punctuation so each label is read
// with a pause
func preprocessText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if last, _ := utf8.DecodeLastRuneInString(line); !strings.ContainsRune(".!?;:።", last) {
			line += "."
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
