package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"codeberg.org/snonux/cropvoice/internal/language"
)

// ErrSynthesis marks failed speech generation
var ErrSynthesis = errors.New("speech synthesis failed")

// SynthesisError reports a provider or I/O failure while producing an
// artifact. No artifact is left behind when it is returned.
type SynthesisError struct {
	Provider string
	FileName string
	Err      error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("speech synthesis of %s via %s failed: %v", e.FileName, e.Provider, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrSynthesis
func (e *SynthesisError) Is(target error) bool { return target == ErrSynthesis }

// Request is one conversion of advice text for a crop/disease pair
type Request struct {
	Crop      string
	Disease   string
	Text      string
	Selection language.Selection
}

// Artifact is a generated audio file
type Artifact struct {
	FileName  string
	Path      string
	CreatedAt time.Time
	Bytes     []byte
}

// Synthesizer writes provider output to named artifacts in the output directory
type Synthesizer struct {
	provider  Provider
	outputDir string
	format    string
	timeout   time.Duration
}

// NewSynthesizer creates a synthesizer writing into config.OutputDir
func NewSynthesizer(provider Provider, config *Config) *Synthesizer {
	if config == nil {
		config = DefaultProviderConfig()
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultProviderConfig().Timeout
	}

	return &Synthesizer{
		provider:  provider,
		outputDir: config.OutputDir,
		format:    normalizeFormat(config.OutputFormat),
		timeout:   timeout,
	}
}

// OutputDir returns the artifact directory
func (s *Synthesizer) OutputDir() string {
	return s.outputDir
}

// ProviderName returns the name of the wrapped provider
func (s *Synthesizer) ProviderName() string {
	return s.provider.Name()
}

// ArtifactPath returns where the artifact for a crop/disease pair is stored
func (s *Synthesizer) ArtifactPath(crop, disease string) string {
	return filepath.Join(s.outputDir, ArtifactName(crop, disease, s.format))
}

// Synthesize generates speech for req and stores it under its artifact
// name, replacing any previous artifact of the same pair. The audio is
// written to a hidden temporary file first and renamed into place, so a
// failed run never exposes a partial file.
func (s *Synthesizer) Synthesize(ctx context.Context, req Request) (*Artifact, error) {
	name := ArtifactName(req.Crop, req.Disease, s.format)
	fail := func(err error) (*Artifact, error) {
		return nil, &SynthesisError{Provider: s.provider.Name(), FileName: name, Err: err}
	}

	if err := ValidateText(req.Text); err != nil {
		return fail(err)
	}

	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return fail(fmt.Errorf("failed to create output directory: %w", err))
	}

	tmp, err := os.CreateTemp(s.outputDir, ".cropvoice-*."+s.format)
	if err != nil {
		return fail(fmt.Errorf("failed to create temporary file: %w", err))
	}
	tmpPath := tmp.Name()
	tmp.Close()

	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	speech := Speech{Text: req.Text, Selection: req.Selection}
	if err := s.provider.GenerateAudio(ctx, speech, tmpPath); err != nil {
		return fail(err)
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return fail(fmt.Errorf("failed to read generated audio: %w", err))
	}
	if len(data) == 0 {
		return fail(fmt.Errorf("provider produced no audio"))
	}

	finalPath := s.ArtifactPath(req.Crop, req.Disease)
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return fail(fmt.Errorf("failed to store audio file: %w", err))
	}
	committed = true

	createdAt := time.Now()
	if info, err := os.Stat(finalPath); err == nil {
		createdAt = info.ModTime()
	}

	log.Debug("audio artifact written", "file", name, "bytes", len(data), "provider", s.provider.Name())

	return &Artifact{
		FileName:  name,
		Path:      finalPath,
		CreatedAt: createdAt,
		Bytes:     data,
	}, nil
}
