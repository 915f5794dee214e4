package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/viper"

	"codeberg.org/snonux/cropvoice/internal/advice"
	"codeberg.org/snonux/cropvoice/internal/audio"
	"codeberg.org/snonux/cropvoice/internal/catalog"
	"codeberg.org/snonux/cropvoice/internal/cli"
	"codeberg.org/snonux/cropvoice/internal/language"
	"codeberg.org/snonux/cropvoice/internal/sweep"
	"codeberg.org/snonux/cropvoice/internal/translation"
)

// Request is one user interaction: a crop/disease pair and the language
// the advice should be spoken in
type Request struct {
	Crop     string
	Disease  string
	Language string // name or code, empty for the default language
	Accent   string // ignored for languages without accents
}

// Result is the outcome of a successful run
type Result struct {
	ID          string
	Record      catalog.Record
	Selection   language.Selection
	EnglishText string
	Translation translation.Result
	Artifact    *audio.Artifact
	Sweep       *sweep.Report
}

// Text returns the advice text that was spoken
func (r *Result) Text() string {
	return r.Translation.Text
}

// Warning returns a user message for a recoverable problem, or ""
func (r *Result) Warning() string {
	if r.Translation.Err == nil {
		return ""
	}
	return UserMessage(r.Translation.Err)
}

// Processor runs the advice pipeline
type Processor struct {
	flags           *cli.Flags
	catalog         *catalog.Catalog
	languages       *language.Table
	translator      *translation.Service
	synth           *audio.Synthesizer
	synthErr        error
	sweeper         *sweep.Sweeper
	defaultLanguage string
}

// New creates a processor from ready components. synth may be nil when no
// speech provider could be set up; runs then fail with a SynthesisError.
// A nil sweeper disables sweeping.
func New(cat *catalog.Catalog, languages *language.Table, translator *translation.Service,
	synth *audio.Synthesizer, sweeper *sweep.Sweeper) *Processor {
	if languages == nil {
		languages = language.DefaultTable()
	}
	if translator == nil {
		translator = translation.NewService(nil, nil)
	}
	return &Processor{
		flags:           cli.NewFlags(),
		catalog:         cat,
		languages:       languages,
		translator:      translator,
		synth:           synth,
		sweeper:         sweeper,
		defaultLanguage: languages.Names()[0],
	}
}

// NewProcessor builds all components from flags and configuration. Only a
// catalog or language table that cannot be loaded is fatal; missing
// backends are reported when they are needed.
func NewProcessor(ctx context.Context, flags *cli.Flags) (*Processor, error) {
	cat, err := catalog.Load(stringSetting("catalog.path", flags.CatalogFile))
	if err != nil {
		return nil, err
	}

	languages, err := cli.LanguageTable()
	if err != nil {
		return nil, err
	}

	p := New(cat, languages, newTranslationService(ctx, flags), nil, nil)
	p.flags = flags

	if lang := stringSetting("language.default", flags.Language); lang != "" {
		if _, err := languages.Find(lang); err != nil {
			return nil, err
		}
		p.defaultLanguage = lang
	}

	audioConfig := p.audioConfig()
	provider, err := audio.NewProvider(audioConfig)
	if err != nil {
		log.Warn("speech provider unavailable", "provider", audioConfig.Provider, "err", err)
		p.synthErr = &audio.SynthesisError{Provider: audioConfig.Provider, Err: err}
	} else {
		p.synth = audio.NewSynthesizer(provider, audioConfig)
	}

	if !flags.NoSweep {
		p.sweeper = sweep.New(audioConfig.OutputDir, durationSetting("output.retention", flags.Retention))
	}

	return p, nil
}

func newTranslationService(ctx context.Context, flags *cli.Flags) *translation.Service {
	config := translation.DefaultConfig()
	config.Provider = stringSetting("translation.provider", flags.Translator)
	config.OpenAIKey = cli.GetOpenAIKey()
	config.OpenAIBaseURL = cli.GetOpenAIBaseURL()
	config.GeminiKey = cli.GetGeminiKey()
	if model := stringSetting("translation.model", flags.TranslateModel); model != "" {
		config.OpenAIModel = model
		config.GeminiModel = model
	}
	if viper.IsSet("translation.timeout") {
		config.Timeout = viper.GetDuration("translation.timeout")
	}
	if viper.IsSet("translation.requests_per_minute") {
		config.RequestsPerMinute = viper.GetInt("translation.requests_per_minute")
	}

	backend, err := translation.NewTranslator(ctx, config)
	if err != nil {
		log.Warn("translation disabled, advice stays in English", "provider", config.Provider, "err", err)
		backend = nil
	}
	svc := translation.NewService(backend, config)
	if err != nil {
		svc.SetBackendError(err)
	}
	return svc
}

func (p *Processor) audioConfig() *audio.Config {
	config := audio.DefaultProviderConfig()
	config.Provider = stringSetting("audio.provider", p.flags.AudioProvider)
	config.Fallback = stringSetting("audio.fallback", p.flags.AudioFallback)
	config.OutputDir = stringSetting("output.directory", p.flags.OutputDir)
	if config.OutputDir == "" {
		config.OutputDir = cli.DefaultOutputDir()
	}
	config.OutputFormat = stringSetting("audio.format", p.flags.AudioFormat)
	config.OpenAIKey = cli.GetOpenAIKey()
	config.OpenAIBaseURL = cli.GetOpenAIBaseURL()
	config.OpenAIModel = stringSetting("audio.openai_model", p.flags.OpenAIModel)
	config.OpenAIVoice = stringSetting("audio.openai_voice", p.flags.OpenAIVoice)
	if speed := floatSetting("audio.openai_speed", p.flags.OpenAISpeed); speed > 0 {
		config.OpenAISpeed = speed
	}
	if instruction := stringSetting("audio.openai_instruction", p.flags.OpenAIInstruction); instruction != "" {
		config.OpenAIInstruction = instruction
	}
	if viper.IsSet("audio.timeout") {
		config.Timeout = viper.GetDuration("audio.timeout")
	}
	if viper.IsSet("audio.espeak_speed") {
		config.ESpeak.Speed = viper.GetInt("audio.espeak_speed")
	}
	if viper.IsSet("audio.espeak_pitch") {
		config.ESpeak.Pitch = viper.GetInt("audio.espeak_pitch")
	}
	return config
}

// Catalog returns the loaded catalog
func (p *Processor) Catalog() *catalog.Catalog {
	return p.catalog
}

// Languages returns the language table
func (p *Processor) Languages() *language.Table {
	return p.languages
}

// DefaultLanguage returns the language used when a request names none
func (p *Processor) DefaultLanguage() string {
	return p.defaultLanguage
}

// OutputDir returns the audio directory, or "" without a synthesizer
func (p *Processor) OutputDir() string {
	if p.synth == nil {
		return ""
	}
	return p.synth.OutputDir()
}

// Run executes one interaction and sweeps expired audio afterwards,
// whatever the outcome
func (p *Processor) Run(ctx context.Context, req Request) (res *Result, err error) {
	defer func() {
		report, ok := p.Sweep()
		if ok && res != nil {
			res.Sweep = &report
		}
	}()
	return p.run(ctx, req)
}

func (p *Processor) run(ctx context.Context, req Request) (*Result, error) {
	res := &Result{ID: uuid.NewString()}
	logger := log.With("request", res.ID)

	langName := strings.TrimSpace(req.Language)
	if langName == "" {
		langName = p.defaultLanguage
	}
	sel, err := p.languages.Select(langName, req.Accent)
	if err != nil {
		return nil, err
	}
	res.Selection = sel

	rec, err := p.catalog.Lookup(strings.TrimSpace(req.Crop), strings.TrimSpace(req.Disease))
	if err != nil {
		logger.Debug("lookup failed", "crop", req.Crop, "disease", req.Disease, "err", err)
		return nil, err
	}
	res.Record = rec

	text, err := advice.Compose(rec)
	if err != nil {
		return nil, err
	}
	res.EnglishText = text

	res.Translation = p.translator.Translate(ctx, text, language.SourceCode, sel.Code())
	if res.Translation.Err != nil {
		logger.Warn("continuing with untranslated advice", "language", sel.String(), "err", res.Translation.Err)
	}

	if p.synth == nil {
		if p.synthErr != nil {
			return nil, p.synthErr
		}
		return nil, &audio.SynthesisError{Provider: "none", Err: fmt.Errorf("no speech provider configured")}
	}

	artifact, err := p.synth.Synthesize(ctx, audio.Request{
		Crop:      rec.Crop,
		Disease:   rec.Disease,
		Text:      res.Translation.Text,
		Selection: p.speechSelection(res),
	})
	if err != nil {
		logger.Error("speech synthesis failed", "err", err)
		return nil, err
	}
	res.Artifact = artifact

	logger.Info("advice ready", "crop", rec.Crop, "disease", rec.Disease,
		"language", sel.String(), "translated", res.Translation.Translated, "provider", p.synth.ProviderName(), "file", artifact.FileName)
	return res, nil
}

// speechSelection is the language the spoken text is actually in. Advice
// that fell back to English is read with the source language voice.
func (p *Processor) speechSelection(res *Result) language.Selection {
	if res.Translation.Err == nil {
		return res.Selection
	}
	if sel, err := p.languages.Select(language.SourceCode, ""); err == nil {
		return sel
	}
	return language.Selection{Language: language.Language{Name: "English", Code: language.SourceCode}}
}

// Sweep deletes expired audio. It reports false when sweeping is disabled.
func (p *Processor) Sweep() (sweep.Report, bool) {
	if p.sweeper == nil {
		return sweep.Report{}, false
	}
	report, err := p.sweeper.Sweep()
	if err != nil {
		log.Warn("audio sweep failed", "dir", p.sweeper.Dir, "err", err)
		return report, false
	}
	if report.Count() > 0 || len(report.Failures) > 0 {
		log.Info("audio sweep", "dir", p.sweeper.Dir, "summary", report.Summary())
	}
	return report, true
}

func stringSetting(key, fallback string) string {
	if viper.IsSet(key) {
		if v := viper.GetString(key); v != "" {
			return v
		}
	}
	return fallback
}

func floatSetting(key string, fallback float64) float64 {
	if viper.IsSet(key) {
		return viper.GetFloat64(key)
	}
	return fallback
}

func durationSetting(key string, fallback time.Duration) time.Duration {
	if viper.IsSet(key) {
		if d := viper.GetDuration(key); d > 0 {
			return d
		}
	}
	return fallback
}
