package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile       string
	CatalogFile   string
	OutputDir     string
	AudioFormat   string
	BatchFile     string
	ShowText      bool
	List          bool
	ListLanguages bool
	ListModels    bool
	NoSweep       bool
	Retention     time.Duration
	LogLevel      string

	// Language selection
	Language string
	Accent   string

	// Translation flags
	Translator     string
	TranslateModel string

	// Audio flags
	AudioProvider     string
	AudioFallback     string
	OpenAIModel       string
	OpenAIVoice       string
	OpenAISpeed       float64
	OpenAIInstruction string

	// sweep sub-command
	Schedule string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		CatalogFile:   "crop_diseases.csv",
		AudioFormat:   "mp3",
		Retention:     7 * 24 * time.Hour,
		LogLevel:      "info",
		Language:      "English",
		Translator:    "openai",
		AudioProvider: "openai",
		OpenAIModel:   "gpt-4o-mini-tts",
		OpenAIVoice:   "alloy",
		OpenAISpeed:   1.0,
	}
}
