package cli

import (
	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Env holds the secrets read from the environment
type Env struct {
	OpenAIKey  string `env:"OPENAI_API_KEY"`
	GeminiKey  string `env:"GEMINI_API_KEY"`
	OpenAIBase string `env:"OPENAI_BASE_URL"`
}

// LoadEnv parses the process environment
func LoadEnv() Env {
	cfg, err := env.ParseAs[Env]()
	if err != nil {
		log.Warn("could not parse environment", "err", err)
	}
	return cfg
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := LoadEnv().OpenAIKey; key != "" {
		return key
	}
	return viper.GetString("audio.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := LoadEnv().GeminiKey; key != "" {
		return key
	}
	return viper.GetString("translation.gemini_key")
}

// GetOpenAIBaseURL returns an OpenAI-compatible endpoint override, if any
func GetOpenAIBaseURL() string {
	if base := LoadEnv().OpenAIBase; base != "" {
		return base
	}
	return viper.GetString("openai.base_url")
}
