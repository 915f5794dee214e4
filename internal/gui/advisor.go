package gui

import (
	"context"

	"codeberg.org/snonux/cropvoice/internal/language"
)

// Request is what the form submits
type Request struct {
	Crop     string
	Disease  string
	Language string
	Accent   string
}

// Advice is what the form shows after a successful conversion
type Advice struct {
	Text      string
	AudioFile string
	Language  string
	Warning   string
	Swept     string
}

// Advisor runs the advice pipeline on behalf of the GUI
type Advisor interface {
	Crops() []string
	Diseases(crop string) []string
	Languages() []language.Language
	DefaultLanguage() string
	Advise(ctx context.Context, req Request) (*Advice, error)
	Message(err error) string
}
