package processor

import (
	"context"

	"codeberg.org/snonux/cropvoice/internal/gui"
	"codeberg.org/snonux/cropvoice/internal/language"
)

// RunGUIMode launches the GUI application
func (p *Processor) RunGUIMode() error {
	app := gui.New(&gui.Config{
		Advisor:  p.Advisor(),
		ShowText: p.flags.ShowText,
		AutoPlay: true,
	})
	app.Run()

	return nil
}

// Advisor exposes the processor to the GUI
func (p *Processor) Advisor() gui.Advisor {
	return &guiAdvisor{p: p}
}

type guiAdvisor struct {
	p *Processor
}

func (a *guiAdvisor) Crops() []string {
	return a.p.catalog.Crops()
}

func (a *guiAdvisor) Diseases(crop string) []string {
	return a.p.catalog.Diseases(crop)
}

func (a *guiAdvisor) Languages() []language.Language {
	return a.p.languages.Languages()
}

func (a *guiAdvisor) DefaultLanguage() string {
	return a.p.defaultLanguage
}

func (a *guiAdvisor) Advise(ctx context.Context, req gui.Request) (*gui.Advice, error) {
	res, err := a.p.Run(ctx, Request{
		Crop:     req.Crop,
		Disease:  req.Disease,
		Language: req.Language,
		Accent:   req.Accent,
	})
	if err != nil {
		return nil, err
	}

	adv := &gui.Advice{
		Text:      res.Text(),
		AudioFile: res.Artifact.Path,
		Language:  res.Selection.String(),
		Warning:   res.Warning(),
	}
	if res.Sweep != nil && res.Sweep.Count() > 0 {
		adv.Swept = res.Sweep.Summary()
	}
	return adv, nil
}

func (a *guiAdvisor) Message(err error) string {
	return UserMessage(err)
}
