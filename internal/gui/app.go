package gui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/cropvoice/internal"
)

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// Form
	cropSelect     *widget.Select
	diseaseSelect  *widget.Select
	languageSelect *widget.Select
	accentSelect   *widget.Select
	accentRow      *fyne.Container
	showTextCheck  *widget.Check
	convertButton  *ttwidget.Button

	// Output
	adviceDisplay *AdviceDisplay
	audioPlayer   *AudioPlayer
	logViewer     *LogViewer
	statusLabel   *widget.Label

	// State management
	running bool

	// Configuration
	config *Config

	// Background processing
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// Config holds GUI application configuration
type Config struct {
	Advisor  Advisor
	ShowText bool // initial state of "Display output text"
	AutoPlay bool // play the audio as soon as it is ready
}

// New creates a new GUI application
func New(config *Config) *Application {
	if config == nil || config.Advisor == nil {
		panic("gui: an Advisor is required")
	}

	ctx, cancel := context.WithCancel(context.Background())

	myApp := app.NewWithID("org.codeberg.snonux.cropvoice")
	myApp.SetIcon(GetAppIcon())

	a := &Application{
		app:    myApp,
		config: config,
		ctx:    ctx,
		cancel: cancel,
	}

	a.setupUI()

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("CropVoice v%s - Crop Disease Advisor", internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(760, 640))

	advisor := a.config.Advisor
	langs := advisor.Languages()

	a.cropSelect = widget.NewSelect(advisor.Crops(), a.onCropChanged)
	a.cropSelect.PlaceHolder = "Select a crop"

	a.diseaseSelect = widget.NewSelect(nil, func(string) { a.refreshConvertButton() })
	a.diseaseSelect.PlaceHolder = "Select a disease"
	a.diseaseSelect.Disable()

	a.accentSelect = widget.NewSelect(nil, nil)
	a.accentRow = container.NewBorder(nil, nil, widget.NewLabel("Accent:"), nil, a.accentSelect)

	a.languageSelect = widget.NewSelect(languageNames(langs), a.onLanguageChanged)
	a.languageSelect.PlaceHolder = "Select output language"

	a.showTextCheck = widget.NewCheck("Display output text", a.onShowTextChanged)

	a.convertButton = ttwidget.NewButton("Convert to Speech", a.onConvert)
	a.convertButton.Icon = theme.MediaRecordIcon()
	a.convertButton.Importance = widget.HighImportance

	helpButton := ttwidget.NewButton("", a.onShowHotkeys)
	helpButton.Icon = theme.HelpIcon()

	form := container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel("Crop:"), nil, a.cropSelect),
		container.NewBorder(nil, nil, widget.NewLabel("Disease:"), nil, a.diseaseSelect),
		container.NewBorder(nil, nil, widget.NewLabel("Language:"), nil, a.languageSelect),
		a.accentRow,
		container.NewHBox(a.showTextCheck, layout.NewSpacer(), helpButton, a.convertButton),
	)

	// Create display section
	a.adviceDisplay = NewAdviceDisplay()
	a.audioPlayer = NewAudioPlayer()
	a.logViewer = NewLogViewer()

	displaySection := container.NewVSplit(
		container.NewBorder(nil, a.audioPlayer, nil, nil, a.adviceDisplay),
		a.logViewer,
	)
	displaySection.SetOffset(0.6)

	a.statusLabel = widget.NewLabel("Ready")

	content := container.NewBorder(
		container.NewVBox(form, widget.NewSeparator()),
		a.statusLabel,
		nil, nil,
		displaySection,
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))

	a.convertButton.SetToolTip("Convert the advice to speech (g)")
	helpButton.SetToolTip("Show hotkeys (h)")

	// Initial state
	a.showTextCheck.SetChecked(a.config.ShowText)
	a.onShowTextChanged(a.config.ShowText)
	a.languageSelect.SetSelected(a.initialLanguage())
	a.refreshConvertButton()

	a.window.SetOnClosed(func() {
		a.cancel()
		a.wg.Wait()
		a.audioPlayer.Clear()
		a.logViewer.StopCapture()
	})

	a.setupKeyboardShortcuts()
}

func (a *Application) initialLanguage() string {
	langs := a.config.Advisor.Languages()
	if l, ok := findLanguage(langs, a.config.Advisor.DefaultLanguage()); ok {
		return l.Name
	}
	if len(langs) > 0 {
		return langs[0].Name
	}
	return ""
}

// Run starts the GUI application
func (a *Application) Run() {
	a.logViewer.StartCapture()
	a.window.ShowAndRun()
}

// onCropChanged reloads the diseases of the selected crop
func (a *Application) onCropChanged(crop string) {
	diseases := a.config.Advisor.Diseases(crop)
	a.diseaseSelect.Options = diseases
	a.diseaseSelect.ClearSelected()
	if len(diseases) > 0 {
		a.diseaseSelect.Enable()
	} else {
		a.diseaseSelect.Disable()
	}
	a.diseaseSelect.Refresh()
	a.refreshConvertButton()
}

// onLanguageChanged shows the accent selector only for languages with accents
func (a *Application) onLanguageChanged(lang string) {
	accents, visible := accentChoice(a.config.Advisor.Languages(), lang)
	a.accentSelect.Options = accents
	if visible {
		a.accentSelect.SetSelected(accents[0])
		a.accentRow.Show()
	} else {
		a.accentSelect.ClearSelected()
		a.accentRow.Hide()
	}
	a.accentSelect.Refresh()
	a.refreshConvertButton()
}

func (a *Application) onShowTextChanged(show bool) {
	if show {
		a.adviceDisplay.Show()
	} else {
		a.adviceDisplay.Hide()
	}
}

func (a *Application) currentRequest() Request {
	req := Request{
		Crop:     a.cropSelect.Selected,
		Disease:  a.diseaseSelect.Selected,
		Language: a.languageSelect.Selected,
	}
	if a.accentRow.Visible() {
		req.Accent = a.accentSelect.Selected
	}
	return req
}

func (a *Application) refreshConvertButton() {
	a.mu.Lock()
	running := a.running
	a.mu.Unlock()

	if !running && canConvert(a.currentRequest()) {
		a.convertButton.Enable()
	} else {
		a.convertButton.Disable()
	}
}

// onConvert runs the pipeline in the background. The button stays disabled
// until the run is finished.
func (a *Application) onConvert() {
	req := a.currentRequest()
	if !canConvert(req) {
		return
	}

	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return
	}
	a.running = true
	a.mu.Unlock()

	a.setUIEnabled(false)
	a.audioPlayer.Clear()
	a.adviceDisplay.SetGenerating()
	a.updateStatus(fmt.Sprintf("Converting advice for %s / %s...", req.Crop, req.Disease))

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		adv, err := a.config.Advisor.Advise(a.ctx, req)

		fyne.Do(func() {
			a.mu.Lock()
			a.running = false
			a.mu.Unlock()
			a.setUIEnabled(true)

			if err != nil {
				log.Error("conversion failed", "crop", req.Crop, "disease", req.Disease, "err", err)
				a.adviceDisplay.Clear()
				a.showError(a.config.Advisor.Message(err))
				return
			}
			a.showAdvice(adv)
		})
	}()
}

func (a *Application) showAdvice(adv *Advice) {
	a.adviceDisplay.SetAdvice(adv.Text, adv.Language)
	a.audioPlayer.SetAudioFile(adv.AudioFile, adv.Language)

	status := "Ready: " + adv.AudioFile
	if adv.Warning != "" {
		status = "Warning: " + adv.Warning
		a.logViewer.Log("%s", adv.Warning)
	}
	if adv.Swept != "" {
		a.logViewer.Log("Audio cleanup: %s", adv.Swept)
	}
	a.updateStatus(status)

	if a.config.AutoPlay {
		a.audioPlayer.Play()
	}
}

// Helper methods
func (a *Application) setUIEnabled(enabled bool) {
	if enabled {
		a.cropSelect.Enable()
		a.languageSelect.Enable()
		a.accentSelect.Enable()
		if len(a.diseaseSelect.Options) > 0 {
			a.diseaseSelect.Enable()
		}
	} else {
		a.cropSelect.Disable()
		a.diseaseSelect.Disable()
		a.languageSelect.Disable()
		a.accentSelect.Disable()
	}
	a.refreshConvertButton()
}

func (a *Application) updateStatus(message string) {
	a.statusLabel.SetText(message)
}

func (a *Application) showError(message string) {
	dialog.ShowInformation("Cannot convert", message, a.window)
	a.updateStatus("Error: " + message)
}

func (a *Application) onShowHotkeys() {
	hotkeys := `## Form
**Tab** Navigate fields
**Esc** Unfocus field

## Actions
**g** Convert to speech
**p** Play audio
**s** Stop audio
**t** Toggle output text

## Help
**h** Show hotkeys
**q** Quit application`

	content := widget.NewRichTextFromMarkdown(hotkeys)
	content.Wrapping = fyne.TextWrapWord

	scroll := container.NewScroll(container.NewPadded(content))
	scroll.SetMinSize(fyne.NewSize(360, 320))

	dialog.NewCustom("Keyboard Shortcuts", "Close", scroll, a.window).Show()
}

func (a *Application) setupKeyboardShortcuts() {
	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			a.window.Canvas().Unfocus()
			return
		}

		// Leave keys to a focused widget
		if a.window.Canvas().Focused() != nil {
			return
		}

		a.handleShortcutKey(ev.Name)
	})
}

// handleShortcutKey handles the actual shortcut action
func (a *Application) handleShortcutKey(key fyne.KeyName) {
	switch strings.ToUpper(string(key)) {
	case string(fyne.KeyG):
		if !a.convertButton.Disabled() {
			a.onConvert()
		}
	case string(fyne.KeyP):
		a.audioPlayer.Play()
	case string(fyne.KeyS):
		a.audioPlayer.Stop()
	case string(fyne.KeyT):
		a.showTextCheck.SetChecked(!a.showTextCheck.Checked)
	case string(fyne.KeyH):
		a.onShowHotkeys()
	case string(fyne.KeyQ):
		a.window.Close()
	}
}
