package gui

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestAudioPlayerStatus(t *testing.T) {
	test.NewTempApp(t)

	p := NewAudioPlayer()
	if !p.playButton.Disabled() {
		t.Error("play button should start disabled")
	}

	p.SetAudioFile("/tmp/audio/Maize_Rust.mp3", "Swahili")
	if got := p.statusLabel.Text; got != "Audio: Maize_Rust.mp3 (Swahili)" {
		t.Errorf("status = %q", got)
	}
	if p.playButton.Disabled() {
		t.Error("play button should be enabled once audio is loaded")
	}

	p.SetAudioFile("/tmp/audio/Cassava_Mosaic.mp3", "")
	if got := p.statusLabel.Text; got != "Audio: Cassava_Mosaic.mp3" {
		t.Errorf("status without info = %q", got)
	}

	p.Clear()
	if got := p.statusLabel.Text; got != "No audio loaded" {
		t.Errorf("status after Clear = %q", got)
	}
	if p.info != "" || p.audioFile != "" {
		t.Errorf("Clear left state behind: info=%q file=%q", p.info, p.audioFile)
	}
}
