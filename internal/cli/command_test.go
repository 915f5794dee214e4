package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/cropvoice/internal/sweep"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestCreateRootCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	// Test basic command properties
	if cmd.Use != "cropvoice [crop] [disease]" {
		t.Errorf("Expected Use to be 'cropvoice [crop] [disease]', got %s", cmd.Use)
	}

	if !strings.Contains(cmd.Short, "Crop disease advice") {
		t.Errorf("Expected Short description to contain 'Crop disease advice'")
	}

	persistent := map[string]bool{"config": true, "output": true, "retention": true, "log-level": true}

	flagTests := []string{
		"config", "output", "retention", "log-level",
		"catalog", "format", "language", "accent", "show-text", "batch",
		"list", "list-languages", "list-models", "no-sweep",
		"translator", "translate-model",
		"audio-provider", "audio-fallback",
		"openai-model", "openai-voice", "openai-speed", "openai-instruction",
	}

	for _, name := range flagTests {
		t.Run("flag_"+name, func(t *testing.T) {
			var flag *pflag.Flag
			if persistent[name] {
				flag = cmd.PersistentFlags().Lookup(name)
			} else {
				flag = cmd.Flags().Lookup(name)
			}
			if flag == nil {
				t.Errorf("Expected flag %s to exist", name)
			}
		})
	}

	if cmd.Flags().Lookup("catalog").Shorthand != "c" {
		t.Error("catalog flag should have shorthand -c")
	}
	if cmd.Flags().Lookup("language").Shorthand != "l" {
		t.Error("language flag should have shorthand -l")
	}

	var sweepCmd *cobra.Command
	for _, sub := range cmd.Commands() {
		if sub.Name() == "sweep" {
			sweepCmd = sub
		}
	}
	if sweepCmd == nil {
		t.Fatal("sweep sub-command not registered")
	}
	if sweepCmd.Flags().Lookup("schedule") == nil {
		t.Fatal("sweep sub-command has no --schedule flag")
	}
}

func TestSweepScheduleDefault(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, ""},
		{[]string{"--schedule"}, sweep.DefaultSchedule},
		{[]string{"--schedule=0 3 * * *"}, "0 3 * * *"},
	}

	for _, tt := range tests {
		flags := NewFlags()
		cmd := NewSweepCommand(flags)
		if err := cmd.ParseFlags(tt.args); err != nil {
			t.Fatalf("ParseFlags(%v) failed: %v", tt.args, err)
		}
		if flags.Schedule != tt.want {
			t.Errorf("ParseFlags(%v): Schedule = %q, want %q", tt.args, flags.Schedule, tt.want)
		}
	}
}

func TestRootCommandArgs(t *testing.T) {
	cmd := CreateRootCommand(NewFlags())

	if err := cmd.Args(cmd, []string{"Maize", "Rust"}); err != nil {
		t.Errorf("two args rejected: %v", err)
	}
	if err := cmd.Args(cmd, []string{"Maize", "Rust", "extra"}); err == nil {
		t.Error("three args accepted")
	}
}

func TestSetupFlags(t *testing.T) {
	resetViper(t)

	cmd := &cobra.Command{}
	flags := NewFlags()

	setupFlags(cmd, flags)

	outputFlag := cmd.PersistentFlags().Lookup("output")
	if outputFlag == nil {
		t.Fatal("output flag not found")
	}
	if outputFlag.DefValue != DefaultOutputDir() {
		t.Errorf("Expected default output dir to be %s, got %s", DefaultOutputDir(), outputFlag.DefValue)
	}

	formatFlag := cmd.Flags().Lookup("format")
	if formatFlag == nil {
		t.Fatal("format flag not found")
	}
	if formatFlag.DefValue != "mp3" {
		t.Errorf("Expected default format to be mp3, got %s", formatFlag.DefValue)
	}

	retentionFlag := cmd.PersistentFlags().Lookup("retention")
	if retentionFlag == nil || retentionFlag.DefValue != "168h0m0s" {
		t.Errorf("Expected retention default 168h0m0s, got %v", retentionFlag)
	}
}

func TestDefaultOutputDir(t *testing.T) {
	dir := DefaultOutputDir()
	if dir == "" {
		t.Fatal("DefaultOutputDir() is empty")
	}
	if filepath.Base(dir) != "audio" {
		t.Errorf("DefaultOutputDir() = %s, want an audio directory", dir)
	}
	if !strings.Contains(dir, "cropvoice") {
		t.Errorf("DefaultOutputDir() = %s, want it scoped to cropvoice", dir)
	}
}

func TestInitConfig(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		check     func(t *testing.T)
	}{
		{
			name: "with config file",
			setupFunc: func(t *testing.T) string {
				cfgPath := filepath.Join(t.TempDir(), "test-config.yaml")
				content := `audio:
  provider: espeak
  openai_key: test-key
output:
  directory: /test/output
languages:
  - name: Swahili
    code: sw`
				if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
					t.Fatalf("Failed to create test config: %v", err)
				}
				return cfgPath
			},
			check: func(t *testing.T) {
				if viper.GetString("audio.provider") != "espeak" {
					t.Errorf("audio.provider = %q, want espeak", viper.GetString("audio.provider"))
				}
				if viper.GetString("output.directory") != "/test/output" {
					t.Errorf("output.directory = %q", viper.GetString("output.directory"))
				}
			},
		},
		{
			name: "without config file",
			setupFunc: func(t *testing.T) string {
				return ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)

			InitConfig(tt.setupFunc(t))

			// Environment variable prefix
			t.Setenv("CROPVOICE_TEST_VAR", "test-value")
			if viper.GetString("test_var") != "test-value" {
				t.Error("Environment variable not properly loaded")
			}

			if tt.check != nil {
				tt.check(t)
			}
		})
	}
}

func TestBindFlagsToViper(t *testing.T) {
	resetViper(t)

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	// Set some flag values
	cmd.PersistentFlags().Set("output", "/test/output")
	cmd.PersistentFlags().Set("retention", "48h")
	cmd.Flags().Set("format", "wav")
	cmd.Flags().Set("openai-model", "tts-1-hd")
	cmd.Flags().Set("translator", "gemini")

	if viper.GetString("output.directory") != "/test/output" {
		t.Errorf("Expected output.directory to be /test/output, got %s", viper.GetString("output.directory"))
	}

	if viper.GetString("audio.format") != "wav" {
		t.Errorf("Expected audio.format to be wav, got %s", viper.GetString("audio.format"))
	}

	if viper.GetString("audio.openai_model") != "tts-1-hd" {
		t.Errorf("Expected audio.openai_model to be tts-1-hd, got %s", viper.GetString("audio.openai_model"))
	}

	if viper.GetString("translation.provider") != "gemini" {
		t.Errorf("Expected translation.provider to be gemini, got %s", viper.GetString("translation.provider"))
	}

	if got := viper.GetDuration("output.retention").Hours(); got != 48 {
		t.Errorf("Expected output.retention to be 48h, got %vh", got)
	}
}

func TestSweepCommand(t *testing.T) {
	resetViper(t)

	dir := t.TempDir()
	flags := NewFlags()
	root := CreateRootCommand(flags)
	root.SetArgs([]string{"sweep", "--output", dir})
	root.RunE = func(*cobra.Command, []string) error { return nil }

	if err := root.Execute(); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	root = CreateRootCommand(NewFlags())
	root.SetArgs([]string{"sweep", "--output", dir, "--schedule=not a cron"})
	root.SilenceUsage = true
	root.SilenceErrors = true
	if err := root.Execute(); err == nil {
		t.Error("invalid schedule accepted")
	}
}
