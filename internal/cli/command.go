package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/cropvoice/internal"
	"codeberg.org/snonux/cropvoice/internal/sweep"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cropvoice [crop] [disease]",
		Short: "Crop disease advice as spoken audio",
		Long: `cropvoice looks up a crop disease, describes its causes, prevention
and treatment, translates the advice and reads it aloud.

Audio files are written as <crop>_<disease>.mp3 into the output directory
and deleted again after the retention period.

Examples:
  cropvoice                                  # Launch interactive GUI (default)
  cropvoice Maize Rust                       # Advice for maize rust in English
  cropvoice Maize Rust -l Swahili            # ... in Swahili
  cropvoice Maize Rust --accent "Australia"  # English with an Australian accent
  cropvoice --batch requests.txt             # Pre-generate many files
  cropvoice sweep --schedule=@daily          # Keep the audio directory tidy`,
		Args:    cobra.RangeArgs(0, 2),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	rootCmd.AddCommand(NewSweepCommand(flags))

	return rootCmd
}

// DefaultOutputDir is where audio goes when no directory is configured
func DefaultOutputDir() string {
	scope := gap.NewScope(gap.User, "cropvoice")
	if dir, err := scope.DataPath("audio"); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "cropvoice", "audio")
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.cropvoice.yaml)")
	cmd.PersistentFlags().StringVarP(&flags.OutputDir, "output", "o", DefaultOutputDir(), "Audio output directory")
	cmd.PersistentFlags().DurationVar(&flags.Retention, "retention", flags.Retention, "Delete generated audio older than this")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")

	// Local flags
	cmd.Flags().StringVarP(&flags.CatalogFile, "catalog", "c", flags.CatalogFile, "Disease catalog (.csv, .db, .sqlite)")
	cmd.Flags().StringVarP(&flags.AudioFormat, "format", "f", flags.AudioFormat, "Audio format (mp3 or wav)")
	cmd.Flags().StringVarP(&flags.Language, "language", "l", flags.Language, "Output language (name or code)")
	cmd.Flags().StringVar(&flags.Accent, "accent", "", "Accent for languages that support one, e.g. 'United Kingdom' or 'co.uk'")
	cmd.Flags().BoolVar(&flags.ShowText, "show-text", false, "Print the advice text")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Process requests from file (one 'crop | disease | language' per line)")
	cmd.Flags().BoolVar(&flags.List, "list", false, "List crops and diseases in the catalog")
	cmd.Flags().BoolVar(&flags.ListLanguages, "list-languages", false, "List output languages and accents")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")
	cmd.Flags().BoolVar(&flags.NoSweep, "no-sweep", false, "Do not delete expired audio after processing")

	// Translation flags
	cmd.Flags().StringVar(&flags.Translator, "translator", flags.Translator, "Translation backend: openai, gemini or none")
	cmd.Flags().StringVar(&flags.TranslateModel, "translate-model", "", "Model used for translation (backend default if empty)")

	// Audio flags
	cmd.Flags().StringVar(&flags.AudioProvider, "audio-provider", flags.AudioProvider, "Speech backend: openai or espeak")
	cmd.Flags().StringVar(&flags.AudioFallback, "audio-fallback", "", "Speech backend used when the primary fails")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, ballad, coral, echo, fable, onyx, nova, sage, shimmer, verse")
	cmd.Flags().Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0)")
	cmd.Flags().StringVar(&flags.OpenAIInstruction, "openai-instruction", "", "Base voice instructions for gpt-4o-mini-tts")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("catalog.path", cmd.Flags().Lookup("catalog"))
	viper.BindPFlag("output.directory", cmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("output.retention", cmd.PersistentFlags().Lookup("retention"))
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("language.default", cmd.Flags().Lookup("language"))
	viper.BindPFlag("language.accent", cmd.Flags().Lookup("accent"))
	viper.BindPFlag("translation.provider", cmd.Flags().Lookup("translator"))
	viper.BindPFlag("translation.model", cmd.Flags().Lookup("translate-model"))
	viper.BindPFlag("audio.provider", cmd.Flags().Lookup("audio-provider"))
	viper.BindPFlag("audio.fallback", cmd.Flags().Lookup("audio-fallback"))
	viper.BindPFlag("audio.format", cmd.Flags().Lookup("format"))
	viper.BindPFlag("audio.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("audio.openai_voice", cmd.Flags().Lookup("openai-voice"))
	viper.BindPFlag("audio.openai_speed", cmd.Flags().Lookup("openai-speed"))
	viper.BindPFlag("audio.openai_instruction", cmd.Flags().Lookup("openai-instruction"))
}

// NewSweepCommand creates the "sweep" sub-command
func NewSweepCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Delete expired audio files",
		Long: `sweep deletes audio files in the output directory that are older than
the retention period. With --schedule it keeps running and sweeps on every
tick of the cron expression.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := sweep.New(viper.GetString("output.directory"), viper.GetDuration("output.retention"))

			if flags.Schedule == "" {
				report, err := s.Sweep()
				if err != nil {
					return err
				}
				fmt.Printf("Swept %s: %s\n", s.Dir, report.Summary())
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			next, err := sweep.NextRun(flags.Schedule, time.Now())
			if err != nil {
				return err
			}
			fmt.Printf("Sweeping %s on schedule %q (Ctrl+C to stop)\n", s.Dir, flags.Schedule)
			fmt.Printf("Next sweep at %s\n", next.Format(time.DateTime))
			err = sweep.Schedule(ctx, flags.Schedule, s, func(r sweep.Report) {
				fmt.Printf("Swept %s: %s\n", s.Dir, r.Summary())
				if next, err := sweep.NextRun(flags.Schedule, time.Now()); err == nil {
					fmt.Printf("Next sweep at %s\n", next.Format(time.DateTime))
				}
			})
			if err == context.Canceled {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&flags.Schedule, "schedule", "", "Keep sweeping on a cron expression, e.g. --schedule='0 3 * * *' (bare --schedule sweeps "+sweep.DefaultSchedule+")")
	cmd.Flags().Lookup("schedule").NoOptDefVal = sweep.DefaultSchedule

	return cmd
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".cropvoice" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")

		scope := gap.NewScope(gap.User, "cropvoice")
		if dirs, err := scope.ConfigDirs(); err == nil {
			for _, dir := range dirs {
				viper.AddConfigPath(dir)
			}
		}

		viper.SetConfigType("yaml")
		viper.SetConfigName(".cropvoice")
	}

	// Environment variables
	viper.SetEnvPrefix("CROPVOICE")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		log.Debug("Using config file", "path", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
		log.Warn("Could not parse configuration file", "err", err)
	}
}
