package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/cropvoice/internal/cli"
	"codeberg.org/snonux/cropvoice/internal/models"
	"codeberg.org/snonux/cropvoice/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)
	rootCmd.SilenceErrors = true

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
		cli.SetupLogger(viper.GetString("log.level"))
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runCommand(cmd.Context(), args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", processor.UserMessage(err))
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, args []string, flags *cli.Flags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey(), cli.GetOpenAIBaseURL())
		return lister.ListAvailableModels(ctx, os.Stdout)
	}

	if len(args) == 1 {
		return fmt.Errorf("expected a crop and a disease, got only %q", args[0])
	}

	// Create processor
	proc, err := processor.NewProcessor(ctx, flags)
	if err != nil {
		return err
	}

	switch {
	case flags.List:
		proc.ListCatalog(os.Stdout)
	case flags.ListLanguages:
		proc.ListLanguages(os.Stdout)
	case flags.BatchFile != "":
		return proc.ProcessBatch(ctx)
	case len(args) == 2:
		return proc.ProcessSingle(ctx, processor.Request{
			Crop:     args[0],
			Disease:  args[1],
			Language: viper.GetString("language.default"),
			Accent:   viper.GetString("language.accent"),
		})
	default:
		// No input provided - launch GUI mode by default
		return proc.RunGUIMode()
	}

	return nil
}
