package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/ipacheck/internal/cli"
	"codeberg.org/snonux/ipacheck/internal/logger"
	"codeberg.org/snonux/ipacheck/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd.Context(), args, flags)
	}

	// Execute command
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		// Invalid transcriptions are already shown in the report
		if !errors.Is(err, processor.ErrInvalidTranscriptions) || errors.Is(err, processor.ErrLookupFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, args []string, flags *cli.Flags) error {
	log := logger.NewLogger(cli.GetLogLevel())

	config, err := processor.ConfigFromFlags(flags)
	if err != nil {
		return err
	}

	proc := processor.NewProcessor(config, log, processor.Stdin(), os.Stdout)
	defer proc.Close()

	// Handle --archive flag
	if flags.Archive {
		return proc.ArchiveHistory()
	}

	// Handle --history flag
	if flags.History > 0 {
		return proc.ShowHistory(flags.History)
	}

	return proc.Run(ctx, args)
}
