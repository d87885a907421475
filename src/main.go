package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"rbxreflect/src/directors"
	"rbxreflect/src/engine"
	"rbxreflect/src/helpers"
	"rbxreflect/src/settings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is the current rbxreflect version
var Version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	args := settings.GetSettings()
	args.Version = Version

	rootCmd := &cobra.Command{
		Use:   "rbxreflect",
		Short: "Build the reflection database from an API dump, patches and a live host",
		Long: `rbxreflect assembles the reflection database: every class, its properties
and their default values. The API dump is the baseline, YAML property patches
correct it, and a probe running inside the live host reports the truth last.

Examples:
  rbxreflect generate --dump api-dump.json --patches patches --host studio --output-bson database.bson
  rbxreflect generate --dump api-dump.json --replay messages.jsonl --output-json database.json
  rbxreflect check --dump api-dump.json --patches patches`,
		Version:           Version,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if args.ConfigFile == "" {
				return nil
			}
			return settings.ApplyConfigFile(args, args.ConfigFile, func(flag string) bool {
				return cmd.Flags().Changed(flag)
			})
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&args.ConfigFile, "config", "", "Path to a YAML config file")
	flags.StringVar(&args.DumpPath, "dump", "", "Path to the API dump JSON")
	flags.StringVar(&args.PatchDir, "patches", "", "Directory of YAML property patches")
	flags.BoolVar(&args.Verbose, "verbose", false, "Enable verbose logging")
	flags.BoolVar(&args.Debug, "debug", false, "Enable debug mode")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Build, check and write the reflection database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), args)
		},
	}
	generateFlags := generateCmd.Flags()
	generateFlags.StringVar(&args.HostCommand, "host", "", "Live host command; empty skips live corrections")
	generateFlags.StringSliceVar(&args.HostArgs, "host-args", nil, "Arguments for the live host command")
	generateFlags.DurationVar(&args.HostTimeout, "host-timeout", engine.DefaultHostTimeout, "How long the live host may run")
	generateFlags.IntVar(&args.MaxMessageSize, "max-message-size", engine.DefaultMaxMessageSize, "Largest probe message accepted, in bytes")
	generateFlags.StringVar(&args.ReplayPath, "replay", "", "Replay probe messages from a file instead of running the host")
	generateFlags.StringVar(&args.RecordPath, "record", "", "Save the probe messages of this run to a file")
	generateFlags.StringVar(&args.OutputBSON, "output-bson", "", "Write the database as BSON to this path")
	generateFlags.StringVar(&args.OutputJSON, "output-json", "", "Write the database as JSON to this path")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the dump and patches are consistent, without the live host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(args)
		},
	}

	rootCmd.AddCommand(generateCmd, checkCmd)
	return rootCmd
}

func runGenerate(ctx context.Context, args *settings.Arguments) error {
	if err := settings.ValidateArguments(args, true); err != nil {
		return err
	}

	logger, err := startLogger(args)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	directors.InitServiceManager(args, true, logger)
	service := directors.GetServiceManager().ReflectionService

	db, err := service.Generate(ctx)
	if err != nil {
		logger.Errorf("Generation failed: %v", err)
		return err
	}
	if err := service.Emit(db); err != nil {
		logger.Errorf("Emission failed: %v", err)
		return err
	}
	return nil
}

func runCheck(args *settings.Arguments) error {
	if err := settings.ValidateArguments(args, false); err != nil {
		return err
	}

	logger, err := startLogger(args)
	if err != nil {
		return err
	}
	defer logger.Sync()

	directors.InitServiceManager(args, false, logger)

	if err := directors.GetServiceManager().ReflectionService.Check(); err != nil {
		logger.Errorf("Check failed: %v", err)
		return err
	}
	return nil
}

func startLogger(args *settings.Arguments) (*zap.SugaredLogger, error) {
	logger, err := helpers.InitLogger(args.Debug)
	if err != nil {
		return nil, err
	}

	if args.Verbose {
		logger.Infow("rbxreflect starting with options",
			zap.String("version", args.Version),
			zap.String("dump", args.DumpPath),
			zap.String("patches", args.PatchDir),
			zap.String("host", args.HostCommand),
			zap.Strings("host_args", args.HostArgs),
			zap.Duration("host_timeout", args.HostTimeout),
			zap.String("replay", args.ReplayPath),
			zap.String("record", args.RecordPath),
			zap.String("output_bson", args.OutputBSON),
			zap.String("output_json", args.OutputJSON),
			zap.String("config", args.ConfigFile))
	}
	return logger, nil
}
