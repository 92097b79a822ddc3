package main

import (
	"fmt"
	"time"

	"github.com/nguyentantai21042004/media-batch/internal/config"
	"github.com/nguyentantai21042004/media-batch/internal/logger"
	"github.com/nguyentantai21042004/media-batch/pkg/executor"
	"github.com/spf13/cobra"
)

// app holds what every subcommand shares once flags are parsed.
type app struct {
	configPath string
	cfg        *config.Config
	log        logger.Logger
	exec       executor.Executor

	output        string
	recursive     bool
	keepStructure bool
	noOverwrite   bool
	threads       int
	timeout       time.Duration
	ffmpegPath    string
	watch         bool
	logLevel      string
	logFormat     string
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "mediabatch",
		Short:         "Batch audio extraction, compression and transcription with ffmpeg",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "config file (default: ./config.yaml when present)")
	f.StringVarP(&a.output, "output", "o", "", "output directory (default: a subcommand specific folder in the input directory)")
	f.BoolVarP(&a.recursive, "recursive", "r", false, "process subdirectories")
	f.BoolVarP(&a.keepStructure, "keep-structure", "k", false, "mirror the input directory layout in the output")
	f.BoolVar(&a.noOverwrite, "no-overwrite", false, "skip files whose output already exists")
	f.IntVarP(&a.threads, "threads", "t", 2, "number of files processed in parallel")
	f.DurationVar(&a.timeout, "timeout", time.Hour, "per-file time limit")
	f.StringVar(&a.ffmpegPath, "ffmpeg-path", "ffmpeg", "ffmpeg executable")
	f.BoolVar(&a.watch, "watch", false, "keep watching the input directory for new files after the batch")
	f.StringVar(&a.logLevel, "log-level", "info", "debug, info, warn or error")
	f.StringVar(&a.logFormat, "log-format", "text", "text or json")

	cmd.AddCommand(
		newExtractCommand(a),
		newCompressAudioCommand(a),
		newCompressVideoCommand(a),
		newTranscribeCommand(a),
		newCheckCommand(a),
	)

	return cmd
}

// setup loads the config file and lets explicitly set flags override it.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Paths.Output = a.output
	}
	if flags.Changed("recursive") {
		cfg.Batch.Recursive = a.recursive
	}
	if flags.Changed("keep-structure") {
		cfg.Batch.KeepStructure = a.keepStructure
	}
	if flags.Changed("no-overwrite") {
		cfg.Batch.NoOverwrite = a.noOverwrite
	}
	if flags.Changed("threads") {
		if a.threads < 1 {
			return fmt.Errorf("--threads must be at least 1, got %d", a.threads)
		}
		cfg.Performance.MaxConcurrent = a.threads
	}
	if flags.Changed("timeout") {
		cfg.FFmpeg.Timeout = a.timeout
	}
	if flags.Changed("ffmpeg-path") {
		cfg.FFmpeg.BinaryPath = a.ffmpegPath
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = a.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	a.cfg = cfg
	a.log = logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	a.exec = executor.New()
	return nil
}
