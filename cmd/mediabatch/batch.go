package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/media-batch/internal/model"
	"github.com/nguyentantai21042004/media-batch/internal/pipeline"
	"github.com/nguyentantai21042004/media-batch/internal/planner"
	"github.com/nguyentantai21042004/media-batch/internal/processor"
	"github.com/nguyentantai21042004/media-batch/internal/profile"
	"github.com/nguyentantai21042004/media-batch/internal/report"
	"github.com/spf13/cobra"
)

// delay before a watched file is picked up, so the writer can finish
const watchSettle = 500 * time.Millisecond

// batch is one subcommand's run: what to scan, how to name outputs and what
// to do with each file.
type batch struct {
	title         string
	defaultOutput string
	extensions    []string
	profile       profile.Profile
	ext           string
	// newProcessor runs after the input directory and ffmpeg are verified.
	newProcessor func() (processor.Processor, error)
}

func inputDir(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

// outputDir resolves the output root: flag or config value first, then the
// subcommand default inside the input directory.
func (a *app) outputDir(input, fallback string) string {
	if a.cfg.Paths.Output != "" {
		return a.cfg.Paths.Output
	}
	return filepath.Join(input, fallback)
}

func (a *app) transcoder() (processor.Processor, error) {
	return processor.New(a.cfg, a.exec, a.log), nil
}

// checkFFmpeg fails the run before any file is touched when ffmpeg is missing.
func (a *app) checkFFmpeg(cmd *cobra.Command) error {
	version, err := processor.CheckTool(cmd.Context(), a.exec, a.cfg.FFmpeg.BinaryPath)
	if err != nil {
		return err
	}
	a.log.Debug(cmd.Context(), "Using %s", version)
	return nil
}

func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", model.ErrDirectoryNotFound, path)
	}
	return nil
}

func (a *app) runBatch(cmd *cobra.Command, input string, b batch) error {
	ctx := cmd.Context()
	output := a.outputDir(input, b.defaultOutput)

	if err := requireDir(input); err != nil {
		return err
	}
	if err := a.checkFFmpeg(cmd); err != nil {
		return err
	}
	proc, err := b.newProcessor()
	if err != nil {
		return err
	}

	a.log.Info(ctx, "========================================")
	a.log.Info(ctx, "%s", b.title)
	a.log.Info(ctx, "========================================")
	a.log.Info(ctx, "Input: %s", input)
	a.log.Info(ctx, "Output: %s", output)
	a.log.Info(ctx, "Profile: %s", b.profile.Name)
	a.log.Info(ctx, "Recursive: %v, keep structure: %v, overwrite: %v",
		a.cfg.Batch.Recursive, a.cfg.Batch.KeepStructure, !a.cfg.Batch.NoOverwrite)
	a.log.Info(ctx, "Workers: %d", a.cfg.Performance.MaxConcurrent)

	p := pipeline.New(pipeline.Options{
		InputDir:   input,
		Recursive:  a.cfg.Batch.Recursive,
		Extensions: b.extensions,
		Exclude:    []string{output},
		Builder: planner.Builder{
			InputRoot:     input,
			OutputRoot:    output,
			Ext:           b.ext,
			KeepStructure: a.cfg.Batch.KeepStructure,
			Overwrite:     !a.cfg.Batch.NoOverwrite,
			Profile:       b.profile,
		},
		Workers: a.cfg.Performance.MaxConcurrent,
		Watch:   a.watch,
		Settle:  watchSettle,
	}, proc, a.log)

	stats, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", b.title, err)
	}

	report.Print(cmd.OutOrStdout(), b.title, stats)
	return nil
}
