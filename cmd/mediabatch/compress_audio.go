package main

import (
	"fmt"
	"io"

	"github.com/nguyentantai21042004/media-batch/internal/profile"
	"github.com/nguyentantai21042004/media-batch/internal/scanner"
	"github.com/spf13/cobra"
)

func newCompressAudioCommand(a *app) *cobra.Command {
	var (
		tier        string
		opusBitrate string
		mp3Bitrate  string
		listTiers   bool
	)

	cmd := &cobra.Command{
		Use:   "compress-audio [input_dir]",
		Short: "Shrink speech recordings through Opus into small MP3 files",
		Example: `  mediabatch compress-audio ./recordings
  mediabatch compress-audio ./recordings --tier extreme
  mediabatch compress-audio ./recordings --opus-bitrate 10k --mp3-bitrate 20k`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listTiers {
				printTiers(cmd.OutOrStdout())
				return nil
			}

			p, err := profile.CompressionTier(tier)
			if err != nil {
				return err
			}
			if opusBitrate != "" || mp3Bitrate != "" {
				p = profile.TwoStage(
					firstNonEmpty(opusBitrate, p.Stages[0].Bitrate),
					firstNonEmpty(mp3Bitrate, p.Stages[1].Bitrate),
				)
			}
			return a.runBatch(cmd, inputDir(args), batch{
				title:         "Audio compression",
				defaultOutput: "opus_mp3_mini",
				extensions:    scanner.AudioExtensions,
				profile:       p,
				newProcessor:  a.transcoder,
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&tier, "tier", profile.DefaultTier, "compression tier: extreme, high or standard")
	f.StringVar(&opusBitrate, "opus-bitrate", "", "override the Opus stage bitrate, e.g. 8k")
	f.StringVar(&mp3Bitrate, "mp3-bitrate", "", "override the MP3 stage bitrate, e.g. 16k")
	f.BoolVar(&listTiers, "list-tiers", false, "list compression tiers and exit")

	return cmd
}

func printTiers(w io.Writer) {
	fmt.Fprintln(w, "Compression tiers:")
	for _, t := range profile.Tiers() {
		def := ""
		if t.Name == profile.DefaultTier {
			def = " (default)"
		}
		fmt.Fprintf(w, "  %-9s Opus %-4s -> MP3 %-4s %s%s\n", t.Name, t.OpusBitrate, t.MP3Bitrate, t.Label, def)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
