package main

import (
	"github.com/nguyentantai21042004/media-batch/internal/profile"
	"github.com/nguyentantai21042004/media-batch/internal/scanner"
	"github.com/spf13/cobra"
)

func newCompressVideoCommand(a *app) *cobra.Command {
	var (
		presetName   string
		crf          int
		preset       string
		audioBitrate string
	)

	cmd := &cobra.Command{
		Use:   "compress-video [input_dir]",
		Short: "Re-encode MP4 files with H.264 and AAC to save space",
		Example: `  mediabatch compress-video ./videos
  mediabatch compress-video ./videos --preset-name wechat
  mediabatch compress-video ./videos --crf 30 --preset slow`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vp, err := profile.VideoPresetByName(presetName)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("crf") {
				vp.CRF = crf
			}
			if preset != "" {
				vp.Preset = preset
			}
			if audioBitrate != "" {
				vp.AudioBitrate = audioBitrate
			}
			return a.runBatch(cmd, inputDir(args), batch{
				title:         "Video compression",
				defaultOutput: "compressed",
				extensions:    scanner.MP4Extensions,
				profile:       profile.Video(vp),
				newProcessor:  a.transcoder,
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&presetName, "preset-name", "default", "settings bundle: default or wechat")
	f.IntVar(&crf, "crf", 28, "x264 constant rate factor, higher is smaller")
	f.StringVar(&preset, "preset", "", "x264 speed preset, e.g. fast, medium, slow")
	f.StringVar(&audioBitrate, "audio-bitrate", "", "AAC bitrate, e.g. 64k")

	return cmd
}
