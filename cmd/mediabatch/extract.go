package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/nguyentantai21042004/media-batch/internal/profile"
	"github.com/nguyentantai21042004/media-batch/internal/scanner"
	"github.com/spf13/cobra"
)

func newExtractCommand(a *app) *cobra.Command {
	var (
		format      string
		overrides   profile.Overrides
		listFormats bool
		audioInfo   bool
	)

	cmd := &cobra.Command{
		Use:   "extract [input_dir]",
		Short: "Extract the audio track of every video",
		Example: `  mediabatch extract .
  mediabatch extract /videos -o /audio --format flac
  mediabatch extract /videos -r -k --channels 1 --sample-rate 16000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listFormats {
				printVideoFormats(cmd.OutOrStdout())
				return nil
			}
			if audioInfo {
				printAudioFormats(cmd.OutOrStdout())
				return nil
			}

			p, err := profile.AudioFormat(format)
			if err != nil {
				return err
			}
			if p, err = p.Apply(overrides); err != nil {
				return err
			}
			return a.runBatch(cmd, inputDir(args), batch{
				title:         "Video to audio",
				defaultOutput: "audio_output",
				extensions:    scanner.VideoExtensions,
				profile:       p,
				newProcessor:  a.transcoder,
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&format, "format", "f", "mp3", "audio format: "+strings.Join(profile.AudioFormatNames(), ", "))
	f.StringVarP(&overrides.Quality, "quality", "q", "", "VBR quality (mp3: 0-9, 0 best; ogg: -1-10, 10 best)")
	f.StringVarP(&overrides.Bitrate, "bitrate", "b", "", "audio bitrate, e.g. 128k or 320k")
	f.IntVar(&overrides.SampleRate, "sample-rate", 0, "sample rate in Hz, e.g. 44100 or 16000")
	f.IntVar(&overrides.Channels, "channels", 0, "1 for mono, 2 for stereo")
	f.BoolVar(&listFormats, "list-formats", false, "list supported video formats and exit")
	f.BoolVar(&audioInfo, "audio-info", false, "describe the audio formats and exit")

	return cmd
}

func printVideoFormats(w io.Writer) {
	exts := slices.Clone(scanner.VideoExtensions)
	slices.Sort(exts)
	fmt.Fprintln(w, "Supported video formats:")
	for _, e := range exts {
		fmt.Fprintf(w, "  %s\n", e)
	}
}

func printAudioFormats(w io.Writer) {
	fmt.Fprintln(w, "Supported audio formats:")
	for _, name := range profile.AudioFormatNames() {
		p, _ := profile.AudioFormat(name)
		st := p.Final()
		fmt.Fprintf(w, "\n%s:\n", strings.ToUpper(name))
		fmt.Fprintf(w, "  extension: %s\n", p.Ext)
		fmt.Fprintf(w, "  codec:     %s\n", st.Codec)
		if st.Bitrate != "" {
			fmt.Fprintf(w, "  bitrate:   %s\n", st.Bitrate)
		}
		if st.Quality != "" {
			fmt.Fprintf(w, "  quality:   %s\n", st.Quality)
		}
		if len(st.Extra) > 0 {
			fmt.Fprintf(w, "  options:   %s\n", strings.Join(st.Extra, " "))
		}
	}
}
