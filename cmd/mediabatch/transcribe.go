package main

import (
	"github.com/nguyentantai21042004/media-batch/internal/processor"
	"github.com/nguyentantai21042004/media-batch/internal/profile"
	"github.com/nguyentantai21042004/media-batch/internal/scanner"
	"github.com/nguyentantai21042004/media-batch/internal/stt"
	"github.com/nguyentantai21042004/media-batch/internal/transcript"
	"github.com/spf13/cobra"
)

func newTranscribeCommand(a *app) *cobra.Command {
	var (
		providers []string
		language  string
		modelPath string
		minChars  int
		keepAudio bool
		docx      bool
	)

	cmd := &cobra.Command{
		Use:   "transcribe [input_dir]",
		Short: "Turn the speech in every video into a markdown transcript",
		Example: `  mediabatch transcribe ./lectures
  mediabatch transcribe ./lectures --provider openai --language en
  mediabatch transcribe ./lectures --provider whisper --model-path models/ggml-large-v3.bin --keep-audio`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := a.cfg

			flags := cmd.Flags()
			if flags.Changed("provider") {
				cfg.Transcribe.Providers = providers
			}
			if flags.Changed("language") {
				cfg.Transcribe.Language = language
			}
			if flags.Changed("model-path") {
				cfg.Whisper.ModelPath = modelPath
			}
			if flags.Changed("min-chars") {
				cfg.Transcribe.MinChars = &minChars
			}
			if flags.Changed("keep-audio") {
				cfg.Transcribe.KeepAudio = keepAudio
			}
			if flags.Changed("docx") {
				cfg.Transcribe.Docx = docx
			}
			if flags.Changed("timeout") {
				cfg.Transcribe.Timeout = a.timeout
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			newProcessor := func() (processor.Processor, error) {
				candidates, err := stt.New(cfg, a.exec, a.log)
				if err != nil {
					return nil, err
				}
				provider, err := stt.Select(ctx, a.log, candidates...)
				if err != nil {
					return nil, err
				}
				writer := transcript.New(cfg.Transcribe.Docx, a.log)
				return processor.NewTranscriber(cfg, a.exec, provider, writer, a.log), nil
			}

			return a.runBatch(cmd, inputDir(args), batch{
				title:         "Transcription",
				defaultOutput: "transcriptions",
				extensions:    scanner.VideoExtensions,
				profile:       profile.Speech(),
				ext:           ".md",
				newProcessor:  newProcessor,
			})
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&providers, "provider", nil, "speech-to-text providers to try in order: whisper, openai, gemini")
	f.StringVar(&language, "language", "zh", "spoken language code")
	f.StringVar(&modelPath, "model-path", "", "whisper.cpp model file")
	f.IntVar(&minChars, "min-chars", 5, "transcripts shorter than this many characters count as failures (0 disables the check)")
	f.BoolVar(&keepAudio, "keep-audio", false, "keep the extracted audio next to the transcripts")
	f.BoolVar(&docx, "docx", false, "also write a .docx copy of every transcript")

	return cmd
}
