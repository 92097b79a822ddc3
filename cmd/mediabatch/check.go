package main

import (
	"fmt"

	"github.com/nguyentantai21042004/media-batch/internal/processor"
	"github.com/nguyentantai21042004/media-batch/internal/stt"
	"github.com/spf13/cobra"
)

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report whether ffmpeg and the speech-to-text providers are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			version, toolErr := processor.CheckTool(ctx, a.exec, a.cfg.FFmpeg.BinaryPath)
			if toolErr != nil {
				fmt.Fprintf(w, "ffmpeg:  MISSING (%v)\n", toolErr)
			} else {
				fmt.Fprintf(w, "ffmpeg:  ok (%s)\n", version)
			}

			providers, err := stt.New(a.cfg, a.exec, a.log)
			if err != nil {
				return err
			}
			for _, p := range providers {
				if err := p.Available(ctx); err != nil {
					fmt.Fprintf(w, "%-8s unavailable (%v)\n", p.Name()+":", err)
					continue
				}
				fmt.Fprintf(w, "%-8s ok\n", p.Name()+":")
			}

			return toolErr
		},
	}
}
