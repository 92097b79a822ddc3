package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// FormatBytes returns a human-readable size (e.g. "1.2 MiB").
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < 4; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB"}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// Print writes the run summary. Failed files are always listed.
func Print(w io.Writer, title string, s Stats) {
	line := strings.Repeat("=", 50)
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "%s complete\n", title)
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Total files:   %d\n", s.Total)
	fmt.Fprintf(w, "Succeeded:     %d\n", s.Success)
	fmt.Fprintf(w, "Skipped:       %d\n", s.Skipped)
	if s.NoTrack > 0 {
		fmt.Fprintf(w, "No source track: %d\n", s.NoTrack)
	}
	fmt.Fprintf(w, "Failed:        %d\n", s.Failed)
	if p := s.Pending(); p > 0 {
		fmt.Fprintf(w, "Not started:   %d (interrupted)\n", p)
	}

	if s.InputBytes > 0 {
		fmt.Fprintf(w, "Input size:    %s\n", FormatBytes(s.InputBytes))
		fmt.Fprintf(w, "Output size:   %s\n", FormatBytes(s.OutputBytes))
		fmt.Fprintf(w, "Ratio:         %.1f%%\n", s.Ratio())
		if saved := s.SpaceSaved(); saved >= 0 {
			fmt.Fprintf(w, "Saved:         %s\n", FormatBytes(saved))
		} else {
			fmt.Fprintf(w, "Grew by:       %s\n", FormatBytes(-saved))
		}
	}

	fmt.Fprintf(w, "Elapsed:       %s\n", s.Elapsed().Round(time.Second))

	if len(s.Failures) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Failed files:")
		for _, f := range s.Failures {
			fmt.Fprintf(w, "  - %s: %s\n", filepath.Base(f.Source), f.Message)
		}
	}
	fmt.Fprintln(w, line)
}
