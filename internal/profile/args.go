package profile

import (
	"strconv"
	"strings"
)

// Args builds the ffmpeg argument vector that encodes in into out.
func (s Stage) Args(in, out string) []string {
	args := []string{"-hide_banner", "-nostdin", "-y", "-i", in}

	if s.VideoCodec == "" {
		args = append(args, "-vn", "-sn", "-dn")
	} else {
		args = append(args, "-c:v", s.VideoCodec)
		if s.CRF > 0 {
			args = append(args, "-crf", strconv.Itoa(s.CRF))
		}
		if s.Preset != "" {
			args = append(args, "-preset", s.Preset)
		}
	}

	if s.Codec != "" {
		args = append(args, "-c:a", s.Codec)
	}
	if s.Quality != "" {
		args = append(args, "-q:a", s.Quality)
	}
	if s.Bitrate != "" {
		args = append(args, "-b:a", s.Bitrate)
	}
	if s.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(s.SampleRate))
	}
	if s.Channels > 0 {
		args = append(args, "-ac", strconv.Itoa(s.Channels))
	}
	if len(s.Filters) > 0 {
		args = append(args, "-af", strings.Join(s.Filters, ","))
	}

	args = append(args, s.Extra...)
	args = append(args, "-loglevel", "error", out)
	return args
}
