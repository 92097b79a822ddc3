package profile

import (
	"fmt"
	"strings"
)

var audioFormatOrder = []string{"mp3", "aac", "flac", "wav", "opus", "ogg"}

var audioFormats = map[string]Stage{
	"mp3":  {Name: "mp3", Ext: ".mp3", Codec: "libmp3lame", Quality: "2", Bitrate: "192k"},
	"aac":  {Name: "aac", Ext: ".m4a", Codec: "aac", Bitrate: "192k"},
	"flac": {Name: "flac", Ext: ".flac", Codec: "flac", Extra: []string{"-compression_level", "8"}},
	"wav":  {Name: "wav", Ext: ".wav", Codec: "pcm_s16le"},
	"opus": {Name: "opus", Ext: ".opus", Codec: "libopus", Bitrate: "128k"},
	"ogg":  {Name: "ogg", Ext: ".ogg", Codec: "libvorbis", Quality: "5"},
}

// codecs that take -q:a
var qualityCodecs = map[string]bool{
	"libmp3lame": true,
	"libvorbis":  true,
}

// AudioFormatNames lists the audio formats in catalog order.
func AudioFormatNames() []string {
	return append([]string(nil), audioFormatOrder...)
}

// AudioFormat returns the single-stage profile that extracts audio in the
// named format.
func AudioFormat(name string) (Profile, error) {
	st, ok := audioFormats[strings.ToLower(name)]
	if !ok {
		return Profile{}, fmt.Errorf("unsupported audio format %q (use %s)", name, strings.Join(audioFormatOrder, ", "))
	}
	return Profile{Name: st.Name, Ext: st.Ext, Stages: []Stage{cloneStage(st)}}, nil
}

// Tier names an Opus then MP3 bitrate pair.
type Tier struct {
	Name        string
	Label       string
	OpusBitrate string
	MP3Bitrate  string
}

var tiers = []Tier{
	{Name: "extreme", Label: "smallest size", OpusBitrate: "6k", MP3Bitrate: "12k"},
	{Name: "high", Label: "recommended for speech", OpusBitrate: "8k", MP3Bitrate: "16k"},
	{Name: "standard", Label: "better sound", OpusBitrate: "12k", MP3Bitrate: "24k"},
}

// DefaultTier is used by compress-audio when no tier is given.
const DefaultTier = "high"

// Tiers lists the compression tiers from smallest to largest output.
func Tiers() []Tier {
	return append([]Tier(nil), tiers...)
}

// CompressionTier returns the two-stage profile for a named tier.
func CompressionTier(name string) (Profile, error) {
	for _, t := range tiers {
		if t.Name == strings.ToLower(name) {
			p := TwoStage(t.OpusBitrate, t.MP3Bitrate)
			p.Name = "compress-" + t.Name
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("unknown compression tier %q (use extreme, high or standard)", name)
}

// TwoStage compresses speech to a low bitrate Opus staging file, then
// re-encodes it as MP3 for compatibility.
func TwoStage(opusBitrate, mp3Bitrate string) Profile {
	return Profile{
		Name:         "compress-custom",
		Ext:          ".mp3",
		CompareSizes: true,
		Stages: []Stage{
			{
				Name:       "opus",
				Ext:        ".opus",
				Codec:      "libopus",
				Bitrate:    opusBitrate,
				SampleRate: 8000,
				Channels:   1,
				Filters: []string{
					"lowpass=3400",
					"highpass=300",
					"compand=attacks=0.1:decays=0.5",
					"silenceremove=stop_periods=-1:stop_duration=0.5:stop_threshold=-30dB",
				},
				Extra: []string{
					"-vbr", "constrained",
					"-compression_level", "10",
					"-application", "voip",
					"-frame_duration", "60",
				},
			},
			{
				Name:       "mp3",
				Ext:        ".mp3",
				Codec:      "libmp3lame",
				Bitrate:    mp3Bitrate,
				SampleRate: 8000,
				Channels:   1,
				Extra: []string{
					"-write_id3v1", "1",
					"-id3v2_version", "3",
					"-map_metadata", "0",
				},
			},
		},
	}
}

// VideoPreset names a set of H.264 compression settings.
type VideoPreset struct {
	Name         string
	CRF          int
	Preset       string
	AudioBitrate string
}

var videoPresets = []VideoPreset{
	{Name: "default", CRF: 28, Preset: "medium", AudioBitrate: "64k"},
	{Name: "wechat", CRF: 28, Preset: "fast", AudioBitrate: "48k"},
}

// VideoPresetByName looks up a named video preset.
func VideoPresetByName(name string) (VideoPreset, error) {
	for _, p := range videoPresets {
		if p.Name == strings.ToLower(name) {
			return p, nil
		}
	}
	return VideoPreset{}, fmt.Errorf("unknown video preset %q (use default or wechat)", name)
}

// Video returns the single-stage H.264/AAC MP4 compression profile.
func Video(vp VideoPreset) Profile {
	return Profile{
		Name:         "video-" + vp.Name,
		Ext:          ".mp4",
		CompareSizes: true,
		Stages: []Stage{{
			Name:       "h264",
			Ext:        ".mp4",
			VideoCodec: "libx264",
			CRF:        vp.CRF,
			Preset:     vp.Preset,
			Codec:      "aac",
			Bitrate:    vp.AudioBitrate,
			Extra:      []string{"-movflags", "+faststart"},
		}},
	}
}

// Speech returns the 16 kHz mono PCM WAV profile fed to speech recognition.
func Speech() Profile {
	return Profile{
		Name: "speech",
		Ext:  ".wav",
		Stages: []Stage{{
			Name:       "speech",
			Ext:        ".wav",
			Codec:      "pcm_s16le",
			SampleRate: 16000,
			Channels:   1,
		}},
	}
}

// Apply returns a copy of p with o applied to the final stage. A bitrate
// override replaces a VBR quality setting and the other way around.
func (p Profile) Apply(o Overrides) (Profile, error) {
	if o.Channels != 0 && o.Channels != 1 && o.Channels != 2 {
		return Profile{}, fmt.Errorf("channels must be 1 or 2, got %d", o.Channels)
	}
	if o.SampleRate < 0 {
		return Profile{}, fmt.Errorf("sample rate must be positive, got %d", o.SampleRate)
	}

	out := p
	out.Stages = make([]Stage, len(p.Stages))
	for i, st := range p.Stages {
		out.Stages[i] = cloneStage(st)
	}
	if o.empty() || len(out.Stages) == 0 {
		return out, nil
	}

	final := &out.Stages[len(out.Stages)-1]
	if o.Quality != "" {
		if !qualityCodecs[final.Codec] {
			return Profile{}, fmt.Errorf("quality applies only to mp3 and ogg output, not %s", p.Name)
		}
		final.Quality = o.Quality
		final.Bitrate = ""
	}
	if o.Bitrate != "" {
		final.Bitrate = o.Bitrate
		final.Quality = ""
	}
	if o.SampleRate > 0 {
		final.SampleRate = o.SampleRate
	}
	if o.Channels > 0 {
		final.Channels = o.Channels
	}
	return out, nil
}

func cloneStage(s Stage) Stage {
	s.Filters = append([]string(nil), s.Filters...)
	s.Extra = append([]string(nil), s.Extra...)
	return s
}
