package profile

// Stage is one external encoder pass. The last stage of a profile writes the
// job destination; earlier stages write staging files with their own Ext.
type Stage struct {
	Name string
	Ext  string

	// Audio encoding.
	Codec      string
	Quality    string
	Bitrate    string
	SampleRate int
	Channels   int
	Filters    []string

	// Video encoding. When VideoCodec is empty the video, subtitle and data
	// streams are dropped.
	VideoCodec string
	CRF        int
	Preset     string

	Extra []string
}

// Profile is a named, read-only bundle of encoder stages selected once per run.
type Profile struct {
	Name   string
	Ext    string
	Stages []Stage

	// CompareSizes records before/after byte sizes for compression runs.
	CompareSizes bool
}

// Final returns the stage that writes the destination.
func (p Profile) Final() Stage {
	if len(p.Stages) == 0 {
		return Stage{}
	}
	return p.Stages[len(p.Stages)-1]
}

// Overrides are user-supplied values applied to the final stage.
type Overrides struct {
	Quality    string
	Bitrate    string
	SampleRate int
	Channels   int
}

func (o Overrides) empty() bool {
	return o == Overrides{}
}
