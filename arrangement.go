package arranger

import "sort"

// Arrangement is the clip store: the complete editable state of a project
// timeline. It is a pure value; all mutation goes through the editor package,
// which snapshots Arrangements for undo. BPM is part of the Arrangement
// rather than a process-wide global so that tests can exercise multiple
// tempos deterministically.
//
// MidiClipID and AudioClipID are watermarks for id allocation. Clip ids are
// never reused within a project, so stale references (in-flight selections,
// engine callbacks) can only miss, not hit the wrong clip.
type Arrangement struct {
	BPM        float64
	Tracks     []Track     `yaml:",omitempty"`
	MidiClips  []MidiClip  `yaml:",omitempty"`
	AudioClips []AudioClip `yaml:",omitempty"`

	MidiClipID  int `yaml:",omitempty"`
	AudioClipID int `yaml:",omitempty"`
}

// Copy makes a deep copy of an Arrangement.
func (a *Arrangement) Copy() Arrangement {
	tracks := make([]Track, len(a.Tracks))
	copy(tracks, a.Tracks)
	midiClips := make([]MidiClip, len(a.MidiClips))
	for i, c := range a.MidiClips {
		midiClips[i] = c.Copy()
	}
	audioClips := make([]AudioClip, len(a.AudioClips))
	for i, c := range a.AudioClips {
		audioClips[i] = c.Copy()
	}
	return Arrangement{
		BPM:         a.BPM,
		Tracks:      tracks,
		MidiClips:   midiClips,
		AudioClips:  audioClips,
		MidiClipID:  a.MidiClipID,
		AudioClipID: a.AudioClipID,
	}
}

// AllocMidiClipID returns a fresh MIDI clip id. Ids start from 1; zero and
// negative values are sentinels.
func (a *Arrangement) AllocMidiClipID() int {
	a.MidiClipID++
	return a.MidiClipID
}

// AllocAudioClipID returns a fresh audio clip id, from a namespace separate
// from MIDI clip ids.
func (a *Arrangement) AllocAudioClipID() int {
	a.AudioClipID++
	return a.AudioClipID
}

// TrackByID returns the index of the track with the given id, or -1.
func (a *Arrangement) TrackByID(id int) int {
	for i, t := range a.Tracks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// FindMidiClip returns the index of the MIDI clip with the given id, or -1.
func (a *Arrangement) FindMidiClip(id int) int {
	for i, c := range a.MidiClips {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// FindAudioClip returns the index of the audio clip with the given id, or -1.
func (a *Arrangement) FindAudioClip(id int) int {
	for i, c := range a.AudioClips {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (a *Arrangement) AddMidiClip(c MidiClip) {
	a.MidiClips = append(a.MidiClips, c)
}

func (a *Arrangement) AddAudioClip(c AudioClip) {
	a.AudioClips = append(a.AudioClips, c)
}

// RemoveMidiClip removes the MIDI clip with the given id, reporting whether
// it was present.
func (a *Arrangement) RemoveMidiClip(id int) bool {
	i := a.FindMidiClip(id)
	if i < 0 {
		return false
	}
	a.MidiClips = append(a.MidiClips[:i], a.MidiClips[i+1:]...)
	return true
}

// RemoveAudioClip removes the audio clip with the given id, reporting whether
// it was present.
func (a *Arrangement) RemoveAudioClip(id int) bool {
	i := a.FindAudioClip(id)
	if i < 0 {
		return false
	}
	a.AudioClips = append(a.AudioClips[:i], a.AudioClips[i+1:]...)
	return true
}

// UpdateMidiClip replaces the stored clip that has c's id, reporting whether
// it was found.
func (a *Arrangement) UpdateMidiClip(c MidiClip) bool {
	i := a.FindMidiClip(c.ID)
	if i < 0 {
		return false
	}
	a.MidiClips[i] = c
	return true
}

// UpdateAudioClip replaces the stored clip that has c's id, reporting whether
// it was found.
func (a *Arrangement) UpdateAudioClip(c AudioClip) bool {
	i := a.FindAudioClip(c.ID)
	if i < 0 {
		return false
	}
	a.AudioClips[i] = c
	return true
}

// MidiClipsOnTrack returns deep copies of the MIDI clips on the given track,
// ordered by start time.
func (a *Arrangement) MidiClipsOnTrack(track int) []MidiClip {
	var ret []MidiClip
	for _, c := range a.MidiClips {
		if c.Track == track {
			ret = append(ret, c.Copy())
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Start < ret[j].Start })
	return ret
}

// AudioClipsOnTrack returns deep copies of the audio clips on the given
// track, ordered by start time.
func (a *Arrangement) AudioClipsOnTrack(track int) []AudioClip {
	var ret []AudioClip
	for _, c := range a.AudioClips {
		if c.Track == track {
			ret = append(ret, c.Copy())
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Start < ret[j].Start })
	return ret
}

// ReplaceTrackMidiClips swaps the whole MIDI clip list of a track for the
// given clips, leaving other tracks untouched. Used by recording undo, which
// restores a track to an exact earlier state in one step.
func (a *Arrangement) ReplaceTrackMidiClips(track int, clips []MidiClip) {
	kept := a.MidiClips[:0]
	for _, c := range a.MidiClips {
		if c.Track != track {
			kept = append(kept, c)
		}
	}
	a.MidiClips = kept
	for _, c := range clips {
		a.MidiClips = append(a.MidiClips, c.Copy())
	}
}

// ReplaceTrackAudioClips is the audio domain counterpart of
// ReplaceTrackMidiClips.
func (a *Arrangement) ReplaceTrackAudioClips(track int, clips []AudioClip) {
	kept := a.AudioClips[:0]
	for _, c := range a.AudioClips {
		if c.Track != track {
			kept = append(kept, c)
		}
	}
	a.AudioClips = kept
	for _, c := range clips {
		a.AudioClips = append(a.AudioClips, c.Copy())
	}
}
