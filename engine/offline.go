// Package engine provides an in-process, offline implementation of the
// arranger.ClipEngine capability set. It keeps per-domain clip registries in
// memory and decodes audio through the audiofile package, which makes it the
// engine of choice for the command line tools and for tests that want a
// realistic collaborator instead of a scripted fake. It renders previews but
// makes no realtime guarantees.
package engine

import (
	"github.com/avolans/arranger"
	"github.com/avolans/arranger/audiofile"
)

type (
	midiClip struct {
		track    int
		start    float64
		duration float64
		notes    []arranger.MidiNote
	}

	audioClip struct {
		track    int
		start    float64
		offset   float64
		duration float64
		path     string
		info     *audiofile.Info
	}

	// Offline implements arranger.ClipEngine. The zero value is not usable;
	// use NewOffline.
	Offline struct {
		midi  map[int]*midiClip
		audio map[int]*audioClip

		// loadFile can be overridden in tests to avoid touching the disk.
		loadFile func(path string) (*audiofile.Info, error)
	}
)

func NewOffline() *Offline {
	return &Offline{
		midi:     make(map[int]*midiClip),
		audio:    make(map[int]*audioClip),
		loadFile: audiofile.DecodeFile,
	}
}

// MIDI domain

func (o *Offline) AddClip(clip, track int, start, duration float64) bool {
	if clip <= 0 || duration < 0 {
		return false
	}
	o.midi[clip] = &midiClip{track: track, start: start, duration: duration}
	return true
}

func (o *Offline) DeleteClip(clip, track int) bool {
	c, ok := o.midi[clip]
	if !ok || c.track != track {
		return false
	}
	delete(o.midi, clip)
	return true
}

func (o *Offline) RescheduleClip(clip, track int, start, duration float64) bool {
	c, ok := o.midi[clip]
	if !ok {
		return false
	}
	c.track = track
	c.start = start
	c.duration = duration
	return true
}

func (o *Offline) UpdateClipNotes(clip int, notes []arranger.MidiNote) bool {
	c, ok := o.midi[clip]
	if !ok {
		return false
	}
	c.notes = append(c.notes[:0:0], notes...)
	return true
}

// Audio domain

// LoadClipFile loads a WAV file into a clip slot. Loading into an id that is
// already in use replaces that clip's content, which makes reloading after
// an undo idempotent.
func (o *Offline) LoadClipFile(clip, track int, path string) bool {
	if clip <= 0 {
		return false
	}
	info, err := o.loadFile(path)
	if err != nil {
		return false
	}
	o.audio[clip] = &audioClip{
		track:    track,
		path:     path,
		info:     info,
		duration: info.Duration,
	}
	return true
}

func (o *Offline) RemoveClip(clip, track int) bool {
	c, ok := o.audio[clip]
	if !ok || c.track != track {
		return false
	}
	delete(o.audio, clip)
	return true
}

func (o *Offline) SetClipStart(clip int, start float64) bool {
	c, ok := o.audio[clip]
	if !ok {
		return false
	}
	c.start = start
	return true
}

func (o *Offline) SetClipOffset(clip int, offset float64) bool {
	c, ok := o.audio[clip]
	if !ok || offset < 0 {
		return false
	}
	c.offset = offset
	return true
}

func (o *Offline) SetClipDuration(clip int, duration float64) bool {
	c, ok := o.audio[clip]
	if !ok || duration < 0 {
		return false
	}
	c.duration = duration
	return true
}

func (o *Offline) DuplicateClip(clip, newClip, track int, newStart float64) bool {
	src, ok := o.audio[clip]
	if !ok || newClip <= 0 {
		return false
	}
	o.audio[newClip] = &audioClip{
		track:    track,
		start:    newStart,
		offset:   src.offset,
		duration: src.duration,
		path:     src.path,
		info:     src.info,
	}
	return true
}

func (o *Offline) ClipDuration(clip int) float64 {
	c, ok := o.audio[clip]
	if !ok || c.info == nil {
		return -1
	}
	return c.info.Duration
}

func (o *Offline) WaveformPeaks(clip int, resolution int) []float32 {
	c, ok := o.audio[clip]
	if !ok || c.info == nil {
		return nil
	}
	return audiofile.Peaks(c.info.Mono(), resolution)
}

// RenderClipPreview renders the audible window of an audio clip (respecting
// its offset and duration) as interleaved stereo float32, ready for an
// AudioSink. Returns nil for unknown clips.
func (o *Offline) RenderClipPreview(clip int) []float32 {
	c, ok := o.audio[clip]
	if !ok || c.info == nil {
		return nil
	}
	mono := c.info.Mono()
	from := int(c.offset * float64(c.info.SampleRate))
	to := int((c.offset + c.duration) * float64(c.info.SampleRate))
	if from < 0 {
		from = 0
	}
	if to > len(mono) {
		to = len(mono)
	}
	if from >= to {
		return nil
	}
	window := mono[from:to]
	stereo := make([]float32, 0, 2*len(window))
	for _, s := range window {
		stereo = append(stereo, s, s)
	}
	return stereo
}

var _ arranger.ClipEngine = (*Offline)(nil)
