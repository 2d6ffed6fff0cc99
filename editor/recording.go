package editor

import "github.com/avolans/arranger"

// FinishMidiRecording materializes clips captured during a recording pass on
// one track, resolving overlaps against what the track held before
// recording started. The whole pass is one undo unit, and undoing it does
// not reconstruct clip by clip: it swaps the track's entire clip list back
// to the exact pre-recording snapshot in one step.
func (e *Editor) FinishMidiRecording(track int, recorded []arranger.MidiClip) bool {
	if len(recorded) == 0 {
		e.setStatus("Nothing was recorded")
		return false
	}
	if e.arr.TrackByID(track) < 0 {
		e.setStatus("No such track")
		return false
	}
	if !e.log.Execute(&midiRecordingComplete{track: track, recorded: recorded}) {
		return false
	}
	e.setStatus("Recorded %d clip(s)", len(recorded))
	return true
}

// FinishAudioRecording is the audio domain counterpart of
// FinishMidiRecording; the recorder has already written the takes to files,
// so each recorded clip carries its FilePath and measured duration.
func (e *Editor) FinishAudioRecording(track int, recorded []arranger.AudioClip) bool {
	if len(recorded) == 0 {
		e.setStatus("Nothing was recorded")
		return false
	}
	if e.arr.TrackByID(track) < 0 {
		e.setStatus("No such track")
		return false
	}
	if !e.log.Execute(&audioRecordingComplete{track: track, recorded: recorded}) {
		return false
	}
	e.setStatus("Recorded %d take(s)", len(recorded))
	return true
}

type midiRecordingComplete struct {
	track    int
	recorded []arranger.MidiClip

	applied bool
	pre     []arranger.MidiClip
	post    []arranger.MidiClip
}

func (c *midiRecordingComplete) Apply(e *Editor) bool {
	if !c.applied {
		c.pre = e.arr.MidiClipsOnTrack(c.track)
		// First application inserts the takes one by one through the normal
		// resolution machinery, which also issues the engine calls.
		for _, r := range c.recorded {
			clip := r.Copy()
			clip.ID = e.arr.AllocMidiClipID()
			clip.Track = c.track
			if clip.LoopLength == 0 {
				clip.LoopLength = clip.Duration
			}
			var ed midiEdit
			ed.plan(e, clip.Start, clip.End(), c.track)
			ed.inserted = clip
			ed.mode = insertAdd
			ed.apply(e)
		}
		c.post = e.arr.MidiClipsOnTrack(c.track)
		c.applied = true
		return true
	}
	c.replaceTrack(e, c.pre, c.post)
	return true
}

func (c *midiRecordingComplete) Revert(e *Editor) {
	c.replaceTrack(e, c.post, c.pre)
}

// replaceTrack swaps the track's clips from one snapshot to another, store
// and engine side.
func (c *midiRecordingComplete) replaceTrack(e *Editor, from, to []arranger.MidiClip) {
	e.arr.ReplaceTrackMidiClips(c.track, to)
	for _, clip := range from {
		if !e.engine.DeleteClip(clip.ID, c.track) {
			e.engineFailed("DeleteClip", clip.ID)
		}
	}
	for _, clip := range to {
		e.addMidiToEngine(clip)
	}
}

func (c *midiRecordingComplete) Description() string { return "Record MIDI" }

type audioRecordingComplete struct {
	track    int
	recorded []arranger.AudioClip

	applied bool
	pre     []arranger.AudioClip
	post    []arranger.AudioClip
}

func (c *audioRecordingComplete) Apply(e *Editor) bool {
	if !c.applied {
		c.pre = e.arr.AudioClipsOnTrack(c.track)
		for _, r := range c.recorded {
			clip := r.Copy()
			clip.ID = e.arr.AllocAudioClipID()
			clip.Track = c.track
			var ed audioEdit
			ed.plan(e, clip.Start, clip.End(), c.track)
			ed.inserted = clip
			ed.mode = insertLoad
			ed.apply(e)
		}
		c.post = e.arr.AudioClipsOnTrack(c.track)
		c.applied = true
		return true
	}
	c.replaceTrack(e, c.pre, c.post)
	return true
}

func (c *audioRecordingComplete) Revert(e *Editor) {
	c.replaceTrack(e, c.post, c.pre)
}

func (c *audioRecordingComplete) replaceTrack(e *Editor, from, to []arranger.AudioClip) {
	e.arr.ReplaceTrackAudioClips(c.track, to)
	for _, clip := range from {
		if !e.engine.RemoveClip(clip.ID, c.track) {
			e.engineFailed("RemoveClip", clip.ID)
		}
	}
	for _, clip := range to {
		if !e.engine.LoadClipFile(clip.ID, c.track, clip.FilePath) {
			e.engineFailed("LoadClipFile", clip.ID)
			continue
		}
		e.reshapeAudio(arranger.AudioClip{}, clip)
	}
}

func (c *audioRecordingComplete) Description() string { return "Record audio" }
