package editor

import "github.com/avolans/arranger"

// MoveMidiClip moves a clip to a new track and start time, resolving
// overlaps at the destination. The clip's own old span is not considered an
// obstacle: the clip is the one being re-inserted.
func (e *Editor) MoveMidiClip(clip, newTrack int, newStart float64) bool {
	if e.arr.FindMidiClip(clip) < 0 {
		e.setStatus("No such clip")
		return false
	}
	if e.arr.TrackByID(newTrack) < 0 {
		e.setStatus("No such track")
		return false
	}
	if !e.log.Execute(&moveMidiClip{clip: clip, newTrack: newTrack, newStart: newStart}) {
		return false
	}
	e.setStatus("Moved clip")
	return true
}

// MoveAudioClip moves an audio clip along its own track. Moving audio
// between tracks would re-route it to a different playback chain, which the
// engine boundary does not offer; the UI disallows the gesture as well.
func (e *Editor) MoveAudioClip(clip int, newStart float64) bool {
	if e.arr.FindAudioClip(clip) < 0 {
		e.setStatus("No such clip")
		return false
	}
	if !e.log.Execute(&moveAudioClip{clip: clip, newStart: newStart}) {
		return false
	}
	e.setStatus("Moved audio clip")
	return true
}

type moveMidiClip struct {
	clip     int
	newTrack int
	newStart float64

	edit          midiEdit
	before, after arranger.MidiClip
}

func (c *moveMidiClip) Apply(e *Editor) bool {
	if !c.edit.planned {
		i := e.arr.FindMidiClip(c.clip)
		if i < 0 {
			return false
		}
		c.before = e.arr.MidiClips[i].Copy()
		c.after = c.before.Copy()
		c.after.Track = c.newTrack
		c.after.Start = c.newStart
		c.edit.plan(e, c.newStart, c.newStart+c.after.Duration, c.newTrack, c.clip)
	}
	e.arr.RemoveMidiClip(c.clip)
	c.edit.apply(e)
	e.arr.AddMidiClip(c.after.Copy())
	e.rescheduleMidi(c.after)
	e.SelectMidiClip(c.clip)
	return true
}

func (c *moveMidiClip) Revert(e *Editor) {
	e.arr.RemoveMidiClip(c.clip)
	c.edit.revert(e)
	e.arr.AddMidiClip(c.before.Copy())
	e.rescheduleMidi(c.before)
	e.SelectMidiClip(c.clip)
}

func (c *moveMidiClip) Description() string { return "Move MIDI clip" }

type moveAudioClip struct {
	clip     int
	newStart float64

	edit          audioEdit
	before, after arranger.AudioClip
}

func (c *moveAudioClip) Apply(e *Editor) bool {
	if !c.edit.planned {
		i := e.arr.FindAudioClip(c.clip)
		if i < 0 {
			return false
		}
		c.before = e.arr.AudioClips[i].Copy()
		c.after = c.before.Copy()
		c.after.Start = c.newStart
		c.edit.plan(e, c.newStart, c.newStart+c.after.Duration, c.before.Track, c.clip)
	}
	e.arr.RemoveAudioClip(c.clip)
	c.edit.apply(e)
	e.arr.AddAudioClip(c.after.Copy())
	e.reshapeAudio(c.before, c.after)
	e.SelectAudioClip(c.clip)
	return true
}

func (c *moveAudioClip) Revert(e *Editor) {
	e.arr.RemoveAudioClip(c.clip)
	c.edit.revert(e)
	e.arr.AddAudioClip(c.before.Copy())
	e.reshapeAudio(c.after, c.before)
	e.SelectAudioClip(c.clip)
}

func (c *moveAudioClip) Description() string { return "Move audio clip" }
