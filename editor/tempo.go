package editor

import "github.com/avolans/arranger"

// SetTempo changes the project tempo. MIDI clips are stored in beats and
// keep their values; the engine is only asked to reschedule them, since
// their wall-clock positions move. Audio clips are stored in seconds, so
// their start times are rescaled by oldBPM/newBPM to keep them on the same
// beat.
func (e *Editor) SetTempo(bpm float64) bool {
	if bpm <= 0 {
		e.setStatus("Tempo must be positive")
		return false
	}
	if bpm == e.arr.BPM {
		e.setStatus("Tempo is already %g BPM", bpm)
		return false
	}
	if !e.log.Execute(&changeTempo{newBPM: bpm}) {
		return false
	}
	e.setStatus("Tempo set to %g BPM", bpm)
	return true
}

type changeTempo struct {
	newBPM float64

	captured    bool
	oldBPM      float64
	audioBefore []arranger.AudioClip
}

func (c *changeTempo) Apply(e *Editor) bool {
	if !c.captured {
		c.oldBPM = e.arr.BPM
		for _, clip := range e.arr.AudioClips {
			c.audioBefore = append(c.audioBefore, clip.Copy())
		}
		c.captured = true
	}
	e.arr.BPM = c.newBPM
	// Rescale from the snapshots, not the live values, so that redo after
	// undo lands on bit-identical positions.
	for _, before := range c.audioBefore {
		i := e.arr.FindAudioClip(before.ID)
		if i < 0 {
			continue
		}
		e.arr.AudioClips[i].Start = before.Start * c.oldBPM / c.newBPM
		if !e.engine.SetClipStart(before.ID, e.arr.AudioClips[i].Start) {
			e.engineFailed("SetClipStart", before.ID)
		}
	}
	c.rescheduleMidi(e)
	return true
}

func (c *changeTempo) Revert(e *Editor) {
	e.arr.BPM = c.oldBPM
	for _, before := range c.audioBefore {
		i := e.arr.FindAudioClip(before.ID)
		if i < 0 {
			continue
		}
		e.arr.AudioClips[i].Start = before.Start
		if !e.engine.SetClipStart(before.ID, before.Start) {
			e.engineFailed("SetClipStart", before.ID)
		}
	}
	c.rescheduleMidi(e)
}

func (c *changeTempo) rescheduleMidi(e *Editor) {
	for _, clip := range e.arr.MidiClips {
		if !e.engine.RescheduleClip(clip.ID, clip.Track, clip.Start, clip.Duration) {
			e.engineFailed("RescheduleClip", clip.ID)
		}
	}
}

func (c *changeTempo) Description() string { return "Change tempo" }
