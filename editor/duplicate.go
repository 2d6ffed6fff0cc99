package editor

import "github.com/avolans/arranger"

// DuplicateMidiClip copies the selected MIDI clip right after itself and
// links the two through a shared pattern id, so note edits can propagate
// between the instances. The copy resolves overlaps like any insertion; in
// particular a copy that lands on its own source trims the source.
// Returns the new clip's id or a negative id.
func (e *Editor) DuplicateMidiClip() int {
	ids := e.SelectedMidiClips()
	if len(ids) == 0 {
		e.setStatus("No clip selected")
		return -1
	}
	i := e.arr.FindMidiClip(ids[0])
	if i < 0 {
		e.setStatus("No clip selected")
		return -1
	}
	cmd := &duplicateMidiClip{source: ids[0], newStart: e.arr.MidiClips[i].End()}
	if !e.log.Execute(cmd) {
		return -1
	}
	e.setStatus("Duplicated clip %s", cmd.edit.inserted.Name)
	return cmd.edit.inserted.ID
}

// DuplicateMidiClipAt is DuplicateMidiClip with an explicit target position,
// for drag-duplicating.
func (e *Editor) DuplicateMidiClipAt(clip int, newStart float64) int {
	if e.arr.FindMidiClip(clip) < 0 {
		e.setStatus("No such clip")
		return -1
	}
	cmd := &duplicateMidiClip{source: clip, newStart: newStart}
	if !e.log.Execute(cmd) {
		return -1
	}
	e.setStatus("Duplicated clip %s", cmd.edit.inserted.Name)
	return cmd.edit.inserted.ID
}

// DuplicateAudioClip copies the selected audio clip right after itself.
// Returns the new clip's id or a negative id.
func (e *Editor) DuplicateAudioClip() int {
	ids := e.SelectedAudioClips()
	if len(ids) == 0 {
		e.setStatus("No clip selected")
		return -1
	}
	i := e.arr.FindAudioClip(ids[0])
	if i < 0 {
		e.setStatus("No clip selected")
		return -1
	}
	cmd := &duplicateAudioClip{source: ids[0], newStart: e.arr.AudioClips[i].End()}
	if !e.log.Execute(cmd) {
		return -1
	}
	e.setStatus("Duplicated audio clip")
	return cmd.edit.inserted.ID
}

type duplicateMidiClip struct {
	source   int
	newStart float64

	edit    midiEdit
	pattern string
	// assigned remembers that the source had no pattern id before this
	// command, so revert must take the fresh one away again.
	assigned  bool
	srcBefore string
	prevSel   []int
}

func (c *duplicateMidiClip) Apply(e *Editor) bool {
	if !c.edit.planned {
		i := e.arr.FindMidiClip(c.source)
		if i < 0 {
			return false
		}
		src := e.arr.MidiClips[i]
		c.srcBefore = src.PatternID
		c.pattern = src.PatternID
		if c.pattern == "" {
			// First duplication establishes the linkage: both the source
			// and the copy join a fresh pattern.
			c.pattern = arranger.NewPatternID()
			c.assigned = true
		}
		clip := src.Copy()
		clip.ID = e.arr.AllocMidiClipID()
		clip.Start = c.newStart
		clip.PatternID = c.pattern
		c.prevSel = e.SelectedMidiClips()
		// No exclusion: the source clip stays in consideration, so a copy
		// overlapping its source trims or splits the source like any other
		// clip.
		c.edit.plan(e, c.newStart, c.newStart+clip.Duration, src.Track)
		c.edit.inserted = clip
		c.edit.mode = insertAdd
	}
	c.edit.apply(e)
	if c.assigned {
		if i := e.arr.FindMidiClip(c.source); i >= 0 {
			e.arr.MidiClips[i].PatternID = c.pattern
		}
	}
	e.SelectMidiClip(c.edit.inserted.ID)
	return true
}

func (c *duplicateMidiClip) Revert(e *Editor) {
	c.edit.revert(e)
	if c.assigned {
		if i := e.arr.FindMidiClip(c.source); i >= 0 {
			e.arr.MidiClips[i].PatternID = c.srcBefore
		}
	}
	e.selectedMidi = append(e.selectedMidi[:0], c.prevSel...)
}

func (c *duplicateMidiClip) Description() string { return "Duplicate MIDI clip" }

type duplicateAudioClip struct {
	source   int
	newStart float64

	edit    audioEdit
	prevSel []int
}

func (c *duplicateAudioClip) Apply(e *Editor) bool {
	if !c.edit.planned {
		i := e.arr.FindAudioClip(c.source)
		if i < 0 {
			return false
		}
		src := e.arr.AudioClips[i]
		clip := src.Copy()
		clip.ID = e.arr.AllocAudioClipID()
		clip.Start = c.newStart
		c.prevSel = e.SelectedAudioClips()
		c.edit.plan(e, c.newStart, c.newStart+clip.Duration, src.Track)
		c.edit.inserted = clip
		c.edit.mode = insertDuplicate
		c.edit.duplicateOf = c.source
	}
	c.edit.apply(e)
	e.SelectAudioClip(c.edit.inserted.ID)
	return true
}

func (c *duplicateAudioClip) Revert(e *Editor) {
	c.edit.revert(e)
	e.selectedAudio = append(e.selectedAudio[:0], c.prevSel...)
}

func (c *duplicateAudioClip) Description() string { return "Duplicate audio clip" }
