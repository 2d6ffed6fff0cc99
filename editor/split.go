package editor

// SplitMidiClipAt cuts the selected MIDI clip in two at the given absolute
// beat position. The left piece keeps the clip's id; the right piece gets a
// new one. Notes are partitioned by their start time, so a note ringing
// across the cut stays whole in the left piece.
func (e *Editor) SplitMidiClipAt(at float64) bool {
	ids := e.SelectedMidiClips()
	if len(ids) == 0 {
		e.setStatus("No clip selected")
		return false
	}
	i := e.arr.FindMidiClip(ids[0])
	if i < 0 {
		e.setStatus("No clip selected")
		return false
	}
	c := e.arr.MidiClips[i]
	if at <= c.Start || at >= c.End() {
		e.setStatus("Split point is outside the clip")
		return false
	}
	if !e.log.Execute(&splitMidiClip{clip: ids[0], at: at}) {
		return false
	}
	e.setStatus("Split clip %s", c.Name)
	return true
}

// SplitAudioClipAt cuts the selected audio clip in two at the given absolute
// time in seconds. The right piece's source offset advances so both pieces
// play the same content they did before the cut.
func (e *Editor) SplitAudioClipAt(at float64) bool {
	ids := e.SelectedAudioClips()
	if len(ids) == 0 {
		e.setStatus("No clip selected")
		return false
	}
	i := e.arr.FindAudioClip(ids[0])
	if i < 0 {
		e.setStatus("No clip selected")
		return false
	}
	c := e.arr.AudioClips[i]
	if at <= c.Start || at >= c.End() {
		e.setStatus("Split point is outside the clip")
		return false
	}
	if !e.log.Execute(&splitAudioClip{clip: ids[0], at: at}) {
		return false
	}
	e.setStatus("Split audio clip")
	return true
}

// A point split is overlap resolution against the empty span [at, at): the
// only clip the resolver can touch is the one strictly containing the point,
// and the only action it can emit for it is a split with no material
// removed. Both user splits reuse that machinery, so the command needs no
// split logic of its own.

type splitMidiClip struct {
	clip int
	at   float64
	edit midiEdit
}

func (c *splitMidiClip) Apply(e *Editor) bool {
	if !c.edit.planned {
		i := e.arr.FindMidiClip(c.clip)
		if i < 0 {
			return false
		}
		c.edit.plan(e, c.at, c.at, e.arr.MidiClips[i].Track)
		if len(c.edit.splits) == 0 {
			return false
		}
	}
	c.edit.apply(e)
	e.SelectMidiClip(c.clip)
	return true
}

func (c *splitMidiClip) Revert(e *Editor) {
	c.edit.revert(e)
	e.SelectMidiClip(c.clip)
}

func (c *splitMidiClip) Description() string { return "Split MIDI clip" }

type splitAudioClip struct {
	clip int
	at   float64
	edit audioEdit
}

func (c *splitAudioClip) Apply(e *Editor) bool {
	if !c.edit.planned {
		i := e.arr.FindAudioClip(c.clip)
		if i < 0 {
			return false
		}
		c.edit.plan(e, c.at, c.at, e.arr.AudioClips[i].Track)
		if len(c.edit.splits) == 0 {
			return false
		}
	}
	c.edit.apply(e)
	e.SelectAudioClip(c.clip)
	return true
}

func (c *splitAudioClip) Revert(e *Editor) {
	c.edit.revert(e)
	e.SelectAudioClip(c.clip)
}

func (c *splitAudioClip) Description() string { return "Split audio clip" }
