package editor

import (
	"math"

	"github.com/avolans/arranger"
)

// The edit types below are the clip mutators: they take a resolution Plan
// and apply it to the store and the engine, in order: deletions, trims,
// splits, then the insertion of the new or moved clip. They double as the
// pre/post snapshot storage of the commands that embed them, so the first
// Apply plans and records, and every later Apply (redo) replays the exact
// same mutations, ids included.

type (
	insertMode int

	midiTrim  struct{ before, after arranger.MidiClip }
	midiSplit struct{ before, left, right arranger.MidiClip }

	midiEdit struct {
		planned  bool
		deleted  []arranger.MidiClip
		trimmed  []midiTrim
		splits   []midiSplit
		inserted arranger.MidiClip
		mode     insertMode
	}

	audioTrim  struct{ before, after arranger.AudioClip }
	audioSplit struct{ before, left, right arranger.AudioClip }

	audioEdit struct {
		planned  bool
		deleted  []arranger.AudioClip
		trimmed  []audioTrim
		splits   []audioSplit
		inserted arranger.AudioClip
		mode     insertMode

		// duplicateOf is the source clip id when mode is insertDuplicate.
		duplicateOf int
	}
)

const (
	insertNone insertMode = iota
	insertAdd             // engine side does not know the clip yet
	insertReschedule      // clip exists in the engine, it is being moved
	insertLoad            // audio only: engine loads the clip from file
	insertDuplicate       // audio only: engine copies another clip's content
)

// plan resolves overlaps of [newStart, newEnd) on the track against the
// current arrangement and records every adjustment as before/after
// snapshots. exclude lists clips being moved or consolidated away, which
// must not resolve against their own old positions; leave it empty when
// inserting a brand new clip, so that even the source of a duplicate is
// fair game.
func (ed *midiEdit) plan(e *Editor, newStart, newEnd float64, track int, exclude ...int) {
	ed.planned = true
	clips := e.arr.MidiClips
	if len(exclude) > 0 {
		clips = nil
		for _, c := range e.arr.MidiClips {
			if !containsID(exclude, c.ID) {
				clips = append(clips, c)
			}
		}
	}
	for _, act := range arranger.Resolve(newStart, newEnd, clips, track) {
		i := e.arr.FindMidiClip(act.Clip)
		if i < 0 {
			continue
		}
		before := e.arr.MidiClips[i].Copy()
		switch act.Op {
		case arranger.OpDelete:
			ed.deleted = append(ed.deleted, before)
		case arranger.OpTrimEnd:
			after := before.Copy()
			after.Duration = act.Duration
			after.Notes = arranger.FilterNotes(before.Notes, 0, act.Duration)
			ed.trimmed = append(ed.trimmed, midiTrim{before, after})
		case arranger.OpTrimStart:
			after := before.Copy()
			after.Start = act.Start
			after.Duration = act.Duration
			after.Notes = arranger.FilterNotes(before.Notes, act.OffsetDelta, math.Inf(1))
			ed.trimmed = append(ed.trimmed, midiTrim{before, after})
		case arranger.OpSplit:
			left := before.Copy()
			left.Duration = act.Duration
			left.Notes = arranger.FilterNotes(before.Notes, 0, act.Duration)
			right := before.Copy()
			right.ID = e.arr.AllocMidiClipID()
			right.Start = act.RightStart
			right.Duration = act.RightDuration
			right.Notes = arranger.FilterNotes(before.Notes, act.OffsetDelta, math.Inf(1))
			// The right half is a new clip, not another instance of the
			// original pattern.
			right.PatternID = ""
			ed.splits = append(ed.splits, midiSplit{before, left, right})
		}
	}
}

func (ed *midiEdit) apply(e *Editor) {
	for _, c := range ed.deleted {
		e.arr.RemoveMidiClip(c.ID)
		if !e.engine.DeleteClip(c.ID, c.Track) {
			e.engineFailed("DeleteClip", c.ID)
		}
	}
	for _, t := range ed.trimmed {
		e.arr.UpdateMidiClip(t.after.Copy())
		e.rescheduleMidi(t.after)
	}
	for _, s := range ed.splits {
		e.arr.UpdateMidiClip(s.left.Copy())
		e.rescheduleMidi(s.left)
		e.arr.AddMidiClip(s.right.Copy())
		e.addMidiToEngine(s.right)
	}
	if ed.mode != insertNone {
		e.arr.AddMidiClip(ed.inserted.Copy())
		if ed.mode == insertReschedule {
			e.rescheduleMidi(ed.inserted)
		} else {
			e.addMidiToEngine(ed.inserted)
		}
	}
}

func (ed *midiEdit) revert(e *Editor) {
	if ed.mode != insertNone {
		e.arr.RemoveMidiClip(ed.inserted.ID)
		if ed.mode != insertReschedule {
			if !e.engine.DeleteClip(ed.inserted.ID, ed.inserted.Track) {
				e.engineFailed("DeleteClip", ed.inserted.ID)
			}
		}
	}
	for i := len(ed.splits) - 1; i >= 0; i-- {
		s := ed.splits[i]
		e.arr.RemoveMidiClip(s.right.ID)
		if !e.engine.DeleteClip(s.right.ID, s.right.Track) {
			e.engineFailed("DeleteClip", s.right.ID)
		}
		e.arr.UpdateMidiClip(s.before.Copy())
		e.rescheduleMidi(s.before)
	}
	for i := len(ed.trimmed) - 1; i >= 0; i-- {
		t := ed.trimmed[i]
		e.arr.UpdateMidiClip(t.before.Copy())
		e.rescheduleMidi(t.before)
	}
	for i := len(ed.deleted) - 1; i >= 0; i-- {
		c := ed.deleted[i]
		e.arr.AddMidiClip(c.Copy())
		e.addMidiToEngine(c)
	}
}

func (e *Editor) rescheduleMidi(c arranger.MidiClip) {
	if !e.engine.RescheduleClip(c.ID, c.Track, c.Start, c.Duration) {
		e.engineFailed("RescheduleClip", c.ID)
	}
	if !e.engine.UpdateClipNotes(c.ID, c.Notes) {
		e.engineFailed("UpdateClipNotes", c.ID)
	}
}

func (e *Editor) addMidiToEngine(c arranger.MidiClip) {
	if !e.engine.AddClip(c.ID, c.Track, c.Start, c.Duration) {
		e.engineFailed("AddClip", c.ID)
		return
	}
	if !e.engine.UpdateClipNotes(c.ID, c.Notes) {
		e.engineFailed("UpdateClipNotes", c.ID)
	}
}

func (ed *audioEdit) plan(e *Editor, newStart, newEnd float64, track int, exclude ...int) {
	ed.planned = true
	clips := e.arr.AudioClips
	if len(exclude) > 0 {
		clips = nil
		for _, c := range e.arr.AudioClips {
			if !containsID(exclude, c.ID) {
				clips = append(clips, c)
			}
		}
	}
	for _, act := range arranger.Resolve(newStart, newEnd, clips, track) {
		i := e.arr.FindAudioClip(act.Clip)
		if i < 0 {
			continue
		}
		before := e.arr.AudioClips[i].Copy()
		switch act.Op {
		case arranger.OpDelete:
			ed.deleted = append(ed.deleted, before)
		case arranger.OpTrimEnd:
			after := before.Copy()
			after.Duration = act.Duration
			ed.trimmed = append(ed.trimmed, audioTrim{before, after})
		case arranger.OpTrimStart:
			after := before.Copy()
			after.Start = act.Start
			after.Duration = act.Duration
			// Advancing the offset keeps the audible content where it was:
			// trimming the head must not slide the tail earlier in the
			// source file.
			after.Offset = before.Offset + act.OffsetDelta
			ed.trimmed = append(ed.trimmed, audioTrim{before, after})
		case arranger.OpSplit:
			left := before.Copy()
			left.Duration = act.Duration
			right := before.Copy()
			right.ID = e.arr.AllocAudioClipID()
			right.Start = act.RightStart
			right.Duration = act.RightDuration
			right.Offset = before.Offset + act.OffsetDelta
			ed.splits = append(ed.splits, audioSplit{before, left, right})
		}
	}
}

func (ed *audioEdit) apply(e *Editor) {
	for _, c := range ed.deleted {
		e.arr.RemoveAudioClip(c.ID)
		if !e.engine.RemoveClip(c.ID, c.Track) {
			e.engineFailed("RemoveClip", c.ID)
		}
	}
	for _, t := range ed.trimmed {
		e.arr.UpdateAudioClip(t.after.Copy())
		e.reshapeAudio(t.before, t.after)
	}
	for _, s := range ed.splits {
		e.arr.UpdateAudioClip(s.left.Copy())
		e.reshapeAudio(s.before, s.left)
		e.arr.AddAudioClip(s.right.Copy())
		if !e.engine.DuplicateClip(s.left.ID, s.right.ID, s.right.Track, s.right.Start) {
			e.engineFailed("DuplicateClip", s.right.ID)
		} else {
			e.reshapeAudio(s.left, s.right)
		}
	}
	if ed.mode != insertNone {
		e.arr.AddAudioClip(ed.inserted.Copy())
		c := ed.inserted
		switch ed.mode {
		case insertLoad:
			if !e.engine.LoadClipFile(c.ID, c.Track, c.FilePath) {
				e.engineFailed("LoadClipFile", c.ID)
				break
			}
			e.reshapeAudio(arranger.AudioClip{}, c)
		case insertDuplicate:
			if !e.engine.DuplicateClip(ed.duplicateOf, c.ID, c.Track, c.Start) {
				e.engineFailed("DuplicateClip", c.ID)
				break
			}
			e.reshapeAudio(arranger.AudioClip{}, c)
		case insertReschedule:
			e.reshapeAudio(arranger.AudioClip{}, c)
		}
	}
}

func (ed *audioEdit) revert(e *Editor) {
	if ed.mode != insertNone {
		e.arr.RemoveAudioClip(ed.inserted.ID)
		if ed.mode != insertReschedule {
			if !e.engine.RemoveClip(ed.inserted.ID, ed.inserted.Track) {
				e.engineFailed("RemoveClip", ed.inserted.ID)
			}
		}
	}
	for i := len(ed.splits) - 1; i >= 0; i-- {
		s := ed.splits[i]
		e.arr.RemoveAudioClip(s.right.ID)
		if !e.engine.RemoveClip(s.right.ID, s.right.Track) {
			e.engineFailed("RemoveClip", s.right.ID)
		}
		e.arr.UpdateAudioClip(s.before.Copy())
		e.reshapeAudio(s.left, s.before)
	}
	for i := len(ed.trimmed) - 1; i >= 0; i-- {
		t := ed.trimmed[i]
		e.arr.UpdateAudioClip(t.before.Copy())
		e.reshapeAudio(t.after, t.before)
	}
	for i := len(ed.deleted) - 1; i >= 0; i-- {
		c := ed.deleted[i]
		e.arr.AddAudioClip(c.Copy())
		if !e.engine.LoadClipFile(c.ID, c.Track, c.FilePath) {
			e.engineFailed("LoadClipFile", c.ID)
			continue
		}
		e.reshapeAudio(arranger.AudioClip{}, c)
	}
}

func containsID(ids []int, id int) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// reshapeAudio pushes the geometry of want to the engine, skipping fields
// that already match have. Each setter failure is logged and skipped
// individually; the others are still attempted.
func (e *Editor) reshapeAudio(have, want arranger.AudioClip) {
	if have.Start != want.Start {
		if !e.engine.SetClipStart(want.ID, want.Start) {
			e.engineFailed("SetClipStart", want.ID)
		}
	}
	if have.Offset != want.Offset {
		if !e.engine.SetClipOffset(want.ID, want.Offset) {
			e.engineFailed("SetClipOffset", want.ID)
		}
	}
	if have.Duration != want.Duration {
		if !e.engine.SetClipDuration(want.ID, want.Duration) {
			e.engineFailed("SetClipDuration", want.ID)
		}
	}
}
