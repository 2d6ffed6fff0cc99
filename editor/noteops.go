package editor

import (
	"math"

	"github.com/avolans/arranger"
)

// QuantizeNotes snaps note start times in the selected MIDI clip to the
// given grid (in beats, e.g. 0.25 for sixteenths). If any notes in the clip
// are selected, only those are quantized, otherwise all of them. Durations
// are clamped so no note gets shorter than MinNoteDuration.
func (e *Editor) QuantizeNotes(grid float64) bool {
	if grid <= 0 {
		e.setStatus("Quantize grid must be positive")
		return false
	}
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
	if len(e.arr.MidiClips[i].Notes) == 0 {
		e.setStatus("Clip has no notes")
		return false
	}
	if !e.log.Execute(&quantizeNotes{clip: ids[0], grid: grid}) {
		return false
	}
	e.setStatus("Quantized clip %s", e.arr.MidiClips[i].Name)
	return true
}

type quantizeNotes struct {
	clip     int
	grid     float64
	captured bool
	before   []arranger.MidiNote
	after    []arranger.MidiNote
}

func (c *quantizeNotes) Apply(e *Editor) bool {
	i := e.arr.FindMidiClip(c.clip)
	if i < 0 {
		return false
	}
	clip := &e.arr.MidiClips[i]
	if !c.captured {
		c.before = arranger.FilterNotes(clip.Notes, 0, math.Inf(1))
		anySelected := false
		for _, n := range clip.Notes {
			if n.Selected {
				anySelected = true
				break
			}
		}
		for _, n := range clip.Notes {
			if !anySelected || n.Selected {
				n.Start = math.Round(n.Start/c.grid) * c.grid
				if n.Start < 0 {
					n.Start = 0
				}
				if n.Duration < arranger.MinNoteDuration {
					n.Duration = arranger.MinNoteDuration
				}
			}
			c.after = append(c.after, n)
		}
		c.captured = true
	}
	clip.Notes = append(clip.Notes[:0:0], c.after...)
	clip.SortNotes()
	if !e.engine.UpdateClipNotes(c.clip, clip.Notes) {
		e.engineFailed("UpdateClipNotes", c.clip)
	}
	return true
}

func (c *quantizeNotes) Revert(e *Editor) {
	i := e.arr.FindMidiClip(c.clip)
	if i < 0 {
		return
	}
	clip := &e.arr.MidiClips[i]
	clip.Notes = append(clip.Notes[:0:0], c.before...)
	if !e.engine.UpdateClipNotes(c.clip, clip.Notes) {
		e.engineFailed("UpdateClipNotes", c.clip)
	}
}

func (c *quantizeNotes) Description() string { return "Quantize notes" }
