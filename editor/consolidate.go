package editor

import (
	"sort"

	"github.com/avolans/arranger"
)

// ConsolidateSelectedClips merges the selected MIDI clips into one clip
// spanning from the earliest start to the latest end, with all their notes.
// At least two clips must be selected and they must live on the same track;
// both conditions are checked before anything is mutated. Unselected clips
// sitting in the gaps between the merged clips are resolved away like any
// other overlap.
func (e *Editor) ConsolidateSelectedClips() bool {
	ids := e.SelectedMidiClips()
	if len(ids) < 2 {
		e.setStatus("Select at least two clips to consolidate")
		return false
	}
	track := -1
	for _, id := range ids {
		i := e.arr.FindMidiClip(id)
		if i < 0 {
			e.setStatus("Select at least two clips to consolidate")
			return false
		}
		if track >= 0 && e.arr.MidiClips[i].Track != track {
			e.setStatus("Cannot consolidate clips from different tracks")
			return false
		}
		track = e.arr.MidiClips[i].Track
	}
	if !e.log.Execute(&consolidateMidiClips{ids: ids}) {
		return false
	}
	e.setStatus("Consolidated %d clips", len(ids))
	return true
}

type consolidateMidiClips struct {
	ids []int

	captured bool
	before   []arranger.MidiClip
	merged   arranger.MidiClip
	edit     midiEdit
	prevSel  []int
}

func (c *consolidateMidiClips) Apply(e *Editor) bool {
	if !c.captured {
		for _, id := range c.ids {
			i := e.arr.FindMidiClip(id)
			if i < 0 {
				return false
			}
			c.before = append(c.before, e.arr.MidiClips[i].Copy())
		}
		sort.Slice(c.before, func(i, j int) bool { return c.before[i].Start < c.before[j].Start })
		start := c.before[0].Start
		end := c.before[0].End()
		for _, clip := range c.before[1:] {
			if clip.End() > end {
				end = clip.End()
			}
		}
		merged := arranger.MidiClip{
			ID:         e.arr.AllocMidiClipID(),
			Track:      c.before[0].Track,
			Start:      start,
			Duration:   end - start,
			LoopLength: end - start,
			Name:       c.before[0].Name,
			Color:      c.before[0].Color,
		}
		for _, clip := range c.before {
			for _, n := range clip.Notes {
				n.Start += clip.Start - start
				merged.Notes = append(merged.Notes, n)
			}
		}
		merged.SortNotes()
		c.merged = merged
		c.prevSel = e.SelectedMidiClips()
		c.edit.plan(e, start, end, merged.Track, c.ids...)
		c.edit.inserted = merged
		c.edit.mode = insertAdd
		c.captured = true
	}
	for _, clip := range c.before {
		e.arr.RemoveMidiClip(clip.ID)
		if !e.engine.DeleteClip(clip.ID, clip.Track) {
			e.engineFailed("DeleteClip", clip.ID)
		}
	}
	c.edit.apply(e)
	e.SelectMidiClip(c.merged.ID)
	return true
}

func (c *consolidateMidiClips) Revert(e *Editor) {
	c.edit.revert(e)
	for i := len(c.before) - 1; i >= 0; i-- {
		clip := c.before[i]
		e.arr.AddMidiClip(clip.Copy())
		e.addMidiToEngine(clip)
	}
	e.selectedMidi = append(e.selectedMidi[:0], c.prevSel...)
}

func (c *consolidateMidiClips) Description() string { return "Consolidate clips" }
