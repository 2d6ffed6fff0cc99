package arranger_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/avolans/arranger"
)

func note(id string, start, duration float64) arranger.MidiNote {
	return arranger.MidiNote{ID: id, Note: 60, Velocity: 100, Start: start, Duration: duration}
}

func TestFilterNotes(t *testing.T) {
	notes := []arranger.MidiNote{
		note("a", 0, 1),
		note("b", 1.5, 1),
		note("c", 3, 2), // straddles the window end, kept whole
		note("d", 4, 1),
	}
	got := arranger.FilterNotes(notes, 1, 4)
	want := []arranger.MidiNote{
		note("b", 0.5, 1),
		note("c", 2, 2),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterNotes = %v, want %v", got, want)
	}
	// The input is not rebased in place.
	if notes[1].Start != 1.5 {
		t.Errorf("FilterNotes mutated its input")
	}
}

func TestFilterNotesOpenEnded(t *testing.T) {
	notes := []arranger.MidiNote{note("a", 0, 1), note("b", 7, 1)}
	got := arranger.FilterNotes(notes, 2, math.Inf(1))
	want := []arranger.MidiNote{note("b", 5, 1)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterNotes = %v, want %v", got, want)
	}
}

func TestPartitionNotes(t *testing.T) {
	notes := []arranger.MidiNote{
		note("a", 0, 1),
		note("b", 1.5, 2), // starts left of the cut, stays left whole
		note("c", 2, 1),
		note("d", 3.5, 1),
	}
	left, right := arranger.PartitionNotes(notes, 2)
	wantLeft := []arranger.MidiNote{note("a", 0, 1), note("b", 1.5, 2)}
	wantRight := []arranger.MidiNote{note("c", 0, 1), note("d", 1.5, 1)}
	if !reflect.DeepEqual(left, wantLeft) {
		t.Errorf("left = %v, want %v", left, wantLeft)
	}
	if !reflect.DeepEqual(right, wantRight) {
		t.Errorf("right = %v, want %v", right, wantRight)
	}
}

func TestMidiClipCopyIsDeep(t *testing.T) {
	c := arranger.MidiClip{ID: 1, Track: 1, Duration: 4, Notes: []arranger.MidiNote{note("a", 0, 1)}}
	d := c.Copy()
	d.Notes[0].Start = 2
	if c.Notes[0].Start != 0 {
		t.Errorf("Copy shares the notes slice with the original")
	}
}

func TestAudioClipCopyIsDeep(t *testing.T) {
	c := arranger.AudioClip{ID: 1, Track: 1, Duration: 4, Peaks: []float32{-1, 1}}
	d := c.Copy()
	d.Peaks[0] = 0
	if c.Peaks[0] != -1 {
		t.Errorf("Copy shares the peaks slice with the original")
	}
}

func TestSortNotesIsStable(t *testing.T) {
	c := arranger.MidiClip{Notes: []arranger.MidiNote{
		note("b", 1, 1),
		note("a", 0, 1),
		note("c", 1, 1),
	}}
	c.SortNotes()
	ids := []string{c.Notes[0].ID, c.Notes[1].ID, c.Notes[2].ID}
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("SortNotes order = %v, want %v", ids, want)
	}
}

func TestArrangementIDAllocation(t *testing.T) {
	var a arranger.Arrangement
	if got := a.AllocMidiClipID(); got != 1 {
		t.Errorf("first MIDI clip id = %d, want 1", got)
	}
	if got := a.AllocMidiClipID(); got != 2 {
		t.Errorf("second MIDI clip id = %d, want 2", got)
	}
	// The two domains have separate namespaces.
	if got := a.AllocAudioClipID(); got != 1 {
		t.Errorf("first audio clip id = %d, want 1", got)
	}
	// The watermark survives a copy, so ids are never reused after undo
	// restores an earlier arrangement.
	b := a.Copy()
	if got := b.AllocMidiClipID(); got != 3 {
		t.Errorf("post-copy MIDI clip id = %d, want 3", got)
	}
}

func TestReplaceTrackMidiClips(t *testing.T) {
	a := arranger.Arrangement{MidiClips: []arranger.MidiClip{
		{ID: 1, Track: 1, Start: 0, Duration: 2},
		{ID: 2, Track: 2, Start: 0, Duration: 2},
	}}
	a.ReplaceTrackMidiClips(1, []arranger.MidiClip{{ID: 3, Track: 1, Start: 4, Duration: 2}})
	if a.FindMidiClip(1) >= 0 {
		t.Errorf("clip 1 should be gone after replacing track 1")
	}
	if a.FindMidiClip(2) < 0 {
		t.Errorf("clip 2 on track 2 should be untouched")
	}
	if a.FindMidiClip(3) < 0 {
		t.Errorf("clip 3 should be present after replacing track 1")
	}
}
