package editor_test

import (
	"reflect"
	"testing"

	"github.com/avolans/arranger"
)

func TestExecuteAfterUndoDiscardsRedoBranch(t *testing.T) {
	e, _ := newTestEditor(t)
	mustCreateMidiClip(t, e, 1, 0, 2) // A
	mustCreateMidiClip(t, e, 1, 2, 2) // B
	if !e.Undo() {
		t.Fatalf("Undo failed")
	}
	mustCreateMidiClip(t, e, 1, 4, 2) // C replaces the undone B in history
	if e.Redo() {
		t.Errorf("Redo after executing a new command should fail")
	}
	want := [][2]float64{{0, 2}, {4, 6}}
	if got := midiSpans(e, 1); !reflect.DeepEqual(got, want) {
		t.Errorf("spans = %v, want %v", got, want)
	}
}

func TestBatchDeleteIsOneUndoUnit(t *testing.T) {
	e, _ := newTestEditor(t)
	a := mustCreateMidiClip(t, e, 1, 0, 2)
	b := mustCreateMidiClip(t, e, 1, 2, 2)
	c := mustCreateMidiClip(t, e, 1, 4, 2)
	before := timeline(e)
	e.SelectMidiClip(a)
	e.AddMidiClipToSelection(b)
	e.AddMidiClipToSelection(c)
	if !e.DeleteSelectedClips() {
		t.Fatalf("DeleteSelectedClips failed: %s", e.StatusMessage())
	}
	if got := e.Log().UndoDescription(); got != "Delete 3 MIDI clips" {
		t.Errorf("UndoDescription = %q, want %q", got, "Delete 3 MIDI clips")
	}
	if len(e.Arrangement().MidiClips) != 0 {
		t.Fatalf("all three clips should be gone")
	}
	// One undo brings all three back.
	if !e.Undo() {
		t.Fatalf("Undo failed")
	}
	if got := timeline(e); !reflect.DeepEqual(got, before) {
		t.Errorf("after undo:\n%+v\nwant:\n%+v", got, before)
	}
	if e.Log().CanUndo() {
		t.Errorf("batch delete should have been a single undo entry")
	}
}

func TestMixedBatchDeleteLabel(t *testing.T) {
	e, _ := newTestEditor(t)
	m := mustCreateMidiClip(t, e, 1, 0, 2)
	a := mustLoadAudio(t, e, "kick.wav", 2, 0)
	e.SelectMidiClip(m)
	e.SelectAudioClip(a)
	if !e.DeleteSelectedClips() {
		t.Fatalf("DeleteSelectedClips failed: %s", e.StatusMessage())
	}
	if got := e.Log().UndoDescription(); got != "Delete 2 clips" {
		t.Errorf("UndoDescription = %q, want %q", got, "Delete 2 clips")
	}
}

func TestUndoDescriptions(t *testing.T) {
	e, _ := newTestEditor(t)
	if got := e.Log().UndoDescription(); got != "" {
		t.Errorf("empty log UndoDescription = %q, want empty", got)
	}
	mustCreateMidiClip(t, e, 1, 0, 2)
	if got := e.Log().UndoDescription(); got != "Create MIDI clip" {
		t.Errorf("UndoDescription = %q, want %q", got, "Create MIDI clip")
	}
	e.Undo()
	if got := e.Log().RedoDescription(); got != "Create MIDI clip" {
		t.Errorf("RedoDescription = %q, want %q", got, "Create MIDI clip")
	}
}

func TestCommandLogListeners(t *testing.T) {
	e, _ := newTestEditor(t)
	notified := 0
	e.Log().AddListener(func() { notified++ })
	mustCreateMidiClip(t, e, 1, 0, 2)
	e.Undo()
	e.Redo()
	if notified != 3 {
		t.Errorf("listener called %d times, want 3", notified)
	}
	// Rejected commands do not notify.
	e.CreateMidiClip(99, 0, 2, "", nil)
	if notified != 3 {
		t.Errorf("listener called %d times after rejected command, want 3", notified)
	}
}

func TestDuplicatePatternLinkage(t *testing.T) {
	e, _ := newTestEditor(t)
	src := mustCreateMidiClip(t, e, 1, 0, 4)
	e.SelectMidiClip(src)
	dup := e.DuplicateMidiClip()
	if dup <= 0 {
		t.Fatalf("DuplicateMidiClip failed: %s", e.StatusMessage())
	}
	arr := e.Arrangement()
	srcPattern := arr.MidiClips[arr.FindMidiClip(src)].PatternID
	dupPattern := arr.MidiClips[arr.FindMidiClip(dup)].PatternID
	if srcPattern == "" || srcPattern != dupPattern {
		t.Errorf("source and duplicate should share a pattern id, got %q and %q", srcPattern, dupPattern)
	}
	// Undo takes the fresh pattern id away from the source again.
	if !e.Undo() {
		t.Fatalf("Undo failed")
	}
	if got := arr.MidiClips[arr.FindMidiClip(src)].PatternID; got != "" {
		t.Errorf("source pattern id after undo = %q, want empty", got)
	}
	// Redo restores the same pattern id, not a new one.
	if !e.Redo() {
		t.Fatalf("Redo failed")
	}
	if got := arr.MidiClips[arr.FindMidiClip(src)].PatternID; got != srcPattern {
		t.Errorf("source pattern id after redo = %q, want %q", got, srcPattern)
	}
}

func TestDuplicateOntoSourceTrimsSource(t *testing.T) {
	e, _ := newTestEditor(t)
	src := mustCreateMidiClip(t, e, 1, 0, 4)
	// The copy lands on [2, 6): the source itself is not exempt from
	// resolution and loses its tail.
	dup := e.DuplicateMidiClipAt(src, 2)
	if dup <= 0 {
		t.Fatalf("DuplicateMidiClipAt failed: %s", e.StatusMessage())
	}
	arr := e.Arrangement()
	if got := arr.MidiClips[arr.FindMidiClip(src)].Duration; got != 2 {
		t.Errorf("source duration = %v, want 2", got)
	}
	want := [][2]float64{{0, 2}, {2, 6}}
	if got := midiSpans(e, 1); !reflect.DeepEqual(got, want) {
		t.Errorf("spans = %v, want %v", got, want)
	}
}

func TestTempoChangeRescalesAudioOnly(t *testing.T) {
	e, engine := newTestEditor(t)
	m := mustCreateMidiClip(t, e, 1, 2, 4)
	a := mustLoadAudio(t, e, "kick.wav", 2, 4)
	if !e.SetTempo(60) {
		t.Fatalf("SetTempo failed: %s", e.StatusMessage())
	}
	arr := e.Arrangement()
	// Halving the tempo doubles the wall-clock time of every beat: the audio
	// clip at 4 s was on beat 8, which now falls at 8 s.
	if got := arr.AudioClips[arr.FindAudioClip(a)].Start; got != 8 {
		t.Errorf("audio start = %v, want 8", got)
	}
	if got := engine.audio[a].start; got != 8 {
		t.Errorf("engine audio start = %v, want 8", got)
	}
	// MIDI clips are stored in beats and keep their values.
	if got := arr.MidiClips[arr.FindMidiClip(m)].Start; got != 2 {
		t.Errorf("MIDI start = %v, want 2", got)
	}
	if !e.SetTempo(60) {
		// Setting the same tempo again is rejected, not a no-op entry.
		if got := e.StatusMessage(); got != "Tempo is already 60 BPM" {
			t.Errorf("status = %q", got)
		}
	} else {
		t.Errorf("setting the unchanged tempo should be rejected")
	}
}

func TestConsolidateValidation(t *testing.T) {
	e, _ := newTestEditor(t)
	track2 := e.AddTrack("Pad", arranger.MidiTrack)
	a := mustCreateMidiClip(t, e, 1, 0, 2)
	b := mustCreateMidiClip(t, e, track2, 0, 2)
	before := timeline(e)

	e.SelectMidiClip(a)
	if e.ConsolidateSelectedClips() {
		t.Errorf("consolidating a single clip should be rejected")
	}
	e.AddMidiClipToSelection(b)
	if e.ConsolidateSelectedClips() {
		t.Errorf("consolidating clips from different tracks should be rejected")
	}
	if got := e.StatusMessage(); got != "Cannot consolidate clips from different tracks" {
		t.Errorf("status = %q", got)
	}
	// Validation failures must not mutate anything.
	if got := timeline(e); !reflect.DeepEqual(got, before) {
		t.Errorf("rejected consolidate changed the timeline")
	}
	if e.Log().CanUndo() {
		t.Errorf("rejected consolidate reached the undo stack")
	}
}

func TestConsolidateMergesNotes(t *testing.T) {
	e, _ := newTestEditor(t)
	a := e.CreateMidiClip(1, 0, 2, "first", []arranger.MidiNote{
		{ID: "n1", Note: 60, Velocity: 100, Start: 0.5, Duration: 1},
	})
	b := e.CreateMidiClip(1, 3, 2, "second", []arranger.MidiNote{
		{ID: "n2", Note: 64, Velocity: 100, Start: 1, Duration: 0.5},
	})
	if a <= 0 || b <= 0 {
		t.Fatalf("CreateMidiClip failed: %s", e.StatusMessage())
	}
	e.SelectMidiClip(a)
	e.AddMidiClipToSelection(b)
	if !e.ConsolidateSelectedClips() {
		t.Fatalf("ConsolidateSelectedClips failed: %s", e.StatusMessage())
	}
	arr := e.Arrangement()
	if len(arr.MidiClips) != 1 {
		t.Fatalf("want a single merged clip, got %d", len(arr.MidiClips))
	}
	merged := arr.MidiClips[0]
	if merged.Start != 0 || merged.Duration != 5 {
		t.Errorf("merged span = [%v, %v), want [0, 5)", merged.Start, merged.End())
	}
	// Notes are rebased to the merged clip's start.
	wantStarts := []float64{0.5, 4}
	var gotStarts []float64
	for _, n := range merged.Notes {
		gotStarts = append(gotStarts, n.Start)
	}
	if !reflect.DeepEqual(gotStarts, wantStarts) {
		t.Errorf("note starts = %v, want %v", gotStarts, wantStarts)
	}
}

func TestSplitValidation(t *testing.T) {
	e, _ := newTestEditor(t)
	id := mustCreateMidiClip(t, e, 1, 2, 4)
	e.SelectMidiClip(id)
	for _, at := range []float64{1, 2, 6, 7} {
		if e.SplitMidiClipAt(at) {
			t.Errorf("split at %v should be rejected, clip is [2, 6)", at)
		}
	}
	if e.Log().CanUndo() && e.Log().UndoDescription() == "Split MIDI clip" {
		t.Errorf("rejected splits reached the undo stack")
	}
}

func TestSplitAudioAdvancesOffset(t *testing.T) {
	e, _ := newTestEditor(t)
	id := mustLoadAudio(t, e, "loop.wav", 2, 1) // [1, 9), offset 0
	e.SelectAudioClip(id)
	if !e.SplitAudioClipAt(4) {
		t.Fatalf("SplitAudioClipAt failed: %s", e.StatusMessage())
	}
	clips := e.Arrangement().AudioClipsOnTrack(2)
	if len(clips) != 2 {
		t.Fatalf("want 2 clips after split, got %d", len(clips))
	}
	left, right := clips[0], clips[1]
	if left.Start != 1 || left.Duration != 3 || left.Offset != 0 {
		t.Errorf("left = [%v, %v) offset %v, want [1, 4) offset 0", left.Start, left.End(), left.Offset)
	}
	// The right piece starts 3 s into the source, so both pieces play the
	// same content they did before the cut.
	if right.Start != 4 || right.Duration != 5 || right.Offset != 3 {
		t.Errorf("right = [%v, %v) offset %v, want [4, 9) offset 3", right.Start, right.End(), right.Offset)
	}
	if left.ID != id {
		t.Errorf("left piece should keep id %d, got %d", id, left.ID)
	}
	if right.ID == id {
		t.Errorf("right piece should get a fresh id")
	}
}

func TestEngineFailureIsBestEffort(t *testing.T) {
	e, engine := newTestEditor(t)
	id := mustCreateMidiClip(t, e, 1, 0, 4)
	engine.fail["DeleteClip"] = true
	e.SelectMidiClip(id)
	// The engine refuses the delete; the store-side removal still happens
	// and the command still succeeds.
	if !e.DeleteSelectedClips() {
		t.Fatalf("DeleteSelectedClips failed: %s", e.StatusMessage())
	}
	if e.Arrangement().FindMidiClip(id) >= 0 {
		t.Errorf("clip should be gone from the store despite the engine failure")
	}
	if !e.Log().CanUndo() {
		t.Errorf("the command should still be undoable")
	}
}
