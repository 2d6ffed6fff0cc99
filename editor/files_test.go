package editor_test

import (
	"bytes"
	"io"
	"reflect"
	"testing"
)

type nopWriteCloser struct {
	*bytes.Buffer
}

func (nopWriteCloser) Close() error { return nil }

func TestProjectRoundTrip(t *testing.T) {
	e, _ := newTestEditor(t)
	id := mustCreateMidiClip(t, e, 1, 0, 4)
	mustLoadAudio(t, e, "kick.wav", 2, 2)
	e.SetTempo(90)
	want := timeline(e)

	var buf bytes.Buffer
	if !e.WriteProject(nopWriteCloser{&buf}) {
		t.Fatalf("WriteProject failed: %s", e.StatusMessage())
	}

	e2, engine2 := newTestEditor(t)
	if !e2.ReadProject(io.NopCloser(&buf)) {
		t.Fatalf("ReadProject failed: %s", e2.StatusMessage())
	}
	if got := timeline(e2); !reflect.DeepEqual(got, want) {
		t.Errorf("loaded project:\n%+v\nwant:\n%+v", got, want)
	}
	// Loading repopulates the engine from the stored clips.
	if _, ok := engine2.midi[id]; !ok {
		t.Errorf("MIDI clip %d missing from the engine after load", id)
	}
	if len(engine2.audio) != 1 {
		t.Errorf("engine has %d audio clips after load, want 1", len(engine2.audio))
	}
}

func TestReadProjectIsHardReset(t *testing.T) {
	e, _ := newTestEditor(t)
	mustCreateMidiClip(t, e, 1, 0, 4)
	var buf bytes.Buffer
	if !e.WriteProject(nopWriteCloser{&buf}) {
		t.Fatalf("WriteProject failed: %s", e.StatusMessage())
	}

	e2, _ := newTestEditor(t)
	id := mustCreateMidiClip(t, e2, 1, 0, 2)
	e2.SelectMidiClip(id)
	if !e2.ReadProject(io.NopCloser(&buf)) {
		t.Fatalf("ReadProject failed: %s", e2.StatusMessage())
	}
	if e2.Log().CanUndo() || e2.Log().CanRedo() {
		t.Errorf("loading a project must clear the undo history")
	}
	if got := e2.SelectedMidiClips(); len(got) != 0 {
		t.Errorf("loading a project must clear the selection, got %v", got)
	}
}

func TestReadProjectRejectsGarbage(t *testing.T) {
	e, _ := newTestEditor(t)
	mustCreateMidiClip(t, e, 1, 0, 4)
	before := timeline(e)
	if e.ReadProject(io.NopCloser(bytes.NewBufferString("{unclosed"))) {
		t.Errorf("ReadProject should reject malformed input")
	}
	// A failed load leaves the current project untouched.
	if got := timeline(e); !reflect.DeepEqual(got, before) {
		t.Errorf("failed load changed the timeline")
	}
}
