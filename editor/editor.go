package editor

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/avolans/arranger"
)

// Editor implements the mutable state of the timeline editor: the
// arrangement, the clip selection, the status line and the command log. It
// is owned by a single goroutine (the UI event loop); there is no internal
// locking because there are no concurrent writers. All mutation goes through
// commands executed on the log, so every user action is a single atomic,
// reversible unit.
type Editor struct {
	arr    arranger.Arrangement
	engine arranger.ClipEngine
	logger *zap.Logger
	log    *CommandLog

	selectedMidi  []int
	selectedAudio []int
	selectedTrack int
	status        string

	// executing guards against a listener or an engine callback re-entering
	// the command log while a command is still in flight. Commands must run
	// to completion one at a time; cancellation mid-command is not
	// supported.
	executing bool
}

// New creates an editor driving the given engine. A nil logger disables
// logging.
func New(engine arranger.ClipEngine, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Editor{
		arr:           arranger.Arrangement{BPM: 120},
		engine:        engine,
		logger:        logger,
		selectedTrack: -1,
	}
	e.log = &CommandLog{editor: e}
	return e
}

// Arrangement exposes the editor's arrangement. The returned pointer is
// owned by the editor; callers must treat it as read-only and must not hold
// it across commands.
func (e *Editor) Arrangement() *arranger.Arrangement { return &e.arr }

// Snapshot returns a deep copy of the arrangement, safe to keep.
func (e *Editor) Snapshot() arranger.Arrangement { return e.arr.Copy() }

// Log returns the command log, the only entry point for mutations.
func (e *Editor) Log() *CommandLog { return e.log }

// Undo reverts the last executed command. Returns false with an empty undo
// stack.
func (e *Editor) Undo() bool {
	if !e.log.Undo() {
		e.setStatus("Nothing to undo")
		return false
	}
	return true
}

// Redo re-applies the last undone command. Returns false with an empty redo
// stack.
func (e *Editor) Redo() bool {
	if !e.log.Redo() {
		e.setStatus("Nothing to redo")
		return false
	}
	return true
}

// StatusMessage returns the user-facing outcome of the most recent
// operation.
func (e *Editor) StatusMessage() string { return e.status }

func (e *Editor) setStatus(format string, args ...any) {
	e.status = fmt.Sprintf(format, args...)
}

// AddTrack appends a track and returns its id. Track creation is not
// undoable; the original exposes it as project structure, not an edit.
func (e *Editor) AddTrack(name string, kind arranger.TrackKind) int {
	id := len(e.arr.Tracks) + 1
	for e.arr.TrackByID(id) >= 0 {
		id++
	}
	e.arr.Tracks = append(e.arr.Tracks, arranger.Track{ID: id, Name: name, Kind: kind})
	return id
}

// Selection

// SelectTrack makes the given track the target of track-scoped operations.
func (e *Editor) SelectTrack(id int) {
	e.selectedTrack = id
}

func (e *Editor) SelectedTrack() int { return e.selectedTrack }

// SelectMidiClip replaces the MIDI clip selection with the single clip.
func (e *Editor) SelectMidiClip(id int) {
	e.selectedMidi = e.selectedMidi[:0]
	if e.arr.FindMidiClip(id) >= 0 {
		e.selectedMidi = append(e.selectedMidi, id)
	}
}

// AddMidiClipToSelection extends the MIDI clip selection.
func (e *Editor) AddMidiClipToSelection(id int) {
	for _, s := range e.selectedMidi {
		if s == id {
			return
		}
	}
	if e.arr.FindMidiClip(id) >= 0 {
		e.selectedMidi = append(e.selectedMidi, id)
	}
}

// SelectAudioClip replaces the audio clip selection with the single clip.
func (e *Editor) SelectAudioClip(id int) {
	e.selectedAudio = e.selectedAudio[:0]
	if e.arr.FindAudioClip(id) >= 0 {
		e.selectedAudio = append(e.selectedAudio, id)
	}
}

// AddAudioClipToSelection extends the audio clip selection.
func (e *Editor) AddAudioClipToSelection(id int) {
	for _, s := range e.selectedAudio {
		if s == id {
			return
		}
	}
	if e.arr.FindAudioClip(id) >= 0 {
		e.selectedAudio = append(e.selectedAudio, id)
	}
}

// ClearSelection empties both clip selections.
func (e *Editor) ClearSelection() {
	e.selectedMidi = e.selectedMidi[:0]
	e.selectedAudio = e.selectedAudio[:0]
}

// SelectedMidiClips returns the selected MIDI clip ids.
func (e *Editor) SelectedMidiClips() []int {
	ret := make([]int, len(e.selectedMidi))
	copy(ret, e.selectedMidi)
	return ret
}

// SelectedAudioClips returns the selected audio clip ids.
func (e *Editor) SelectedAudioClips() []int {
	ret := make([]int, len(e.selectedAudio))
	copy(ret, e.selectedAudio)
	return ret
}

// dropFromSelection removes ids of clips that no longer exist, so reverted
// or resolved-away clips do not linger in the selection.
func (e *Editor) dropFromSelection() {
	midi := e.selectedMidi[:0]
	for _, id := range e.selectedMidi {
		if e.arr.FindMidiClip(id) >= 0 {
			midi = append(midi, id)
		}
	}
	e.selectedMidi = midi
	audio := e.selectedAudio[:0]
	for _, id := range e.selectedAudio {
		if e.arr.FindAudioClip(id) >= 0 {
			audio = append(audio, id)
		}
	}
	e.selectedAudio = audio
}

func (e *Editor) noteExecuting() bool {
	if e.executing {
		e.logger.Warn("command re-entered while another command is executing")
		return false
	}
	e.executing = true
	return true
}

func (e *Editor) doneExecuting() {
	e.executing = false
	e.dropFromSelection()
}

// engineFailed logs a best-effort engine call that returned its failure
// sentinel. The store-side change has already been made and stays; this is
// the accepted inconsistency window of the non-transactional engine
// boundary.
func (e *Editor) engineFailed(call string, clip int) {
	e.logger.Warn("engine call failed", zap.String("call", call), zap.Int("clip", clip))
}
