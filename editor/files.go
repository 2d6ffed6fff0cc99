package editor

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/avolans/arranger"
)

// ReadProject replaces the editor's arrangement with one unmarshaled from
// the reader. Loading a project is a hard reset: both undo stacks are
// cleared without reverting anything, the selection is dropped, and the
// engine is repopulated from the loaded clips.
func (e *Editor) ReadProject(r io.ReadCloser) bool {
	b, err := io.ReadAll(r)
	if err != nil {
		e.setStatus("Error reading project: %v", err)
		return false
	}
	if err := r.Close(); err != nil {
		e.setStatus("Error reading project: %v", err)
		return false
	}
	var arr arranger.Arrangement
	if err := yaml.Unmarshal(b, &arr); err != nil {
		e.setStatus("Error unmarshaling project: %v", err)
		return false
	}
	if arr.BPM <= 0 {
		arr.BPM = 120
	}
	e.arr = arr
	e.ClearSelection()
	e.log.Clear()
	for _, c := range e.arr.MidiClips {
		e.addMidiToEngine(c)
	}
	for _, c := range e.arr.AudioClips {
		if !e.engine.LoadClipFile(c.ID, c.Track, c.FilePath) {
			e.engineFailed("LoadClipFile", c.ID)
			continue
		}
		e.reshapeAudio(arranger.AudioClip{}, c)
	}
	e.setStatus("Project loaded")
	return true
}

// WriteProject marshals the arrangement to the writer as yaml.
func (e *Editor) WriteProject(w io.WriteCloser) bool {
	contents, err := yaml.Marshal(&e.arr)
	if err != nil {
		e.setStatus("Error marshaling project: %v", err)
		return false
	}
	if _, err := w.Write(contents); err != nil {
		e.setStatus("Error writing project: %v", err)
		return false
	}
	if err := w.Close(); err != nil {
		e.setStatus("Error writing project: %v", err)
		return false
	}
	e.setStatus("Project saved")
	return true
}
