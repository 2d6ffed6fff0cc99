package editor

import (
	"path/filepath"

	"github.com/avolans/arranger"
	"github.com/avolans/arranger/midiimport"
)

// waveformResolution is the number of min/max peak pairs cached per audio
// clip for the timeline overview.
const waveformResolution = 512

// CreateMidiClip draws a new MIDI clip on a track, resolving overlaps with
// whatever already occupies the span. notes may be nil for an empty clip.
// Returns the new clip's id, or a negative id if the operation was rejected.
func (e *Editor) CreateMidiClip(track int, start, duration float64, name string, notes []arranger.MidiNote) int {
	if e.arr.TrackByID(track) < 0 {
		e.setStatus("No such track")
		return -1
	}
	if duration <= 0 {
		e.setStatus("Clip duration must be positive")
		return -1
	}
	cmd := &createMidiClip{track: track, start: start, duration: duration, name: name, notes: notes}
	if !e.log.Execute(cmd) {
		return -1
	}
	e.setStatus("Created clip %s", cmd.edit.inserted.Name)
	return cmd.edit.inserted.ID
}

// ImportMidiFile reads a standard MIDI file and creates a clip holding its
// notes at the given position. The file parsing itself is delegated to the
// midiimport package; from the editor's point of view the import is a black
// box producing a note list.
func (e *Editor) ImportMidiFile(path string, track int, start float64) int {
	notes, length, err := midiimport.ReadFile(path)
	if err != nil {
		e.setStatus("Could not import %s: %v", filepath.Base(path), err)
		return -1
	}
	return e.CreateMidiClip(track, start, length, filepath.Base(path), notes)
}

// LoadAudioFile loads an audio file onto a track as a new clip starting at
// the given time. The engine performs the actual decoding; the clip duration
// and waveform overview are queried back from it.
func (e *Editor) LoadAudioFile(path string, track int, start float64) int {
	if e.arr.TrackByID(track) < 0 {
		e.setStatus("No such track")
		return -1
	}
	cmd := &loadAudioClip{track: track, start: start, path: path}
	if !e.log.Execute(cmd) {
		return -1
	}
	e.setStatus("Loaded %s", filepath.Base(path))
	return cmd.edit.inserted.ID
}

type createMidiClip struct {
	track           int
	start, duration float64
	name            string
	notes           []arranger.MidiNote

	edit    midiEdit
	prevSel []int
}

func (c *createMidiClip) Apply(e *Editor) bool {
	if !c.edit.planned {
		clip := arranger.MidiClip{
			ID:         e.arr.AllocMidiClipID(),
			Track:      c.track,
			Start:      c.start,
			Duration:   c.duration,
			LoopLength: c.duration,
			Name:       c.name,
		}
		if clip.Name == "" {
			clip.Name = "MIDI clip"
		}
		for _, n := range c.notes {
			if n.ID == "" {
				n.ID = arranger.NewNoteID()
			}
			clip.Notes = append(clip.Notes, n)
		}
		clip.SortNotes()
		c.prevSel = e.SelectedMidiClips()
		c.edit.plan(e, c.start, c.start+c.duration, c.track)
		c.edit.inserted = clip
		c.edit.mode = insertAdd
	}
	c.edit.apply(e)
	e.SelectMidiClip(c.edit.inserted.ID)
	return true
}

func (c *createMidiClip) Revert(e *Editor) {
	c.edit.revert(e)
	e.selectedMidi = append(e.selectedMidi[:0], c.prevSel...)
}

func (c *createMidiClip) Description() string { return "Create MIDI clip" }

type loadAudioClip struct {
	track int
	start float64
	path  string

	edit    audioEdit
	prevSel []int
}

func (c *loadAudioClip) Apply(e *Editor) bool {
	if !c.edit.planned {
		id := e.arr.AllocAudioClipID()
		if !e.engine.LoadClipFile(id, c.track, c.path) {
			e.setStatus("Could not load %s", filepath.Base(c.path))
			return false
		}
		duration := e.engine.ClipDuration(id)
		if duration < 0 {
			e.setStatus("Could not read duration of %s", filepath.Base(c.path))
			e.engine.RemoveClip(id, c.track)
			return false
		}
		clip := arranger.AudioClip{
			ID:       id,
			Track:    c.track,
			Start:    c.start,
			Duration: duration,
			FilePath: c.path,
			Peaks:    e.engine.WaveformPeaks(id, waveformResolution),
		}
		c.prevSel = e.SelectedAudioClips()
		c.edit.plan(e, c.start, c.start+duration, c.track)
		c.edit.inserted = clip
		c.edit.mode = insertLoad
	}
	c.edit.apply(e)
	e.SelectAudioClip(c.edit.inserted.ID)
	return true
}

func (c *loadAudioClip) Revert(e *Editor) {
	c.edit.revert(e)
	e.selectedAudio = append(e.selectedAudio[:0], c.prevSel...)
}

func (c *loadAudioClip) Description() string { return "Load audio file" }
