package editor

import (
	"fmt"

	"github.com/avolans/arranger"
)

// DeleteSelectedClips removes every selected clip, MIDI and audio alike, as
// a single undo unit: a batch delete of three clips is one entry in the
// undo menu and one Undo() restores all three.
func (e *Editor) DeleteSelectedClips() bool {
	midi := e.SelectedMidiClips()
	audio := e.SelectedAudioClips()
	if len(midi) == 0 && len(audio) == 0 {
		e.setStatus("No clip selected")
		return false
	}
	var children []Command
	for _, id := range midi {
		children = append(children, &deleteMidiClip{clip: id})
	}
	for _, id := range audio {
		children = append(children, &deleteAudioClip{clip: id})
	}
	var cmd Command
	label := deleteLabel(len(midi), len(audio))
	if len(children) == 1 {
		cmd = children[0]
	} else {
		cmd = &Composite{Label: label, Children: children}
	}
	if !e.log.Execute(cmd) {
		return false
	}
	e.setStatus("%s", label)
	return true
}

func deleteLabel(midi, audio int) string {
	switch {
	case audio == 0 && midi == 1:
		return "Delete MIDI clip"
	case audio == 0:
		return fmt.Sprintf("Delete %d MIDI clips", midi)
	case midi == 0 && audio == 1:
		return "Delete audio clip"
	case midi == 0:
		return fmt.Sprintf("Delete %d audio clips", audio)
	default:
		return fmt.Sprintf("Delete %d clips", midi+audio)
	}
}

type deleteMidiClip struct {
	clip     int
	captured bool
	before   arranger.MidiClip
}

func (c *deleteMidiClip) Apply(e *Editor) bool {
	if !c.captured {
		i := e.arr.FindMidiClip(c.clip)
		if i < 0 {
			return false
		}
		c.before = e.arr.MidiClips[i].Copy()
		c.captured = true
	}
	e.arr.RemoveMidiClip(c.clip)
	if !e.engine.DeleteClip(c.clip, c.before.Track) {
		e.engineFailed("DeleteClip", c.clip)
	}
	return true
}

func (c *deleteMidiClip) Revert(e *Editor) {
	e.arr.AddMidiClip(c.before.Copy())
	e.addMidiToEngine(c.before)
	e.AddMidiClipToSelection(c.clip)
}

func (c *deleteMidiClip) Description() string { return "Delete MIDI clip" }

type deleteAudioClip struct {
	clip     int
	captured bool
	before   arranger.AudioClip
}

func (c *deleteAudioClip) Apply(e *Editor) bool {
	if !c.captured {
		i := e.arr.FindAudioClip(c.clip)
		if i < 0 {
			return false
		}
		c.before = e.arr.AudioClips[i].Copy()
		c.captured = true
	}
	e.arr.RemoveAudioClip(c.clip)
	if !e.engine.RemoveClip(c.clip, c.before.Track) {
		e.engineFailed("RemoveClip", c.clip)
	}
	return true
}

func (c *deleteAudioClip) Revert(e *Editor) {
	e.arr.AddAudioClip(c.before.Copy())
	if !e.engine.LoadClipFile(c.clip, c.before.Track, c.before.FilePath) {
		e.engineFailed("LoadClipFile", c.clip)
	} else {
		e.reshapeAudio(arranger.AudioClip{}, c.before)
	}
	e.AddAudioClipToSelection(c.clip)
}

func (c *deleteAudioClip) Description() string { return "Delete audio clip" }
