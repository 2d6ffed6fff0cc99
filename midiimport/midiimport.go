// Package midiimport turns standard MIDI files into note lists. The editor
// treats it as a black box: file parsing is done entirely by
// gitlab.com/gomidi/midi/v2, and what comes out is an ordered list of notes
// in beats, ready to be placed in a MIDI clip.
package midiimport

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/avolans/arranger"
)

// Read parses a standard MIDI file and returns its notes, with start times
// and durations in beats relative to the file start, plus the total length
// in beats rounded up to a whole beat. Note-on events with velocity zero are
// treated as note-offs, per the MIDI convention. Tempo meta events are
// ignored: the notes are placed on the beat grid of the target project, not
// of the source file.
func Read(r io.Reader) ([]arranger.MidiNote, float64, error) {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, 0, fmt.Errorf("reading SMF: %w", err)
	}
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, 0, errors.New("SMPTE time format is not supported")
	}
	ticksPerQuarter := float64(uint16(mt))
	if ticksPerQuarter <= 0 {
		return nil, 0, errors.New("invalid ticks per quarter note")
	}

	type open struct {
		start    float64
		velocity uint8
	}
	var notes []arranger.MidiNote
	for _, track := range s.Tracks {
		var absTicks uint64
		// key -> pending note-on; a second note-on for a held key closes
		// the first one, so stuck notes in sloppy files cannot grow
		// unbounded.
		pending := make(map[uint8]open)
		closeNote := func(key uint8, at float64) {
			p, ok := pending[key]
			if !ok {
				return
			}
			delete(pending, key)
			duration := at - p.start
			if duration < arranger.MinNoteDuration {
				duration = arranger.MinNoteDuration
			}
			notes = append(notes, arranger.MidiNote{
				ID:       arranger.NewNoteID(),
				Note:     int(key),
				Velocity: int(p.velocity),
				Start:    p.start,
				Duration: duration,
			})
		}
		for _, ev := range track {
			absTicks += uint64(ev.Delta)
			beats := float64(absTicks) / ticksPerQuarter
			var ch, key, vel uint8
			switch {
			case ev.Message.GetNoteStart(&ch, &key, &vel):
				closeNote(key, beats)
				pending[key] = open{start: beats, velocity: vel}
			case ev.Message.GetNoteEnd(&ch, &key):
				closeNote(key, beats)
			}
		}
		// Anything still pending at end of track gets a minimal duration
		// rather than being dropped.
		for key := range pending {
			closeNote(key, pending[key].start)
		}
	}
	sort.SliceStable(notes, func(i, j int) bool { return notes[i].Start < notes[j].Start })

	length := 0.0
	for _, n := range notes {
		if n.End() > length {
			length = n.End()
		}
	}
	length = math.Ceil(length)
	if length < 1 {
		length = 1
	}
	return notes, length, nil
}

// ReadFile is Read on a file path.
func ReadFile(path string) ([]arranger.MidiNote, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
