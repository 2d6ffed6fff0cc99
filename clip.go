package arranger

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

type (
	// TrackKind tells which clip domain a track holds. MIDI and audio clips
	// live in separate domains: they have separate id namespaces and their
	// spans do not need to respect each other.
	TrackKind int

	// Track is an identity-bearing lane on the timeline, holding clips of one
	// domain. The clips themselves live in the Arrangement, keyed by the
	// track id, so that a track can be renamed or reordered without touching
	// clip data.
	Track struct {
		ID   int
		Name string
		Kind TrackKind
	}

	// MidiNote is a single note within a MIDI clip. Start and Duration are in
	// beats, relative to the start of the owning clip. The ID stays stable
	// across edits so selections and undo snapshots can refer to the note.
	MidiNote struct {
		ID       string
		Note     int
		Velocity int
		Start    float64
		Duration float64

		// Selected is a transient UI flag; it has no meaning for playback
		// and is not persisted.
		Selected bool `yaml:"-"`
	}

	// MidiClip is a clip of MIDI notes on a track. Start, Duration and
	// LoopLength are in beats, so the clip keeps its musical position when
	// the tempo changes.
	MidiClip struct {
		ID         int
		Track      int
		Start      float64
		Duration   float64
		LoopLength float64 `yaml:",omitempty"`
		LoopCount  int     `yaml:",omitempty"`
		Name       string  `yaml:",omitempty"`
		Color      string  `yaml:",omitempty"`

		// PatternID links a clip to its duplicates: clips sharing a
		// PatternID are instances of the same pattern, so note edits on one
		// can propagate to all of them. Empty means the clip is not linked.
		PatternID string `yaml:",omitempty"`

		Notes []MidiNote `yaml:",omitempty"`
	}

	// AudioClip is a clip referencing a span of an audio file. Start,
	// Duration and Offset are in seconds; Offset is how far into the source
	// file playback begins, so trimming the clip head advances the Offset to
	// keep the remaining content aligned.
	AudioClip struct {
		ID       int
		Track    int
		Start    float64
		Duration float64
		Offset   float64   `yaml:",omitempty"`
		FilePath string    `yaml:",omitempty"`
		Color    string    `yaml:",omitempty"`
		Peaks    []float32 `yaml:",flow,omitempty"`
	}
)

const (
	MidiTrack TrackKind = iota
	AudioTrack
)

// MinNoteDuration is the floor for note lengths after quantization or
// clamping, in beats. Shorter notes would be inaudible and are easy to lose
// in the piano roll.
const MinNoteDuration = 0.1

// NewNoteID returns a fresh unique id for a MidiNote.
func NewNoteID() string {
	return uuid.NewString()
}

// NewPatternID returns a fresh pattern linkage id.
func NewPatternID() string {
	return uuid.NewString()
}

func (n MidiNote) End() float64 {
	return n.Start + n.Duration
}

func (c *MidiClip) End() float64 {
	return c.Start + c.Duration
}

func (c *AudioClip) End() float64 {
	return c.Start + c.Duration
}

// Copy makes a deep copy of a MidiClip.
func (c *MidiClip) Copy() MidiClip {
	notes := make([]MidiNote, len(c.Notes))
	copy(notes, c.Notes)
	ret := *c
	ret.Notes = notes
	return ret
}

// Copy makes a deep copy of an AudioClip.
func (c *AudioClip) Copy() AudioClip {
	peaks := make([]float32, len(c.Peaks))
	copy(peaks, c.Peaks)
	ret := *c
	ret.Peaks = peaks
	return ret
}

// SortNotes orders the notes of the clip by start time, keeping the relative
// order of notes starting at the same time.
func (c *MidiClip) SortNotes() {
	sort.SliceStable(c.Notes, func(i, j int) bool {
		return c.Notes[i].Start < c.Notes[j].Start
	})
}

// FilterNotes returns deep copies of the notes whose start time falls within
// [from, to), rebased so that from becomes the new zero. A note straddling
// the to boundary is kept whole: it belongs to the window containing its
// start time. Use math.Inf(1) as to for an open-ended window.
func FilterNotes(notes []MidiNote, from, to float64) []MidiNote {
	var ret []MidiNote
	for _, n := range notes {
		if n.Start < from || n.Start >= to {
			continue
		}
		n.Start -= from
		ret = append(ret, n)
	}
	return ret
}

// PartitionNotes splits notes at the cut point (in beats, relative to the
// clip start) into the notes of the left and right pieces. Every note ends up
// in exactly one piece, decided by its start time; right piece notes are
// rebased to the cut point.
func PartitionNotes(notes []MidiNote, cut float64) (left, right []MidiNote) {
	left = FilterNotes(notes, 0, cut)
	right = FilterNotes(notes, cut, math.Inf(1))
	return left, right
}

// Spanner accessors, so the overlap resolver can work generically over both
// clip domains.

func (c MidiClip) SpanID() int         { return c.ID }
func (c MidiClip) SpanTrack() int      { return c.Track }
func (c MidiClip) SpanStart() float64  { return c.Start }
func (c MidiClip) SpanLength() float64 { return c.Duration }

func (c AudioClip) SpanID() int         { return c.ID }
func (c AudioClip) SpanTrack() int      { return c.Track }
func (c AudioClip) SpanStart() float64  { return c.Start }
func (c AudioClip) SpanLength() float64 { return c.Duration }
