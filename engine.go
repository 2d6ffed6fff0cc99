package arranger

// The editing core drives the realtime engine through these capability
// interfaces instead of calling it directly, so the resolver, mutators and
// commands have no compile-time dependency on any particular engine and
// tests can substitute a scripted fake.
//
// Clip identity is owned by the core: the Arrangement allocates ids and the
// engine mirrors them. This keeps undo/redo deterministic; an engine that
// invented its own ids on every call could not restore a split identically
// on redo.
//
// Engine calls never return errors across this boundary; they return
// sentinel values instead (false, negative duration, nil slice). Calls are
// best-effort: the core checks the sentinel, logs the failure and moves on,
// it does not roll back state it already changed.

type (
	// MidiClipEngine is the engine capability set for MIDI clips. Times are
	// in beats.
	MidiClipEngine interface {
		// AddClip creates a clip with the given id on a track.
		AddClip(clip, track int, start, duration float64) bool

		// DeleteClip removes a clip from a track.
		DeleteClip(clip, track int) bool

		// RescheduleClip moves and resizes a clip without touching its
		// contents. Also used after a tempo change, when beat positions
		// map to new wall-clock times.
		RescheduleClip(clip, track int, start, duration float64) bool

		// UpdateClipNotes replaces the note contents of a clip in place.
		UpdateClipNotes(clip int, notes []MidiNote) bool
	}

	// AudioClipEngine is the engine capability set for audio clips. Times
	// are in seconds.
	AudioClipEngine interface {
		// LoadClipFile loads an audio file into the given clip id on a
		// track. The core cannot parse audio files itself; after a
		// successful load it queries ClipDuration and WaveformPeaks.
		LoadClipFile(clip, track int, path string) bool

		// RemoveClip removes a clip from a track.
		RemoveClip(clip, track int) bool

		SetClipStart(clip int, start float64) bool
		SetClipOffset(clip int, offset float64) bool
		SetClipDuration(clip int, duration float64) bool

		// DuplicateClip copies clip's audio content into newClip at a new
		// start time on the given track.
		DuplicateClip(clip, newClip, track int, newStart float64) bool

		// ClipDuration returns the full source duration of a clip in
		// seconds, or a negative value on failure.
		ClipDuration(clip int) float64

		// WaveformPeaks returns resolution min/max interleaved peak pairs
		// for the clip, or nil on failure.
		WaveformPeaks(clip int, resolution int) []float32
	}

	// ClipEngine is the full engine capability set consumed by the editor.
	ClipEngine interface {
		MidiClipEngine
		AudioClipEngine
	}
)
