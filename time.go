package arranger

// Conversions between the two time bases of the timeline: MIDI clips are
// positioned in beats (tempo-relative), audio clips in seconds (wall-clock).
// The tempo is passed in explicitly instead of read from a global, so a
// single test can exercise several tempos side by side.

// BeatsToSeconds converts a duration or position in beats to seconds at the
// given tempo.
func BeatsToSeconds(beats, bpm float64) float64 {
	return beats * 60 / bpm
}

// SecondsToBeats converts a duration or position in seconds to beats at the
// given tempo.
func SecondsToBeats(seconds, bpm float64) float64 {
	return seconds * bpm / 60
}

// BeatsToSeconds converts using the arrangement's current tempo.
func (a *Arrangement) BeatsToSeconds(beats float64) float64 {
	return BeatsToSeconds(beats, a.BPM)
}

// SecondsToBeats converts using the arrangement's current tempo.
func (a *Arrangement) SecondsToBeats(seconds float64) float64 {
	return SecondsToBeats(seconds, a.BPM)
}
