package arranger

import "sort"

type (
	// PlanOp is the kind of adjustment an overlap resolution plan applies to
	// an existing clip.
	PlanOp int

	// PlanAction is one adjustment to an existing clip. Which fields are
	// meaningful depends on Op:
	//
	//   OpDelete:    none, the clip is removed.
	//   OpTrimEnd:   Duration is the clip's new, shorter duration.
	//   OpTrimStart: Start and Duration are the clip's new geometry;
	//                OffsetDelta is how much was cut off the head, which the
	//                audio domain adds to the clip's source Offset.
	//   OpSplit:     the clip is replaced by two pieces. The left piece keeps
	//                the clip's id and start and gets Duration; the right
	//                piece gets a freshly allocated id (allocated by whoever
	//                applies the plan, never here) with RightStart and
	//                RightDuration; OffsetDelta is the head cut of the right
	//                piece relative to the original clip start.
	PlanAction struct {
		Op            PlanOp
		Clip          int
		Start         float64
		Duration      float64
		OffsetDelta   float64
		RightStart    float64
		RightDuration float64
	}

	// Plan is the ordered list of adjustments that removes all overlaps with
	// a newly placed span, ordered by the start time of the affected clips.
	Plan []PlanAction

	// Spanner is anything with an id, a track and a time span. Both clip
	// domains implement it, so Resolve works for MIDI clips in beats and
	// audio clips in seconds alike.
	Spanner interface {
		SpanID() int
		SpanTrack() int
		SpanStart() float64
		SpanLength() float64
	}
)

const (
	OpDelete PlanOp = iota
	OpTrimEnd
	OpTrimStart
	OpSplit
)

// Resolve computes the adjustments needed so that no existing clip on the
// given track overlaps the span [newStart, newEnd). It is pure: it does not
// mutate its inputs, call the store or the engine, or allocate ids.
//
// A clip merely touching the span boundary (end == newStart or
// start == newEnd) is not an overlap. Clips are matched by span only, never
// excluded by identity: when a duplicate is dropped onto its own source, the
// source gets trimmed or split like any other clip, which is the expected
// DAW behavior. Any adjustment that would leave a clip with a non-positive
// duration degenerates to a delete.
func Resolve[C Spanner](newStart, newEnd float64, clips []C, track int) Plan {
	var plan Plan
	for _, c := range clips {
		if c.SpanTrack() != track {
			continue
		}
		s := c.SpanStart()
		e := s + c.SpanLength()
		if e <= newStart || s >= newEnd {
			continue
		}
		switch {
		case s >= newStart && e <= newEnd:
			plan = append(plan, PlanAction{Op: OpDelete, Clip: c.SpanID(), Start: s})
		case s < newStart && e <= newEnd:
			plan = append(plan, trimEnd(c.SpanID(), s, newStart))
		case s >= newStart:
			plan = append(plan, trimStart(c.SpanID(), s, e, newEnd))
		default:
			plan = append(plan, split(c.SpanID(), s, e, newStart, newEnd))
		}
	}
	sort.SliceStable(plan, func(i, j int) bool { return plan[i].Start < plan[j].Start })
	return plan
}

func trimEnd(id int, s, newStart float64) PlanAction {
	if newStart-s <= 0 {
		return PlanAction{Op: OpDelete, Clip: id, Start: s}
	}
	return PlanAction{Op: OpTrimEnd, Clip: id, Start: s, Duration: newStart - s}
}

func trimStart(id int, s, e, newEnd float64) PlanAction {
	if e-newEnd <= 0 {
		return PlanAction{Op: OpDelete, Clip: id, Start: s}
	}
	return PlanAction{
		Op:          OpTrimStart,
		Clip:        id,
		Start:       newEnd,
		Duration:    e - newEnd,
		OffsetDelta: newEnd - s,
	}
}

func split(id int, s, e, newStart, newEnd float64) PlanAction {
	left := newStart - s
	right := e - newEnd
	if left <= 0 && right <= 0 {
		return PlanAction{Op: OpDelete, Clip: id, Start: s}
	}
	if left <= 0 {
		return trimStart(id, s, e, newEnd)
	}
	if right <= 0 {
		return trimEnd(id, s, newStart)
	}
	return PlanAction{
		Op:            OpSplit,
		Clip:          id,
		Start:         s,
		Duration:      left,
		OffsetDelta:   newEnd - s,
		RightStart:    newEnd,
		RightDuration: right,
	}
}
