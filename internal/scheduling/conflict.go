package scheduling

import (
	"time"
)

// ConflictResult lists every session that overlaps a candidate interval.
type ConflictResult struct {
	HasConflict           bool
	ConflictingSessionIDs []string
	Conflicts             []Session
}

// CheckConflict reports every session in existing that overlaps candidate,
// in input order. The session whose ID equals excludeID is skipped, which lets
// an edited session be checked against its own stored copy. An empty
// excludeID excludes nothing.
func CheckConflict(candidate Interval, existing []Session, excludeID string) (ConflictResult, error) {
	if !candidate.Valid() {
		return ConflictResult{}, ErrInvalidInterval
	}

	result := ConflictResult{
		ConflictingSessionIDs: []string{},
		Conflicts:             []Session{},
	}
	for _, s := range existing {
		if excludeID != "" && s.ID == excludeID {
			continue
		}
		if candidate.Overlaps(s.Interval()) {
			result.ConflictingSessionIDs = append(result.ConflictingSessionIDs, s.ID)
			result.Conflicts = append(result.Conflicts, s)
		}
	}
	result.HasConflict = len(result.Conflicts) > 0
	return result, nil
}

// CheckConflictAt is CheckConflict for a raw start/end pair.
func CheckConflictAt(start, end time.Time, existing []Session, excludeID string) (ConflictResult, error) {
	candidate, err := NewInterval(start, end)
	if err != nil {
		return ConflictResult{}, err
	}
	return CheckConflict(candidate, existing, excludeID)
}

// CanStartAt reports whether a session of the given duration starting at
// start would fit without touching any existing session. A non-positive
// duration never fits.
func CanStartAt(start time.Time, duration time.Duration, existing []Session) bool {
	if duration <= 0 {
		return false
	}
	end := start.Add(duration)
	for _, s := range existing {
		if Overlaps(start, end, s.Start, s.End) {
			return false
		}
	}
	return true
}
