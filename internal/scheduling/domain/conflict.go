package domain

import "time"

// ConflictSeverity grades how blocking a conflict is.
type ConflictSeverity string

const (
	// SeverityHard means the booking should not proceed at the requested
	// time without taking the suggested adjustment.
	SeverityHard ConflictSeverity = "hard"
	// SeveritySoft is an advisory warning the caller may dismiss.
	SeveritySoft ConflictSeverity = "soft"
)

// ScheduleConflict describes a collision between a requested booking time
// and an existing schedule item.
type ScheduleConflict struct {
	Severity      ConflictSeverity
	Item          ScheduleItem
	RequestedTime time.Time
	ConflictTime  time.Time
	Description   string
	SuggestedTime *time.Time
	Explanation   string
}

// AssessmentOutcome tags the result of a conflict check so callers can
// tell "checked, clear" apart from "could not check".
type AssessmentOutcome string

const (
	OutcomeClear       AssessmentOutcome = "clear"
	OutcomeConflict    AssessmentOutcome = "conflict"
	OutcomeCheckFailed AssessmentOutcome = "check_failed"
)

// ConflictAssessment is the engine's answer to a conflict check. A failed
// check is reported here rather than as an error: the booking flow must
// never be blocked by the engine's own failures.
type ConflictAssessment struct {
	Outcome      AssessmentOutcome
	Conflicts    []ScheduleConflict
	OriginalTime time.Time
	AdjustedTime *time.Time
	Explanation  string
	Warnings     []string
}

// HasConflict reports whether any conflict was found.
func (a ConflictAssessment) HasConflict() bool {
	return a.Outcome == OutcomeConflict
}

// HardConflict returns the first hard conflict, if any.
func (a ConflictAssessment) HardConflict() (ScheduleConflict, bool) {
	for _, c := range a.Conflicts {
		if c.Severity == SeverityHard {
			return c, true
		}
	}
	return ScheduleConflict{}, false
}

// ClearAssessment builds a no-conflict result for a requested time.
func ClearAssessment(requested time.Time) ConflictAssessment {
	return ConflictAssessment{
		Outcome:      OutcomeClear,
		OriginalTime: requested,
	}
}

// FailedAssessment builds the degraded result used when the engine could
// not consult the schedule.
func FailedAssessment(requested time.Time, warning string) ConflictAssessment {
	return ConflictAssessment{
		Outcome:      OutcomeCheckFailed,
		OriginalTime: requested,
		Warnings:     []string{warning},
	}
}
