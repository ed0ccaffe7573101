package reports

import (
	"genoflow/api/models/constants"
	reportState "genoflow/api/models/constants/report-state"
	"genoflow/api/models/indexes"
)

// ReportStatus is the resolved report-delivery state for one
// (participant, module) pair
type ReportStatus struct {
	Module constants.Module
	State  constants.ReportState
	Viewed bool
}

/*
	The report-state store is upserted per (participant, module), so
	at most one logical row exists per pair ; the fold below still
	takes the most recently modified row defensively should a
	concurrent upsert race leave a transient duplicate behind.
*/
func CurrentReportState(states []indexes.ReportStateEvent, participantId string, mod constants.Module) *indexes.ReportStateEvent {
	var current *indexes.ReportStateEvent

	for i := range states {
		state := &states[i]
		if state.ParticipantId != participantId || state.Module != mod {
			continue
		}
		if current == nil || state.ModifiedTime.After(current.ModifiedTime) {
			current = state
		}
	}

	return current
}

// HasViewed reports whether any result-viewed row exists for the
// (participant, module) pair ; presence of a row means viewed
func HasViewed(viewed []indexes.ResultViewedEvent, participantId string, mod constants.Module) bool {
	for i := range viewed {
		if viewed[i].ParticipantId == participantId && viewed[i].Module == mod {
			return true
		}
	}
	return false
}

// Resolve maps a stored report-state row plus the viewed log to the
// participant-facing status for one module
func Resolve(states []indexes.ReportStateEvent, viewed []indexes.ResultViewedEvent, participantId string, mod constants.Module) *ReportStatus {
	current := CurrentReportState(states, participantId, mod)
	if current == nil {
		return nil
	}

	return &ReportStatus{
		Module: mod,
		State:  reportState.CastFromStoredState(current.GenomicReportState),
		Viewed: HasViewed(viewed, participantId, mod),
	}
}
