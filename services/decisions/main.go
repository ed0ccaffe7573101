package decisions

import (
	"genoflow/api/models/constants"
	eventType "genoflow/api/models/constants/event-type"
	"genoflow/api/models/indexes"
)

/*
	Resolution of the single "current" informing-loop decision per
	(participant, module) over the append-only event log. Implemented
	as a stateless max-by fold so it stays stable under concurrent
	writers : the latest eventAuthoredTime wins, ties broken by the
	greatest messageRecordId.
*/
func CurrentDecision(events []indexes.InformingLoopEvent, participantId string, mod constants.Module) *indexes.InformingLoopEvent {
	var current *indexes.InformingLoopEvent

	for i := range events {
		event := &events[i]

		if event.EventType != eventType.InformingLoopDecision {
			// "started" events never compete for the current decision
			continue
		}
		if event.ParticipantId != participantId || event.Module != mod {
			continue
		}

		if current == nil || supersedes(event, current) {
			current = event
		}
	}

	return current
}

func supersedes(candidate *indexes.InformingLoopEvent, current *indexes.InformingLoopEvent) bool {
	if candidate.EventAuthoredTime.After(current.EventAuthoredTime) {
		return true
	}
	if candidate.EventAuthoredTime.Equal(current.EventAuthoredTime) {
		return candidate.MessageRecordId > current.MessageRecordId
	}
	return false
}

// DecidedModules returns the modules for which the participant has
// at least one resolvable decision
func DecidedModules(events []indexes.InformingLoopEvent, participantId string, mods []constants.Module) []constants.Module {
	decided := make([]constants.Module, 0)
	for _, mod := range mods {
		if CurrentDecision(events, participantId, mod) != nil {
			decided = append(decided, mod)
		}
	}
	return decided
}
