package utils

import "strings"

func StringInSlice(a string, list []string) bool {
	for _, b := range list {
		if b == a {
			return true
		}
	}
	return false
}

// StripParticipantPrefix accepts participant ids with or without the
// conventional 'P' prefix and returns the bare numeric id
func StripParticipantPrefix(participantId string) string {
	return strings.TrimPrefix(strings.TrimSpace(participantId), "P")
}

// DisplayParticipantId returns the externally-facing form of a
// participant id, always carrying the 'P' prefix
func DisplayParticipantId(participantId string) string {
	return "P" + StripParticipantPrefix(participantId)
}
