package eventType

import (
	"genoflow/api/models/constants"
	"strings"
)

const (
	Unknown constants.EventType = ""

	InformingLoopDecision constants.EventType = "informing_loop_decision"
	InformingLoopStarted  constants.EventType = "informing_loop_started"
	ResultViewed          constants.EventType = "result_viewed"
)

func CastToEventType(text string) constants.EventType {
	switch strings.ToLower(text) {
	case "informing_loop_decision":
		return InformingLoopDecision
	case "informing_loop_started":
		return InformingLoopStarted
	case "result_viewed":
		return ResultViewed
	default:
		return Unknown
	}
}

func IsKnownEventType(text string) bool {
	return CastToEventType(text) != Unknown
}
