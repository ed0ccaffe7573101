package statusType

import (
	"genoflow/api/models/constants"
	"strings"
)

const (
	Unknown constants.StatusType = ""

	InformingLoop constants.StatusType = "informingLoop"
	Result        constants.StatusType = "result"
)

func CastToStatusType(text string) constants.StatusType {
	switch strings.ToLower(text) {
	case "informingloop":
		return InformingLoop
	case "result":
		return Result
	default:
		return Unknown
	}
}

func IsKnownStatusType(text string) bool {
	return CastToStatusType(text) != Unknown
}
