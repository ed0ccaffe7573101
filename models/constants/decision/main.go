package decision

import (
	"genoflow/api/models/constants"
	"strings"
)

const (
	Unset constants.Decision = ""

	Yes        constants.Decision = "yes"
	No         constants.Decision = "no"
	MaybeLater constants.Decision = "maybe_later"
)

func CastToDecision(text string) constants.Decision {
	switch strings.ToLower(text) {
	case "yes":
		return Yes
	case "no":
		return No
	case "maybe_later":
		return MaybeLater
	default:
		return Unset
	}
}
