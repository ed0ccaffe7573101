package qcStatus

import (
	"genoflow/api/models/constants"
	"strings"
)

const (
	Unset constants.QcStatus = "UNSET"

	Pass constants.QcStatus = "PASS"
	Fail constants.QcStatus = "FAIL"
)

func CastToQcStatus(text string) constants.QcStatus {
	switch strings.ToLower(text) {
	case "pass":
		return Pass
	case "fail":
		return Fail
	default:
		return Unset
	}
}
