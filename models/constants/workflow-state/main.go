package workflowState

import (
	"genoflow/api/models/constants"
	"strings"
)

const (
	Unset constants.WorkflowState = "UNSET"

	AW0 constants.WorkflowState = "AW0"
	AW1 constants.WorkflowState = "AW1"
	AW2 constants.WorkflowState = "AW2"
	AW3 constants.WorkflowState = "AW3"
	AW4 constants.WorkflowState = "AW4"
	AW5 constants.WorkflowState = "AW5"

	GemRptReady         constants.WorkflowState = "GEM_RPT_READY"
	GemRptPendingDelete constants.WorkflowState = "GEM_RPT_PENDING_DELETE"
	GemRptDeleted       constants.WorkflowState = "GEM_RPT_DELETED"

	CvlReady constants.WorkflowState = "CVL_READY"
)

func CastToWorkflowState(text string) constants.WorkflowState {
	switch strings.ToUpper(text) {
	case "AW0":
		return AW0
	case "AW1":
		return AW1
	case "AW2":
		return AW2
	case "AW3":
		return AW3
	case "AW4":
		return AW4
	case "AW5":
		return AW5
	case "GEM_RPT_READY":
		return GemRptReady
	case "GEM_RPT_PENDING_DELETE":
		return GemRptPendingDelete
	case "GEM_RPT_DELETED":
		return GemRptDeleted
	case "CVL_READY":
		return CvlReady
	default:
		return Unset
	}
}
