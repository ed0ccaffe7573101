package reportState

import (
	"genoflow/api/models/constants"
	"strings"
)

const (
	Unset constants.ReportState = ""

	Ready         constants.ReportState = "ready"
	PendingDelete constants.ReportState = "pending_delete"
	Deleted       constants.ReportState = "deleted"
)

func CastToReportState(text string) constants.ReportState {
	switch strings.ToLower(text) {
	case "ready":
		return Ready
	case "pending_delete":
		return PendingDelete
	case "deleted":
		return Deleted
	default:
		return Unset
	}
}

// CastFromStoredState maps a stored per-module report state value
// (i.e. "GEM_RPT_READY", "PGX_RPT_PENDING_DELETE") to the
// participant-facing status token
func CastFromStoredState(text string) constants.ReportState {
	lowered := strings.ToLower(text)
	switch {
	case strings.HasSuffix(lowered, "_rpt_ready"):
		return Ready
	case strings.HasSuffix(lowered, "_rpt_pending_delete"):
		return PendingDelete
	case strings.HasSuffix(lowered, "_rpt_deleted"):
		return Deleted
	default:
		return CastToReportState(lowered)
	}
}
