package genomicJob

import (
	"genoflow/api/models/constants"
)

const (
	Unknown constants.GenomicJob = ""

	Aw1Manifest      constants.GenomicJob = "AW1_MANIFEST"
	Aw1FManifest     constants.GenomicJob = "AW1F_MANIFEST"
	MetricsIngestion constants.GenomicJob = "METRICS_INGESTION"
	Aw4ArrayWorkflow constants.GenomicJob = "AW4_ARRAY_WORKFLOW"
	Aw4WgsWorkflow   constants.GenomicJob = "AW4_WGS_WORKFLOW"
	Aw5ArrayManifest constants.GenomicJob = "AW5_ARRAY_MANIFEST"
	Aw5WgsManifest   constants.GenomicJob = "AW5_WGS_MANIFEST"

	CvlW2scWorkflow constants.GenomicJob = "CVL_W2SC_WORKFLOW"
	CvlW3nsWorkflow constants.GenomicJob = "CVL_W3NS_WORKFLOW"
	CvlW3scWorkflow constants.GenomicJob = "CVL_W3SC_WORKFLOW"
	CvlW3ssWorkflow constants.GenomicJob = "CVL_W3SS_WORKFLOW"
	CvlW4wrWorkflow constants.GenomicJob = "CVL_W4WR_WORKFLOW"
	CvlW5nfWorkflow constants.GenomicJob = "CVL_W5NF_WORKFLOW"
)

// ConfigKey returns the per-job key used by the ingestion
// enablement configuration
func ConfigKey(job constants.GenomicJob) string {
	switch job {
	case Aw1Manifest, Aw1FManifest:
		return "aw1_manifest"
	case MetricsIngestion:
		return "aw2_manifest"
	case Aw4ArrayWorkflow:
		return "aw4_array_manifest"
	case Aw4WgsWorkflow:
		return "aw4_wgs_manifest"
	case Aw5ArrayManifest:
		return "aw5_array_manifest"
	case Aw5WgsManifest:
		return "aw5_wgs_manifest"
	case CvlW2scWorkflow:
		return "w2sc_manifest"
	case CvlW3nsWorkflow:
		return "w3ns_manifest"
	case CvlW3scWorkflow:
		return "w3sc_manifest"
	case CvlW3ssWorkflow:
		return "w3ss_manifest"
	case CvlW4wrWorkflow:
		return "w4wr_manifest"
	case CvlW5nfWorkflow:
		return "w5nf_manifest"
	default:
		return ""
	}
}
