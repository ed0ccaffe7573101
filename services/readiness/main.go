package readiness

import (
	"strings"

	"genoflow/api/models/constants"
	genomeType "genoflow/api/models/constants/genome-type"
	"genoflow/api/models/constants/module"
	qcStatus "genoflow/api/models/constants/qc-status"
	"genoflow/api/models/indexes"
)

const (
	passingSampleSource   = "Whole Blood"
	passingSexConcordance = "true"
	passingConcordance    = "pass"
)

/*
	Pure evaluation of whether a sample record has passed every
	lab/QC gate required before its informing loop may be surfaced.
	No state is kept between calls ; a regressed field flips the
	result on the very next evaluation.
*/
func IsSampleReady(sample *indexes.SampleRecord) bool {
	if sample == nil {
		return false
	}

	if sample.GenomeType != genomeType.Wgs {
		return false
	}
	if sample.QcStatus != qcStatus.Pass {
		return false
	}
	if sample.GcManifestSampleSource != passingSampleSource {
		return false
	}
	if !sample.InformingLoopReadyFlag {
		return false
	}

	// concordance sentinels ; stored values vary in casing
	// between manifest generations ("Pass" vs "PASS")
	if !strings.EqualFold(sample.SexConcordance, passingSexConcordance) {
		return false
	}
	if !strings.EqualFold(sample.DrcFpConcordance, passingConcordance) {
		return false
	}
	if !strings.EqualFold(sample.DrcSexConcordance, passingConcordance) {
		return false
	}
	if !strings.EqualFold(sample.ProcessingStatus, passingConcordance) {
		return false
	}

	return true
}

// IsModuleReady reports sample readiness for one module ; gem is
// gated by a date-of-enrollment rule upstream and never resolves
// as "ready" here
func IsModuleReady(sample *indexes.SampleRecord, mod constants.Module) bool {
	if mod != module.Hdr && mod != module.Pgx {
		return false
	}
	return IsSampleReady(sample)
}

// ReadyModules returns every module the sample is currently
// ready for, in stable module order
func ReadyModules(sample *indexes.SampleRecord) []constants.Module {
	readyMods := make([]constants.Module, 0)
	for _, mod := range module.ReadyModules() {
		if IsModuleReady(sample, mod) {
			readyMods = append(readyMods, mod)
		}
	}
	return readyMods
}
