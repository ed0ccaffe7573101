package genomeType

import (
	"genoflow/api/models/constants"
	"strings"
)

const (
	Unknown constants.GenomeType = "unknown"

	Array constants.GenomeType = "aou_array"
	Wgs   constants.GenomeType = "aou_wgs"
)

func CastToGenomeType(text string) constants.GenomeType {
	switch strings.ToLower(text) {
	case "aou_array", "array":
		return Array
	case "aou_wgs", "wgs":
		return Wgs
	default:
		return Unknown
	}
}
