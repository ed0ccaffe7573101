package fileType

import (
	"genoflow/api/models/constants"
	"strings"
)

const (
	Unknown constants.FileType = ""

	Aw1 constants.FileType = "aw1"
	Aw2 constants.FileType = "aw2"

	Aw4Array constants.FileType = "aw4_array"
	Aw4Wgs   constants.FileType = "aw4_wgs"
	Aw5Array constants.FileType = "aw5_array"
	Aw5Wgs   constants.FileType = "aw5_wgs"

	// clinical validation lab manifests
	W2sc constants.FileType = "w2sc"
	W3ns constants.FileType = "w3ns"
	W3sc constants.FileType = "w3sc"
	W3ss constants.FileType = "w3ss"
	W4wr constants.FileType = "w4wr"
	W5nf constants.FileType = "w5nf"
)

func CastToFileType(text string) constants.FileType {
	switch strings.ToLower(text) {
	case "aw1":
		return Aw1
	case "aw2":
		return Aw2
	case "aw4_array":
		return Aw4Array
	case "aw4_wgs":
		return Aw4Wgs
	case "aw5_array":
		return Aw5Array
	case "aw5_wgs":
		return Aw5Wgs
	case "w2sc":
		return W2sc
	case "w3ns":
		return W3ns
	case "w3sc":
		return W3sc
	case "w3ss":
		return W3ss
	case "w4wr":
		return W4wr
	case "w5nf":
		return W5nf
	default:
		return Unknown
	}
}

func IsKnownFileType(text string) bool {
	return CastToFileType(text) != Unknown
}
