package module

import (
	"genoflow/api/models/constants"
	"strings"
)

const (
	// Unknown doubles as the "no filter" zero value, matching the
	// statusType convention
	Unknown constants.Module = ""

	Gem constants.Module = "gem"
	Hdr constants.Module = "hdr"
	Pgx constants.Module = "pgx"
)

// ReadyModules are the modules gated by the sample-level
// readiness criteria (gem readiness is enrollment-date based
// and resolved upstream)
func ReadyModules() []constants.Module {
	return []constants.Module{Hdr, Pgx}
}

func CastToModule(text string) constants.Module {
	switch strings.ToLower(text) {
	case "gem":
		return Gem
	case "hdr":
		return Hdr
	case "pgx":
		return Pgx
	default:
		return Unknown
	}
}

func IsKnownModule(text string) bool {
	// attempt to cast to module and
	// return if unknown module
	return CastToModule(text) != Unknown
}
