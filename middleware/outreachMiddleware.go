package middleware

import (
	"net/http"

	"genoflow/api/models/constants/module"
	statusType "genoflow/api/models/constants/status-type"
	"genoflow/api/models/dtos/errors"
	"genoflow/api/utils"

	"github.com/labstack/echo"
)

const (
	acceptedGetParamsMessage  = "GenomicOutreachV2 GET accepted params: start_date | end_date | participant_id | module | type"
	acceptedModulesMessage    = "GenomicOutreachV2 GET accepted modules: gem | hdr | pgx"
	acceptedTypesMessage      = "GenomicOutreachV2 GET accepted types: result | informingLoop"
	missingFilterMessage      = "Participant ID or Start Date is required for GenomicOutreach lookup."
)

var acceptedGetParams = []string{"start_date", "end_date", "participant_id", "module", "type"}

/*
	Echo middleware validating the outreach GET query surface.
	Unknown keys are rejected before anything else, even when valid
	keys are also present, so the accepted parameter set stays
	self-documenting for API consumers.
*/
func ValidateOutreachQueryAttributes(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {

		for key := range c.QueryParams() {
			if !utils.StringInSlice(key, acceptedGetParams) {
				return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest(acceptedGetParamsMessage))
			}
		}

		moduleQP := c.QueryParam("module")
		if len(moduleQP) > 0 && !module.IsKnownModule(moduleQP) {
			return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest(acceptedModulesMessage))
		}

		typeQP := c.QueryParam("type")
		if len(typeQP) > 0 && !statusType.IsKnownStatusType(typeQP) {
			return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest(acceptedTypesMessage))
		}

		// one of the two filter dimensions must be present
		if len(c.QueryParam("participant_id")) == 0 && len(c.QueryParam("start_date")) == 0 {
			return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest(missingFilterMessage))
		}

		return next(c)
	}
}
