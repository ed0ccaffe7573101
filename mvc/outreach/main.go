package outreach

import (
	"fmt"
	"net/http"
	"time"

	"genoflow/api/contexts"
	"genoflow/api/models/constants/module"
	statusType "genoflow/api/models/constants/status-type"
	"genoflow/api/models/dtos"
	"genoflow/api/models/dtos/errors"
	outreachService "genoflow/api/services/outreach"
	"genoflow/api/utils"

	"github.com/labstack/echo"
)

var acceptedMutationParams = []string{"informing_loop_eligible", "eligibility_date_utc", "participant_id"}

// inbound date filters and eligibility dates arrive in either
// second-precision ISO or full RFC3339 form
var acceptedDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func GetOutreachStatus(c echo.Context) error {
	fmt.Printf("[%s] - GetOutreachStatus hit!\n", time.Now())

	gc := c.(*contexts.GenomicContext)

	query := &outreachService.Query{
		ParticipantId: c.QueryParam("participant_id"),
		Module:        module.CastToModule(c.QueryParam("module")),
		Type:          statusType.CastToStatusType(c.QueryParam("type")),
	}

	if startDateQP := c.QueryParam("start_date"); len(startDateQP) > 0 {
		startDate, parseErr := parseDate(startDateQP)
		if parseErr != nil {
			return c.JSON(http.StatusBadRequest,
				errors.CreateSimpleBadRequest(fmt.Sprintf("Invalid date '%s' provided in GET", startDateQP)))
		}
		query.StartDate = startDate
	}
	if endDateQP := c.QueryParam("end_date"); len(endDateQP) > 0 {
		endDate, parseErr := parseDate(endDateQP)
		if parseErr != nil {
			return c.JSON(http.StatusBadRequest,
				errors.CreateSimpleBadRequest(fmt.Sprintf("Invalid date '%s' provided in GET", endDateQP)))
		}
		query.EndDate = endDate
	}

	response, statusErr := gc.OutreachService.Status(query)
	if statusErr != nil {
		return outreachErrorResponse(c, statusErr)
	}

	return c.JSON(http.StatusOK, response)
}

func CreateOutreachEligibility(c echo.Context) error {
	fmt.Printf("[%s] - CreateOutreachEligibility hit!\n", time.Now())
	return handleEligibilityMutation(c, "POST")
}

func UpdateOutreachEligibility(c echo.Context) error {
	fmt.Printf("[%s] - UpdateOutreachEligibility hit!\n", time.Now())
	return handleEligibilityMutation(c, "PUT")
}

func handleEligibilityMutation(c echo.Context, method string) error {
	gc := c.(*contexts.GenomicContext)

	for key := range c.QueryParams() {
		if !utils.StringInSlice(key, acceptedMutationParams) {
			return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest(fmt.Sprintf(
				"GenomicOutreachV2 %s accepted data/params: informing_loop_eligible | eligibility_date_utc | participant_id", method)))
		}
	}

	payload := map[string]interface{}{}
	if bindErr := c.Bind(&payload); bindErr != nil || len(payload) == 0 {
		return c.JSON(http.StatusBadRequest,
			errors.CreateSimpleBadRequest(fmt.Sprintf("Missing request data/params in %s", method)))
	}

	for key := range payload {
		if !utils.StringInSlice(key, acceptedMutationParams) {
			return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest(fmt.Sprintf(
				"GenomicOutreachV2 %s accepted data/params: informing_loop_eligible | eligibility_date_utc | participant_id", method)))
		}
	}

	// the participant can ride on the path, the query string or
	// the payload
	participantId := c.Param("participantId")
	if participantId == "" {
		participantId = c.QueryParam("participant_id")
	}
	if participantId == "" {
		if rawParticipantId, found := payload["participant_id"].(string); found {
			participantId = rawParticipantId
		}
	}
	if participantId == "" {
		return c.JSON(http.StatusBadRequest,
			errors.CreateSimpleBadRequest(fmt.Sprintf("Missing request data/params in %s", method)))
	}

	eligible, eligibleFound := parseEligibleValue(payload["informing_loop_eligible"])
	if !eligibleFound {
		return c.JSON(http.StatusBadRequest,
			errors.CreateSimpleBadRequest(fmt.Sprintf("Missing request data/params in %s", method)))
	}

	var eligibilityDate time.Time
	if rawDate, found := payload["eligibility_date_utc"].(string); found && rawDate != "" {
		parsedDate, parseErr := parseDate(rawDate)
		if parseErr != nil {
			return c.JSON(http.StatusBadRequest,
				errors.CreateSimpleBadRequest(fmt.Sprintf("Invalid date '%s' provided in %s", rawDate, method)))
		}
		eligibilityDate = parsedDate
	}

	var mutationErr error
	if method == "POST" {
		mutationErr = gc.OutreachService.CreateEligibility(participantId, eligible, eligibilityDate)
	} else {
		mutationErr = gc.OutreachService.UpdateEligibility(participantId, eligible, eligibilityDate)
	}
	if mutationErr != nil {
		return outreachErrorResponse(c, mutationErr)
	}

	// echo back the participant's current feed ; a participant made
	// ineligible legitimately has nothing to report
	response, statusErr := gc.OutreachService.Status(&outreachService.Query{ParticipantId: participantId})
	if statusErr != nil {
		if _, isNotFound := statusErr.(*outreachService.NotFoundError); isNotFound {
			return c.JSON(http.StatusOK, &dtos.OutreachResponse{
				Data:      []dtos.OutreachEntry{},
				Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05"),
			})
		}
		return outreachErrorResponse(c, statusErr)
	}

	return c.JSON(http.StatusOK, response)
}

func outreachErrorResponse(c echo.Context, err error) error {
	switch err.(type) {
	case *outreachService.NotFoundError:
		return c.JSON(http.StatusNotFound, errors.CreateSimpleNotFound(err.Error()))
	case *outreachService.InvalidRequestError:
		return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest(err.Error()))
	default:
		fmt.Printf("Outreach lookup failed: %s\n", err)
		return c.JSON(http.StatusInternalServerError, errors.CreateSimpleInternalServerError("Something went wrong. Please contact the administrator!"))
	}
}

func parseDate(rawDate string) (time.Time, error) {
	for _, layout := range acceptedDateLayouts {
		if parsedDate, parseErr := time.Parse(layout, rawDate); parseErr == nil {
			return parsedDate, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date '%s'", rawDate)
}

func parseEligibleValue(rawValue interface{}) (bool, bool) {
	switch value := rawValue.(type) {
	case bool:
		return value, true
	case string:
		switch value {
		case "yes", "true", "1", "True":
			return true, true
		case "no", "false", "0", "False":
			return false, true
		}
	case float64:
		return value != 0, true
	}
	return false, false
}
