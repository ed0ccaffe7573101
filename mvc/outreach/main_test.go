package outreach

import (
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"net/http"
	"net/http/httptest"

	"genoflow/api/contexts"
	gam "genoflow/api/middleware"
	genomeType "genoflow/api/models/constants/genome-type"
	qcStatus "genoflow/api/models/constants/qc-status"
	"genoflow/api/models/indexes"
	outreachService "genoflow/api/services/outreach"
	"genoflow/api/tests/common"

	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
)

type stubStore struct {
	participants map[string]bool
	samples      []indexes.SampleRecord
	events       []indexes.InformingLoopEvent
	reportStates []indexes.ReportStateEvent
	resultViewed []indexes.ResultViewedEvent
}

func (s *stubStore) ParticipantExists(participantId string) (bool, error) {
	return s.participants[participantId], nil
}
func (s *stubStore) SamplesByParticipant(participantId string) ([]indexes.SampleRecord, error) {
	matched := make([]indexes.SampleRecord, 0)
	for _, sample := range s.samples {
		if sample.ParticipantId == participantId {
			matched = append(matched, sample)
		}
	}
	return matched, nil
}
func (s *stubStore) SamplesReadyFlaggedInRange(startDate time.Time, endDate time.Time) ([]indexes.SampleRecord, error) {
	return []indexes.SampleRecord{}, nil
}
func (s *stubStore) UpsertSample(sample *indexes.SampleRecord) error {
	for i := range s.samples {
		if s.samples[i].Id == sample.Id {
			s.samples[i] = *sample
			return nil
		}
	}
	s.samples = append(s.samples, *sample)
	return nil
}
func (s *stubStore) DecisionEventsByParticipant(participantId string) ([]indexes.InformingLoopEvent, error) {
	return s.events, nil
}
func (s *stubStore) DecisionEventsInRange(startDate time.Time, endDate time.Time) ([]indexes.InformingLoopEvent, error) {
	return []indexes.InformingLoopEvent{}, nil
}
func (s *stubStore) ReportStatesByParticipant(participantId string) ([]indexes.ReportStateEvent, error) {
	return s.reportStates, nil
}
func (s *stubStore) ReportStatesInRange(startDate time.Time, endDate time.Time) ([]indexes.ReportStateEvent, error) {
	return []indexes.ReportStateEvent{}, nil
}
func (s *stubStore) ResultViewedByParticipant(participantId string) ([]indexes.ResultViewedEvent, error) {
	return s.resultViewed, nil
}

func TestOutreachEndpoints(t *testing.T) {
	cfg := common.InitConfig()

	setUpEcho := func(method string, target string, jsonBody string, store *stubStore) (*contexts.GenomicContext, *httptest.ResponseRecorder) {
		e := echo.New()

		var bodyReader io.Reader
		if jsonBody != "" {
			bodyReader = strings.NewReader(jsonBody)
		}
		req := httptest.NewRequest(method, target, bodyReader)
		if jsonBody != "" {
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		}

		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		gc := &contexts.GenomicContext{
			Context:         c,
			Es7Client:       nil, // todo mockup
			Config:          cfg,
			OutreachService: outreachService.NewAggregationService(store),
		}
		return gc, rec
	}

	getJsonBody := func(rec *httptest.ResponseRecorder) map[string]interface{} {
		// - extract body bytes from response
		body, _ := io.ReadAll(rec.Body)
		// - unmarshal or decode the JSON to a declared empty interface.
		var bodyJson map[string]interface{}
		json.Unmarshal(body, &bodyJson)

		return bodyJson
	}

	validatedGet := gam.ValidateOutreachQueryAttributes(GetOutreachStatus)

	readyStore := func() *stubStore {
		return &stubStore{
			participants: map[string]bool{"123": true},
			samples: []indexes.SampleRecord{{
				Id:                     "123_aou_wgs",
				ParticipantId:          "123",
				GenomeType:             genomeType.Wgs,
				QcStatus:               qcStatus.Pass,
				SexConcordance:         "True",
				DrcFpConcordance:       "Pass",
				DrcSexConcordance:      "Pass",
				ProcessingStatus:       "Pass",
				GcManifestSampleSource: "Whole Blood",
				InformingLoopReadyFlag: true,
			}},
		}
	}

	t.Run("should reject unknown query keys before anything else", func(t *testing.T) {
		gc, rec := setUpEcho(http.MethodGet, "/GenomicOutreachV2?participant_id=P123&bogus_key=1", "", readyStore())

		validatedGet(gc)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t,
			"GenomicOutreachV2 GET accepted params: start_date | end_date | participant_id | module | type",
			getJsonBody(rec)["message"].(string))
	})

	t.Run("should reject unknown modules", func(t *testing.T) {
		gc, rec := setUpEcho(http.MethodGet, "/GenomicOutreachV2?participant_id=P123&module=cancer", "", readyStore())

		validatedGet(gc)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t,
			"GenomicOutreachV2 GET accepted modules: gem | hdr | pgx",
			getJsonBody(rec)["message"].(string))
	})

	t.Run("should reject unknown types", func(t *testing.T) {
		gc, rec := setUpEcho(http.MethodGet, "/GenomicOutreachV2?participant_id=P123&type=outcome", "", readyStore())

		validatedGet(gc)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t,
			"GenomicOutreachV2 GET accepted types: result | informingLoop",
			getJsonBody(rec)["message"].(string))
	})

	t.Run("should require a participant id or a start date", func(t *testing.T) {
		gc, rec := setUpEcho(http.MethodGet, "/GenomicOutreachV2?module=hdr", "", readyStore())

		validatedGet(gc)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t,
			"Participant ID or Start Date is required for GenomicOutreach lookup.",
			getJsonBody(rec)["message"].(string))
	})

	t.Run("should 404 an unknown participant", func(t *testing.T) {
		gc, rec := setUpEcho(http.MethodGet, "/GenomicOutreachV2?participant_id=P999", "", readyStore())

		validatedGet(gc)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t,
			"Participant P999 does not exist in the Genomic system.",
			getJsonBody(rec)["message"].(string))
	})

	t.Run("should return ready informing loop entries", func(t *testing.T) {
		gc, rec := setUpEcho(http.MethodGet, "/GenomicOutreachV2?participant_id=P123", "", readyStore())

		validatedGet(gc)

		assert.Equal(t, http.StatusOK, rec.Code)

		body := getJsonBody(rec)
		assert.NotEmpty(t, body["timestamp"])

		data := body["data"].([]interface{})
		assert.Len(t, data, 2)

		firstEntry := data[0].(map[string]interface{})
		assert.Equal(t, "hdr", firstEntry["module"].(string))
		assert.Equal(t, "informingLoop", firstEntry["type"].(string))
		assert.Equal(t, "ready", firstEntry["status"].(string))
		assert.Equal(t, "P123", firstEntry["participant_id"].(string))
		// ready entries carry no decision key
		_, hasDecision := firstEntry["decision"]
		assert.False(t, hasDecision)
	})

	t.Run("should return an empty 200 list for a quiet date range", func(t *testing.T) {
		gc, rec := setUpEcho(http.MethodGet, "/GenomicOutreachV2?start_date=2022-06-01T00:00:00", "", readyStore())

		validatedGet(gc)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, getJsonBody(rec)["data"].([]interface{}))
	})

	t.Run("should reject unparseable dates", func(t *testing.T) {
		gc, rec := setUpEcho(http.MethodGet, "/GenomicOutreachV2?start_date=junk", "", readyStore())

		validatedGet(gc)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject an empty POST body", func(t *testing.T) {
		gc, rec := setUpEcho(http.MethodPost, "/GenomicOutreachV2", "", readyStore())

		CreateOutreachEligibility(gc)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Missing request data/params in POST", getJsonBody(rec)["message"].(string))
	})

	t.Run("should reject unknown POST keys", func(t *testing.T) {
		gc, rec := setUpEcho(http.MethodPost, "/GenomicOutreachV2",
			`{"participant_id": "P123", "bogus_key": true}`, readyStore())

		CreateOutreachEligibility(gc)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t,
			"GenomicOutreachV2 POST accepted data/params: informing_loop_eligible | eligibility_date_utc | participant_id",
			getJsonBody(rec)["message"].(string))
	})

	t.Run("should 404 eligibility creation for an unknown participant", func(t *testing.T) {
		gc, rec := setUpEcho(http.MethodPost, "/GenomicOutreachV2",
			`{"participant_id": "P999", "informing_loop_eligible": "yes", "eligibility_date_utc": "2022-06-01T00:00:00"}`, readyStore())

		CreateOutreachEligibility(gc)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Participant with id P999 was not found", getJsonBody(rec)["message"].(string))
	})

	t.Run("should reject re-creation over an existing wgs sample", func(t *testing.T) {
		gc, rec := setUpEcho(http.MethodPost, "/GenomicOutreachV2",
			`{"participant_id": "P123", "informing_loop_eligible": "yes", "eligibility_date_utc": "2022-06-01T00:00:00"}`, readyStore())

		CreateOutreachEligibility(gc)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t,
			"Participant with id P123 and WGS sample already exists. Please use PUT to update.",
			getJsonBody(rec)["message"].(string))
	})

	t.Run("should create an eligible sample and echo the ready feed", func(t *testing.T) {
		store := &stubStore{participants: map[string]bool{"123": true}}
		gc, rec := setUpEcho(http.MethodPost, "/GenomicOutreachV2",
			`{"participant_id": "P123", "informing_loop_eligible": "yes", "eligibility_date_utc": "2022-06-01T00:00:00"}`, store)

		CreateOutreachEligibility(gc)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, getJsonBody(rec)["data"].([]interface{}), 2)
	})

	t.Run("should answer an ineligible creation with an empty feed", func(t *testing.T) {
		store := &stubStore{participants: map[string]bool{"123": true}}
		gc, rec := setUpEcho(http.MethodPost, "/GenomicOutreachV2",
			`{"participant_id": "P123", "informing_loop_eligible": "no", "eligibility_date_utc": "2022-06-01T00:00:00"}`, store)

		CreateOutreachEligibility(gc)

		assert.Equal(t, http.StatusOK, rec.Code)

		body := getJsonBody(rec)
		assert.Empty(t, body["data"].([]interface{}))
		assert.NotEmpty(t, body["timestamp"])
	})

	t.Run("should accept the participant as a POST query parameter", func(t *testing.T) {
		store := &stubStore{participants: map[string]bool{"123": true}}
		gc, rec := setUpEcho(http.MethodPost, "/GenomicOutreachV2?participant_id=P123",
			`{"informing_loop_eligible": "yes", "eligibility_date_utc": "2022-06-01T00:00:00"}`, store)

		CreateOutreachEligibility(gc)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, getJsonBody(rec)["data"].([]interface{}), 2)
	})

	t.Run("should reject unknown query args on mutations", func(t *testing.T) {
		gc, rec := setUpEcho(http.MethodPost, "/GenomicOutreachV2?bad_arg=bad",
			`{"participant_id": "P123", "informing_loop_eligible": "yes"}`, readyStore())

		CreateOutreachEligibility(gc)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t,
			"GenomicOutreachV2 POST accepted data/params: informing_loop_eligible | eligibility_date_utc | participant_id",
			getJsonBody(rec)["message"].(string))
	})

	t.Run("should accept the participant as a PUT query parameter", func(t *testing.T) {
		store := readyStore()
		gc, rec := setUpEcho(http.MethodPut, "/GenomicOutreachV2?participant_id=P123",
			`{"informing_loop_eligible": "no"}`, store)

		UpdateOutreachEligibility(gc)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, getJsonBody(rec)["data"].([]interface{}))
		assert.False(t, store.samples[0].InformingLoopReadyFlag)
	})

	t.Run("should toggle eligibility on PUT", func(t *testing.T) {
		store := readyStore()
		gc, rec := setUpEcho(http.MethodPut, "/GenomicOutreachV2/P123",
			`{"informing_loop_eligible": "no"}`, store)
		gc.SetParamNames("participantId")
		gc.SetParamValues("P123")

		UpdateOutreachEligibility(gc)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, getJsonBody(rec)["data"].([]interface{}))
		assert.False(t, store.samples[0].InformingLoopReadyFlag)
	})
}
