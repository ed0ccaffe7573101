package elasticsearch

import (
	"fmt"
	"time"

	"genoflow/api/models"
	eventType "genoflow/api/models/constants/event-type"
	"genoflow/api/models/indexes"

	es7 "github.com/elastic/go-elasticsearch/v7"
)

const (
	informingLoopEventsIndex = "informing-loop-events"
	reportStatesIndex        = "report-states"
	resultViewedIndex        = "result-viewed"
)

func GetInformingLoopEventsByParticipant(cfg *models.Config, es *es7.Client, participantId string) ([]indexes.InformingLoopEvent, error) {

	mustMap := []map[string]interface{}{{
		"match": map[string]interface{}{
			"participantId": map[string]interface{}{
				"query": participantId,
			},
		}},
	}

	result, searchErr := executeSearch(cfg, es, informingLoopEventsIndex, filteredBoolQuery(mustMap, rangeQuerySize))
	if searchErr != nil {
		return nil, searchErr
	}

	return decodeInformingLoopEvents(result), nil
}

// GetDecisionEventsInRange returns decision events authored inside
// [startDate, endDate) ; "started" events are not range-relevant
func GetDecisionEventsInRange(cfg *models.Config, es *es7.Client, startDate time.Time, endDate time.Time) ([]indexes.InformingLoopEvent, error) {

	mustMap := []map[string]interface{}{
		{
			"match": map[string]interface{}{
				"eventType": map[string]interface{}{
					"query": eventType.InformingLoopDecision,
				},
			},
		},
		{
			"range": map[string]interface{}{
				"eventAuthoredTime": map[string]interface{}{
					"gte": startDate.Format(time.RFC3339),
					"lt":  endDate.Format(time.RFC3339),
				},
			},
		},
	}

	result, searchErr := executeSearch(cfg, es, informingLoopEventsIndex, filteredBoolQuery(mustMap, rangeQuerySize))
	if searchErr != nil {
		return nil, searchErr
	}

	return decodeInformingLoopEvents(result), nil
}

func decodeInformingLoopEvents(result map[string]interface{}) []indexes.InformingLoopEvent {
	events := make([]indexes.InformingLoopEvent, 0)
	for _, source := range hitSources(result) {
		var event indexes.InformingLoopEvent
		if decodeErr := decodeSource(source, &event); decodeErr != nil {
			fmt.Printf("Error decoding informing loop event: %s\n", decodeErr)
			continue
		}
		events = append(events, event)
	}
	return events
}

func GetReportStatesByParticipant(cfg *models.Config, es *es7.Client, participantId string) ([]indexes.ReportStateEvent, error) {

	mustMap := []map[string]interface{}{{
		"match": map[string]interface{}{
			"participantId": map[string]interface{}{
				"query": participantId,
			},
		}},
	}

	result, searchErr := executeSearch(cfg, es, reportStatesIndex, filteredBoolQuery(mustMap, participantQuerySize))
	if searchErr != nil {
		return nil, searchErr
	}

	return decodeReportStates(result), nil
}

func GetReportStatesInRange(cfg *models.Config, es *es7.Client, startDate time.Time, endDate time.Time) ([]indexes.ReportStateEvent, error) {

	mustMap := []map[string]interface{}{{
		"range": map[string]interface{}{
			"modifiedTime": map[string]interface{}{
				"gte": startDate.Format(time.RFC3339),
				"lt":  endDate.Format(time.RFC3339),
			},
		}},
	}

	result, searchErr := executeSearch(cfg, es, reportStatesIndex, filteredBoolQuery(mustMap, rangeQuerySize))
	if searchErr != nil {
		return nil, searchErr
	}

	return decodeReportStates(result), nil
}

func decodeReportStates(result map[string]interface{}) []indexes.ReportStateEvent {
	states := make([]indexes.ReportStateEvent, 0)
	for _, source := range hitSources(result) {
		var state indexes.ReportStateEvent
		if decodeErr := decodeSource(source, &state); decodeErr != nil {
			fmt.Printf("Error decoding report state: %s\n", decodeErr)
			continue
		}
		states = append(states, state)
	}
	return states
}

// UpsertReportState keeps at most one row per participant x module
// under the deterministic '<participantId>_<module>' document id
func UpsertReportState(cfg *models.Config, es *es7.Client, state *indexes.ReportStateEvent) error {
	if state.Id == "" {
		state.Id = fmt.Sprintf("%s_%s", state.ParticipantId, state.Module)
	}
	return indexDocument(cfg, es, reportStatesIndex, state.Id, state)
}

func GetResultViewedByParticipant(cfg *models.Config, es *es7.Client, participantId string) ([]indexes.ResultViewedEvent, error) {

	mustMap := []map[string]interface{}{{
		"match": map[string]interface{}{
			"participantId": map[string]interface{}{
				"query": participantId,
			},
		}},
	}

	result, searchErr := executeSearch(cfg, es, resultViewedIndex, filteredBoolQuery(mustMap, participantQuerySize))
	if searchErr != nil {
		return nil, searchErr
	}

	viewed := make([]indexes.ResultViewedEvent, 0)
	for _, source := range hitSources(result) {
		var row indexes.ResultViewedEvent
		if decodeErr := decodeSource(source, &row); decodeErr != nil {
			fmt.Printf("Error decoding result viewed row: %s\n", decodeErr)
			continue
		}
		viewed = append(viewed, row)
	}

	return viewed, nil
}
