package elasticsearch

import (
	"fmt"
	"time"

	"genoflow/api/models"
	"genoflow/api/models/indexes"

	es7 "github.com/elastic/go-elasticsearch/v7"
)

const (
	samplesIndex      = "samples"
	participantsIndex = "participants"

	// per-participant fan-out is tiny (one row per genome type) ;
	// range scans cap at the ES result window
	participantQuerySize = 100
	rangeQuerySize       = 10000
)

func GetSamplesByParticipant(cfg *models.Config, es *es7.Client, participantId string) ([]indexes.SampleRecord, error) {

	// begin building the request body.
	mustMap := []map[string]interface{}{{
		"match": map[string]interface{}{
			"participantId": map[string]interface{}{
				"query": participantId,
			},
		}},
	}

	result, searchErr := executeSearch(cfg, es, samplesIndex, filteredBoolQuery(mustMap, participantQuerySize))
	if searchErr != nil {
		return nil, searchErr
	}

	samples := make([]indexes.SampleRecord, 0)
	for _, source := range hitSources(result) {
		var sample indexes.SampleRecord
		if decodeErr := decodeSource(source, &sample); decodeErr != nil {
			fmt.Printf("Error decoding sample record: %s\n", decodeErr)
			continue
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

// GetSamplesReadyFlaggedInRange returns sample rows whose ready
// flag was modified inside [startDate, endDate)
func GetSamplesReadyFlaggedInRange(cfg *models.Config, es *es7.Client, startDate time.Time, endDate time.Time) ([]indexes.SampleRecord, error) {

	mustMap := []map[string]interface{}{{
		"range": map[string]interface{}{
			"informingLoopReadyFlagModifiedTime": map[string]interface{}{
				"gte": startDate.Format(time.RFC3339),
				"lt":  endDate.Format(time.RFC3339),
			},
		}},
	}

	result, searchErr := executeSearch(cfg, es, samplesIndex, filteredBoolQuery(mustMap, rangeQuerySize))
	if searchErr != nil {
		return nil, searchErr
	}

	samples := make([]indexes.SampleRecord, 0)
	for _, source := range hitSources(result) {
		var sample indexes.SampleRecord
		if decodeErr := decodeSource(source, &sample); decodeErr != nil {
			fmt.Printf("Error decoding sample record: %s\n", decodeErr)
			continue
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

// UpsertSampleRecord writes the row under its deterministic
// '<participantId>_<genomeType>' document id, replacing any
// previous version atomically
func UpsertSampleRecord(cfg *models.Config, es *es7.Client, sample *indexes.SampleRecord) error {
	if sample.Id == "" {
		sample.Id = fmt.Sprintf("%s_%s", sample.ParticipantId, sample.GenomeType)
	}
	return indexDocument(cfg, es, samplesIndex, sample.Id, sample)
}

// UpdateSampleFieldByIds applies one field update to each of the
// given sample document ids
func UpdateSampleFieldByIds(cfg *models.Config, es *es7.Client, memberIds []string, field string, value interface{}) error {
	for _, memberId := range memberIds {
		if updateErr := updateDocument(cfg, es, samplesIndex, memberId, map[string]interface{}{
			field: value,
		}); updateErr != nil {
			return updateErr
		}
	}
	return nil
}

func ParticipantExistsById(cfg *models.Config, es *es7.Client, participantId string) (bool, error) {

	mustMap := []map[string]interface{}{{
		"match": map[string]interface{}{
			"participantId": map[string]interface{}{
				"query": participantId,
			},
		}},
	}

	query := filteredBoolQuery(mustMap, 0)

	result, searchErr := executeSearch(cfg, es, participantsIndex, query)
	if searchErr != nil {
		return false, searchErr
	}

	return totalHits(result) > 0, nil
}
