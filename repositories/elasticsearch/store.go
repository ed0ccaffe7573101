package elasticsearch

import (
	"time"

	"genoflow/api/models"
	"genoflow/api/models/indexes"
	"genoflow/api/models/ingest"

	es7 "github.com/elastic/go-elasticsearch/v7"
)

// EsStore binds the per-index query builders into the store
// surfaces the services are constructed against
type EsStore struct {
	Config *models.Config
	Client *es7.Client
}

func NewEsStore(cfg *models.Config, es *es7.Client) *EsStore {
	return &EsStore{
		Config: cfg,
		Client: es,
	}
}

// -- aggregation reads

func (s *EsStore) ParticipantExists(participantId string) (bool, error) {
	return ParticipantExistsById(s.Config, s.Client, participantId)
}

func (s *EsStore) SamplesByParticipant(participantId string) ([]indexes.SampleRecord, error) {
	return GetSamplesByParticipant(s.Config, s.Client, participantId)
}

func (s *EsStore) SamplesReadyFlaggedInRange(startDate time.Time, endDate time.Time) ([]indexes.SampleRecord, error) {
	return GetSamplesReadyFlaggedInRange(s.Config, s.Client, startDate, endDate)
}

func (s *EsStore) DecisionEventsByParticipant(participantId string) ([]indexes.InformingLoopEvent, error) {
	return GetInformingLoopEventsByParticipant(s.Config, s.Client, participantId)
}

func (s *EsStore) DecisionEventsInRange(startDate time.Time, endDate time.Time) ([]indexes.InformingLoopEvent, error) {
	return GetDecisionEventsInRange(s.Config, s.Client, startDate, endDate)
}

func (s *EsStore) ReportStatesByParticipant(participantId string) ([]indexes.ReportStateEvent, error) {
	return GetReportStatesByParticipant(s.Config, s.Client, participantId)
}

func (s *EsStore) ReportStatesInRange(startDate time.Time, endDate time.Time) ([]indexes.ReportStateEvent, error) {
	return GetReportStatesInRange(s.Config, s.Client, startDate, endDate)
}

func (s *EsStore) ResultViewedByParticipant(participantId string) ([]indexes.ResultViewedEvent, error) {
	return GetResultViewedByParticipant(s.Config, s.Client, participantId)
}

// -- registry writes

func (s *EsStore) UpsertSample(sample *indexes.SampleRecord) error {
	return UpsertSampleRecord(s.Config, s.Client, sample)
}

func (s *EsStore) UpdateSampleFields(memberIds []string, field string, value interface{}) error {
	return UpdateSampleFieldByIds(s.Config, s.Client, memberIds, field, value)
}

func (s *EsStore) UpsertReportState(state *indexes.ReportStateEvent) error {
	return UpsertReportState(s.Config, s.Client, state)
}

// -- dispatch audit trail

func (s *EsStore) RecordCloudRequest(request *indexes.CloudRequest) error {
	return IndexCloudRequest(s.Config, s.Client, request)
}

func (s *EsStore) RecordJobRun(run *ingest.JobRun) error {
	return IndexJobRun(s.Config, s.Client, run)
}

func (s *EsStore) RecordDataFile(dataFile *indexes.DataFile) error {
	return IndexDataFile(s.Config, s.Client, dataFile)
}
