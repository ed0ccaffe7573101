package outreach

import (
	"fmt"
	"sort"
	"time"

	"genoflow/api/models/constants"
	genomeType "genoflow/api/models/constants/genome-type"
	"genoflow/api/models/constants/module"
	qcStatus "genoflow/api/models/constants/qc-status"
	reportState "genoflow/api/models/constants/report-state"
	statusType "genoflow/api/models/constants/status-type"
	workflowState "genoflow/api/models/constants/workflow-state"
	"genoflow/api/models/dtos"
	"genoflow/api/models/indexes"
	"genoflow/api/services/decisions"
	"genoflow/api/services/readiness"
	"genoflow/api/services/reports"
	"genoflow/api/utils"

	"golang.org/x/sync/errgroup"
)

const (
	statusCompleted = "completed"
	statusReady     = "ready"

	// outbound timestamps carry second precision, as consumers
	// diff them against their own sync cursors
	timestampLayout = "2006-01-02T15:04:05"
)

type (
	// Store is the persistence surface the aggregator reads from
	// and the eligibility endpoints write to
	Store interface {
		ParticipantExists(participantId string) (bool, error)

		SamplesByParticipant(participantId string) ([]indexes.SampleRecord, error)
		SamplesReadyFlaggedInRange(startDate time.Time, endDate time.Time) ([]indexes.SampleRecord, error)
		UpsertSample(sample *indexes.SampleRecord) error

		DecisionEventsByParticipant(participantId string) ([]indexes.InformingLoopEvent, error)
		DecisionEventsInRange(startDate time.Time, endDate time.Time) ([]indexes.InformingLoopEvent, error)

		ReportStatesByParticipant(participantId string) ([]indexes.ReportStateEvent, error)
		ReportStatesInRange(startDate time.Time, endDate time.Time) ([]indexes.ReportStateEvent, error)

		ResultViewedByParticipant(participantId string) ([]indexes.ResultViewedEvent, error)
	}

	AggregationService struct {
		Initialized bool
		Store       Store
	}

	// Query carries the already-validated filter criteria ;
	// ParticipantId is the bare numeric id without the 'P' prefix
	Query struct {
		ParticipantId string
		StartDate     time.Time
		EndDate       time.Time
		Module        constants.Module
		Type          constants.StatusType
	}

	// window of event attribution for date-range queries ;
	// inclusive start, exclusive end
	window struct {
		start time.Time
		end   time.Time
	}

	// participantRecords is everything the entry builder needs
	// for one participant
	participantRecords struct {
		samples      []indexes.SampleRecord
		events       []indexes.InformingLoopEvent
		reportStates []indexes.ReportStateEvent
		resultViewed []indexes.ResultViewedEvent
	}

	NotFoundError struct {
		Message string
	}
	InvalidRequestError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string {
	return e.Message
}
func (e *InvalidRequestError) Error() string {
	return e.Message
}

func NewAggregationService(store Store) *AggregationService {
	return &AggregationService{
		Initialized: true,
		Store:       store,
	}
}

func (w *window) contains(t time.Time) bool {
	return !t.Before(w.start) && t.Before(w.end)
}

/*
	Status resolves the merged outreach feed for either a single
	participant or a date-range window. An empty result is a 404 for
	a participant lookup and an empty 200 list for a range lookup ;
	a window can legitimately contain nothing.
*/
func (s *AggregationService) Status(query *Query) (*dtos.OutreachResponse, error) {
	var (
		entries []dtos.OutreachEntry
		err     error
	)

	if query.ParticipantId != "" {
		entries, err = s.statusByParticipant(query)
	} else {
		entries, err = s.statusByDateRange(query)
	}
	if err != nil {
		return nil, err
	}

	return &dtos.OutreachResponse{
		Data:      entries,
		Timestamp: time.Now().UTC().Format(timestampLayout),
	}, nil
}

func (s *AggregationService) statusByParticipant(query *Query) ([]dtos.OutreachEntry, error) {
	participantId := utils.StripParticipantPrefix(query.ParticipantId)

	exists, err := s.Store.ParticipantExists(participantId)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &NotFoundError{
			Message: fmt.Sprintf("Participant P%s does not exist in the Genomic system.", participantId),
		}
	}

	records, err := s.fetchParticipantRecords(participantId)
	if err != nil {
		return nil, err
	}

	entries := buildParticipantEntries(participantId, records, nil, query.Module, query.Type)
	if len(entries) == 0 {
		return nil, &NotFoundError{
			Message: fmt.Sprintf("No genomic statuses found for participant P%s.", participantId),
		}
	}

	sortEntries(entries)

	return entries, nil
}

func (s *AggregationService) statusByDateRange(query *Query) ([]dtos.OutreachEntry, error) {
	w := &window{start: query.StartDate, end: query.EndDate}
	if w.end.IsZero() {
		w.end = time.Now().UTC()
	}

	var (
		rangeSamples []indexes.SampleRecord
		rangeEvents  []indexes.InformingLoopEvent
		rangeStates  []indexes.ReportStateEvent
	)

	// the three sources are independently indexed ; query them
	// concurrently and merge the participant sets afterwards
	var g errgroup.Group
	g.Go(func() error {
		var gErr error
		rangeSamples, gErr = s.Store.SamplesReadyFlaggedInRange(w.start, w.end)
		return gErr
	})
	g.Go(func() error {
		var gErr error
		rangeEvents, gErr = s.Store.DecisionEventsInRange(w.start, w.end)
		return gErr
	})
	g.Go(func() error {
		var gErr error
		rangeStates, gErr = s.Store.ReportStatesInRange(w.start, w.end)
		return gErr
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	participantIds := make([]string, 0)
	seen := map[string]bool{}
	appendParticipant := func(participantId string) {
		if participantId != "" && !seen[participantId] {
			seen[participantId] = true
			participantIds = append(participantIds, participantId)
		}
	}
	for i := range rangeSamples {
		appendParticipant(rangeSamples[i].ParticipantId)
	}
	for i := range rangeEvents {
		appendParticipant(rangeEvents[i].ParticipantId)
	}
	for i := range rangeStates {
		appendParticipant(rangeStates[i].ParticipantId)
	}

	entries := make([]dtos.OutreachEntry, 0)
	for _, participantId := range participantIds {
		records, err := s.fetchParticipantRecords(participantId)
		if err != nil {
			return nil, err
		}
		entries = append(entries, buildParticipantEntries(participantId, records, w, query.Module, query.Type)...)
	}

	sortEntries(entries)

	return entries, nil
}

func (s *AggregationService) fetchParticipantRecords(participantId string) (*participantRecords, error) {
	records := &participantRecords{}

	var g errgroup.Group
	g.Go(func() error {
		var gErr error
		records.samples, gErr = s.Store.SamplesByParticipant(participantId)
		return gErr
	})
	g.Go(func() error {
		var gErr error
		records.events, gErr = s.Store.DecisionEventsByParticipant(participantId)
		return gErr
	})
	g.Go(func() error {
		var gErr error
		records.reportStates, gErr = s.Store.ReportStatesByParticipant(participantId)
		return gErr
	})
	g.Go(func() error {
		var gErr error
		records.resultViewed, gErr = s.Store.ResultViewedByParticipant(participantId)
		return gErr
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

/*
	buildParticipantEntries merges the three per-module resolutions
	(current decision, readiness, report state) into entry records.
	A nil window means a plain participant lookup ; with a window,
	each entry is only attributable when the record that produced it
	was modified inside the window. Readiness entries are suppressed
	for any module that already carries a decision or a report state,
	whatever their relative timestamps.
*/
func buildParticipantEntries(
	participantId string, records *participantRecords,
	w *window, moduleFilter constants.Module, typeFilter constants.StatusType) []dtos.OutreachEntry {

	displayId := utils.DisplayParticipantId(participantId)
	entries := make([]dtos.OutreachEntry, 0)

	allModules := []constants.Module{module.Gem, module.Hdr, module.Pgx}

	for _, mod := range allModules {
		if moduleFilter != module.Unknown && mod != moduleFilter {
			continue
		}

		currentDecision := decisions.CurrentDecision(records.events, participantId, mod)
		currentReportState := reports.CurrentReportState(records.reportStates, participantId, mod)

		// -- informing loop
		if typeFilter == statusType.Unknown || typeFilter == statusType.InformingLoop {

			if currentDecision != nil {
				if w == nil || w.contains(currentDecision.EventAuthoredTime) {
					entries = append(entries, dtos.OutreachEntry{
						Module:        mod,
						Type:          statusType.InformingLoop,
						Status:        statusCompleted,
						Decision:      string(currentDecision.DecisionValue),
						ParticipantId: displayId,
					})
				}
			} else if currentReportState == nil {
				// no decision and no report yet ; surface readiness
				for i := range records.samples {
					sample := &records.samples[i]
					if !readiness.IsModuleReady(sample, mod) {
						continue
					}
					if w != nil && !w.contains(sample.InformingLoopReadyFlagModifiedTime) {
						continue
					}
					entries = append(entries, dtos.OutreachEntry{
						Module:        mod,
						Type:          statusType.InformingLoop,
						Status:        statusReady,
						ParticipantId: displayId,
					})
					break
				}
			}
		}

		// -- result
		if typeFilter == statusType.Unknown || typeFilter == statusType.Result {

			if currentReportState != nil && (w == nil || w.contains(currentReportState.ModifiedTime)) {
				resolvedState := reportState.CastFromStoredState(currentReportState.GenomicReportState)
				if resolvedState != reportState.Unset {
					viewed := "no"
					if reports.HasViewed(records.resultViewed, participantId, mod) {
						viewed = "yes"
					}
					entries = append(entries, dtos.OutreachEntry{
						Module:        mod,
						Type:          statusType.Result,
						Status:        string(resolvedState),
						Viewed:        viewed,
						ParticipantId: displayId,
					})
				}
			}
		}
	}

	return entries
}

func sortEntries(entries []dtos.OutreachEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].ParticipantId != entries[j].ParticipantId {
			return entries[i].ParticipantId < entries[j].ParticipantId
		}
		if entries[i].Type != entries[j].Type {
			// informingLoop entries precede result entries
			return entries[i].Type == statusType.InformingLoop
		}
		return entries[i].Module < entries[j].Module
	})
}

/*
	Eligibility mutations backing the POST/PUT surface. POST with
	eligible=true materializes a wgs registry row already carrying
	every readiness gate, so the participant surfaces as "ready" on
	the next lookup ; eligible=false parks the row with the ready
	flag down. PUT toggles the flag on the existing row.
*/
func (s *AggregationService) CreateEligibility(participantId string, eligible bool, eligibilityDate time.Time) error {
	participantId = utils.StripParticipantPrefix(participantId)

	exists, err := s.Store.ParticipantExists(participantId)
	if err != nil {
		return err
	}
	if !exists {
		return &NotFoundError{
			Message: fmt.Sprintf("Participant with id P%s was not found", participantId),
		}
	}

	samples, err := s.Store.SamplesByParticipant(participantId)
	if err != nil {
		return err
	}
	if findWgsSample(samples) != nil {
		return &InvalidRequestError{
			Message: fmt.Sprintf("Participant with id P%s and WGS sample already exists. Please use PUT to update.", participantId),
		}
	}

	if eligibilityDate.IsZero() {
		eligibilityDate = time.Now().UTC()
	}

	sample := &indexes.SampleRecord{
		Id:            fmt.Sprintf("%s_%s", participantId, genomeType.Wgs),
		ParticipantId: participantId,
		GenomeType:    genomeType.Wgs,

		WorkflowState:             workflowState.CvlReady,
		WorkflowStateModifiedTime: eligibilityDate,

		QcStatus:               qcStatus.Pass,
		SexConcordance:         "True",
		DrcFpConcordance:       "Pass",
		DrcSexConcordance:      "Pass",
		ProcessingStatus:       "Pass",
		GcManifestSampleSource: "Whole Blood",

		InformingLoopReadyFlag:             eligible,
		InformingLoopReadyFlagModifiedTime: eligibilityDate,

		CreatedAt: time.Now().UTC(),
	}

	return s.Store.UpsertSample(sample)
}

func (s *AggregationService) UpdateEligibility(participantId string, eligible bool, eligibilityDate time.Time) error {
	participantId = utils.StripParticipantPrefix(participantId)

	exists, err := s.Store.ParticipantExists(participantId)
	if err != nil {
		return err
	}
	if !exists {
		return &NotFoundError{
			Message: fmt.Sprintf("Participant with id P%s was not found", participantId),
		}
	}

	samples, err := s.Store.SamplesByParticipant(participantId)
	if err != nil {
		return err
	}

	sample := findWgsSample(samples)
	if sample == nil {
		return &NotFoundError{
			Message: fmt.Sprintf("Participant with id P%s was not found", participantId),
		}
	}

	if eligibilityDate.IsZero() {
		eligibilityDate = time.Now().UTC()
	}

	sample.InformingLoopReadyFlag = eligible
	sample.InformingLoopReadyFlagModifiedTime = eligibilityDate

	return s.Store.UpsertSample(sample)
}

func findWgsSample(samples []indexes.SampleRecord) *indexes.SampleRecord {
	for i := range samples {
		if samples[i].GenomeType == genomeType.Wgs {
			return &samples[i]
		}
	}
	return nil
}
