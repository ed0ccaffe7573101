package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"genoflow/api/models"
	"genoflow/api/models/constants"
	eventType "genoflow/api/models/constants/event-type"
	"genoflow/api/models/dtos"
	"genoflow/api/models/indexes"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esutil"
	"github.com/google/uuid"
)

const (
	informingLoopEventsIndex = "informing-loop-events"
	resultViewedIndex        = "result-viewed"

	eventFlushInterval = time.Second
)

type (
	// BrokerEventRecord is the payload the message broker holds
	// for one message record id
	BrokerEventRecord struct {
		MessageRecordId   int64
		ParticipantId     string
		Module            constants.Module
		EventType         constants.EventType
		DecisionValue     constants.Decision
		EventAuthoredTime time.Time
	}

	// BrokerClient resolves a message record id to its event
	// payload ; production talks HTTP to the broker, tests
	// substitute a literal map
	BrokerClient interface {
		FetchEventRecord(messageRecordId int64) (*BrokerEventRecord, error)
	}

	// ViewedReader supplies existing result-viewed rows so repeat
	// views keep their original firstViewed stamp
	ViewedReader interface {
		ResultViewedByParticipant(participantId string) ([]indexes.ResultViewedEvent, error)
	}

	queuedEvent struct {
		Index      string
		DocumentId string
		Document   interface{}
		WaitGroup  *sync.WaitGroup
	}

	EventIngestionService struct {
		Initialized bool

		EventIndexingCapacity int
		EventIndexingQueue    chan *queuedEvent
		EventBulkIndexer      esutil.BulkIndexer
		ElasticsearchClient   *elasticsearch.Client

		Broker BrokerClient
		Viewed ViewedReader
	}
)

func NewEventIngestionService(es *elasticsearch.Client, cfg *models.Config, broker BrokerClient, viewed ViewedReader) *EventIngestionService {

	capacity := cfg.Ingestions.EventIndexingCapacity
	if capacity <= 0 {
		capacity = 100
	}

	ez := &EventIngestionService{
		Initialized:           false,
		EventIndexingCapacity: capacity,
		EventIndexingQueue:    make(chan *queuedEvent, capacity),
		ElasticsearchClient:   es,
		Broker:                broker,
		Viewed:                viewed,
	}

	var numWorkers = capacity / 100
	if numWorkers < 1 {
		numWorkers = 1
	}

	bi, _ := esutil.NewBulkIndexer(bulkIndexerConfig(ez.ElasticsearchClient, numWorkers))
	ez.EventBulkIndexer = bi

	ez.Init()

	return ez
}

// ingestion calls block until their documents flush, so the short
// interval bounds the task-endpoint response time
func bulkIndexerConfig(es *elasticsearch.Client, numWorkers int) esutil.BulkIndexerConfig {
	return esutil.BulkIndexerConfig{
		Client:        es,
		NumWorkers:    numWorkers,
		FlushInterval: eventFlushInterval,
	}
}

func (e *EventIngestionService) Init() {
	// safeguard to prevent multiple initilizations
	if !e.Initialized {
		// spin up a go routine acting as a listener for
		// queued event documents awaiting bulk indexing
		go func() {
			for queuedItem := range e.EventIndexingQueue {

				wg := queuedItem.WaitGroup

				eventData, marshallErr := json.Marshal(queuedItem.Document)
				if marshallErr != nil {
					fmt.Printf("Cannot encode event document for index %s: %s\n", queuedItem.Index, marshallErr)
					wg.Done()
					continue
				}

				marshallErr = e.EventBulkIndexer.Add(
					context.Background(),
					esutil.BulkIndexerItem{
						Action:     "index",
						Index:      queuedItem.Index,
						DocumentID: queuedItem.DocumentId,

						Body: bytes.NewReader(eventData),

						OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
							defer wg.Done()
						},

						OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
							defer wg.Done()
							if err != nil {
								fmt.Printf("ERROR: %s", err)
							} else {
								fmt.Printf("ERROR: %s: %s", res.Error.Type, res.Error.Reason)
							}
						},
					},
				)
				if marshallErr != nil {
					fmt.Printf("Unexpected error: %s", marshallErr)
					wg.Done()
				}
			}
		}()

		e.Initialized = true
	}
}

/*
	IngestFromMessageBroker resolves the message record against the
	broker and appends the corresponding event document. Unknown
	event types and unresolvable records are absorbed : the caller
	only learns success=false, never an error, as the task boundary
	promises acceptance semantics only.
*/
func (e *EventIngestionService) IngestFromMessageBroker(messageRecordId int64, rawEventType string) *dtos.TaskResponse {

	evtType := eventType.CastToEventType(rawEventType)
	if messageRecordId == 0 || evtType == eventType.Unknown {
		return &dtos.TaskResponse{Success: false}
	}

	record, fetchErr := e.Broker.FetchEventRecord(messageRecordId)
	if fetchErr != nil {
		fmt.Printf("Message broker fetch for record %d failed: %s\n", messageRecordId, fetchErr)
		return &dtos.TaskResponse{Success: false}
	}
	if record == nil {
		return &dtos.TaskResponse{Success: false}
	}

	var wg sync.WaitGroup
	wg.Add(1)

	switch evtType {
	case eventType.InformingLoopDecision, eventType.InformingLoopStarted:
		e.EventIndexingQueue <- &queuedEvent{
			Index: informingLoopEventsIndex,
			Document: &indexes.InformingLoopEvent{
				Id:                uuid.New().String(),
				ParticipantId:     record.ParticipantId,
				Module:            record.Module,
				EventType:         evtType,
				DecisionValue:     record.DecisionValue,
				MessageRecordId:   messageRecordId,
				EventAuthoredTime: record.EventAuthoredTime,
			},
			WaitGroup: &wg,
		}

	case eventType.ResultViewed:
		viewedDoc := &indexes.ResultViewedEvent{
			Id:              fmt.Sprintf("%s_%s", record.ParticipantId, record.Module),
			ParticipantId:   record.ParticipantId,
			Module:          record.Module,
			MessageRecordId: messageRecordId,
			FirstViewed:     record.EventAuthoredTime,
			LastViewed:      record.EventAuthoredTime,
		}

		// repeat views keep the original firstViewed stamp
		existingRows, readErr := e.Viewed.ResultViewedByParticipant(record.ParticipantId)
		if readErr == nil {
			for i := range existingRows {
				if existingRows[i].Module == record.Module && !existingRows[i].FirstViewed.IsZero() {
					viewedDoc.FirstViewed = existingRows[i].FirstViewed
					break
				}
			}
		}

		e.EventIndexingQueue <- &queuedEvent{
			Index:      resultViewedIndex,
			DocumentId: viewedDoc.Id,
			Document:   viewedDoc,
			WaitGroup:  &wg,
		}
	}

	wg.Wait()

	return &dtos.TaskResponse{Success: true}
}
