package events

import (
	"crypto/tls"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"genoflow/api/models"
	decision "genoflow/api/models/constants/decision"
	eventType "genoflow/api/models/constants/event-type"
	"genoflow/api/models/constants/module"

	"github.com/Jeffail/gabs"
)

// HttpBrokerClient is the production BrokerClient : it resolves
// message record ids against the message-broker service
type HttpBrokerClient struct {
	Config *models.Config
}

func NewHttpBrokerClient(cfg *models.Config) *HttpBrokerClient {
	return &HttpBrokerClient{Config: cfg}
}

func (b *HttpBrokerClient) FetchEventRecord(messageRecordId int64) (*BrokerEventRecord, error) {

	if b.Config.Debug {
		http.DefaultTransport.(*http.Transport).TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	var (
		brokerResp      *http.Response
		brokerErr       error
		attemptCount    int = 0
		maxAttempts     int = 3
		waitTimeSeconds int = 2
	)
	for {
		r, _ := http.NewRequest("GET",
			fmt.Sprintf("%s/records/%d", b.Config.MessageBroker.Url, messageRecordId), nil)

		r.SetBasicAuth(b.Config.MessageBroker.Username, b.Config.MessageBroker.Password)

		client := &http.Client{}

		brokerResp, brokerErr = client.Do(r)
		if brokerErr != nil {
			fmt.Printf("Message broker fetch error: %s\n", brokerErr)

			if attemptCount < maxAttempts {
				attemptCount++

				time.Sleep(time.Duration(waitTimeSeconds * int(time.Second)))

				fmt.Printf("trying again...\n")
				continue
			}
			return nil, brokerErr
		}
		break
	}
	defer brokerResp.Body.Close()

	if brokerResp.StatusCode == 404 {
		// unknown record ; absorbed by the caller
		return nil, nil
	}
	if brokerResp.StatusCode != 200 {
		return nil, fmt.Errorf("message broker returned status %d for record %d", brokerResp.StatusCode, messageRecordId)
	}

	responseBody, bodyErr := ioutil.ReadAll(brokerResp.Body)
	if bodyErr != nil {
		return nil, bodyErr
	}

	jsonParsed, parseErr := gabs.ParseJSON(responseBody)
	if parseErr != nil {
		return nil, parseErr
	}

	record := &BrokerEventRecord{MessageRecordId: messageRecordId}

	if participantId, ok := jsonParsed.Path("participant_id").Data().(string); ok {
		record.ParticipantId = participantId
	}
	if rawModule, ok := jsonParsed.Path("module_type").Data().(string); ok {
		record.Module = module.CastToModule(rawModule)
	}
	if rawEventType, ok := jsonParsed.Path("event_type").Data().(string); ok {
		record.EventType = eventType.CastToEventType(rawEventType)
	}
	if rawDecision, ok := jsonParsed.Path("decision_value").Data().(string); ok {
		record.DecisionValue = decision.CastToDecision(rawDecision)
	}
	if rawAuthored, ok := jsonParsed.Path("event_authored_time").Data().(string); ok {
		if authoredTime, timeErr := time.Parse(time.RFC3339, rawAuthored); timeErr == nil {
			record.EventAuthoredTime = authoredTime
		}
	}

	return record, nil
}
