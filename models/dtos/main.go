package dtos

import (
	"genoflow/api/models/constants"
)

// OutreachEntry is one participant-facing status record ;
// Decision is only set on informingLoop entries and Viewed
// only on result entries
type OutreachEntry struct {
	Module        constants.Module     `json:"module"`
	Type          constants.StatusType `json:"type"`
	Status        string               `json:"status"`
	Decision      string               `json:"decision,omitempty"`
	Viewed        string               `json:"viewed,omitempty"`
	ParticipantId string               `json:"participant_id"`
}

type OutreachResponse struct {
	Data      []OutreachEntry `json:"data"`
	Timestamp string          `json:"timestamp"`
}

// TaskResponse is the uniform acceptance envelope of the
// task-dispatch boundary
type TaskResponse struct {
	Success bool `json:"success"`
}

// -- task request bodies

type ManifestTaskRequest struct {
	// FilePath is either a single string or a list of strings
	FilePath   interface{} `json:"file_path"`
	BucketName string      `json:"bucket_name"`
	UploadDate string      `json:"upload_date"`
	FileType   string      `json:"file_type"`

	// optional cloud-function bookkeeping fields, recorded verbatim
	// on the audit row
	Topic        string      `json:"topic"`
	Task         string      `json:"task"`
	ApiRoute     string      `json:"api_route"`
	EventPayload interface{} `json:"event_payload"`
}

type MessageBrokerTaskRequest struct {
	MessageRecordId int64  `json:"message_record_id"`
	EventType       string `json:"event_type"`
}

type MemberUpdateTaskRequest struct {
	// member ids arrive as integers from the task queue and as
	// document-id strings from internal callers
	MemberIds []interface{} `json:"member_ids"`
	Field     string        `json:"field"`
	Value     interface{}   `json:"value"`
}
