package ingest

import (
	"github.com/google/uuid"
)

type State string

const (
	Queued     State = "Queued"
	Dispatched State = "Dispatched"
	Skipped    State = "Skipped"
	Error      State = "Error"
)

// JobRun tracks one manifest path through the dispatcher ;
// one run per path per dispatch attempt
type JobRun struct {
	RunId     uuid.UUID `json:"runId"`
	Job       string    `json:"job"`
	FilePath  string    `json:"filePath"`
	State     State     `json:"state"`
	Message   string    `json:"message"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

type JobRunResponseDTO struct {
	RunId    uuid.UUID `json:"runId"`
	Job      string    `json:"job"`
	FilePath string    `json:"filePath"`
	State    State     `json:"state"`
	Message  string    `json:"message"`
}
