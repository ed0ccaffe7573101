package indexes

import (
	"time"

	"genoflow/api/models/constants"
)

// SampleRecord is the registry document kept per
// participant x genome-type (index: 'samples')
type SampleRecord struct {
	Id            string               `json:"id" mapstructure:"id"`
	ParticipantId string               `json:"participantId" mapstructure:"participantId"`
	GenomeType    constants.GenomeType `json:"genomeType" mapstructure:"genomeType"`

	WorkflowState             constants.WorkflowState `json:"workflowState" mapstructure:"workflowState"`
	WorkflowStateModifiedTime time.Time               `json:"workflowStateModifiedTime" mapstructure:"workflowStateModifiedTime"`

	QcStatus               constants.QcStatus `json:"qcStatus" mapstructure:"qcStatus"`
	SexConcordance         string             `json:"sexConcordance" mapstructure:"sexConcordance"`
	DrcFpConcordance       string             `json:"drcFpConcordance" mapstructure:"drcFpConcordance"`
	DrcSexConcordance      string             `json:"drcSexConcordance" mapstructure:"drcSexConcordance"`
	ProcessingStatus       string             `json:"processingStatus" mapstructure:"processingStatus"`
	GcManifestSampleSource string             `json:"gcManifestSampleSource" mapstructure:"gcManifestSampleSource"`

	InformingLoopReadyFlag             bool      `json:"informingLoopReadyFlag" mapstructure:"informingLoopReadyFlag"`
	InformingLoopReadyFlagModifiedTime time.Time `json:"informingLoopReadyFlagModifiedTime" mapstructure:"informingLoopReadyFlagModifiedTime"`

	CreatedAt time.Time `json:"createdAt" mapstructure:"createdAt"`
}

// InformingLoopEvent is an append-only participant decision/started
// event (index: 'informing-loop-events')
type InformingLoopEvent struct {
	Id                string              `json:"id" mapstructure:"id"`
	ParticipantId     string              `json:"participantId" mapstructure:"participantId"`
	Module            constants.Module    `json:"module" mapstructure:"module"`
	EventType         constants.EventType `json:"eventType" mapstructure:"eventType"`
	DecisionValue     constants.Decision  `json:"decisionValue" mapstructure:"decisionValue"`
	MessageRecordId   int64               `json:"messageRecordId" mapstructure:"messageRecordId"`
	EventAuthoredTime time.Time           `json:"eventAuthoredTime" mapstructure:"eventAuthoredTime"`
}

// ReportStateEvent holds the single current report-delivery state
// per participant x module (index: 'report-states', upserted)
type ReportStateEvent struct {
	Id                 string           `json:"id" mapstructure:"id"`
	ParticipantId      string           `json:"participantId" mapstructure:"participantId"`
	Module             constants.Module `json:"module" mapstructure:"module"`
	GenomicReportState string           `json:"genomicReportState" mapstructure:"genomicReportState"`
	GenomicSetMemberId string           `json:"genomicSetMemberId" mapstructure:"genomicSetMemberId"`
	ModifiedTime       time.Time        `json:"modifiedTime" mapstructure:"modifiedTime"`
}

// ResultViewedEvent marks that a participant has viewed a module's
// result (index: 'result-viewed') ; presence of a row => viewed
type ResultViewedEvent struct {
	Id              string           `json:"id" mapstructure:"id"`
	ParticipantId   string           `json:"participantId" mapstructure:"participantId"`
	Module          constants.Module `json:"module" mapstructure:"module"`
	MessageRecordId int64            `json:"messageRecordId" mapstructure:"messageRecordId"`
	FirstViewed     time.Time        `json:"firstViewed" mapstructure:"firstViewed"`
	LastViewed      time.Time        `json:"lastViewed" mapstructure:"lastViewed"`
}

// ParticipantSummary mirrors the upstream participant registry
// rows this service consumes (index: 'participants')
type ParticipantSummary struct {
	ParticipantId string    `json:"participantId" mapstructure:"participantId"`
	CreatedAt     time.Time `json:"createdAt" mapstructure:"createdAt"`
}

// ManifestFile describes one inbound manifest handed to the
// processing pipeline
type ManifestFile struct {
	FilePath   string             `json:"filePath" mapstructure:"filePath"`
	BucketName string             `json:"bucketName" mapstructure:"bucketName"`
	FileType   constants.FileType `json:"fileType" mapstructure:"fileType"`
	Subfolder  string             `json:"subfolder" mapstructure:"subfolder"`
	UploadDate time.Time          `json:"uploadDate" mapstructure:"uploadDate"`
}

// CloudRequest is the audit row written for every dispatch call,
// enabled or not (index: 'cloud-requests')
type CloudRequest struct {
	Id           string    `json:"id" mapstructure:"id"`
	ApiRoute     string    `json:"apiRoute" mapstructure:"apiRoute"`
	BucketName   string    `json:"bucketName" mapstructure:"bucketName"`
	Topic        string    `json:"topic" mapstructure:"topic"`
	Task         string    `json:"task" mapstructure:"task"`
	FilePath     string    `json:"filePath" mapstructure:"filePath"`
	EventPayload string    `json:"eventPayload" mapstructure:"eventPayload"`
	UploadDate   time.Time `json:"uploadDate" mapstructure:"uploadDate"`
	CreatedAt    time.Time `json:"createdAt" mapstructure:"createdAt"`
}

// DataFile is a raw genomic data file reference recorded by the
// data-file batching task (index: 'data-files')
type DataFile struct {
	Id         string    `json:"id" mapstructure:"id"`
	FilePath   string    `json:"filePath" mapstructure:"filePath"`
	BucketName string    `json:"bucketName" mapstructure:"bucketName"`
	CreatedAt  time.Time `json:"createdAt" mapstructure:"createdAt"`
}
