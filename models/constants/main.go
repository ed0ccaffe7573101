package constants

/*
	Defines a set of base level
	constants and enums to be used
	throughout Genoflow and it's
	associated services.
*/
type Module string
type GenomeType string
type QcStatus string
type WorkflowState string
type ReportState string
type Decision string
type EventType string
type FileType string
type GenomicJob string
type StatusType string
