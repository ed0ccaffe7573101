package dispatch

import (
	"fmt"
	"strings"
	"time"

	"genoflow/api/models/constants"
	fileType "genoflow/api/models/constants/file-type"
	genomicJob "genoflow/api/models/constants/genomic-job"
	"genoflow/api/models/indexes"
	"genoflow/api/models/ingest"

	"github.com/google/uuid"
)

const (
	subfolderAw4Array = "aw4_array_manifest"
	subfolderAw4Wgs   = "aw4_wgs_manifest"
	subfolderAw5Array = "aw5_array_manifest"
	subfolderAw5Wgs   = "aw5_wgs_manifest"
)

type (
	// Runner invokes the downstream processing pipeline for one
	// manifest path ; production submits an external task, tests
	// substitute a recording fake
	Runner interface {
		Submit(job constants.GenomicJob, manifest *indexes.ManifestFile) error
	}

	// Recorder persists the audit trail of the task boundary
	Recorder interface {
		RecordCloudRequest(request *indexes.CloudRequest) error
		RecordJobRun(run *ingest.JobRun) error
		RecordDataFile(dataFile *indexes.DataFile) error
	}

	// Policy answers per-job enablement at dispatch time
	Policy interface {
		IsJobEnabled(job constants.GenomicJob) bool
	}

	DispatcherService struct {
		Initialized bool

		Runner   Runner
		Recorder Recorder
		Policy   Policy
	}

	// DispatchRequest is one already-parsed task call ; FilePaths
	// carries the normalized batch (a scalar file_path arrives as a
	// one-element slice)
	DispatchRequest struct {
		FilePaths  []string
		BucketName string
		FileType   constants.FileType
		UploadDate time.Time

		ApiRoute     string
		Topic        string
		Task         string
		EventPayload string
	}
)

func NewDispatcherService(runner Runner, recorder Recorder, policy Policy) *DispatcherService {
	return &DispatcherService{
		Initialized: true,
		Runner:      runner,
		Recorder:    recorder,
		Policy:      policy,
	}
}

/*
	ResolveJob maps one manifest path to its processing job. AW1
	manifests whose filename carries the lab's FAILURE token route
	to the failure job ; AW4 and AW5 paths disambiguate array vs wgs
	by their bucket subfolder when the caller's file_type does not
	already say which.
*/
func ResolveJob(declaredType constants.FileType, filePath string) (constants.GenomicJob, string) {
	loweredPath := strings.ToLower(filePath)

	switch declaredType {
	case fileType.Aw1:
		if strings.Contains(strings.ToUpper(filePath), "FAILURE") {
			return genomicJob.Aw1FManifest, ""
		}
		return genomicJob.Aw1Manifest, ""

	case fileType.Aw2:
		return genomicJob.MetricsIngestion, ""

	case fileType.Aw4Array:
		return genomicJob.Aw4ArrayWorkflow, subfolderAw4Array
	case fileType.Aw4Wgs:
		return genomicJob.Aw4WgsWorkflow, subfolderAw4Wgs

	case fileType.Aw5Array:
		return genomicJob.Aw5ArrayManifest, subfolderAw5Array
	case fileType.Aw5Wgs:
		return genomicJob.Aw5WgsManifest, subfolderAw5Wgs

	case fileType.W2sc:
		return genomicJob.CvlW2scWorkflow, ""
	case fileType.W3ns:
		return genomicJob.CvlW3nsWorkflow, ""
	case fileType.W3sc:
		return genomicJob.CvlW3scWorkflow, ""
	case fileType.W3ss:
		return genomicJob.CvlW3ssWorkflow, ""
	case fileType.W4wr:
		return genomicJob.CvlW4wrWorkflow, ""
	case fileType.W5nf:
		return genomicJob.CvlW5nfWorkflow, ""
	}

	// no declared type ; fall back to the path's subfolder
	switch {
	case strings.Contains(loweredPath, subfolderAw4Array):
		return genomicJob.Aw4ArrayWorkflow, subfolderAw4Array
	case strings.Contains(loweredPath, subfolderAw4Wgs):
		return genomicJob.Aw4WgsWorkflow, subfolderAw4Wgs
	case strings.Contains(loweredPath, subfolderAw5Array):
		return genomicJob.Aw5ArrayManifest, subfolderAw5Array
	case strings.Contains(loweredPath, subfolderAw5Wgs):
		return genomicJob.Aw5WgsManifest, subfolderAw5Wgs
	}

	return genomicJob.Unknown, ""
}

/*
	Dispatch processes one task call : the audit row is written
	whether or not any job runs, then the pipeline is invoked once
	per path, in order, skipping paths whose resolved job is
	disabled. Elements are processed sequentially in-request but no
	ordering is promised across their downstream pipelines. Repeats
	of the same call produce the same set of invocations.
*/
func (d *DispatcherService) Dispatch(request *DispatchRequest) []*ingest.JobRun {

	// one audit row per task call, always
	auditErr := d.Recorder.RecordCloudRequest(&indexes.CloudRequest{
		Id:           uuid.New().String(),
		ApiRoute:     request.ApiRoute,
		BucketName:   request.BucketName,
		Topic:        request.Topic,
		Task:         request.Task,
		FilePath:     strings.Join(request.FilePaths, ","),
		EventPayload: request.EventPayload,
		UploadDate:   request.UploadDate,
		CreatedAt:    time.Now().UTC(),
	})
	if auditErr != nil {
		fmt.Printf("Failed to record cloud request audit row: %s\n", auditErr)
	}

	runs := make([]*ingest.JobRun, 0, len(request.FilePaths))

	for _, filePath := range request.FilePaths {
		run := &ingest.JobRun{
			RunId:     uuid.New(),
			FilePath:  filePath,
			State:     ingest.Queued,
			CreatedAt: time.Now().String(),
		}

		job, subfolder := ResolveJob(request.FileType, filePath)
		run.Job = string(job)

		switch {
		case job == genomicJob.Unknown:
			// bad file types are absorbed as audited skips, never
			// surfaced to the task caller
			run.State = ingest.Error
			run.Message = fmt.Sprintf("No job resolvable for file path '%s'", filePath)

		case !d.Policy.IsJobEnabled(job):
			run.State = ingest.Skipped
			run.Message = fmt.Sprintf("Job %s is currently disabled", job)

		default:
			submitErr := d.Runner.Submit(job, &indexes.ManifestFile{
				FilePath:   filePath,
				BucketName: request.BucketName,
				FileType:   request.FileType,
				Subfolder:  subfolder,
				UploadDate: request.UploadDate,
			})
			if submitErr != nil {
				run.State = ingest.Error
				run.Message = submitErr.Error()
			} else {
				run.State = ingest.Dispatched
			}
		}

		run.UpdatedAt = time.Now().String()

		if recordErr := d.Recorder.RecordJobRun(run); recordErr != nil {
			fmt.Printf("Failed to record job run %s: %s\n", run.RunId, recordErr)
		}

		runs = append(runs, run)
	}

	return runs
}

// RecordDataFiles books one data-file row per path ; no pipeline
// is invoked for raw data file notifications
func (d *DispatcherService) RecordDataFiles(filePaths []string, bucketName string) {
	for _, filePath := range filePaths {
		recordErr := d.Recorder.RecordDataFile(&indexes.DataFile{
			Id:         uuid.New().String(),
			FilePath:   filePath,
			BucketName: bucketName,
			CreatedAt:  time.Now().UTC(),
		})
		if recordErr != nil {
			fmt.Printf("Failed to record data file %s: %s\n", filePath, recordErr)
		}
	}
}
