package elasticsearch

import (
	"genoflow/api/models"
	"genoflow/api/models/indexes"
	"genoflow/api/models/ingest"

	es7 "github.com/elastic/go-elasticsearch/v7"
)

const (
	cloudRequestsIndex = "cloud-requests"
	jobRunsIndex       = "job-runs"
	dataFilesIndex     = "data-files"
)

/*
	Append-only audit rows for the task boundary ; these are never
	queried by the service itself, only by operators chasing a
	misrouted manifest.
*/

func IndexCloudRequest(cfg *models.Config, es *es7.Client, request *indexes.CloudRequest) error {
	return indexDocument(cfg, es, cloudRequestsIndex, request.Id, request)
}

func IndexJobRun(cfg *models.Config, es *es7.Client, run *ingest.JobRun) error {
	return indexDocument(cfg, es, jobRunsIndex, run.RunId.String(), run)
}

func IndexDataFile(cfg *models.Config, es *es7.Client, dataFile *indexes.DataFile) error {
	return indexDocument(cfg, es, dataFilesIndex, dataFile.Id, dataFile)
}
