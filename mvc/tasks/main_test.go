package tasks

import (
	"encoding/json"
	"io"
	"strings"
	"testing"

	"net/http"
	"net/http/httptest"

	"genoflow/api/contexts"
	"genoflow/api/models/constants"
	genomicJob "genoflow/api/models/constants/genomic-job"
	"genoflow/api/models/constants/module"
	"genoflow/api/models/dtos"
	"genoflow/api/models/indexes"
	"genoflow/api/models/ingest"
	"genoflow/api/services/dispatch"
	"genoflow/api/services/events"
	"genoflow/api/tests/common"

	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
)

type recordingRunner struct {
	submitted []indexes.ManifestFile
	jobs      []constants.GenomicJob
}

func (r *recordingRunner) Submit(job constants.GenomicJob, manifest *indexes.ManifestFile) error {
	r.jobs = append(r.jobs, job)
	r.submitted = append(r.submitted, *manifest)
	return nil
}

type recordingRecorder struct {
	cloudRequests []indexes.CloudRequest
	jobRuns       []ingest.JobRun
	dataFiles     []indexes.DataFile
}

func (r *recordingRecorder) RecordCloudRequest(request *indexes.CloudRequest) error {
	r.cloudRequests = append(r.cloudRequests, *request)
	return nil
}

func (r *recordingRecorder) RecordJobRun(run *ingest.JobRun) error {
	r.jobRuns = append(r.jobRuns, *run)
	return nil
}

func (r *recordingRecorder) RecordDataFile(dataFile *indexes.DataFile) error {
	r.dataFiles = append(r.dataFiles, *dataFile)
	return nil
}

type allowAllPolicy struct{}

func (p *allowAllPolicy) IsJobEnabled(job constants.GenomicJob) bool {
	return job != genomicJob.Unknown
}

func TestTaskEndpoints(t *testing.T) {
	cfg := common.InitConfig()

	setUpEcho := func(target string, jsonBody string) (*contexts.GenomicContext, *httptest.ResponseRecorder, *recordingRunner, *recordingRecorder) {
		e := echo.New()

		var bodyReader io.Reader
		if jsonBody != "" {
			bodyReader = strings.NewReader(jsonBody)
		}
		req := httptest.NewRequest(http.MethodPost, target, bodyReader)
		if jsonBody != "" {
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		}

		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		runner := &recordingRunner{}
		recorder := &recordingRecorder{}
		gc := &contexts.GenomicContext{
			Context:               c,
			Config:                cfg,
			DispatcherService:     dispatch.NewDispatcherService(runner, recorder, &allowAllPolicy{}),
			EventIngestionService: &events.EventIngestionService{},
		}
		return gc, rec, runner, recorder
	}

	getTaskResponse := func(rec *httptest.ResponseRecorder) map[string]interface{} {
		body, _ := io.ReadAll(rec.Body)

		var bodyJson map[string]interface{}
		json.Unmarshal(body, &bodyJson)

		return bodyJson
	}

	t.Run("should accept a single-path aw1 manifest request", func(t *testing.T) {
		gc, rec, runner, recorder := setUpEcho("/task/IngestAW1ManifestTaskApi",
			`{"file_path": "bucket/aw1/m_1.csv", "bucket_name": "bucket", "upload_date": "2022-07-01T08:00:00"}`)

		IngestAw1ManifestTask(gc)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, getTaskResponse(rec)["success"].(bool))

		assert.Len(t, runner.submitted, 1)
		assert.Equal(t, genomicJob.Aw1Manifest, runner.jobs[0])
		assert.Equal(t, "bucket/aw1/m_1.csv", runner.submitted[0].FilePath)
		assert.Len(t, recorder.cloudRequests, 1)
	})

	t.Run("should fan a file path array out to one run each", func(t *testing.T) {
		gc, rec, runner, recorder := setUpEcho("/task/IngestAW1ManifestTaskApi",
			`{"file_path": ["bucket/aw1/m_1.csv", "bucket/aw1/m_2.csv"], "bucket_name": "bucket"}`)

		IngestAw1ManifestTask(gc)

		assert.True(t, getTaskResponse(rec)["success"].(bool))
		assert.Len(t, runner.submitted, 2)
		assert.Len(t, recorder.jobRuns, 2)
		assert.Len(t, recorder.cloudRequests, 1)
	})

	t.Run("should answer success false when file paths are missing", func(t *testing.T) {
		gc, rec, runner, _ := setUpEcho("/task/IngestAW1ManifestTaskApi",
			`{"bucket_name": "bucket"}`)

		IngestAw1ManifestTask(gc)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, getTaskResponse(rec)["success"].(bool))
		assert.Empty(t, runner.submitted)
	})

	t.Run("should answer success false when the bucket is missing", func(t *testing.T) {
		gc, rec, runner, _ := setUpEcho("/task/IngestAW1ManifestTaskApi",
			`{"file_path": "bucket/aw1/m_1.csv"}`)

		IngestAw1ManifestTask(gc)

		assert.False(t, getTaskResponse(rec)["success"].(bool))
		assert.Empty(t, runner.submitted)
	})

	t.Run("should answer success true even when nothing is routable", func(t *testing.T) {
		gc, rec, runner, recorder := setUpEcho("/task/IngestCVLManifestTaskApi",
			`{"file_path": "bucket/mystery/m.csv", "bucket_name": "bucket"}`)

		IngestCvlManifestTask(gc)

		assert.True(t, getTaskResponse(rec)["success"].(bool))
		assert.Empty(t, runner.submitted)
		assert.Equal(t, ingest.Error, recorder.jobRuns[0].State)
	})

	t.Run("should route cvl requests by their declared file type", func(t *testing.T) {
		gc, _, runner, _ := setUpEcho("/task/IngestCVLManifestTaskApi",
			`{"file_path": "bucket/cvl/m.csv", "bucket_name": "bucket", "file_type": "w4wr"}`)

		IngestCvlManifestTask(gc)

		assert.Equal(t, genomicJob.CvlW4wrWorkflow, runner.jobs[0])
	})

	t.Run("should route aw4 requests by subfolder when the type is undeclared", func(t *testing.T) {
		gc, _, runner, _ := setUpEcho("/task/IngestAW4ManifestTaskApi",
			`{"file_path": "bucket/AW4_wgs_manifest/m.csv", "bucket_name": "bucket"}`)

		IngestAw4ManifestTask(gc)

		assert.Equal(t, genomicJob.Aw4WgsWorkflow, runner.jobs[0])
	})

	t.Run("should fall back to the request route for auditing", func(t *testing.T) {
		gc, _, _, recorder := setUpEcho("/task/IngestAW2ManifestTaskApi",
			`{"file_path": "bucket/aw2/metrics.csv", "bucket_name": "bucket"}`)

		IngestAw2ManifestTask(gc)

		assert.Len(t, recorder.cloudRequests, 1)
	})

	t.Run("should record data files without dispatching jobs", func(t *testing.T) {
		gc, rec, runner, recorder := setUpEcho("/task/IngestDataFilesTaskApi",
			`{"file_path": ["bucket/data/a.vcf.gz", "bucket/data/b.vcf.gz"], "bucket_name": "bucket"}`)

		IngestDataFilesTask(gc)

		assert.True(t, getTaskResponse(rec)["success"].(bool))
		assert.Empty(t, runner.submitted)
		assert.Len(t, recorder.dataFiles, 2)
	})

	t.Run("should refuse message broker ingestion without a record id", func(t *testing.T) {
		gc, rec, _, _ := setUpEcho("/task/IngestFromMessageBrokerDataApi",
			`{"event_type": "informing_loop_decision"}`)

		IngestFromMessageBrokerTask(gc)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, getTaskResponse(rec)["success"].(bool))
	})

	t.Run("should refuse member updates missing ids field or value", func(t *testing.T) {
		for _, body := range []string{
			`{"field": "qcStatus", "value": "PASS"}`,
			`{"member_ids": ["123_aou_wgs"], "value": "PASS"}`,
			`{"member_ids": ["123_aou_wgs"], "field": "qcStatus"}`,
		} {
			gc, rec, _, _ := setUpEcho("/task/GenomicSetMemberUpdateApi", body)

			MemberUpdateTask(gc)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.False(t, getTaskResponse(rec)["success"].(bool), body)
		}
	})
}

func TestNormalizeFilePaths(t *testing.T) {
	t.Run("should wrap a bare string", func(t *testing.T) {
		assert.Equal(t, []string{"bucket/aw1/m.csv"}, normalizeFilePaths("bucket/aw1/m.csv"))
	})

	t.Run("should pass string slices through", func(t *testing.T) {
		assert.Equal(t, []string{"a.csv", "b.csv"}, normalizeFilePaths([]string{"a.csv", "b.csv"}))
	})

	t.Run("should filter non-strings out of decoded json arrays", func(t *testing.T) {
		assert.Equal(t, []string{"a.csv"}, normalizeFilePaths([]interface{}{"a.csv", 7, ""}))
	})

	t.Run("should yield nothing for empty or absent values", func(t *testing.T) {
		assert.Empty(t, normalizeFilePaths(""))
		assert.Empty(t, normalizeFilePaths(nil))
	})
}

func TestNormalizeMemberIds(t *testing.T) {
	t.Run("should bind and normalize the task queue's integer ids", func(t *testing.T) {
		var request dtos.MemberUpdateTaskRequest
		bindErr := json.Unmarshal(
			[]byte(`{"member_ids": [1, 2, 3], "field": "qcStatus", "value": "PASS"}`), &request)

		assert.Nil(t, bindErr)
		assert.Equal(t, []string{"1", "2", "3"}, normalizeMemberIds(request.MemberIds))
	})

	t.Run("should pass document-id strings through", func(t *testing.T) {
		assert.Equal(t, []string{"123_aou_wgs"},
			normalizeMemberIds([]interface{}{"123_aou_wgs", ""}))
	})

	t.Run("should yield nothing for an absent list", func(t *testing.T) {
		assert.Empty(t, normalizeMemberIds(nil))
	})
}

func TestStoredStateHelpers(t *testing.T) {
	t.Run("should peel the module off stored workflow states", func(t *testing.T) {
		assert.Equal(t, module.Gem, moduleFromStoredState("GEM_RPT_READY"))
		assert.Equal(t, module.Hdr, moduleFromStoredState("HDR_RPT_PENDING_DELETE"))
		assert.Equal(t, module.Unknown, moduleFromStoredState("CVL_READY"))
	})

	t.Run("should peel the participant off member ids", func(t *testing.T) {
		assert.Equal(t, "123", participantFromMemberId("123_aou_wgs"))
	})
}

func TestParseTaskDate(t *testing.T) {
	t.Run("should accept the supported layouts", func(t *testing.T) {
		for _, rawDate := range []string{"2022-07-01T08:00:00Z", "2022-07-01T08:00:00", "2022-07-01"} {
			parsedDate, parseErr := parseTaskDate(rawDate)
			assert.Nil(t, parseErr, rawDate)
			assert.Equal(t, 2022, parsedDate.Year())
		}
	})

	t.Run("should reject junk", func(t *testing.T) {
		_, parseErr := parseTaskDate("july first")
		assert.NotNil(t, parseErr)
	})
}
