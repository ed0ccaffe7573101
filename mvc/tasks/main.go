package tasks

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"genoflow/api/contexts"
	"genoflow/api/models/constants"
	fileType "genoflow/api/models/constants/file-type"
	"genoflow/api/models/constants/module"
	reportState "genoflow/api/models/constants/report-state"
	"genoflow/api/models/dtos"
	"genoflow/api/models/indexes"
	esRepo "genoflow/api/repositories/elasticsearch"
	"genoflow/api/services/dispatch"

	"github.com/labstack/echo"
)

/*
	Task-dispatch boundary. Every handler answers with the uniform
	{success} envelope : callers learn of acceptance only, never of
	downstream pipeline outcomes. Bad file types and disabled jobs
	are absorbed as audited skips.
*/

func IngestAw1ManifestTask(c echo.Context) error {
	fmt.Printf("[%s] - IngestAw1ManifestTask hit!\n", time.Now())
	return dispatchManifestTask(c, fileType.Aw1)
}

func IngestAw2ManifestTask(c echo.Context) error {
	fmt.Printf("[%s] - IngestAw2ManifestTask hit!\n", time.Now())
	return dispatchManifestTask(c, fileType.Aw2)
}

// AW4/AW5/CVL array-vs-wgs and workflow variants are taken from the
// declared file_type when present and fall back to the bucket
// subfolder otherwise
func IngestAw4ManifestTask(c echo.Context) error {
	fmt.Printf("[%s] - IngestAw4ManifestTask hit!\n", time.Now())
	return dispatchManifestTask(c, fileType.Unknown)
}

func IngestAw5ManifestTask(c echo.Context) error {
	fmt.Printf("[%s] - IngestAw5ManifestTask hit!\n", time.Now())
	return dispatchManifestTask(c, fileType.Unknown)
}

func IngestCvlManifestTask(c echo.Context) error {
	fmt.Printf("[%s] - IngestCvlManifestTask hit!\n", time.Now())
	return dispatchManifestTask(c, fileType.Unknown)
}

func dispatchManifestTask(c echo.Context, defaultType constants.FileType) error {
	gc := c.(*contexts.GenomicContext)

	var request dtos.ManifestTaskRequest
	if bindErr := c.Bind(&request); bindErr != nil {
		return c.JSON(http.StatusOK, &dtos.TaskResponse{Success: false})
	}

	filePaths := normalizeFilePaths(request.FilePath)
	if len(filePaths) == 0 || request.BucketName == "" {
		return c.JSON(http.StatusOK, &dtos.TaskResponse{Success: false})
	}

	declaredType := defaultType
	if request.FileType != "" {
		declaredType = fileType.CastToFileType(request.FileType)
	}

	apiRoute := request.ApiRoute
	if apiRoute == "" {
		apiRoute = c.Path()
	}

	var eventPayload string
	if request.EventPayload != nil {
		if payloadData, marshallErr := json.Marshal(request.EventPayload); marshallErr == nil {
			eventPayload = string(payloadData)
		}
	}

	var uploadDate time.Time
	if request.UploadDate != "" {
		if parsedDate, parseErr := parseTaskDate(request.UploadDate); parseErr == nil {
			uploadDate = parsedDate
		}
	}

	gc.DispatcherService.Dispatch(&dispatch.DispatchRequest{
		FilePaths:    filePaths,
		BucketName:   request.BucketName,
		FileType:     declaredType,
		UploadDate:   uploadDate,
		ApiRoute:     apiRoute,
		Topic:        request.Topic,
		Task:         request.Task,
		EventPayload: eventPayload,
	})

	return c.JSON(http.StatusOK, &dtos.TaskResponse{Success: true})
}

func IngestDataFilesTask(c echo.Context) error {
	fmt.Printf("[%s] - IngestDataFilesTask hit!\n", time.Now())

	gc := c.(*contexts.GenomicContext)

	var request dtos.ManifestTaskRequest
	if bindErr := c.Bind(&request); bindErr != nil {
		return c.JSON(http.StatusOK, &dtos.TaskResponse{Success: false})
	}

	filePaths := normalizeFilePaths(request.FilePath)
	if len(filePaths) == 0 || request.BucketName == "" {
		return c.JSON(http.StatusOK, &dtos.TaskResponse{Success: false})
	}

	gc.DispatcherService.RecordDataFiles(filePaths, request.BucketName)

	return c.JSON(http.StatusOK, &dtos.TaskResponse{Success: true})
}

func IngestFromMessageBrokerTask(c echo.Context) error {
	fmt.Printf("[%s] - IngestFromMessageBrokerTask hit!\n", time.Now())

	gc := c.(*contexts.GenomicContext)

	var request dtos.MessageBrokerTaskRequest
	if bindErr := c.Bind(&request); bindErr != nil {
		return c.JSON(http.StatusOK, &dtos.TaskResponse{Success: false})
	}

	return c.JSON(http.StatusOK, gc.EventIngestionService.IngestFromMessageBroker(request.MessageRecordId, request.EventType))
}

/*
	MemberUpdateTask applies one field update across sample registry
	rows. Workflow-state updates carrying a report token (i.e.
	'GEM_RPT_READY') additionally upsert the per-module report state
	row, which is what later surfaces as a result entry.
*/
func MemberUpdateTask(c echo.Context) error {
	fmt.Printf("[%s] - MemberUpdateTask hit!\n", time.Now())

	gc := c.(*contexts.GenomicContext)
	cfg := gc.Config
	es := gc.Es7Client

	var request dtos.MemberUpdateTaskRequest
	if bindErr := c.Bind(&request); bindErr != nil {
		return c.JSON(http.StatusOK, &dtos.TaskResponse{Success: false})
	}

	memberIds := normalizeMemberIds(request.MemberIds)
	if len(memberIds) == 0 || request.Field == "" || request.Value == nil {
		return c.JSON(http.StatusOK, &dtos.TaskResponse{Success: false})
	}

	if updateErr := esRepo.UpdateSampleFieldByIds(cfg, es, memberIds, request.Field, request.Value); updateErr != nil {
		fmt.Printf("Member update failed: %s\n", updateErr)
		return c.JSON(http.StatusOK, &dtos.TaskResponse{Success: false})
	}

	if request.Field == "workflowState" {
		if rawState, isString := request.Value.(string); isString {
			if resolvedState := reportState.CastFromStoredState(rawState); resolvedState != reportState.Unset {
				stateModule := moduleFromStoredState(rawState)

				for _, memberId := range memberIds {
					upsertErr := esRepo.UpsertReportState(cfg, es, &indexes.ReportStateEvent{
						ParticipantId:      participantFromMemberId(memberId),
						Module:             stateModule,
						GenomicReportState: rawState,
						GenomicSetMemberId: memberId,
						ModifiedTime:       time.Now().UTC(),
					})
					if upsertErr != nil {
						fmt.Printf("Report state upsert for %s failed: %s\n", memberId, upsertErr)
					}
				}
			}
		}
	}

	return c.JSON(http.StatusOK, &dtos.TaskResponse{Success: true})
}

func normalizeFilePaths(rawFilePath interface{}) []string {
	switch value := rawFilePath.(type) {
	case string:
		if value == "" {
			return []string{}
		}
		return []string{value}
	case []string:
		return value
	case []interface{}:
		filePaths := make([]string, 0, len(value))
		for _, element := range value {
			if filePath, isString := element.(string); isString && filePath != "" {
				filePaths = append(filePaths, filePath)
			}
		}
		return filePaths
	default:
		return []string{}
	}
}

// normalizeMemberIds admits both the integer ids sent by the task
// queue and pre-built '<participantId>_<genomeType>' document ids
func normalizeMemberIds(rawMemberIds []interface{}) []string {
	memberIds := make([]string, 0, len(rawMemberIds))
	for _, element := range rawMemberIds {
		switch value := element.(type) {
		case string:
			if value != "" {
				memberIds = append(memberIds, value)
			}
		case float64:
			memberIds = append(memberIds, strconv.FormatInt(int64(value), 10))
		case int:
			memberIds = append(memberIds, strconv.Itoa(value))
		case int64:
			memberIds = append(memberIds, strconv.FormatInt(value, 10))
		}
	}
	return memberIds
}

func parseTaskDate(rawDate string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if parsedDate, parseErr := time.Parse(layout, rawDate); parseErr == nil {
			return parsedDate, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date '%s'", rawDate)
}

// moduleFromStoredState maps 'GEM_RPT_READY' style tokens to their
// module
func moduleFromStoredState(rawState string) constants.Module {
	pieces := strings.SplitN(strings.ToLower(rawState), "_rpt_", 2)
	if len(pieces) != 2 {
		return module.Unknown
	}
	return module.CastToModule(pieces[0])
}

// participantFromMemberId peels the participant id off a
// '<participantId>_<genomeType>' sample document id
func participantFromMemberId(memberId string) string {
	return strings.SplitN(memberId, "_", 2)[0]
}
