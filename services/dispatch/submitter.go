package dispatch

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"genoflow/api/models"
	"genoflow/api/models/constants"
	"genoflow/api/models/indexes"

	"github.com/Jeffail/gabs"
)

// TaskSubmitter is the production Runner : it hands the resolved
// job to the external task-queue service over HTTP
type TaskSubmitter struct {
	Config *models.Config
}

func NewTaskSubmitter(cfg *models.Config) *TaskSubmitter {
	return &TaskSubmitter{Config: cfg}
}

func (t *TaskSubmitter) Submit(job constants.GenomicJob, manifest *indexes.ManifestFile) error {

	if t.Config.Debug {
		http.DefaultTransport.(*http.Transport).TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	payload, marshallErr := json.Marshal(map[string]interface{}{
		"job":         job,
		"file_path":   manifest.FilePath,
		"bucket_name": manifest.BucketName,
		"file_type":   manifest.FileType,
		"subfolder":   manifest.Subfolder,
		"upload_date": manifest.UploadDate,
	})
	if marshallErr != nil {
		return marshallErr
	}

	var (
		submitResp      *http.Response
		submitErr       error
		attemptCount    int = 0
		maxAttempts     int = 5
		waitTimeSeconds int = 3
	)
	for {
		// prepare submission request to the task queue
		r, _ := http.NewRequest("POST", t.Config.TaskQueue.Url+"/task/submit", bytes.NewBuffer(payload))

		r.SetBasicAuth(t.Config.TaskQueue.Username, t.Config.TaskQueue.Password)
		r.Header.Add("Content-Type", "application/json")

		client := &http.Client{}

		// perform request
		submitResp, submitErr = client.Do(r)

		// check for errors, possibly try again
		if submitErr != nil {
			fmt.Printf("Task queue submission error: %s\n", submitErr)

			if attemptCount < maxAttempts {
				attemptCount++

				// give it a few seconds break
				time.Sleep(time.Duration(waitTimeSeconds * int(time.Second)))

				fmt.Printf("trying again...\n")
				continue
			}
			return fmt.Errorf("task queue unreachable after %d attempts: %s", attemptCount, submitErr)
		}

		if submitResp.StatusCode == 200 || submitResp.StatusCode == 201 {
			break
		} else if submitResp.StatusCode == 401 {
			// exit right away on 'unauthorized' status code
			return fmt.Errorf("received a '401 Unauthorized' from the task queue")
		} else {
			failedAttemptBody, failedAttemptErr := ioutil.ReadAll(submitResp.Body)
			if failedAttemptErr != nil {
				fmt.Printf("Error reading unsuccessful attempt response body: %v\n", failedAttemptErr)
			} else {
				fmt.Printf("Received after failed attempt: %s\n", string(failedAttemptBody))
			}

			if attemptCount < maxAttempts {
				attemptCount++

				time.Sleep(time.Duration(waitTimeSeconds * int(time.Second)))

				fmt.Printf("Failed to submit job %s after %d attempts.. Trying again...\n", job, attemptCount)
				continue
			}
			return fmt.Errorf("task queue rejected job %s after %d attempts", job, attemptCount)
		}
	}

	responseBody, bodyErr := ioutil.ReadAll(submitResp.Body)
	if bodyErr != nil {
		fmt.Printf("Error reading task queue response body: %v\n", bodyErr)
		return nil
	}

	jsonParsed, parseErr := gabs.ParseJSON(responseBody)
	if parseErr != nil {
		fmt.Printf("Task queue response parsing error: %s\n", parseErr)
		return nil
	}

	if taskId, ok := jsonParsed.Path("task_id").Data().(string); ok {
		fmt.Printf("Job %s accepted by task queue as task %s\n", job, taskId)
	}

	return nil
}
