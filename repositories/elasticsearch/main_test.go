package elasticsearch

import (
	"testing"

	"genoflow/api/models"

	"github.com/stretchr/testify/assert"
)

func TestExecuteSearch(t *testing.T) {
	t.Run("should return an encoding failure instead of dying", func(t *testing.T) {
		cfg := &models.Config{}

		// channels cannot be json-encoded
		result, searchErr := executeSearch(cfg, nil, "samples", map[string]interface{}{
			"query": make(chan int),
		})

		assert.Nil(t, result)
		assert.NotNil(t, searchErr)
		assert.Contains(t, searchErr.Error(), "samples")
	})
}
