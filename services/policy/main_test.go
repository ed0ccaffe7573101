package policy

import (
	"testing"

	"genoflow/api/models"
	genomicJob "genoflow/api/models/constants/genomic-job"

	"github.com/stretchr/testify/assert"
)

type literalSource struct {
	controls map[string]bool
}

func (s *literalSource) FetchJobControls() (map[string]bool, error) {
	return s.controls, nil
}

func TestEnablementCache(t *testing.T) {
	t.Run("should default unlisted jobs to enabled", func(t *testing.T) {
		cache := NewEnablementCache(&literalSource{controls: map[string]bool{}}, 0)

		assert.True(t, cache.IsJobEnabled(genomicJob.Aw1Manifest))
		assert.True(t, cache.IsJobEnabled(genomicJob.CvlW4wrWorkflow))
	})

	t.Run("should honor explicit switches", func(t *testing.T) {
		cache := NewEnablementCache(&literalSource{controls: map[string]bool{
			"aw1_manifest":     false,
			"aw4_wgs_manifest": true,
		}}, 0)

		assert.False(t, cache.IsJobEnabled(genomicJob.Aw1Manifest))
		// the failure variant shares the aw1 switch
		assert.False(t, cache.IsJobEnabled(genomicJob.Aw1FManifest))
		assert.True(t, cache.IsJobEnabled(genomicJob.Aw4WgsWorkflow))
	})

	t.Run("should re-resolve on invalidation", func(t *testing.T) {
		source := &literalSource{controls: map[string]bool{"w2sc_manifest": false}}
		cache := NewEnablementCache(source, 0)

		assert.False(t, cache.IsJobEnabled(genomicJob.CvlW2scWorkflow))

		source.controls = map[string]bool{"w2sc_manifest": true}
		cache.Invalidate()

		assert.True(t, cache.IsJobEnabled(genomicJob.CvlW2scWorkflow))
	})

	t.Run("should never enable unmapped jobs", func(t *testing.T) {
		cache := NewEnablementCache(&literalSource{controls: map[string]bool{}}, 0)
		assert.False(t, cache.IsJobEnabled(genomicJob.Unknown))
	})
}

func TestConfigControlSource(t *testing.T) {
	t.Run("should parse comma separated pairs", func(t *testing.T) {
		var cfg models.Config
		cfg.Ingestions.JobConfigCommaSep = "aw1_manifest:0,aw4_wgs_manifest:1, w2sc_manifest:0"

		controls, parseErr := (&ConfigControlSource{Config: &cfg}).FetchJobControls()
		assert.Nil(t, parseErr)
		assert.Equal(t, map[string]bool{
			"aw1_manifest":     false,
			"aw4_wgs_manifest": true,
			"w2sc_manifest":    false,
		}, controls)
	})

	t.Run("should yield no switches for an empty setting", func(t *testing.T) {
		var cfg models.Config

		controls, parseErr := (&ConfigControlSource{Config: &cfg}).FetchJobControls()
		assert.Nil(t, parseErr)
		assert.Empty(t, controls)
	})

	t.Run("should reject malformed pairs", func(t *testing.T) {
		var cfg models.Config
		cfg.Ingestions.JobConfigCommaSep = "aw1_manifest"

		_, parseErr := (&ConfigControlSource{Config: &cfg}).FetchJobControls()
		assert.NotNil(t, parseErr)
	})
}
