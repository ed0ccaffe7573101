package policy

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"genoflow/api/models"
	"genoflow/api/models/constants"
	genomicJob "genoflow/api/models/constants/genomic-job"

	"github.com/go-co-op/gocron"
)

type (
	// ControlSource yields the per-job enablement switches ;
	// production reads them from the service configuration, tests
	// substitute a literal map
	ControlSource interface {
		FetchJobControls() (map[string]bool, error)
	}

	// EnablementCache caches the resolved switches and re-resolves
	// them on a schedule rather than consulting the source on every
	// dispatch. Handed to the dispatcher at construction ; no
	// package-level singleton.
	EnablementCache struct {
		Initialized bool

		controls    map[string]bool
		controlsMux sync.RWMutex

		source    ControlSource
		scheduler *gocron.Scheduler
	}
)

func NewEnablementCache(source ControlSource, refreshSeconds int) *EnablementCache {
	cache := &EnablementCache{
		controls: map[string]bool{},
		source:   source,
	}

	// resolve once up front so the first dispatch never races
	// the scheduler's first tick
	cache.Invalidate()

	if refreshSeconds > 0 {
		cache.scheduler = gocron.NewScheduler(time.UTC)
		cache.scheduler.Every(refreshSeconds).Seconds().Do(func() {
			cache.Invalidate()
		})
		cache.scheduler.StartAsync()
	}

	cache.Initialized = true

	return cache
}

// Invalidate discards the cached switches and re-resolves them
// from the source immediately
func (c *EnablementCache) Invalidate() {
	controls, err := c.source.FetchJobControls()
	if err != nil {
		// keep serving the previous resolution on a failed refresh
		fmt.Printf("Job control refresh failed: %s\n", err)
		return
	}

	c.controlsMux.Lock()
	c.controls = controls
	c.controlsMux.Unlock()
}

// IsJobEnabled reports whether the job's pipeline may be invoked ;
// jobs absent from the control set default to enabled
func (c *EnablementCache) IsJobEnabled(job constants.GenomicJob) bool {
	key := genomicJob.ConfigKey(job)
	if key == "" {
		return false
	}

	c.controlsMux.RLock()
	defer c.controlsMux.RUnlock()

	enabled, found := c.controls[key]
	if !found {
		return true
	}
	return enabled
}

func (c *EnablementCache) Stop() {
	if c.scheduler != nil {
		c.scheduler.Stop()
	}
}

// ConfigControlSource parses the comma separated '<job-key>:<0|1>'
// pairs carried by the service configuration
type ConfigControlSource struct {
	Config *models.Config
}

func (s *ConfigControlSource) FetchJobControls() (map[string]bool, error) {
	controls := map[string]bool{}

	rawPairs := strings.TrimSpace(s.Config.Ingestions.JobConfigCommaSep)
	if rawPairs == "" {
		return controls, nil
	}

	for _, rawPair := range strings.Split(rawPairs, ",") {
		pieces := strings.SplitN(strings.TrimSpace(rawPair), ":", 2)
		if len(pieces) != 2 {
			return nil, fmt.Errorf("malformed job control pair '%s'", rawPair)
		}
		controls[pieces[0]] = pieces[1] == "1"
	}

	return controls, nil
}
