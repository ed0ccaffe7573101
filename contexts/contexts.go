package contexts

import (
	"genoflow/api/models"
	"genoflow/api/services/dispatch"
	"genoflow/api/services/events"
	"genoflow/api/services/outreach"
	"genoflow/api/services/policy"

	es7 "github.com/elastic/go-elasticsearch/v7"
	"github.com/labstack/echo"
)

type (
	// "Helper" Context to pass into routes that need
	//  an elasticsearch client and other variables
	GenomicContext struct {
		echo.Context
		Es7Client             *es7.Client
		Config                *models.Config
		OutreachService       *outreach.AggregationService
		DispatcherService     *dispatch.DispatcherService
		EventIngestionService *events.EventIngestionService
		EnablementCache       *policy.EnablementCache
	}
)
