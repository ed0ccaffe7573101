package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"genoflow/api/contexts"
	gam "genoflow/api/middleware"
	"genoflow/api/models"
	serviceInfoConst "genoflow/api/models/constants/service-info"
	outreachMvc "genoflow/api/mvc/outreach"
	serviceInfoMvc "genoflow/api/mvc/service-info"
	tasksMvc "genoflow/api/mvc/tasks"
	esRepo "genoflow/api/repositories/elasticsearch"
	"genoflow/api/services/dispatch"
	"genoflow/api/services/events"
	"genoflow/api/services/outreach"
	"genoflow/api/services/policy"
	"genoflow/api/utils"

	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
)

func main() {
	// Gather environment variables
	var cfg models.Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	fmt.Printf("Using : \n"+

		"\tDebug : %t \n\n"+

		"\tElasticsearch Url : %s \n"+
		"\tElasticsearch Username : %s\n\n"+

		"\tTask Queue Url : %s\n"+
		"\tTask Queue Username : %s\n\n"+

		"\tMessage Broker Url : %s\n"+
		"\tMessage Broker Username : %s\n\n"+

		"\tIngestion Job Config : %s\n"+
		"\tPolicy Refresh Seconds : %d\n"+
		"\tEvent Indexing Cap : %d\n\n"+

		"Running on Port : %s\n",

		cfg.Debug,
		cfg.Elasticsearch.Url, cfg.Elasticsearch.Username,
		cfg.TaskQueue.Url, cfg.TaskQueue.Username,
		cfg.MessageBroker.Url, cfg.MessageBroker.Username,
		cfg.Ingestions.JobConfigCommaSep,
		cfg.Ingestions.PolicyRefreshSeconds,
		cfg.Ingestions.EventIndexingCapacity,
		cfg.Api.Port)
	// --

	// Instantiate Server
	e := echo.New()

	// Service Connections:
	// -- Elasticsearch
	es := utils.CreateEsConnection(&cfg)
	store := esRepo.NewEsStore(&cfg, es)

	// Service Singletons
	enablementCache := policy.NewEnablementCache(
		&policy.ConfigControlSource{Config: &cfg},
		cfg.Ingestions.PolicyRefreshSeconds)
	dz := dispatch.NewDispatcherService(
		dispatch.NewTaskSubmitter(&cfg),
		store,
		enablementCache)
	oz := outreach.NewAggregationService(store)
	ez := events.NewEventIngestionService(es, &cfg,
		events.NewHttpBrokerClient(&cfg),
		store)

	// Configure Server
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE},
	}))

	// -- Override handlers with "custom Genomic" context
	//		to be able to provide variables and global singletons
	e.Use(func(h echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &contexts.GenomicContext{
				Context:               c,
				Es7Client:             es,
				Config:                &cfg,
				OutreachService:       oz,
				DispatcherService:     dz,
				EventIngestionService: ez,
				EnablementCache:       enablementCache,
			}
			return h(cc)
		}
	})

	// Begin MVC Routes
	// -- Root
	e.GET("/", func(c echo.Context) error {
		fmt.Printf("[%s] - Root hit!\n", time.Now())
		return c.JSON(http.StatusOK, serviceInfoConst.SERVICE_WELCOME)
	})

	// -- Service Info
	e.GET("/service-info", serviceInfoMvc.GetServiceInfo)

	// -- Genomic Outreach
	e.GET("/GenomicOutreachV2", outreachMvc.GetOutreachStatus,
		// middleware
		gam.ValidateOutreachQueryAttributes)
	e.POST("/GenomicOutreachV2", outreachMvc.CreateOutreachEligibility)
	e.PUT("/GenomicOutreachV2", outreachMvc.UpdateOutreachEligibility)
	e.PUT("/GenomicOutreachV2/:participantId", outreachMvc.UpdateOutreachEligibility)

	// -- Manifest Task Dispatch
	e.POST("/task/IngestAW1ManifestTaskApi", tasksMvc.IngestAw1ManifestTask)
	e.POST("/task/IngestAW2ManifestTaskApi", tasksMvc.IngestAw2ManifestTask)
	e.POST("/task/IngestAW4ManifestTaskApi", tasksMvc.IngestAw4ManifestTask)
	e.POST("/task/IngestAW5ManifestTaskApi", tasksMvc.IngestAw5ManifestTask)
	e.POST("/task/IngestCVLManifestTaskApi", tasksMvc.IngestCvlManifestTask)

	e.POST("/task/IngestDataFilesTaskApi", tasksMvc.IngestDataFilesTask)
	e.POST("/task/IngestFromMessageBrokerDataApi", tasksMvc.IngestFromMessageBrokerTask)
	e.POST("/task/GenomicSetMemberUpdateApi", tasksMvc.MemberUpdateTask)

	// Run
	e.Logger.Fatal(e.Start(":" + cfg.Api.Port))
}
