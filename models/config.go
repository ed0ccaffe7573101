package models

type Config struct {
	Debug bool `envconfig:"GENOFLOW_DEBUG" yaml:"debug"`

	Api struct {
		Port string `envconfig:"GENOFLOW_API_INTERNAL_PORT" yaml:"port"`
		Url  string `envconfig:"GENOFLOW_API_URL" yaml:"url"`
	} `yaml:"api"`

	Elasticsearch struct {
		Url      string `envconfig:"GENOFLOW_ES_URL" yaml:"url"`
		Username string `envconfig:"GENOFLOW_ES_USERNAME" yaml:"username"`
		Password string `envconfig:"GENOFLOW_ES_PASSWORD" yaml:"password"`
	} `yaml:"elasticsearch"`

	TaskQueue struct {
		Url      string `envconfig:"GENOFLOW_TASK_QUEUE_URL" yaml:"url"`
		Username string `envconfig:"GENOFLOW_TASK_QUEUE_BASIC_AUTH_USERNAME" yaml:"username"`
		Password string `envconfig:"GENOFLOW_TASK_QUEUE_BASIC_AUTH_PASSWORD" yaml:"password"`
	} `yaml:"taskQueue"`

	MessageBroker struct {
		Url      string `envconfig:"GENOFLOW_MESSAGE_BROKER_URL" yaml:"url"`
		Username string `envconfig:"GENOFLOW_MESSAGE_BROKER_BASIC_AUTH_USERNAME" yaml:"username"`
		Password string `envconfig:"GENOFLOW_MESSAGE_BROKER_BASIC_AUTH_PASSWORD" yaml:"password"`
	} `yaml:"messageBroker"`

	Ingestions struct {
		// comma separated list of '<job config key>:<0|1>' pairs,
		// i.e. 'aw1_manifest:0,aw4_wgs_manifest:1' ; jobs not listed
		// default to enabled
		JobConfigCommaSep     string `envconfig:"GENOFLOW_INGESTIONS_JOB_CONFIG" yaml:"jobConfig"`
		PolicyRefreshSeconds  int    `envconfig:"GENOFLOW_INGESTIONS_POLICY_REFRESH_SECONDS" yaml:"policyRefreshSeconds"`
		EventIndexingCapacity int    `envconfig:"GENOFLOW_INGESTIONS_EVENT_INDEXING_CAP" yaml:"eventIndexingCapacity"`
	} `yaml:"ingestions"`
}
