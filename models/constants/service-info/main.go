package serviceInfo

import "fmt"

type ServiceInfo string

var (
	SERVICE_NAME        ServiceInfo = "Genoflow Genomic Workflow Service"
	SERVICE_WELCOME     ServiceInfo = "Welcome to the Genoflow genomic workflow and outreach API!"
	SERVICE_DESCRIPTION ServiceInfo = "Genomic manifest ingestion and participant outreach status service."
	SERVICE_CONTACT     ServiceInfo = "mailto:genomics@genoflow.dev"

	SERVICE_ARTIFACT    ServiceInfo = "genoflow"
	SERVICE_VERSION     ServiceInfo = "0.0.1"
	SERVICE_TYPE_NO_VER ServiceInfo = ServiceInfo(fmt.Sprintf("org.genoflow:%s", SERVICE_ARTIFACT))
	SERVICE_ID          ServiceInfo = SERVICE_TYPE_NO_VER
	SERVICE_TYPE        ServiceInfo = ServiceInfo(fmt.Sprintf("%s:%s", SERVICE_TYPE_NO_VER, SERVICE_VERSION))
)
