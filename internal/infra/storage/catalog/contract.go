package catalog

import "github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
