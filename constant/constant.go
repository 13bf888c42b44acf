package constant

const (
	EmptyString = ""
)

// query types (intents)
const (
	QueryTypeGeneral = "general"
	QueryTypeNvr     = "nvr"
	QueryTypeVariphi = "variphi"
	QueryTypeEvents  = "events"
)

// events query defaults, applied when the request and the model both stay silent
const (
	DefaultEventsSize      = 50
	DefaultEventsFrom      = 0
	DefaultEventsSortField = "capture_time"
	DefaultEventsSortOrder = "desc"
	DefaultEventsDateField = "capture_time"
)

// canonical "done" state of the events backend; applied at query-build time only
const DefaultEventsStatus = "COMPLETED"

// display timezone fallback when app.timezone is unset or invalid
const DefaultDisplayTimezone = "Asia/Kolkata"

// context block limits
const (
	MaxEventSummaries    = 15
	MaxDocResults        = 3
	MaxAnnotationEntries = 3
	MaxDocContentChars   = 300
	DefaultVectorTopK    = 3
)
