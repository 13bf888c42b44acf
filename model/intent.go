package model

import "time"

// IntentType is one of the four supported query categories.
type IntentType string

const (
	IntentGeneral IntentType = "general"
	IntentNvr     IntentType = "nvr"
	IntentVariphi IntentType = "variphi"
	IntentEvents  IntentType = "events"
)

// ClassifiedIntent is the classifier output. Exactly one variant per message;
// Filters is populated only for IntentEvents.
type ClassifiedIntent struct {
	Type         IntentType
	OriginalText string
	Filters      *EventFilterSet
}

// DateRangeKind enumerates the supported date-range interpretations.
type DateRangeKind string

const (
	DateRangeNone      DateRangeKind = "none"
	DateRangeToday     DateRangeKind = "today"
	DateRangeYesterday DateRangeKind = "yesterday"
	DateRangeLast7Days DateRangeKind = "last_7_days"
	DateRangeCustom    DateRangeKind = "custom"
)

// EventFilterSet is the backend-agnostic filter representation for an events
// query. Status stays empty at extraction time; the query builder applies the
// COMPLETED default so callers can tell "undecided" from "unfiltered".
type EventFilterSet struct {
	DateRange        DateRangeKind
	DateField        string
	FromDate         *time.Time
	ToDate           *time.Time
	Status           string
	ResolutionStatus string
	AdminClientID    string
	ViewerClientID   string
	CameraDetailID   string
	Size             int
	From             int
	SortField        string
	SortOrder        string
	// RawQuery, when present, supersedes every other field at build time.
	RawQuery *RawDocument
}
