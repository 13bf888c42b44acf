package intent

import (
	"strings"
	"time"

	"event_assistant/model"
	"event_assistant/pkg/timeutil"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

// Defaults is the request-scoped default bundle for events filters.
type Defaults struct {
	Size      int
	From      int
	SortField string
	SortOrder string
	DateField string
}

// RawFilters is the shared shape of filter input, whether it came from a
// structured request body or from the classification model's JSON.
type RawFilters struct {
	QueryType        string      `json:"query_type"`
	Status           string      `json:"status"`
	ResolutionStatus string      `json:"resolution_status"`
	AdminClientID    string      `json:"admin_client_id"`
	ViewerClientID   string      `json:"viewer_client_id"`
	CameraDetailID   string      `json:"camera_detail_id"`
	DateRange        string      `json:"date_range"`
	FromDate         string      `json:"from_date"`
	ToDate           string      `json:"to_date"`
	Size             interface{} `json:"size"`
	From             interface{} `json:"from"`
	SortField        string      `json:"sort_field"`
	SortOrder        string      `json:"sort_order"`
}

// ExtractFilters builds a fully populated filter set. It never fails: bad
// numerics fall back to defaults, bad dates are dropped. Status is left
// exactly as supplied; the COMPLETED default belongs to the query builder.
func ExtractFilters(raw *RawFilters, overrideQuery *model.RawDocument, defaults Defaults) *model.EventFilterSet {
	f := EmptyFilterSet(defaults)
	if raw == nil {
		f.RawQuery = overrideQuery
		return f
	}

	f.Status = strings.TrimSpace(raw.Status)
	f.ResolutionStatus = strings.TrimSpace(raw.ResolutionStatus)
	f.AdminClientID = strings.TrimSpace(raw.AdminClientID)
	f.ViewerClientID = strings.TrimSpace(raw.ViewerClientID)
	f.CameraDetailID = strings.TrimSpace(raw.CameraDetailID)
	f.Size = coerceNonNegative(raw.Size, defaults.Size)
	f.From = coerceNonNegative(raw.From, defaults.From)
	if raw.SortField != "" {
		f.SortField = raw.SortField
	}
	if order := strings.ToLower(raw.SortOrder); order == "asc" || order == "desc" {
		f.SortOrder = order
	}

	f.FromDate = parseOptionalDate(raw.FromDate)
	f.ToDate = parseOptionalDate(raw.ToDate)
	f.DateRange = ParseDateRangeKind(raw.DateRange)
	// explicit bounds imply a custom range even without the keyword
	if f.DateRange == model.DateRangeNone && (f.FromDate != nil || f.ToDate != nil) {
		f.DateRange = model.DateRangeCustom
	}

	f.RawQuery = overrideQuery
	return f
}

// EmptyFilterSet is the classification-failure fallback: no date filter,
// default pagination, capture time descending.
func EmptyFilterSet(defaults Defaults) *model.EventFilterSet {
	return &model.EventFilterSet{
		DateRange: model.DateRangeNone,
		DateField: defaults.DateField,
		Size:      defaults.Size,
		From:      defaults.From,
		SortField: defaults.SortField,
		SortOrder: defaults.SortOrder,
	}
}

// ParseDateRangeKind maps the date-range keywords onto the enum. Unknown
// tokens mean no date filter.
func ParseDateRangeKind(s string) model.DateRangeKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return model.DateRangeToday
	case "yesterday":
		return model.DateRangeYesterday
	case "last_7_days", "last 7 days", "last7days":
		return model.DateRangeLast7Days
	case "custom":
		return model.DateRangeCustom
	default:
		return model.DateRangeNone
	}
}

func coerceNonNegative(v interface{}, fallback int) int {
	if v == nil {
		return fallback
	}
	n, err := cast.ToIntE(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func parseOptionalDate(s string) *time.Time {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	t, err := timeutil.ParseFlexible(s)
	if err != nil {
		log.Warnf("dropping unparsable date %q: %v", s, err)
		return nil
	}
	return &t
}
