package esquery

import (
	"event_assistant/constant"
	"event_assistant/model"
	"event_assistant/pkg/timeutil"

	"github.com/pkg/errors"
)

// index field names of the events backend
const (
	FieldStatus           = "status"
	FieldResolutionStatus = "resolution_status"
	FieldAdminClientID    = "admin_client_id"
	FieldViewerClientID   = "viewer_client_id"
	FieldDatasetClientID  = "dataset.client_id"
	FieldCameraDetailID   = "camera_detail_id"
)

// Build renders a filter set into a query body. It is a pure function of its
// arguments; the only failure mode is an override query that does not parse.
// Clause order is fixed so identical filters marshal to identical bytes.
func Build(f *model.EventFilterSet, timezone string) (*Query, error) {
	if f.RawQuery != nil {
		if err := f.RawQuery.ParseError(); err != nil {
			return nil, errors.Wrap(err, "override query is not a valid JSON object")
		}
		return &Query{Raw: f.RawQuery}, nil
	}

	var filters []Clause

	if rc, ok := dateRangeClause(f, timezone); ok {
		filters = append(filters, Clause{Range: map[string]RangeClause{f.DateField: rc}})
	}

	status := f.Status
	if status == "" {
		status = constant.DefaultEventsStatus
	}
	filters = append(filters, termClause(FieldStatus, status))

	if f.ResolutionStatus != "" {
		filters = append(filters, termClause(FieldResolutionStatus, f.ResolutionStatus))
	}

	if group := clientIDGroup(f); group != nil {
		filters = append(filters, Clause{Bool: group})
	}

	if f.CameraDetailID != "" {
		filters = append(filters, termClause(FieldCameraDetailID, f.CameraDetailID))
	}

	q := &Query{
		Size: f.Size,
		From: f.From,
		Sort: []map[string]map[string]string{
			{f.SortField: {"order": f.SortOrder}},
		},
	}
	if len(filters) == 0 {
		// unreachable while the status default above is unconditional; an
		// empty clause list still has to form a valid match-everything query
		q.QueryPart = queryBody{MatchAll: map[string]interface{}{}}
	} else {
		q.QueryPart = queryBody{Bool: &boolQuery{Filter: filters}}
	}
	return q, nil
}

// dateRangeClause resolves the range kind to concrete bounds. Relative kinds
// use backend date math so day boundaries land in the display timezone; custom
// bounds serialize as RFC3339 and may be open on either side.
func dateRangeClause(f *model.EventFilterSet, timezone string) (RangeClause, bool) {
	switch f.DateRange {
	case model.DateRangeToday:
		return RangeClause{
			Gte:      timeutil.DateMathStartOfToday,
			Lt:       timeutil.DateMathStartOfTomorrow,
			TimeZone: timezone,
		}, true
	case model.DateRangeYesterday:
		return RangeClause{
			Gte:      timeutil.DateMathStartOfYesterday,
			Lt:       timeutil.DateMathStartOfToday,
			TimeZone: timezone,
		}, true
	case model.DateRangeLast7Days:
		return RangeClause{
			Gte:      timeutil.DateMathSevenDaysAgo,
			Lt:       timeutil.DateMathStartOfTomorrow,
			TimeZone: timezone,
		}, true
	case model.DateRangeCustom:
		if f.FromDate == nil && f.ToDate == nil {
			return RangeClause{}, false
		}
		rc := RangeClause{TimeZone: timezone}
		if f.FromDate != nil {
			rc.Gte = timeutil.FormatUTC(*f.FromDate)
		}
		if f.ToDate != nil {
			rc.Lte = timeutil.FormatUTC(*f.ToDate)
		}
		return rc, true
	default:
		return RangeClause{}, false
	}
}

// clientIDGroup builds the ownership OR group. Each supplied id matches its
// own ownership field or the shared dataset field, so two ids yield four
// alternatives under a single minimum_should_match=1.
func clientIDGroup(f *model.EventFilterSet) *BoolClause {
	var should []Clause
	if f.AdminClientID != "" {
		should = append(should,
			termClause(FieldAdminClientID, f.AdminClientID),
			termClause(FieldDatasetClientID, f.AdminClientID),
		)
	}
	if f.ViewerClientID != "" {
		should = append(should,
			termClause(FieldViewerClientID, f.ViewerClientID),
			termClause(FieldDatasetClientID, f.ViewerClientID),
		)
	}
	if len(should) == 0 {
		return nil
	}
	return &BoolClause{Should: should, MinimumShouldMatch: 1}
}
