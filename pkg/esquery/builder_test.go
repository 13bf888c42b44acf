package esquery

import (
	"encoding/json"
	"testing"
	"time"

	"event_assistant/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTimezone = "Asia/Kolkata"

func baseFilters() *model.EventFilterSet {
	return &model.EventFilterSet{
		DateRange: model.DateRangeNone,
		DateField: "capture_time",
		Size:      50,
		From:      0,
		SortField: "capture_time",
		SortOrder: "desc",
	}
}

func marshal(t *testing.T, q *Query) string {
	t.Helper()
	data, err := json.Marshal(q)
	require.NoError(t, err)
	return string(data)
}

func TestBuildIsPure(t *testing.T) {
	f := baseFilters()
	f.DateRange = model.DateRangeToday
	f.AdminClientID = "abc"

	q1, err := Build(f, testTimezone)
	require.NoError(t, err)
	q2, err := Build(f, testTimezone)
	require.NoError(t, err)

	assert.Equal(t, marshal(t, q1), marshal(t, q2), "same filters must marshal to identical bytes")
}

func TestBuildTodayRange(t *testing.T) {
	f := baseFilters()
	f.DateRange = model.DateRangeToday

	q, err := Build(f, testTimezone)
	require.NoError(t, err)

	filters := q.QueryPart.Bool.Filter
	require.NotEmpty(t, filters)
	rc, ok := filters[0].Range["capture_time"]
	require.True(t, ok, "range clause comes first")
	assert.Equal(t, "now/d", rc.Gte)
	assert.Equal(t, "now/d+1d", rc.Lt)
	assert.Equal(t, testTimezone, rc.TimeZone)
}

func TestBuildYesterdayAndLast7Days(t *testing.T) {
	f := baseFilters()
	f.DateRange = model.DateRangeYesterday
	q, err := Build(f, testTimezone)
	require.NoError(t, err)
	rc := q.QueryPart.Bool.Filter[0].Range["capture_time"]
	assert.Equal(t, "now-1d/d", rc.Gte)
	assert.Equal(t, "now/d", rc.Lt)

	f.DateRange = model.DateRangeLast7Days
	q, err = Build(f, testTimezone)
	require.NoError(t, err)
	rc = q.QueryPart.Bool.Filter[0].Range["capture_time"]
	assert.Equal(t, "now-7d/d", rc.Gte)
	assert.Equal(t, "now/d+1d", rc.Lt)
}

func TestBuildCustomRange(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	f := baseFilters()
	f.DateRange = model.DateRangeCustom
	f.FromDate = &from

	q, err := Build(f, testTimezone)
	require.NoError(t, err)

	rc := q.QueryPart.Bool.Filter[0].Range["capture_time"]
	assert.Equal(t, "2026-08-01T00:00:00Z", rc.Gte)
	assert.Empty(t, rc.Lte, "open-ended upper bound")
}

func TestBuildCustomRangeWithoutBoundsEmitsNoDateClause(t *testing.T) {
	f := baseFilters()
	f.DateRange = model.DateRangeCustom

	q, err := Build(f, testTimezone)
	require.NoError(t, err)

	for _, clause := range q.QueryPart.Bool.Filter {
		assert.Nil(t, clause.Range)
	}
}

func TestBuildStatusDefault(t *testing.T) {
	q, err := Build(baseFilters(), testTimezone)
	require.NoError(t, err)

	filters := q.QueryPart.Bool.Filter
	require.Len(t, filters, 1)
	assert.Equal(t, "COMPLETED", filters[0].Term[FieldStatus])
}

func TestBuildExplicitStatusKept(t *testing.T) {
	f := baseFilters()
	f.Status = "PENDING"
	f.ResolutionStatus = "RESOLVED"

	q, err := Build(f, testTimezone)
	require.NoError(t, err)

	filters := q.QueryPart.Bool.Filter
	require.Len(t, filters, 2)
	assert.Equal(t, "PENDING", filters[0].Term[FieldStatus])
	assert.Equal(t, "RESOLVED", filters[1].Term[FieldResolutionStatus])
}

func TestBuildClientIDGroupTwoAlternatives(t *testing.T) {
	f := baseFilters()
	f.AdminClientID = "abc"

	q, err := Build(f, testTimezone)
	require.NoError(t, err)

	var group *BoolClause
	for _, clause := range q.QueryPart.Bool.Filter {
		if clause.Bool != nil {
			group = clause.Bool
		}
	}
	require.NotNil(t, group)
	require.Len(t, group.Should, 2)
	assert.Equal(t, 1, group.MinimumShouldMatch)
	assert.Equal(t, "abc", group.Should[0].Term[FieldAdminClientID])
	assert.Equal(t, "abc", group.Should[1].Term[FieldDatasetClientID])
}

func TestBuildClientIDGroupFourAlternatives(t *testing.T) {
	f := baseFilters()
	f.AdminClientID = "abc"
	f.ViewerClientID = "xyz"

	q, err := Build(f, testTimezone)
	require.NoError(t, err)

	var group *BoolClause
	for _, clause := range q.QueryPart.Bool.Filter {
		if clause.Bool != nil {
			group = clause.Bool
		}
	}
	require.NotNil(t, group)
	require.Len(t, group.Should, 4)
	assert.Equal(t, "abc", group.Should[0].Term[FieldAdminClientID])
	assert.Equal(t, "abc", group.Should[1].Term[FieldDatasetClientID])
	assert.Equal(t, "xyz", group.Should[2].Term[FieldViewerClientID])
	assert.Equal(t, "xyz", group.Should[3].Term[FieldDatasetClientID])
}

func TestBuildClauseOrder(t *testing.T) {
	f := baseFilters()
	f.DateRange = model.DateRangeToday
	f.Status = "PENDING"
	f.ResolutionStatus = "OPEN"
	f.AdminClientID = "abc"
	f.CameraDetailID = "cam-7"

	q, err := Build(f, testTimezone)
	require.NoError(t, err)

	filters := q.QueryPart.Bool.Filter
	require.Len(t, filters, 5)
	assert.NotNil(t, filters[0].Range)
	assert.Equal(t, "PENDING", filters[1].Term[FieldStatus])
	assert.Equal(t, "OPEN", filters[2].Term[FieldResolutionStatus])
	assert.NotNil(t, filters[3].Bool)
	assert.Equal(t, "cam-7", filters[4].Term[FieldCameraDetailID])
}

func TestBuildPaginationAndSort(t *testing.T) {
	f := baseFilters()
	f.Size = 10
	f.From = 20
	f.SortOrder = "asc"

	q, err := Build(f, testTimezone)
	require.NoError(t, err)

	body := marshal(t, q)
	assert.Contains(t, body, `"size":10`)
	assert.Contains(t, body, `"from":20`)
	assert.Contains(t, body, `"sort":[{"capture_time":{"order":"asc"}}]`)
}

func TestBuildRawOverridePassesThroughVerbatim(t *testing.T) {
	f := baseFilters()
	f.Status = "PENDING"
	f.RawQuery = model.ParseRawDocument([]byte(`{"query":{"term":{"status":"FAILED"}},"size":1}`))

	q, err := Build(f, testTimezone)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(marshal(t, q)), &body))
	assert.Equal(t, float64(1), body["size"])
	assert.NotContains(t, marshal(t, q), "PENDING", "override supersedes every other field")
}

func TestBuildMalformedOverrideFails(t *testing.T) {
	f := baseFilters()
	f.RawQuery = model.ParseRawDocument([]byte(`{"query": nope}`))

	_, err := Build(f, testTimezone)
	require.Error(t, err)
}
