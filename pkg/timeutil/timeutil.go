package timeutil

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	TimeFormatCommonStyleDay = "2006-01-02"
	TimeFormatCommonStyleMin = "2006-01-02 15:04"
	TimeFormatCommonStyleSec = "2006-01-02 15:04:05"
)

// Elasticsearch date-math expressions for the relative ranges. "now" is
// evaluated by the backend in the time_zone attached to the range clause.
const (
	DateMathStartOfToday     = "now/d"
	DateMathStartOfTomorrow  = "now/d+1d"
	DateMathStartOfYesterday = "now-1d/d"
	DateMathSevenDaysAgo     = "now-7d/d"
)

// DisplayLocation resolves an IANA zone name, falling back to UTC with a
// warning rather than failing the request.
func DisplayLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warnf("invalid timezone %q, falling back to UTC: %v", name, err)
		return time.UTC
	}
	return loc
}

// FormatInZone renders a stored UTC timestamp in the display zone.
func FormatInZone(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(TimeFormatCommonStyleSec)
}

// FormatUTC renders the source UTC form, kept next to the localized one in
// context blocks.
func FormatUTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseFlexible accepts RFC3339 first, then the common date styles. Bare
// dates parse as midnight UTC.
func ParseFlexible(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	for _, layout := range []string{TimeFormatCommonStyleSec, TimeFormatCommonStyleMin, TimeFormatCommonStyleDay} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
