// Package itinerary holds the pure rules that keep a trip coherent: derived
// date ranges, destination ordering, and the persist-or-skip rule for
// transport and accommodation details. Nothing here touches storage.
package itinerary

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Calendar days only. Every date handled here is a UTC midnight.
const day = 24 * time.Hour

// ParseDate parses a YYYY-MM-DD calendar day. A full RFC 3339 timestamp is also
// accepted and truncated to its date part.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return TruncateDate(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
}

// ParseOptionalDate returns nil for empty or unparsable input.
func ParseOptionalDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil
	}
	return &t
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatOptionalDate renders nil as nil, which encodes as JSON null.
func FormatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDate(*t)
	return &s
}

// TruncateDate drops the clock part and pins the date to UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a calendar day, rolling months and years over.
func AddDays(t time.Time, days int) time.Time {
	return TruncateDate(t).AddDate(0, 0, days)
}

// DateRange is the derived stay of one destination. Both bounds are nil when
// the trip has no start date.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

func effectiveDuration(d int) int {
	if d < 0 {
		return 0
	}
	return d
}

// TotalDays sums the durations of an itinerary.
func TotalDays(durations []int) int {
	total := 0
	for _, d := range durations {
		total += effectiveDuration(d)
	}
	return total
}

// DeriveDateRanges computes the stay of every destination from the trip start
// and the ordered durations. Destination i starts on the end day of i-1.
func DeriveDateRanges(tripStart *time.Time, durations []int) []DateRange {
	ranges := make([]DateRange, len(durations))
	if tripStart == nil {
		return ranges
	}

	offset := 0
	for i, d := range durations {
		start := AddDays(*tripStart, offset)
		offset += effectiveDuration(d)
		end := AddDays(*tripStart, offset)
		ranges[i] = DateRange{Start: &start, End: &end}
	}
	return ranges
}

// TripEndDate is start + total days, or nil without a start date.
func TripEndDate(tripStart *time.Time, durations []int) *time.Time {
	if tripStart == nil {
		return nil
	}
	end := AddDays(*tripStart, TotalDays(durations))
	return &end
}

type EndDateError string

const (
	EndDateBeforeStart EndDateError = "endDateBeforeStart"
	EndDateCollision   EndDateError = "endDateCollision"
)

type EndDateValidation struct {
	Valid      bool         `json:"valid"`
	Error      EndDateError `json:"error,omitempty"`
	Difference *int         `json:"difference,omitempty"`
}

// ValidateEndDate checks a proposed trip end against the days already planned.
// A negative difference means the new end would cut into planned stays.
func ValidateEndDate(start, proposedEnd time.Time, currentTotalDays int) EndDateValidation {
	start = TruncateDate(start)
	proposedEnd = TruncateDate(proposedEnd)

	if proposedEnd.Before(start) {
		return EndDateValidation{Valid: false, Error: EndDateBeforeStart}
	}

	proposedTotal := int(math.Ceil(float64(proposedEnd.Sub(start)) / float64(day)))
	difference := proposedTotal - currentTotalDays
	if difference < 0 {
		return EndDateValidation{Valid: false, Error: EndDateCollision, Difference: &difference}
	}
	return EndDateValidation{Valid: true, Difference: &difference}
}

// EndDatePolicy decides what happens with the surplus days of a valid end date.
type EndDatePolicy string

const (
	// EndDatePolicyAppend adds a new destination spanning the surplus.
	EndDatePolicyAppend EndDatePolicy = "append"
	// EndDatePolicyExtend lengthens the last destination by the surplus.
	EndDatePolicyExtend EndDatePolicy = "extend"
)

func ParseEndDatePolicy(s string) (EndDatePolicy, error) {
	switch EndDatePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", EndDatePolicyAppend:
		return EndDatePolicyAppend, nil
	case EndDatePolicyExtend:
		return EndDatePolicyExtend, nil
	default:
		return "", fmt.Errorf("unknown end date policy %q", s)
	}
}
