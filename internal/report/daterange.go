package report

import (
	"fmt"
	"strings"
	"time"

	adminerrors "github.com/abgdnv/storeadmin/internal/errors"
	"github.com/abgdnv/storeadmin/internal/model"
)

const dateOnly = "2006-01-02"

// ParseDateRange parses start and end as YYYY-MM-DD (UTC) or RFC 3339 timestamps.
// A date-only end is moved to the last nanosecond of that day.
func ParseDateRange(start, end string) (model.DateRange, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" || end == "" {
		return model.DateRange{}, adminerrors.ErrDateRangeRequired
	}
	s, _, err := parseBound(start)
	if err != nil {
		return model.DateRange{}, fmt.Errorf("%w: start: %v", adminerrors.ErrInvalidDateRange, err)
	}
	e, dayOnly, err := parseBound(end)
	if err != nil {
		return model.DateRange{}, fmt.Errorf("%w: end: %v", adminerrors.ErrInvalidDateRange, err)
	}
	if dayOnly {
		e = e.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if s.After(e) {
		return model.DateRange{}, adminerrors.ErrInvalidDateRange
	}
	return model.DateRange{Start: s, End: e}, nil
}

func parseBound(v string) (time.Time, bool, error) {
	if t, err := time.Parse(dateOnly, v); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("expected YYYY-MM-DD or RFC 3339, got %q", v)
	}
	return t, false, nil
}
