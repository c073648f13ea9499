package hr

import (
	"strings"
	"time"

	"cazinoureview/constants"
	"cazinoureview/errors"
)

// Month is the canonical month identity. The persisted row key and the
// sheet-tab candidates are both derived from it, never from each other.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses the operator-facing form, e.g. "August 2025".
func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Month{}, errors.NewAppError(errors.ErrCodeInvalidMonth, "month is required", nil)
	}

	t, err := time.Parse(constants.MonthLayout, s)
	if err != nil {
		return Month{}, errors.NewAppError(errors.ErrCodeInvalidMonth, "month must look like 'August 2025'", err)
	}

	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// Key is the persisted-store month key, e.g. "August 2025".
func (m Month) Key() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format(constants.MonthLayout)
}

// Name is the bare month word, e.g. "August".
func (m Month) Name() string {
	return m.Month.String()
}

// SheetCandidates are the tab names to search for, in priority order.
// Source spreadsheets usually name tabs after the bare month.
func (m Month) SheetCandidates() []string {
	return []string{m.Name(), m.Key()}
}

func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}
