package validation

import (
	"strings"
	"time"
)

// MsgDateOrder is reported when a range starts after it ends.
const MsgDateOrder = "Start date cannot be after end date"

var dateLayouts = []string{"2006-01-02", "2006-01"}

// DateRange is the composite value behind a start/end/current picker.
type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Current   bool   `json:"current"`
}

// WithCurrent toggles the current flag. Turning it on clears the end date.
func (r DateRange) WithCurrent(current bool) DateRange {
	r.Current = current
	if current {
		r.EndDate = ""
	}
	return r
}

// ParseDate parses YYYY-MM-DD or YYYY-MM. Month-only dates resolve to the first day.
func ParseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		t, err = time.Parse(layout, strings.TrimSpace(s))
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// CheckDate applies the required and format rules to a single date value.
func CheckDate(label, value string, required bool) Result {
	return Check(label, value, Rules{
		Required: required,
		Custom: func(v string) (bool, string) {
			_, err := ParseDate(v)
			return err == nil, ""
		},
	})
}

// CheckDateRange validates the range as a unit: it fails if either date fails or the
// start is after the end. An end date is never required, nor even read, when the range
// is current.
func CheckDateRange(r DateRange, required bool) Result {
	if res := CheckDate("Start date", r.StartDate, required); !res.Valid {
		return res
	}
	if r.Current {
		return valid
	}
	if res := CheckDate("End date", r.EndDate, required); !res.Valid {
		return res
	}

	if strings.TrimSpace(r.StartDate) == "" || strings.TrimSpace(r.EndDate) == "" {
		return valid
	}
	start, _ := ParseDate(r.StartDate)
	end, _ := ParseDate(r.EndDate)
	if start.After(end) {
		return invalid(MsgDateOrder)
	}
	return valid
}

// NewDateRangeField returns a machine for a date range picker.
func NewDateRangeField(value DateRange, required bool) *Machine[DateRange] {
	return NewMachine(value, func(r DateRange) Result {
		return CheckDateRange(r, required)
	})
}
