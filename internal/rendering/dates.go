package rendering

import "github.com/jonathan/resume-wizard/internal/validation"

// Present labels the open end of a current range.
const Present = "Present"

// displayDate renders an ISO date as MM/YYYY. Unparseable values are returned as is.
func displayDate(s string) string {
	if s == "" {
		return ""
	}
	t, err := validation.ParseDate(s)
	if err != nil {
		return s
	}
	return t.Format("01/2006")
}

// displayRange joins start and end with sep. A current range ends in Present and a
// range without an end shows the start only.
func displayRange(start, end string, current bool, sep string) string {
	switch {
	case start == "" && end == "" && !current:
		return ""
	case current:
		return displayDate(start) + sep + Present
	case end == "":
		return displayDate(start)
	default:
		return displayDate(start) + sep + displayDate(end)
	}
}
