package flow

import (
	"errors"
	"strings"
	"time"
)

// DisplayDateLayout is the month-year format printed on the page.
const DisplayDateLayout = "Jan 2006"

// PresentLabel stands in for the end date of a current entry.
const PresentLabel = "Present"

// dateLayouts are tried in order. Month inputs come from the form's
// month pickers; the others cover imported data.
var dateLayouts = []string{
	"2006-01",
	"2006-01-02",
	time.RFC3339,
	"2006",
	"01/2006",
	"Jan 2006",
	"January 2006",
}

var errUnrecognizedDate = errors.New("unrecognized date format")

// ParseDate parses a resume date in any accepted layout.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errUnrecognizedDate
}

// FormatDate renders a date as "Jan 2006". A blank input renders blank; an
// unparseable input renders blank and returns an error.
func FormatDate(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(DisplayDateLayout), nil
}

// DateRange renders "{start} - {end}" where a current entry ends in
// "Present". The result is trimmed, so a blank start yields "- Present" and a
// blank range yields "". Unparseable sides render blank and are reported as
// *DateError warnings.
func DateRange(entryID, start, end string, current bool) (string, []error) {
	var warnings []error

	from, err := FormatDate(start)
	if err != nil {
		warnings = append(warnings, &DateError{EntryID: entryID, Field: "startDate", Value: start, Cause: err})
	}

	to := PresentLabel
	if !current {
		to, err = FormatDate(end)
		if err != nil {
			warnings = append(warnings, &DateError{EntryID: entryID, Field: "endDate", Value: end, Cause: err})
		}
	}

	if from == "" && to == "" {
		return "", warnings
	}
	return strings.TrimSpace(from + " - " + to), warnings
}
