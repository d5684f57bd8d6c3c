package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// dayFirstLayouts are tried in order for textual dates. Indian rosters are
// overwhelmingly day-first, so dd-mm-yyyy wins over mm-dd-yyyy.
var dayFirstLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"02.01.2006",
	"2-1-2006",
	"2/1/2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	time.RFC3339,
}

// NormalizeDate converts a spreadsheet date cell into ISO yyyy-mm-dd form.
// Accepts ISO dates as-is, Excel serial day numbers, and common day-first
// textual formats.
func NormalizeDate(raw string) (string, error) {
	if isoDateRe.MatchString(raw) {
		if _, err := time.Parse("2006-01-02", raw); err == nil {
			return raw, nil
		}
	}

	// Excel stores dates as days since 1899-12-30; plausible birth dates
	// land in the 4-5 digit range.
	if serial, err := strconv.Atoi(raw); err == nil && serial > 1000 && serial < 80000 {
		base := time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
		return base.AddDate(0, 0, serial).Format("2006-01-02"), nil
	}

	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}

	return "", fmt.Errorf("unrecognized date format: %q", raw)
}
