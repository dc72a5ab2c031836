package models

import "time"

// dateLayouts are the timestamp shapes seen in stored records.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
}

// FormatDate renders a stored ISO-8601 timestamp as "dd/mm/yyyy hh:mm".
// Malformed input fails soft: the raw stored string is returned
// unchanged rather than raising.
func FormatDate(iso string) string {
	if iso == "" {
		return NA
	}
	t, ok := ParseDate(iso)
	if !ok {
		return iso
	}
	return t.Format("02/01/2006 15:04")
}

// ParseDate attempts to parse a stored timestamp string.
func ParseDate(iso string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
