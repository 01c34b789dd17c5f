package util

import "time"

const (
	// LayoutMillisUTC is the login timestamp header format, e.g. 2024-05-01T09:30:00.123Z.
	LayoutMillisUTC = "2006-01-02T15:04:05.000Z"
	// LayoutISO is used for processed_at and health timestamps.
	LayoutISO = "2006-01-02T15:04:05.000000Z07:00"
)

// Clock returns the current time; swapped in tests.
type Clock func() time.Time

func FormatMillisUTC(t time.Time) string {
	return t.UTC().Format(LayoutMillisUTC)
}

func FormatISO(t time.Time) string {
	return t.Format(LayoutISO)
}
