package timezone

import "time"

const DefaultTimezone = "Europe/Oslo"

// ISODate is the wire format for all dates exchanged with the booking API.
const ISODate = "2006-01-02"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Today returns the current date in the shop timezone, ISO formatted.
func Today() string {
	return Now().Format(ISODate)
}

// ParseDate parses an ISO date in the shop timezone.
func ParseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation(ISODate, dateStr, Location(DefaultTimezone))
}
