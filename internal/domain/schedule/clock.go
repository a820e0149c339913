package schedule

import "errors"

var errBadClock = errors.New("expected HH:mm")

// parseClock parses a strict 24-hour "HH:mm" value into minutes after
// midnight. "9:00", "24:00" and "09:00:00" are rejected.
func parseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, errBadClock
	}
	for _, i := range [4]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, errBadClock
		}
	}
	hh := int(s[0]-'0')*10 + int(s[1]-'0')
	mm := int(s[3]-'0')*10 + int(s[4]-'0')
	if hh > 23 || mm > 59 {
		return 0, errBadClock
	}
	return hh*60 + mm, nil
}
