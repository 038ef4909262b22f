package utils

import "time"

// Clock returns the current instant. Services take one so expiry checks can be
// pinned in tests.
type Clock func() time.Time

func SystemClock() time.Time { return time.Now().UTC() }

func NowUnixSeconds() int64 { return time.Now().Unix() }

// FromUnixSeconds converts a stored epoch value in seconds to UTC.
// Returns zero time if t<=0 to let callers decide how to render.
func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).UTC()
}
