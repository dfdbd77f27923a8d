package formatcode

import "time"

// Clock supplies "now" to relative date conversions.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// InLocation returns a Clock reading the wall clock in loc.
func InLocation(loc *time.Location) Clock {
	return ClockFunc(func() time.Time { return time.Now().In(loc) })
}

// Fixed returns a Clock that always reads t.
func Fixed(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
