package domain

import "time"

// Clock supplies the current time to services that stamp or window events.
// Injecting it lets tests pin "now" instead of reading the wall clock.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

// Now returns f().
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the server's wall clock in its local timezone.
// "Today" at the kiosk is always the server's calendar day.
var SystemClock Clock = ClockFunc(time.Now)
