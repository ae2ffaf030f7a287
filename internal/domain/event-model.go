package domain

import "time"

// Event is one entry of the fixed conference schedule.
type Event struct {
	Time        string        // display string, e.g. "9:00 AM"
	Start       string        // 24h clock on the conference day, e.g. "09:00"
	Duration    time.Duration
	Title       string
	Description string
	Icon        string
	Color       string
}
