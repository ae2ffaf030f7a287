package services

import (
	"time"

	"github.com/ieeespac/spac_site/internal/domain"
)

const (
	colorBlue   = "#2196f3"
	colorGreen  = "#4caf50"
	colorOrange = "#ff9800"
	colorPurple = "#9c27b0"
)

// ConferenceEvents is the conference programme in display order.
func ConferenceEvents() []domain.Event {
	return []domain.Event{
		{
			Time: "9:00 AM", Start: "09:00", Duration: 30 * time.Minute,
			Title:       "Opening Remarks",
			Description: "Welcome from the IEEE student branch and an overview of the day.",
			Icon:        "mic", Color: colorBlue,
		},
		{
			Time: "9:30 AM", Start: "09:30", Duration: time.Hour,
			Title:       "Keynote",
			Description: "Industry leaders on building a career in engineering.",
			Icon:        "star", Color: colorPurple,
		},
		{
			Time: "10:45 AM", Start: "10:45", Duration: 75 * time.Minute,
			Title:       "Resume Workshop",
			Description: "Hands-on review of resumes with recruiters from our patrons.",
			Icon:        "work", Color: colorGreen,
		},
		{
			Time: "12:00 PM", Start: "12:00", Duration: time.Hour,
			Title:       "Networking Lunch",
			Description: "Meet the patrons and fellow students in the networking lounge.",
			Icon:        "people", Color: colorOrange,
		},
		{
			Time: "1:00 PM", Start: "13:00", Duration: 90 * time.Minute,
			Title:       "Technical Interview Panel",
			Description: "Engineers walk through what they look for in interviews.",
			Icon:        "school", Color: colorBlue,
		},
		{
			Time: "2:45 PM", Start: "14:45", Duration: 90 * time.Minute,
			Title:       "Career Fair",
			Description: "One-on-one sessions at patron booths.",
			Icon:        "work", Color: colorGreen,
		},
		{
			Time: "4:30 PM", Start: "16:30", Duration: 30 * time.Minute,
			Title:       "Closing Ceremony",
			Description: "Prize draw and closing words.",
			Icon:        "star", Color: colorPurple,
		},
	}
}
