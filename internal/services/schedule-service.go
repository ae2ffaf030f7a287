package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/ieeespac/spac_site/internal/domain"
	"github.com/ieeespac/spac_site/internal/dto"
	"github.com/ieeespac/spac_site/internal/helper"
)

const (
	borderLeft  = "0 0 0 5px"
	borderRight = "0 5px 0 0"
)

type ScheduleService interface {
	Events() []domain.Event
	Timeline() []dto.TimelineElement
	ICS() ([]byte, error)
}

type ScheduleOptions struct {
	ConferenceName string
	Date           string // YYYY-MM-DD
	Location       *time.Location
	Now            func() time.Time
}

type scheduleService struct {
	events []domain.Event
	opts   ScheduleOptions
}

// NewScheduleService serves the given events; nil means the conference programme.
func NewScheduleService(events []domain.Event, opts ScheduleOptions) ScheduleService {
	if events == nil {
		events = ConferenceEvents()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &scheduleService{events: events, opts: opts}
}

func (s *scheduleService) Events() []domain.Event {
	out := make([]domain.Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *scheduleService) Timeline() []dto.TimelineElement {
	return BuildTimeline(s.events)
}

// BuildTimeline maps events to timeline elements in input order, alternating
// the border side by index parity.
func BuildTimeline(events []domain.Event) []dto.TimelineElement {
	elements := make([]dto.TimelineElement, 0, len(events))
	for i, ev := range events {
		side, border := "left", borderLeft
		if i%2 != 0 {
			side, border = "right", borderRight
		}
		elements = append(elements, dto.TimelineElement{
			Index:       i,
			Time:        ev.Time,
			Title:       ev.Title,
			Description: ev.Description,
			Icon:        ev.Icon,
			Color:       ev.Color,
			Side:        side,
			BorderWidth: border,
		})
	}
	return elements
}

// ICS renders the schedule as an iCalendar feed on the conference date.
func (s *scheduleService) ICS() ([]byte, error) {
	day, err := time.ParseInLocation("2006-01-02", s.opts.Date, s.opts.Location)
	if err != nil {
		return nil, fmt.Errorf("parse conference date %q: %w", s.opts.Date, err)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//IEEE SPAC//Schedule//EN")
	if s.opts.ConferenceName != "" {
		cal.Props.SetText("X-WR-CALNAME", s.opts.ConferenceName)
	}

	stamp := s.opts.Now().UTC()
	for i, ev := range s.events {
		clock, err := time.Parse("15:04", ev.Start)
		if err != nil {
			return nil, fmt.Errorf("event %q start %q: %w", ev.Title, ev.Start, err)
		}
		start := day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
		duration := ev.Duration
		if duration <= 0 {
			duration = 30 * time.Minute
		}

		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, fmt.Sprintf("%s-%02d-%s@spac", s.opts.Date, i, helper.Slug(ev.Title)))
		event.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
		// UTC keeps the feed free of TZID references, which would need VTIMEZONE blocks
		event.Props.SetDateTime(ical.PropDateTimeStart, start.UTC())
		event.Props.SetDateTime(ical.PropDateTimeEnd, start.Add(duration).UTC())
		event.Props.SetText(ical.PropSummary, ev.Title)
		event.Props.SetText(ical.PropDescription, ev.Description)
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}
