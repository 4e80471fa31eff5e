// file: internals/features/events/dto/event_transform.go
package dto

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"msns_backend/internals/features/events/model"
	helper "msns_backend/internals/helpers"
)

// FrontendEventData is the editable part of an event as the client sends it.
type FrontendEventData struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Location    *string `json:"location,omitempty"`
	Type        string  `json:"type"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	Recurring   string  `json:"recurring"`
	Notes       *string `json:"notes,omitempty"`
	Attendees   *int    `json:"attendees,omitempty"`
}

type TagRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// FrontendEvent is the shape every event procedure returns.
type FrontendEvent struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  *string  `json:"description"`
	Type         string   `json:"type"`
	Date         string   `json:"date"`
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	Location     *string  `json:"location"`
	Attendees    int      `json:"attendees"`
	Priority     string   `json:"priority"`
	Recurring    string   `json:"recurring"`
	Organizer    string   `json:"organizer"`
	Status       string   `json:"status"`
	Reminders    []string `json:"reminders"`
	Notes        *string  `json:"notes"`
	IsOnline     bool     `json:"isOnline"`
	MaxAttendees *int     `json:"maxAttendees"`
	Tags         []TagRef `json:"tags"`
}

// frontendStringFields must be strings in any event payload.
var frontendStringFields = []string{"title", "date", "startTime", "endTime", "type", "priority", "status", "recurring"}

// IsValidFrontendEvent is the structural check applied to raw payloads.
func IsValidFrontendEvent(obj map[string]any) bool {
	if obj == nil {
		return false
	}
	for _, k := range frontendStringFields {
		if _, ok := obj[k].(string); !ok {
			return false
		}
	}
	return true
}

// ToFrontend expects Creator, Attendees, Reminders and EventTags.Tag loaded.
func ToFrontend(e model.EventModel) FrontendEvent {
	reminders := make([]string, 0, len(e.Reminders))
	for _, r := range e.Reminders {
		reminders = append(reminders, fmt.Sprintf("%d minutes before", r.Value))
	}
	tags := make([]TagRef, 0, len(e.EventTags))
	for _, et := range e.EventTags {
		tags = append(tags, TagRef{
			ID:    et.Tag.TagID.String(),
			Name:  et.Tag.Name,
			Color: et.Tag.Color,
		})
	}
	return FrontendEvent{
		ID:           e.EventID.String(),
		Title:        e.Title,
		Description:  e.Description,
		Type:         strings.ToLower(e.Type),
		Date:         time.Time(e.Date).Format(helper.DateLayout),
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		Location:     e.Location,
		Attendees:    len(e.Attendees),
		Priority:     strings.ToLower(e.Priority),
		Recurring:    strings.ToLower(e.Recurring),
		Organizer:    e.Creator.DisplayName(),
		Status:       strings.ToLower(e.Status),
		Reminders:    reminders,
		Notes:        e.Notes,
		IsOnline:     e.IsOnline,
		MaxAttendees: e.MaxAttendees,
		Tags:         tags,
	}
}

// Data turns a shaped event back into editable data; attendees carries the
// capacity, not the current count.
func (f FrontendEvent) Data() FrontendEventData {
	return FrontendEventData{
		Title:       f.Title,
		Description: f.Description,
		Date:        f.Date,
		StartTime:   f.StartTime,
		EndTime:     f.EndTime,
		Location:    f.Location,
		Type:        f.Type,
		Priority:    f.Priority,
		Status:      f.Status,
		Recurring:   f.Recurring,
		Notes:       f.Notes,
		Attendees:   f.MaxAttendees,
	}
}

// ToDatabase upper-cases the enums and derives isOnline from the location.
// An unparsable date yields the zero date; validation runs before this.
func ToDatabase(d FrontendEventData) model.EventModel {
	date, _ := helper.ParseYMD(d.Date)
	m := model.EventModel{
		Title:       d.Title,
		Description: d.Description,
		Date:        datatypes.Date(date),
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
		Location:    d.Location,
		Type:        strings.ToUpper(d.Type),
		Priority:    strings.ToUpper(d.Priority),
		Status:      strings.ToUpper(d.Status),
		Recurring:   strings.ToUpper(d.Recurring),
		Notes:       d.Notes,
		IsOnline:    isOnline(d.Location),
	}
	if d.Attendees != nil && *d.Attendees > 0 {
		n := *d.Attendees
		m.MaxAttendees = &n
	}
	return m
}

func isOnline(location *string) bool {
	return location != nil && strings.Contains(strings.ToLower(*location), "online")
}
