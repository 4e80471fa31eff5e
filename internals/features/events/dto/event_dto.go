// file: internals/features/events/dto/event_dto.go
package dto

import (
	"strings"

	"github.com/bytedance/sonic"

	"msns_backend/internals/rpc"
)

/* ===============================
   Create
=================================*/

type ReminderInput struct {
	Type  string `json:"type"  validate:"required,oneof=EMAIL NOTIFICATION SMS"`
	Value int    `json:"value" validate:"min=1,max=10080"`
}

type EventInput struct {
	Title         string          `json:"title"                   validate:"required,min=1,max=200"`
	Description   *string         `json:"description,omitempty"   validate:"omitempty,max=2000"`
	Date          string          `json:"date"                    validate:"required,ymd"`
	StartTime     string          `json:"startTime"               validate:"required,hhmm"`
	EndTime       string          `json:"endTime"                 validate:"required,hhmm,timeafter=StartTime"`
	Timezone      string          `json:"timezone"                validate:"required,timezone"`
	Location      *string         `json:"location,omitempty"      validate:"omitempty,max=200"`
	Type          string          `json:"type"                    validate:"required,oneof=MEETING WORKSHOP CONFERENCE TRAINING WEBINAR SOCIAL OTHER"`
	Priority      string          `json:"priority"                validate:"required,oneof=LOW MEDIUM HIGH URGENT"`
	Status        string          `json:"status"                  validate:"required,oneof=CONFIRMED TENTATIVE CANCELLED"`
	Recurring     string          `json:"recurring"               validate:"required,oneof=NONE DAILY WEEKLY MONTHLY YEARLY"`
	RecurrenceEnd *string         `json:"recurrenceEnd,omitempty" validate:"omitempty,ymd"`
	Attendees     *int            `json:"attendees,omitempty"     validate:"omitempty,min=1"`
	IsPublic      *bool           `json:"isPublic,omitempty"`
	Notes         *string         `json:"notes,omitempty"         validate:"omitempty,max=2000"`
	TagIDs        []string        `json:"tagIds"                  validate:"max=20,dive,uuid"`
	Reminders     []ReminderInput `json:"reminders"               validate:"max=10,dive"`
	CreatorID     string          `json:"creatorId"               validate:"required,uuid"`
}

// CheckRaw rejects payloads whose core fields are not strings before any
// decoding happens.
func (in *EventInput) CheckRaw(raw []byte) error {
	var obj map[string]any
	if err := sonic.Unmarshal(raw, &obj); err != nil || !IsValidFrontendEvent(obj) {
		return rpc.BadRequest("Invalid event data format")
	}
	return nil
}

func (in *EventInput) Defaults() {
	in.Type = upper(in.Type)
	in.Priority = upper(in.Priority)
	in.Status = upper(in.Status)
	in.Recurring = upper(in.Recurring)
	if strings.TrimSpace(in.Timezone) == "" {
		in.Timezone = "UTC"
	}
	for i := range in.Reminders {
		in.Reminders[i].Type = upper(in.Reminders[i].Type)
	}
}

// Data is the part of the input the frontend shape carries.
func (in *EventInput) Data() FrontendEventData {
	return FrontendEventData{
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Location:    in.Location,
		Type:        in.Type,
		Priority:    in.Priority,
		Status:      in.Status,
		Recurring:   in.Recurring,
		Notes:       in.Notes,
		Attendees:   in.Attendees,
	}
}

/* ===============================
   Update (every field optional)
=================================*/

type UpdateEventInput struct {
	ID            string           `json:"id"                      validate:"required,uuid"`
	Title         *string          `json:"title,omitempty"         validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description,omitempty"   validate:"omitempty,max=2000"`
	Date          *string          `json:"date,omitempty"          validate:"omitempty,ymd"`
	StartTime     *string          `json:"startTime,omitempty"     validate:"omitempty,hhmm"`
	EndTime       *string          `json:"endTime,omitempty"       validate:"omitempty,hhmm"`
	Timezone      *string          `json:"timezone,omitempty"      validate:"omitempty,timezone"`
	Location      *string          `json:"location,omitempty"      validate:"omitempty,max=200"`
	Type          *string          `json:"type,omitempty"          validate:"omitempty,oneof=MEETING WORKSHOP CONFERENCE TRAINING WEBINAR SOCIAL OTHER"`
	Priority      *string          `json:"priority,omitempty"      validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Status        *string          `json:"status,omitempty"        validate:"omitempty,oneof=CONFIRMED TENTATIVE CANCELLED"`
	Recurring     *string          `json:"recurring,omitempty"     validate:"omitempty,oneof=NONE DAILY WEEKLY MONTHLY YEARLY"`
	RecurrenceEnd *string          `json:"recurrenceEnd,omitempty" validate:"omitempty,ymd"`
	Attendees     *int             `json:"attendees,omitempty"     validate:"omitempty,min=1"`
	IsPublic      *bool            `json:"isPublic,omitempty"`
	Notes         *string          `json:"notes,omitempty"         validate:"omitempty,max=2000"`
	TagIDs        *[]string        `json:"tagIds,omitempty"        validate:"omitempty,max=20,dive,uuid"`
	Reminders     *[]ReminderInput `json:"reminders,omitempty"     validate:"omitempty,max=10,dive"`

	clearAttendees bool
}

// ClearsAttendees reports an explicit "attendees": null, which removes the cap.
func (in *UpdateEventInput) ClearsAttendees() bool { return in.clearAttendees }

// CheckRaw only requires the core fields that are present to be strings.
func (in *UpdateEventInput) CheckRaw(raw []byte) error {
	var obj map[string]any
	if err := sonic.Unmarshal(raw, &obj); err != nil {
		return rpc.BadRequest("Invalid event data format")
	}
	for _, k := range frontendStringFields {
		if v, ok := obj[k]; ok {
			if _, isStr := v.(string); !isStr {
				return rpc.BadRequest("Invalid event data format")
			}
		}
	}
	if v, ok := obj["attendees"]; ok && v == nil {
		in.clearAttendees = true
	}
	return nil
}

func (in *UpdateEventInput) Defaults() {
	for _, p := range []*string{in.Type, in.Priority, in.Status, in.Recurring} {
		if p != nil {
			*p = upper(*p)
		}
	}
	if in.Reminders != nil {
		for i := range *in.Reminders {
			(*in.Reminders)[i].Type = upper((*in.Reminders)[i].Type)
		}
	}
}

/* ===============================
   Queries & misc
=================================*/

type EventQueryInput struct {
	StartDate *string `json:"startDate,omitempty" validate:"omitempty,ymd"`
	EndDate   *string `json:"endDate,omitempty"   validate:"omitempty,ymd"`
	Type      *string `json:"type,omitempty"      validate:"omitempty,oneof=MEETING WORKSHOP CONFERENCE TRAINING WEBINAR SOCIAL OTHER"`
	Priority  *string `json:"priority,omitempty"  validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Status    *string `json:"status,omitempty"    validate:"omitempty,oneof=CONFIRMED TENTATIVE CANCELLED"`
	CreatorID *string `json:"creatorId,omitempty" validate:"omitempty,uuid"`
	TagID     *string `json:"tagId,omitempty"     validate:"omitempty,uuid"`
	Search    *string `json:"search,omitempty"    validate:"omitempty,max=100"`
	Limit     int     `json:"limit"               validate:"min=1,max=100"`
	Offset    int     `json:"offset"              validate:"min=0"`
}

func (in *EventQueryInput) Defaults() {
	if in.Limit == 0 {
		in.Limit = 50
	}
	for _, p := range []*string{in.Type, in.Priority, in.Status} {
		if p != nil {
			*p = upper(*p)
		}
	}
}

type EventIDInput struct {
	ID string `json:"id" validate:"required,uuid"`
}

type AddAttendeeInput struct {
	EventID string `json:"eventId" validate:"required,uuid"`
	UserID  string `json:"userId"  validate:"required,uuid"`
	Status  string `json:"status"  validate:"required,oneof=PENDING ACCEPTED DECLINED MAYBE"`
}

func (in *AddAttendeeInput) Defaults() {
	in.Status = upper(in.Status)
	if in.Status == "" {
		in.Status = "PENDING"
	}
}

type UpdateAttendeeStatusInput struct {
	EventID string `json:"eventId" validate:"required,uuid"`
	UserID  string `json:"userId"  validate:"required,uuid"`
	Status  string `json:"status"  validate:"required,oneof=PENDING ACCEPTED DECLINED MAYBE"`
}

func (in *UpdateAttendeeStatusInput) Defaults() { in.Status = upper(in.Status) }

type CreateTagInput struct {
	Name  string `json:"name"  validate:"required,min=1,max=50"`
	Color string `json:"color" validate:"required,hexcolor6"`
}

type UpdateTagInput struct {
	ID    string  `json:"id"              validate:"required,uuid"`
	Name  *string `json:"name,omitempty"  validate:"omitempty,min=1,max=50"`
	Color *string `json:"color,omitempty" validate:"omitempty,hexcolor6"`
}

func upper(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }
