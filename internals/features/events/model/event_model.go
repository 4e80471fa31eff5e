// file: internals/features/events/model/event_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	accountmodel "msns_backend/internals/features/users/accounts/model"
	helper "msns_backend/internals/helpers"
)

// ============================
// Enums (stored upper case)
// ============================

var (
	EventTypes     = []string{"MEETING", "WORKSHOP", "CONFERENCE", "TRAINING", "WEBINAR", "SOCIAL", "OTHER"}
	PriorityLevels = []string{"LOW", "MEDIUM", "HIGH", "URGENT"}
	EventStatuses  = []string{"CONFIRMED", "TENTATIVE", "CANCELLED"}
	Recurrences    = []string{"NONE", "DAILY", "WEEKLY", "MONTHLY", "YEARLY"}
	ReminderTypes  = []string{"EMAIL", "NOTIFICATION", "SMS"}
)

type AttendeeStatus string

const (
	AttendeePending  AttendeeStatus = "PENDING"
	AttendeeAccepted AttendeeStatus = "ACCEPTED"
	AttendeeDeclined AttendeeStatus = "DECLINED"
	AttendeeMaybe    AttendeeStatus = "MAYBE"
)

// ============================
// Event
// ============================

type EventModel struct {
	EventID     uuid.UUID      `gorm:"type:uuid;primaryKey;column:event_id" json:"id"`
	Title       string         `gorm:"type:varchar(200);not null;column:title" json:"title"`
	Description *string        `gorm:"type:text;column:description" json:"description,omitempty"`
	Date        datatypes.Date `gorm:"type:date;not null;index:idx_events_date_start,priority:1;column:date" json:"date"`
	StartTime   string         `gorm:"type:varchar(5);not null;index:idx_events_date_start,priority:2;column:start_time" json:"startTime"`
	EndTime     string         `gorm:"type:varchar(5);not null;column:end_time" json:"endTime"`
	Timezone    string         `gorm:"type:varchar(64);not null;default:'UTC';column:timezone" json:"timezone"`

	Location *string `gorm:"type:varchar(200);column:location" json:"location,omitempty"`
	IsOnline bool    `gorm:"not null;default:false;column:is_online" json:"isOnline"`

	Type          string          `gorm:"type:varchar(12);not null;index;column:type" json:"type"`
	Priority      string          `gorm:"type:varchar(8);not null;index;column:priority" json:"priority"`
	Status        string          `gorm:"type:varchar(10);not null;index;column:status" json:"status"`
	Recurring     string          `gorm:"type:varchar(8);not null;default:'NONE';column:recurring" json:"recurring"`
	RecurrenceEnd *datatypes.Date `gorm:"type:date;column:recurrence_end" json:"recurrenceEnd,omitempty"`

	MaxAttendees *int    `gorm:"column:max_attendees" json:"maxAttendees,omitempty"`
	IsPublic     bool    `gorm:"not null;default:true;column:is_public" json:"isPublic"`
	Notes        *string `gorm:"type:text;column:notes" json:"notes,omitempty"`

	// nil once the creating account has been deleted
	CreatorID *uuid.UUID             `gorm:"type:uuid;index;column:creator_id" json:"creatorId"`
	Creator   accountmodel.UserModel `gorm:"foreignKey:CreatorID;references:UserID;constraint:OnDelete:SET NULL" json:"-"`

	Attendees []EventAttendeeModel `gorm:"foreignKey:EventID;references:EventID" json:"-"`
	Reminders []EventReminderModel `gorm:"foreignKey:EventID;references:EventID" json:"-"`
	EventTags []EventTagModel      `gorm:"foreignKey:EventID;references:EventID" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:updated_at" json:"updatedAt"`
}

func (EventModel) TableName() string { return "events" }

func (m *EventModel) BeforeCreate(tx *gorm.DB) error {
	helper.NewID(&m.EventID)
	return nil
}

func (m *EventModel) BeforeSave(tx *gorm.DB) error {
	m.Title = strings.TrimSpace(m.Title)
	if m.Timezone == "" {
		m.Timezone = "UTC"
	}
	return nil
}

// ============================
// Associations
// ============================

type EventAttendeeModel struct {
	AttendeeID uuid.UUID      `gorm:"type:uuid;primaryKey;column:attendee_id" json:"id"`
	EventID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_event_attendees,priority:1;column:event_id" json:"eventId"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_event_attendees,priority:2;index;column:user_id" json:"userId"`
	Status     AttendeeStatus `gorm:"type:varchar(10);not null;default:'PENDING';column:status" json:"status"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:updated_at" json:"updatedAt"`
}

func (EventAttendeeModel) TableName() string { return "event_attendees" }

func (m *EventAttendeeModel) BeforeCreate(tx *gorm.DB) error {
	helper.NewID(&m.AttendeeID)
	return nil
}

// EventReminderModel: Value is minutes before the start.
type EventReminderModel struct {
	ReminderID uuid.UUID `gorm:"type:uuid;primaryKey;column:reminder_id" json:"id"`
	EventID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_event_reminders,priority:1;column:event_id" json:"eventId"`
	Type       string    `gorm:"type:varchar(12);not null;uniqueIndex:uq_event_reminders,priority:2;column:type" json:"type"`
	Value      int       `gorm:"not null;uniqueIndex:uq_event_reminders,priority:3;column:value" json:"value"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"createdAt"`
}

func (EventReminderModel) TableName() string { return "event_reminders" }

func (m *EventReminderModel) BeforeCreate(tx *gorm.DB) error {
	helper.NewID(&m.ReminderID)
	return nil
}

type TagModel struct {
	TagID uuid.UUID `gorm:"type:uuid;primaryKey;column:tag_id" json:"id"`
	Name  string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_tags_name;column:name" json:"name"`
	Color string    `gorm:"type:varchar(7);not null;column:color" json:"color"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:updated_at" json:"updatedAt"`
}

func (TagModel) TableName() string { return "tags" }

func (m *TagModel) BeforeCreate(tx *gorm.DB) error {
	helper.NewID(&m.TagID)
	return nil
}

func (m *TagModel) BeforeSave(tx *gorm.DB) error {
	m.Name = strings.TrimSpace(m.Name)
	return nil
}

type EventTagModel struct {
	EventID uuid.UUID `gorm:"type:uuid;primaryKey;column:event_id" json:"eventId"`
	TagID   uuid.UUID `gorm:"type:uuid;primaryKey;index;column:tag_id" json:"tagId"`
	Tag     TagModel  `gorm:"foreignKey:TagID;references:TagID;constraint:-" json:"tag"`
}

func (EventTagModel) TableName() string { return "event_tags" }
