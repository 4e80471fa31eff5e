// file: internals/features/events/service/event_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"msns_backend/internals/features/events/dto"
	"msns_backend/internals/features/events/model"
	helper "msns_backend/internals/helpers"
	"msns_backend/internals/rpc"
)

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{db: db} }

func withRelations(q *gorm.DB) *gorm.DB {
	return q.Preload("Creator").
		Preload("Attendees").
		Preload("Reminders", func(db *gorm.DB) *gorm.DB { return db.Order("value ASC") }).
		Preload("EventTags.Tag")
}

func (s *Service) load(tx *gorm.DB, id uuid.UUID) (dto.FrontendEvent, error) {
	var m model.EventModel
	if err := withRelations(tx).Where("event_id = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FrontendEvent{}, rpc.NotFound("Event not found")
		}
		return dto.FrontendEvent{}, err
	}
	return dto.ToFrontend(m), nil
}

// fail passes classified errors through and wraps the rest.
func fail(err error, msg string) error {
	if e := rpc.AsError(err); e.Code != rpc.CodeInternal {
		return e
	}
	return rpc.Internal(msg, err)
}

func (s *Service) List(ctx context.Context, in dto.EventQueryInput) ([]dto.FrontendEvent, error) {
	q := s.db.WithContext(ctx).Model(&model.EventModel{})
	if in.StartDate != nil && in.EndDate != nil {
		from, _ := helper.ParseYMD(*in.StartDate)
		to, _ := helper.ParseYMD(*in.EndDate)
		q = q.Where("date BETWEEN ? AND ?", datatypes.Date(from), datatypes.Date(to))
	}
	if in.Type != nil {
		q = q.Where("type = ?", *in.Type)
	}
	if in.Priority != nil {
		q = q.Where("priority = ?", *in.Priority)
	}
	if in.Status != nil {
		q = q.Where("status = ?", *in.Status)
	}
	if in.CreatorID != nil {
		q = q.Where("creator_id = ?", *in.CreatorID)
	}
	if in.TagID != nil {
		q = q.Where("EXISTS (SELECT 1 FROM event_tags et WHERE et.event_id = events.event_id AND et.tag_id = ?)", *in.TagID)
	}
	if in.Search != nil && strings.TrimSpace(*in.Search) != "" {
		cols := []string{"title", "description", "location"}
		q = q.Where(helper.LikeClause(cols...), helper.LikeArgs(helper.ContainsPattern(*in.Search), len(cols))...)
	}

	var rows []model.EventModel
	err := withRelations(q).
		Order("date ASC").Order("start_time ASC").
		Offset(in.Offset).Limit(in.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, rpc.Internal("Failed to retrieve events", err)
	}
	out := make([]dto.FrontendEvent, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.ToFrontend(m))
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, in dto.EventIDInput) (dto.FrontendEvent, error) {
	ev, err := s.load(s.db.WithContext(ctx), uuid.MustParse(in.ID))
	if err != nil {
		return ev, fail(err, "Failed to retrieve event")
	}
	return ev, nil
}

func (s *Service) Create(ctx context.Context, in dto.EventInput) (dto.FrontendEvent, error) {
	m := dto.ToDatabase(in.Data())
	m.Timezone = in.Timezone
	creatorID := uuid.MustParse(in.CreatorID)
	m.CreatorID = &creatorID
	m.IsPublic = in.IsPublic == nil || *in.IsPublic
	if in.RecurrenceEnd != nil {
		t, _ := helper.ParseYMD(*in.RecurrenceEnd)
		d := datatypes.Date(t)
		m.RecurrenceEnd = &d
	}
	tagIDs := helper.ParseUUIDs(in.TagIDs)

	var out dto.FrontendEvent
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if ok, err := helper.RowExists(tx, "users", "user_id", creatorID); err != nil {
			return err
		} else if !ok {
			return rpc.NotFound("Creator not found")
		}
		if err := requireTags(tx, tagIDs); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&m).Error; err != nil {
			return err
		}
		if err := syncTags(tx, m.EventID, tagIDs); err != nil {
			return err
		}
		if err := syncReminders(tx, m.EventID, in.Reminders); err != nil {
			return err
		}
		ev, err := s.load(tx, m.EventID)
		out = ev
		return err
	})
	if err != nil {
		return out, fail(err, "Failed to create event")
	}
	return out, nil
}

func (s *Service) Update(ctx context.Context, in dto.UpdateEventInput) (dto.FrontendEvent, error) {
	id := uuid.MustParse(in.ID)
	var out dto.FrontendEvent
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.EventModel
		if err := tx.Where("event_id = ?", id).Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return rpc.NotFound("Event not found")
			}
			return err
		}
		if err := applyUpdates(&m, in); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(&m).Error; err != nil {
			return err
		}
		if in.TagIDs != nil {
			tagIDs := helper.ParseUUIDs(*in.TagIDs)
			if err := requireTags(tx, tagIDs); err != nil {
				return err
			}
			if err := syncTags(tx, id, tagIDs); err != nil {
				return err
			}
		}
		if in.Reminders != nil {
			if err := syncReminders(tx, id, *in.Reminders); err != nil {
				return err
			}
		}
		ev, err := s.load(tx, id)
		out = ev
		return err
	})
	if err != nil {
		return out, fail(err, "Failed to update event")
	}
	return out, nil
}

func applyUpdates(m *model.EventModel, in dto.UpdateEventInput) error {
	if in.Title != nil {
		m.Title = *in.Title
	}
	if in.Description != nil {
		m.Description = in.Description
	}
	if in.Date != nil {
		t, _ := helper.ParseYMD(*in.Date)
		m.Date = datatypes.Date(t)
	}
	if in.StartTime != nil {
		m.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		m.EndTime = *in.EndTime
	}
	if in.Timezone != nil {
		m.Timezone = *in.Timezone
	}
	if in.Location != nil {
		m.Location = in.Location
		m.IsOnline = strings.Contains(strings.ToLower(*in.Location), "online")
	}
	if in.Type != nil {
		m.Type = *in.Type
	}
	if in.Priority != nil {
		m.Priority = *in.Priority
	}
	if in.Status != nil {
		m.Status = *in.Status
	}
	if in.Recurring != nil {
		m.Recurring = *in.Recurring
	}
	if in.RecurrenceEnd != nil {
		t, _ := helper.ParseYMD(*in.RecurrenceEnd)
		d := datatypes.Date(t)
		m.RecurrenceEnd = &d
	}
	if in.Attendees != nil {
		n := *in.Attendees
		m.MaxAttendees = &n
	} else if in.ClearsAttendees() {
		m.MaxAttendees = nil
	}
	if in.IsPublic != nil {
		m.IsPublic = *in.IsPublic
	}
	if in.Notes != nil {
		m.Notes = in.Notes
	}

	start, _ := helper.MinutesOfDay(m.StartTime)
	end, _ := helper.MinutesOfDay(m.EndTime)
	if end <= start {
		return rpc.FieldError("endTime", "endTime must be after startTime")
	}
	return nil
}

// Delete removes the event and everything attached to it, returning the
// event as it was.
func (s *Service) Delete(ctx context.Context, in dto.EventIDInput) (dto.FrontendEvent, error) {
	id := uuid.MustParse(in.ID)
	var out dto.FrontendEvent
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ev, err := s.load(tx, id)
		if err != nil {
			return err
		}
		out = ev
		for _, m := range []any{&model.EventReminderModel{}, &model.EventAttendeeModel{}, &model.EventTagModel{}} {
			if err := tx.Where("event_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Where("event_id = ?", id).Delete(&model.EventModel{}).Error
	})
	if err != nil {
		return out, fail(err, "Failed to delete event")
	}
	return out, nil
}

func (s *Service) EventTypes(context.Context, rpc.Empty) ([]string, error) {
	return model.EventTypes, nil
}

func (s *Service) PriorityLevels(context.Context, rpc.Empty) ([]string, error) {
	return model.PriorityLevels, nil
}

func requireTags(tx *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	var n int64
	if err := tx.Model(&model.TagModel{}).Where("tag_id IN ?", ids).Count(&n).Error; err != nil {
		return err
	}
	if n != int64(len(ids)) {
		return rpc.NotFound("Tag not found")
	}
	return nil
}
