package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"msns_backend/internals/features/events/dto"
	"msns_backend/internals/features/events/model"
	helper "msns_backend/internals/helpers"
	"msns_backend/internals/rpc"
)

// AddAttendee upserts (event, user). Capacity only applies to new pairs;
// the event row is locked so concurrent joins cannot overfill it.
func (s *Service) AddAttendee(ctx context.Context, in dto.AddAttendeeInput) (*model.EventAttendeeModel, error) {
	eventID := uuid.MustParse(in.EventID)
	userID := uuid.MustParse(in.UserID)

	var out model.EventAttendeeModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ev model.EventModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("event_id", "max_attendees").
			Where("event_id = ?", eventID).
			Take(&ev).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rpc.NotFound("Event not found")
		}
		if err != nil {
			return err
		}
		if ok, err := helper.RowExists(tx, "users", "user_id", userID); err != nil {
			return err
		} else if !ok {
			return rpc.NotFound("User not found")
		}

		var existing int64
		if err := tx.Model(&model.EventAttendeeModel{}).
			Where("event_id = ? AND user_id = ?", eventID, userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing == 0 && ev.MaxAttendees != nil {
			var count int64
			if err := tx.Model(&model.EventAttendeeModel{}).Where("event_id = ?", eventID).Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(*ev.MaxAttendees) {
				return rpc.Conflict("Event is at full capacity")
			}
		}

		row := model.EventAttendeeModel{EventID: eventID, UserID: userID, Status: model.AttendeeStatus(in.Status)}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).Create(&row).Error; err != nil {
			return err
		}
		return tx.Where("event_id = ? AND user_id = ?", eventID, userID).Take(&out).Error
	})
	if err != nil {
		return nil, fail(err, "Failed to add attendee")
	}
	return &out, nil
}

func (s *Service) UpdateAttendeeStatus(ctx context.Context, in dto.UpdateAttendeeStatusInput) (*model.EventAttendeeModel, error) {
	var out model.EventAttendeeModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ? AND user_id = ?", in.EventID, in.UserID).Take(&out).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return rpc.NotFound("Attendee record not found")
			}
			return err
		}
		out.Status = model.AttendeeStatus(in.Status)
		return tx.Save(&out).Error
	})
	if err != nil {
		return nil, fail(err, "Failed to update attendee status")
	}
	return &out, nil
}
