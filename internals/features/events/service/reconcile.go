package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"msns_backend/internals/features/events/dto"
	"msns_backend/internals/features/events/model"
)

type reminderKey struct {
	Type  string
	Value int
}

// diffIDs returns ids only in next (add) and ids only in prev (remove).
func diffIDs(prev, next []uuid.UUID) (add, remove []uuid.UUID) {
	old := make(map[uuid.UUID]bool, len(prev))
	for _, id := range prev {
		old[id] = true
	}
	want := make(map[uuid.UUID]bool, len(next))
	for _, id := range next {
		if want[id] {
			continue
		}
		want[id] = true
		if !old[id] {
			add = append(add, id)
		}
	}
	for _, id := range prev {
		if !want[id] {
			remove = append(remove, id)
		}
	}
	return add, remove
}

func diffReminders(prev []model.EventReminderModel, next []dto.ReminderInput) (add []reminderKey, remove []uuid.UUID) {
	old := make(map[reminderKey]bool, len(prev))
	for _, r := range prev {
		old[reminderKey{r.Type, r.Value}] = true
	}
	want := make(map[reminderKey]bool, len(next))
	for _, r := range next {
		k := reminderKey{r.Type, r.Value}
		if want[k] {
			continue
		}
		want[k] = true
		if !old[k] {
			add = append(add, k)
		}
	}
	for _, r := range prev {
		if !want[reminderKey{r.Type, r.Value}] {
			remove = append(remove, r.ReminderID)
		}
	}
	return add, remove
}

// syncTags makes the event's tag links equal to tagIDs, touching only the
// links that change.
func syncTags(tx *gorm.DB, eventID uuid.UUID, tagIDs []uuid.UUID) error {
	var current []uuid.UUID
	if err := tx.Model(&model.EventTagModel{}).Where("event_id = ?", eventID).Pluck("tag_id", &current).Error; err != nil {
		return err
	}
	add, remove := diffIDs(current, tagIDs)
	if len(remove) > 0 {
		if err := tx.Where("event_id = ? AND tag_id IN ?", eventID, remove).Delete(&model.EventTagModel{}).Error; err != nil {
			return err
		}
	}
	if len(add) > 0 {
		links := make([]model.EventTagModel, 0, len(add))
		for _, id := range add {
			links = append(links, model.EventTagModel{EventID: eventID, TagID: id})
		}
		if err := tx.Omit("Tag").Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
			return err
		}
	}
	return nil
}

func syncReminders(tx *gorm.DB, eventID uuid.UUID, next []dto.ReminderInput) error {
	var current []model.EventReminderModel
	if err := tx.Where("event_id = ?", eventID).Find(&current).Error; err != nil {
		return err
	}
	add, remove := diffReminders(current, next)
	if len(remove) > 0 {
		if err := tx.Where("reminder_id IN ?", remove).Delete(&model.EventReminderModel{}).Error; err != nil {
			return err
		}
	}
	if len(add) > 0 {
		rows := make([]model.EventReminderModel, 0, len(add))
		for _, k := range add {
			rows = append(rows, model.EventReminderModel{EventID: eventID, Type: k.Type, Value: k.Value})
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
			return err
		}
	}
	return nil
}
