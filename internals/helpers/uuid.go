package helper

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ParseUUIDs converts ids already checked by the "uuid" tag; anything that
// still fails to parse is dropped.
func ParseUUIDs(ids []string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, s := range ids {
		id, err := uuid.Parse(s)
		if err != nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ParseUUIDPtr returns nil for empty or invalid input.
func ParseUUIDPtr(s *string) *uuid.UUID {
	if s == nil || *s == "" {
		return nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil
	}
	return &id
}

// NewID fills a nil uuid; used by model BeforeCreate hooks.
func NewID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// Count is the result shape of bulk deletes and inserts.
type Count struct {
	Count int64 `json:"count"`
}

// RowExists checks a single-column key in table. Both names come from code,
// never from input.
func RowExists(tx *gorm.DB, table, column string, id uuid.UUID) (bool, error) {
	var n int64
	if err := tx.Table(table).Where(column+" = ?", id).Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
