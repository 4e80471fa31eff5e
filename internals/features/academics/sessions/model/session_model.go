// file: internals/features/academics/sessions/model/session_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	helper "msns_backend/internals/helpers"
)

// SessionModel is an academic session (school year). At most one row has
// is_active set; uq_sessions_single_active enforces it.
type SessionModel struct {
	SessionID   uuid.UUID      `gorm:"type:uuid;primaryKey;column:session_id" json:"sessionId"`
	SessionName string         `gorm:"type:varchar(100);not null;column:session_name" json:"sessionName"`
	SessionFrom datatypes.Date `gorm:"type:date;not null;column:session_from" json:"sessionFrom"`
	SessionTo   datatypes.Date `gorm:"type:date;not null;column:session_to" json:"sessionTo"`
	IsActive    bool           `gorm:"not null;default:false;column:is_active" json:"isActive"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:updated_at" json:"updatedAt"`
}

func (SessionModel) TableName() string { return "sessions" }

func (m *SessionModel) BeforeCreate(tx *gorm.DB) error {
	helper.NewID(&m.SessionID)
	return nil
}

func (m *SessionModel) BeforeSave(tx *gorm.DB) error {
	m.SessionName = strings.TrimSpace(m.SessionName)
	if time.Time(m.SessionTo).Before(time.Time(m.SessionFrom)) {
		return errors.New("session_to must be >= session_from")
	}
	return nil
}

// ActiveSessionIndexDDL is applied by the migrator after AutoMigrate.
const ActiveSessionIndexDDL = `CREATE UNIQUE INDEX IF NOT EXISTS uq_sessions_single_active ON sessions (is_active) WHERE is_active`
