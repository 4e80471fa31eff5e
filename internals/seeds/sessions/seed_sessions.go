package sessions

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"msns_backend/internals/features/academics/sessions/model"
)

// AcademicYear returns the April to March year that contains now.
func AcademicYear(now time.Time) (name string, from, to time.Time) {
	start := now.Year()
	if now.Month() < time.April {
		start--
	}
	from = time.Date(start, time.April, 1, 0, 0, 0, 0, time.UTC)
	to = time.Date(start+1, time.March, 31, 0, 0, 0, 0, time.UTC)
	return fmt.Sprintf("%d-%d", start, start+1), from, to
}

// SeedCurrentSession creates the current academic year as the active
// session when no session exists yet.
func SeedCurrentSession(db *gorm.DB, log zerolog.Logger, now time.Time) (bool, error) {
	var n int64
	if err := db.Model(&model.SessionModel{}).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		log.Debug().Int64("sessions", n).Msg("sessions exist, skipped")
		return false, nil
	}
	name, from, to := AcademicYear(now)
	err := db.Create(&model.SessionModel{
		SessionName: name,
		SessionFrom: datatypes.Date(from),
		SessionTo:   datatypes.Date(to),
		IsActive:    true,
	}).Error
	if err != nil {
		return false, fmt.Errorf("seed session %s: %w", name, err)
	}
	return true, nil
}
