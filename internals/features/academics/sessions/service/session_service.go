// file: internals/features/academics/sessions/service/session_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"msns_backend/internals/features/academics/sessions/dto"
	"msns_backend/internals/features/academics/sessions/model"
	helper "msns_backend/internals/helpers"
	"msns_backend/internals/rpc"
)

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{db: db} }

// GetActive returns nil when no session is active.
func (s *Service) GetActive(ctx context.Context, _ rpc.Empty) (*model.SessionModel, error) {
	var m model.SessionModel
	err := s.db.WithContext(ctx).Where("is_active = ?", true).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, rpc.Internal("Failed to retrieve active session", err)
	}
	return &m, nil
}

func (s *Service) List(ctx context.Context, _ rpc.Empty) ([]model.SessionModel, error) {
	var rows []model.SessionModel
	if err := s.db.WithContext(ctx).Order("session_from DESC").Find(&rows).Error; err != nil {
		return nil, rpc.Internal("Failed to retrieve sessions", err)
	}
	return rows, nil
}

func (s *Service) Grouped(ctx context.Context, in rpc.Empty) ([]dto.SessionYearGroup, error) {
	rows, err := s.List(ctx, in)
	if err != nil {
		return nil, err
	}
	return dto.GroupByYear(rows), nil
}

func (s *Service) Create(ctx context.Context, in dto.CreateSessionInput) (*model.SessionModel, error) {
	m := in.ToModel()
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, rpc.Internal("Failed to create session", err)
	}
	return &m, nil
}

func (s *Service) Update(ctx context.Context, in dto.UpdateSessionInput) (*model.SessionModel, error) {
	var m model.SessionModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", in.SessionID).Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return rpc.NotFound("Session not found")
			}
			return err
		}
		if err := in.ApplyUpdates(&m); err != nil {
			return err
		}
		return tx.Save(&m).Error
	})
	if err != nil {
		if e := rpc.AsError(err); e.Code != rpc.CodeInternal {
			return nil, e
		}
		return nil, rpc.Internal("Failed to update session", err)
	}
	return &m, nil
}

// DeleteByIDs removes the sessions that exist and reports how many did.
func (s *Service) DeleteByIDs(ctx context.Context, in dto.DeleteSessionsInput) (helper.Count, error) {
	ids := helper.ParseUUIDs(in.SessionIDs)
	if len(ids) == 0 {
		return helper.Count{}, nil
	}
	res := s.db.WithContext(ctx).Where("session_id IN ?", ids).Delete(&model.SessionModel{})
	if res.Error != nil {
		if helper.IsForeignKeyViolation(res.Error) {
			return helper.Count{}, rpc.Conflict("Session is still referenced by class allotments")
		}
		return helper.Count{}, rpc.Internal("Failed to delete sessions", res.Error)
	}
	return helper.Count{Count: res.RowsAffected}, nil
}

// SetActive makes the target the only active session. Everything happens in
// one transaction, so readers never observe zero active sessions, and a
// missing target leaves the current active session untouched.
func (s *Service) SetActive(ctx context.Context, in dto.SessionIDInput) (*model.SessionModel, error) {
	id, _ := uuid.Parse(in.SessionID)
	var m model.SessionModel

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			// serialize activations; the partial unique index stays as backstop
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext('sessions.active'))").Error; err != nil {
				return err
			}
		}
		if err := tx.Where("session_id = ?", id).Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return rpc.NotFound("Session not found")
			}
			return err
		}
		if err := tx.Model(&model.SessionModel{}).
			Where("is_active = ? AND session_id <> ?", true, id).
			UpdateColumns(map[string]any{"is_active": false, "updated_at": time.Now()}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.SessionModel{}).
			Where("session_id = ?", id).
			UpdateColumns(map[string]any{"is_active": true, "updated_at": time.Now()}).Error; err != nil {
			return err
		}
		m.IsActive = true
		return nil
	})
	if err != nil {
		if e := rpc.AsError(err); e.Code == rpc.CodeNotFound {
			return nil, e
		}
		if helper.IsUniqueViolation(err) {
			return nil, rpc.Conflict("Another session was activated concurrently")
		}
		return nil, rpc.Internal("Failed to set active session", err)
	}
	return &m, nil
}
