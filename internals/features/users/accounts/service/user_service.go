// file: internals/features/users/accounts/service/user_service.go
package service

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"msns_backend/internals/constants"
	"msns_backend/internals/features/users/accounts/dto"
	"msns_backend/internals/features/users/accounts/model"
	helper "msns_backend/internals/helpers"
	"msns_backend/internals/middlewares/auth"
	"msns_backend/internals/rpc"
)

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{db: db} }

// WithTx returns a copy bound to tx.
func (s *Service) WithTx(tx *gorm.DB) *Service { return &Service{db: tx} }

func (s *Service) List(ctx context.Context, in dto.ListUsersInput) (helper.Page[model.UserModel], error) {
	p := in.Paging()
	q := s.db.WithContext(ctx).Model(&model.UserModel{})
	if in.Role != nil {
		q = q.Where("role = ?", *in.Role)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Page[model.UserModel]{}, rpc.Internal("Failed to retrieve users", err)
	}
	var rows []model.UserModel
	if err := q.Order("created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.Page[model.UserModel]{}, rpc.Internal("Failed to retrieve users", err)
	}
	return helper.NewPage(rows, total, p), nil
}

// Me resolves the caller by the Clerk subject of the session token.
func (s *Service) Me(ctx context.Context, _ rpc.Empty) (dto.MeResponse, error) {
	p, ok := auth.PrincipalFrom(ctx)
	if !ok {
		return dto.MeResponse{}, rpc.Unauthorized("Unauthorized")
	}
	var m model.UserModel
	err := s.db.WithContext(ctx).Where("clerk_id = ?", p.UserID).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.MeResponse{}, rpc.NotFound("User not found")
	}
	if err != nil {
		return dto.MeResponse{}, rpc.Internal("Failed to retrieve user", err)
	}
	return dto.MeResponse{User: m, Role: p.Role}, nil
}

// Upsert inserts or refreshes the local mirror of a Clerk account.
func (s *Service) Upsert(ctx context.Context, in dto.SyncUser) (*model.UserModel, error) {
	role := in.Role
	if !role.Valid() {
		role = constants.RoleNone
	}
	m := model.UserModel{
		ClerkID:     in.ClerkID,
		Username:    in.Username,
		Email:       in.Email,
		Role:        role,
		AccountType: constants.DesignationForRole(role),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "clerk_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "email", "role", "account_type", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteByClerkID removes the local mirror of a Clerk account. Events the
// user created are kept with no creator; their RSVPs are dropped.
func (s *Service) DeleteByClerkID(ctx context.Context, clerkID string) (int64, error) {
	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.UserModel
		err := tx.Select("user_id").Where("clerk_id = ?", clerkID).Take(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Table("events").Where("creator_id = ?", m.UserID).
			Update("creator_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM event_attendees WHERE user_id = ?", m.UserID).Error; err != nil {
			return err
		}
		res := tx.Where("user_id = ?", m.UserID).Delete(&model.UserModel{})
		deleted = res.RowsAffected
		return res.Error
	})
	return deleted, err
}

// Exists reports whether a local user with id exists.
func Exists(tx *gorm.DB, id string) (bool, error) {
	var n int64
	if err := tx.Model(&model.UserModel{}).Where("user_id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
