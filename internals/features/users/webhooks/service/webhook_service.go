// file: internals/features/users/webhooks/service/webhook_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"msns_backend/internals/constants"
	accounts "msns_backend/internals/features/users/accounts/service"
	"msns_backend/internals/features/users/webhooks/dto"
	"msns_backend/internals/features/users/webhooks/model"
)

// ErrAssignRole is returned when the default role could not be written.
var ErrAssignRole = errors.New("assign default role")

type Service struct {
	db          *gorm.DB
	roles       RoleAssigner
	defaultRole constants.Role
}

func New(db *gorm.DB, roles RoleAssigner, defaultRole constants.Role) *Service {
	if !defaultRole.Valid() {
		defaultRole = constants.RoleTeacher
	}
	return &Service{db: db, roles: roles, defaultRole: defaultRole}
}

// Handle applies a verified delivery. The delivery row and the local user
// change commit together, so a failed delivery is processed again on retry.
// replayed is true when svixID was already handled.
func (s *Service) Handle(ctx context.Context, svixID string, body []byte) (replayed bool, err error) {
	ev, err := dto.ParseEvent(body)
	if err != nil {
		return false, fmt.Errorf("decode event: %w", err)
	}
	log := zerolog.Ctx(ctx)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.WebhookDeliveryModel{
			SvixID:  svixID,
			Type:    ev.Type,
			Payload: datatypes.JSON(body),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			replayed = true
			return nil
		}
		return s.apply(ctx, accounts.New(tx), ev)
	})
	if err == nil && !replayed {
		log.Info().Str("svix_id", svixID).Str("type", ev.Type).Str("clerk_id", ev.Data.ID).Msg("clerk webhook applied")
	}
	return replayed, err
}

func (s *Service) apply(ctx context.Context, users *accounts.Service, ev dto.ClerkEvent) error {
	switch ev.Type {
	case dto.EventUserCreated:
		if s.roles != nil {
			if err := s.roles.AssignRole(ctx, ev.Data.ID, s.defaultRole); err != nil {
				return fmt.Errorf("%w: %v", ErrAssignRole, err)
			}
		}
		_, err := users.Upsert(ctx, ev.Data.Sync(s.defaultRole))
		return err
	case dto.EventUserUpdated:
		_, err := users.Upsert(ctx, ev.Data.Sync(ev.Data.MetadataRole()))
		return err
	case dto.EventUserDeleted:
		_, err := users.DeleteByClerkID(ctx, ev.Data.ID)
		return err
	default:
		return nil
	}
}
