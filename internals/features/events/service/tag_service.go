package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"msns_backend/internals/features/events/dto"
	"msns_backend/internals/features/events/model"
	helper "msns_backend/internals/helpers"
	"msns_backend/internals/rpc"
)

func (s *Service) Tags(ctx context.Context, _ rpc.Empty) ([]model.TagModel, error) {
	var rows []model.TagModel
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, rpc.Internal("Failed to retrieve tags", err)
	}
	return rows, nil
}

func (s *Service) CreateTag(ctx context.Context, in dto.CreateTagInput) (*model.TagModel, error) {
	m := model.TagModel{Name: in.Name, Color: in.Color}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, rpc.Conflict("Tag already exists")
		}
		return nil, rpc.Internal("Failed to create tag", err)
	}
	return &m, nil
}

func (s *Service) UpdateTag(ctx context.Context, in dto.UpdateTagInput) (*model.TagModel, error) {
	var m model.TagModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", in.ID).Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return rpc.NotFound("Tag not found")
			}
			return err
		}
		if in.Name != nil {
			m.Name = *in.Name
		}
		if in.Color != nil {
			m.Color = *in.Color
		}
		return tx.Save(&m).Error
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, rpc.Conflict("Tag already exists")
		}
		return nil, fail(err, "Failed to update tag")
	}
	return &m, nil
}

func (s *Service) DeleteTag(ctx context.Context, in dto.EventIDInput) (helper.Count, error) {
	var n int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", in.ID).Delete(&model.EventTagModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("tag_id = ?", in.ID).Delete(&model.TagModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return rpc.NotFound("Tag not found")
		}
		n = res.RowsAffected
		return nil
	})
	if err != nil {
		return helper.Count{}, fail(err, "Failed to delete tag")
	}
	return helper.Count{Count: n}, nil
}
