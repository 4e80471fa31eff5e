// file: internals/features/academics/classes/service/class_service.go
package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"msns_backend/internals/features/academics/classes/dto"
	"msns_backend/internals/features/academics/classes/model"
	helper "msns_backend/internals/helpers"
	"msns_backend/internals/rpc"
)

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{db: db} }

// categoryOrder sorts by the school progression rather than alphabetically.
const categoryOrder = `CASE category
	WHEN 'Montessori' THEN 1
	WHEN 'Primary' THEN 2
	WHEN 'Middle' THEN 3
	WHEN 'SSC_I' THEN 4
	WHEN 'SSC_II' THEN 5
	ELSE 6 END`

func (s *Service) List(ctx context.Context, _ rpc.Empty) ([]model.ClassModel, error) {
	var rows []model.ClassModel
	err := s.db.WithContext(ctx).
		Order(categoryOrder).
		Order("grade ASC").
		Order("section ASC").
		Find(&rows).Error
	if err != nil {
		return nil, rpc.Internal("Failed to retrieve classes", err)
	}
	return rows, nil
}

func (s *Service) Create(ctx context.Context, in dto.CreateClassInput) (*model.ClassModel, error) {
	m := in.ToModel()
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, rpc.Conflict("Class already exists")
		}
		return nil, rpc.Internal("Failed to create class", err)
	}
	return &m, nil
}

func (s *Service) Update(ctx context.Context, in dto.UpdateClassInput) (*model.ClassModel, error) {
	var m model.ClassModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ?", in.ClassID).Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return rpc.NotFound("Class not found")
			}
			return err
		}
		in.ApplyUpdates(&m)
		return tx.Save(&m).Error
	})
	if err != nil {
		if e := rpc.AsError(err); e.Code != rpc.CodeInternal {
			return nil, e
		}
		if helper.IsUniqueViolation(err) {
			return nil, rpc.Conflict("Class already exists")
		}
		return nil, rpc.Internal("Failed to update class", err)
	}
	return &m, nil
}

// DeleteByIDs drops the classes with their subject links and allotments.
func (s *Service) DeleteByIDs(ctx context.Context, in dto.DeleteClassesInput) (helper.Count, error) {
	ids := helper.ParseUUIDs(in.ClassIDs)
	if len(ids) == 0 {
		return helper.Count{}, nil
	}
	var n int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM class_subjects WHERE class_id IN ?", ids).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM student_classes WHERE class_id IN ?", ids).Error; err != nil {
			return err
		}
		// students left without any allotment become allocatable again
		if err := tx.Exec(`UPDATE students SET is_assign = ?
			WHERE is_assign = ? AND NOT EXISTS (
				SELECT 1 FROM student_classes sc WHERE sc.student_id = students.student_id)`, false, true).Error; err != nil {
			return err
		}
		res := tx.Where("class_id IN ?", ids).Delete(&model.ClassModel{})
		n = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return helper.Count{}, rpc.Internal("Failed to delete classes", err)
	}
	return helper.Count{Count: n}, nil
}
