// file: internals/features/users/students/service/student_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	sequences "msns_backend/internals/features/users/sequences/service"
	"msns_backend/internals/features/users/students/dto"
	"msns_backend/internals/features/users/students/model"
	helper "msns_backend/internals/helpers"
	"msns_backend/internals/rpc"
)

type Service struct {
	db        *gorm.DB
	validator *helper.Validator
	now       func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now for number allocation and default dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(db *gorm.DB, v *helper.Validator, opts ...Option) *Service {
	if v == nil {
		v = helper.NewValidator()
	}
	s := &Service{db: db, validator: v, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var searchColumns = []string{"student_name", "father_name", "admission_number", "registration_number"}

func (s *Service) List(ctx context.Context, in dto.ListStudentsInput) (helper.Page[model.StudentModel], error) {
	page, err := s.list(ctx, in, false)
	if err != nil {
		return page, rpc.Internal("Failed to retrieve students", err)
	}
	return page, nil
}

// ListUnallocated pages students not yet placed in a class.
func (s *Service) ListUnallocated(ctx context.Context, in dto.ListStudentsInput) (helper.Page[model.StudentModel], error) {
	page, err := s.list(ctx, in, true)
	if err != nil {
		return page, rpc.Internal("Failed to retrieve unallocated students", err)
	}
	return page, nil
}

func (s *Service) list(ctx context.Context, in dto.ListStudentsInput, unallocatedOnly bool) (helper.Page[model.StudentModel], error) {
	p := in.Paging()
	q := s.db.WithContext(ctx).Model(&model.StudentModel{})
	if unallocatedOnly {
		q = q.Where("is_assign = ?", false)
	}
	if in.SearchTerm != nil && strings.TrimSpace(*in.SearchTerm) != "" {
		cols := searchColumns
		if unallocatedOnly {
			cols = cols[:3]
		}
		q = q.Where(helper.LikeClause(cols...), helper.LikeArgs(helper.ContainsPattern(*in.SearchTerm), len(cols))...)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Page[model.StudentModel]{}, err
	}
	var rows []model.StudentModel
	if err := q.Order("created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.Page[model.StudentModel]{}, err
	}
	return helper.NewPage(rows, total, p), nil
}

func (s *Service) GetByID(ctx context.Context, in dto.StudentIDInput) (*model.StudentModel, error) {
	var m model.StudentModel
	err := s.db.WithContext(ctx).Where("student_id = ?", in.StudentID).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, rpc.NotFound("Student not found")
	}
	if err != nil {
		return nil, rpc.Internal("Failed to retrieve student", err)
	}
	return &m, nil
}

func (s *Service) Create(ctx context.Context, in dto.CreateStudentInput) (*model.StudentModel, error) {
	m, err := s.create(ctx, in)
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, rpc.Conflict("Student number already taken, please retry")
		}
		return nil, rpc.Internal("Failed to create student", err)
	}
	return m, nil
}

// create allocates both numbers and inserts in one transaction, so a failed
// insert does not burn a number.
func (s *Service) create(ctx context.Context, in dto.CreateStudentInput) (*model.StudentModel, error) {
	now := s.now()
	m := in.ToModel(now)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reg, err := sequences.Next(tx, sequences.StudentRegistration, now.Year())
		if err != nil {
			return err
		}
		adm, err := sequences.Next(tx, sequences.StudentAdmission, now.Year())
		if err != nil {
			return err
		}
		m.RegistrationNumber = reg
		m.AdmissionNumber = adm
		return tx.Create(&m).Error
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) Update(ctx context.Context, in dto.UpdateStudentInput) (*model.StudentModel, error) {
	var m model.StudentModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", in.StudentID).Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return rpc.NotFound("Student not found")
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
		return nil, rpc.Internal("Failed to update student", err)
	}
	return &m, nil
}

// DeleteByIDs removes students together with their class allotments and
// fee assignments.
func (s *Service) DeleteByIDs(ctx context.Context, in dto.DeleteStudentsInput) (helper.Count, error) {
	ids := helper.ParseUUIDs(in.StudentIDs)
	if len(ids) == 0 {
		return helper.Count{}, nil
	}
	var n int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"student_classes", "fee_assignments"} {
			if err := tx.Exec("DELETE FROM "+table+" WHERE student_id IN ?", ids).Error; err != nil {
				return err
			}
		}
		res := tx.Where("student_id IN ?", ids).Delete(&model.StudentModel{})
		n = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return helper.Count{}, rpc.Internal("Failed to delete students", err)
	}
	return helper.Count{Count: n}, nil
}

// Exists reports whether every id names a student.
func Exists(tx *gorm.DB, ids []uuid.UUID) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	var n int64
	if err := tx.Model(&model.StudentModel{}).Where("student_id IN ?", ids).Count(&n).Error; err != nil {
		return false, err
	}
	return n == int64(len(ids)), nil
}
