// file: internals/features/users/employees/service/employee_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"msns_backend/internals/features/users/employees/dto"
	"msns_backend/internals/features/users/employees/model"
	sequences "msns_backend/internals/features/users/sequences/service"
	helper "msns_backend/internals/helpers"
	"msns_backend/internals/rpc"
)

type Service struct {
	db   *gorm.DB
	now  func() time.Time
	cost int
}

func New(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now, cost: bcrypt.DefaultCost}
}

// WithClock and WithHashCost exist for tests.
func (s *Service) WithClock(now func() time.Time) *Service { s.now = now; return s }
func (s *Service) WithHashCost(cost int) *Service          { s.cost = cost; return s }

var searchColumns = []string{"employee_name", "father_name", "registration_number"}

func (s *Service) List(ctx context.Context, in dto.ListEmployeesInput) (helper.Page[model.EmployeeModel], error) {
	page, err := s.list(ctx, in, false)
	if err != nil {
		return page, rpc.Internal("Failed to retrieve employees", err)
	}
	return page, nil
}

func (s *Service) ListUnallocated(ctx context.Context, in dto.ListEmployeesInput) (helper.Page[model.EmployeeModel], error) {
	page, err := s.list(ctx, in, true)
	if err != nil {
		return page, rpc.Internal("Failed to retrieve unallocated employees", err)
	}
	return page, nil
}

func (s *Service) list(ctx context.Context, in dto.ListEmployeesInput, unallocatedOnly bool) (helper.Page[model.EmployeeModel], error) {
	p := in.Paging()
	q := s.db.WithContext(ctx).Model(&model.EmployeeModel{})
	if unallocatedOnly {
		q = q.Where("is_assign = ?", false)
	}
	if in.Designation != nil {
		q = q.Where("designation = ?", *in.Designation)
	}
	if in.SearchTerm != nil && strings.TrimSpace(*in.SearchTerm) != "" {
		q = q.Where(helper.LikeClause(searchColumns...), helper.LikeArgs(helper.ContainsPattern(*in.SearchTerm), len(searchColumns))...)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Page[model.EmployeeModel]{}, err
	}
	var rows []model.EmployeeModel
	if err := q.Order("created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&rows).Error; err != nil {
		return helper.Page[model.EmployeeModel]{}, err
	}
	return helper.NewPage(rows, total, p), nil
}

func (s *Service) GetByID(ctx context.Context, in dto.EmployeeIDInput) (*model.EmployeeModel, error) {
	var m model.EmployeeModel
	err := s.db.WithContext(ctx).Where("employee_id = ?", in.EmployeeID).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, rpc.NotFound("Employee not found")
	}
	if err != nil {
		return nil, rpc.Internal("Failed to retrieve employee", err)
	}
	return &m, nil
}

func (s *Service) Create(ctx context.Context, in dto.CreateEmployeeInput) (*model.EmployeeModel, error) {
	m := in.ToModel()
	if in.Password != nil {
		hash, err := s.hash(*in.Password)
		if err != nil {
			return nil, rpc.Internal("Failed to create employee", err)
		}
		m.PasswordHash = &hash
	}

	year := s.now().Year()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reg, err := sequences.Next(tx, sequences.EmployeeRegistration, year)
		if err != nil {
			return err
		}
		m.RegistrationNumber = reg
		return tx.Create(&m).Error
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, rpc.Conflict("Employee number already taken, please retry")
		}
		return nil, rpc.Internal("Failed to create employee", err)
	}
	return &m, nil
}

func (s *Service) Update(ctx context.Context, in dto.UpdateEmployeeInput) (*model.EmployeeModel, error) {
	var hash *string
	if in.Password != nil {
		h, err := s.hash(*in.Password)
		if err != nil {
			return nil, rpc.Internal("Failed to update employee", err)
		}
		hash = &h
	}

	var m model.EmployeeModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", in.EmployeeID).Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return rpc.NotFound("Employee not found")
			}
			return err
		}
		in.ApplyUpdates(&m)
		if hash != nil {
			m.PasswordHash = hash
		}
		return tx.Save(&m).Error
	})
	if err != nil {
		if e := rpc.AsError(err); e.Code != rpc.CodeInternal {
			return nil, e
		}
		return nil, rpc.Internal("Failed to update employee", err)
	}
	return &m, nil
}

// DeleteByIDs also detaches the employees from allotments and class subjects
// and drops their salary rows.
func (s *Service) DeleteByIDs(ctx context.Context, in dto.DeleteEmployeesInput) (helper.Count, error) {
	ids := helper.ParseUUIDs(in.EmployeeIDs)
	if len(ids) == 0 {
		return helper.Count{}, nil
	}
	var n int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("UPDATE student_classes SET employee_id = NULL WHERE employee_id IN ?", ids).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM class_subjects WHERE employee_id IN ?", ids).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM salary_assignments WHERE employee_id IN ?", ids).Error; err != nil {
			return err
		}
		res := tx.Where("employee_id IN ?", ids).Delete(&model.EmployeeModel{})
		n = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return helper.Count{}, rpc.Internal("Failed to delete employees", err)
	}
	return helper.Count{Count: n}, nil
}

// VerifyCredentials checks a registration number and password. Every
// failure looks the same to the caller.
func (s *Service) VerifyCredentials(ctx context.Context, in dto.CredentialsInput) (dto.CredentialsResult, error) {
	var m model.EmployeeModel
	err := s.db.WithContext(ctx).
		Where("registration_number = ?", strings.TrimSpace(in.RegistrationNumber)).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.CredentialsResult{}, rpc.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return dto.CredentialsResult{}, rpc.Internal("Failed to verify credentials", err)
	}
	if m.PasswordHash == nil ||
		bcrypt.CompareHashAndPassword([]byte(*m.PasswordHash), []byte(in.Password)) != nil {
		return dto.CredentialsResult{}, rpc.Unauthorized("Invalid credentials")
	}
	return dto.CredentialsResult{EmployeeID: m.EmployeeID.String(), Designation: m.Designation}, nil
}

func (s *Service) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
