// file: internals/features/finance/salaries/service/salary_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	feemodel "msns_backend/internals/features/finance/fees/model"
	"msns_backend/internals/features/finance/salaries/dto"
	"msns_backend/internals/features/finance/salaries/model"
	helper "msns_backend/internals/helpers"
	"msns_backend/internals/rpc"
)

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func New(db *gorm.DB) *Service { return &Service{db: db, now: time.Now} }

func (s *Service) WithClock(now func() time.Time) *Service { s.now = now; return s }

func (s *Service) Assign(ctx context.Context, in dto.AssignSalaryInput) (*model.SalaryAssignmentModel, error) {
	m := model.SalaryAssignmentModel{
		EmployeeID: uuid.MustParse(in.EmployeeID),
		SessionID:  uuid.MustParse(in.SessionID),
		BaseSalary: in.BaseSalary,
		Increment:  in.Increment,
		Month:      in.Month,
		Year:       in.Year,
		Status:     feemodel.StatusPending,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if ok, err := helper.RowExists(tx, "employees", "employee_id", m.EmployeeID); err != nil {
			return err
		} else if !ok {
			return rpc.NotFound("Employee not found")
		}
		if ok, err := helper.RowExists(tx, "sessions", "session_id", m.SessionID); err != nil {
			return err
		} else if !ok {
			return rpc.NotFound("Session not found")
		}
		return tx.Create(&m).Error
	})
	if err != nil {
		if e := rpc.AsError(err); e.Code != rpc.CodeInternal {
			return nil, e
		}
		if helper.IsUniqueViolation(err) {
			return nil, rpc.Conflict("Salary already assigned for this month")
		}
		return nil, rpc.Internal("Failed to assign salary", err)
	}
	return &m, nil
}

func (s *Service) List(ctx context.Context, in dto.ListSalariesInput) (helper.Page[dto.SalaryRow], error) {
	p := in.Paging()
	q := s.db.WithContext(ctx).
		Table("salary_assignments sa").
		Joins("JOIN employees e ON e.employee_id = sa.employee_id")
	if in.SessionID != nil {
		q = q.Where("sa.session_id = ?", *in.SessionID)
	}
	if in.EmployeeID != nil {
		q = q.Where("sa.employee_id = ?", *in.EmployeeID)
	}
	if in.Month != nil {
		q = q.Where("sa.month = ?", *in.Month)
	}
	if in.Year != nil {
		q = q.Where("sa.year = ?", *in.Year)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Page[dto.SalaryRow]{}, rpc.Internal("Failed to retrieve salaries", err)
	}
	var rows []dto.SalaryRow
	err := q.Select("sa.*, e.employee_name AS employee_name, e.registration_number AS registration_number").
		Order("sa.year DESC").Order("sa.month DESC").Order("e.employee_name ASC").
		Offset(p.Offset).Limit(p.Limit).
		Scan(&rows).Error
	if err != nil {
		return helper.Page[dto.SalaryRow]{}, rpc.Internal("Failed to retrieve salaries", err)
	}
	return helper.NewPage(rows, total, p), nil
}

func (s *Service) UpdateStatus(ctx context.Context, in dto.UpdateSalaryStatusInput) (*model.SalaryAssignmentModel, error) {
	var m model.SalaryAssignmentModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("salary_assignment_id = ?", in.SalaryAssignmentID).Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return rpc.NotFound("Salary assignment not found")
			}
			return err
		}
		m.Status = feemodel.PaymentStatus(in.Status)
		if m.Status == feemodel.StatusPaid {
			if m.PaidAt == nil {
				now := s.now()
				m.PaidAt = &now
			}
		} else {
			m.PaidAt = nil
		}
		return tx.Save(&m).Error
	})
	if err != nil {
		if e := rpc.AsError(err); e.Code != rpc.CodeInternal {
			return nil, e
		}
		return nil, rpc.Internal("Failed to update salary status", err)
	}
	return &m, nil
}

func (s *Service) DeleteByIDs(ctx context.Context, in dto.DeleteSalariesInput) (helper.Count, error) {
	ids := helper.ParseUUIDs(in.SalaryAssignmentIDs)
	if len(ids) == 0 {
		return helper.Count{}, nil
	}
	res := s.db.WithContext(ctx).Where("salary_assignment_id IN ?", ids).Delete(&model.SalaryAssignmentModel{})
	if res.Error != nil {
		return helper.Count{}, rpc.Internal("Failed to delete salaries", res.Error)
	}
	return helper.Count{Count: res.RowsAffected}, nil
}

func (s *Service) Summary(ctx context.Context, in dto.SummaryInput) (dto.SalarySummary, error) {
	var out dto.SalarySummary
	q := s.db.WithContext(ctx).Model(&model.SalaryAssignmentModel{}).Where("year = ?", in.Year)
	if in.Month != nil {
		q = q.Where("month = ?", *in.Month)
	}
	err := q.Select(`COALESCE(SUM(CASE WHEN status = 'PAID' THEN total_salary ELSE 0 END), 0) AS total_paid,
		COALESCE(SUM(CASE WHEN status = 'PAID' THEN 0 ELSE total_salary END), 0) AS total_pending,
		COUNT(*) AS count`).
		Scan(&out).Error
	if err != nil {
		return dto.SalarySummary{}, rpc.Internal("Failed to retrieve salary summary", err)
	}
	return out, nil
}
