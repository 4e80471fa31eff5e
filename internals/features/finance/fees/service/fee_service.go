// file: internals/features/finance/fees/service/fee_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"msns_backend/internals/features/finance/fees/dto"
	"msns_backend/internals/features/finance/fees/model"
	helper "msns_backend/internals/helpers"
	"msns_backend/internals/rpc"
)

type Service struct {
	db      *gorm.DB
	gateway Gateway
	now     func() time.Time
}

// New accepts a nil gateway; payment links then fail with an internal error.
func New(db *gorm.DB, gw Gateway) *Service {
	return &Service{db: db, gateway: gw, now: time.Now}
}

func (s *Service) WithClock(now func() time.Time) *Service { s.now = now; return s }

/* ===============================
   Fee structures
=================================*/

func (s *Service) List(ctx context.Context, _ rpc.Empty) ([]model.FeeModel, error) {
	var rows []model.FeeModel
	if err := s.db.WithContext(ctx).Order("level ASC").Order("type ASC").Find(&rows).Error; err != nil {
		return nil, rpc.Internal("Failed to retrieve fees", err)
	}
	return rows, nil
}

func (s *Service) Create(ctx context.Context, in dto.CreateFeeInput) (*model.FeeModel, error) {
	m := in.ToModel()
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, rpc.Internal("Failed to create fee", err)
	}
	return &m, nil
}

func (s *Service) Update(ctx context.Context, in dto.UpdateFeeInput) (*model.FeeModel, error) {
	var m model.FeeModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("fee_id = ?", in.FeeID).Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return rpc.NotFound("Fee not found")
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
		return nil, rpc.Internal("Failed to update fee", err)
	}
	return &m, nil
}

func (s *Service) DeleteByIDs(ctx context.Context, in dto.DeleteFeesInput) (helper.Count, error) {
	ids := helper.ParseUUIDs(in.FeeIDs)
	if len(ids) == 0 {
		return helper.Count{}, nil
	}
	var n int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("fee_id IN ?", ids).Delete(&model.FeeAssignmentModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("fee_id IN ?", ids).Delete(&model.FeeModel{})
		n = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return helper.Count{}, rpc.Internal("Failed to delete fees", err)
	}
	return helper.Count{Count: n}, nil
}

/* ===============================
   Assignments
=================================*/

// Assign creates one assignment per month; months already assigned are
// skipped and not counted.
func (s *Service) Assign(ctx context.Context, in dto.AssignFeeInput) (helper.Count, error) {
	studentID := uuid.MustParse(in.StudentID)
	feeID := uuid.MustParse(in.FeeID)
	sessionID := uuid.MustParse(in.SessionID)

	var n int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ref := range []struct {
			table, column string
			id            uuid.UUID
			msg           string
		}{
			{"students", "student_id", studentID, "Student not found"},
			{"fees", "fee_id", feeID, "Fee not found"},
			{"sessions", "session_id", sessionID, "Session not found"},
		} {
			ok, err := helper.RowExists(tx, ref.table, ref.column, ref.id)
			if err != nil {
				return err
			}
			if !ok {
				return rpc.NotFound(ref.msg)
			}
		}

		months := in.UniqueMonths()
		rows := make([]model.FeeAssignmentModel, 0, len(months))
		for _, month := range months {
			rows = append(rows, model.FeeAssignmentModel{
				StudentID:           studentID,
				FeeID:               feeID,
				SessionID:           sessionID,
				Month:               month,
				Discount:            in.Discount,
				DiscountByPercent:   in.DiscountByPercent,
				DiscountDescription: in.DiscountDescription,
				Status:              model.StatusPending,
			})
		}
		// row by row so RowsAffected reports only real inserts
		for i := range rows {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows[i])
			if res.Error != nil {
				return res.Error
			}
			n += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		if e := rpc.AsError(err); e.Code != rpc.CodeInternal {
			return helper.Count{}, e
		}
		return helper.Count{}, rpc.Internal("Failed to assign fee", err)
	}
	return helper.Count{Count: n}, nil
}

const assignmentColumns = `fa.*, st.student_name AS student_name, f.type AS fee_type, f.total_fee AS total_fee`

func (s *Service) ListAssignments(ctx context.Context, in dto.ListAssignmentsInput) (helper.Page[dto.AssignmentRow], error) {
	p := in.Paging()
	q := s.db.WithContext(ctx).
		Table("fee_assignments fa").
		Joins("JOIN students st ON st.student_id = fa.student_id").
		Joins("JOIN fees f ON f.fee_id = fa.fee_id").
		Where("fa.session_id = ?", in.SessionID)
	if in.StudentID != nil {
		q = q.Where("fa.student_id = ?", *in.StudentID)
	}
	if in.Month != nil {
		q = q.Where("fa.month = ?", *in.Month)
	}
	if in.Status != nil {
		q = q.Where("fa.status = ?", *in.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Page[dto.AssignmentRow]{}, rpc.Internal("Failed to retrieve fee assignments", err)
	}
	var rows []dto.AssignmentRow
	err := q.Select(assignmentColumns).
		Order("st.student_name ASC").Order("fa.month ASC").
		Offset(p.Offset).Limit(p.Limit).
		Scan(&rows).Error
	if err != nil {
		return helper.Page[dto.AssignmentRow]{}, rpc.Internal("Failed to retrieve fee assignments", err)
	}
	for i := range rows {
		rows[i].Payable = model.Payable(rows[i].TotalFee, rows[i].Discount, rows[i].DiscountByPercent)
	}
	return helper.NewPage(rows, total, p), nil
}

func (s *Service) UpdateAssignment(ctx context.Context, in dto.UpdateAssignmentInput) (*model.FeeAssignmentModel, error) {
	var m model.FeeAssignmentModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("fee_assignment_id = ?", in.FeeAssignmentID).Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return rpc.NotFound("Fee assignment not found")
			}
			return err
		}
		in.ApplyUpdates(&m, s.now())
		return tx.Save(&m).Error
	})
	if err != nil {
		if e := rpc.AsError(err); e.Code != rpc.CodeInternal {
			return nil, e
		}
		return nil, rpc.Internal("Failed to update fee assignment", err)
	}
	return &m, nil
}

// payableExpr mirrors model.Payable in SQL.
const payableExpr = `CASE WHEN (f.total_fee - fa.discount - f.total_fee * fa.discount_by_percent / 100.0) < 0 THEN 0
	ELSE (f.total_fee - fa.discount - f.total_fee * fa.discount_by_percent / 100.0) END`

func (s *Service) Summary(ctx context.Context, in dto.SummaryInput) (dto.FeeSummary, error) {
	var row struct {
		TotalAssigned float64
		TotalPaid     float64
		Count         int64
	}
	q := s.db.WithContext(ctx).
		Table("fee_assignments fa").
		Joins("JOIN fees f ON f.fee_id = fa.fee_id").
		Where("fa.session_id = ?", in.SessionID)
	if in.Month != nil {
		q = q.Where("fa.month = ?", *in.Month)
	}
	err := q.Select(fmt.Sprintf(`COALESCE(SUM(%[1]s), 0) AS total_assigned,
		COALESCE(SUM(CASE WHEN fa.status = 'PAID' THEN %[1]s ELSE 0 END), 0) AS total_paid,
		COUNT(*) AS count`, payableExpr)).
		Scan(&row).Error
	if err != nil {
		return dto.FeeSummary{}, rpc.Internal("Failed to retrieve fee summary", err)
	}
	assigned := int64(math.Round(row.TotalAssigned))
	paid := int64(math.Round(row.TotalPaid))
	return dto.FeeSummary{
		TotalAssigned: assigned,
		TotalPaid:     paid,
		TotalPending:  assigned - paid,
		Count:         row.Count,
	}, nil
}

/* ===============================
   Online payment
=================================*/

func (s *Service) CreatePaymentLink(ctx context.Context, in dto.PaymentLinkInput) (dto.PaymentLink, error) {
	var row dto.AssignmentRow
	err := s.db.WithContext(ctx).
		Table("fee_assignments fa").
		Select(assignmentColumns).
		Joins("JOIN students st ON st.student_id = fa.student_id").
		Joins("JOIN fees f ON f.fee_id = fa.fee_id").
		Where("fa.fee_assignment_id = ?", in.FeeAssignmentID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.PaymentLink{}, rpc.NotFound("Fee assignment not found")
	}
	if err != nil {
		return dto.PaymentLink{}, rpc.Internal("Failed to create payment link", err)
	}
	if row.Status == model.StatusPaid {
		return dto.PaymentLink{}, rpc.BadRequest("Fee already paid")
	}
	amount := model.Payable(row.TotalFee, row.Discount, row.DiscountByPercent)
	if amount <= 0 {
		return dto.PaymentLink{}, rpc.BadRequest("Nothing to pay for this fee")
	}
	if s.gateway == nil {
		return dto.PaymentLink{}, rpc.Internal("Failed to create payment link", errors.New("payment gateway not configured"))
	}

	orderID := fmt.Sprintf("FEE-%s-%d", row.FeeAssignmentID, s.now().Unix())
	token, redirect, err := s.gateway.CreateTransaction(orderID, amount, row.StudentName, "")
	if err != nil {
		return dto.PaymentLink{}, rpc.Internal("Failed to create payment link", err)
	}

	err = s.db.WithContext(ctx).Model(&model.FeeAssignmentModel{}).
		Where("fee_assignment_id = ?", row.FeeAssignmentID).
		UpdateColumns(map[string]any{
			"payment_order_id":     orderID,
			"payment_redirect_url": redirect,
			"updated_at":           s.now(),
		}).Error
	if err != nil {
		return dto.PaymentLink{}, rpc.Internal("Failed to create payment link", err)
	}
	return dto.PaymentLink{Token: token, RedirectURL: redirect}, nil
}

// MarkPaidByOrder settles the assignment behind a gateway order id. It
// reports false when no assignment carries that order.
func (s *Service) MarkPaidByOrder(ctx context.Context, orderID string) (bool, error) {
	now := s.now()
	res := s.db.WithContext(ctx).Model(&model.FeeAssignmentModel{}).
		Where("payment_order_id = ? AND status <> ?", orderID, model.StatusPaid).
		UpdateColumns(map[string]any{"status": model.StatusPaid, "paid_at": now, "updated_at": now})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	var n int64
	if err := s.db.WithContext(ctx).Model(&model.FeeAssignmentModel{}).
		Where("payment_order_id = ?", orderID).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
