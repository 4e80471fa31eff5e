// file: internals/features/finance/fees/model/fee_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "msns_backend/internals/helpers"
)

type FeeType string

const (
	FeeMonthly   FeeType = "MONTHLY"
	FeeAnnual    FeeType = "ANNUAL"
	FeeAdmission FeeType = "ADMISSION"
	FeeExam      FeeType = "EXAM"
)

type PaymentStatus string

const (
	StatusPending PaymentStatus = "PENDING"
	StatusPaid    PaymentStatus = "PAID"
)

// FeeModel is a fee structure for one class category.
type FeeModel struct {
	FeeID            uuid.UUID `gorm:"type:uuid;primaryKey;column:fee_id" json:"feeId"`
	Level            string    `gorm:"type:varchar(12);not null;index;column:level" json:"level"`
	Type             FeeType   `gorm:"type:varchar(12);not null;column:type" json:"type"`
	TuitionFee       int64     `gorm:"not null;default:0;column:tuition_fee" json:"tuitionFee"`
	ExamFund         int64     `gorm:"not null;default:0;column:exam_fund" json:"examFund"`
	ComputerLabFund  int64     `gorm:"not null;default:0;column:computer_lab_fund" json:"computerLabFund"`
	StudentIDCardFee int64     `gorm:"not null;default:0;column:student_id_card_fee" json:"studentIdCardFee"`
	InfoAndCallsFee  int64     `gorm:"not null;default:0;column:info_and_calls_fee" json:"infoAndCallsFee"`
	TotalFee         int64     `gorm:"not null;default:0;column:total_fee" json:"totalFee"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:updated_at" json:"updatedAt"`
}

func (FeeModel) TableName() string { return "fees" }

func (m *FeeModel) BeforeCreate(tx *gorm.DB) error {
	helper.NewID(&m.FeeID)
	return nil
}

// BeforeSave keeps total_fee equal to the sum of its parts.
func (m *FeeModel) BeforeSave(tx *gorm.DB) error {
	m.TotalFee = m.TuitionFee + m.ExamFund + m.ComputerLabFund + m.StudentIDCardFee + m.InfoAndCallsFee
	return nil
}

type FeeAssignmentModel struct {
	FeeAssignmentID uuid.UUID `gorm:"type:uuid;primaryKey;column:fee_assignment_id" json:"feeAssignmentId"`
	StudentID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_fee_assignments,priority:1;column:student_id" json:"studentId"`
	FeeID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_fee_assignments,priority:2;column:fee_id" json:"feeId"`
	SessionID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_fee_assignments,priority:3;index;column:session_id" json:"sessionId"`
	Month           int       `gorm:"not null;uniqueIndex:uq_fee_assignments,priority:4;column:month" json:"month"`

	Discount            int64   `gorm:"not null;default:0;column:discount" json:"discount"`
	DiscountByPercent   float64 `gorm:"not null;default:0;column:discount_by_percent" json:"discountByPercent"`
	DiscountDescription *string `gorm:"type:varchar(200);column:discount_description" json:"discountDescription,omitempty"`

	Status             PaymentStatus `gorm:"type:varchar(10);not null;default:'PENDING';index;column:status" json:"status"`
	PaidAt             *time.Time    `gorm:"column:paid_at" json:"paidAt,omitempty"`
	PaymentOrderID     *string       `gorm:"type:varchar(100);uniqueIndex:uq_fee_assignments_order_id;column:payment_order_id" json:"paymentOrderId,omitempty"`
	PaymentRedirectURL *string       `gorm:"type:text;column:payment_redirect_url" json:"paymentRedirectUrl,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:updated_at" json:"updatedAt"`
}

func (FeeAssignmentModel) TableName() string { return "fee_assignments" }

func (m *FeeAssignmentModel) BeforeCreate(tx *gorm.DB) error {
	helper.NewID(&m.FeeAssignmentID)
	if m.Status == "" {
		m.Status = StatusPending
	}
	return nil
}

// Payable is total minus the flat and the percentage discount, never negative.
func Payable(total, discount int64, percent float64) int64 {
	p := total - discount - int64(float64(total)*percent/100+0.5)
	if p < 0 {
		return 0
	}
	return p
}
