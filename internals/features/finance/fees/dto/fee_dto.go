// file: internals/features/finance/fees/dto/fee_dto.go
package dto

import (
	"sort"
	"strings"
	"time"

	"msns_backend/internals/features/finance/fees/model"
	helper "msns_backend/internals/helpers"
)

/* ===============================
   Fee structures
=================================*/

type CreateFeeInput struct {
	Level            string `json:"level"            validate:"required,oneof=Montessori Primary Middle SSC_I SSC_II"`
	Type             string `json:"type"             validate:"required,oneof=MONTHLY ANNUAL ADMISSION EXAM"`
	TuitionFee       int64  `json:"tuitionFee"       validate:"min=0"`
	ExamFund         int64  `json:"examFund"         validate:"min=0"`
	ComputerLabFund  int64  `json:"computerLabFund"  validate:"min=0"`
	StudentIDCardFee int64  `json:"studentIdCardFee" validate:"min=0"`
	InfoAndCallsFee  int64  `json:"infoAndCallsFee"  validate:"min=0"`
}

func (in *CreateFeeInput) Defaults() {
	in.Type = strings.ToUpper(strings.TrimSpace(in.Type))
}

func (in *CreateFeeInput) ToModel() model.FeeModel {
	return model.FeeModel{
		Level:            in.Level,
		Type:             model.FeeType(in.Type),
		TuitionFee:       in.TuitionFee,
		ExamFund:         in.ExamFund,
		ComputerLabFund:  in.ComputerLabFund,
		StudentIDCardFee: in.StudentIDCardFee,
		InfoAndCallsFee:  in.InfoAndCallsFee,
	}
}

type UpdateFeeInput struct {
	FeeID            string  `json:"feeId"                      validate:"required,uuid"`
	Level            *string `json:"level,omitempty"            validate:"omitempty,oneof=Montessori Primary Middle SSC_I SSC_II"`
	Type             *string `json:"type,omitempty"             validate:"omitempty,oneof=MONTHLY ANNUAL ADMISSION EXAM"`
	TuitionFee       *int64  `json:"tuitionFee,omitempty"       validate:"omitempty,min=0"`
	ExamFund         *int64  `json:"examFund,omitempty"         validate:"omitempty,min=0"`
	ComputerLabFund  *int64  `json:"computerLabFund,omitempty"  validate:"omitempty,min=0"`
	StudentIDCardFee *int64  `json:"studentIdCardFee,omitempty" validate:"omitempty,min=0"`
	InfoAndCallsFee  *int64  `json:"infoAndCallsFee,omitempty"  validate:"omitempty,min=0"`
}

func (u *UpdateFeeInput) Defaults() {
	if u.Type != nil {
		t := strings.ToUpper(strings.TrimSpace(*u.Type))
		u.Type = &t
	}
}

func (u *UpdateFeeInput) ApplyUpdates(m *model.FeeModel) {
	if u.Level != nil {
		m.Level = *u.Level
	}
	if u.Type != nil {
		m.Type = model.FeeType(*u.Type)
	}
	for _, f := range []struct {
		src *int64
		dst *int64
	}{
		{u.TuitionFee, &m.TuitionFee},
		{u.ExamFund, &m.ExamFund},
		{u.ComputerLabFund, &m.ComputerLabFund},
		{u.StudentIDCardFee, &m.StudentIDCardFee},
		{u.InfoAndCallsFee, &m.InfoAndCallsFee},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
}

type DeleteFeesInput struct {
	FeeIDs []string `json:"feeIds" validate:"max=200,dive,uuid"`
}

/* ===============================
   Assignments
=================================*/

type AssignFeeInput struct {
	StudentID           string  `json:"studentId"                     validate:"required,uuid"`
	FeeID               string  `json:"feeId"                         validate:"required,uuid"`
	SessionID           string  `json:"sessionId"                     validate:"required,uuid"`
	Months              []int   `json:"months"                        validate:"required,min=1,max=12,dive,min=1,max=12"`
	Discount            int64   `json:"discount"                      validate:"min=0"`
	DiscountByPercent   float64 `json:"discountByPercent"             validate:"min=0,max=100"`
	DiscountDescription *string `json:"discountDescription,omitempty" validate:"omitempty,max=200"`
}

// UniqueMonths drops repeated months and sorts the rest.
func (in *AssignFeeInput) UniqueMonths() []int {
	seen := map[int]bool{}
	out := make([]int, 0, len(in.Months))
	for _, m := range in.Months {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.Ints(out)
	return out
}

type ListAssignmentsInput struct {
	SessionID string  `json:"sessionId"           validate:"required,uuid"`
	StudentID *string `json:"studentId,omitempty" validate:"omitempty,uuid"`
	Month     *int    `json:"month,omitempty"     validate:"omitempty,min=1,max=12"`
	Status    *string `json:"status,omitempty"    validate:"omitempty,oneof=PENDING PAID"`
	Page      int     `json:"page"                validate:"min=1"`
	PageSize  int     `json:"pageSize"            validate:"min=1,max=100"`
}

func (in *ListAssignmentsInput) Defaults() {
	if in.Page == 0 {
		in.Page = 1
	}
	if in.PageSize == 0 {
		in.PageSize = 20
	}
	if in.Status != nil {
		s := strings.ToUpper(*in.Status)
		in.Status = &s
	}
}

func (in *ListAssignmentsInput) Paging() helper.Paging {
	return helper.ResolvePaging(in.Page, in.PageSize, 20, 100)
}

type UpdateAssignmentInput struct {
	FeeAssignmentID     string   `json:"feeAssignmentId"               validate:"required,uuid"`
	Status              *string  `json:"status,omitempty"              validate:"omitempty,oneof=PENDING PAID"`
	Discount            *int64   `json:"discount,omitempty"            validate:"omitempty,min=0"`
	DiscountByPercent   *float64 `json:"discountByPercent,omitempty"   validate:"omitempty,min=0,max=100"`
	DiscountDescription *string  `json:"discountDescription,omitempty" validate:"omitempty,max=200"`
}

func (u *UpdateAssignmentInput) Defaults() {
	if u.Status != nil {
		s := strings.ToUpper(*u.Status)
		u.Status = &s
	}
}

// ApplyUpdates sets paidAt when the status becomes PAID and clears it on
// PENDING.
func (u *UpdateAssignmentInput) ApplyUpdates(m *model.FeeAssignmentModel, now time.Time) {
	if u.Status != nil {
		m.Status = model.PaymentStatus(*u.Status)
		if m.Status == model.StatusPaid {
			if m.PaidAt == nil {
				m.PaidAt = &now
			}
		} else {
			m.PaidAt = nil
		}
	}
	if u.Discount != nil {
		m.Discount = *u.Discount
	}
	if u.DiscountByPercent != nil {
		m.DiscountByPercent = *u.DiscountByPercent
	}
	if u.DiscountDescription != nil {
		m.DiscountDescription = u.DiscountDescription
	}
}

type SummaryInput struct {
	SessionID string `json:"sessionId"       validate:"required,uuid"`
	Month     *int   `json:"month,omitempty" validate:"omitempty,min=1,max=12"`
}

type PaymentLinkInput struct {
	FeeAssignmentID string `json:"feeAssignmentId" validate:"required,uuid"`
}

/* ===============================
   Responses
=================================*/

type AssignmentRow struct {
	model.FeeAssignmentModel
	StudentName string `json:"studentName"`
	FeeType     string `json:"feeType"`
	TotalFee    int64  `json:"totalFee"`
	Payable     int64  `json:"payable"`
}

type FeeSummary struct {
	TotalAssigned int64 `json:"totalAssigned"`
	TotalPaid     int64 `json:"totalPaid"`
	TotalPending  int64 `json:"totalPending"`
	Count         int64 `json:"count"`
}

type PaymentLink struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl"`
}
