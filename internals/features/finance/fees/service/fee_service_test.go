package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"msns_backend/internals/databases/dbtest"
	"msns_backend/internals/features/finance/fees/dto"
	"msns_backend/internals/features/finance/fees/model"
	"msns_backend/internals/rpc"
)

var fixedNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

type fakeGateway struct {
	orders  []string
	amounts []int64
	err     error
}

func (g *fakeGateway) CreateTransaction(orderID string, amount int64, name, email string) (string, string, error) {
	if g.err != nil {
		return "", "", g.err
	}
	g.orders = append(g.orders, orderID)
	g.amounts = append(g.amounts, amount)
	return "tok-" + orderID, "https://pay.example.com/" + orderID, nil
}

func (g *fakeGateway) IsSettled(string) (bool, error) { return true, nil }

type fixture struct {
	db      *gorm.DB
	svc     *Service
	gw      *fakeGateway
	fee     *model.FeeModel
	student string
	session string
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := dbtest.Open(t)
	gw := &fakeGateway{}
	svc := New(db, gw).WithClock(func() time.Time { return fixedNow })

	in := dto.CreateFeeInput{Level: "Primary", Type: "monthly", TuitionFee: 2500, ExamFund: 300, ComputerLabFund: 200}
	in.Defaults()
	fee, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	st := dbtest.Student(t, db, 1, "Ali Khan")
	sess := dbtest.Session(t, db, "2025-2026", true)
	return fixture{db: db, svc: svc, gw: gw, fee: fee, student: st.StudentID.String(), session: sess.SessionID.String()}
}

func (f fixture) assign(t *testing.T, months ...int) int64 {
	t.Helper()
	n, err := f.svc.Assign(context.Background(), dto.AssignFeeInput{
		StudentID:         f.student,
		FeeID:             f.fee.FeeID.String(),
		SessionID:         f.session,
		Months:            months,
		Discount:          200,
		DiscountByPercent: 10,
	})
	require.NoError(t, err)
	return n.Count
}

func (f fixture) list(t *testing.T, in dto.ListAssignmentsInput) []dto.AssignmentRow {
	t.Helper()
	in.SessionID = f.session
	in.Defaults()
	page, err := f.svc.ListAssignments(context.Background(), in)
	require.NoError(t, err)
	return page.Data
}

func TestPayable(t *testing.T) {
	assert.Equal(t, int64(2500), model.Payable(3000, 200, 10))
	assert.Equal(t, int64(3000), model.Payable(3000, 0, 0))
	assert.Equal(t, int64(0), model.Payable(1000, 800, 50))
	assert.Equal(t, int64(667), model.Payable(1000, 0, 33.3))
}

func TestCreateComputesTotal(t *testing.T) {
	f := setup(t)
	assert.Equal(t, model.FeeMonthly, f.fee.Type)
	assert.Equal(t, int64(3000), f.fee.TotalFee)

	tuition := int64(2700)
	m, err := f.svc.Update(context.Background(), dto.UpdateFeeInput{FeeID: f.fee.FeeID.String(), TuitionFee: &tuition})
	require.NoError(t, err)
	assert.Equal(t, int64(3200), m.TotalFee)

	_, err = f.svc.Update(context.Background(), dto.UpdateFeeInput{FeeID: uuid.NewString(), TuitionFee: &tuition})
	assert.Equal(t, rpc.CodeNotFound, rpc.CodeOf(err))
}

func TestAssignSkipsExistingMonths(t *testing.T) {
	f := setup(t)

	assert.Equal(t, int64(2), f.assign(t, 4, 3, 4))
	assert.Equal(t, int64(1), f.assign(t, 3, 5))

	rows := f.list(t, dto.ListAssignmentsInput{})
	require.Len(t, rows, 3)
	assert.Equal(t, []int{3, 4, 5}, []int{rows[0].Month, rows[1].Month, rows[2].Month})
	assert.Equal(t, "Ali Khan", rows[0].StudentName)
	assert.Equal(t, "MONTHLY", rows[0].FeeType)
	assert.Equal(t, int64(3000), rows[0].TotalFee)
	assert.Equal(t, int64(2500), rows[0].Payable)
	assert.Equal(t, model.StatusPending, rows[0].Status)

	month := 4
	assert.Len(t, f.list(t, dto.ListAssignmentsInput{Month: &month}), 1)
}

func TestAssignUnknownStudent(t *testing.T) {
	f := setup(t)
	_, err := f.svc.Assign(context.Background(), dto.AssignFeeInput{
		StudentID: uuid.NewString(),
		FeeID:     f.fee.FeeID.String(),
		SessionID: f.session,
		Months:    []int{1},
	})
	require.Error(t, err)
	assert.Equal(t, "Student not found", rpc.AsError(err).Message)
}

func TestUpdateAssignmentAndSummary(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.assign(t, 3, 4)
	rows := f.list(t, dto.ListAssignmentsInput{})

	paid := "paid"
	in := dto.UpdateAssignmentInput{FeeAssignmentID: rows[0].FeeAssignmentID.String(), Status: &paid}
	in.Defaults()
	m, err := f.svc.UpdateAssignment(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, m.Status)
	require.NotNil(t, m.PaidAt)
	assert.True(t, m.PaidAt.Equal(fixedNow))

	sum, err := f.svc.Summary(ctx, dto.SummaryInput{SessionID: f.session})
	require.NoError(t, err)
	assert.Equal(t, dto.FeeSummary{TotalAssigned: 5000, TotalPaid: 2500, TotalPending: 2500, Count: 2}, sum)

	status := "PAID"
	filtered := f.list(t, dto.ListAssignmentsInput{Status: &status})
	require.Len(t, filtered, 1)
	assert.Equal(t, 3, filtered[0].Month)

	pending := "PENDING"
	m, err = f.svc.UpdateAssignment(ctx, dto.UpdateAssignmentInput{FeeAssignmentID: m.FeeAssignmentID.String(), Status: &pending})
	require.NoError(t, err)
	assert.Nil(t, m.PaidAt)
}

func TestDeleteFeeRemovesAssignments(t *testing.T) {
	f := setup(t)
	f.assign(t, 1, 2)

	n, err := f.svc.DeleteByIDs(context.Background(), dto.DeleteFeesInput{FeeIDs: []string{f.fee.FeeID.String()}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n.Count)

	var left int64
	require.NoError(t, f.db.Model(&model.FeeAssignmentModel{}).Count(&left).Error)
	assert.Zero(t, left)
}

func TestPaymentLinkAndSettlement(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.assign(t, 6)
	row := f.list(t, dto.ListAssignmentsInput{})[0]

	link, err := f.svc.CreatePaymentLink(ctx, dto.PaymentLinkInput{FeeAssignmentID: row.FeeAssignmentID.String()})
	require.NoError(t, err)
	require.Len(t, f.gw.orders, 1)
	order := f.gw.orders[0]
	assert.True(t, strings.HasPrefix(order, "FEE-"+row.FeeAssignmentID.String()))
	assert.Equal(t, int64(2500), f.gw.amounts[0])
	assert.Equal(t, "tok-"+order, link.Token)

	ok, err := f.svc.MarkPaidByOrder(ctx, order)
	require.NoError(t, err)
	assert.True(t, ok)

	// a repeated notification is still recognised
	ok, err = f.svc.MarkPaidByOrder(ctx, order)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.MarkPaidByOrder(ctx, "FEE-unknown")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.svc.CreatePaymentLink(ctx, dto.PaymentLinkInput{FeeAssignmentID: row.FeeAssignmentID.String()})
	assert.Equal(t, rpc.CodeBadRequest, rpc.CodeOf(err))
}

func TestPaymentLinkGatewayFailures(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.assign(t, 6)
	row := f.list(t, dto.ListAssignmentsInput{})[0]
	in := dto.PaymentLinkInput{FeeAssignmentID: row.FeeAssignmentID.String()}

	f.gw.err = errors.New("snap down")
	_, err := f.svc.CreatePaymentLink(ctx, in)
	assert.Equal(t, rpc.CodeInternal, rpc.CodeOf(err))

	_, err = New(f.db, nil).CreatePaymentLink(ctx, in)
	assert.Equal(t, rpc.CodeInternal, rpc.CodeOf(err))

	_, err = f.svc.CreatePaymentLink(ctx, dto.PaymentLinkInput{FeeAssignmentID: uuid.NewString()})
	assert.Equal(t, rpc.CodeNotFound, rpc.CodeOf(err))
}
