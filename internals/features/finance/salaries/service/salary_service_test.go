package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msns_backend/internals/constants"
	"msns_backend/internals/databases/dbtest"
	feemodel "msns_backend/internals/features/finance/fees/model"
	"msns_backend/internals/features/finance/salaries/dto"
	"msns_backend/internals/rpc"
)

var fixedNow = time.Date(2025, 7, 1, 8, 30, 0, 0, time.UTC)

func TestAssignListAndSummary(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	svc := New(db).WithClock(func() time.Time { return fixedNow })

	sess := dbtest.Session(t, db, "2025-2026", true)
	amna := dbtest.Employee(t, db, 1, "Amna Bibi", constants.DesignationTeacher)
	kashif := dbtest.Employee(t, db, 2, "Kashif Ali", constants.DesignationClerk)

	assign := func(emp uuid.UUID, month int, base, inc int64) string {
		m, err := svc.Assign(ctx, dto.AssignSalaryInput{
			EmployeeID: emp.String(),
			SessionID:  sess.SessionID.String(),
			BaseSalary: base,
			Increment:  inc,
			Month:      month,
			Year:       2025,
		})
		require.NoError(t, err)
		assert.Equal(t, base+inc, m.TotalSalary)
		assert.Equal(t, feemodel.StatusPending, m.Status)
		return m.SalaryAssignmentID.String()
	}
	first := assign(amna.EmployeeID, 6, 40000, 5000)
	assign(kashif.EmployeeID, 6, 30000, 0)
	assign(amna.EmployeeID, 5, 40000, 0)

	_, err := svc.Assign(ctx, dto.AssignSalaryInput{
		EmployeeID: amna.EmployeeID.String(),
		SessionID:  sess.SessionID.String(),
		BaseSalary: 1,
		Month:      6,
		Year:       2025,
	})
	assert.Equal(t, rpc.CodeConflict, rpc.CodeOf(err))

	in := dto.ListSalariesInput{}
	in.Defaults()
	page, err := svc.List(ctx, in)
	require.NoError(t, err)
	require.Len(t, page.Data, 3)
	assert.Equal(t, "Amna Bibi", page.Data[0].EmployeeName)
	assert.Equal(t, 6, page.Data[0].Month)
	assert.Equal(t, "Kashif Ali", page.Data[1].EmployeeName)
	assert.Equal(t, "MSNE250002", page.Data[1].RegistrationNumber)
	assert.Equal(t, 5, page.Data[2].Month)

	m, err := svc.UpdateStatus(ctx, dto.UpdateSalaryStatusInput{SalaryAssignmentID: first, Status: "PAID"})
	require.NoError(t, err)
	require.NotNil(t, m.PaidAt)
	assert.True(t, m.PaidAt.Equal(fixedNow))

	june := 6
	sum, err := svc.Summary(ctx, dto.SummaryInput{Year: 2025, Month: &june})
	require.NoError(t, err)
	assert.Equal(t, dto.SalarySummary{TotalPaid: 45000, TotalPending: 30000, Count: 2}, sum)

	sum, err = svc.Summary(ctx, dto.SummaryInput{Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, int64(70000), sum.TotalPending)
}

func TestAssignUnknownEmployee(t *testing.T) {
	db := dbtest.Open(t)
	sess := dbtest.Session(t, db, "2025-2026", true)
	_, err := New(db).Assign(context.Background(), dto.AssignSalaryInput{
		EmployeeID: uuid.NewString(),
		SessionID:  sess.SessionID.String(),
		BaseSalary: 100,
		Month:      1,
		Year:       2025,
	})
	require.Error(t, err)
	assert.Equal(t, "Employee not found", rpc.AsError(err).Message)
}

func TestUpdateStatusAndDelete(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	svc := New(db)
	sess := dbtest.Session(t, db, "2025-2026", true)
	emp := dbtest.Employee(t, db, 1, "Amna Bibi", constants.DesignationTeacher)

	m, err := svc.Assign(ctx, dto.AssignSalaryInput{
		EmployeeID: emp.EmployeeID.String(),
		SessionID:  sess.SessionID.String(),
		BaseSalary: 100,
		Month:      1,
		Year:       2025,
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, dto.UpdateSalaryStatusInput{SalaryAssignmentID: uuid.NewString(), Status: "PAID"})
	assert.Equal(t, rpc.CodeNotFound, rpc.CodeOf(err))

	n, err := svc.DeleteByIDs(ctx, dto.DeleteSalariesInput{SalaryAssignmentIDs: []string{m.SalaryAssignmentID.String()}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n.Count)
}
