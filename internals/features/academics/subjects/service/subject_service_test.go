package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msns_backend/internals/constants"
	"msns_backend/internals/databases/dbtest"
	classmodel "msns_backend/internals/features/academics/classes/model"
	"msns_backend/internals/features/academics/subjects/dto"
	"msns_backend/internals/rpc"
)

func TestCreateAndList(t *testing.T) {
	ctx := context.Background()
	svc := New(dbtest.Open(t))

	desc := "  "
	m, err := svc.Create(ctx, dto.CreateSubjectInput{SubjectName: " Physics ", Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Physics", m.SubjectName)
	assert.Nil(t, m.Description)

	_, err = svc.Create(ctx, dto.CreateSubjectInput{SubjectName: "Chemistry"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, dto.CreateSubjectInput{SubjectName: "Physics"})
	assert.Equal(t, rpc.CodeConflict, rpc.CodeOf(err))

	rows, err := svc.List(ctx, rpc.Empty{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Chemistry", rows[0].SubjectName)
}

type fixture struct {
	class, subject, session, teacher, other string
}

func setup(t *testing.T) (*Service, fixture) {
	t.Helper()
	db := dbtest.Open(t)
	c := dbtest.Class(t, db, "10", "A", classmodel.CategorySSCII, 3500)
	s := dbtest.Subject(t, db, "Mathematics")
	sess := dbtest.Session(t, db, "2025-2026", true)
	a := dbtest.Employee(t, db, 1, "Amna Bibi", constants.DesignationTeacher)
	b := dbtest.Employee(t, db, 2, "Kashif Ali", constants.DesignationTeacher)
	return New(db), fixture{
		class:   c.ClassID.String(),
		subject: s.SubjectID.String(),
		session: sess.SessionID.String(),
		teacher: a.EmployeeID.String(),
		other:   b.EmployeeID.String(),
	}
}

func TestAssignReplacesTeacher(t *testing.T) {
	ctx := context.Background()
	svc, f := setup(t)

	first, err := svc.Assign(ctx, dto.AssignSubjectInput{ClassID: f.class, SubjectID: f.subject, SessionID: f.session, EmployeeID: f.teacher})
	require.NoError(t, err)
	assert.Equal(t, "Mathematics", first.Subject.SubjectName)

	second, err := svc.Assign(ctx, dto.AssignSubjectInput{ClassID: f.class, SubjectID: f.subject, SessionID: f.session, EmployeeID: f.other})
	require.NoError(t, err)
	assert.Equal(t, first.ClassSubjectID, second.ClassSubjectID)
	assert.Equal(t, f.other, second.EmployeeID.String())

	rows, err := svc.ByClass(ctx, dto.ClassSessionInput{ClassID: f.class, SessionID: f.session})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Mathematics", rows[0].Subject.SubjectName)
	assert.Equal(t, "Kashif Ali", rows[0].Employee.EmployeeName)
	assert.Equal(t, f.other, rows[0].Employee.EmployeeID)
}

func TestAssignChecksReferences(t *testing.T) {
	ctx := context.Background()
	svc, f := setup(t)
	missing := uuid.NewString()

	cases := []struct {
		name string
		in   dto.AssignSubjectInput
		msg  string
	}{
		{"class", dto.AssignSubjectInput{ClassID: missing, SubjectID: f.subject, SessionID: f.session, EmployeeID: f.teacher}, "Class not found"},
		{"subject", dto.AssignSubjectInput{ClassID: f.class, SubjectID: missing, SessionID: f.session, EmployeeID: f.teacher}, "Subject not found"},
		{"session", dto.AssignSubjectInput{ClassID: f.class, SubjectID: f.subject, SessionID: missing, EmployeeID: f.teacher}, "Session not found"},
		{"employee", dto.AssignSubjectInput{ClassID: f.class, SubjectID: f.subject, SessionID: f.session, EmployeeID: missing}, "Employee not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Assign(ctx, tc.in)
			require.Error(t, err)
			e := rpc.AsError(err)
			assert.Equal(t, rpc.CodeNotFound, e.Code)
			assert.Equal(t, tc.msg, e.Message)
		})
	}
}

func TestRemoveAndDeleteSubject(t *testing.T) {
	ctx := context.Background()
	svc, f := setup(t)
	_, err := svc.Assign(ctx, dto.AssignSubjectInput{ClassID: f.class, SubjectID: f.subject, SessionID: f.session, EmployeeID: f.teacher})
	require.NoError(t, err)

	n, err := svc.Remove(ctx, dto.RemoveSubjectInput{ClassID: f.class, SubjectID: f.subject, SessionID: f.session})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n.Count)

	rows, err := svc.ByClass(ctx, dto.ClassSessionInput{ClassID: f.class, SessionID: f.session})
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = svc.Assign(ctx, dto.AssignSubjectInput{ClassID: f.class, SubjectID: f.subject, SessionID: f.session, EmployeeID: f.teacher})
	require.NoError(t, err)

	n, err = svc.DeleteByIDs(ctx, dto.DeleteSubjectsInput{SubjectIDs: []string{f.subject}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n.Count)

	rows, err = svc.ByClass(ctx, dto.ClassSessionInput{ClassID: f.class, SessionID: f.session})
	require.NoError(t, err)
	assert.Empty(t, rows)
}
