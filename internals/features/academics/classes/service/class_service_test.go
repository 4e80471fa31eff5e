package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msns_backend/internals/constants"
	"msns_backend/internals/databases/dbtest"
	"msns_backend/internals/features/academics/classes/dto"
	"msns_backend/internals/features/academics/classes/model"
	studentmodel "msns_backend/internals/features/users/students/model"
	"msns_backend/internals/rpc"
)

func TestListOrdersByCategoryThenGrade(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	svc := New(db)

	dbtest.Class(t, db, "9", "B", model.CategorySSCI, 3000)
	dbtest.Class(t, db, "Nursery", "A", model.CategoryMontessori, 1500)
	dbtest.Class(t, db, "9", "A", model.CategorySSCI, 3000)
	dbtest.Class(t, db, "3", "A", model.CategoryPrimary, 2000)

	rows, err := svc.List(ctx, rpc.Empty{})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	got := make([]string, 0, len(rows))
	for _, r := range rows {
		got = append(got, r.Grade+r.Section)
	}
	assert.Equal(t, []string{"NurseryA", "3A", "9A", "9B"}, got)
}

func TestCreateRejectsDuplicateGradeSection(t *testing.T) {
	ctx := context.Background()
	svc := New(dbtest.Open(t))

	in := dto.CreateClassInput{Grade: "5", Section: "a", Category: "Primary", Fee: 2500}
	m, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "A", m.Section)

	// section is normalized before the unique check
	_, err = svc.Create(ctx, dto.CreateClassInput{Grade: "5", Section: " A ", Category: "Primary"})
	require.Error(t, err)
	assert.Equal(t, rpc.CodeConflict, rpc.CodeOf(err))
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	svc := New(db)
	c := dbtest.Class(t, db, "6", "A", model.CategoryMiddle, 2800)
	dbtest.Class(t, db, "6", "B", model.CategoryMiddle, 2800)

	fee := 3100
	m, err := svc.Update(ctx, dto.UpdateClassInput{ClassID: c.ClassID.String(), Fee: &fee})
	require.NoError(t, err)
	assert.Equal(t, 3100, m.Fee)
	assert.Equal(t, "A", m.Section)

	section := "b"
	_, err = svc.Update(ctx, dto.UpdateClassInput{ClassID: c.ClassID.String(), Section: &section})
	assert.Equal(t, rpc.CodeConflict, rpc.CodeOf(err))

	_, err = svc.Update(ctx, dto.UpdateClassInput{ClassID: "5f0c1c1e-0000-4000-8000-000000000000", Fee: &fee})
	assert.Equal(t, rpc.CodeNotFound, rpc.CodeOf(err))
}

func TestDeleteCascadesAndFreesStudents(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	svc := New(db)

	sess := dbtest.Session(t, db, "2025-2026", true)
	gone := dbtest.Class(t, db, "7", "A", model.CategoryMiddle, 2800)
	kept := dbtest.Class(t, db, "8", "A", model.CategoryMiddle, 2800)
	a := dbtest.Student(t, db, 1, "Ali Khan")
	b := dbtest.Student(t, db, 2, "Sara Ahmed")
	dbtest.Allot(t, db, a, gone, sess)
	dbtest.Allot(t, db, b, kept, sess)

	teacher := dbtest.Employee(t, db, 1, "Amna Bibi", constants.DesignationTeacher)
	sub := dbtest.Subject(t, db, "Urdu")
	require.NoError(t, db.Exec(
		"INSERT INTO class_subjects (class_subject_id, class_id, subject_id, session_id, employee_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)",
		"0b7e3b4a-1111-4c3d-9e2f-000000000001", gone.ClassID, sub.SubjectID, sess.SessionID, teacher.EmployeeID,
	).Error)

	n, err := svc.DeleteByIDs(ctx, dto.DeleteClassesInput{ClassIDs: []string{gone.ClassID.String()}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n.Count)

	var links int64
	require.NoError(t, db.Table("class_subjects").Count(&links).Error)
	assert.Zero(t, links)

	var students []studentmodel.StudentModel
	require.NoError(t, db.Order("registration_number").Find(&students).Error)
	require.Len(t, students, 2)
	assert.False(t, students[0].IsAssign)
	assert.True(t, students[1].IsAssign)

	n, err = svc.DeleteByIDs(ctx, dto.DeleteClassesInput{})
	require.NoError(t, err)
	assert.Zero(t, n.Count)
}
