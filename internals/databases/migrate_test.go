package database_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"msns_backend/internals/constants"
	database "msns_backend/internals/databases"
	"msns_backend/internals/databases/dbtest"
	classmodel "msns_backend/internals/features/academics/classes/model"
	subjectmodel "msns_backend/internals/features/academics/subjects/model"
	eventmodel "msns_backend/internals/features/events/model"
	employeemodel "msns_backend/internals/features/users/employees/model"
	helper "msns_backend/internals/helpers"
)

func TestMigrateCreatesEveryTable(t *testing.T) {
	db := dbtest.Open(t)
	for _, m := range database.Models() {
		assert.True(t, db.Migrator().HasTable(m), "%T", m)
	}
	require.NoError(t, database.Migrate(db))
}

func TestMigratedSchemaAcceptsRows(t *testing.T) {
	insertAcrossSchema(t, dbtest.Open(t))
}

// insertAcrossSchema writes rows through the array column and both
// preload-only associations.
func insertAcrossSchema(t *testing.T, db *gorm.DB) {
	t.Helper()
	emp := dbtest.Employee(t, db, 1, "Sana Iqbal", constants.DesignationTeacher)
	quals := helper.StringArray{"M.Sc Physics", "B.Ed"}
	require.NoError(t, db.Model(&emp).Update("qualifications", quals).Error)
	var back employeemodel.EmployeeModel
	require.NoError(t, db.Take(&back, "employee_id = ?", emp.EmployeeID).Error)
	assert.Equal(t, quals, back.Qualifications)

	session := dbtest.Session(t, db, "2025-2026", true)
	class := dbtest.Class(t, db, "Grade 5", "A", classmodel.CategoryPrimary, 3000)
	subject := dbtest.Subject(t, db, "Physics")
	link := subjectmodel.ClassSubjectModel{
		ClassID:    class.ClassID,
		SubjectID:  subject.SubjectID,
		SessionID:  session.SessionID,
		EmployeeID: emp.EmployeeID,
	}
	require.NoError(t, db.Create(&link).Error)
	var loaded subjectmodel.ClassSubjectModel
	require.NoError(t, db.Preload("Subject").Take(&loaded, "class_subject_id = ?", link.ClassSubjectID).Error)
	assert.Equal(t, "Physics", loaded.Subject.SubjectName)

	creator := dbtest.User(t, db, "user_admin", constants.RoleAdmin)
	tag := eventmodel.TagModel{Name: "Sports", Color: "#10B981"}
	require.NoError(t, db.Create(&tag).Error)
	ev := eventmodel.EventModel{
		Title:     "Sports Day",
		Date:      datatypes.Date(time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)),
		StartTime: "08:00",
		EndTime:   "13:00",
		Type:      "SOCIAL",
		Priority:  "HIGH",
		Status:    "CONFIRMED",
		Recurring: "NONE",
		CreatorID: &creator.UserID,
	}
	require.NoError(t, db.Create(&ev).Error)
	require.NoError(t, db.Create(&eventmodel.EventTagModel{EventID: ev.EventID, TagID: tag.TagID}).Error)

	var withTags eventmodel.EventModel
	require.NoError(t, db.Preload("EventTags.Tag").Take(&withTags, "event_id = ?", ev.EventID).Error)
	require.Len(t, withTags.EventTags, 1)
	assert.Equal(t, "Sports", withTags.EventTags[0].Tag.Name)
}
