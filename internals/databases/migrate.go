package database

import (
	"fmt"

	"gorm.io/gorm"

	alotmentmodel "msns_backend/internals/features/academics/alotments/model"
	classmodel "msns_backend/internals/features/academics/classes/model"
	sessionmodel "msns_backend/internals/features/academics/sessions/model"
	subjectmodel "msns_backend/internals/features/academics/subjects/model"
	eventmodel "msns_backend/internals/features/events/model"
	feemodel "msns_backend/internals/features/finance/fees/model"
	salarymodel "msns_backend/internals/features/finance/salaries/model"
	accountmodel "msns_backend/internals/features/users/accounts/model"
	employeemodel "msns_backend/internals/features/users/employees/model"
	sequencemodel "msns_backend/internals/features/users/sequences/model"
	studentmodel "msns_backend/internals/features/users/students/model"
	webhookmodel "msns_backend/internals/features/users/webhooks/model"
)

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&accountmodel.UserModel{},
		&sessionmodel.SessionModel{},
		&classmodel.ClassModel{},
		&subjectmodel.SubjectModel{},
		&studentmodel.StudentModel{},
		&employeemodel.EmployeeModel{},
		&sequencemodel.SequenceModel{},
		&subjectmodel.ClassSubjectModel{},
		&alotmentmodel.AlotmentModel{},
		&feemodel.FeeModel{},
		&feemodel.FeeAssignmentModel{},
		&salarymodel.SalaryAssignmentModel{},
		&eventmodel.TagModel{},
		&eventmodel.EventModel{},
		&eventmodel.EventAttendeeModel{},
		&eventmodel.EventReminderModel{},
		&eventmodel.EventTagModel{},
		&webhookmodel.WebhookDeliveryModel{},
	}
}

// Migrate creates or updates the schema, then the partial unique index
// that allows at most one active session.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec(sessionmodel.ActiveSessionIndexDDL).Error; err != nil {
		return fmt.Errorf("active session index: %w", err)
	}
	return nil
}
