// file: internals/features/academics/alotments/model/alotment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "msns_backend/internals/helpers"
)

// AlotmentModel places a student in a class for one session. A student
// sits in at most one class per session.
type AlotmentModel struct {
	AlotmentID uuid.UUID  `gorm:"type:uuid;primaryKey;column:allotment_id" json:"alotmentId"`
	StudentID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_student_classes_student_session,priority:1;column:student_id" json:"studentId"`
	SessionID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_student_classes_student_session,priority:2;index:idx_student_classes_class_session,priority:2;column:session_id" json:"sessionId"`
	ClassID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_student_classes_class_session,priority:1;column:class_id" json:"classId"`
	EmployeeID *uuid.UUID `gorm:"type:uuid;column:employee_id" json:"employeeId,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:updated_at" json:"updatedAt"`
}

func (AlotmentModel) TableName() string { return "student_classes" }

func (m *AlotmentModel) BeforeCreate(tx *gorm.DB) error {
	helper.NewID(&m.AlotmentID)
	return nil
}
