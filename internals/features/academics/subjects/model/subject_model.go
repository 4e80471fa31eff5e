// file: internals/features/academics/subjects/model/subject_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "msns_backend/internals/helpers"
)

type SubjectModel struct {
	SubjectID   uuid.UUID `gorm:"type:uuid;primaryKey;column:subject_id" json:"subjectId"`
	SubjectName string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_subjects_name;column:subject_name" json:"subjectName"`
	Description *string   `gorm:"type:varchar(500);column:description" json:"description,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:updated_at" json:"updatedAt"`
}

func (SubjectModel) TableName() string { return "subjects" }

func (m *SubjectModel) BeforeCreate(tx *gorm.DB) error {
	helper.NewID(&m.SubjectID)
	return nil
}

func (m *SubjectModel) BeforeSave(tx *gorm.DB) error {
	m.SubjectName = strings.TrimSpace(m.SubjectName)
	return nil
}

// ClassSubjectModel links a subject to a class for one session, with the
// teaching employee.
type ClassSubjectModel struct {
	ClassSubjectID uuid.UUID `gorm:"type:uuid;primaryKey;column:class_subject_id" json:"classSubjectId"`
	ClassID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_class_subjects,priority:1;column:class_id" json:"classId"`
	SubjectID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_class_subjects,priority:2;column:subject_id" json:"subjectId"`
	SessionID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_class_subjects,priority:3;index;column:session_id" json:"sessionId"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;index;column:employee_id" json:"employeeId"`

	// preload only; subject deletion removes its rows here explicitly
	Subject SubjectModel `gorm:"foreignKey:SubjectID;references:SubjectID;constraint:-" json:"subject"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:updated_at" json:"updatedAt"`
}

func (ClassSubjectModel) TableName() string { return "class_subjects" }

func (m *ClassSubjectModel) BeforeCreate(tx *gorm.DB) error {
	helper.NewID(&m.ClassSubjectID)
	return nil
}
