// file: internals/features/academics/classes/model/class_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "msns_backend/internals/helpers"
)

type Category string

const (
	CategoryMontessori Category = "Montessori"
	CategoryPrimary    Category = "Primary"
	CategoryMiddle     Category = "Middle"
	CategorySSCI       Category = "SSC_I"
	CategorySSCII      Category = "SSC_II"
)

// Categories in display order.
var Categories = []Category{CategoryMontessori, CategoryPrimary, CategoryMiddle, CategorySSCI, CategorySSCII}

type ClassModel struct {
	ClassID  uuid.UUID `gorm:"type:uuid;primaryKey;column:class_id" json:"classId"`
	Grade    string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_classes_grade_section,priority:1;column:grade" json:"grade"`
	Section  string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_classes_grade_section,priority:2;column:section" json:"section"`
	Category Category  `gorm:"type:varchar(12);not null;index;column:category" json:"category"`
	Fee      int       `gorm:"not null;default:0;column:fee" json:"fee"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:updated_at" json:"updatedAt"`
}

func (ClassModel) TableName() string { return "classes" }

func (m *ClassModel) BeforeCreate(tx *gorm.DB) error {
	helper.NewID(&m.ClassID)
	return nil
}

func (m *ClassModel) BeforeSave(tx *gorm.DB) error {
	m.Grade = strings.TrimSpace(m.Grade)
	m.Section = strings.ToUpper(strings.TrimSpace(m.Section))
	return nil
}
