package dto

import (
	"msns_backend/internals/features/academics/classes/model"
)

type CreateClassInput struct {
	Grade    string `json:"grade"    validate:"required,min=1,max=50"`
	Section  string `json:"section"  validate:"required,min=1,max=10"`
	Category string `json:"category" validate:"required,oneof=Montessori Primary Middle SSC_I SSC_II"`
	Fee      int    `json:"fee"      validate:"min=0"`
}

func (in *CreateClassInput) ToModel() model.ClassModel {
	return model.ClassModel{
		Grade:    in.Grade,
		Section:  in.Section,
		Category: model.Category(in.Category),
		Fee:      in.Fee,
	}
}

type UpdateClassInput struct {
	ClassID  string  `json:"classId"            validate:"required,uuid"`
	Grade    *string `json:"grade,omitempty"    validate:"omitempty,min=1,max=50"`
	Section  *string `json:"section,omitempty"  validate:"omitempty,min=1,max=10"`
	Category *string `json:"category,omitempty" validate:"omitempty,oneof=Montessori Primary Middle SSC_I SSC_II"`
	Fee      *int    `json:"fee,omitempty"      validate:"omitempty,min=0"`
}

func (u *UpdateClassInput) ApplyUpdates(m *model.ClassModel) {
	if u.Grade != nil {
		m.Grade = *u.Grade
	}
	if u.Section != nil {
		m.Section = *u.Section
	}
	if u.Category != nil {
		m.Category = model.Category(*u.Category)
	}
	if u.Fee != nil {
		m.Fee = *u.Fee
	}
}

type DeleteClassesInput struct {
	ClassIDs []string `json:"classIds" validate:"max=200,dive,uuid"`
}
