package model

// SequenceModel is a per-kind, per-year counter. Rows are incremented in
// place (value = value + 1) so concurrent allocators serialize on the row lock.
type SequenceModel struct {
	Kind  string `gorm:"type:varchar(40);primaryKey;column:kind"`
	Year  int    `gorm:"primaryKey;autoIncrement:false;column:year"`
	Value int64  `gorm:"not null;default:0;column:value"`
}

func (SequenceModel) TableName() string { return "number_sequences" }

const (
	KindStudentRegistration  = "student_registration"
	KindStudentAdmission     = "student_admission"
	KindEmployeeRegistration = "employee_registration"
)
