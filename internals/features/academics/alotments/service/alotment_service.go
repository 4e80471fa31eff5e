// file: internals/features/academics/alotments/service/alotment_service.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"msns_backend/internals/features/academics/alotments/dto"
	"msns_backend/internals/features/academics/alotments/model"
	helper "msns_backend/internals/helpers"
	"msns_backend/internals/rpc"
)

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{db: db} }

// AddStudents allots students to a class for a session in one transaction.
func (s *Service) AddStudents(ctx context.Context, in dto.AddStudentsInput) (helper.Count, error) {
	ids := helper.ParseUUIDs(in.StudentIDs)
	classID := uuid.MustParse(in.ClassID)
	sessionID := uuid.MustParse(in.SessionID)
	employeeID := helper.ParseUUIDPtr(in.EmployeeID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if ok, err := helper.RowExists(tx, "classes", "class_id", classID); err != nil {
			return err
		} else if !ok {
			return rpc.NotFound("Class not found")
		}
		if ok, err := helper.RowExists(tx, "sessions", "session_id", sessionID); err != nil {
			return err
		} else if !ok {
			return rpc.NotFound("Session not found")
		}
		if employeeID != nil {
			if ok, err := helper.RowExists(tx, "employees", "employee_id", *employeeID); err != nil {
				return err
			} else if !ok {
				return rpc.NotFound("Employee not found")
			}
		}

		var found int64
		if err := tx.Table("students").Where("student_id IN ?", ids).Count(&found).Error; err != nil {
			return err
		}
		if found != int64(len(ids)) {
			return rpc.NotFound("Student not found")
		}

		var taken int64
		if err := tx.Model(&model.AlotmentModel{}).
			Where("session_id = ? AND student_id IN ?", sessionID, ids).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return rpc.Conflict("Student already allotted in this session")
		}

		rows := make([]model.AlotmentModel, 0, len(ids))
		for _, id := range ids {
			rows = append(rows, model.AlotmentModel{
				StudentID:  id,
				ClassID:    classID,
				SessionID:  sessionID,
				EmployeeID: employeeID,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		return tx.Table("students").
			Where("student_id IN ?", ids).
			UpdateColumn("is_assign", true).Error
	})
	if err != nil {
		if e := rpc.AsError(err); e.Code != rpc.CodeInternal {
			return helper.Count{}, e
		}
		if helper.IsUniqueViolation(err) {
			return helper.Count{}, rpc.Conflict("Student already allotted in this session")
		}
		return helper.Count{}, rpc.Internal("Failed to add students to class", err)
	}
	return helper.Count{Count: int64(len(ids))}, nil
}

type classStudentRow struct {
	StudentID          uuid.UUID
	RegistrationNumber string
	StudentName        string
	FatherName         string
	ClassID            uuid.UUID
	Grade              string
	Section            string
	EmployeeName       *string
	SessionID          uuid.UUID
	SessionName        string
}

func (s *Service) StudentsByClass(ctx context.Context, in dto.ClassSessionPageInput) (helper.Page[dto.ClassStudent], error) {
	p := in.Paging()
	base := s.db.WithContext(ctx).
		Table("student_classes sc").
		Where("sc.class_id = ? AND sc.session_id = ?", in.ClassID, in.SessionID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.Page[dto.ClassStudent]{}, rpc.Internal("Failed to retrieve class students", err)
	}

	var rows []classStudentRow
	err := base.
		Select(`st.student_id, st.registration_number, st.student_name, st.father_name,
			c.class_id, c.grade, c.section, e.employee_name, se.session_id, se.session_name`).
		Joins("JOIN students st ON st.student_id = sc.student_id").
		Joins("JOIN classes c ON c.class_id = sc.class_id").
		Joins("JOIN sessions se ON se.session_id = sc.session_id").
		Joins("LEFT JOIN employees e ON e.employee_id = sc.employee_id").
		Order("st.student_name ASC").
		Offset(p.Offset).Limit(p.Limit).
		Scan(&rows).Error
	if err != nil {
		return helper.Page[dto.ClassStudent]{}, rpc.Internal("Failed to retrieve class students", err)
	}

	out := make([]dto.ClassStudent, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ClassStudent{
			Student: dto.StudentRef{
				StudentID:          r.StudentID.String(),
				RegistrationNumber: r.RegistrationNumber,
				StudentName:        r.StudentName,
				FatherName:         r.FatherName,
			},
			Class:    dto.ClassRef{ClassID: r.ClassID.String(), Grade: r.Grade, Section: r.Section},
			Employee: dto.EmployeeRef{EmployeeName: r.EmployeeName},
			Session:  dto.SessionRef{SessionID: r.SessionID.String(), SessionName: r.SessionName},
		})
	}
	return helper.NewPage(out, total, p), nil
}

// RemoveStudents deletes the allotments and frees students that have no
// allotment left in any session.
func (s *Service) RemoveStudents(ctx context.Context, in dto.RemoveStudentsInput) (helper.Count, error) {
	ids := helper.ParseUUIDs(in.StudentIDs)
	var n int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("class_id = ? AND session_id = ? AND student_id IN ?", in.ClassID, in.SessionID, ids).
			Delete(&model.AlotmentModel{})
		if res.Error != nil {
			return res.Error
		}
		n = res.RowsAffected
		return tx.Exec(`UPDATE students SET is_assign = ?
			WHERE student_id IN ? AND NOT EXISTS (
				SELECT 1 FROM student_classes sc WHERE sc.student_id = students.student_id)`, false, ids).Error
	})
	if err != nil {
		return helper.Count{}, rpc.Internal("Failed to remove students from class", err)
	}
	return helper.Count{Count: n}, nil
}
