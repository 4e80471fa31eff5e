// file: internals/features/academics/subjects/service/subject_service.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"msns_backend/internals/features/academics/subjects/dto"
	"msns_backend/internals/features/academics/subjects/model"
	helper "msns_backend/internals/helpers"
	"msns_backend/internals/rpc"
)

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List(ctx context.Context, _ rpc.Empty) ([]model.SubjectModel, error) {
	var rows []model.SubjectModel
	if err := s.db.WithContext(ctx).Order("subject_name ASC").Find(&rows).Error; err != nil {
		return nil, rpc.Internal("Failed to retrieve subjects", err)
	}
	return rows, nil
}

func (s *Service) Create(ctx context.Context, in dto.CreateSubjectInput) (*model.SubjectModel, error) {
	m := in.ToModel()
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, rpc.Conflict("Subject already exists")
		}
		return nil, rpc.Internal("Failed to create subject", err)
	}
	return &m, nil
}

func (s *Service) DeleteByIDs(ctx context.Context, in dto.DeleteSubjectsInput) (helper.Count, error) {
	ids := helper.ParseUUIDs(in.SubjectIDs)
	if len(ids) == 0 {
		return helper.Count{}, nil
	}
	var n int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("subject_id IN ?", ids).Delete(&model.ClassSubjectModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("subject_id IN ?", ids).Delete(&model.SubjectModel{})
		n = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return helper.Count{}, rpc.Internal("Failed to delete subjects", err)
	}
	return helper.Count{Count: n}, nil
}

// Assign links a subject to a class for a session; assigning again replaces
// the teacher.
func (s *Service) Assign(ctx context.Context, in dto.AssignSubjectInput) (*model.ClassSubjectModel, error) {
	m := model.ClassSubjectModel{
		ClassID:    uuid.MustParse(in.ClassID),
		SubjectID:  uuid.MustParse(in.SubjectID),
		SessionID:  uuid.MustParse(in.SessionID),
		EmployeeID: uuid.MustParse(in.EmployeeID),
	}
	var out model.ClassSubjectModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		refs := []struct {
			table, column string
			id            uuid.UUID
			msg           string
		}{
			{"classes", "class_id", m.ClassID, "Class not found"},
			{"subjects", "subject_id", m.SubjectID, "Subject not found"},
			{"sessions", "session_id", m.SessionID, "Session not found"},
			{"employees", "employee_id", m.EmployeeID, "Employee not found"},
		}
		for _, ref := range refs {
			ok, err := helper.RowExists(tx, ref.table, ref.column, ref.id)
			if err != nil {
				return err
			}
			if !ok {
				return rpc.NotFound(ref.msg)
			}
		}
		err := tx.Omit("Subject").Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "class_id"}, {Name: "subject_id"}, {Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"employee_id", "updated_at"}),
		}).Create(&m).Error
		if err != nil {
			return err
		}
		// on conflict the stored row keeps its own id
		return tx.Preload("Subject").
			Where("class_id = ? AND subject_id = ? AND session_id = ?", m.ClassID, m.SubjectID, m.SessionID).
			Take(&out).Error
	})
	if err != nil {
		if e := rpc.AsError(err); e.Code != rpc.CodeInternal {
			return nil, e
		}
		return nil, rpc.Internal("Failed to assign subject", err)
	}
	return &out, nil
}

func (s *Service) ByClass(ctx context.Context, in dto.ClassSessionInput) ([]dto.ClassSubjectResponse, error) {
	var rows []struct {
		model.SubjectModel
		EmployeeID   uuid.UUID
		EmployeeName string
	}
	err := s.db.WithContext(ctx).
		Table("class_subjects cs").
		Select("s.*, e.employee_id, e.employee_name").
		Joins("JOIN subjects s ON s.subject_id = cs.subject_id").
		Joins("JOIN employees e ON e.employee_id = cs.employee_id").
		Where("cs.class_id = ? AND cs.session_id = ?", in.ClassID, in.SessionID).
		Order("s.subject_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, rpc.Internal("Failed to retrieve class subjects", err)
	}
	out := make([]dto.ClassSubjectResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ClassSubjectResponse{
			Subject:  r.SubjectModel,
			Employee: dto.EmployeeName{EmployeeID: r.EmployeeID.String(), EmployeeName: r.EmployeeName},
		})
	}
	return out, nil
}

func (s *Service) Remove(ctx context.Context, in dto.RemoveSubjectInput) (helper.Count, error) {
	res := s.db.WithContext(ctx).
		Where("class_id = ? AND subject_id = ? AND session_id = ?", in.ClassID, in.SubjectID, in.SessionID).
		Delete(&model.ClassSubjectModel{})
	if res.Error != nil {
		return helper.Count{}, rpc.Internal("Failed to remove subject from class", res.Error)
	}
	return helper.Count{Count: res.RowsAffected}, nil
}
