package route

import (
	"gorm.io/gorm"

	"msns_backend/internals/constants"
	reports "msns_backend/internals/features/reports/service"
	"msns_backend/internals/features/users/students/service"
	"msns_backend/internals/rpc"
)

func RegisterProcedures(r *rpc.Router, db *gorm.DB, rep *reports.Service) {
	svc := service.New(db, r.Validator())

	read := rpc.Roles(constants.StaffRoles...)
	write := rpc.Roles(constants.ManagementRoles...)

	rpc.Query(r, "student.getStudents", svc.List, read)
	rpc.Query(r, "student.getStudentById", svc.GetByID, read)
	rpc.Query(r, "student.getUnAllocateStudents", svc.ListUnallocated, read)
	rpc.Query(r, "student.generateStudentReport", rep.StudentPDF, read)

	rpc.Mutation(r, "student.createStudent", svc.Create, write)
	rpc.Mutation(r, "student.updateStudent", svc.Update, write)
	rpc.Mutation(r, "student.deleteStudentsByIds", svc.DeleteByIDs, write)
	rpc.Mutation(r, "student.importStudents", svc.Import, write)
}
