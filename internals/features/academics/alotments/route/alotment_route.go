package route

import (
	"gorm.io/gorm"

	"msns_backend/internals/constants"
	"msns_backend/internals/features/academics/alotments/service"
	"msns_backend/internals/rpc"
)

func RegisterProcedures(r *rpc.Router, db *gorm.DB) {
	svc := service.New(db)

	write := rpc.Roles(constants.ManagementRoles...)

	rpc.Query(r, "alotment.getStudentsByClassAndSession", svc.StudentsByClass, rpc.Roles(constants.StaffRoles...))
	rpc.Mutation(r, "alotment.addStudentsToClass", svc.AddStudents, write)
	rpc.Mutation(r, "alotment.deleteStudentsFromClass", svc.RemoveStudents, write)
}
