package route

import (
	"gorm.io/gorm"

	"msns_backend/internals/constants"
	"msns_backend/internals/features/academics/subjects/service"
	"msns_backend/internals/rpc"
)

func RegisterProcedures(r *rpc.Router, db *gorm.DB) {
	svc := service.New(db)

	read := rpc.Roles(constants.StaffRoles...)
	write := rpc.Roles(constants.ManagementRoles...)

	rpc.Query(r, "subject.getSubjects", svc.List, read)
	rpc.Query(r, "subject.getSubjectsByClass", svc.ByClass, read)

	rpc.Mutation(r, "subject.createSubject", svc.Create, write)
	rpc.Mutation(r, "subject.deleteSubjectsByIds", svc.DeleteByIDs, write)
	rpc.Mutation(r, "subject.assignSubjectToClass", svc.Assign, write)
	rpc.Mutation(r, "subject.removeSubjectFromClass", svc.Remove, write)
}
