package route

import (
	"gorm.io/gorm"

	"msns_backend/internals/constants"
	"msns_backend/internals/features/academics/classes/service"
	"msns_backend/internals/rpc"
)

func RegisterProcedures(r *rpc.Router, db *gorm.DB) {
	svc := service.New(db)

	write := rpc.Roles(constants.ManagementRoles...)

	rpc.Query(r, "class.getClasses", svc.List, rpc.Roles(constants.StaffRoles...))
	rpc.Mutation(r, "class.createClass", svc.Create, write)
	rpc.Mutation(r, "class.updateClass", svc.Update, write)
	rpc.Mutation(r, "class.deleteClassesByIds", svc.DeleteByIDs, write)
}
