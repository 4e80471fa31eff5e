package route

import (
	"gorm.io/gorm"

	"msns_backend/internals/constants"
	"msns_backend/internals/features/academics/sessions/service"
	"msns_backend/internals/rpc"
)

func RegisterProcedures(r *rpc.Router, db *gorm.DB) {
	svc := service.New(db)

	read := rpc.Roles(constants.StaffRoles...)
	rpc.Query(r, "session.getActiveSession", svc.GetActive, read)
	rpc.Query(r, "session.getSessions", svc.List, read)
	rpc.Query(r, "session.getGroupedSessions", svc.Grouped, read)

	rpc.Mutation(r, "session.createSession", svc.Create, rpc.Roles(constants.ManagementRoles...))
	rpc.Mutation(r, "session.updateSession", svc.Update, rpc.Roles(constants.ManagementRoles...))
	rpc.Mutation(r, "session.deleteSessionsByIds", svc.DeleteByIDs, rpc.Roles(constants.AdminRoles...))
	rpc.Mutation(r, "session.setActiveSession", svc.SetActive, rpc.Roles(constants.AdminRoles...))
}
