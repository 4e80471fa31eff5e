package route

import (
	"gorm.io/gorm"

	"msns_backend/internals/constants"
	"msns_backend/internals/features/users/accounts/service"
	"msns_backend/internals/rpc"
)

func RegisterProcedures(r *rpc.Router, db *gorm.DB) {
	svc := service.New(db)

	rpc.Query(r, "user.getUsers", svc.List, rpc.Roles(constants.AdminRoles...))
	rpc.Query(r, "user.me", svc.Me, rpc.Roles(constants.AllRoles...))
}
