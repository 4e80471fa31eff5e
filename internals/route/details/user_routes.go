package details

import (
	"gorm.io/gorm"

	reportService "msns_backend/internals/features/reports/service"
	accountRoutes "msns_backend/internals/features/users/accounts/route"
	employeeRoutes "msns_backend/internals/features/users/employees/route"
	studentRoutes "msns_backend/internals/features/users/students/route"
	"msns_backend/internals/rpc"
)

func UserProcedures(r *rpc.Router, db *gorm.DB, reports *reportService.Service) {
	studentRoutes.RegisterProcedures(r, db, reports)
	employeeRoutes.RegisterProcedures(r, db)
	accountRoutes.RegisterProcedures(r, db)
}
