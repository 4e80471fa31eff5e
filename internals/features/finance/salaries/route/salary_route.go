package route

import (
	"gorm.io/gorm"

	"msns_backend/internals/constants"
	"msns_backend/internals/features/finance/salaries/service"
	"msns_backend/internals/rpc"
)

func RegisterProcedures(r *rpc.Router, db *gorm.DB) {
	svc := service.New(db)

	read := rpc.Roles(constants.StaffRoles...)
	write := rpc.Roles(constants.ManagementRoles...)

	rpc.Query(r, "salary.getSalaries", svc.List, read)
	rpc.Query(r, "salary.getSalarySummary", svc.Summary, read)

	rpc.Mutation(r, "salary.assignSalary", svc.Assign, write)
	rpc.Mutation(r, "salary.updateSalaryStatus", svc.UpdateStatus, write)
	rpc.Mutation(r, "salary.deleteSalariesByIds", svc.DeleteByIDs, write)
}
