package route

import (
	"gorm.io/gorm"

	"msns_backend/internals/constants"
	"msns_backend/internals/features/users/employees/service"
	"msns_backend/internals/rpc"
)

func RegisterProcedures(r *rpc.Router, db *gorm.DB) {
	svc := service.New(db)

	read := rpc.Roles(constants.StaffRoles...)
	write := rpc.Roles(constants.ManagementRoles...)

	rpc.Query(r, "employee.getEmployees", svc.List, read)
	rpc.Query(r, "employee.getUnAllocateEmployees", svc.ListUnallocated, read)
	rpc.Query(r, "employee.getEmployeeById", svc.GetByID, read)

	rpc.Mutation(r, "employee.createEmployee", svc.Create, write)
	rpc.Mutation(r, "employee.updateEmployee", svc.Update, write)
	rpc.Mutation(r, "employee.deleteEmployeesByIds", svc.DeleteByIDs, rpc.Roles(constants.AdminRoles...))
	rpc.Mutation(r, "employee.verifyEmployeeCredentials", svc.VerifyCredentials, read)
}
