package route

import (
	"msns_backend/internals/constants"
	"msns_backend/internals/features/reports/service"
	"msns_backend/internals/rpc"
)

func RegisterProcedures(r *rpc.Router, svc *service.Service) {
	read := rpc.Roles(constants.StaffRoles...)

	rpc.Query(r, "report.studentReport", svc.StudentReport, read)
	rpc.Query(r, "report.employeeReport", svc.EmployeeReport, read)
}
