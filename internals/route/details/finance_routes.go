package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feeRoutes "msns_backend/internals/features/finance/fees/route"
	feeService "msns_backend/internals/features/finance/fees/service"
	salaryRoutes "msns_backend/internals/features/finance/salaries/route"
	"msns_backend/internals/rpc"
)

// FinanceProcedures registers fee and salary. gw may be nil.
func FinanceProcedures(r *rpc.Router, db *gorm.DB, gw feeService.Gateway) {
	feeRoutes.RegisterProcedures(r, db, gw)
	salaryRoutes.RegisterProcedures(r, db)
}

func FinanceWebhooks(app fiber.Router, db *gorm.DB, gw feeService.Gateway) {
	feeRoutes.NotificationRoutes(app, db, gw)
}
