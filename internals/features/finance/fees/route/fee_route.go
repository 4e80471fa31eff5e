package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"msns_backend/internals/constants"
	"msns_backend/internals/features/finance/fees/controller"
	"msns_backend/internals/features/finance/fees/service"
	"msns_backend/internals/rpc"
)

func RegisterProcedures(r *rpc.Router, db *gorm.DB, gw service.Gateway) {
	svc := service.New(db, gw)

	read := rpc.Roles(constants.StaffRoles...)
	write := rpc.Roles(constants.ManagementRoles...)

	rpc.Query(r, "fee.getAllFees", svc.List, read)
	rpc.Query(r, "fee.getFeeAssignments", svc.ListAssignments, read)
	rpc.Query(r, "fee.getFeeSummary", svc.Summary, read)

	rpc.Mutation(r, "fee.createFee", svc.Create, write)
	rpc.Mutation(r, "fee.updateFee", svc.Update, write)
	rpc.Mutation(r, "fee.deleteFeesByIds", svc.DeleteByIDs, rpc.Roles(constants.AdminRoles...))
	rpc.Mutation(r, "fee.assignFeeToStudent", svc.Assign, write)
	rpc.Mutation(r, "fee.updateFeeAssignment", svc.UpdateAssignment, write)
	rpc.Mutation(r, "fee.createPaymentLink", svc.CreatePaymentLink, write)
}

// NotificationRoutes mounts the public Midtrans callback.
func NotificationRoutes(app fiber.Router, db *gorm.DB, gw service.Gateway) {
	ctl := controller.NewPaymentNotificationController(service.New(db, gw), gw)
	app.Post("/api/webhook/midtrans", ctl.Handle)
}
