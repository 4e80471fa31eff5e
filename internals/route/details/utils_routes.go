package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	eventRoutes "msns_backend/internals/features/events/route"
	reportRoutes "msns_backend/internals/features/reports/route"
	reportService "msns_backend/internals/features/reports/service"
	uploadRoutes "msns_backend/internals/features/uploads/route"
	"msns_backend/internals/helpers/storage"
	"msns_backend/internals/rpc"
)

func EventProcedures(r *rpc.Router, db *gorm.DB) {
	eventRoutes.RegisterProcedures(r, db)
}

func ReportProcedures(r *rpc.Router, reports *reportService.Service) {
	reportRoutes.RegisterProcedures(r, reports)
}

func UploadProcedures(r *rpc.Router, store storage.ObjectStore) {
	uploadRoutes.RegisterProcedures(r, store)
}

func UploadRoutes(api fiber.Router, store storage.ObjectStore) {
	uploadRoutes.UploadRoutes(api, store)
}
