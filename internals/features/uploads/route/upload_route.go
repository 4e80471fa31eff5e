package route

import (
	"github.com/gofiber/fiber/v2"

	"msns_backend/internals/constants"
	"msns_backend/internals/features/uploads/controller"
	"msns_backend/internals/features/uploads/service"
	"msns_backend/internals/helpers/storage"
	"msns_backend/internals/middlewares"
	"msns_backend/internals/rpc"
)

func RegisterProcedures(r *rpc.Router, store storage.ObjectStore) {
	svc := service.New(store)
	rpc.Mutation(r, "upload.getUploadUrl", svc.SignedURL, rpc.Roles(constants.StaffRoles...))
}

// UploadRoutes mounts the multipart endpoints under /api/v1.
func UploadRoutes(api fiber.Router, store storage.ObjectStore) {
	ctl := controller.NewUploadController(service.New(store))
	g := api.Group("/upload", middlewares.UploadRateLimiter())
	g.Post("/", ctl.Upload)
	g.Post("/avatar", ctl.UploadAvatar)
}
