// file: internals/route/index.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"msns_backend/internals/configs"
	feeService "msns_backend/internals/features/finance/fees/service"
	reportService "msns_backend/internals/features/reports/service"
	webhookRoutes "msns_backend/internals/features/users/webhooks/route"
	webhookService "msns_backend/internals/features/users/webhooks/service"
	helper "msns_backend/internals/helpers"
	"msns_backend/internals/helpers/storage"
	"msns_backend/internals/middlewares/auth"
	routeDetails "msns_backend/internals/route/details"
	"msns_backend/internals/rpc"
)

// Deps carries everything the routes are built from. Gateway and Roles
// are optional.
type Deps struct {
	DB       *gorm.DB
	Config   configs.Config
	Logger   zerolog.Logger
	Store    storage.ObjectStore
	Verifier *auth.Verifier
	Gateway  feeService.Gateway
	Roles    webhookService.RoleAssigner
	Registry *prometheus.Registry
}

// NewRouter registers every procedure. It has no HTTP side so tests can
// call procedures directly.
func NewRouter(d Deps) *rpc.Router {
	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	r := rpc.NewRouter(helper.NewValidator(), d.Logger, rpc.NewMetrics(reg))
	reports := reportService.New(d.DB, d.Config.Institute)

	routeDetails.AcademicProcedures(r, d.DB)
	routeDetails.UserProcedures(r, d.DB, reports)
	routeDetails.FinanceProcedures(r, d.DB, d.Gateway)
	routeDetails.EventProcedures(r, d.DB)
	routeDetails.ReportProcedures(r, reports)
	routeDetails.UploadProcedures(r, d.Store)
	return r
}

func SetupRoutes(app *fiber.App, d Deps) *rpc.Router {
	BaseRoutes(app, d.DB, d.Registry)

	d.Logger.Info().Msg("setting up webhook routes")
	webhookRoutes.WebhookRoutes(app, d.DB, d.Config.Clerk, d.Roles)
	routeDetails.FinanceWebhooks(app, d.DB, d.Gateway)

	session := auth.RequireSession(d.Verifier)

	d.Logger.Info().Msg("setting up upload routes")
	routeDetails.UploadRoutes(app.Group("/api/v1", session), d.Store)

	r := NewRouter(d)
	r.Mount(app.Group("/api/trpc", session))
	d.Logger.Info().Int("procedures", len(r.Names())).Msg("procedures registered")
	return r
}
