package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"msns_backend/internals/constants"
	database "msns_backend/internals/databases"
	feeService "msns_backend/internals/features/finance/fees/service"
	webhookService "msns_backend/internals/features/users/webhooks/service"
	helper "msns_backend/internals/helpers"
	"msns_backend/internals/helpers/storage"
	"msns_backend/internals/middlewares"
	"msns_backend/internals/middlewares/auth"
	routes "msns_backend/internals/route"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := cfg.RequireAuth(); err != nil {
		return err
	}
	verifier, err := auth.NewVerifier(cfg.Clerk.JWTKey)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	deps := routes.Deps{
		DB:       db,
		Config:   cfg,
		Logger:   logger,
		Store:    store,
		Verifier: verifier,
	}
	if gw := feeService.NewMidtransGateway(cfg.Payments.MidtransServerKey, cfg.Payments.MidtransProduction); gw != nil {
		deps.Gateway = gw
	} else {
		logger.Warn().Msg("MIDTRANS_SERVER_KEY not set, payment links disabled")
	}
	if cfg.Clerk.SecretKey != "" {
		deps.Roles = webhookService.NewClerkRoleAssigner(cfg.Clerk.SecretKey)
	} else {
		logger.Warn().Msg("CLERK_SECRET_KEY not set, default role assignment disabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	deps.Registry = reg

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		BodyLimit:             constants.MaxUploadBytes + 1024*1024,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return helper.JsonError(c, fe.Code, fe.Message)
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "")
		},
	})

	middlewares.SetupMiddlewares(app, cfg.HTTP, logger)
	routes.SetupRoutes(app, deps)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.HTTP.Port).Msg("listening")
		errCh <- app.Listen("0.0.0.0:" + cfg.HTTP.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}
