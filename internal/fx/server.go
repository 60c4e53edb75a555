package fx

import (
	"context"

	"Parcelo/config"
	"Parcelo/internal/logger"
	"Parcelo/internal/middleware"
	"Parcelo/internal/routes"

	"github.com/gin-gonic/gin"

	"go.uber.org/fx"
)

// ServerModule fornece a configuração do servidor HTTP
var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
	),
	fx.Invoke(
		setupRoutes,
	),
)

func newRouter() *gin.Engine {
	return gin.Default()
}

func setupRoutes(
	lc fx.Lifecycle,
	cfg *config.Config,
	router *gin.Engine,
	handler *routes.Handler,
	jwtSvc *middleware.JwtService,
	authRateLimiter *middleware.RateLimiter,
) {
	router.Use(middleware.CORSMiddleware())

	public := router.Group("/api")
	public.Use(middleware.RateLimit(authRateLimiter))
	{
		public.POST("/auth/login", handler.Authenticate)
		public.POST("/auth/register", handler.Registration)
		public.POST("/auth/google", handler.GoogleAuth)
	}

	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(jwtSvc))
	private.Use(middleware.RateLimitByUser())
	{
		users := private.Group("/users")
		{
			users.PATCH("/me", handler.UpdateUserName)
			users.DELETE("/me", handler.DeleteUser)
		}

		ledgers := private.Group("/ledgers")
		{
			ledgers.POST("", handler.CreateLedger)
			ledgers.GET("", handler.ListLedgers)
			ledgers.GET("/:id", handler.GetLedger)
		}

		accounts := private.Group("/accounts")
		{
			accounts.POST("", handler.CreateAccount)
			accounts.GET("", handler.ListAccounts)
			accounts.GET("/:id", handler.GetAccount)
		}

		transactions := private.Group("/transactions")
		{
			transactions.POST("", handler.CreateTransaction)
			transactions.GET("", handler.ListTransactions)
		}

		plans := private.Group("/installment-plans")
		{
			plans.POST("", handler.CreateInstallmentPlan)
			plans.GET("", handler.ListInstallmentPlans)
			plans.GET("/:id", handler.GetInstallmentPlan)
			plans.PATCH("/:id", handler.UpdateInstallmentPlan)
			plans.DELETE("/:id", handler.DeleteInstallmentPlan)
		}

		schedules := private.Group("/installment-schedules")
		{
			schedules.GET("", handler.ListInstallmentSchedules)
			schedules.POST("/:id/process", handler.ProcessInstallment)
		}
	}

	serverAddr := ":" + cfg.Server.Port
	logger.Info().
		Str("address", serverAddr).
		Str("environment", cfg.App.Environment).
		Msg("Servidor iniciando")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := router.Run(serverAddr); err != nil {
					logger.Fatal().Err(err).Msg("Falha ao iniciar servidor")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Servidor parando...")
			return nil
		},
	})
}
