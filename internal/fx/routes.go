package fx

import (
	"time"

	"Parcelo/internal/domain/auth"
	"Parcelo/internal/domain/installment"
	"Parcelo/internal/domain/ledger"
	"Parcelo/internal/domain/user"
	"Parcelo/internal/middleware"
	"Parcelo/internal/routes"

	"go.uber.org/fx"
)

// RoutesModule fornece handlers e rate limiters
var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
		newAuthRateLimiter,
	),
)

func newHandler(
	userSvc *user.Service,
	authSvc *auth.Service,
	jwtSvc *middleware.JwtService,
	ledgerSvc *ledger.Service,
	installmentSvc *installment.Service,
) *routes.Handler {
	return &routes.Handler{
		UserService:        userSvc,
		AuthService:        authSvc,
		JwtService:         jwtSvc,
		LedgerService:      ledgerSvc,
		InstallmentService: installmentSvc,
	}
}

func newAuthRateLimiter() *middleware.RateLimiter {
	return middleware.NewRateLimiter(100, time.Minute)
}
