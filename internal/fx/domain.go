package fx

import (
	"Parcelo/config"
	"Parcelo/internal/domain/auth"
	"Parcelo/internal/domain/installment"
	"Parcelo/internal/domain/ledger"
	"Parcelo/internal/domain/user"
	"Parcelo/internal/infrastructure"
	"Parcelo/internal/logger"

	"go.uber.org/fx"
)

// DomainModule fornece todos os services do domínio
var DomainModule = fx.Module("domain",
	fx.Provide(
		newUserService,

		// Auth service (requer GoogleClientID)
		newGoogleClientID,
		newAuthService,

		newLedgerService,
		newInstallmentService,
	),
)

func newUserService(repo *infrastructure.UserRepository) *user.Service {
	return user.NewService(repo)
}

func newGoogleClientID(cfg *config.Config) string {
	googleClientID := ""
	if cfg.GoogleOAuth.Enabled {
		if cfg.GoogleOAuth.ClientID == "" {
			logger.Warn().
				Msg("GOOGLE_OAUTH_ENABLED=true mas GOOGLE_OAUTH_CLIENT_ID está vazio. Verifique se a variável está definida no arquivo .env")
		} else {
			googleClientID = cfg.GoogleOAuth.ClientID
			logger.Info().
				Int("client_id_length", len(googleClientID)).
				Msg("Google OAuth habilitado")
		}
	} else {
		logger.Info().Msg("Google OAuth desabilitado (GOOGLE_OAUTH_ENABLED não está definido como 'true')")
	}
	return googleClientID
}

func newAuthService(
	repo *infrastructure.UserRepository,
	userSvc *user.Service,
	googleClientID string,
) *auth.Service {
	return auth.NewService(repo, userSvc, googleClientID)
}

func newLedgerService(
	repo *infrastructure.LedgerRepository,
	userSvc *user.Service,
	tx *infrastructure.TxManager,
) *ledger.Service {
	return ledger.NewService(repo, userSvc, tx)
}

func newInstallmentService(
	repo *infrastructure.InstallmentRepository,
	ledgerSvc *ledger.Service,
	userSvc *user.Service,
	tx *infrastructure.TxManager,
) *installment.Service {
	return installment.NewService(repo, ledgerSvc, userSvc, tx)
}
