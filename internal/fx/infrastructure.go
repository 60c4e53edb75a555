package fx

import (
	"Parcelo/config"
	"Parcelo/internal/infrastructure"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newDatabase,
		newTxManager,
		newUserRepository,
		newLedgerRepository,
		newInstallmentRepository,
	),
)

func newDatabase(cfg *config.Config) (*gorm.DB, error) {
	return infrastructure.NewDb(cfg)
}

func newTxManager(db *gorm.DB) *infrastructure.TxManager {
	return infrastructure.NewTxManager(db)
}

func newUserRepository(db *gorm.DB) *infrastructure.UserRepository {
	return &infrastructure.UserRepository{DB: db}
}

func newLedgerRepository(db *gorm.DB) *infrastructure.LedgerRepository {
	return &infrastructure.LedgerRepository{DB: db}
}

func newInstallmentRepository(db *gorm.DB) *infrastructure.InstallmentRepository {
	return &infrastructure.InstallmentRepository{DB: db}
}
