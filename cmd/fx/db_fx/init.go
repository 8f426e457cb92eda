package db_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"
	"payflow/internal/infra"
	"payflow/internal/repositories"
)

var Module = fx.Provide(
	provideDB, provideTxManager)

func provideDB(cfg infra.Config) *gorm.DB {
	return infra.InitPostgresql(cfg.Database)
}

func provideTxManager(db *gorm.DB) repositories.TxManager {
	return repositories.NewTxManager(db)
}
