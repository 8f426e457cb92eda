package instrument_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"payflow/internal/api/controllers"
	"payflow/internal/repositories"
	"payflow/internal/services"
)

var Module = fx.Provide(
	provideInstrumentRepository, provideInstrumentService, provideInstrumentController)

func provideInstrumentRepository(db *gorm.DB) repositories.IInstrumentRepository {
	return repositories.NewInstrumentRepository(db)
}

func provideInstrumentService(instrumentRepo repositories.IInstrumentRepository, logger *zap.Logger) services.InstrumentServiceInterface {
	return services.NewInstrumentService(instrumentRepo, logger)
}

func provideInstrumentController(instrumentService services.InstrumentServiceInterface) *controllers.InstrumentController {
	return controllers.NewInstrumentController(instrumentService)
}
