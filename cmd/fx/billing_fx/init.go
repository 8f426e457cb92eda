package billing_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"payflow/internal/api/controllers"
	"payflow/internal/infra"
	"payflow/internal/repositories"
	"payflow/internal/services"
)

var Module = fx.Provide(
	provideBillingService, provideBillingController)

func provideBillingService(
	txManager repositories.TxManager,
	paymentService services.PaymentServiceInterface,
	cfg infra.Config,
	logger *zap.Logger,
) services.BillingServiceInterface {
	return services.NewBillingService(txManager, paymentService, cfg.Billing, logger)
}

func provideBillingController(billingService services.BillingServiceInterface) *controllers.BillingController {
	return controllers.NewBillingController(billingService)
}
