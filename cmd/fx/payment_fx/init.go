package payment_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"payflow/internal/api/controllers"
	"payflow/internal/gateway"
	"payflow/internal/repositories"
	"payflow/internal/services"
)

var Module = fx.Provide(
	providePaymentService, providePaymentController)

func providePaymentService(txManager repositories.TxManager, adapter gateway.Adapter, logger *zap.Logger) services.PaymentServiceInterface {
	return services.NewPaymentService(txManager, adapter, logger)
}

func providePaymentController(paymentService services.PaymentServiceInterface) *controllers.PaymentController {
	return controllers.NewPaymentController(paymentService)
}
