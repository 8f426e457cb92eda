package subscription_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"payflow/internal/api/controllers"
	"payflow/internal/gateway"
	"payflow/internal/repositories"
	"payflow/internal/services"
)

var Module = fx.Provide(
	provideSubscriptionService, provideSubscriptionController)

func provideSubscriptionService(txManager repositories.TxManager, adapter gateway.Adapter, logger *zap.Logger) services.SubscriptionServiceInterface {
	return services.NewSubscriptionService(txManager, adapter, logger)
}

func provideSubscriptionController(subscriptionService services.SubscriptionServiceInterface) *controllers.SubscriptionController {
	return controllers.NewSubscriptionController(subscriptionService)
}
