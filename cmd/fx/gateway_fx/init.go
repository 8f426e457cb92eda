package gateway_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"payflow/internal/gateway"
	"payflow/internal/infra"
)

var Module = fx.Provide(
	provideSettlementClient, provideAdapter)

func provideSettlementClient(cfg infra.Config) gateway.SettlementClient {
	return gateway.NewRESTClient(cfg.Gateway)
}

func provideAdapter(client gateway.SettlementClient, logger *zap.Logger) gateway.Adapter {
	return gateway.NewAdapter(client, logger)
}
