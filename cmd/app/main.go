package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"payflow/cmd/fx/billing_fx"
	"payflow/cmd/fx/db_fx"
	"payflow/cmd/fx/gateway_fx"
	"payflow/cmd/fx/instrument_fx"
	"payflow/cmd/fx/logger_fx"
	"payflow/cmd/fx/payment_fx"
	"payflow/cmd/fx/plan_fx"
	"payflow/cmd/fx/subscription_fx"
	"payflow/internal/api/controllers"
	"payflow/internal/infra"
	"payflow/pkg/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	app := fx.New(
		fx.Supply(cfg),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),

		logger_fx.Module,
		db_fx.Module,
		gateway_fx.Module,
		plan_fx.Module,
		instrument_fx.Module,
		payment_fx.Module,
		subscription_fx.Module,
		billing_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg infra.Config, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("Starting HTTP server", zap.String("port", cfg.Port))
				if err := engine.Run(":" + cfg.Port); err != nil {
					logger.Fatal("Failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	cfg infra.Config,
	paymentController *controllers.PaymentController,
	planController *controllers.PlanController,
	instrumentController *controllers.InstrumentController,
	subscriptionController *controllers.SubscriptionController,
	billingController *controllers.BillingController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, cfg, paymentController, planController, instrumentController,
		subscriptionController, billingController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	cfg infra.Config,
	paymentController *controllers.PaymentController,
	planController *controllers.PlanController,
	instrumentController *controllers.InstrumentController,
	subscriptionController *controllers.SubscriptionController,
	billingController *controllers.BillingController) {

	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuthMiddleware(cfg.Auth.JWTSecret))

	payments := v1.Group("/payments")
	payments.POST("/purchase", paymentController.CreatePurchase)
	payments.POST("/authorize", paymentController.CreateAuthorization)
	payments.POST("/:id/capture", paymentController.CapturePayment)
	payments.POST("/:id/refund", paymentController.RefundPayment)
	payments.POST("/:id/void", paymentController.CancelPayment)
	payments.GET("/:id", paymentController.GetTransaction)

	plans := v1.Group("/plans")
	plans.POST("", planController.CreatePlan)
	plans.GET("", planController.ListPlans)
	plans.GET("/:id", planController.GetPlan)
	plans.DELETE("/:id", planController.DeactivatePlan)

	instruments := v1.Group("/instruments")
	instruments.POST("", instrumentController.CreateInstrument)
	instruments.GET("", instrumentController.ListInstruments)
	instruments.DELETE("/:id", instrumentController.DeactivateInstrument)

	subscriptions := v1.Group("/subscriptions")
	subscriptions.POST("", subscriptionController.CreateSubscription)
	subscriptions.PATCH("/:id", subscriptionController.UpdateSubscription)
	subscriptions.POST("/:id/cancel", subscriptionController.CancelSubscription)
	subscriptions.GET("/:id", subscriptionController.GetSubscription)

	internal := r.Group("/internal/billing")
	internal.Use(middleware.InternalTokenMiddleware(cfg.Auth.InternalToken))
	internal.POST("/run", billingController.RunRecurringBilling)
	internal.POST("/retries", billingController.RunPaymentRetries)
	internal.POST("/subscriptions/:id", billingController.RunSubscriptionBilling)
}
