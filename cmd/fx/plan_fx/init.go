package plan_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"payflow/internal/api/controllers"
	"payflow/internal/repositories"
	"payflow/internal/services"
)

var Module = fx.Provide(
	providePlanRepository, providePlanService, providePlanController)

func providePlanRepository(db *gorm.DB) repositories.IPlanRepository {
	return repositories.NewPlanRepository(db)
}

func providePlanService(planRepo repositories.IPlanRepository, logger *zap.Logger) services.PlanServiceInterface {
	return services.NewPlanService(planRepo, logger)
}

func providePlanController(planService services.PlanServiceInterface) *controllers.PlanController {
	return controllers.NewPlanController(planService)
}
