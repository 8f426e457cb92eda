package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"payflow/internal/models/request_models"
	"payflow/internal/services"
	"payflow/pkg/utils"
)

type PlanController struct {
	planService services.PlanServiceInterface
}

func NewPlanController(planService services.PlanServiceInterface) *PlanController {
	return &PlanController{
		planService: planService,
	}
}

func (p *PlanController) CreatePlan(c *gin.Context) {

	var request request_models.CreatePlanRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := p.planService.CreatePlan(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, resp, "Plan created")
}

func (p *PlanController) GetPlan(c *gin.Context) {

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	resp, err := p.planService.GetPlan(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "")
}

func (p *PlanController) ListPlans(c *gin.Context) {

	resp, err := p.planService.GetAllPlans(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "")
}

func (p *PlanController) DeactivatePlan(c *gin.Context) {

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := p.planService.DeactivatePlan(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Plan deactivated")
}
