package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"payflow/internal/models/request_models"
	"payflow/internal/services"
	"payflow/pkg/utils"
)

type SubscriptionController struct {
	subscriptionService services.SubscriptionServiceInterface
}

func NewSubscriptionController(subscriptionService services.SubscriptionServiceInterface) *SubscriptionController {
	return &SubscriptionController{
		subscriptionService: subscriptionService,
	}
}

// CreateSubscription godoc
// @Summary Subscribe a customer to a plan
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param request body request_models.CreateSubscriptionRequest true "Create Subscription Request"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /subscriptions [post]
func (s *SubscriptionController) CreateSubscription(c *gin.Context) {

	var request request_models.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := s.subscriptionService.CreateSubscription(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, resp, "Subscription created")
}

func (s *SubscriptionController) UpdateSubscription(c *gin.Context) {

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var request request_models.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := s.subscriptionService.UpdateSubscription(c.Request.Context(), id, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Subscription updated")
}

// CancelSubscription godoc
// @Summary Cancel a subscription now or at period end
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param id path string true "Subscription ID"
// @Param request body request_models.CancelSubscriptionRequest true "Cancel Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /subscriptions/{id}/cancel [post]
func (s *SubscriptionController) CancelSubscription(c *gin.Context) {

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var request request_models.CancelSubscriptionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := s.subscriptionService.CancelSubscription(c.Request.Context(), id, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Subscription cancelled")
}

func (s *SubscriptionController) GetSubscription(c *gin.Context) {

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	resp, err := s.subscriptionService.GetSubscription(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "")
}
