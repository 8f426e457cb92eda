package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"payflow/internal/models/request_models"
	"payflow/internal/services"
	"payflow/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentServiceInterface
}

func NewPaymentController(paymentService services.PaymentServiceInterface) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

// CreatePurchase godoc
// @Summary Charge an instrument in a single step
// @Description Run an idempotent purchase against the settlement gateway
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreatePaymentRequest true "Create Payment Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/purchase [post]
func (p *PaymentController) CreatePurchase(c *gin.Context) {

	var request request_models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := p.paymentService.CreatePurchase(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Purchase processed")
}

// CreateAuthorization godoc
// @Summary Place an authorization hold
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreatePaymentRequest true "Create Payment Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/authorize [post]
func (p *PaymentController) CreateAuthorization(c *gin.Context) {

	var request request_models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := p.paymentService.CreateAuthorization(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Authorization processed")
}

// CapturePayment godoc
// @Summary Capture a completed authorization
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path string true "Authorization transaction ID"
// @Param request body request_models.CapturePaymentRequest true "Capture Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/{id}/capture [post]
func (p *PaymentController) CapturePayment(c *gin.Context) {

	parentID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var request request_models.CapturePaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := p.paymentService.CapturePayment(c.Request.Context(), parentID, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Capture processed")
}

// RefundPayment godoc
// @Summary Refund a purchase or capture, fully or partially
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body request_models.RefundPaymentRequest true "Refund Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/{id}/refund [post]
func (p *PaymentController) RefundPayment(c *gin.Context) {

	parentID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var request request_models.RefundPaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := p.paymentService.RefundPayment(c.Request.Context(), parentID, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Refund processed")
}

// CancelPayment godoc
// @Summary Void an uncaptured authorization
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path string true "Authorization transaction ID"
// @Param request body request_models.CancelPaymentRequest true "Void Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/{id}/void [post]
func (p *PaymentController) CancelPayment(c *gin.Context) {

	parentID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var request request_models.CancelPaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := p.paymentService.CancelPayment(c.Request.Context(), parentID, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Void processed")
}

// GetTransaction godoc
// @Summary Fetch one transaction
// @Tags Payments
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/{id} [get]
func (p *PaymentController) GetTransaction(c *gin.Context) {

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	resp, err := p.paymentService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "")
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid id parameter")
		return uuid.Nil, false
	}
	return id, true
}
