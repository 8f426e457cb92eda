package controllers

import (
	"github.com/gin-gonic/gin"

	"payflow/internal/services"
	"payflow/pkg/utils"
)

// BillingController exposes the scheduler trigger surface. The endpoints are
// fire-and-report: outcomes land in the logs and the payment records.
type BillingController struct {
	billingService services.BillingServiceInterface
}

func NewBillingController(billingService services.BillingServiceInterface) *BillingController {
	return &BillingController{
		billingService: billingService,
	}
}

func (b *BillingController) RunRecurringBilling(c *gin.Context) {
	b.billingService.ProcessRecurringBilling(c.Request.Context())
	utils.RespondSuccess(c, nil, "Due-billing sweep completed")
}

func (b *BillingController) RunPaymentRetries(c *gin.Context) {
	b.billingService.ProcessFailedPaymentRetries(c.Request.Context())
	utils.RespondSuccess(c, nil, "Retry sweep completed")
}

func (b *BillingController) RunSubscriptionBilling(c *gin.Context) {

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := b.billingService.ProcessSubscriptionBilling(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Subscription billed")
}
