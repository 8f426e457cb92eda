package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"payflow/internal/models/request_models"
	"payflow/internal/services"
	"payflow/pkg/utils"
)

type InstrumentController struct {
	instrumentService services.InstrumentServiceInterface
}

func NewInstrumentController(instrumentService services.InstrumentServiceInterface) *InstrumentController {
	return &InstrumentController{
		instrumentService: instrumentService,
	}
}

func (i *InstrumentController) CreateInstrument(c *gin.Context) {

	var request request_models.CreateInstrumentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := i.instrumentService.CreateInstrument(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, resp, "Instrument vaulted")
}

func (i *InstrumentController) ListInstruments(c *gin.Context) {

	customerID, err := uuid.Parse(c.Query("customer_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "customer_id query parameter is required")
		return
	}

	resp, err := i.instrumentService.GetInstrumentsByCustomer(c.Request.Context(), customerID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "")
}

func (i *InstrumentController) DeactivateInstrument(c *gin.Context) {

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := i.instrumentService.DeactivateInstrument(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Instrument deactivated")
}
