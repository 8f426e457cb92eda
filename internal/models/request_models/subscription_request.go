package request_models

import "github.com/google/uuid"

type CreateSubscriptionRequest struct {
	CustomerID   uuid.UUID         `json:"customer_id" binding:"required"`
	PlanID       uuid.UUID         `json:"plan_id" binding:"required"`
	InstrumentID uuid.UUID         `json:"instrument_id" binding:"required"`
	Metadata     map[string]string `json:"metadata"`
}

type UpdateSubscriptionRequest struct {
	InstrumentID *uuid.UUID        `json:"instrument_id"`
	Metadata     map[string]string `json:"metadata"`
}

type CancelSubscriptionRequest struct {
	// Immediate ends the subscription now; otherwise it runs out the
	// current paid period.
	Immediate bool   `json:"immediate"`
	Reason    string `json:"reason"`
}
