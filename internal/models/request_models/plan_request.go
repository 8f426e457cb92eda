package request_models

type CreatePlanRequest struct {
	Name          string            `json:"name" binding:"required,max=64"`
	Description   *string           `json:"description"`
	AmountMinor   int64             `json:"amount_minor" binding:"required,gt=0"`
	Currency      string            `json:"currency" binding:"required,len=3"`
	Interval      string            `json:"interval" binding:"required,oneof=daily weekly monthly quarterly yearly"`
	IntervalCount int               `json:"interval_count" binding:"omitempty,gt=0"`
	TrialDays     int               `json:"trial_days" binding:"omitempty,gte=0"`
	MaxCycles     *int              `json:"max_billing_cycles" binding:"omitempty,gt=0"`
	Features      map[string]string `json:"features"`
}

type CreateInstrumentRequest struct {
	CustomerID  string `json:"customer_id" binding:"required,uuid4"`
	Kind        string `json:"kind" binding:"required,oneof=card bank_account wallet"`
	Token       string `json:"token" binding:"required"`
	LastFour    string `json:"last_four" binding:"omitempty,len=4"`
	ExpiryMonth int    `json:"expiry_month" binding:"omitempty,min=1,max=12"`
	ExpiryYear  int    `json:"expiry_year" binding:"omitempty,gte=2024"`
	IsDefault   bool   `json:"is_default"`
}
