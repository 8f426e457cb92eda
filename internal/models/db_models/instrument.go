package db_models

import (
	"github.com/google/uuid"
)

// PaymentInstrument references a vaulted payment method on the gateway side.
// Only the vault token and display fields live here; no PCI data.
type PaymentInstrument struct {
	BaseModel
	CustomerID uuid.UUID      `gorm:"index"`
	Kind       InstrumentKind `gorm:"type:instrument_kind"`

	Token    string `gorm:"uniqueIndex"` // gateway vault reference
	LastFour string `gorm:"size:4"`

	ExpiryMonth int
	ExpiryYear  int

	IsActive  bool `gorm:"default:true"`
	IsDefault bool `gorm:"default:false"`
}
