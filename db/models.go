package db

import (
	"time"

	"gorm.io/datatypes"
)

type UserConfig struct {
	ID        uint
	Key       string `gorm:"unique;not null"`
	Value     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ImportRecord is the last known snapshot of an import session, or the
// hand-off record of a paid order.
type ImportRecord struct {
	ID              string `gorm:"primaryKey"`
	Kind            string `gorm:"not null"`
	State           string `gorm:"not null;index"`
	Reason          string
	Error           string
	Version         uint64
	ContractAddress string `gorm:"index"`
	Indices         string
	Expiry          uint32
	Price           string
	Signature       string
	RelayRequest    datatypes.JSON
	TicketSummary   datatypes.JSON
	Costs           datatypes.JSON
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
