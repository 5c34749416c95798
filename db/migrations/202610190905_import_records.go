package migrations

import (
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type importRecord202610190905 struct {
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

func (importRecord202610190905) TableName() string {
	return "import_records"
}

var _202610190905_import_records = &gormigrate.Migration{
	ID: "202610190905_import_records",
	Migrate: func(tx *gorm.DB) error {
		return tx.AutoMigrate(&importRecord202610190905{})
	},
	Rollback: func(tx *gorm.DB) error {
		return tx.Migrator().DropTable(&importRecord202610190905{})
	},
}
