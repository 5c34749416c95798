package migrations

import (
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

type userConfig202610190900 struct {
	ID        uint
	Key       string `gorm:"unique;not null"`
	Value     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userConfig202610190900) TableName() string {
	return "user_configs"
}

var _202610190900_user_configs = &gormigrate.Migration{
	ID: "202610190900_user_configs",
	Migrate: func(tx *gorm.DB) error {
		return tx.AutoMigrate(&userConfig202610190900{})
	},
	Rollback: func(tx *gorm.DB) error {
		return tx.Migrator().DropTable(&userConfig202610190900{})
	},
}
