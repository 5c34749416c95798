package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/flokiorg/tickethub/logger"
)

func Migrate(gormDB *gorm.DB) error {
	m := gormigrate.New(gormDB, gormigrate.DefaultOptions, []*gormigrate.Migration{
		_202610190900_user_configs,
		_202610190905_import_records,
	})

	if err := m.Migrate(); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to migrate database")
		return err
	}
	return nil
}
