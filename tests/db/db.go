package db

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/flokiorg/tickethub/db"
	"github.com/flokiorg/tickethub/db/migrations"
)

// NewDB opens a private in-memory database with all migrations applied.
func NewDB(t *testing.T) (*gorm.DB, error) {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gormDB, err := db.NewDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), false)
	if err != nil {
		return nil, err
	}
	if err := migrations.Migrate(gormDB); err != nil {
		db.Stop(gormDB)
		return nil, err
	}
	return gormDB, nil
}

func CloseDB(gormDB *gorm.DB) {
	db.Stop(gormDB)
}
