package database

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"moul.io/zapgorm2"

	"github.com/junaidrashid-git/storefront-api/models"
)

// Open connects to postgres or sqlite depending on driver.
func Open(driver, dsn string, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, errors.Errorf("unsupported database driver %q", driver)
	}

	gormLog := zapgorm2.New(log.Named("gorm"))
	gormLog.IgnoreRecordNotFoundError = true

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLog.LogMode(gormlogger.Warn),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", driver)
	}

	log.Info("database connected", zap.String("driver", driver))
	return db, nil
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return errors.Wrap(err, "auto-migrate")
	}
	return nil
}
