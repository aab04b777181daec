package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open returns a connected GORM DB for the configured driver. Each pipeline
// step opens its own connection and releases it before returning.
func Open(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "sqlite":
		gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("connect sqlite: %w", err)
		}
		return gormDB, nil
	case "mysql":
		gormDB, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("connect mysql: %w", err)
		}
		return gormDB, nil
	default:
		return nil, fmt.Errorf("unsupported db driver: %q", driver)
	}
}

// Close releases the underlying connection pool of a step-scoped DB.
func Close(gormDB *gorm.DB) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
