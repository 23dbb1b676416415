package db

import (
	"astrolink/pkg/core/logger"
	"astrolink/system/shorturl"
	"astrolink/system/user"

	"gorm.io/gorm"
)

// AutoMigrate 执行所有组件的数据库迁移
func AutoMigrate(db *gorm.DB) error {
	log := logger.GetLogger().WithEntryName("Migrate")

	if err := user.AutoMigrate(db, log); err != nil {
		return err
	}
	if err := shorturl.AutoMigrate(db, log); err != nil {
		return err
	}
	return nil
}
