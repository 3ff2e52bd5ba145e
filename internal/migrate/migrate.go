package migrate

import (
	"errors"
	"fmt"

	applog "github.com/linkmart/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"gorm.io/gorm"

	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Run 对 postgres 部署执行结构化 SQL 迁移
// 其他驱动依赖 GORM AutoMigrate，记一条日志后跳过
func Run(db *gorm.DB, driverName, migrationPath string) error {
	if driverName != "postgres" {
		applog.Infow("migrations_skipped", "driver", driverName, "reason", "auto_migrate_only")
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB from gorm.DB: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create postgres migrate driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			applog.Infow("migrations_no_change")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	applog.Infow("migrations_applied", "path", migrationPath)
	return nil
}
