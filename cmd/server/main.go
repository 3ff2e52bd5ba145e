package main

import (
	"flag"
	"os"
	"strings"
	"syscall"

	"github.com/linkmart/internal/app"
	"github.com/linkmart/internal/config"
	"github.com/linkmart/internal/logger"
	"github.com/linkmart/internal/migrate"
	"github.com/linkmart/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env 不存在时静默跳过
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" {
		if isWeakSecret(cfg.JWT.SecretKey) {
			stdLog.Fatalf("JWT secret is weak or still the default, set a strong random key in production")
		}
	} else if isWeakSecret(cfg.JWT.SecretKey) {
		stdLog.Printf("warning: JWT secret is weak or still the default, change it before going to production")
	}

	db, err := models.InitDB(cfg.Database, cfg.Server.Mode)
	if err != nil {
		stdLog.Fatalf("database init failed: %v", err)
	}

	if cfg.Migrations.Enabled {
		if err := migrate.Run(db, cfg.Database.Driver, "migrations"); err != nil {
			stdLog.Fatalf("database migrations failed: %v", err)
		}
	}
	if err := models.AutoMigrate(db); err != nil {
		stdLog.Fatalf("database auto migrate failed: %v", err)
	}

	defaultAdminUser := os.Getenv("LM_DEFAULT_ADMIN_USERNAME")
	defaultAdminPass := os.Getenv("LM_DEFAULT_ADMIN_PASSWORD")
	if cfg.Server.Mode == "release" && defaultAdminPass == "" {
		stdLog.Printf("warning: LM_DEFAULT_ADMIN_PASSWORD not set, skipping default admin bootstrap")
	} else if err := models.InitDefaultAdmin(db, defaultAdminUser, defaultAdminPass); err != nil {
		stdLog.Printf("warning: default admin bootstrap failed: %v", err)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "run mode: all (default), api, worker")
	flag.Parse()

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("service run failed: %v", err)
	}
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
