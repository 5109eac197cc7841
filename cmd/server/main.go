package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/yukikurage/rbac-task-api/internal/config"
	"github.com/yukikurage/rbac-task-api/internal/database"
	"github.com/yukikurage/rbac-task-api/internal/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "task-api",
	Short: "Role-scoped task management API",
	RunE:  runServe,
}

func main() {
	rootCmd.AddCommand(serveCmd, createAdminCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalln(err.Error())
	}
}

// bootstrap loads configuration, builds the logger and opens a migrated database.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	zapLogger, err := logger.New(cfg.LogLevel, !cfg.IsProduction())
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := database.Connect(cfg, zapLogger)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := database.Migrate(db, zapLogger); err != nil {
		return nil, nil, nil, err
	}

	return cfg, zapLogger, db, nil
}
