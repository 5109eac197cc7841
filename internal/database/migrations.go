package database

import (
	"fmt"

	"github.com/yukikurage/rbac-task-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// taskIndexes back the list filters: creator scope, assignee scope and status.
var taskIndexes = []struct {
	name    string
	columns string
}{
	{"idx_tasks_created_by", "created_by"},
	{"idx_tasks_assigned_to", "assigned_to"},
	{"idx_tasks_status", "status"},
}

// EnsureIndexes creates the task filter indexes that are missing.
func EnsureIndexes(db *gorm.DB, log *zap.Logger) error {
	migrator := db.Migrator()

	for _, idx := range taskIndexes {
		if migrator.HasIndex(&models.Task{}, idx.name) {
			log.Debug("Index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON tasks (%s)", idx.name, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("Created index", zap.String("index", idx.name), zap.String("columns", idx.columns))
	}

	return nil
}
