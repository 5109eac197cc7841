package repository

import (
	"time"

	"github.com/yukikurage/rbac-task-api/internal/models"
	"github.com/yukikurage/rbac-task-api/internal/utils"
)

// TaskChanges is a partial task update. Only fields with Set true are
// written; a set field with a nil Value writes NULL.
type TaskChanges struct {
	Title       utils.Optional[string]
	Description utils.Optional[string]
	Status      utils.Optional[models.TaskStatus]
	Priority    utils.Optional[models.TaskPriority]
	AssignedTo  utils.Optional[uint64]
	DueDate     utils.Optional[time.Time]
}

// Fields lists the column names present in the update, in a fixed order.
func (c TaskChanges) Fields() []string {
	fields := make([]string, 0, 6)
	for _, col := range c.columns() {
		if col.set {
			fields = append(fields, col.name)
		}
	}
	return fields
}

// Columns maps every present field to the value to write.
func (c TaskChanges) Columns() map[string]any {
	values := make(map[string]any)
	for _, col := range c.columns() {
		if col.set {
			values[col.name] = col.value
		}
	}
	return values
}

type column struct {
	name  string
	set   bool
	value any
}

func (c TaskChanges) columns() []column {
	return []column{
		{"title", c.Title.Set, valueOf(c.Title)},
		{"description", c.Description.Set, valueOf(c.Description)},
		{"status", c.Status.Set, valueOf(c.Status)},
		{"priority", c.Priority.Set, valueOf(c.Priority)},
		{"assigned_to", c.AssignedTo.Set, valueOf(c.AssignedTo)},
		{"due_date", c.DueDate.Set, valueOf(c.DueDate)},
	}
}

// UserChanges is a partial user update. PasswordHash must already be hashed.
type UserChanges struct {
	FullName     *string
	Email        *string
	PasswordHash *string
}

// Columns maps every present field to the value to write.
func (c UserChanges) Columns() map[string]any {
	values := make(map[string]any)
	if c.FullName != nil {
		values["full_name"] = *c.FullName
	}
	if c.Email != nil {
		values["email"] = *c.Email
	}
	if c.PasswordHash != nil {
		values["password_hash"] = *c.PasswordHash
	}
	return values
}

func valueOf[T any](o utils.Optional[T]) any {
	if o.Value == nil {
		return nil
	}
	return *o.Value
}
