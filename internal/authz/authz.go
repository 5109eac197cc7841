// Package authz decides what an acting user may do with tasks.
//
// The whole rule set lives in Authorize and ListScope:
//
//	role     list scope          read              update            fields        delete       create
//	admin    all tasks           any               any               any           any          yes
//	manager  tasks they created  creator/assignee  creator/assignee  any           creator      yes
//	user     tasks assigned      assignee          assignee          status only   never        never
//
// The user field restriction is a presence check: sending any field other
// than status is forbidden even when its value is unchanged.
package authz

import (
	"errors"
	"fmt"

	"github.com/yukikurage/rbac-task-api/internal/models"
)

type Action string

const (
	ActionList   Action = "list"
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Task fields a caller may name in an update.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldPriority    = "priority"
	FieldAssignedTo  = "assigned_to"
	FieldDueDate     = "due_date"
)

var (
	ErrForbidden = errors.New("not enough permissions")
	// ErrStatusOnly is returned when a user-role caller names a field other than status.
	ErrStatusOnly = fmt.Errorf("%w: users can only update task status", ErrForbidden)
)

// Subject is the acting user.
type Subject struct {
	ID   uint64
	Role models.Role
}

// SubjectOf builds a Subject from a loaded user.
func SubjectOf(user *models.User) Subject {
	return Subject{ID: user.ID, Role: user.Role}
}

// Resource carries the ownership references of the target task.
type Resource struct {
	CreatedBy  *uint64
	AssignedTo *uint64
}

// ResourceOf extracts the ownership references of a task.
func ResourceOf(task *models.Task) Resource {
	return Resource{CreatedBy: task.CreatedBy, AssignedTo: task.AssignedTo}
}

// Authorize returns nil when sub may perform action on res, and an error
// wrapping ErrForbidden otherwise. fields lists the task fields present in an
// update request and is ignored for every other action. Resource is ignored
// for list and create.
func Authorize(sub Subject, action Action, res Resource, fields ...string) error {
	isCreator := refersTo(res.CreatedBy, sub.ID)
	isAssignee := refersTo(res.AssignedTo, sub.ID)

	switch sub.Role {
	case models.RoleAdmin:
		return nil

	case models.RoleManager:
		switch action {
		case ActionList, ActionCreate:
			return nil
		case ActionRead, ActionUpdate:
			if isCreator || isAssignee {
				return nil
			}
		case ActionDelete:
			if isCreator {
				return nil
			}
		}

	case models.RoleUser:
		switch action {
		case ActionList:
			return nil
		case ActionRead:
			if isAssignee {
				return nil
			}
		case ActionUpdate:
			if !isAssignee {
				return ErrForbidden
			}
			for _, f := range fields {
				if f != FieldStatus {
					return ErrStatusOnly
				}
			}
			return nil
		}
	}

	return ErrForbidden
}

// Scope is the creator/assignee constraint applied to a task listing. A nil
// reference imposes no constraint.
type Scope struct {
	CreatedBy  *uint64
	AssignedTo *uint64
}

// ListScope narrows the caller's requested listing to what sub may see.
// Managers keep their requested assignee filter but only see tasks they
// created; users always see exactly the tasks assigned to them, whatever
// assignee they asked for.
func ListScope(sub Subject, requested Scope) Scope {
	id := sub.ID

	switch sub.Role {
	case models.RoleAdmin:
		return requested
	case models.RoleManager:
		return Scope{CreatedBy: &id, AssignedTo: requested.AssignedTo}
	default:
		return Scope{AssignedTo: &id}
	}
}

// CanManageUsers reports whether role may browse the user directory.
func CanManageUsers(role models.Role) bool {
	return role == models.RoleAdmin
}

func refersTo(ref *uint64, id uint64) bool {
	return ref != nil && *ref == id
}
