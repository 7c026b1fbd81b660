package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the progress state of a task.
type TaskStatus string

// TaskPriority represents the urgency of a task.
type TaskPriority string

// Visibility controls whether non-owners may read a resource.
type Visibility string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"

	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"

	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// Task validation errors
var (
	ErrEmptyTaskID      = errors.New("task ID cannot be empty")
	ErrEmptyTaskOwner   = errors.New("task owner cannot be empty")
	ErrEmptyTaskTitle   = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong = errors.New("task title must be at most 200 characters")
)

// Task is a unit of work owned by a single user. OwnerID is set at creation
// and immutable thereafter; Visibility governs whether non-owners may read it.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	OwnerID     uuid.UUID    `json:"owner_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Deadline    time.Time    `json:"deadline"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	CategoryID  *uuid.UUID   `json:"category_id,omitempty"`
	Visibility  Visibility   `json:"visibility"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewTask creates a task owned by ownerID. Status defaults to pending and
// visibility to private when left empty, matching the API defaults.
func NewTask(
	ownerID uuid.UUID,
	title, description string,
	deadline time.Time,
	status TaskStatus,
	priority TaskPriority,
	categoryID *uuid.UUID,
	visibility Visibility,
) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}
	if visibility == "" {
		visibility = VisibilityPrivate
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(title),
		Description: description,
		Deadline:    deadline,
		Status:      status,
		Priority:    priority,
		CategoryID:  categoryID,
		Visibility:  visibility,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.OwnerID == uuid.Nil {
		return ErrEmptyTaskOwner
	}
	if t.Title == "" {
		return ErrEmptyTaskTitle
	}
	if len(t.Title) > 200 {
		return ErrTaskTitleTooLong
	}
	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}
	if !t.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if !t.Visibility.IsValid() {
		return ErrInvalidVisibility
	}
	return nil
}

// IsPublic reports whether the task is readable by non-owners.
func (t *Task) IsPublic() bool {
	return t.Visibility == VisibilityPublic
}

// IsOwnedBy compares the task's owner to the given identity by canonical
// uuid equality.
func (t *Task) IsOwnedBy(userID uuid.UUID) bool {
	return t.OwnerID == userID
}

// IsValid reports whether the status is one of the known values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// IsValid reports whether the priority is one of the known values.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// IsValid reports whether the visibility is one of the known values.
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPrivate, VisibilityPublic:
		return true
	}
	return false
}
