package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	deadline := time.Now().Add(24 * time.Hour)

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()

		task, err := NewTask(ownerID, "Write report", "", deadline, "", TaskPriorityMedium, nil, "")
		require.NoError(t, err)

		assert.Equal(t, TaskStatusPending, task.Status)
		assert.Equal(t, VisibilityPrivate, task.Visibility)
		assert.Equal(t, ownerID, task.OwnerID)
		assert.NotEqual(t, uuid.Nil, task.ID)
	})

	t.Run("trims the title", func(t *testing.T) {
		t.Parallel()

		task, err := NewTask(ownerID, "  Write report  ", "", deadline, "", TaskPriorityLow, nil, "")
		require.NoError(t, err)
		assert.Equal(t, "Write report", task.Title)
	})

	tests := []struct {
		name       string
		title      string
		status     TaskStatus
		priority   TaskPriority
		visibility Visibility
		wantErr    error
	}{
		{
			name:     "empty title",
			title:    "   ",
			priority: TaskPriorityLow,
			wantErr:  ErrEmptyTaskTitle,
		},
		{
			name:     "title too long",
			title:    strings.Repeat("x", 201),
			priority: TaskPriorityLow,
			wantErr:  ErrTaskTitleTooLong,
		},
		{
			name:     "unknown status",
			title:    "Write report",
			status:   TaskStatus("archived"),
			priority: TaskPriorityLow,
			wantErr:  ErrInvalidStatus,
		},
		{
			name:     "unknown priority",
			title:    "Write report",
			priority: TaskPriority("urgent"),
			wantErr:  ErrInvalidPriority,
		},
		{
			name:       "unknown visibility",
			title:      "Write report",
			priority:   TaskPriorityLow,
			visibility: Visibility("hidden"),
			wantErr:    ErrInvalidVisibility,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewTask(ownerID, tt.title, "", deadline, tt.status, tt.priority, nil, tt.visibility)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("missing owner", func(t *testing.T) {
		t.Parallel()

		_, err := NewTask(uuid.Nil, "Write report", "", deadline, "", TaskPriorityLow, nil, "")
		assert.ErrorIs(t, err, ErrEmptyTaskOwner)
	})
}

func TestTaskOwnershipAndVisibility(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	otherID := uuid.New()

	task, err := NewTask(ownerID, "Write report", "", time.Now(), "", TaskPriorityHigh, nil, VisibilityPublic)
	require.NoError(t, err)

	assert.True(t, task.IsOwnedBy(ownerID))
	assert.False(t, task.IsOwnedBy(otherID))
	assert.True(t, task.IsPublic())

	task.Visibility = VisibilityPrivate
	assert.False(t, task.IsPublic())
}

func TestTaskEnumValidity(t *testing.T) {
	t.Parallel()

	assert.True(t, TaskStatusInProgress.IsValid())
	assert.False(t, TaskStatus("").IsValid())
	assert.True(t, TaskPriorityHigh.IsValid())
	assert.False(t, TaskPriority("critical").IsValid())
	assert.True(t, VisibilityPublic.IsValid())
	assert.False(t, Visibility("shared").IsValid())
}
