package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/taskloom/taskloom-api/internal/api/shared"
	"github.com/taskloom/taskloom-api/internal/domain"
	"github.com/taskloom/taskloom-api/internal/observability/metrics"
	"github.com/taskloom/taskloom-api/internal/store"
)

// OwnershipMiddleware binds a task named in the request path to its owner.
//
// It loads the task once and attaches it to the request context, so the
// downstream handler does not repeat the lookup. Read requests for public
// tasks bypass the owner comparison; writes always require ownership
// regardless of visibility.
type OwnershipMiddleware struct {
	taskStore store.TaskStore
}

// NewOwnershipMiddleware creates a new OwnershipMiddleware.
func NewOwnershipMiddleware(taskStore store.TaskStore) *OwnershipMiddleware {
	return &OwnershipMiddleware{taskStore: taskStore}
}

// RequireTaskAccess loads the task from the {taskID} path parameter and
// enforces the ownership rule appropriate for the request method.
func (m *OwnershipMiddleware) RequireTaskAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
			return
		}

		task, err := m.taskStore.GetByID(r.Context(), taskID)
		if err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"Failed to load task", err)
			return
		}

		readOnly := r.Method == http.MethodGet || r.Method == http.MethodHead

		if !(readOnly && task.IsPublic()) {
			userID, ok := GetUserID(r)
			if !ok {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
				return
			}
			if !task.IsOwnedBy(userID) {
				metrics.OwnershipDenialsTotal.Inc()
				shared.RespondWithError(w, r, http.StatusForbidden,
					"Not authorized to access this task")
				return
			}
		}

		ctx := context.WithValue(r.Context(), shared.TaskContextKey, task)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTask extracts the task loaded by the ownership gate from the request
// context.
func GetTask(r *http.Request) (*domain.Task, bool) {
	task, ok := r.Context().Value(shared.TaskContextKey).(*domain.Task)
	return task, ok
}
