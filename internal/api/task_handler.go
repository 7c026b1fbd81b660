// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/taskloom/taskloom-api/internal/api/middleware"
	"github.com/taskloom/taskloom-api/internal/api/shared"
	"github.com/taskloom/taskloom-api/internal/domain"
	"github.com/taskloom/taskloom-api/internal/platform/logger"
	"github.com/taskloom/taskloom-api/internal/store"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// TaskHandler handles task-related HTTP requests.
//
// Single-task routes run behind the ownership gate, which has already
// loaded the task and verified access; handlers for those routes read the
// task from the request context instead of querying again.
type TaskHandler struct {
	taskStore store.TaskStore
	logger    *slog.Logger
	validator *validator.Validate
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskStore store.TaskStore, log *slog.Logger) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TaskHandler{
		taskStore: taskStore,
		logger:    log.With(slog.String("component", "task_handler")),
		validator: validator.New(),
	}
}

// Create handles POST /api/tasks requests.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := domain.NewTask(
		userID,
		req.Title,
		req.Description,
		req.Deadline,
		domain.TaskStatus(req.Status),
		domain.TaskPriority(req.Priority),
		req.CategoryID,
		domain.Visibility(req.Visibility),
	)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task data: "+err.Error())
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log := logger.FromContextOrDefault(r.Context(), h.logger)
	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("owner_id", userID.String()))

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// List handles GET /api/tasks requests, returning the authenticated user's
// tasks with optional status/priority/category filters and pagination.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	filter, err := taskFilterFromQuery(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	page := pageFromQuery(r)

	tasks, total, err := h.taskStore.ListByOwner(r.Context(), userID, filter, page)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to fetch tasks", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskListResponse{
		Tasks:      tasks,
		Page:       page.Number,
		TotalPages: totalPages(total, page.Size),
		Total:      total,
	})
}

// ListPublic handles GET /api/tasks/public requests. No authentication is
// required: public visibility bypasses the ownership gate for reads.
func (h *TaskHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	filter, err := taskFilterFromQuery(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	page := pageFromQuery(r)

	tasks, total, err := h.taskStore.ListPublic(r.Context(), filter, page)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to fetch public tasks", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskListResponse{
		Tasks:      tasks,
		Page:       page.Number,
		TotalPages: totalPages(total, page.Size),
		Total:      total,
	})
}

// Get handles GET /api/tasks/{taskID} requests.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, ok := middleware.GetTask(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Task not loaded")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Update handles PUT /api/tasks/{taskID} requests.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	task, ok := middleware.GetTask(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Task not loaded")
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	applyTaskUpdate(task, &req)

	if err := task.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task data: "+err.Error())
		return
	}

	if err := h.taskStore.Update(r.Context(), task); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/{taskID} requests.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	task, ok := middleware.GetTask(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Task not loaded")
		return
	}

	if err := h.taskStore.Delete(r.Context(), task.ID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	log := logger.FromContextOrDefault(r.Context(), h.logger)
	log.Debug("task deleted", slog.String("task_id", task.ID.String()))

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"message": "Task deleted successfully",
	})
}

// applyTaskUpdate copies the set fields of req onto task. The owner is
// never touched.
func applyTaskUpdate(task *domain.Task, req *UpdateTaskRequest) {
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Deadline != nil {
		task.Deadline = *req.Deadline
	}
	if req.Status != nil {
		task.Status = domain.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		task.Priority = domain.TaskPriority(*req.Priority)
	}
	if req.CategoryID != nil {
		task.CategoryID = req.CategoryID
	}
	if req.Visibility != nil {
		task.Visibility = domain.Visibility(*req.Visibility)
	}
}

// taskFilterFromQuery builds a store filter from the request's query
// parameters, rejecting unknown enum values.
func taskFilterFromQuery(r *http.Request) (store.TaskFilter, error) {
	var filter store.TaskFilter
	q := r.URL.Query()

	if s := q.Get("status"); s != "" {
		status := domain.TaskStatus(s)
		if !status.IsValid() {
			return filter, errInvalidFilter("status")
		}
		filter.Status = status
	}
	if p := q.Get("priority"); p != "" {
		priority := domain.TaskPriority(p)
		if !priority.IsValid() {
			return filter, errInvalidFilter("priority")
		}
		filter.Priority = priority
	}
	if v := q.Get("visibility"); v != "" {
		visibility := domain.Visibility(v)
		if !visibility.IsValid() {
			return filter, errInvalidFilter("visibility")
		}
		filter.Visibility = visibility
	}
	if c := q.Get("category"); c != "" {
		categoryID, err := uuid.Parse(c)
		if err != nil {
			return filter, errInvalidFilter("category")
		}
		filter.CategoryID = &categoryID
	}

	return filter, nil
}

type filterError string

func (e filterError) Error() string { return string(e) }

func errInvalidFilter(name string) error {
	return filterError("Invalid " + name + " filter")
}

// pageFromQuery reads page/limit query parameters with sane bounds.
func pageFromQuery(r *http.Request) store.Page {
	q := r.URL.Query()

	number, err := strconv.Atoi(q.Get("page"))
	if err != nil || number < 1 {
		number = 1
	}

	size, err := strconv.Atoi(q.Get("limit"))
	if err != nil || size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	return store.Page{Number: number, Size: size}
}

func totalPages(total, size int) int {
	if size <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(size)))
}
