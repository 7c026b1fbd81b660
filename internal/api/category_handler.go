package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/taskloom/taskloom-api/internal/api/middleware"
	"github.com/taskloom/taskloom-api/internal/api/shared"
	"github.com/taskloom/taskloom-api/internal/domain"
	"github.com/taskloom/taskloom-api/internal/observability/metrics"
	"github.com/taskloom/taskloom-api/internal/store"
)

// CategoryHandler handles category-related HTTP requests. Listing is public;
// creation requires authentication; update and delete are restricted to the
// creating owner.
type CategoryHandler struct {
	categoryStore store.CategoryStore
	logger        *slog.Logger
	validator     *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryStore store.CategoryStore, log *slog.Logger) *CategoryHandler {
	if log == nil {
		log = slog.Default()
	}
	return &CategoryHandler{
		categoryStore: categoryStore,
		logger:        log.With(slog.String("component", "category_handler")),
		validator:     validator.New(),
	}
}

// List handles GET /api/categories requests.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryStore.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to fetch categories", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, categories)
}

// Create handles POST /api/categories requests.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateCategoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	category, err := domain.NewCategory(userID, req.Name, req.Description, req.PriorityLevel)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid category data: "+err.Error())
		return
	}

	// Answer name collisions before attempting the insert; the unique
	// constraint remains the authority under concurrent creates.
	if _, err := h.categoryStore.GetByName(r.Context(), category.Name); err == nil {
		shared.RespondWithError(w, r, http.StatusConflict,
			GetSafeErrorMessage(store.ErrCategoryNameExists))
		return
	} else if !errors.Is(err, store.ErrCategoryNotFound) {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create category", err)
		return
	}

	if err := h.categoryStore.Create(r.Context(), category); err != nil {
		if store.IsDuplicateError(err) {
			shared.RespondWithError(w, r, http.StatusConflict, GetSafeErrorMessage(err))
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create category", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, category)
}

// Update handles PUT /api/categories/{categoryID} requests.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	category, ok := h.loadOwnedCategory(w, r)
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.PriorityLevel != nil {
		category.PriorityLevel = *req.PriorityLevel
	}

	if err := category.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid category data: "+err.Error())
		return
	}

	if err := h.categoryStore.Update(r.Context(), category); err != nil {
		if store.IsDuplicateError(err) {
			shared.RespondWithError(w, r, http.StatusConflict, GetSafeErrorMessage(err))
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, category)
}

// Delete handles DELETE /api/categories/{categoryID} requests.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	category, ok := h.loadOwnedCategory(w, r)
	if !ok {
		return
	}

	if err := h.categoryStore.Delete(r.Context(), category.ID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err),
			GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"message": "Category deleted successfully",
	})
}

// loadOwnedCategory resolves the {categoryID} path parameter and enforces
// that the authenticated user owns the category. It writes the error
// response itself and reports success through the boolean.
func (h *CategoryHandler) loadOwnedCategory(
	w http.ResponseWriter,
	r *http.Request,
) (*domain.Category, bool) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}

	categoryID, err := uuid.Parse(chi.URLParam(r, "categoryID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid category ID")
		return nil, false
	}

	category, err := h.categoryStore.GetByID(r.Context(), categoryID)
	if err != nil {
		if errors.Is(err, store.ErrCategoryNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Category not found")
			return nil, false
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to load category", err)
		return nil, false
	}

	if !category.IsOwnedBy(userID) {
		metrics.OwnershipDenialsTotal.Inc()
		shared.RespondWithError(w, r, http.StatusForbidden,
			"Not authorized to access this category")
		return nil, false
	}

	return category, true
}
