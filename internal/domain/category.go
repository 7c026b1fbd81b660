package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category validation errors
var (
	ErrEmptyCategoryID      = errors.New("category ID cannot be empty")
	ErrEmptyCategoryOwner   = errors.New("category owner cannot be empty")
	ErrEmptyCategoryName    = errors.New("category name cannot be empty")
	ErrCategoryNameTooLong  = errors.New("category name must be at most 100 characters")
	ErrInvalidPriorityLevel = errors.New("priority level must be between 1 and 5")
)

// Category groups tasks under a globally unique name. Categories are
// readable by everyone; mutation is restricted to the creating owner.
type Category struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	PriorityLevel int       `json:"priority_level"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewCategory creates a category owned by ownerID.
func NewCategory(ownerID uuid.UUID, name, description string, priorityLevel int) (*Category, error) {
	now := time.Now().UTC()
	category := &Category{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Name:          strings.TrimSpace(name),
		Description:   description,
		PriorityLevel: priorityLevel,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCategoryID
	}
	if c.OwnerID == uuid.Nil {
		return ErrEmptyCategoryOwner
	}
	if c.Name == "" {
		return ErrEmptyCategoryName
	}
	if len(c.Name) > 100 {
		return ErrCategoryNameTooLong
	}
	if c.PriorityLevel < 1 || c.PriorityLevel > 5 {
		return ErrInvalidPriorityLevel
	}
	return nil
}

// IsOwnedBy compares the category's owner to the given identity.
func (c *Category) IsOwnedBy(userID uuid.UUID) bool {
	return c.OwnerID == userID
}
