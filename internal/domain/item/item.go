package item

import (
	"strings"

	"github.com/maximboltinov/ShareIt/internal/common/domain"
)

// Item is the aggregate root for a rentable item.
type Item struct {
	id          int64
	ownerID     int64
	name        string
	description string
	available   bool
	requestID   *int64
}

// NewItem creates an item listed by ownerID, optionally answering an item request.
func NewItem(ownerID int64, name, description string, available bool, requestID *int64) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("name must not be blank")
	}
	if strings.TrimSpace(description) == "" {
		return nil, domain.NewValidationError("description must not be blank")
	}
	return &Item{
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		requestID:   requestID,
	}, nil
}

// Reconstruct rebuilds an Item from persistence data (no validation).
func Reconstruct(id, ownerID int64, name, description string, available bool, requestID *int64) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		requestID:   requestID,
	}
}

// --- Getters ---

func (i *Item) ID() int64           { return i.id }
func (i *Item) OwnerID() int64      { return i.ownerID }
func (i *Item) Name() string        { return i.name }
func (i *Item) Description() string { return i.description }
func (i *Item) Available() bool     { return i.available }
func (i *Item) RequestID() *int64   { return i.requestID }

// --- Behavior ---

// AssignID sets the identifier issued by the store on first save.
func (i *Item) AssignID(id int64) {
	i.id = id
}

// IsOwnedBy checks if the item belongs to the given owner.
func (i *Item) IsOwnedBy(ownerID int64) bool {
	return i.ownerID == ownerID
}

// Update applies a partial update. Nil or blank text fields are left unchanged.
func (i *Item) Update(name, description *string, available *bool) {
	if name != nil && strings.TrimSpace(*name) != "" {
		i.name = *name
	}
	if description != nil && strings.TrimSpace(*description) != "" {
		i.description = *description
	}
	if available != nil {
		i.available = *available
	}
}
