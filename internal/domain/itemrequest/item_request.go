package itemrequest

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/maximboltinov/ShareIt/internal/common/domain"
)

// MaxDescriptionLength bounds the request description, matching the column size.
const MaxDescriptionLength = 512

// ItemRequest is a user's wish for an item that is not yet listed.
type ItemRequest struct {
	id          int64
	description string
	authorID    int64
	created     time.Time
}

// NewItemRequest creates a request authored by authorID at created.
func NewItemRequest(authorID int64, description string, created time.Time) (*ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, domain.NewValidationError("description must not be blank")
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return nil, domain.NewValidationError("description must not exceed 512 characters")
	}
	return &ItemRequest{description: description, authorID: authorID, created: created}, nil
}

// Reconstruct rebuilds an ItemRequest from persistence data (no validation).
func Reconstruct(id int64, description string, authorID int64, created time.Time) *ItemRequest {
	return &ItemRequest{id: id, description: description, authorID: authorID, created: created}
}

func (r *ItemRequest) ID() int64           { return r.id }
func (r *ItemRequest) Description() string { return r.description }
func (r *ItemRequest) AuthorID() int64     { return r.authorID }
func (r *ItemRequest) Created() time.Time  { return r.created }

// AssignID sets the identifier issued by the store on first save.
func (r *ItemRequest) AssignID(id int64) {
	r.id = id
}
