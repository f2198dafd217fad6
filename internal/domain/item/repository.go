package item

import (
	"context"

	"github.com/maximboltinov/ShareIt/internal/common/domain"
)

// ItemRepository defines persistence operations for items.
type ItemRepository interface {
	Save(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
	// FindByID returns a NotFoundError if the item does not exist.
	FindByID(ctx context.Context, id int64) (*Item, error)
	// FindByOwner lists the owner's items ordered by ID ascending.
	FindByOwner(ctx context.Context, ownerID int64, page domain.Page) ([]*Item, error)
	// Search matches text case-insensitively against name or description of available items.
	Search(ctx context.Context, text string, page domain.Page) ([]*Item, error)
	// FindByRequestIDs returns items listed in answer to any of the given requests.
	FindByRequestIDs(ctx context.Context, requestIDs []int64) ([]*Item, error)
}

// CommentRepository defines persistence operations for item comments.
type CommentRepository interface {
	Save(ctx context.Context, comment *Comment) error
	// FindByItem returns the item's comments ordered by ID ascending.
	FindByItem(ctx context.Context, itemID int64) ([]*Comment, error)
	// FindByItems returns comments of all given items ordered by ID ascending.
	FindByItems(ctx context.Context, itemIDs []int64) ([]*Comment, error)
}
