package itemrequest

import (
	"context"

	"github.com/maximboltinov/ShareIt/internal/common/domain"
)

// ItemRequestRepository defines persistence operations for item requests.
type ItemRequestRepository interface {
	Save(ctx context.Context, request *ItemRequest) error
	// FindByID returns a NotFoundError if the request does not exist.
	FindByID(ctx context.Context, id int64) (*ItemRequest, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// FindByAuthor lists the author's requests, oldest first.
	FindByAuthor(ctx context.Context, authorID int64) ([]*ItemRequest, error)
	// FindOthers lists requests not authored by userID, newest first.
	FindOthers(ctx context.Context, userID int64, page domain.Page) ([]*ItemRequest, error)
}
