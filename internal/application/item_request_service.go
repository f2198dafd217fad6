package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/maximboltinov/ShareIt/internal/common/domain"
	"github.com/maximboltinov/ShareIt/internal/common/jsontime"
	itemDomain "github.com/maximboltinov/ShareIt/internal/domain/item"
	requestDomain "github.com/maximboltinov/ShareIt/internal/domain/itemrequest"
	userDomain "github.com/maximboltinov/ShareIt/internal/domain/user"
)

// CreateItemRequestRequest is the request DTO for asking for an item.
type CreateItemRequestRequest struct {
	Description string `json:"description" binding:"required,notblank,max=512"`
}

// ItemRequestDTO is the API response representation of an item request.
type ItemRequestDTO struct {
	ID          int64         `json:"id"`
	Description string        `json:"description"`
	Created     jsontime.Time `json:"created"`
	Items       []ItemDTO     `json:"items"`
}

// ItemRequestService implements use cases for item requests.
type ItemRequestService struct {
	repo   requestDomain.ItemRequestRepository
	items  itemDomain.ItemRepository
	users  userDomain.UserRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewItemRequestService creates a new ItemRequestService.
func NewItemRequestService(
	repo requestDomain.ItemRequestRepository,
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	logger *zap.Logger,
) *ItemRequestService {
	return &ItemRequestService{repo: repo, items: items, users: users, logger: logger, now: time.Now}
}

// CreateRequest stores a new item request authored by the caller.
func (s *ItemRequestService) CreateRequest(ctx context.Context, authorID int64, req CreateItemRequestRequest) (*ItemRequestDTO, error) {
	if err := ensureUserExists(ctx, s.users, authorID); err != nil {
		return nil, err
	}
	r, err := requestDomain.NewItemRequest(authorID, req.Description, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, r); err != nil {
		s.logger.Error("failed to create item request", zap.Error(err))
		return nil, fmt.Errorf("failed to create item request: %w", err)
	}

	s.logger.Info("item request created",
		zap.Int64("request_id", r.ID()),
		zap.Int64("author_id", authorID),
	)
	result := toItemRequestDTO(r, nil)
	return &result, nil
}

// GetOwnRequests lists the caller's requests, oldest first, with the items listed against them.
func (s *ItemRequestService) GetOwnRequests(ctx context.Context, authorID int64) ([]ItemRequestDTO, error) {
	if err := ensureUserExists(ctx, s.users, authorID); err != nil {
		return nil, err
	}
	requests, err := s.repo.FindByAuthor(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list own item requests: %w", err)
	}
	return s.withItems(ctx, requests)
}

// GetOtherRequests lists other users' requests, newest first.
func (s *ItemRequestService) GetOtherRequests(ctx context.Context, userID int64, from, size int) ([]ItemRequestDTO, error) {
	if err := ensureUserExists(ctx, s.users, userID); err != nil {
		return nil, err
	}
	page, err := domain.NewPage(from, size)
	if err != nil {
		return nil, err
	}
	requests, err := s.repo.FindOthers(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list item requests: %w", err)
	}
	return s.withItems(ctx, requests)
}

// GetRequest returns a single request with its items.
func (s *ItemRequestService) GetRequest(ctx context.Context, requestID, userID int64) (*ItemRequestDTO, error) {
	if err := ensureUserExists(ctx, s.users, userID); err != nil {
		return nil, err
	}
	r, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	dtos, err := s.withItems(ctx, []*requestDomain.ItemRequest{r})
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

func (s *ItemRequestService) withItems(ctx context.Context, requests []*requestDomain.ItemRequest) ([]ItemRequestDTO, error) {
	ids := make([]int64, len(requests))
	for i, r := range requests {
		ids[i] = r.ID()
	}

	byRequest := make(map[int64][]*itemDomain.Item)
	if len(ids) > 0 {
		items, err := s.items.FindByRequestIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to load requested items: %w", err)
		}
		for _, it := range items {
			if it.RequestID() != nil {
				byRequest[*it.RequestID()] = append(byRequest[*it.RequestID()], it)
			}
		}
	}

	dtos := make([]ItemRequestDTO, len(requests))
	for i, r := range requests {
		dtos[i] = toItemRequestDTO(r, byRequest[r.ID()])
	}
	return dtos, nil
}

func toItemRequestDTO(r *requestDomain.ItemRequest, items []*itemDomain.Item) ItemRequestDTO {
	dto := ItemRequestDTO{
		ID:          r.ID(),
		Description: r.Description(),
		Created:     jsontime.New(r.Created()),
		Items:       make([]ItemDTO, len(items)),
	}
	for i, it := range items {
		dto.Items[i] = toItemDTO(it)
	}
	return dto
}
