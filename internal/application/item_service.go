package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/maximboltinov/ShareIt/internal/common/domain"
	"github.com/maximboltinov/ShareIt/internal/common/jsontime"
	"github.com/maximboltinov/ShareIt/internal/common/metrics"
	bookingDomain "github.com/maximboltinov/ShareIt/internal/domain/booking"
	itemDomain "github.com/maximboltinov/ShareIt/internal/domain/item"
	requestDomain "github.com/maximboltinov/ShareIt/internal/domain/itemrequest"
	userDomain "github.com/maximboltinov/ShareIt/internal/domain/user"
)

// CreateItemRequest is the request DTO for listing an item.
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required,notblank"`
	Description string `json:"description" binding:"required,notblank"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

// UpdateItemRequest is the request DTO for a partial item update.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// CreateCommentRequest is the request DTO for commenting on an item.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,notblank"`
}

// ItemDTO is the API response representation of an item.
type ItemDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

// ShortBookingDTO is the last/next booking shown to the item owner.
type ShortBookingDTO struct {
	ID       int64         `json:"id"`
	BookerID int64         `json:"bookerId"`
	Start    jsontime.Time `json:"start"`
	End      jsontime.Time `json:"end"`
	ItemID   int64         `json:"itemId"`
}

// CommentDTO is the API response representation of a comment.
type CommentDTO struct {
	ID         int64         `json:"id"`
	Text       string        `json:"text"`
	AuthorName string        `json:"authorName"`
	Created    jsontime.Time `json:"created"`
}

// ItemDetailsDTO is an item with its comments and, for the owner, its last and next bookings.
type ItemDetailsDTO struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Available   bool             `json:"available"`
	LastBooking *ShortBookingDTO `json:"lastBooking"`
	NextBooking *ShortBookingDTO `json:"nextBooking"`
	Comments    []CommentDTO     `json:"comments"`
}

// ItemService implements use cases for the item catalog and comments.
type ItemService struct {
	repo     itemDomain.ItemRepository
	comments itemDomain.CommentRepository
	bookings bookingDomain.BookingRepository
	users    userDomain.UserRepository
	requests requestDomain.ItemRequestRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewItemService creates a new ItemService.
func NewItemService(
	repo itemDomain.ItemRepository,
	comments itemDomain.CommentRepository,
	bookings bookingDomain.BookingRepository,
	users userDomain.UserRepository,
	requests requestDomain.ItemRequestRepository,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		repo:     repo,
		comments: comments,
		bookings: bookings,
		users:    users,
		requests: requests,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateItem lists a new item for the owner, optionally answering an item request.
func (s *ItemService) CreateItem(ctx context.Context, ownerID int64, req CreateItemRequest) (*ItemDTO, error) {
	if err := ensureUserExists(ctx, s.users, ownerID); err != nil {
		return nil, err
	}
	if req.RequestID != nil {
		exists, err := s.requests.ExistsByID(ctx, *req.RequestID)
		if err != nil {
			return nil, fmt.Errorf("failed to check item request: %w", err)
		}
		if !exists {
			return nil, domain.NewNotFoundError("ItemRequest", idString(*req.RequestID))
		}
	}

	available := req.Available != nil && *req.Available
	it, err := itemDomain.NewItem(ownerID, req.Name, req.Description, available, req.RequestID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, it); err != nil {
		s.logger.Error("failed to create item", zap.Error(err))
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.logger.Info("item created",
		zap.Int64("item_id", it.ID()),
		zap.Int64("owner_id", ownerID),
	)
	result := toItemDTO(it)
	return &result, nil
}

// UpdateItem applies a partial update, verifying ownership.
func (s *ItemService) UpdateItem(ctx context.Context, ownerID, itemID int64, req UpdateItemRequest) (*ItemDTO, error) {
	if err := ensureUserExists(ctx, s.users, ownerID); err != nil {
		return nil, err
	}
	it, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(ownerID) {
		return nil, domain.NewNotFoundMessage(fmt.Sprintf("item %d is not owned by user %d", itemID, ownerID))
	}

	it.Update(req.Name, req.Description, req.Available)
	if err := s.repo.Update(ctx, it); err != nil {
		s.logger.Error("failed to update item", zap.Error(err))
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	s.logger.Info("item updated", zap.Int64("item_id", itemID))
	result := toItemDTO(it)
	return &result, nil
}

// GetItem returns item details. Last and next bookings are filled only for the owner.
func (s *ItemService) GetItem(ctx context.Context, itemID, userID int64) (*ItemDetailsDTO, error) {
	if err := ensureUserExists(ctx, s.users, userID); err != nil {
		return nil, err
	}
	it, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	result := toItemDetailsDTO(it)
	if it.IsOwnedBy(userID) {
		shorts, err := s.bookings.FindApprovedShortByItem(ctx, itemID)
		if err != nil {
			return nil, fmt.Errorf("failed to load item bookings: %w", err)
		}
		applyLastNext(&result, bookingDomain.LastAndNext(shorts, s.now()))
	}

	comments, err := s.comments.FindByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load item comments: %w", err)
	}
	result.Comments = toCommentDTOs(comments)
	return &result, nil
}

// GetOwnerItems lists the owner's items by ID with last/next bookings computed against one instant.
func (s *ItemService) GetOwnerItems(ctx context.Context, ownerID int64, from, size int) ([]ItemDetailsDTO, error) {
	if err := ensureUserExists(ctx, s.users, ownerID); err != nil {
		return nil, err
	}
	page, err := domain.NewPage(from, size)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.FindByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner items: %w", err)
	}
	shorts, err := s.bookings.FindApprovedShortByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner bookings: %w", err)
	}
	lastNext := bookingDomain.LastAndNextByItem(shorts, s.now())

	itemIDs := make([]int64, len(items))
	for i, it := range items {
		itemIDs[i] = it.ID()
	}
	comments, err := s.comments.FindByItems(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load item comments: %w", err)
	}
	commentsByItem := make(map[int64][]*itemDomain.Comment)
	for _, c := range comments {
		commentsByItem[c.ItemID()] = append(commentsByItem[c.ItemID()], c)
	}

	dtos := make([]ItemDetailsDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDetailsDTO(it)
		applyLastNext(&dtos[i], lastNext[it.ID()])
		dtos[i].Comments = toCommentDTOs(commentsByItem[it.ID()])
	}
	return dtos, nil
}

// SearchItems finds available items whose name or description contains text.
func (s *ItemService) SearchItems(ctx context.Context, text string, from, size int) ([]ItemDTO, error) {
	if strings.TrimSpace(text) == "" {
		return []ItemDTO{}, nil
	}
	page, err := domain.NewPage(from, size)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.Search(ctx, text, page)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(it)
	}
	return dtos, nil
}

// AddComment stores a comment from a user whose approved booking of the item has ended.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, req CreateCommentRequest) (*CommentDTO, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewValidationError(fmt.Sprintf("user %d does not exist", authorID))
		}
		return nil, fmt.Errorf("failed to find comment author: %w", err)
	}
	if _, err := s.repo.FindByID(ctx, itemID); err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewValidationError(fmt.Sprintf("item %d does not exist", itemID))
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}

	now := s.now()
	count, err := s.bookings.CountApprovedEndedBefore(ctx, authorID, itemID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to check bookings: %w", err)
	}
	if count == 0 {
		return nil, domain.NewValidationError("user has not rented this item or the rental has not ended yet")
	}

	comment, err := itemDomain.NewComment(itemID, authorID, author.Name(), req.Text, now)
	if err != nil {
		return nil, err
	}
	if err := s.comments.Save(ctx, comment); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("add_comment").Inc()
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}
	metrics.CommentsAddedTotal.Inc()

	s.logger.Info("comment added",
		zap.Int64("comment_id", comment.ID()),
		zap.Int64("item_id", itemID),
		zap.Int64("author_id", authorID),
	)
	result := toCommentDTO(comment)
	return &result, nil
}

func applyLastNext(dto *ItemDetailsDTO, ln bookingDomain.LastNext) {
	dto.LastBooking = toShortBookingDTO(ln.Last)
	dto.NextBooking = toShortBookingDTO(ln.Next)
}

func toItemDTO(it *itemDomain.Item) ItemDTO {
	return ItemDTO{
		ID:          it.ID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		RequestID:   it.RequestID(),
	}
}

func toItemDetailsDTO(it *itemDomain.Item) ItemDetailsDTO {
	return ItemDetailsDTO{
		ID:          it.ID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		Comments:    []CommentDTO{},
	}
}

func toShortBookingDTO(sb *bookingDomain.ShortBooking) *ShortBookingDTO {
	if sb == nil {
		return nil
	}
	return &ShortBookingDTO{
		ID:       sb.ID,
		BookerID: sb.BookerID,
		Start:    jsontime.New(sb.Start),
		End:      jsontime.New(sb.End),
		ItemID:   sb.ItemID,
	}
}

func toCommentDTO(c *itemDomain.Comment) CommentDTO {
	return CommentDTO{
		ID:         c.ID(),
		Text:       c.Text(),
		AuthorName: c.AuthorName(),
		Created:    jsontime.New(c.Created()),
	}
}

func toCommentDTOs(comments []*itemDomain.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i, c := range comments {
		dtos[i] = toCommentDTO(c)
	}
	return dtos
}
