package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/maximboltinov/ShareIt/internal/common/domain"
	requestDomain "github.com/maximboltinov/ShareIt/internal/domain/itemrequest"
)

// ItemRequestModel is the GORM model for the item_requests table.
type ItemRequestModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Description string    `gorm:"type:varchar(512);not null"`
	AuthorID    int64     `gorm:"not null;index"`
	Created     time.Time `gorm:"type:timestamptz;not null"`
}

func (ItemRequestModel) TableName() string { return "item_requests" }

// GormItemRequestRepository implements ItemRequestRepository using GORM.
type GormItemRequestRepository struct {
	db *gorm.DB
}

func NewGormItemRequestRepository(db *gorm.DB) *GormItemRequestRepository {
	return &GormItemRequestRepository{db: db}
}

func (r *GormItemRequestRepository) Save(ctx context.Context, req *requestDomain.ItemRequest) error {
	model := ItemRequestModel{
		Description: req.Description(),
		AuthorID:    req.AuthorID(),
		Created:     req.Created(),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save item request: %w", err)
	}
	req.AssignID(model.ID)
	return nil
}

func (r *GormItemRequestRepository) FindByID(ctx context.Context, id int64) (*requestDomain.ItemRequest, error) {
	var model ItemRequestModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("ItemRequest", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("failed to find item request by ID: %w", err)
	}
	return toItemRequestDomain(&model), nil
}

func (r *GormItemRequestRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ItemRequestModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check item request: %w", err)
	}
	return count > 0, nil
}

func (r *GormItemRequestRepository) FindByAuthor(ctx context.Context, authorID int64) ([]*requestDomain.ItemRequest, error) {
	var models []ItemRequestModel
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find author item requests: %w", err)
	}
	return toItemRequestDomains(models), nil
}

func (r *GormItemRequestRepository) FindOthers(ctx context.Context, userID int64, page domain.Page) ([]*requestDomain.ItemRequest, error) {
	var models []ItemRequestModel
	if err := r.db.WithContext(ctx).
		Where("author_id <> ?", userID).
		Order("created DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find item requests: %w", err)
	}
	return toItemRequestDomains(models), nil
}

func toItemRequestDomain(m *ItemRequestModel) *requestDomain.ItemRequest {
	return requestDomain.Reconstruct(m.ID, m.Description, m.AuthorID, m.Created)
}

func toItemRequestDomains(models []ItemRequestModel) []*requestDomain.ItemRequest {
	out := make([]*requestDomain.ItemRequest, len(models))
	for i := range models {
		out[i] = toItemRequestDomain(&models[i])
	}
	return out
}
