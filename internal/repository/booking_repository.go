package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/maximboltinov/ShareIt/internal/common/domain"
	bookingDomain "github.com/maximboltinov/ShareIt/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	StartTime time.Time `gorm:"type:timestamptz;not null"`
	EndTime   time.Time `gorm:"type:timestamptz;not null"`
	Status    string    `gorm:"type:varchar(20);not null"`
	ItemID    int64     `gorm:"not null;index"`
	BookerID  int64     `gorm:"not null;index"`
	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null"`
	Item      ItemModel `gorm:"foreignKey:ItemID"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// shortBookingRow is the projection scanned for last/next aggregation.
type shortBookingRow struct {
	ID        int64
	BookerID  int64
	ItemID    int64
	StartTime time.Time
	EndTime   time.Time
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Save persists a new booking and assigns its ID.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	bk.AssignID(model.ID)
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	// IncrementVersion was called before Update, so the stored row holds version-1.
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", bk.ID(), expectedVersion).
		Updates(map[string]interface{}{
			"status":     string(bk.Status()),
			"start_time": bk.Start(),
			"end_time":   bk.End(),
			"version":    bk.Version(),
			"updated_at": bk.UpdatedAt(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}

	return nil
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id int64) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Preload("Item").Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByBooker lists a booker's bookings matching criteria, newest start first.
func (r *GormBookingRepository) FindByBooker(ctx context.Context, bookerID int64, criteria bookingDomain.Criteria, page domain.Page) ([]*bookingDomain.Booking, error) {
	q := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("bookings.booker_id = ?", bookerID)
	return r.findPage(applyCriteria(q, criteria), page)
}

// FindByOwner lists bookings on the owner's items matching criteria, newest start first.
func (r *GormBookingRepository) FindByOwner(ctx context.Context, ownerID int64, criteria bookingDomain.Criteria, page domain.Page) ([]*bookingDomain.Booking, error) {
	q := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID)
	return r.findPage(applyCriteria(q, criteria), page)
}

func (r *GormBookingRepository) findPage(q *gorm.DB, page domain.Page) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := q.
		Preload("Item").
		Order("bookings.start_time DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bk, err := toDomainBooking(&models[i])
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}

// FindApprovedShortByItem returns approved bookings of one item.
func (r *GormBookingRepository) FindApprovedShortByItem(ctx context.Context, itemID int64) ([]bookingDomain.ShortBooking, error) {
	q := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("bookings.item_id = ? AND bookings.status = ?", itemID, string(bookingDomain.StatusApproved))
	return scanShort(q)
}

// FindApprovedShortByOwner returns approved bookings across all items of an owner.
func (r *GormBookingRepository) FindApprovedShortByOwner(ctx context.Context, ownerID int64) ([]bookingDomain.ShortBooking, error) {
	q := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ? AND bookings.status = ?", ownerID, string(bookingDomain.StatusApproved))
	return scanShort(q)
}

// CountApprovedEndedBefore counts the booker's approved bookings of the item that ended before instant.
func (r *GormBookingRepository) CountApprovedEndedBefore(ctx context.Context, bookerID, itemID int64, instant time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("booker_id = ? AND item_id = ? AND status = ? AND end_time < ?",
			bookerID, itemID, string(bookingDomain.StatusApproved), instant).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count finished bookings: %w", err)
	}
	return count, nil
}

// applyCriteria translates a storage-neutral filter into WHERE clauses. Bounds are strict.
func applyCriteria(q *gorm.DB, c bookingDomain.Criteria) *gorm.DB {
	if c.StartBefore != nil {
		q = q.Where("bookings.start_time < ?", *c.StartBefore)
	}
	if c.StartAfter != nil {
		q = q.Where("bookings.start_time > ?", *c.StartAfter)
	}
	if c.EndBefore != nil {
		q = q.Where("bookings.end_time < ?", *c.EndBefore)
	}
	if c.EndAfter != nil {
		q = q.Where("bookings.end_time > ?", *c.EndAfter)
	}
	if c.Status != "" {
		q = q.Where("bookings.status = ?", string(c.Status))
	}
	return q
}

func scanShort(q *gorm.DB) ([]bookingDomain.ShortBooking, error) {
	var rows []shortBookingRow
	if err := q.
		Select("bookings.id, bookings.booker_id, bookings.item_id, bookings.start_time, bookings.end_time").
		Order("bookings.start_time ASC, bookings.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load short bookings: %w", err)
	}
	out := make([]bookingDomain.ShortBooking, len(rows))
	for i, row := range rows {
		out[i] = bookingDomain.ShortBooking{
			ID:       row.ID,
			BookerID: row.BookerID,
			ItemID:   row.ItemID,
			Start:    row.StartTime,
			End:      row.EndTime,
		}
	}
	return out, nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        bk.ID(),
		StartTime: bk.Start(),
		EndTime:   bk.End(),
		Status:    string(bk.Status()),
		ItemID:    bk.Item().ID,
		BookerID:  bk.BookerID(),
		Version:   bk.Version(),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}

	return bookingDomain.ReconstructBooking(
		m.ID,
		m.StartTime,
		m.EndTime,
		status,
		m.BookerID,
		bookingDomain.ItemRef{
			ID:        m.Item.ID,
			Name:      m.Item.Name,
			OwnerID:   m.Item.OwnerID,
			Available: m.Item.Available,
		},
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
