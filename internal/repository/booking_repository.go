package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shareloop/service-sharing/internal/domain"
	bookingDomain "github.com/shareloop/service-sharing/internal/domain/booking"
	"gorm.io/gorm"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	StartDate time.Time `gorm:"not null;index"`
	EndDate   time.Time `gorm:"not null;index"`
	ItemID    int64     `gorm:"index;not null"`
	BookerID  int64     `gorm:"index;not null"`
	Status    string    `gorm:"not null;size:16;index"`

	Item   ItemModel `gorm:"foreignKey:ItemID"`
	Booker UserModel `gorm:"foreignKey:BookerID"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of booking.Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Save persists a new booking and assigns its id.
func (r *GormBookingRepository) Save(ctx context.Context, b *bookingDomain.Booking) (*bookingDomain.Booking, error) {
	model := toBookingModel(b)
	if err := r.db.WithContext(ctx).Omit("Item", "Booker").Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}
	saved := *b
	saved.ID = model.ID
	return &saved, nil
}

// Update persists changes to an existing booking. The write is
// unconditional; two concurrent status changes race last-write-wins.
func (r *GormBookingRepository) Update(ctx context.Context, b *bookingDomain.Booking) (*bookingDomain.Booking, error) {
	model := toBookingModel(b)
	if err := r.db.WithContext(ctx).Omit("Item", "Booker").Save(model).Error; err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	return b, nil
}

// FindByID retrieves a booking by id with its item and booker.
func (r *GormBookingRepository) FindByID(ctx context.Context, id int64) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Booker").
		Where("bookings.id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("failed to find booking by id: %w", err)
	}
	b := toDomainBooking(&model)
	return &b, nil
}

// FindByBooker retrieves a page of a user's bookings.
func (r *GormBookingRepository) FindByBooker(ctx context.Context, bookerID int64, page bookingDomain.Page) ([]bookingDomain.Booking, error) {
	q := r.db.WithContext(ctx).Where("booker_id = ?", bookerID)
	return r.findPage(q, page)
}

// FindByBookerPast retrieves a page of a user's bookings with end < now.
func (r *GormBookingRepository) FindByBookerPast(ctx context.Context, bookerID int64, now time.Time, page bookingDomain.Page) ([]bookingDomain.Booking, error) {
	q := r.db.WithContext(ctx).Where("booker_id = ? AND end_date < ?", bookerID, now)
	return r.findPage(q, page)
}

// FindByBookerFuture retrieves a page of a user's bookings with start > now.
func (r *GormBookingRepository) FindByBookerFuture(ctx context.Context, bookerID int64, now time.Time, page bookingDomain.Page) ([]bookingDomain.Booking, error) {
	q := r.db.WithContext(ctx).Where("booker_id = ? AND start_date > ?", bookerID, now)
	return r.findPage(q, page)
}

// FindByBookerCurrent retrieves a page of a user's bookings with
// start < now < end.
func (r *GormBookingRepository) FindByBookerCurrent(ctx context.Context, bookerID int64, now time.Time, page bookingDomain.Page) ([]bookingDomain.Booking, error) {
	q := r.db.WithContext(ctx).Where("booker_id = ? AND start_date < ? AND end_date > ?", bookerID, now, now)
	return r.findPage(q, page)
}

// FindByBookerStatus retrieves a page of a user's bookings with the given status.
func (r *GormBookingRepository) FindByBookerStatus(ctx context.Context, bookerID int64, status bookingDomain.Status, page bookingDomain.Page) ([]bookingDomain.Booking, error) {
	q := r.db.WithContext(ctx).Where("booker_id = ? AND status = ?", bookerID, status.String())
	return r.findPage(q, page)
}

// FindByBookerEndedBefore retrieves all of a user's bookings with end < now.
func (r *GormBookingRepository) FindByBookerEndedBefore(ctx context.Context, bookerID int64, now time.Time) ([]bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Booker").
		Where("booker_id = ? AND end_date < ?", bookerID, now).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find ended bookings: %w", err)
	}
	return toDomainBookings(models), nil
}

// FindByOwner retrieves a page of the bookings on items owned by a user.
func (r *GormBookingRepository) FindByOwner(ctx context.Context, ownerID int64, page bookingDomain.Page) ([]bookingDomain.Booking, error) {
	q := r.ownerScope(ctx, ownerID)
	return r.findPage(q, page)
}

// FindByOwnerPast retrieves a page of owner-scoped bookings with end < now.
func (r *GormBookingRepository) FindByOwnerPast(ctx context.Context, ownerID int64, now time.Time, page bookingDomain.Page) ([]bookingDomain.Booking, error) {
	q := r.ownerScope(ctx, ownerID).Where("bookings.end_date < ?", now)
	return r.findPage(q, page)
}

// FindByOwnerFuture retrieves a page of owner-scoped bookings with start > now.
func (r *GormBookingRepository) FindByOwnerFuture(ctx context.Context, ownerID int64, now time.Time, page bookingDomain.Page) ([]bookingDomain.Booking, error) {
	q := r.ownerScope(ctx, ownerID).Where("bookings.start_date > ?", now)
	return r.findPage(q, page)
}

// FindByOwnerCurrent retrieves a page of owner-scoped bookings with
// start < now < end.
func (r *GormBookingRepository) FindByOwnerCurrent(ctx context.Context, ownerID int64, now time.Time, page bookingDomain.Page) ([]bookingDomain.Booking, error) {
	q := r.ownerScope(ctx, ownerID).Where("bookings.start_date < ? AND bookings.end_date > ?", now, now)
	return r.findPage(q, page)
}

// FindByOwnerStatus retrieves a page of owner-scoped bookings with the given status.
func (r *GormBookingRepository) FindByOwnerStatus(ctx context.Context, ownerID int64, status bookingDomain.Status, page bookingDomain.Page) ([]bookingDomain.Booking, error) {
	q := r.ownerScope(ctx, ownerID).Where("bookings.status = ?", status.String())
	return r.findPage(q, page)
}

// FindLastForItem retrieves the booking on the item with the latest end
// strictly before now, or nil if none.
func (r *GormBookingRepository) FindLastForItem(ctx context.Context, itemID int64, now time.Time) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Booker").
		Where("item_id = ? AND end_date < ?", itemID, now).
		Order("end_date DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find last booking for item: %w", err)
	}
	b := toDomainBooking(&model)
	return &b, nil
}

// FindNextForItem retrieves the booking on the item with the earliest start
// strictly after now, or nil if none. Deliberately not filtered to APPROVED.
func (r *GormBookingRepository) FindNextForItem(ctx context.Context, itemID int64, now time.Time) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Booker").
		Where("item_id = ? AND start_date > ?", itemID, now).
		Order("start_date ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find next booking for item: %w", err)
	}
	b := toDomainBooking(&model)
	return &b, nil
}

// ownerScope joins bookings with items and filters on the item's owner.
func (r *GormBookingRepository) ownerScope(ctx context.Context, ownerID int64) *gorm.DB {
	return r.db.WithContext(ctx).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID)
}

// findPage applies the fixed start-descending order and the page window.
func (r *GormBookingRepository) findPage(q *gorm.DB, page bookingDomain.Page) ([]bookingDomain.Booking, error) {
	var models []BookingModel
	if err := q.Model(&BookingModel{}).
		Preload("Item").
		Preload("Booker").
		Order("bookings.start_date DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	return toDomainBookings(models), nil
}

func toBookingModel(b *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        b.ID,
		StartDate: b.Start,
		EndDate:   b.End,
		ItemID:    b.Item.ID,
		BookerID:  b.Booker.ID,
		Status:    b.Status.String(),
	}
}

func toDomainBooking(m *BookingModel) bookingDomain.Booking {
	return bookingDomain.Booking{
		ID:     m.ID,
		Start:  m.StartDate,
		End:    m.EndDate,
		Item:   *toDomainItem(&m.Item),
		Booker: *toDomainUser(&m.Booker),
		Status: bookingDomain.Status(m.Status),
	}
}

func toDomainBookings(models []BookingModel) []bookingDomain.Booking {
	bookings := make([]bookingDomain.Booking, len(models))
	for i, m := range models {
		bookings[i] = toDomainBooking(&m)
	}
	return bookings
}
