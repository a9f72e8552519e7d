package repository

import (
	"context"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/observability"

	"gorm.io/gorm"
)

// InboxFilter selects a page of a host's messages. An empty Status lists all.
type InboxFilter struct {
	HostID uint
	Status models.MessageStatus
	Limit  int
	Offset int
}

// MessageRepository defines persistence operations for host messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *models.HostMessage) error
	GetByID(ctx context.Context, id uint) (*models.HostMessage, error)
	Inbox(ctx context.Context, f InboxFilter) ([]models.HostMessage, int64, error)
	UnreadCount(ctx context.Context, hostID uint) (int64, error)
	SetStatus(ctx context.Context, id uint, status models.MessageStatus) error
	// MarkAllRead flips every new message of hostID and returns how many changed.
	MarkAllRead(ctx context.Context, hostID uint) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns a GORM-backed MessageRepository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.HostMessage) error {
	defer observability.TrackQuery("insert", "host_messages")()
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id uint) (*models.HostMessage, error) {
	var msg models.HostMessage
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		return nil, translate(err, "Message", id)
	}
	return &msg, nil
}

// Inbox lists newest first with the listing's title and place attached.
func (r *messageRepository) Inbox(ctx context.Context, f InboxFilter) ([]models.HostMessage, int64, error) {
	defer observability.TrackQuery("select", "host_messages")()
	limit, offset := clampPage(f.Limit, f.Offset, 20, 50)

	q := readDB(r.db).WithContext(ctx).
		Model(&models.HostMessage{}).
		Where("host_id = ?", f.HostID)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var msgs []models.HostMessage
	err := q.Preload("Listing", func(db *gorm.DB) *gorm.DB {
		return db.Unscoped().Select("id", "host_id", "title", "city", "locality")
	}).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&msgs).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return msgs, total, nil
}

func (r *messageRepository) UnreadCount(ctx context.Context, hostID uint) (int64, error) {
	defer observability.TrackQuery("count", "host_messages")()
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.HostMessage{}).
		Where("host_id = ? AND status = ?", hostID, models.MessageNew).
		Count(&n).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func (r *messageRepository) SetStatus(ctx context.Context, id uint, status models.MessageStatus) error {
	defer observability.TrackQuery("update", "host_messages")()
	res := r.db.WithContext(ctx).Model(&models.HostMessage{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Message", id)
	}
	return nil
}

func (r *messageRepository) MarkAllRead(ctx context.Context, hostID uint) (int64, error) {
	defer observability.TrackQuery("update", "host_messages")()
	res := r.db.WithContext(ctx).Model(&models.HostMessage{}).
		Where("host_id = ? AND status = ?", hostID, models.MessageNew).
		Update("status", models.MessageRead)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}
