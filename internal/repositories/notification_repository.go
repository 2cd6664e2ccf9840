package repositories

import (
	"github.com/proconnect-app/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByRecipientID(recipientID string) ([]models.Notification, error)
	MarkAsRead(id uint, recipientID string) (*models.Notification, error)
	DeleteNotification(id uint, recipientID string) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a NotificationRepository backed
// by PostgreSQL
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) GetByRecipientID(recipientID string) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := r.db.Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// MarkAsRead flips the read flag on the recipient's notification and returns
// the updated record. Recipient scoping doubles as the ownership check.
func (r *postgresNotificationRepository) MarkAsRead(id uint, recipientID string) (*models.Notification, error) {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var notification models.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// DeleteNotification deletes the recipient's notification. Deleting a
// notification that does not exist is not an error.
func (r *postgresNotificationRepository) DeleteNotification(id uint, recipientID string) error {
	return r.db.Where("id = ? AND recipient_id = ?", id, recipientID).
		Delete(&models.Notification{}).Error
}
