package messaging

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/pkg/db/models"
	"github.com/logysma/logysma-backend/pkg/enums"
)

// Repository encapsulates conversation and message persistence.
type Repository interface {
	FindConversation(ctx context.Context, participantA, participantB uuid.UUID) (*models.Conversation, error)
	CreateConversation(ctx context.Context, conversation *models.Conversation) error
	FindConversationByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]models.Conversation, error)
	TouchConversation(ctx context.Context, id uuid.UUID) error
	CreateMessage(ctx context.Context, message *models.Message) error
	ListMessages(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error)
	MarkDelivered(ctx context.Context, conversationID, receiverID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, conversationID, receiverID uuid.UUID, readAt time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a messaging repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindConversation(ctx context.Context, participantA, participantB uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.WithContext(ctx).
		Where("participant_a = ? AND participant_b = ?", participantA, participantB).
		First(&conversation).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *gormRepository) CreateConversation(ctx context.Context, conversation *models.Conversation) error {
	return r.db.WithContext(ctx).Create(conversation).Error
}

func (r *gormRepository) FindConversationByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := r.db.WithContext(ctx).First(&conversation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *gormRepository) ListConversations(ctx context.Context, userID uuid.UUID) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.WithContext(ctx).
		Where("participant_a = ? OR participant_b = ?", userID, userID).
		Order("updated_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

func (r *gormRepository) TouchConversation(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ?", id).
		UpdateColumn("updated_at", time.Now().UTC()).Error
}

func (r *gormRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *gormRepository) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("sent_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *gormRepository) MarkDelivered(ctx context.Context, conversationID, receiverID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND status = ?", conversationID, receiverID, enums.MessageStatusSent).
		UpdateColumn("status", enums.MessageStatusDelivered)
	return result.RowsAffected, result.Error
}

func (r *gormRepository) MarkRead(ctx context.Context, conversationID, receiverID uuid.UUID, readAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("conversation_id = ? AND receiver_id = ? AND status <> ?", conversationID, receiverID, enums.MessageStatusRead).
		UpdateColumns(map[string]any{"status": enums.MessageStatusRead, "read_at": readAt})
	return result.RowsAffected, result.Error
}
