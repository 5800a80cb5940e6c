package messaging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/logysma/logysma-backend/pkg/db/models"
	"github.com/logysma/logysma-backend/pkg/enums"
	pkgerrors "github.com/logysma/logysma-backend/pkg/errors"
	"github.com/logysma/logysma-backend/pkg/logger"
)

// EventMessage names the realtime frame carrying a new chat message.
const EventMessage = "new_message"

// RealtimePublisher pushes an event to every live connection of one user.
type RealtimePublisher interface {
	PublishToUser(userID uuid.UUID, event string, payload any) error
}

// SendParams describes one outgoing chat message.
type SendParams struct {
	SenderID   uuid.UUID
	ReceiverID uuid.UUID
	Content    *string
	MediaURL   *string
	MediaType  *string
	ReplyToID  *uuid.UUID
}

// Service manages two-party conversations.
type Service interface {
	Send(ctx context.Context, params SendParams) (*models.Message, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]models.Conversation, error)
	ListMessages(ctx context.Context, userID, conversationID uuid.UUID) ([]models.Message, error)
	MarkDelivered(ctx context.Context, userID, conversationID uuid.UUID) error
	MarkRead(ctx context.Context, userID, conversationID uuid.UUID) error
}

// ServiceParams groups dependencies for the messaging service.
type ServiceParams struct {
	Repo     Repository
	Realtime RealtimePublisher
	Log      *logger.Logger
	Now      func() time.Time
}

type service struct {
	repo     Repository
	realtime RealtimePublisher
	log      *logger.Logger
	now      func() time.Time
}

// NewService wires messaging dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "messaging repository required")
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		repo:     params.Repo,
		realtime: params.Realtime,
		log:      params.Log,
		now:      now,
	}, nil
}

// orderPair returns the two participants with the smaller UUID first, matching
// how conversation rows are keyed.
func orderPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) > 0 {
		return b, a
	}
	return a, b
}

// Send stores the message, creating the pair's conversation on first contact,
// and pushes it to the receiver's live connections.
func (s *service) Send(ctx context.Context, params SendParams) (*models.Message, error) {
	if params.SenderID == uuid.Nil || params.ReceiverID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sender and receiver required")
	}
	if params.SenderID == params.ReceiverID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot message yourself")
	}

	content := params.Content
	if content != nil {
		trimmed := strings.TrimSpace(*content)
		if trimmed == "" {
			content = nil
		} else {
			content = &trimmed
		}
	}
	if content == nil && params.MediaURL == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message needs content or media")
	}

	var mediaType *enums.MediaKind
	if params.MediaType != nil {
		kind := enums.MediaKind(*params.MediaType)
		if !kind.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown media type")
		}
		if params.MediaURL == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "media type requires a media url")
		}
		mediaType = &kind
	}

	conversation, err := s.findOrCreateConversation(ctx, params.SenderID, params.ReceiverID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ConversationID: conversation.ID,
		SenderID:       params.SenderID,
		ReceiverID:     params.ReceiverID,
		Content:        content,
		MediaURL:       params.MediaURL,
		MediaType:      mediaType,
		Status:         enums.MessageStatusSent,
		ReplyToID:      params.ReplyToID,
	}
	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store message")
	}
	if err := s.repo.TouchConversation(ctx, conversation.ID); err != nil {
		s.logFailure(ctx, err, "conversation touch failed")
	}

	if s.realtime != nil {
		if err := s.realtime.PublishToUser(params.ReceiverID, EventMessage, message); err != nil {
			s.logFailure(ctx, err, "message realtime publish failed")
		}
	}
	return message, nil
}

func (s *service) findOrCreateConversation(ctx context.Context, a, b uuid.UUID) (*models.Conversation, error) {
	first, second := orderPair(a, b)
	conversation, err := s.repo.FindConversation(ctx, first, second)
	if err == nil {
		return conversation, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load conversation")
	}

	conversation = &models.Conversation{ParticipantA: first, ParticipantB: second}
	if err := s.repo.CreateConversation(ctx, conversation); err != nil {
		// lost the race to the other participant's first message
		if existing, findErr := s.repo.FindConversation(ctx, first, second); findErr == nil {
			return existing, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create conversation")
	}
	return conversation, nil
}

func (s *service) ListConversations(ctx context.Context, userID uuid.UUID) ([]models.Conversation, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	conversations, err := s.repo.ListConversations(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list conversations")
	}
	return conversations, nil
}

func (s *service) ListMessages(ctx context.Context, userID, conversationID uuid.UUID) ([]models.Message, error) {
	if _, err := s.memberConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	messages, err := s.repo.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list messages")
	}
	return messages, nil
}

func (s *service) MarkDelivered(ctx context.Context, userID, conversationID uuid.UUID) error {
	if _, err := s.memberConversation(ctx, userID, conversationID); err != nil {
		return err
	}
	if _, err := s.repo.MarkDelivered(ctx, conversationID, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark delivered")
	}
	return nil
}

func (s *service) MarkRead(ctx context.Context, userID, conversationID uuid.UUID) error {
	if _, err := s.memberConversation(ctx, userID, conversationID); err != nil {
		return err
	}
	if _, err := s.repo.MarkRead(ctx, conversationID, userID, s.now()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark read")
	}
	return nil
}

func (s *service) memberConversation(ctx context.Context, userID, conversationID uuid.UUID) (*models.Conversation, error) {
	if userID == uuid.Nil || conversationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id and conversation id required")
	}
	conversation, err := s.repo.FindConversationByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "conversation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load conversation")
	}
	if conversation.ParticipantA != userID && conversation.ParticipantB != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "conversation belongs to other users")
	}
	return conversation, nil
}

func (s *service) logFailure(ctx context.Context, err error, msg string) {
	if s.log == nil {
		return
	}
	s.log.Warn(s.log.WithField(ctx, "error", err.Error()), msg)
}
