package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/logysma/logysma-backend/api/responses"
	"github.com/logysma/logysma-backend/api/validators"
	"github.com/logysma/logysma-backend/internal/messaging"
	"github.com/logysma/logysma-backend/pkg/logger"
)

type sendMessageRequest struct {
	SenderID   uuid.UUID  `json:"sender_id" validate:"required"`
	ReceiverID uuid.UUID  `json:"receiver_id" validate:"required"`
	Content    *string    `json:"content"`
	MediaURL   *string    `json:"media_url"`
	MediaType  *string    `json:"media_type"`
	ReplyToID  *uuid.UUID `json:"reply_to_id"`
}

// MessageSend stores a chat message and pushes it to the receiver live.
func MessageSend(svc messaging.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body sendMessageRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		message, err := svc.Send(r.Context(), messaging.SendParams{
			SenderID:   body.SenderID,
			ReceiverID: body.ReceiverID,
			Content:    body.Content,
			MediaURL:   body.MediaURL,
			MediaType:  body.MediaType,
			ReplyToID:  body.ReplyToID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, message)
	}
}

// ConversationList returns the user's threads, most recent first.
func ConversationList(svc messaging.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.PathUUID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.ListConversations(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// MessageList returns the messages of one thread, oldest first.
func MessageList(svc messaging.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conversationID, err := validators.PathUUID(r, "conversationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		userID, err := validators.PathUUID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.ListMessages(r.Context(), userID, conversationID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// MessagesMarkDelivered flags the caller's pending inbound messages.
func MessagesMarkDelivered(svc messaging.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conversationID, err := validators.PathUUID(r, "conversationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		userID, err := validators.PathUUID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.MarkDelivered(r.Context(), userID, conversationID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "delivered"})
	}
}

// MessagesMarkRead flags the caller's inbound messages as read.
func MessagesMarkRead(svc messaging.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conversationID, err := validators.PathUUID(r, "conversationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		userID, err := validators.PathUUID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.MarkRead(r.Context(), userID, conversationID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "read"})
	}
}
