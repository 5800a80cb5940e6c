package enums

// MessageStatus tracks delivery state for chat messages.
type MessageStatus string

const (
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusRead      MessageStatus = "read"
)

func (m MessageStatus) IsValid() bool {
	switch m {
	case MessageStatusSent, MessageStatusDelivered, MessageStatusRead:
		return true
	}
	return false
}

// MediaKind classifies message attachments.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

func (m MediaKind) IsValid() bool {
	return m == MediaKindImage || m == MediaKindVideo
}
