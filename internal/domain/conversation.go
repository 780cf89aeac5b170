package domain

import "time"

type ConversationType string

const (
	ConversationStylist ConversationType = "STYLIST"
	ConversationSeller  ConversationType = "SELLER"
)

type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation stores the transcript of one assistant chat. ConversationID is
// a client-visible uuid, distinct from the row id.
type Conversation struct {
	ID             int64            `json:"id"`
	UserID         int64            `json:"userId"`
	Type           ConversationType `json:"type"`
	ConversationID string           `json:"conversationId"`
	Messages       []ChatMessage    `json:"messages"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}
