package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stylemart-backend/internal/ai"
	"stylemart-backend/internal/domain"
)

// StylistService runs the buyer-facing styling assistant: it owns transcript
// persistence and product-context resolution, delegating prompt construction
// to the chain.
type StylistService struct {
	Stores Stores
	Chain  *ai.StylistChain
	Log    *zap.Logger
}

type StylistReply struct {
	ConversationID  string          `json:"conversationId"`
	Reply           string          `json:"reply"`
	Recommendations []ai.ProductHit `json:"recommendations,omitempty"`
}

// Chat appends the user's message to the conversation, runs the chain and
// persists the assistant reply. A failed catalog search degrades to a chat
// without recommendations rather than failing the request.
func (s *StylistService) Chat(ctx context.Context, userID int64, conversationID, message string, productID *int64) (*StylistReply, error) {
	if message == "" {
		return nil, ErrInvalidState("message must not be empty")
	}
	conv, err := s.loadOrCreate(ctx, userID, conversationID, domain.ConversationStylist)
	if err != nil {
		return nil, err
	}

	productContext := ""
	if productID != nil {
		product, err := s.Stores.ProductByID(ctx, *productID)
		if err == nil && product.Status == domain.ProductActive {
			productContext = product.Name + " (id " + strconv.FormatInt(product.ID, 10) +
				", category " + product.Category + ", price " + product.Price.StringFixed(2) + ")"
		} else if err != nil && !IsNotFound(err) {
			return nil, err
		}
	}

	now := time.Now().UTC()
	conv.Messages = append(conv.Messages, domain.ChatMessage{
		Role:      ai.RoleUser,
		Content:   message,
		Timestamp: now,
	})

	recs, err := s.Chain.Recommend(ctx, message)
	if err != nil {
		s.logger().Warn("stylist product search failed",
			zap.String("conversation_id", conv.ConversationID), zap.Error(err))
		recs = nil
	}

	reply, err := s.Chain.Run(ctx, toChainMessages(conv.Messages), productContext, recs)
	if err != nil {
		return nil, &ErrGateway{Reason: "stylist model invocation", Err: err}
	}

	conv.Messages = append(conv.Messages, domain.ChatMessage{
		Role:      ai.RoleAssistant,
		Content:   reply,
		Timestamp: time.Now().UTC(),
	})
	if err := s.Stores.UpdateConversationMessages(ctx, conv.ID, conv.Messages); err != nil {
		return nil, err
	}

	return &StylistReply{
		ConversationID:  conv.ConversationID,
		Reply:           reply,
		Recommendations: recs,
	}, nil
}

// History returns the transcript of one of the caller's conversations.
func (s *StylistService) History(ctx context.Context, userID int64, conversationID string) (*domain.Conversation, error) {
	conv, err := s.Stores.ConversationByID(ctx, conversationID, domain.ConversationStylist, userID)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound("conversation")
		}
		return nil, err
	}
	return conv, nil
}

func (s *StylistService) loadOrCreate(ctx context.Context, userID int64, conversationID string, typ domain.ConversationType) (*domain.Conversation, error) {
	if conversationID != "" {
		conv, err := s.Stores.ConversationByID(ctx, conversationID, typ, userID)
		if err == nil {
			return conv, nil
		}
		if !IsNotFound(err) {
			return nil, err
		}
		// Unknown id from the client starts a fresh conversation below.
	}
	conv := &domain.Conversation{
		UserID:         userID,
		Type:           typ,
		ConversationID: uuid.NewString(),
	}
	if err := s.Stores.CreateConversation(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func toChainMessages(history []domain.ChatMessage) []ai.Message {
	out := make([]ai.Message, 0, len(history))
	for _, m := range history {
		out = append(out, ai.Message{Role: m.Role, Content: m.Content})
	}
	return out
}

func (s *StylistService) logger() *zap.Logger {
	if s.Log != nil {
		return s.Log
	}
	return zap.NewNop()
}
