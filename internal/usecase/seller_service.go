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

// SellerAssistantService runs the seller-facing coaching assistant and the
// deterministic listing generator.
type SellerAssistantService struct {
	Stores Stores
	Chain  *ai.SellerChain
	Log    *zap.Logger
}

type SellerReply struct {
	ConversationID string `json:"conversationId"`
	Reply          string `json:"reply"`
}

func (s *SellerAssistantService) Chat(ctx context.Context, userID int64, conversationID, message string, productID *int64) (*SellerReply, error) {
	if message == "" {
		return nil, ErrInvalidState("message must not be empty")
	}
	conv, err := s.loadOrCreate(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	productContext := ""
	if productID != nil {
		product, err := s.Stores.ProductByID(ctx, *productID)
		if err != nil {
			if !IsNotFound(err) {
				return nil, err
			}
		} else if product.SellerID == userID {
			// Sellers only get context for their own listings.
			productContext = product.Name + " (id " + strconv.FormatInt(product.ID, 10) +
				", category " + product.Category + ", price " + product.Price.StringFixed(2) +
				", stock " + strconv.Itoa(product.Stock) + ")"
		}
	}

	conv.Messages = append(conv.Messages, domain.ChatMessage{
		Role:      ai.RoleUser,
		Content:   message,
		Timestamp: time.Now().UTC(),
	})

	reply, err := s.Chain.Chat(ctx, toChainMessages(conv.Messages), productContext)
	if err != nil {
		return nil, &ErrGateway{Reason: "seller assistant model invocation", Err: err}
	}

	conv.Messages = append(conv.Messages, domain.ChatMessage{
		Role:      ai.RoleAssistant,
		Content:   reply,
		Timestamp: time.Now().UTC(),
	})
	if err := s.Stores.UpdateConversationMessages(ctx, conv.ID, conv.Messages); err != nil {
		return nil, err
	}
	return &SellerReply{ConversationID: conv.ConversationID, Reply: reply}, nil
}

// GenerateListing produces title, description and tags for a draft listing.
// Template-based, so it works without a configured model.
func (s *SellerAssistantService) GenerateListing(ctx context.Context, fields ai.ListingFields) (*ai.GeneratedListing, error) {
	if fields.Name == "" && fields.Category == "" {
		return nil, ErrInvalidState("listing needs at least a name or a category")
	}
	listing := ai.GenerateListing(fields)
	return &listing, nil
}

func (s *SellerAssistantService) loadOrCreate(ctx context.Context, userID int64, conversationID string) (*domain.Conversation, error) {
	if conversationID != "" {
		conv, err := s.Stores.ConversationByID(ctx, conversationID, domain.ConversationSeller, userID)
		if err == nil {
			return conv, nil
		}
		if !IsNotFound(err) {
			return nil, err
		}
	}
	conv := &domain.Conversation{
		UserID:         userID,
		Type:           domain.ConversationSeller,
		ConversationID: uuid.NewString(),
	}
	if err := s.Stores.CreateConversation(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *SellerAssistantService) logger() *zap.Logger {
	if s.Log != nil {
		return s.Log
	}
	return zap.NewNop()
}
