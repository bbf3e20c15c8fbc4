package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"wavechat/domain"
	"wavechat/domain/event"
	"wavechat/media"
	"wavechat/moderation"
	"wavechat/realtime"
	"wavechat/repositories"
)

// SendMessageRequest is the inbound payload of a send. Image and Document
// carry base64 blobs that are uploaded before persistence.
type SendMessageRequest struct {
	Text         string `json:"text"`
	Image        string `json:"image"`
	Document     string `json:"document"`
	DocumentName string `json:"documentName"`
}

// UserConversation is one sidebar entry: a counterpart user plus the unread
// and ordering state of the conversation with them.
type UserConversation struct {
	domain.User
	UnreadCount   int        `json:"unreadCount"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty"`
}

type IMessageService interface {
	SendDirect(ctx context.Context, senderID, receiverID string, req SendMessageRequest) (domain.DirectMessage, error)
	Conversation(userID, otherID string) ([]domain.DirectMessage, error)
	MarkRead(userID, otherID string) error
	SidebarUsers(userID string) ([]UserConversation, error)
	Search(ctx context.Context, userID, terms string, limit int) ([]repositories.Hit, error)
}

type MessageService struct {
	users       repositories.IUserRepository
	groups      repositories.IGroupRepository
	messages    repositories.IDirectMessageRepository
	index       repositories.IMessageIndex
	uploads     media.Store
	filter      *moderation.Filter
	broadcaster realtime.IBroadcaster
	log         *slog.Logger
}

func NewMessageService(
	users repositories.IUserRepository,
	groups repositories.IGroupRepository,
	messages repositories.IDirectMessageRepository,
	index repositories.IMessageIndex,
	uploads media.Store,
	filter *moderation.Filter,
	broadcaster realtime.IBroadcaster,
	log *slog.Logger,
) IMessageService {
	return &MessageService{
		users:       users,
		groups:      groups,
		messages:    messages,
		index:       index,
		uploads:     uploads,
		filter:      filter,
		broadcaster: broadcaster,
		log:         log,
	}
}

// SendDirect validates, uploads attachments, persists, then delivers to the
// receiver's connections and back to the sender's own connections for
// multi-device echo. A failed upload rejects the whole send before anything
// is persisted; a failed persist means nothing is broadcast.
func (s *MessageService) SendDirect(ctx context.Context, senderID, receiverID string, req SendMessageRequest) (domain.DirectMessage, error) {
	if _, err := s.users.GetByID(receiverID); err != nil {
		return domain.DirectMessage{}, err
	}

	payload, err := buildPayload(ctx, s.uploads, s.filter, req)
	if err != nil {
		return domain.DirectMessage{}, err
	}

	msg := domain.DirectMessage{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Payload:    payload,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.messages.Store(msg); err != nil {
		return domain.DirectMessage{}, fmt.Errorf("persisting message: %w", err)
	}

	if err := s.index.Index(msg.ID, domain.DirectConversationKey(senderID, receiverID), senderID, msg.Text); err != nil {
		s.log.Warn("message indexing failed", "id", msg.ID, "error", err)
	}

	e := event.NewDirectMessage{Message: msg}
	s.broadcaster.ToUser(receiverID, e)
	s.broadcaster.ToUser(senderID, e)
	return msg, nil
}

func (s *MessageService) Conversation(userID, otherID string) ([]domain.DirectMessage, error) {
	return s.messages.Conversation(userID, otherID)
}

// MarkRead flags everything otherID sent to userID, then tells the reader's
// own connections so badge counts stay consistent across devices.
func (s *MessageService) MarkRead(userID, otherID string) error {
	if _, err := s.messages.MarkRead(otherID, userID); err != nil {
		return err
	}
	s.broadcaster.ToUser(userID, event.MarkedRead{ConversationID: otherID})
	return nil
}

// SidebarUsers recomputes unread counts and ordering from durable state.
// In-memory counters are only ever a client-side optimization; reconnecting
// clients call this for the authoritative view.
func (s *MessageService) SidebarUsers(userID string) ([]UserConversation, error) {
	others, err := s.users.ListOthers(userID)
	if err != nil {
		return nil, err
	}

	conversations := make([]UserConversation, 0, len(others))
	for _, other := range others {
		unread, err := s.messages.UnreadCount(other.ID, userID)
		if err != nil {
			return nil, err
		}
		latest, err := s.messages.LatestAt(userID, other.ID)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, UserConversation{
			User:          other,
			UnreadCount:   unread,
			LastMessageAt: latest,
		})
	}

	domain.SortByActivity(conversations, func(c UserConversation) domain.Activity {
		return domain.Activity{LastMessageAt: c.LastMessageAt, CreatedAt: c.CreatedAt}
	})
	return conversations, nil
}

// Search runs a full-text query over every conversation the user belongs
// to: each direct pair plus each group room.
func (s *MessageService) Search(ctx context.Context, userID, terms string, limit int) ([]repositories.Hit, error) {
	others, err := s.users.ListOthers(userID)
	if err != nil {
		return nil, err
	}
	memberGroups, err := s.groups.ListByMember(userID)
	if err != nil {
		return nil, err
	}

	scope := lo.Map(others, func(u domain.User, _ int) string {
		return domain.DirectConversationKey(userID, u.ID)
	})
	scope = append(scope, lo.Map(memberGroups, func(g domain.Group, _ int) string {
		return g.ID
	})...)

	return s.index.Search(ctx, terms, scope, limit)
}
