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
	"wavechat/errors"
	"wavechat/media"
	"wavechat/moderation"
	"wavechat/realtime"
	"wavechat/repositories"
)

type CreateGroupRequest struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"memberIds"`
	Pic       string   `json:"pic"` // base64, uploaded on create
}

type UpdateGroupRequest struct {
	Name string `json:"name"`
	Pic  string `json:"pic"`
}

// GroupConversation is one group list entry with unread/ordering state.
type GroupConversation struct {
	domain.Group
	UnreadCount   int        `json:"unreadCount"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty"`
}

type IGroupService interface {
	Create(ctx context.Context, adminID string, req CreateGroupRequest) (domain.Group, error)
	ListGroups(userID string) ([]GroupConversation, error)
	AddMember(adminID, groupID, userID string) (domain.Group, error)
	RemoveMember(adminID, groupID, userID string) (domain.Group, error)
	UpdateInfo(ctx context.Context, adminID, groupID string, req UpdateGroupRequest) (domain.Group, error)
	DeletePhoto(ctx context.Context, adminID, groupID string) (domain.Group, error)
	Delete(ctx context.Context, adminID, groupID string) error
	SendMessage(ctx context.Context, senderID, groupID string, req SendMessageRequest) (domain.GroupMessage, error)
	Messages(userID, groupID string) ([]domain.GroupMessage, error)
	MarkRead(userID, groupID string) error
	GroupIDsFor(userID string) ([]string, error)
}

// GroupService is the group lifecycle synchronizer: every mutation that
// changes membership updates persisted state, resyncs room subscriptions,
// and notifies affected connections in that order, within one handler.
// Broadcasts always carry the freshly persisted snapshot, never a value
// captured before the write.
type GroupService struct {
	groups      repositories.IGroupRepository
	messages    repositories.IGroupMessageRepository
	index       repositories.IMessageIndex
	uploads     media.Store
	filter      *moderation.Filter
	rooms       realtime.IRoomRegistry
	broadcaster realtime.IBroadcaster
	log         *slog.Logger
}

func NewGroupService(
	groups repositories.IGroupRepository,
	messages repositories.IGroupMessageRepository,
	index repositories.IMessageIndex,
	uploads media.Store,
	filter *moderation.Filter,
	rooms realtime.IRoomRegistry,
	broadcaster realtime.IBroadcaster,
	log *slog.Logger,
) IGroupService {
	return &GroupService{
		groups:      groups,
		messages:    messages,
		index:       index,
		uploads:     uploads,
		filter:      filter,
		rooms:       rooms,
		broadcaster: broadcaster,
		log:         log,
	}
}

// Create persists the group with the admin folded into the member set, then
// subscribes each live member to the new room and notifies everyone except
// the creator.
func (s *GroupService) Create(ctx context.Context, adminID string, req CreateGroupRequest) (domain.Group, error) {
	if req.Name == "" {
		return domain.Group{}, errors.ErrMissingName
	}
	if len(req.MemberIDs) == 0 {
		return domain.Group{}, errors.ErrMissingMembers
	}

	now := time.Now().UTC()
	group := domain.Group{
		ID:        uuid.NewString(),
		Name:      req.Name,
		AdminID:   adminID,
		MemberIDs: lo.Uniq(append(append([]string{}, req.MemberIDs...), adminID)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if req.Pic != "" {
		url, err := s.uploadPic(ctx, req.Pic)
		if err != nil {
			return domain.Group{}, err
		}
		group.Pic = url
	}

	if err := s.groups.Create(group); err != nil {
		return domain.Group{}, fmt.Errorf("persisting group: %w", err)
	}

	for _, memberID := range group.MemberIDs {
		s.rooms.JoinRoom(memberID, group.ID)
	}
	for _, memberID := range group.MemberIDs {
		if memberID == adminID {
			continue
		}
		s.broadcaster.ToUser(memberID, event.GroupCreated{Group: group, CreatedBy: adminID})
	}
	return group, nil
}

func (s *GroupService) ListGroups(userID string) ([]GroupConversation, error) {
	memberGroups, err := s.groups.ListByMember(userID)
	if err != nil {
		return nil, err
	}

	conversations := make([]GroupConversation, 0, len(memberGroups))
	for _, group := range memberGroups {
		unread, err := s.messages.UnreadCount(group.ID, userID)
		if err != nil {
			return nil, err
		}
		latest, err := s.messages.LatestAt(group.ID)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, GroupConversation{
			Group:         group,
			UnreadCount:   unread,
			LastMessageAt: latest,
		})
	}

	domain.SortByActivity(conversations, func(c GroupConversation) domain.Activity {
		return domain.Activity{LastMessageAt: c.LastMessageAt, CreatedAt: c.CreatedAt}
	})
	return conversations, nil
}

// GroupIDsFor returns the group ids a user belongs to, the room set a fresh
// connection subscribes to.
func (s *GroupService) GroupIDsFor(userID string) ([]string, error) {
	memberGroups, err := s.groups.ListByMember(userID)
	if err != nil {
		return nil, err
	}
	return lo.Map(memberGroups, func(g domain.Group, _ int) string { return g.ID }), nil
}

// AddMember runs the membership change inside one repository transaction,
// so interleaved mutations on the same group cannot drop each other's
// writes. The broadcast carries the snapshot that was actually committed.
func (s *GroupService) AddMember(adminID, groupID, userID string) (domain.Group, error) {
	group, err := s.groups.Mutate(groupID, func(g *domain.Group) error {
		if !g.IsAdmin(adminID) {
			return errors.ErrNotAdmin
		}
		if g.HasMember(userID) {
			return errors.ErrAlreadyMember
		}
		g.MemberIDs = append(g.MemberIDs, userID)
		g.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return domain.Group{}, err
	}

	// Room resync happens before the broadcast so the new member's own
	// connections are already subscribed when member-added reaches the room.
	s.rooms.JoinRoom(userID, groupID)
	s.broadcaster.ToRoom(groupID, event.MemberAdded{GroupID: groupID, Group: group, AffectedUserID: userID})
	return group, nil
}

// RemoveMember takes a member out of the group. Removing the admin is
// rejected: there is no admin transfer, so the admin-in-members invariant
// holds by construction.
func (s *GroupService) RemoveMember(adminID, groupID, userID string) (domain.Group, error) {
	group, err := s.groups.Mutate(groupID, func(g *domain.Group) error {
		if !g.IsAdmin(adminID) {
			return errors.ErrNotAdmin
		}
		if userID == g.AdminID {
			return errors.ErrAdminRemoval
		}
		if !g.HasMember(userID) {
			return errors.ErrNotMember
		}
		g.MemberIDs = lo.Filter(g.MemberIDs, func(id string, _ int) bool { return id != userID })
		g.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return domain.Group{}, err
	}

	s.rooms.LeaveRoom(userID, groupID)
	// Broadcast goes to the now-smaller room; the removed user is no longer
	// subscribed and learns about it via durable state on the next pull.
	s.broadcaster.ToRoom(groupID, event.MemberRemoved{GroupID: groupID, Group: group, AffectedUserID: userID})
	return group, nil
}

func (s *GroupService) UpdateInfo(ctx context.Context, adminID, groupID string, req UpdateGroupRequest) (domain.Group, error) {
	// Admin pre-check before the upload; the transaction re-checks it.
	if _, err := s.adminGroup(adminID, groupID); err != nil {
		return domain.Group{}, err
	}

	// The blob upload stays outside the transaction: Mutate may retry its
	// callback on conflict and the upload must not run twice.
	var picURL string
	if req.Pic != "" {
		url, err := s.uploadPic(ctx, req.Pic)
		if err != nil {
			return domain.Group{}, err
		}
		picURL = url
	}

	group, err := s.groups.Mutate(groupID, func(g *domain.Group) error {
		if !g.IsAdmin(adminID) {
			return errors.ErrNotAdmin
		}
		if req.Name != "" {
			g.Name = req.Name
		}
		if picURL != "" {
			g.Pic = picURL
		}
		g.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return domain.Group{}, err
	}

	s.broadcaster.ToRoom(groupID, event.GroupUpdated{GroupID: groupID, Group: group})
	return group, nil
}

// DeletePhoto clears the group image. The blob delete is best-effort and
// runs only after the metadata write committed.
func (s *GroupService) DeletePhoto(ctx context.Context, adminID, groupID string) (domain.Group, error) {
	var oldPic string
	group, err := s.groups.Mutate(groupID, func(g *domain.Group) error {
		if !g.IsAdmin(adminID) {
			return errors.ErrNotAdmin
		}
		if g.Pic == "" {
			return errors.ErrNoGroupPhoto
		}
		oldPic = g.Pic
		g.Pic = ""
		g.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return domain.Group{}, err
	}

	s.uploads.Delete(ctx, oldPic)
	s.broadcaster.ToRoom(groupID, event.GroupUpdated{GroupID: groupID, Group: group})
	return group, nil
}

// Delete is terminal: messages cascade first, then the group itself, then
// each former member is notified on their personal connections since the
// room is already gone.
func (s *GroupService) Delete(ctx context.Context, adminID, groupID string) error {
	group, err := s.adminGroup(adminID, groupID)
	if err != nil {
		return err
	}

	// Member list captured before deletion; it is the notification audience.
	members := append([]string{}, group.MemberIDs...)

	if _, err := s.messages.DeleteByGroup(groupID); err != nil {
		return fmt.Errorf("cascading message delete: %w", err)
	}
	if err := s.index.DeleteConversation(ctx, groupID); err != nil {
		s.log.Warn("index cascade failed", "groupId", groupID, "error", err)
	}
	if err := s.groups.Delete(groupID); err != nil {
		return fmt.Errorf("deleting group: %w", err)
	}
	if group.Pic != "" {
		s.uploads.Delete(ctx, group.Pic)
	}

	s.rooms.DropRoom(groupID)
	deleted := event.GroupDeleted{GroupID: groupID, GroupName: group.Name, DeletedBy: adminID}
	for _, memberID := range members {
		s.broadcaster.ToUser(memberID, deleted)
	}
	return nil
}

// SendMessage persists a group message with an empty read-receipt set and
// broadcasts it to the room. The sender receives its own echo; clients
// de-duplicate by message id.
func (s *GroupService) SendMessage(ctx context.Context, senderID, groupID string, req SendMessageRequest) (domain.GroupMessage, error) {
	group, err := s.groups.Get(groupID)
	if err != nil {
		return domain.GroupMessage{}, err
	}
	if !group.HasMember(senderID) {
		return domain.GroupMessage{}, errors.ErrNotMember
	}

	payload, err := buildPayload(ctx, s.uploads, s.filter, req)
	if err != nil {
		return domain.GroupMessage{}, err
	}

	msg := domain.GroupMessage{
		ID:        uuid.NewString(),
		GroupID:   groupID,
		SenderID:  senderID,
		Payload:   payload,
		ReadBy:    []domain.ReadReceipt{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.Store(msg); err != nil {
		return domain.GroupMessage{}, fmt.Errorf("persisting message: %w", err)
	}

	if err := s.index.Index(msg.ID, groupID, senderID, msg.Text); err != nil {
		s.log.Warn("message indexing failed", "id", msg.ID, "error", err)
	}

	s.broadcaster.ToRoom(groupID, event.NewGroupMessage{Message: msg})
	return msg, nil
}

func (s *GroupService) Messages(userID, groupID string) ([]domain.GroupMessage, error) {
	group, err := s.groups.Get(groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, errors.ErrNotMember
	}
	return s.messages.ListByGroup(groupID)
}

func (s *GroupService) MarkRead(userID, groupID string) error {
	group, err := s.groups.Get(groupID)
	if err != nil {
		return err
	}
	if !group.HasMember(userID) {
		return errors.ErrNotMember
	}

	if _, err := s.messages.AddReadReceipts(groupID, userID, time.Now().UTC()); err != nil {
		return err
	}
	s.broadcaster.ToUser(userID, event.MarkedRead{ConversationID: groupID})
	return nil
}

// adminGroup loads the current snapshot and checks the caller is admin.
func (s *GroupService) adminGroup(adminID, groupID string) (domain.Group, error) {
	group, err := s.groups.Get(groupID)
	if err != nil {
		return domain.Group{}, err
	}
	if !group.IsAdmin(adminID) {
		return domain.Group{}, errors.ErrNotAdmin
	}
	return group, nil
}

func (s *GroupService) uploadPic(ctx context.Context, pic string) (string, error) {
	data, err := media.DecodeDataURI(pic)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrUploadFailed, err)
	}
	url, err := s.uploads.Upload(ctx, data, "")
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrUploadUnavailable, err)
	}
	return url, nil
}
