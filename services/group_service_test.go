package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"wavechat/domain"
	"wavechat/domain/event"
	"wavechat/errors"
	"wavechat/mocks"
	"wavechat/moderation"
)

type groupFixture struct {
	groups      *mocks.MockIGroupRepository
	messages    *mocks.MockIGroupMessageRepository
	index       *mocks.MockIMessageIndex
	uploads     *mocks.MockStore
	rooms       *mocks.MockIRoomRegistry
	broadcaster *mocks.MockIBroadcaster
	svc         IGroupService
}

func newGroupFixture(t *testing.T) groupFixture {
	ctrl := gomock.NewController(t)
	filter, err := moderation.NewFilter(nil, '*')
	require.NoError(t, err)

	f := groupFixture{
		groups:      mocks.NewMockIGroupRepository(ctrl),
		messages:    mocks.NewMockIGroupMessageRepository(ctrl),
		index:       mocks.NewMockIMessageIndex(ctrl),
		uploads:     mocks.NewMockStore(ctrl),
		rooms:       mocks.NewMockIRoomRegistry(ctrl),
		broadcaster: mocks.NewMockIBroadcaster(ctrl),
	}
	f.svc = NewGroupService(
		f.groups, f.messages, f.index,
		f.uploads, filter, f.rooms, f.broadcaster, slog.Default(),
	)
	return f
}

// expectMutate makes the mock apply the service's callback to a seeded
// snapshot the way the repository transaction would.
func (f groupFixture) expectMutate(seed domain.Group) {
	f.groups.EXPECT().Mutate(seed.ID, gomock.Any()).DoAndReturn(
		func(_ string, mutate func(*domain.Group) error) (domain.Group, error) {
			g := seed
			g.MemberIDs = append([]string{}, seed.MemberIDs...)
			if err := mutate(&g); err != nil {
				return domain.Group{}, err
			}
			return g, nil
		})
}

func storedGroup(id, admin string, members ...string) domain.Group {
	now := time.Now().UTC()
	return domain.Group{
		ID:        id,
		Name:      "the-group",
		AdminID:   admin,
		MemberIDs: members,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestGroupService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("should fold the creator into the member set and notify everyone else", func(t *testing.T) {
		req := require.New(t)
		f := newGroupFixture(t)

		var created domain.Group
		f.groups.EXPECT().Create(gomock.Any()).
			Do(func(g domain.Group) { created = g }).
			Return(nil)
		// All three members join the room, creator included
		f.rooms.EXPECT().JoinRoom("bob", gomock.Any())
		f.rooms.EXPECT().JoinRoom("clara", gomock.Any())
		f.rooms.EXPECT().JoinRoom("alice", gomock.Any())
		// The creator gets no group-created event
		f.broadcaster.EXPECT().ToUser("bob", gomock.Any())
		f.broadcaster.EXPECT().ToUser("clara", gomock.Any())

		group, err := f.svc.Create(ctx, "alice", CreateGroupRequest{
			Name: "weekend", MemberIDs: []string{"bob", "clara", "alice"},
		})

		req.NoError(err)
		req.Equal("alice", group.AdminID)
		req.ElementsMatch([]string{"alice", "bob", "clara"}, group.MemberIDs)
		req.Equal(group, created)
	})

	t.Run("should reject a nameless group", func(t *testing.T) {
		f := newGroupFixture(t)
		_, err := f.svc.Create(ctx, "alice", CreateGroupRequest{MemberIDs: []string{"bob"}})
		require.ErrorIs(t, err, errors.ErrMissingName)
	})

	t.Run("should reject an empty member list", func(t *testing.T) {
		f := newGroupFixture(t)
		_, err := f.svc.Create(ctx, "alice", CreateGroupRequest{Name: "weekend"})
		require.ErrorIs(t, err, errors.ErrMissingMembers)
	})
}

func TestGroupService_AddMember(t *testing.T) {
	t.Run("should subscribe the new member before broadcasting", func(t *testing.T) {
		req := require.New(t)
		f := newGroupFixture(t)

		f.expectMutate(storedGroup("g1", "alice", "alice", "bob"))
		gomock.InOrder(
			f.rooms.EXPECT().JoinRoom("clara", "g1"),
			f.broadcaster.EXPECT().ToRoom("g1", gomock.Any()),
		)

		group, err := f.svc.AddMember("alice", "g1", "clara")

		req.NoError(err)
		req.True(group.HasMember("clara"))
	})

	t.Run("should reject a non-admin caller", func(t *testing.T) {
		f := newGroupFixture(t)
		f.expectMutate(storedGroup("g1", "alice", "alice", "bob"))

		_, err := f.svc.AddMember("bob", "g1", "clara")
		require.ErrorIs(t, err, errors.ErrNotAdmin)
	})

	t.Run("should reject an existing member", func(t *testing.T) {
		f := newGroupFixture(t)
		f.expectMutate(storedGroup("g1", "alice", "alice", "bob"))

		_, err := f.svc.AddMember("alice", "g1", "bob")
		require.ErrorIs(t, err, errors.ErrAlreadyMember)
	})
}

func TestGroupService_RemoveMember(t *testing.T) {
	t.Run("should unsubscribe and notify the remaining room", func(t *testing.T) {
		req := require.New(t)
		f := newGroupFixture(t)

		f.expectMutate(storedGroup("g1", "alice", "alice", "bob", "clara"))
		f.rooms.EXPECT().LeaveRoom("bob", "g1")
		f.broadcaster.EXPECT().ToRoom("g1", gomock.Any())

		group, err := f.svc.RemoveMember("alice", "g1", "bob")

		req.NoError(err)
		req.False(group.HasMember("bob"))
	})

	t.Run("should refuse to remove the admin", func(t *testing.T) {
		f := newGroupFixture(t)
		f.expectMutate(storedGroup("g1", "alice", "alice", "bob"))

		_, err := f.svc.RemoveMember("alice", "g1", "alice")
		require.ErrorIs(t, err, errors.ErrAdminRemoval)
	})

	t.Run("should reject removing a non-member", func(t *testing.T) {
		f := newGroupFixture(t)
		f.expectMutate(storedGroup("g1", "alice", "alice", "bob"))

		_, err := f.svc.RemoveMember("alice", "g1", "ghost")
		require.ErrorIs(t, err, errors.ErrNotMember)
	})
}

func TestGroupService_Delete_CascadesAndNotifiesFormerMembers(t *testing.T) {
	req := require.New(t)
	f := newGroupFixture(t)
	ctx := context.Background()

	group := storedGroup("g1", "alice", "alice", "bob")
	group.Pic = "/uploads/pic.png"
	f.groups.EXPECT().Get("g1").Return(group, nil)
	f.messages.EXPECT().DeleteByGroup("g1").Return(5, nil)
	f.index.EXPECT().DeleteConversation(ctx, "g1").Return(nil)
	f.groups.EXPECT().Delete("g1").Return(nil)
	f.uploads.EXPECT().Delete(ctx, "/uploads/pic.png")
	f.rooms.EXPECT().DropRoom("g1")
	// Every former member is notified on their personal connections
	f.broadcaster.EXPECT().ToUser("alice", gomock.Any())
	f.broadcaster.EXPECT().ToUser("bob", gomock.Any())

	req.NoError(f.svc.Delete(ctx, "alice", "g1"))
}

func TestGroupService_SendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("should persist with empty receipts and echo to the room", func(t *testing.T) {
		req := require.New(t)
		f := newGroupFixture(t)

		f.groups.EXPECT().Get("g1").Return(storedGroup("g1", "alice", "alice", "bob"), nil)

		var stored domain.GroupMessage
		f.messages.EXPECT().Store(gomock.Any()).
			Do(func(msg domain.GroupMessage) { stored = msg }).
			Return(nil)
		f.index.EXPECT().Index(gomock.Any(), "g1", "bob", "hello room").Return(nil)
		f.broadcaster.EXPECT().ToRoom("g1", gomock.Any())

		msg, err := f.svc.SendMessage(ctx, "bob", "g1", SendMessageRequest{Text: "hello room"})

		req.NoError(err)
		req.NotNil(msg.ReadBy)
		req.Empty(msg.ReadBy)
		req.Equal(msg, stored)
	})

	t.Run("should reject a sender outside the group", func(t *testing.T) {
		f := newGroupFixture(t)
		f.groups.EXPECT().Get("g1").Return(storedGroup("g1", "alice", "alice", "bob"), nil)

		_, err := f.svc.SendMessage(ctx, "ghost", "g1", SendMessageRequest{Text: "hi"})
		require.ErrorIs(t, err, errors.ErrNotMember)
	})
}

func TestGroupService_MarkRead(t *testing.T) {
	req := require.New(t)
	f := newGroupFixture(t)

	f.groups.EXPECT().Get("g1").Return(storedGroup("g1", "alice", "alice", "bob"), nil)
	f.messages.EXPECT().AddReadReceipts("g1", "bob", gomock.Any()).Return([]string{"m1"}, nil)
	f.broadcaster.EXPECT().ToUser("bob", event.MarkedRead{ConversationID: "g1"})

	req.NoError(f.svc.MarkRead("bob", "g1"))
}

func TestGroupService_DeletePhoto(t *testing.T) {
	ctx := context.Background()

	t.Run("should clear the picture and broadcast the snapshot", func(t *testing.T) {
		req := require.New(t)
		f := newGroupFixture(t)

		group := storedGroup("g1", "alice", "alice", "bob")
		group.Pic = "/uploads/pic.png"
		f.expectMutate(group)
		f.uploads.EXPECT().Delete(ctx, "/uploads/pic.png")
		f.broadcaster.EXPECT().ToRoom("g1", gomock.Any())

		updated, err := f.svc.DeletePhoto(ctx, "alice", "g1")

		req.NoError(err)
		req.Empty(updated.Pic)
	})

	t.Run("should reject when there is no picture", func(t *testing.T) {
		f := newGroupFixture(t)
		f.expectMutate(storedGroup("g1", "alice", "alice", "bob"))

		_, err := f.svc.DeletePhoto(ctx, "alice", "g1")
		require.ErrorIs(t, err, errors.ErrNoGroupPhoto)
	})
}

func TestGroupService_UpdateInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("should rename and broadcast the committed snapshot", func(t *testing.T) {
		req := require.New(t)
		f := newGroupFixture(t)

		group := storedGroup("g1", "alice", "alice", "bob")
		f.groups.EXPECT().Get("g1").Return(group, nil)
		f.expectMutate(group)
		f.broadcaster.EXPECT().ToRoom("g1", gomock.Any())

		updated, err := f.svc.UpdateInfo(ctx, "alice", "g1", UpdateGroupRequest{Name: "renamed"})

		req.NoError(err)
		req.Equal("renamed", updated.Name)
	})

	t.Run("should reject a non-admin before any upload happens", func(t *testing.T) {
		f := newGroupFixture(t)
		f.groups.EXPECT().Get("g1").Return(storedGroup("g1", "alice", "alice", "bob"), nil)
		f.uploads.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := f.svc.UpdateInfo(ctx, "bob", "g1", UpdateGroupRequest{Pic: "aGVsbG8="})
		require.ErrorIs(t, err, errors.ErrNotAdmin)
	})
}
