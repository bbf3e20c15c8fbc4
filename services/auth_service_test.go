package services

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"wavechat/auth"
	"wavechat/domain"
	"wavechat/domain/event"
	"wavechat/errors"
	"wavechat/mocks"
)

type authFixture struct {
	users       *mocks.MockIUserRepository
	uploads     *mocks.MockStore
	broadcaster *mocks.MockIBroadcaster
	svc         IAuthService
}

func newAuthFixture(t *testing.T) authFixture {
	ctrl := gomock.NewController(t)
	f := authFixture{
		users:       mocks.NewMockIUserRepository(ctrl),
		uploads:     mocks.NewMockStore(ctrl),
		broadcaster: mocks.NewMockIBroadcaster(ctrl),
	}
	f.svc = NewAuthService(f.users, auth.NewTokenManager("test-secret", time.Hour), f.uploads, f.broadcaster)
	return f
}

func TestAuthService_Register(t *testing.T) {
	validRequest := auth.RegisterRequest{
		FullName: "Alice Doe",
		Email:    "alice@example.com",
		Password: "ComplexPass123",
	}

	t.Run("should register successfully when input is valid", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)

		// The repository receives a hash, never the plain password
		f.users.EXPECT().
			Create("Alice Doe", "alice@example.com", gomock.Not("ComplexPass123")).
			Return(domain.User{ID: "user-1", Email: "alice@example.com"}, nil).
			Times(1)

		user, token, err := f.svc.Register(validRequest)

		req.NoError(err)
		req.Equal("user-1", user.ID)
		req.NotEmpty(token)
	})

	t.Run("should fail when password complexity is not met", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)

		// Repository should NEVER be called
		f.users.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		weak := validRequest
		weak.Password = "simple"
		_, token, err := f.svc.Register(weak)

		req.ErrorIs(err, errors.ErrInvalidPassword)
		req.Empty(token)
	})

	t.Run("should not blame the password for a malformed email", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)

		f.users.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		bad := validRequest
		bad.Email = "not-an-email"
		_, _, err := f.svc.Register(bad)

		req.ErrorIs(err, errors.ErrInvalidRequest)
		req.NotErrorIs(err, errors.ErrInvalidPassword)
	})

	t.Run("should fail when user already exists in repository", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)

		f.users.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(domain.User{}, errors.ErrUserAlreadyExists).
			Times(1)

		_, _, err := f.svc.Register(validRequest)

		req.ErrorIs(err, errors.ErrUserAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := auth.HashPassword("ComplexPass123")
	require.NoError(t, err)

	t.Run("should return a token for valid credentials", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)

		f.users.EXPECT().
			GetByEmail("alice@example.com").
			Return(domain.User{ID: "user-1"}, hash, nil).
			Times(1)

		user, token, err := f.svc.Login("alice@example.com", "ComplexPass123")

		req.NoError(err)
		req.Equal("user-1", user.ID)
		req.NotEmpty(token)
	})

	t.Run("should reject a wrong password with a generic error", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)

		f.users.EXPECT().
			GetByEmail("alice@example.com").
			Return(domain.User{ID: "user-1"}, hash, nil).
			Times(1)

		_, _, err := f.svc.Login("alice@example.com", "WrongPass123")

		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})

	t.Run("should not reveal whether the account exists", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)

		f.users.EXPECT().
			GetByEmail("ghost@example.com").
			Return(domain.User{}, "", errors.ErrUserNotFound).
			Times(1)

		_, _, err := f.svc.Login("ghost@example.com", "Whatever123")

		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	req := require.New(t)
	f := newAuthFixture(t)

	t.Run("should resolve a token issued by Login", func(t *testing.T) {
		tokens := auth.NewTokenManager("test-secret", time.Hour)
		token, err := tokens.Generate("user-42")
		req.NoError(err)

		userID, err := f.svc.Authenticate(token)
		req.NoError(err)
		req.Equal("user-42", userID)
	})

	t.Run("should reject garbage tokens", func(t *testing.T) {
		_, err := f.svc.Authenticate("not-a-jwt")
		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})
}

func TestAuthService_CheckEmail(t *testing.T) {
	t.Run("should confirm a known account", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.EXPECT().GetByEmail("alice@example.com").
			Return(domain.User{ID: "user-1"}, "hash", nil)

		require.NoError(t, f.svc.CheckEmail("alice@example.com"))
	})

	t.Run("should report an unknown account as not found", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.EXPECT().GetByEmail("ghost@example.com").
			Return(domain.User{}, "", errors.ErrUserNotFound)

		require.ErrorIs(t, f.svc.CheckEmail("ghost@example.com"), errors.ErrUserNotFound)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	t.Run("should store a fresh hash, never the plain password", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)

		f.users.EXPECT().
			UpdatePassword("alice@example.com", gomock.Not("FreshPass123")).
			Return(nil)

		req.NoError(f.svc.ResetPassword(auth.ResetPasswordRequest{
			Email: "alice@example.com", Password: "FreshPass123",
		}))
	})

	t.Run("should apply the same complexity rules as registration", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)

		f.users.EXPECT().UpdatePassword(gomock.Any(), gomock.Any()).Times(0)

		err := f.svc.ResetPassword(auth.ResetPasswordRequest{
			Email: "alice@example.com", Password: "simple",
		})
		req.ErrorIs(err, errors.ErrInvalidPassword)
	})

	t.Run("should surface an unknown email", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)

		f.users.EXPECT().
			UpdatePassword("ghost@example.com", gomock.Any()).
			Return(errors.ErrUserNotFound)

		err := f.svc.ResetPassword(auth.ResetPasswordRequest{
			Email: "ghost@example.com", Password: "FreshPass123",
		})
		req.ErrorIs(err, errors.ErrUserNotFound)
	})
}

func TestAuthService_UpdateProfilePic(t *testing.T) {
	ctx := context.Background()
	pic := base64.StdEncoding.EncodeToString([]byte("fake image bytes"))

	t.Run("should upload the blob, drop the previous one, and notify everyone", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)

		updated := domain.User{ID: "user-1", ProfilePic: "/uploads/new.png"}
		f.users.EXPECT().GetByID("user-1").
			Return(domain.User{ID: "user-1", ProfilePic: "/uploads/old.png"}, nil)
		f.uploads.EXPECT().Upload(ctx, []byte("fake image bytes"), "").
			Return("/uploads/new.png", nil)
		f.users.EXPECT().UpdateProfilePic("user-1", "/uploads/new.png").
			Return(updated, nil)
		f.uploads.EXPECT().Delete(ctx, "/uploads/old.png")
		// Every connection refreshes its cached avatar
		f.broadcaster.EXPECT().ToAll(event.ProfileUpdated{User: updated})

		user, err := f.svc.UpdateProfilePic(ctx, "user-1", pic)

		req.NoError(err)
		req.Equal("/uploads/new.png", user.ProfilePic)
	})

	t.Run("should reject an empty picture", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.UpdateProfilePic(ctx, "user-1", "")
		require.ErrorIs(t, err, errors.ErrEmptyPayload)
	})

	t.Run("should report a failed blob write as an upstream fault", func(t *testing.T) {
		req := require.New(t)
		f := newAuthFixture(t)

		f.users.EXPECT().GetByID("user-1").Return(domain.User{ID: "user-1"}, nil)
		f.uploads.EXPECT().Upload(ctx, gomock.Any(), "").
			Return("", context.DeadlineExceeded)
		f.users.EXPECT().UpdateProfilePic(gomock.Any(), gomock.Any()).Times(0)

		_, err := f.svc.UpdateProfilePic(ctx, "user-1", pic)

		req.ErrorIs(err, errors.ErrUploadUnavailable)
	})
}
