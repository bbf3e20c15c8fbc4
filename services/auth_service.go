package services

import (
	"context"
	"fmt"

	"wavechat/auth"
	"wavechat/domain"
	"wavechat/domain/event"
	"wavechat/errors"
	"wavechat/media"
	"wavechat/realtime"
	"wavechat/repositories"
)

type IAuthService interface {
	Register(req auth.RegisterRequest) (domain.User, Token, error)
	Login(email, password string) (domain.User, Token, error)
	Authenticate(token string) (string, error)
	CheckEmail(email string) error
	ResetPassword(req auth.ResetPasswordRequest) error
	UpdateProfilePic(ctx context.Context, userID, pic string) (domain.User, error)
}

type Token string

type AuthService struct {
	users       repositories.IUserRepository
	tokens      auth.TokenManager
	uploads     media.Store
	broadcaster realtime.IBroadcaster
}

func NewAuthService(
	users repositories.IUserRepository,
	tokens auth.TokenManager,
	uploads media.Store,
	broadcaster realtime.IBroadcaster,
) IAuthService {
	return &AuthService{users: users, tokens: tokens, uploads: uploads, broadcaster: broadcaster}
}

func (s *AuthService) Register(req auth.RegisterRequest) (domain.User, Token, error) {
	// Validate business rules before any expensive cryptographic work.
	if err := auth.ValidateRegister(req); err != nil {
		return domain.User{}, "", err
	}

	// Hashing happens here so the repository never sees a plain password.
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hashing failed: %w", err)
	}

	user, err := s.users.Create(req.FullName, req.Email, hashed)
	if err != nil {
		return domain.User{}, "", err // propagates ErrUserAlreadyExists
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return domain.User{}, "", errors.ErrTokenGeneration
	}
	return user, Token(token), nil
}

func (s *AuthService) Login(email, password string) (domain.User, Token, error) {
	user, passwordHash, err := s.users.GetByEmail(email)
	if err != nil {
		// Generic error to prevent user enumeration.
		return domain.User{}, "", errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, passwordHash)
	if err != nil || !match {
		return domain.User{}, "", errors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return domain.User{}, "", errors.ErrTokenGeneration
	}
	return user, Token(token), nil
}

// CheckEmail reports whether an account exists, the first step of the
// forgot-password flow. Unlike Login this is deliberately enumerable: the
// caller is recovering their own account, not probing credentials.
func (s *AuthService) CheckEmail(email string) error {
	if _, _, err := s.users.GetByEmail(email); err != nil {
		return err
	}
	return nil
}

// ResetPassword replaces the stored hash for an account confirmed via
// CheckEmail. The same complexity rules as registration apply.
func (s *AuthService) ResetPassword(req auth.ResetPasswordRequest) error {
	if err := auth.ValidateReset(req); err != nil {
		return err
	}
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("hashing failed: %w", err)
	}
	return s.users.UpdatePassword(req.Email, hashed)
}

// UpdateProfilePic stores the new picture blob and swaps the user's URL.
// The old blob, if any, is deleted best-effort after the metadata write,
// and every live connection learns the new snapshot.
func (s *AuthService) UpdateProfilePic(ctx context.Context, userID, pic string) (domain.User, error) {
	if pic == "" {
		return domain.User{}, errors.ErrEmptyPayload
	}

	previous, err := s.users.GetByID(userID)
	if err != nil {
		return domain.User{}, err
	}

	data, err := media.DecodeDataURI(pic)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", errors.ErrUploadFailed, err)
	}
	url, err := s.uploads.Upload(ctx, data, "")
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", errors.ErrUploadUnavailable, err)
	}

	user, err := s.users.UpdateProfilePic(userID, url)
	if err != nil {
		return domain.User{}, err
	}
	if previous.ProfilePic != "" {
		s.uploads.Delete(ctx, previous.ProfilePic)
	}
	s.broadcaster.ToAll(event.ProfileUpdated{User: user})
	return user, nil
}

// Authenticate resolves a token to a verified userID. Every request and
// websocket connect goes through here; downstream code trusts the result.
func (s *AuthService) Authenticate(token string) (string, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return "", errors.ErrInvalidCredentials
	}
	return claims.UserID, nil
}
