package services

import (
	"errors"

	"github.com/lukasmoe/authgate/internal/auth"
	"github.com/lukasmoe/authgate/internal/models"
	"github.com/lukasmoe/authgate/internal/store"
	"gorm.io/gorm"
)

// TokenPair bundles the signed access token with the opaque refresh token
// minted alongside it at login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// SessionService orchestrates the token lifecycle: registration and
// credential checks, access-token minting, and issuance/revocation of
// refresh tokens. All collaborators are injected at construction.
type SessionService struct {
	users  *store.CredentialStore
	tokens *store.RefreshTokenStore
	hasher *auth.PasswordHasher
	codec  *auth.TokenCodec
}

func NewSessionService(users *store.CredentialStore, tokens *store.RefreshTokenStore, hasher *auth.PasswordHasher, codec *auth.TokenCodec) *SessionService {
	return &SessionService{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		codec:  codec,
	}
}

// Register creates a new account. It does not log the user in.
func (s *SessionService) Register(email, password string) (*models.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(email, hash)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and, on success, mints an access token and
// persists a new refresh token. Unknown email and wrong password return
// the same error; the bcrypt comparison still runs in the unknown-email
// case so the two paths cost the same.
func (s *SessionService) Login(email, password string) (*TokenPair, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Burn a comparison against a throwaway hash.
			s.hasher.Verify(password, dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.codec.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh validates the opaque token against the store and mints a fresh
// access token. The refresh token is NOT rotated: the same value stays
// valid until its original expiry or an explicit logout.
func (s *SessionService) Refresh(refreshToken string) (string, error) {
	record, err := s.tokens.FindValid(refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}

	user, err := s.users.FindByID(record.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	return s.codec.Issue(user.ID, user.Email)
}

// Logout revokes the refresh token. It is idempotent and succeeds even
// for unknown or already-revoked tokens. Any access token issued earlier
// stays valid until its natural expiry.
func (s *SessionService) Logout(refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.tokens.Revoke(refreshToken)
}

// LogoutAll revokes every live refresh token for the user. Part of the
// core contract ("log out everywhere") though no route exposes it yet.
func (s *SessionService) LogoutAll(userID uint) error {
	return s.tokens.RevokeAllForUser(userID)
}

// CurrentUser resolves the user behind verified access-token claims.
func (s *SessionService) CurrentUser(userID uint) (*models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// dummyHash is a bcrypt hash of an unguessable value, used to equalize
// login timing when the email is unknown.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
