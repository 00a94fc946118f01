package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// The same message is returned for an unknown email and a wrong password so
// responses do not reveal which accounts exist.
const loginFailedMessage = "incorrect email or password"

// TokenPair carries a freshly issued access and refresh token along with
// their expirations.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// Sessions orchestrates login, logout, refresh and current-user resolution by
// composing the credential verifier, the token codec and the denylist.
type Sessions struct {
	store    Store
	codec    *Codec
	denylist Denylist
}

// NewSessions constructs Sessions; all collaborators are required.
func NewSessions(store Store, codec *Codec, denylist Denylist) (*Sessions, error) {
	if store == nil {
		return nil, errors.New("auth: store is required")
	}
	if codec == nil {
		return nil, errors.New("auth: codec is required")
	}
	if denylist == nil {
		return nil, errors.New("auth: denylist is required")
	}
	return &Sessions{store: store, codec: codec, denylist: denylist}, nil
}

// Login validates credentials and issues a fresh token pair.
func (s *Sessions) Login(ctx context.Context, email, password string) (TokenPair, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return TokenPair{}, Unauthorized(loginFailedMessage)
	}
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		if KindOf(err) == KindNotFound {
			return TokenPair{}, Unauthorized(loginFailedMessage)
		}
		return TokenPair{}, err
	}
	if err := VerifyPassword(user.PasswordHash, password); err != nil {
		return TokenPair{}, Unauthorized(loginFailedMessage)
	}
	return s.mint(user.ID)
}

// Refresh exchanges a valid, unrevoked refresh token for a brand-new pair.
// The presented token stays valid until its own expiry or an explicit logout.
func (s *Sessions) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.decodeRefresh(refreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("denylist lookup: %w", err)
	}
	if revoked {
		return TokenPair{}, Unauthorized("refresh token revoked")
	}
	return s.mint(claims.Subject)
}

// Logout revokes the refresh token's id until the token's natural expiry.
// Revoking an already-revoked id is harmless, so logout is idempotent as
// long as the token still decodes.
func (s *Sessions) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.decodeRefresh(refreshToken)
	if err != nil {
		return err
	}
	if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("denylist revoke: %w", err)
	}
	return nil
}

// CurrentUser resolves the subject of an access token. A subject that no
// longer exists surfaces as Unauthorized, never NotFound, so token holders
// cannot probe for deleted accounts.
func (s *Sessions) CurrentUser(ctx context.Context, accessToken string) (User, error) {
	claims, err := s.codec.Decode(accessToken)
	if err != nil {
		return User{}, err
	}
	if claims.TokenType != TokenTypeAccess {
		return User{}, ErrTokenInvalid
	}
	user, err := s.store.FindUserByID(ctx, claims.Subject)
	if err != nil {
		if KindOf(err) == KindNotFound {
			return User{}, ErrTokenInvalid
		}
		return User{}, err
	}
	return user, nil
}

func (s *Sessions) decodeRefresh(refreshToken string) (*Claims, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, Unauthorized("no refresh token")
	}
	claims, err := s.codec.Decode(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeRefresh || claims.ID == "" || claims.ExpiresAt == nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (s *Sessions) mint(subject string) (TokenPair, error) {
	access, accessExp, err := s.codec.IssueAccess(subject)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, refreshExp, err := s.codec.IssueRefresh(subject)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}
