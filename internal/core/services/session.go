package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/karmicdd/karmicdd-cli/internal/core/domain"
	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driven"
	"github.com/karmicdd/karmicdd-cli/internal/core/ports/driving"
	"github.com/karmicdd/karmicdd-cli/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionSource resolves the active session.
// *SessionService satisfies it.
type SessionSource interface {
	Current(ctx context.Context) (*domain.Session, error)
}

// SessionService resolves the logged-in user from the stored token.
// The resolved session is cached until the token changes.
type SessionService struct {
	tokens   driven.TokenStore
	profiles driven.ProfileAPI
	decoder  driven.TokenDecoder
	kv       driven.KVStore

	mu      sync.Mutex
	current *domain.Session
}

// NewSessionService creates a new session service.
// decoder is optional; without it an unreachable profile endpoint is an error.
func NewSessionService(
	tokens driven.TokenStore,
	profiles driven.ProfileAPI,
	decoder driven.TokenDecoder,
	kv driven.KVStore,
) *SessionService {
	return &SessionService{
		tokens:   tokens,
		profiles: profiles,
		decoder:  decoder,
		kv:       kv,
	}
}

// Login stores token and resolves its profile. The token is removed
// again when the server rejects it.
func (s *SessionService) Login(ctx context.Context, token string) (*domain.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tokens.SetToken(token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	s.current = nil

	sess, err := s.resolve(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrInvalidInput) {
			_ = s.tokens.ClearToken()
		}
		return nil, err
	}
	s.current = sess
	return copySession(sess), nil
}

// Logout clears the token and the user's session selections.
// Bookmarks stay in the user's namespace.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := s.knownUserID()
	if userID != "" && s.kv != nil {
		for _, key := range domain.SessionKeys() {
			if err := s.kv.Delete(ctx, userID, key); err != nil {
				return fmt.Errorf("clear %s: %w", key, err)
			}
		}
	}

	s.current = nil
	if err := s.tokens.ClearToken(); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Current resolves the active session.
func (s *SessionService) Current(ctx context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := s.tokens.Token()
	if token == "" {
		s.current = nil
		return nil, domain.ErrNoSession
	}
	if s.current != nil && s.current.Token == token {
		return copySession(s.current), nil
	}

	sess, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	s.current = sess
	return copySession(sess), nil
}

// Remember stores a session selection in the user's namespace.
func (s *SessionService) Remember(ctx context.Context, key, value string) error {
	if !slices.Contains(domain.SessionKeys(), key) {
		return fmt.Errorf("%w: unknown session key %q", domain.ErrInvalidInput, key)
	}
	sess, err := s.Current(ctx)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, sess.UserID(), key, value); err != nil {
		return fmt.Errorf("remember %s: %w", key, err)
	}
	return nil
}

// Recall reads a session selection from the user's namespace.
func (s *SessionService) Recall(ctx context.Context, key string) (string, bool, error) {
	if !slices.Contains(domain.SessionKeys(), key) {
		return "", false, fmt.Errorf("%w: unknown session key %q", domain.ErrInvalidInput, key)
	}
	sess, err := s.Current(ctx)
	if err != nil {
		return "", false, err
	}
	value, ok, err := s.kv.Get(ctx, sess.UserID(), key)
	if err != nil {
		return "", false, fmt.Errorf("recall %s: %w", key, err)
	}
	return value, ok, nil
}

// resolve asks the profile endpoint who owns token. When the endpoint
// cannot be reached the token's own claims are used instead.
// Caller must hold mu.
func (s *SessionService) resolve(ctx context.Context, token string) (*domain.Session, error) {
	profile, err := s.profiles.UserProfile(ctx)
	offline := false
	if err != nil {
		if !s.canUseClaims(err) {
			return nil, fmt.Errorf("resolve session: %w", err)
		}
		logger.Named("session").Warn("profile endpoint unreachable, using token claims", zap.Error(err))
		claims, derr := s.decoder.Decode(token)
		if derr != nil {
			return nil, fmt.Errorf("resolve session: %w", errors.Join(err, derr))
		}
		profile = claims
		offline = true
	}

	if !profile.Role.IsValid() && s.decoder != nil {
		if claims, derr := s.decoder.Decode(token); derr == nil && claims.Role.IsValid() {
			profile.Role = claims.Role
		}
	}
	if !profile.Role.IsValid() {
		return nil, fmt.Errorf("%w: profile has no role", domain.ErrInvalidInput)
	}
	if profile.UserID == "" {
		return nil, fmt.Errorf("%w: profile has no user id", domain.ErrInvalidInput)
	}

	logger.Debug("Session resolved: user %s (%s), offline=%t", profile.UserID, profile.Role, offline)
	return &domain.Session{Token: token, Profile: *profile, Offline: offline}, nil
}

func (s *SessionService) canUseClaims(err error) bool {
	if s.decoder == nil {
		return false
	}
	return errors.Is(err, domain.ErrTransport) || errors.Is(err, domain.ErrServer)
}

// knownUserID returns the user id of the cached session or, failing
// that, of the stored token's claims. Caller must hold mu.
func (s *SessionService) knownUserID() string {
	if s.current != nil {
		return s.current.UserID()
	}
	token := s.tokens.Token()
	if token == "" || s.decoder == nil {
		return ""
	}
	claims, err := s.decoder.Decode(token)
	if err != nil {
		return ""
	}
	return claims.UserID
}

func copySession(s *domain.Session) *domain.Session {
	c := *s
	return &c
}
