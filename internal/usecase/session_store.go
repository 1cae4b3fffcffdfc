package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SessionEventType string

const (
	EventSignedIn       SessionEventType = "signed_in"
	EventSignedOut      SessionEventType = "signed_out"
	EventProfileUpdated SessionEventType = "profile_updated"
)

// SessionEvent is delivered to subscribers after the store has applied it.
type SessionEvent struct {
	Type         SessionEventType
	SessionToken string
	UserID       uuid.UUID
	Identity     *Identity
}

// Identity is the signed-in user as the rest of the application sees it.
type Identity struct {
	UserID  uuid.UUID
	Email   string
	Role    entity.UserRole
	Profile *entity.Profile
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == entity.RoleAdmin
}

type cachedIdentity struct {
	identity  *Identity
	expiresAt time.Time
}

// SessionStore holds the identity of every live session, keyed by session
// token. Entries are loaded on first resolution or on sign-in, replaced when
// the profile changes and dropped on sign-out.
type SessionStore struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time

	mu          sync.RWMutex
	entries     map[string]cachedIdentity
	subscribers map[int]func(SessionEvent)
	nextSubID   int
}

func NewSessionStore(repo *repository.Repository, log *zap.Logger) *SessionStore {
	return &SessionStore{
		repo:        repo,
		log:         log.With(zap.String("service", "session_store")),
		now:         time.Now,
		entries:     make(map[string]cachedIdentity),
		subscribers: make(map[int]func(SessionEvent)),
	}
}

// Subscribe registers fn for every future event. The returned func removes it.
func (s *SessionStore) Subscribe(fn func(SessionEvent)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Resolve returns the identity behind a session token, loading it on first
// use. It returns (nil, nil) when the session is unknown, revoked or expired.
func (s *SessionStore) Resolve(ctx context.Context, sessionToken string) (*Identity, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionToken]
	s.mu.RUnlock()

	if ok {
		if s.now().Before(entry.expiresAt) {
			return entry.identity, nil
		}
		s.forget(sessionToken)
		return nil, nil
	}

	session, err := s.repo.Session.FindValidSession(ctx, sessionToken)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	identity, err := s.loadIdentity(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, nil
	}

	s.store(sessionToken, identity, session.ExpiresAt)
	return identity, nil
}

// SignIn caches the identity for a freshly created session and announces it.
func (s *SessionStore) SignIn(ctx context.Context, session *entity.Session) (*Identity, error) {
	identity, err := s.loadIdentity(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, fmt.Errorf("user %s not found", session.UserID.String())
	}

	token := session.Token.String()
	s.store(token, identity, session.ExpiresAt)
	s.publish(SessionEvent{Type: EventSignedIn, SessionToken: token, UserID: identity.UserID, Identity: identity})
	return identity, nil
}

// SignOut drops the cached identity. Subscribers receive the user id so they
// can clear whatever they hold for that user.
func (s *SessionStore) SignOut(sessionToken string, userID uuid.UUID) {
	s.forget(sessionToken)
	s.publish(SessionEvent{Type: EventSignedOut, SessionToken: sessionToken, UserID: userID})
}

// RefreshProfile reloads the profile of userID into every cached session of that user.
func (s *SessionStore) RefreshProfile(ctx context.Context, userID uuid.UUID) error {
	profile, err := s.repo.Profile.FindByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("refresh profile: %w", err)
	}

	var updated *Identity
	s.mu.Lock()
	for token, entry := range s.entries {
		if entry.identity.UserID != userID {
			continue
		}
		next := *entry.identity
		next.Profile = profile
		s.entries[token] = cachedIdentity{identity: &next, expiresAt: entry.expiresAt}
		updated = &next
	}
	s.mu.Unlock()

	if updated != nil {
		s.publish(SessionEvent{Type: EventProfileUpdated, UserID: userID, Identity: updated})
	}
	return nil
}

func (s *SessionStore) loadIdentity(ctx context.Context, userID uuid.UUID) (*Identity, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load identity: %w", err)
	}
	if user == nil {
		return nil, nil
	}

	identity := &Identity{UserID: user.ID, Email: user.Email}

	// role and profile failures leave the field empty instead of failing the session
	roles, err := s.repo.Role.FindRolesByUserID(ctx, userID)
	if err != nil {
		s.log.Warn("Failed to load roles", zap.Error(err), zap.String("user_id", userID.String()))
	} else {
		identity.Role = entity.DeriveRole(roles)
	}

	profile, err := s.repo.Profile.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Warn("Failed to load profile", zap.Error(err), zap.String("user_id", userID.String()))
	} else {
		identity.Profile = profile
	}

	return identity, nil
}

func (s *SessionStore) store(token string, identity *Identity, expiresAt time.Time) {
	s.mu.Lock()
	s.entries[token] = cachedIdentity{identity: identity, expiresAt: expiresAt}
	s.mu.Unlock()
}

func (s *SessionStore) forget(token string) {
	s.mu.Lock()
	delete(s.entries, token)
	s.mu.Unlock()
}

func (s *SessionStore) publish(event SessionEvent) {
	s.mu.RLock()
	subs := make([]func(SessionEvent), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(event)
	}
}
