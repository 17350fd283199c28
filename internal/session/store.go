package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/learnsphere/marketplace-companion/internal/models"
	"github.com/learnsphere/marketplace-companion/internal/storage"
)

// keys under which the session is persisted - the serialized identity (with
// the credential embedded) and the raw credential string, always written and
// cleared together
const (
	keyIdentity = "user"
	keyToken    = "token"
)

// ErrNotSignedIn is returned when an operation needs a session and there is none
var ErrNotSignedIn = errors.New("no user is signed in")

// AuthAPI is the slice of the gateway the session store needs
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.AuthPayload, error)
	Signup(ctx context.Context, email, password, name string, role models.Role) (*models.AuthPayload, error)
}

// Store is the single source of truth for "who is signed in". It holds the
// current identity and credential in memory and writes them through to the
// local state file on every change, so a restart never sees half a session.
//
// It's injected everywhere instead of living in a package global, so tests
// can construct a fresh one against an in-memory state store.
type Store struct {
	mu sync.RWMutex

	identity *models.Identity
	token    string

	state storage.Store
	api   AuthAPI
}

// NewStore creates a session store over the given state storage and auth API.
// The session starts anonymous - call Restore to pick up a persisted one.
func NewStore(state storage.Store, api AuthAPI) *Store {
	return &Store{
		state: state,
		api:   api,
	}
}

// Restore loads a previously persisted session, if there is one. Runs once at
// process start. Anything wrong with the persisted state - a missing half,
// unparseable JSON, an expired token - just leaves the session anonymous;
// nothing here is allowed to fail loudly.
func (s *Store) Restore() {
	rawIdentity, identityErr := s.state.Get(keyIdentity)
	rawToken, tokenErr := s.state.Get(keyToken)

	if identityErr != nil || tokenErr != nil {
		if identityErr == nil || tokenErr == nil {
			// exactly one half survived - torn state, clear the leftovers
			log.Println("Warning: persisted session was incomplete, clearing it")
			s.clearPersisted()
		}
		return
	}

	var identity models.Identity
	if err := json.Unmarshal([]byte(rawIdentity), &identity); err != nil {
		log.Printf("Warning: persisted identity was malformed, clearing session: %v", err)
		s.clearPersisted()
		return
	}

	if !identity.Role.Valid() || rawToken == "" {
		log.Println("Warning: persisted session failed sanity checks, clearing it")
		s.clearPersisted()
		return
	}

	if tokenExpired(rawToken) {
		log.Println("Stored credential has expired, starting anonymous")
		s.clearPersisted()
		return
	}

	s.mu.Lock()
	s.identity = &identity
	s.token = rawToken
	s.mu.Unlock()

	log.Printf("Restored session for %s", identity.Email)
}

// Authenticate signs in against the remote auth endpoint. On success the
// identity and credential are committed together (memory and disk); on
// failure nothing changes. Concurrent calls aren't coalesced - whichever
// response lands last wins.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.Identity, error) {
	payload, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	return s.commit(payload)
}

// Register creates an account and signs in with it, same contract as
// Authenticate. The chosen role is only trusted once the server echoes it.
func (s *Store) Register(ctx context.Context, email, password, name string, role models.Role) (*models.Identity, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	payload, err := s.api.Signup(ctx, email, password, name, role)
	if err != nil {
		return nil, fmt.Errorf("signup failed: %w", err)
	}

	return s.commit(payload)
}

// commit stores a fresh identity+credential pair atomically. Persistence
// happens first - if the disk write fails the in-memory session is left
// untouched, so memory and disk can't disagree.
func (s *Store) commit(payload *models.AuthPayload) (*models.Identity, error) {
	identity := payload.User
	identity.Token = payload.Token

	serialized, err := json.Marshal(identity)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize identity: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.state.SetMany(map[string]string{
		keyIdentity: string(serialized),
		keyToken:    payload.Token,
	}); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	s.identity = &identity
	s.token = payload.Token

	log.Printf("Signed in as %s (%s)", identity.Email, identity.Role)
	result := identity
	return &result, nil
}

// Terminate clears the session unconditionally, in memory and on disk.
// Used for explicit logout.
func (s *Store) Terminate() {
	s.mu.Lock()
	s.identity = nil
	s.token = ""
	s.mu.Unlock()

	s.clearPersisted()
	log.Println("Session terminated")
}

// Invalidate tears the session down after the marketplace rejected the
// credential (401). Same effect as Terminate, logged differently so the
// cause is visible.
func (s *Store) Invalidate() {
	s.mu.Lock()
	wasSignedIn := s.identity != nil
	s.identity = nil
	s.token = ""
	s.mu.Unlock()

	s.clearPersisted()
	if wasSignedIn {
		log.Println("Credential rejected by the marketplace, session invalidated")
	}
}

// Current returns a copy of the signed-in identity, or nil when anonymous
func (s *Store) Current() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return nil
	}
	copied := *s.identity
	return &copied
}

// Token returns the current bearer credential, empty when anonymous
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether somebody is signed in. By construction the
// identity and credential are always set and cleared together, so checking
// both here is the invariant, not a guess.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil && s.token != ""
}

func (s *Store) clearPersisted() {
	if err := s.state.Delete(keyIdentity, keyToken); err != nil {
		// nothing sensible to do beyond logging - next restore treats
		// leftovers as torn state and clears again
		log.Printf("Warning: failed to clear persisted session: %v", err)
	}
}

// tokenExpired inspects a JWT credential's exp claim without verifying the
// signature (the client has no key and doesn't need one - the server is the
// security boundary). Opaque non-JWT tokens are kept and left to the server
// to reject.
func tokenExpired(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return false
	}

	return expiry.Before(time.Now())
}
