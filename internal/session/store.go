// Package session holds per-caller state for the storefront: one backend
// client bound to the caller's identity, plus the session-scoped cart engine,
// catalog cache, checkout orchestrator and account service. Sessions are
// keyed by opaque uuid tokens and are never shared across identities.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mobimart/storefront/internal/account"
	"github.com/mobimart/storefront/internal/backend"
	"github.com/mobimart/storefront/internal/cart"
	"github.com/mobimart/storefront/internal/catalog"
	"github.com/mobimart/storefront/internal/checkout"
)

// ClientFactory builds a backend client bound to one caller identity. An
// empty identity is the anonymous caller.
type ClientFactory func(identity string) backend.Client

// Session is the per-caller unit of state. Cart mutations are serialized by
// the engine's own mutex; caches inside Catalog belong to this session only.
type Session struct {
	Token    string
	Identity string
	LastSeen time.Time

	Client   backend.Client
	Cart     *cart.Engine
	Catalog  *catalog.Service
	Checkout *checkout.Orchestrator
	Account  *account.Service
}

// Anonymous reports whether the session belongs to an unauthenticated caller.
func (s *Session) Anonymous() bool { return s.Identity == backend.Anonymous }

// Warmup prefetches role, profile and catalog concurrently so the first page
// render does not pay three sequential round trips. Failures are returned
// but leave the session usable; reads will simply refetch.
func (s *Session) Warmup(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.Client.GetCallerUserRole(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.Account.Profile(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.Catalog.Products(ctx)
		return err
	})
	return g.Wait()
}

// Store issues and resolves sessions.
type Store struct {
	factory ClientFactory
	ttl     time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
	locks    map[string]*sync.Mutex
}

// NewStore creates a session store. ttl bounds how long an idle session
// stays resolvable; zero means no expiry.
func NewStore(factory ClientFactory, ttl time.Duration) *Store {
	return &Store{
		factory:  factory,
		ttl:      ttl,
		sessions: make(map[string]*Session),
		locks:    make(map[string]*sync.Mutex),
	}
}

// cartLockFor returns the identity's cart mutation lock. The remote cart is
// owned by the identity, not the session, so two sessions of the same
// identity (including every anonymous session) must serialize their
// clear-then-replay sequences on one mutex. Locks outlive their sessions;
// the remote cart does too.
func (st *Store) cartLockFor(identity string) *sync.Mutex {
	st.mu.Lock()
	defer st.mu.Unlock()

	l, ok := st.locks[identity]
	if !ok {
		l = &sync.Mutex{}
		st.locks[identity] = l
	}
	return l
}

// newSession wires the per-session services around one backend client.
func (st *Store) newSession(token, identity string) *Session {
	client := st.factory(identity)
	cat := catalog.NewService(client)
	return &Session{
		Token:    token,
		Identity: identity,
		LastSeen: time.Now(),
		Client:   client,
		Cart:     cart.NewEngine(client, cat, st.cartLockFor(identity)),
		Catalog:  cat,
		Checkout: checkout.NewOrchestrator(client),
		Account:  account.NewService(client),
	}
}

// Create registers a session for the given identity and returns it. The
// identity comes from the external identity provider; the store does not
// verify it beyond binding the backend client to it.
func (st *Store) Create(identity string) *Session {
	s := st.newSession(uuid.NewString(), identity)

	st.mu.Lock()
	defer st.mu.Unlock()
	st.purgeLocked()
	st.sessions[s.Token] = s
	return s
}

// Get resolves a session token. Expired or unknown tokens return false.
func (st *Store) Get(token string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[token]
	if !ok {
		return nil, false
	}
	if st.expired(s) {
		delete(st.sessions, token)
		return nil, false
	}
	s.LastSeen = time.Now()
	return s, true
}

// Anonymous returns a fresh unauthenticated session. It is not registered in
// the store; anonymous state lives only for the request that built it.
func (st *Store) Anonymous() *Session {
	return st.newSession("", backend.Anonymous)
}

// Delete removes a session, e.g. on logout.
func (st *Store) Delete(token string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, token)
}

func (st *Store) expired(s *Session) bool {
	return st.ttl > 0 && time.Since(s.LastSeen) > st.ttl
}

// purgeLocked drops expired sessions. Caller holds mu.
func (st *Store) purgeLocked() {
	for token, s := range st.sessions {
		if st.expired(s) {
			delete(st.sessions, token)
		}
	}
}
