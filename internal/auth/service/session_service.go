package service

import (
	"context"
	"log"
	"sync"

	"github.com/jobnav-app/jobnav-backend/internal/auth/domain"
	"github.com/jobnav-app/jobnav-backend/internal/auth/identity"
)

// IdentityClient is the credential-exchange surface of the identity
// provider, satisfied by identity.Client.
type IdentityClient interface {
	SignUp(ctx context.Context, email, password string) (*identity.Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*identity.Session, error)
	SignInWithCustomToken(ctx context.Context, token string) (*identity.Session, error)
}

// TokenRevoker invalidates a principal's refresh tokens on sign-out.
// Satisfied by the Firebase admin *auth.Client; nil disables revocation.
type TokenRevoker interface {
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// SessionService tracks the signed-in principal and notifies watchers on
// every session change, including the initial state and the optional
// bootstrap credential exchange. At most one authentication call runs at a
// time; duplicates are rejected while the busy flag is set.
type SessionService struct {
	idp     IdentityClient
	revoker TokenRevoker

	mu          sync.Mutex
	busy        bool
	current     *domain.Principal
	session     *identity.Session
	watchers    map[int]chan *domain.Principal
	nextWatcher int
}

func NewSessionService(idp IdentityClient, revoker TokenRevoker) *SessionService {
	return &SessionService{
		idp:      idp,
		revoker:  revoker,
		watchers: make(map[int]chan *domain.Principal),
	}
}

// Bootstrap performs the optional one-shot custom-token exchange at startup
// and always delivers the resulting session state to watchers. A failed
// exchange leaves the service signed out; it is never fatal.
func (s *SessionService) Bootstrap(ctx context.Context, customToken string) {
	if customToken == "" {
		s.notify()
		return
	}

	session, err := s.idp.SignInWithCustomToken(ctx, customToken)
	if err != nil {
		log.Printf("[warn] operation=bootstrap_session error=%v", err)
		s.notify()
		return
	}
	s.setSession(session)
}

// SignUp creates an account and returns the credential bundle produced by
// this exchange. Callers must respond with the returned bundle, never with
// the service's current session, which may already belong to a later
// exchange. The principal also flows to watchers.
func (s *SessionService) SignUp(ctx context.Context, email, password string) (*identity.Session, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	session, err := s.idp.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.setSession(session)
	return session, nil
}

// SignIn exchanges credentials for a session. Same contract as SignUp: the
// returned bundle is the one this call produced.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (*identity.Session, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	session, err := s.idp.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.setSession(session)
	return session, nil
}

// SignOut clears the current principal and best-effort revokes its refresh
// tokens.
func (s *SessionService) SignOut(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	s.mu.Lock()
	uid := ""
	if s.current != nil {
		uid = s.current.UID
	}
	s.current = nil
	s.session = nil
	s.mu.Unlock()

	if uid != "" && s.revoker != nil {
		if err := s.revoker.RevokeRefreshTokens(ctx, uid); err != nil {
			log.Printf("[warn] operation=revoke_tokens uid=%s error=%v", uid, err)
		}
	}

	s.notify()
	return nil
}

// Current returns the signed-in principal, or nil when signed out.
func (s *SessionService) Current() *domain.Principal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	p := *s.current
	return &p
}

// Session returns the provider credential bundle for the signed-in
// principal, or nil.
func (s *SessionService) Session() *identity.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	sess := *s.session
	return &sess
}

// Busy reports whether an authentication call is in flight. Consumers must
// disable duplicate submissions while it is set.
func (s *SessionService) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Watch subscribes to session changes. The current principal (or nil) is
// delivered immediately, then on every change; only the latest value is
// retained for a slow consumer. The returned func cancels the subscription.
func (s *SessionService) Watch() (<-chan *domain.Principal, func()) {
	ch := make(chan *domain.Principal, 1)

	s.mu.Lock()
	id := s.nextWatcher
	s.nextWatcher++
	s.watchers[id] = ch
	ch <- s.current
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if w, ok := s.watchers[id]; ok {
			delete(s.watchers, id)
			close(w)
		}
	}
	return ch, cancel
}

func (s *SessionService) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return domain.ErrAuthInProgress
	}
	s.busy = true
	return nil
}

func (s *SessionService) end() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

func (s *SessionService) setSession(session *identity.Session) {
	s.mu.Lock()
	s.session = session
	s.current = &domain.Principal{UID: session.UID, Email: session.Email}
	s.mu.Unlock()
	s.notify()
}

func (s *SessionService) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.watchers {
		select {
		case <-ch:
		default:
		}
		ch <- s.current
	}
}
