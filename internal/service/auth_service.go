package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"

	"bravonest/internal/domain"
)

// AuthState is the session lifecycle state.
type AuthState int

const (
	// StateUnknown holds until the first resolution against the backend.
	StateUnknown AuthState = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s AuthState) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// AuthService holds the current identity and drives sign-in, sign-up and
// sign-out against the auth backend. State changes are mirrored to
// subscribers registered with OnChange.
type AuthService struct {
	api      AuthAPI
	profiles ProfileRepository

	mu      sync.Mutex
	state   AuthState
	session *domain.Session
	nextSub int
	subs    map[int]func(AuthState, *domain.User)
}

func NewAuthService(api AuthAPI) *AuthService {
	return &AuthService{
		api:   api,
		state: StateUnknown,
		subs:  make(map[int]func(AuthState, *domain.User)),
	}
}

// SetProfileRepository wires the repository used for the best-effort profile
// write after sign-up. Set after construction because the data client itself
// needs this service as its token source.
func (s *AuthService) SetProfileRepository(repo ProfileRepository) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = repo
}

// State returns the current session state.
func (s *AuthService) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentUser returns the signed-in user, if any.
func (s *AuthService) CurrentUser() (*domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, false
	}
	user := s.session.User
	return &user, true
}

// CurrentUserID implements Identity.
func (s *AuthService) CurrentUserID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return "", false
	}
	return s.session.User.ID, true
}

// AccessToken implements the token source consumed by the data client.
func (s *AuthService) AccessToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil || s.session.AccessToken == "" {
		return "", false
	}
	return s.session.AccessToken, true
}

// OnChange registers a listener for state transitions and returns an
// unsubscribe function.
func (s *AuthService) OnChange(fn func(AuthState, *domain.User)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *AuthService) setState(state AuthState, session *domain.Session) {
	s.mu.Lock()
	s.state = state
	s.session = session
	var user *domain.User
	if session != nil {
		u := session.User
		user = &u
	}
	listeners := make([]func(AuthState, *domain.User), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(state, user)
	}
}

// Resume resolves the initial Unknown state from a previously issued access
// token. An empty or expired token resolves to Unauthenticated.
func (s *AuthService) Resume(ctx context.Context, token string) error {
	if token == "" {
		s.setState(StateUnauthenticated, nil)
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		s.setState(StateUnauthenticated, nil)
		return domain.E(domain.KindUnauthenticated, "Resume", "invalid session token", err)
	}
	if exp, ok := claims["exp"].(float64); ok && time.Now().After(time.Unix(int64(exp), 0)) {
		s.setState(StateUnauthenticated, nil)
		return domain.E(domain.KindUnauthenticated, "Resume", "session expired, please sign in again", nil)
	}

	user, err := s.api.GetUser(ctx, token)
	if err != nil {
		s.setState(StateUnauthenticated, nil)
		return err
	}

	session := &domain.Session{AccessToken: token, User: *user}
	if exp, ok := claims["exp"].(float64); ok {
		session.ExpiresAt = time.Unix(int64(exp), 0)
	}
	s.setState(StateAuthenticated, session)
	return nil
}

// SignIn exchanges the phone-derived identifier and password for a session.
func (s *AuthService) SignIn(ctx context.Context, phone, password string) error {
	session, err := s.api.SignInWithPassword(ctx, PhoneToEmail(phone), password)
	if err != nil {
		s.setState(StateUnauthenticated, nil)
		return err
	}
	s.setState(StateAuthenticated, session)
	return nil
}

// SignUp registers a new identity. When the backend reports the identity as
// already confirmed, the profile row is written best-effort: a failure there
// is logged and swallowed, the account itself is not rolled back.
func (s *AuthService) SignUp(ctx context.Context, phone, password, name string) error {
	cleaned := CleanPhone(phone)
	metadata := map[string]string{"name": name, "phone": cleaned}

	session, err := s.api.SignUp(ctx, PhoneToEmail(phone), password, metadata)
	if err != nil {
		s.setState(StateUnauthenticated, nil)
		return err
	}

	if session.AccessToken != "" {
		s.setState(StateAuthenticated, session)
	} else {
		s.setState(StateUnauthenticated, nil)
	}

	// Profile write happens after the state change so the data client
	// already carries the fresh token.
	s.mu.Lock()
	profiles := s.profiles
	s.mu.Unlock()
	if profiles != nil && session.User.ID != "" && session.User.EmailConfirmedAt != "" {
		profile := domain.UserProfile{ID: session.User.ID, Name: name, Phone: cleaned}
		if _, err := profiles.UpsertProfile(ctx, profile); err != nil {
			log.Printf("[auth] profile creation failed after sign-up, account kept: %v", err)
		}
	}
	return nil
}

// SignOut clears the local session and revokes it on the backend.
func (s *AuthService) SignOut(ctx context.Context) error {
	s.mu.Lock()
	var token string
	if s.session != nil {
		token = s.session.AccessToken
	}
	s.mu.Unlock()

	s.setState(StateUnauthenticated, nil)

	if token == "" {
		return nil
	}
	return s.api.SignOut(ctx, token)
}

var _ Identity = (*AuthService)(nil)
