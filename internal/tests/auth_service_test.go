package tests

import (
	"context"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bravonest/internal/domain"
	"bravonest/internal/mocks"
	"bravonest/internal/service"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "user-1", "email": "5551234567@bravonest.com", "exp": float64(exp.Unix())}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	return token
}

func TestAuthService_InitialStateIsUnknown(t *testing.T) {
	svc := service.NewAuthService(new(mocks.AuthAPI))

	assert.Equal(t, service.StateUnknown, svc.State())
	_, ok := svc.CurrentUser()
	assert.False(t, ok)
	_, ok = svc.CurrentUserID()
	assert.False(t, ok)
	_, ok = svc.AccessToken()
	assert.False(t, ok)
}

func TestAuthService_Resume(t *testing.T) {
	tests := []struct {
		name      string
		token     func(t *testing.T) string
		mockUser  *domain.User
		mockErr   error
		wantState service.AuthState
		wantErr   bool
		wantCall  bool
	}{
		{
			name:      "empty token resolves signed out",
			token:     func(t *testing.T) string { return "" },
			wantState: service.StateUnauthenticated,
		},
		{
			name:      "malformed token resolves signed out",
			token:     func(t *testing.T) string { return "not-a-jwt" },
			wantState: service.StateUnauthenticated,
			wantErr:   true,
		},
		{
			name:      "expired token resolves signed out",
			token:     func(t *testing.T) string { return signedToken(t, time.Now().Add(-time.Hour)) },
			wantState: service.StateUnauthenticated,
			wantErr:   true,
		},
		{
			name:      "live token resolves signed in",
			token:     func(t *testing.T) string { return signedToken(t, time.Now().Add(time.Hour)) },
			mockUser:  &domain.User{ID: "user-1", Email: "5551234567@bravonest.com"},
			wantState: service.StateAuthenticated,
			wantCall:  true,
		},
		{
			name:      "backend rejects token",
			token:     func(t *testing.T) string { return signedToken(t, time.Now().Add(time.Hour)) },
			mockErr:   domain.E(domain.KindUnauthenticated, "GetUser", "session expired, please sign in again", nil),
			wantState: service.StateUnauthenticated,
			wantErr:   true,
			wantCall:  true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockAPI := new(mocks.AuthAPI)
			svc := service.NewAuthService(mockAPI)

			token := testCase.token(t)
			if testCase.wantCall {
				mockAPI.On("GetUser", mock.Anything, token).Return(testCase.mockUser, testCase.mockErr).Once()
			}

			err := svc.Resume(context.Background(), token)

			if testCase.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, testCase.wantState, svc.State())
			if testCase.wantState == service.StateAuthenticated {
				id, ok := svc.CurrentUserID()
				assert.True(t, ok)
				assert.Equal(t, "user-1", id)
				got, ok := svc.AccessToken()
				assert.True(t, ok)
				assert.Equal(t, token, got)
			}
			mockAPI.AssertExpectations(t)
		})
	}
}

func TestAuthService_SignIn(t *testing.T) {
	tests := []struct {
		name      string
		mockErr   error
		wantState service.AuthState
		wantErr   bool
	}{
		{
			name:      "success",
			wantState: service.StateAuthenticated,
		},
		{
			name:      "bad credentials",
			mockErr:   domain.E(domain.KindUnauthenticated, "SignIn", "invalid phone number or password", nil),
			wantState: service.StateUnauthenticated,
			wantErr:   true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockAPI := new(mocks.AuthAPI)
			svc := service.NewAuthService(mockAPI)

			var session *domain.Session
			if testCase.mockErr == nil {
				session = &domain.Session{
					AccessToken: "token-1",
					User:        domain.User{ID: "user-1", Email: "5551234567@bravonest.com"},
				}
			}
			// The phone number is cleaned and mapped to the synthetic email.
			mockAPI.On("SignInWithPassword", mock.Anything, "5551234567@bravonest.com", "hunter22").
				Return(session, testCase.mockErr).Once()

			err := svc.SignIn(context.Background(), "(555) 123-4567", "hunter22")

			if testCase.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				user, ok := svc.CurrentUser()
				assert.True(t, ok)
				assert.Equal(t, "user-1", user.ID)
			}
			assert.Equal(t, testCase.wantState, svc.State())
			mockAPI.AssertExpectations(t)
		})
	}
}

func TestAuthService_SignUpConfirmedWritesProfile(t *testing.T) {
	mockAPI := new(mocks.AuthAPI)
	mockProfiles := new(mocks.ProfileRepository)
	svc := service.NewAuthService(mockAPI)
	svc.SetProfileRepository(mockProfiles)

	session := &domain.Session{
		AccessToken: "token-1",
		User: domain.User{
			ID:               "user-1",
			Email:            "5551234567@bravonest.com",
			EmailConfirmedAt: time.Now().Format(time.RFC3339),
		},
	}
	metadata := map[string]string{"name": "Sam", "phone": "5551234567"}
	mockAPI.On("SignUp", mock.Anything, "5551234567@bravonest.com", "hunter22", metadata).Return(session, nil).Once()

	profileOK := mock.MatchedBy(func(p domain.UserProfile) bool {
		return p.ID == "user-1" && p.Name == "Sam" && p.Phone == "5551234567"
	})
	mockProfiles.On("UpsertProfile", mock.Anything, profileOK).
		Return(&domain.UserProfile{ID: "user-1"}, nil).Once()

	err := svc.SignUp(context.Background(), "(555) 123-4567", "hunter22", "Sam")

	assert.NoError(t, err)
	assert.Equal(t, service.StateAuthenticated, svc.State())
	mockAPI.AssertExpectations(t)
	mockProfiles.AssertExpectations(t)
}

func TestAuthService_SignUpProfileFailureIsSwallowed(t *testing.T) {
	mockAPI := new(mocks.AuthAPI)
	mockProfiles := new(mocks.ProfileRepository)
	svc := service.NewAuthService(mockAPI)
	svc.SetProfileRepository(mockProfiles)

	session := &domain.Session{
		AccessToken: "token-1",
		User: domain.User{
			ID:               "user-1",
			EmailConfirmedAt: time.Now().Format(time.RFC3339),
		},
	}
	mockAPI.On("SignUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(session, nil).Once()
	mockProfiles.On("UpsertProfile", mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

	err := svc.SignUp(context.Background(), "5551234567", "hunter22", "Sam")

	// The account stands even though the profile write failed.
	assert.NoError(t, err)
	assert.Equal(t, service.StateAuthenticated, svc.State())
	mockProfiles.AssertExpectations(t)
}

func TestAuthService_SignUpPendingConfirmation(t *testing.T) {
	mockAPI := new(mocks.AuthAPI)
	mockProfiles := new(mocks.ProfileRepository)
	svc := service.NewAuthService(mockAPI)
	svc.SetProfileRepository(mockProfiles)

	// No session token and no confirmation timestamp yet.
	session := &domain.Session{User: domain.User{ID: "user-1"}}
	mockAPI.On("SignUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(session, nil).Once()

	err := svc.SignUp(context.Background(), "5551234567", "hunter22", "Sam")

	assert.NoError(t, err)
	assert.Equal(t, service.StateUnauthenticated, svc.State())
	mockProfiles.AssertNotCalled(t, "UpsertProfile", mock.Anything, mock.Anything)
}

func TestAuthService_SignOut(t *testing.T) {
	mockAPI := new(mocks.AuthAPI)
	svc := service.NewAuthService(mockAPI)

	session := &domain.Session{AccessToken: "token-1", User: domain.User{ID: "user-1"}}
	mockAPI.On("SignInWithPassword", mock.Anything, mock.Anything, mock.Anything).Return(session, nil).Once()
	mockAPI.On("SignOut", mock.Anything, "token-1").Return(nil).Once()

	assert.NoError(t, svc.SignIn(context.Background(), "5551234567", "hunter22"))
	assert.NoError(t, svc.SignOut(context.Background()))

	assert.Equal(t, service.StateUnauthenticated, svc.State())
	_, ok := svc.AccessToken()
	assert.False(t, ok)
	mockAPI.AssertExpectations(t)
}

func TestAuthService_SignOutWhileSignedOutSkipsBackend(t *testing.T) {
	mockAPI := new(mocks.AuthAPI)
	svc := service.NewAuthService(mockAPI)

	assert.NoError(t, svc.SignOut(context.Background()))

	assert.Equal(t, service.StateUnauthenticated, svc.State())
	mockAPI.AssertNotCalled(t, "SignOut", mock.Anything, mock.Anything)
}

func TestAuthService_OnChange(t *testing.T) {
	mockAPI := new(mocks.AuthAPI)
	svc := service.NewAuthService(mockAPI)

	session := &domain.Session{AccessToken: "token-1", User: domain.User{ID: "user-1"}}
	mockAPI.On("SignInWithPassword", mock.Anything, mock.Anything, mock.Anything).Return(session, nil)
	mockAPI.On("SignOut", mock.Anything, "token-1").Return(nil)

	var states []service.AuthState
	unsubscribe := svc.OnChange(func(state service.AuthState, user *domain.User) {
		states = append(states, state)
	})

	assert.NoError(t, svc.SignIn(context.Background(), "5551234567", "hunter22"))
	assert.NoError(t, svc.SignOut(context.Background()))
	assert.Equal(t, []service.AuthState{service.StateAuthenticated, service.StateUnauthenticated}, states)

	// After unsubscribing no further notifications arrive.
	unsubscribe()
	assert.NoError(t, svc.SignIn(context.Background(), "5551234567", "hunter22"))
	assert.Len(t, states, 2)
}
