package user

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"hospitalsched/internal/domain/session"
	"hospitalsched/internal/domain/user"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, login, password string) (user.User, error) {
	args := m.Called(ctx, login, password)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, login, password string) (user.User, error) {
	args := m.Called(ctx, login, password)
	return args.Get(0).(user.User), args.Error(1)
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create(ctx context.Context, userID int) (session.Token, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(session.Token), args.Error(1)
}

func (m *MockSessionService) Validate(ctx context.Context, token string) (int, error) {
	args := m.Called(ctx, token)
	return args.Int(0), args.Error(1)
}

func TestHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "created", wantStatus: http.StatusCreated},
		{name: "taken", err: user.ErrAlreadyExists, wantStatus: http.StatusConflict},
		{name: "weak password", err: user.ErrInvalidInput, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockUserService)
			_, api := humatest.New(t)
			NewHandler(svc, new(MockSessionService), slog.Default(), nil).SetupRoutes(api)

			svc.On("Register", mock.Anything, "registrar", "password123").
				Return(user.User{ID: 1, Login: "registrar"}, tt.err)

			resp := api.Post("/user/register", map[string]any{"login": "registrar", "password": "password123"})
			require.Equal(t, tt.wantStatus, resp.Code)

			if tt.err == nil {
				var body StaffAccount
				require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
				assert.Equal(t, 1, body.ID)
				assert.Equal(t, "registrar", body.Login)
				assert.NotContains(t, resp.Body.String(), "password")
			}
		})
	}
}

func TestHandler_Login(t *testing.T) {
	svc := new(MockUserService)
	sess := new(MockSessionService)
	_, api := humatest.New(t)
	NewHandler(svc, sess, slog.Default(), nil).SetupRoutes(api)

	svc.On("Authenticate", mock.Anything, "registrar", "password123").Return(user.User{ID: 4}, nil)
	svc.On("Authenticate", mock.Anything, "registrar", "wrongpass1").Return(user.User{}, user.ErrInvalidAuth)
	expires := time.Date(2024, 4, 11, 22, 0, 0, 0, time.UTC)
	sess.On("Create", mock.Anything, 4).Return(session.Token{Value: "tok", ExpiresAt: expires}, nil)

	resp := api.Post("/user/login", map[string]any{"login": "registrar", "password": "password123"})
	require.Equal(t, http.StatusOK, resp.Code)

	var body SessionToken
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "tok", body.Token)
	assert.True(t, expires.Equal(body.ExpiresAt))

	resp = api.Post("/user/login", map[string]any{"login": "registrar", "password": "wrongpass1"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
