package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// MockRepository is a mock implementation of the Repository interface for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, login, passwordHash string) (User, error) {
	args := m.Called(ctx, login, passwordHash)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByLogin(ctx context.Context, login string) (User, error) {
	args := m.Called(ctx, login)
	return args.Get(0).(User), args.Error(1)
}

func newService(repo Repository) *Service {
	return NewService(repo, NewCredentialsValidator(false), slog.Default())
}

func TestService_Register(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo)

	mockRepo.On("Create", mock.Anything, "registrar", mock.MatchedBy(func(hash string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte("password123")) == nil
	})).Return(User{ID: 123, Login: "registrar"}, nil)

	u, err := service.Register(context.Background(), "registrar", "password123")
	assert.NoError(t, err)
	assert.Equal(t, 123, u.ID)
	assert.Equal(t, "registrar", u.Login)

	mockRepo.AssertExpectations(t)
}

func TestService_Register_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		login    string
		password string
	}{
		{name: "short login", login: "ab", password: "password123"},
		{name: "bad login chars", login: "dr smith", password: "password123"},
		{name: "short password", login: "registrar", password: "p4ss"},
		{name: "no digits", login: "registrar", password: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			service := newService(mockRepo)

			_, err := service.Register(context.Background(), tt.login, tt.password)
			assert.ErrorIs(t, err, ErrInvalidInput)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_Register_RepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newService(mockRepo)

	mockRepo.On("Create", mock.Anything, "registrar", mock.AnythingOfType("string")).Return(User{}, ErrAlreadyExists)

	_, err := service.Register(context.Background(), "registrar", "password123")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestService_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := User{ID: 5, Login: "registrar", Password: string(hash)}

	tests := []struct {
		name     string
		password string
		found    User
		findErr  error
		wantErr  error
	}{
		{name: "success", password: "password123", found: stored},
		{name: "wrong password", password: "password124", found: stored, wantErr: ErrInvalidAuth},
		{name: "unknown user", password: "password123", findErr: ErrNotFound, wantErr: ErrInvalidAuth},
		{name: "database error", password: "password123", findErr: errors.New("conn refused"), wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			service := newService(mockRepo)

			mockRepo.On("FindByLogin", mock.Anything, "registrar").Return(tt.found, tt.findErr)

			u, err := service.Authenticate(context.Background(), "registrar", tt.password)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.findErr != nil:
				assert.ErrorContains(t, err, "conn refused")
			default:
				assert.NoError(t, err)
				assert.Equal(t, 5, u.ID)
			}
		})
	}
}
