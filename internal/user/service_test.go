package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u User, passwordHash string) (User, error) {
	args := m.Called(ctx, u, passwordHash)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, string, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.String(1), args.Error(2)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) UpdateProfile(ctx context.Context, id string, p ProfileUpdate) (User, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).(User), args.Error(1)
}

func newTestService(repo Repository) Service {
	return NewService(repo, NewTokenIssuer("testsecret", time.Hour))
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo)

		mockRepo.On("Create", ctx, mock.MatchedBy(func(u User) bool {
			return u.ID != "" && u.Email == "maya@example.com" && u.Role == Seller
		}), mock.AnythingOfType("string")).
			Return(User{ID: "u-1", Name: "Maya", Email: "maya@example.com", Role: Seller}, nil)

		token, u, err := svc.Register(ctx, RegisterInput{
			Name: "Maya", Email: " Maya@Example.com ", Password: "pw", Role: Seller,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "u-1", u.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("DefaultsToCustomer", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo)

		mockRepo.On("Create", ctx, mock.MatchedBy(func(u User) bool {
			return u.Role == Customer
		}), mock.AnythingOfType("string")).
			Return(User{ID: "u-2", Email: "c@example.com", Role: Customer}, nil)

		_, _, err := svc.Register(ctx, RegisterInput{Name: "C", Email: "c@example.com", Password: "pw"})
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("AdminRejected", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo)

		_, _, err := svc.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "pw", Role: Admin})
		assert.ErrorIs(t, err, ErrRoleNotAllowed)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := newTestService(new(MockRepository))

		_, _, err := svc.Register(ctx, RegisterInput{Email: "a@example.com", Password: "pw"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("EmailExists", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo)

		mockRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(User{}, ErrEmailExists)

		_, _, err := svc.Register(ctx, RegisterInput{Name: "M", Email: "m@example.com", Password: "pw"})
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	stored := User{ID: "u-1", Email: "test@example.com", Role: Customer}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo)
		mockRepo.On("FindByEmail", ctx, "test@example.com").Return(stored, hash, nil)

		token, u, err := svc.Login(ctx, "Test@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "u-1", u.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo)
		mockRepo.On("FindByEmail", ctx, "test@example.com").Return(stored, hash, nil)

		_, _, err := svc.Login(ctx, "test@example.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo)
		mockRepo.On("FindByEmail", ctx, "ghost@example.com").Return(User{}, "", ErrUserNotFound)

		_, _, err := svc.Login(ctx, "ghost@example.com", "pw")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("DBError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo)
		dbErr := errors.New("connection refused")
		mockRepo.On("FindByEmail", ctx, "test@example.com").Return(User{}, "", dbErr)

		_, _, err := svc.Login(ctx, "test@example.com", "pw")
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	name := "Maya R."

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo)
		patch := ProfileUpdate{Name: &name}
		mockRepo.On("UpdateProfile", ctx, "u-1", patch).Return(User{ID: "u-1", Name: name}, nil)

		token, u, err := svc.UpdateProfile(ctx, "u-1", patch)
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, name, u.Name)
	})

	t.Run("Empty", func(t *testing.T) {
		svc := newTestService(new(MockRepository))
		_, _, err := svc.UpdateProfile(ctx, "u-1", ProfileUpdate{})
		assert.ErrorIs(t, err, ErrEmptyProfile)
	})
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()
	issuer := NewTokenIssuer("testsecret", time.Hour)
	u := User{ID: "u-9", Email: "x@example.com", Role: Admin}

	mockRepo := new(MockRepository)
	svc := NewService(mockRepo, issuer)
	mockRepo.On("FindByID", ctx, "u-9").Return(u, nil)

	token, err := issuer.Generate(u)
	require.NoError(t, err)

	got, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, Admin, got.Role)

	_, err = svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
