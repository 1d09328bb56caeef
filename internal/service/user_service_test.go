package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/trivial-api/internal/domain/entity"
	apperrors "github.com/yourusername/trivial-api/internal/pkg/errors"
)

// MockUserRepoForUserService реализует repository.UserRepository
type MockUserRepoForUserService struct {
	mock.Mock
}

func (m *MockUserRepoForUserService) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepoForUserService) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepoForUserService) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepoForUserService) RecordRoundResult(userID uint, score int) error {
	args := m.Called(userID, score)
	return args.Error(0)
}

func TestUserService_CreateUser_DerivesUsername(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepoForUserService)
	mockRepo.On("GetByEmail", "sarah@example.com").Return(nil, apperrors.ErrNotFound)
	mockRepo.On("Create", mock.AnythingOfType("*entity.User")).Return(nil)

	svc := NewUserService(mockRepo)

	// Act
	user, err := svc.CreateUser("sarah@example.com", "")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "sa", user.Username, "Имя выводится из email")
	assert.Equal(t, "sarah@example.com", user.Email)
	mockRepo.AssertExpectations(t)
}

func TestUserService_CreateUser_ExplicitUsernameKept(t *testing.T) {
	mockRepo := new(MockUserRepoForUserService)
	mockRepo.On("GetByEmail", "sarah@example.com").Return(nil, apperrors.ErrNotFound)
	mockRepo.On("Create", mock.AnythingOfType("*entity.User")).Return(nil)

	svc := NewUserService(mockRepo)

	// Act
	user, err := svc.CreateUser("sarah@example.com", "quizmaster")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "quizmaster", user.Username, "Явно заданное имя не перезаписывается")
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepoForUserService)
	mockRepo.On("GetByEmail", "sarah@example.com").Return(&entity.User{ID: 1, Email: "sarah@example.com"}, nil)

	svc := NewUserService(mockRepo)

	// Act
	user, err := svc.CreateUser("sarah@example.com", "")

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict), "Повторная регистрация email — ErrConflict")
	assert.Nil(t, user)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUserService_CreateUser_EmptyEmail(t *testing.T) {
	mockRepo := new(MockUserRepoForUserService)
	svc := NewUserService(mockRepo)

	// Act
	user, err := svc.CreateUser("   ", "")

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Nil(t, user)
	mockRepo.AssertNotCalled(t, "GetByEmail", mock.Anything)
}

func TestUserService_GetUserByID_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepoForUserService)
	mockRepo.On("GetByID", uint(404)).Return(nil, apperrors.ErrNotFound)

	svc := NewUserService(mockRepo)

	// Act
	user, err := svc.GetUserByID(404)

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Nil(t, user)
}
