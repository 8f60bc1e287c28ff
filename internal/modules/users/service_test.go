package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Add(ctx context.Context, userID, authorID int64) error {
	args := m.Called(ctx, userID, authorID)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Remove(ctx context.Context, userID, authorID int64) (bool, error) {
	args := m.Called(ctx, userID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriptionRepository) Exists(ctx context.Context, userID, authorID int64) (bool, error) {
	args := m.Called(ctx, userID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriptionRepository) ListAuthors(ctx context.Context, userID int64, limit, offset int) ([]domain.User, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

type MockRecipeReader struct {
	mock.Mock
}

func (m *MockRecipeReader) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecipeReader) ListByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error) {
	args := m.Called(ctx, authorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Recipe), args.Error(1)
}

func newTestService() (*Service, *MockUserRepository, *MockSubscriptionRepository, *MockRecipeReader) {
	users := new(MockUserRepository)
	subs := new(MockSubscriptionRepository)
	recipes := new(MockRecipeReader)
	return NewService(users, subs, recipes), users, subs, recipes
}

func TestService_GetUser_NotFound(t *testing.T) {
	svc, users, _, _ := newTestService()

	users.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetUser(context.Background(), 0, 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_GetUser_AnonymousNotSubscribed(t *testing.T) {
	svc, users, subs, _ := newTestService()

	users.On("GetByID", mock.Anything, int64(3)).
		Return(&domain.User{ID: 3, Username: "author"}, nil)

	resp, err := svc.GetUser(context.Background(), 0, 3)

	assert.NoError(t, err)
	assert.False(t, resp.IsSubscribed)
	subs.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_GetUser_SelfNotSubscribed(t *testing.T) {
	svc, users, subs, _ := newTestService()

	users.On("GetByID", mock.Anything, int64(3)).
		Return(&domain.User{ID: 3, Username: "author"}, nil)

	resp, err := svc.GetUser(context.Background(), 3, 3)

	assert.NoError(t, err)
	assert.False(t, resp.IsSubscribed)
	subs.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Subscribe_Self(t *testing.T) {
	svc, users, subs, _ := newTestService()

	_, err := svc.Subscribe(context.Background(), 5, 5, 0)

	assert.ErrorIs(t, err, ErrSelfSubscribe)
	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	subs.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Subscribe_Duplicate(t *testing.T) {
	svc, users, subs, _ := newTestService()

	users.On("GetByID", mock.Anything, int64(3)).
		Return(&domain.User{ID: 3, Username: "author"}, nil)
	subs.On("Add", mock.Anything, int64(5), int64(3)).Return(repository.ErrDuplicate)

	_, err := svc.Subscribe(context.Background(), 5, 3, 0)
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}

func TestService_Subscribe_UnknownAuthor(t *testing.T) {
	svc, users, _, _ := newTestService()

	users.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Subscribe(context.Background(), 5, 404, 0)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_Subscribe_Success(t *testing.T) {
	svc, users, subs, recipes := newTestService()

	author := &domain.User{ID: 3, Username: "author", FirstName: "Анна", LastName: "Пекарева"}
	users.On("GetByID", mock.Anything, int64(3)).Return(author, nil)
	subs.On("Add", mock.Anything, int64(5), int64(3)).Return(nil)
	recipes.On("CountByAuthor", mock.Anything, int64(3)).Return(int64(2), nil)
	recipes.On("ListByAuthor", mock.Anything, int64(3), 1).Return([]domain.Recipe{
		{ID: 9, Name: "Хлеб", Image: "/media/recipes/b.png", CookingTime: 90},
	}, nil)

	resp, err := svc.Subscribe(context.Background(), 5, 3, 1)

	assert.NoError(t, err)
	assert.True(t, resp.IsSubscribed)
	assert.Equal(t, int64(2), resp.RecipesCount)
	assert.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Хлеб", resp.Recipes[0].Name)
}

func TestService_Unsubscribe_NotSubscribed(t *testing.T) {
	svc, users, subs, _ := newTestService()

	users.On("GetByID", mock.Anything, int64(3)).
		Return(&domain.User{ID: 3, Username: "author"}, nil)
	subs.On("Remove", mock.Anything, int64(5), int64(3)).Return(false, nil)

	err := svc.Unsubscribe(context.Background(), 5, 3)
	assert.ErrorIs(t, err, ErrNotSubscribed)
}

func TestService_Unsubscribe_Success(t *testing.T) {
	svc, users, subs, _ := newTestService()

	users.On("GetByID", mock.Anything, int64(3)).
		Return(&domain.User{ID: 3, Username: "author"}, nil)
	subs.On("Remove", mock.Anything, int64(5), int64(3)).Return(true, nil)

	err := svc.Unsubscribe(context.Background(), 5, 3)
	assert.NoError(t, err)
}

func TestService_Subscriptions_WithCounts(t *testing.T) {
	svc, _, subs, recipes := newTestService()

	subs.On("ListAuthors", mock.Anything, int64(5), 6, 0).Return([]domain.User{
		{ID: 3, Username: "author"},
	}, int64(1), nil)
	recipes.On("CountByAuthor", mock.Anything, int64(3)).Return(int64(4), nil)
	recipes.On("ListByAuthor", mock.Anything, int64(3), 3).Return([]domain.Recipe{
		{ID: 9, Name: "Хлеб"}, {ID: 10, Name: "Борщ"}, {ID: 11, Name: "Плов"},
	}, nil)

	out, total, err := svc.Subscriptions(context.Background(), 5, 6, 0, 3)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, out, 1)
	assert.True(t, out[0].IsSubscribed)
	assert.Equal(t, int64(4), out[0].RecipesCount)
	assert.Len(t, out[0].Recipes, 3)
}
