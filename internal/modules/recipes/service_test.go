package recipes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"foodgram/internal/domain"
	"foodgram/internal/repository"
)

// Mock repositories

type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Create(ctx context.Context, recipe *domain.Recipe, tags []domain.Tag, rows []domain.IngredientInRecipe) error {
	args := m.Called(ctx, recipe, tags, rows)
	if recipe != nil {
		recipe.ID = 42 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockRecipeRepository) Update(ctx context.Context, recipe *domain.Recipe, tags []domain.Tag, rows []domain.IngredientInRecipe) error {
	args := m.Called(ctx, recipe, tags, rows)
	return args.Error(0)
}

func (m *MockRecipeRepository) GetByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeRepository) List(ctx context.Context, f repository.RecipeFilters) ([]domain.Recipe, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Recipe), args.Get(1).(int64), args.Error(2)
}

func (m *MockRecipeRepository) ShoppingListItems(ctx context.Context, userID int64) ([]repository.ShoppingListItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ShoppingListItem), args.Error(1)
}

type MockTagReader struct {
	mock.Mock
}

func (m *MockTagReader) GetByIDs(ctx context.Context, ids []int64) ([]domain.Tag, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Tag), args.Error(1)
}

type MockIngredientReader struct {
	mock.Mock
}

func (m *MockIngredientReader) GetByIDs(ctx context.Context, ids []int64) ([]domain.Ingredient, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Ingredient), args.Error(1)
}

type MockPairRepo struct {
	mock.Mock
}

func (m *MockPairRepo) Add(ctx context.Context, userID, recipeID int64) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *MockPairRepo) Remove(ctx context.Context, userID, recipeID int64) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPairRepo) Exists(ctx context.Context, userID, recipeID int64) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPairRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) SaveBase64(dataURL, subdir string) (string, error) {
	args := m.Called(dataURL, subdir)
	return args.String(0), args.Error(1)
}

type serviceMocks struct {
	recipes     *MockRecipeRepository
	tags        *MockTagReader
	ingredients *MockIngredientReader
	favorites   *MockPairRepo
	cart        *MockPairRepo
	subs        *MockPairRepo
	users       *MockUserReader
	images      *MockImageStore
}

func newTestService() (*Service, *serviceMocks) {
	m := &serviceMocks{
		recipes:     new(MockRecipeRepository),
		tags:        new(MockTagReader),
		ingredients: new(MockIngredientReader),
		favorites:   new(MockPairRepo),
		cart:        new(MockPairRepo),
		subs:        new(MockPairRepo),
		users:       new(MockUserReader),
		images:      new(MockImageStore),
	}
	svc := NewService(m.recipes, m.tags, m.ingredients, m.favorites, m.cart, m.subs, m.users, m.images)
	return svc, m
}

func validWriteRequest() WriteRequest {
	return WriteRequest{
		Ingredients: []IngredientAmount{{ID: 1, Amount: 200}, {ID: 2, Amount: 2}},
		Tags:        []int64{1},
		Image:       "data:image/png;base64,aGVsbG8=",
		Name:        "Блины",
		Text:        "Смешать, пожарить.",
		CookingTime: 30,
	}
}

func savedRecipe(author *domain.User) *domain.Recipe {
	return &domain.Recipe{
		ID:          42,
		AuthorID:    author.ID,
		Name:        "Блины",
		Text:        "Смешать, пожарить.",
		Image:       "/media/recipes/x.png",
		CookingTime: 30,
		Author:      author,
		Tags:        []domain.Tag{{ID: 1, Name: "Завтрак", Color: "#E26C2D", Slug: "breakfast"}},
		IngredientList: []domain.IngredientInRecipe{
			{RecipeID: 42, IngredientID: 1, Amount: 200, Ingredient: &domain.Ingredient{ID: 1, Name: "мука", MeasurementUnit: "г"}},
			{RecipeID: 42, IngredientID: 2, Amount: 2, Ingredient: &domain.Ingredient{ID: 2, Name: "яйцо", MeasurementUnit: "шт."}},
		},
	}
}

func TestService_Create_Success(t *testing.T) {
	svc, m := newTestService()
	author := &domain.User{ID: 7, Username: "chef"}

	m.tags.On("GetByIDs", mock.Anything, []int64{1}).
		Return([]domain.Tag{{ID: 1, Slug: "breakfast"}}, nil)
	m.ingredients.On("GetByIDs", mock.Anything, []int64{1, 2}).
		Return([]domain.Ingredient{{ID: 1}, {ID: 2}}, nil)
	m.images.On("SaveBase64", mock.Anything, "recipes").Return("/media/recipes/x.png", nil)
	m.recipes.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.recipes.On("GetByID", mock.Anything, int64(42)).Return(savedRecipe(author), nil)
	m.favorites.On("Exists", mock.Anything, int64(7), int64(42)).Return(false, nil)
	m.cart.On("Exists", mock.Anything, int64(7), int64(42)).Return(false, nil)

	resp, err := svc.Create(context.Background(), 7, validWriteRequest())

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Len(t, resp.Ingredients, 2)
	assert.Equal(t, int64(7), resp.Author.ID)

	// строк ингредиентов ровно столько, сколько прислано
	createCall := m.recipes.Calls[0]
	rows := createCall.Arguments.Get(3).([]domain.IngredientInRecipe)
	assert.Len(t, rows, 2)
}

func TestService_Create_DuplicateTag(t *testing.T) {
	svc, m := newTestService()

	req := validWriteRequest()
	req.Tags = []int64{1, 1}

	_, err := svc.Create(context.Background(), 7, req)

	assert.ErrorIs(t, err, ErrTagsDuplicate)
	m.recipes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Create_DuplicateIngredient(t *testing.T) {
	svc, m := newTestService()

	req := validWriteRequest()
	req.Ingredients = []IngredientAmount{{ID: 1, Amount: 5}, {ID: 1, Amount: 7}}

	_, err := svc.Create(context.Background(), 7, req)

	assert.ErrorIs(t, err, ErrIngredientsDuplicate)
	m.recipes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Create_EmptyTags(t *testing.T) {
	svc, _ := newTestService()

	req := validWriteRequest()
	req.Tags = nil

	_, err := svc.Create(context.Background(), 7, req)
	assert.ErrorIs(t, err, ErrTagsEmpty)
}

func TestService_Create_AmountOutOfRange(t *testing.T) {
	svc, _ := newTestService()

	req := validWriteRequest()
	req.Ingredients = []IngredientAmount{{ID: 1, Amount: 0}}

	_, err := svc.Create(context.Background(), 7, req)
	assert.ErrorIs(t, err, ErrAmountOutOfRange)

	req.Ingredients = []IngredientAmount{{ID: 1, Amount: domain.MaxAmount}}
	_, err = svc.Create(context.Background(), 7, req)
	assert.ErrorIs(t, err, ErrAmountOutOfRange)
}

func TestService_Create_CookingTimeOutOfRange(t *testing.T) {
	svc, _ := newTestService()

	req := validWriteRequest()
	req.CookingTime = domain.MaxCookingTime

	_, err := svc.Create(context.Background(), 7, req)
	assert.ErrorIs(t, err, ErrCookingTimeRange)
}

func TestService_Create_DigitsOnlyName(t *testing.T) {
	svc, _ := newTestService()

	req := validWriteRequest()
	req.Name = "12345!!!"

	_, err := svc.Create(context.Background(), 7, req)
	assert.ErrorIs(t, err, ErrNameInvalid)
}

func TestService_Create_UnknownIngredient(t *testing.T) {
	svc, m := newTestService()

	m.tags.On("GetByIDs", mock.Anything, []int64{1}).
		Return([]domain.Tag{{ID: 1}}, nil)
	// справочник вернул только один из двух запрошенных id
	m.ingredients.On("GetByIDs", mock.Anything, []int64{1, 2}).
		Return([]domain.Ingredient{{ID: 1}}, nil)

	_, err := svc.Create(context.Background(), 7, validWriteRequest())

	assert.ErrorIs(t, err, ErrIngredientNotFound)
	m.recipes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Update_ReplacesIngredients(t *testing.T) {
	svc, m := newTestService()
	author := &domain.User{ID: 7, Username: "chef"}

	existing := savedRecipe(author)
	m.recipes.On("GetByID", mock.Anything, int64(42)).Return(existing, nil)
	m.tags.On("GetByIDs", mock.Anything, []int64{1}).
		Return([]domain.Tag{{ID: 1}}, nil)
	m.ingredients.On("GetByIDs", mock.Anything, []int64{2}).
		Return([]domain.Ingredient{{ID: 2}}, nil)
	m.recipes.On("Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.favorites.On("Exists", mock.Anything, int64(7), int64(42)).Return(false, nil)
	m.cart.On("Exists", mock.Anything, int64(7), int64(42)).Return(false, nil)

	req := validWriteRequest()
	req.Image = "" // PATCH без картинки сохраняет старую
	req.Ingredients = []IngredientAmount{{ID: 2, Amount: 3}}

	_, err := svc.Update(context.Background(), 7, false, 42, req)
	assert.NoError(t, err)

	updated := false
	for i := range m.recipes.Calls {
		if m.recipes.Calls[i].Method != "Update" {
			continue
		}
		updated = true
		rows := m.recipes.Calls[i].Arguments.Get(3).([]domain.IngredientInRecipe)
		assert.Len(t, rows, 1)
		assert.Equal(t, int64(2), rows[0].IngredientID)
		assert.Equal(t, 3, rows[0].Amount)

		recipe := m.recipes.Calls[i].Arguments.Get(1).(*domain.Recipe)
		assert.Equal(t, "/media/recipes/x.png", recipe.Image)
	}
	assert.True(t, updated, "Update was not called")
	m.images.AssertNotCalled(t, "SaveBase64", mock.Anything, mock.Anything)
}

func TestService_Update_Forbidden(t *testing.T) {
	svc, m := newTestService()
	author := &domain.User{ID: 7, Username: "chef"}

	m.recipes.On("GetByID", mock.Anything, int64(42)).Return(savedRecipe(author), nil)

	_, err := svc.Update(context.Background(), 99, false, 42, validWriteRequest())
	assert.ErrorIs(t, err, ErrForbidden)
	m.recipes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Update_AdminAllowed(t *testing.T) {
	svc, m := newTestService()
	author := &domain.User{ID: 7, Username: "chef"}

	m.recipes.On("GetByID", mock.Anything, int64(42)).Return(savedRecipe(author), nil)
	m.tags.On("GetByIDs", mock.Anything, []int64{1}).Return([]domain.Tag{{ID: 1}}, nil)
	m.ingredients.On("GetByIDs", mock.Anything, []int64{1, 2}).
		Return([]domain.Ingredient{{ID: 1}, {ID: 2}}, nil)
	m.images.On("SaveBase64", mock.Anything, "recipes").Return("/media/recipes/y.png", nil)
	m.recipes.On("Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.favorites.On("Exists", mock.Anything, int64(99), int64(42)).Return(false, nil)
	m.cart.On("Exists", mock.Anything, int64(99), int64(42)).Return(false, nil)
	m.subs.On("Exists", mock.Anything, int64(99), int64(7)).Return(false, nil)

	_, err := svc.Update(context.Background(), 99, true, 42, validWriteRequest())
	assert.NoError(t, err)
}

func TestService_Get_AnonymousFlagsFalse(t *testing.T) {
	svc, m := newTestService()
	author := &domain.User{ID: 7, Username: "chef"}

	m.recipes.On("GetByID", mock.Anything, int64(42)).Return(savedRecipe(author), nil)

	resp, err := svc.Get(context.Background(), 0, 42)

	assert.NoError(t, err)
	assert.False(t, resp.IsFavorited)
	assert.False(t, resp.IsInShoppingCart)
	assert.False(t, resp.Author.IsSubscribed)
	// для анонима запросы в favorites/cart вообще не делаются
	m.favorites.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
	m.cart.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Get_NotFound(t *testing.T) {
	svc, m := newTestService()

	m.recipes.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), 0, 404)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestService_AddFavorite_Duplicate(t *testing.T) {
	svc, m := newTestService()
	author := &domain.User{ID: 7, Username: "chef"}

	m.recipes.On("GetByID", mock.Anything, int64(42)).Return(savedRecipe(author), nil)
	m.favorites.On("Add", mock.Anything, int64(5), int64(42)).Return(repository.ErrDuplicate)

	_, err := svc.AddFavorite(context.Background(), 5, 42)
	assert.ErrorIs(t, err, ErrAlreadyInFavorites)
}

func TestService_AddFavorite_Success(t *testing.T) {
	svc, m := newTestService()
	author := &domain.User{ID: 7, Username: "chef"}

	m.recipes.On("GetByID", mock.Anything, int64(42)).Return(savedRecipe(author), nil)
	m.favorites.On("Add", mock.Anything, int64(5), int64(42)).Return(nil)

	short, err := svc.AddFavorite(context.Background(), 5, 42)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), short.ID)
	assert.Equal(t, "Блины", short.Name)
}

func TestService_RemoveFavorite_NotFound(t *testing.T) {
	svc, m := newTestService()
	author := &domain.User{ID: 7, Username: "chef"}

	m.recipes.On("GetByID", mock.Anything, int64(42)).Return(savedRecipe(author), nil)
	m.favorites.On("Remove", mock.Anything, int64(5), int64(42)).Return(false, nil)

	err := svc.RemoveFavorite(context.Background(), 5, 42)
	assert.ErrorIs(t, err, ErrNotInFavorites)
}

func TestService_ShoppingList_Aggregated(t *testing.T) {
	svc, m := newTestService()

	m.cart.On("CountByUser", mock.Anything, int64(5)).Return(int64(2), nil)
	m.recipes.On("ShoppingListItems", mock.Anything, int64(5)).Return([]repository.ShoppingListItem{
		{Name: "flour", MeasurementUnit: "g", Total: 500},
		{Name: "salt", MeasurementUnit: "g", Total: 3},
	}, nil)
	m.users.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.User{ID: 5, Username: "buyer", FirstName: "Иван", LastName: "Поваров"}, nil)

	filename, content, err := svc.ShoppingList(context.Background(), 5)

	assert.NoError(t, err)
	assert.Equal(t, "buyer_shopping_list.txt", filename)
	assert.Contains(t, content, "flour (g) - 500")
	assert.Contains(t, content, "salt (g) - 3")
	assert.Contains(t, content, "Иван Поваров")
}

func TestService_ShoppingList_EmptyCart(t *testing.T) {
	svc, m := newTestService()

	m.cart.On("CountByUser", mock.Anything, int64(5)).Return(int64(0), nil)

	_, _, err := svc.ShoppingList(context.Background(), 5)
	assert.ErrorIs(t, err, ErrEmptyCart)
	m.recipes.AssertNotCalled(t, "ShoppingListItems", mock.Anything, mock.Anything)
}
