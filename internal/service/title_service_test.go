package service

import (
	"context"
	"testing"
	"time"

	"moviehub/internal/dto"
	"moviehub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockGenreRepository mocks the GenreRepository interface
type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) Create(ctx context.Context, g *models.Genre) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGenreRepository) FindBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	args := m.Called(ctx, slugs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockGenreRepository) Search(ctx context.Context, name string, page, pageSize int) ([]models.Genre, int64, error) {
	args := m.Called(ctx, name, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Genre), args.Get(1).(int64), args.Error(2)
}

func (m *MockGenreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

// MockCategoryRepository mocks the CategoryRepository interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *models.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Search(ctx context.Context, name string, page, pageSize int) ([]models.Category, int64, error) {
	args := m.Called(ctx, name, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

func TestCreateTitle_YearTooEarly(t *testing.T) {
	svc := NewTitleService(nil, nil, nil, 1888)

	title, err := svc.Create(context.Background(), dto.CreateTitleDTO{
		Name:     "Ancient",
		Year:     1492,
		Category: "movie",
	})

	assert.Equal(t, ErrYearOutOfRange, err)
	assert.Nil(t, title)
}

func TestCreateTitle_YearInFuture(t *testing.T) {
	svc := NewTitleService(nil, nil, nil, 1888)

	title, err := svc.Create(context.Background(), dto.CreateTitleDTO{
		Name:     "Not Yet Released",
		Year:     time.Now().Year() + 1,
		Category: "movie",
	})

	assert.Equal(t, ErrYearOutOfRange, err)
	assert.Nil(t, title)
}

func TestCreateTitle_UnknownCategorySlug(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	mockGenreRepo := new(MockGenreRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	svc := NewTitleService(mockTitleRepo, mockGenreRepo, mockCategoryRepo, 1888)

	mockCategoryRepo.On("FindBySlug", mock.Anything, "hologram").Return(nil, gorm.ErrRecordNotFound)

	title, err := svc.Create(context.Background(), dto.CreateTitleDTO{
		Name:     "Unplaceable",
		Year:     2001,
		Category: "hologram",
		Genre:    []string{"drama"},
	})

	assert.Equal(t, ErrCategoryNotFound, err)
	assert.Nil(t, title)
	mockTitleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTitle_UnknownGenreSlug(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	mockGenreRepo := new(MockGenreRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	svc := NewTitleService(mockTitleRepo, mockGenreRepo, mockCategoryRepo, 1888)

	mockCategoryRepo.On("FindBySlug", mock.Anything, "movie").
		Return(&models.Category{ID: 1, Name: "Movie", Slug: "movie"}, nil)
	// only one of the two slugs resolves
	mockGenreRepo.On("FindBySlugs", mock.Anything, []string{"drama", "slapstick"}).
		Return([]models.Genre{{ID: 1, Name: "Drama", Slug: "drama"}}, nil)

	title, err := svc.Create(context.Background(), dto.CreateTitleDTO{
		Name:     "Half Known",
		Year:     2001,
		Category: "movie",
		Genre:    []string{"drama", "slapstick"},
	})

	assert.Equal(t, ErrGenreNotFound, err)
	assert.Nil(t, title)
	mockTitleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTitle_DeduplicatesGenreSlugs(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	mockGenreRepo := new(MockGenreRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	svc := NewTitleService(mockTitleRepo, mockGenreRepo, mockCategoryRepo, 1888)

	mockCategoryRepo.On("FindBySlug", mock.Anything, "movie").
		Return(&models.Category{ID: 1, Name: "Movie", Slug: "movie"}, nil)
	// a repeated slug must not be counted as a missing one
	mockGenreRepo.On("FindBySlugs", mock.Anything, []string{"drama"}).
		Return([]models.Genre{{ID: 1, Name: "Drama", Slug: "drama"}}, nil)
	mockTitleRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Title")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Title).ID = 42
		}).Return(nil)
	mockTitleRepo.On("GetByID", mock.Anything, int64(42)).
		Return(&models.Title{ID: 42, Name: "Twice Tagged", Year: 2001}, nil)

	title, err := svc.Create(context.Background(), dto.CreateTitleDTO{
		Name:     "Twice Tagged",
		Year:     2001,
		Category: "movie",
		Genre:    []string{"drama", "drama"},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), title.ID)
	mockGenreRepo.AssertExpectations(t)
}

func TestUpdateTitle_UnknownGenreSlug(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	mockGenreRepo := new(MockGenreRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	svc := NewTitleService(mockTitleRepo, mockGenreRepo, mockCategoryRepo, 1888)

	mockTitleRepo.On("GetByID", mock.Anything, int64(7)).Return(testTitle(), nil)
	mockGenreRepo.On("FindBySlugs", mock.Anything, []string{"slapstick"}).
		Return([]models.Genre{}, nil)

	genres := []string{"slapstick"}
	title, err := svc.Update(context.Background(), 7, dto.UpdateTitleDTO{Genre: &genres})

	assert.Equal(t, ErrGenreNotFound, err)
	assert.Nil(t, title)
	mockTitleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGetTitle_NotFound(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	svc := NewTitleService(mockTitleRepo, nil, nil, 1888)

	mockTitleRepo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	title, err := svc.Get(context.Background(), 404)

	assert.Equal(t, ErrTitleNotFound, err)
	assert.Nil(t, title)
}

func TestUpdateTitle_YearOutOfRange(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	svc := NewTitleService(mockTitleRepo, nil, nil, 1888)

	mockTitleRepo.On("GetByID", mock.Anything, int64(7)).Return(testTitle(), nil)

	badYear := 1700
	title, err := svc.Update(context.Background(), 7, dto.UpdateTitleDTO{Year: &badYear})

	assert.Equal(t, ErrYearOutOfRange, err)
	assert.Nil(t, title)
	mockTitleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDeleteTitle_NotFound(t *testing.T) {
	mockTitleRepo := new(MockTitleRepository)
	svc := NewTitleService(mockTitleRepo, nil, nil, 1888)

	mockTitleRepo.On("Delete", mock.Anything, int64(404)).Return(gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), 404)

	assert.Equal(t, ErrTitleNotFound, err)
}
