package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"moviehub/internal/dto"
	"moviehub/internal/middleware"
	"moviehub/internal/models"
	"moviehub/internal/repository"
	"moviehub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTitleService mocks the TitleService interface
type MockTitleService struct {
	mock.Mock
}

func (m *MockTitleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Title), args.Get(1).(int64), args.Error(2)
}

func (m *MockTitleService) Get(ctx context.Context, id int64) (*models.Title, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Title), args.Error(1)
}

func (m *MockTitleService) Create(ctx context.Context, req dto.CreateTitleDTO) (*models.Title, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Title), args.Error(1)
}

func (m *MockTitleService) Update(ctx context.Context, id int64, req dto.UpdateTitleDTO) (*models.Title, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Title), args.Error(1)
}

func (m *MockTitleService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// asUser simulates an authenticated requester the way OptionalAuth would
// set it up.
func asUser(id, username, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserID, id)
		c.Set(middleware.CtxUsername, username)
		c.Set(middleware.CtxRole, role)
		c.Next()
	}
}

var testPages = PageConfig{Default: 10, Max: 100}

func setupTitleRouter(mockTitleService *MockTitleService, identity gin.HandlerFunc) *gin.Engine {
	router := setupRouter()
	handler := NewTitleHandler(mockTitleService, testPages)
	v1 := router.Group("/api/v1")
	if identity != nil {
		v1.Use(identity)
	}
	handler.RegisterRoutes(v1)
	return router
}

func TestListTitles_Success(t *testing.T) {
	mockTitleService := new(MockTitleService)
	router := setupTitleRouter(mockTitleService, nil)

	rating := 7.5
	titles := []models.Title{
		{ID: 1, Name: "First", Year: 2000, Rating: &rating},
		{ID: 2, Name: "Second", Year: 2001},
	}
	mockTitleService.On("List", mock.Anything, repository.TitleFilter{}, 1, 10).
		Return(titles, int64(2), nil)

	req, _ := http.NewRequest("GET", "/api/v1/titles", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.PaginatedResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, int64(2), response.Count)
	assert.Nil(t, response.Next)
	assert.Nil(t, response.Previous)
	mockTitleService.AssertExpectations(t)
}

func TestListTitles_Filters(t *testing.T) {
	mockTitleService := new(MockTitleService)
	router := setupTitleRouter(mockTitleService, nil)

	year := 1999
	expected := repository.TitleFilter{
		CategorySlug: "movie",
		GenreSlug:    "drama",
		Name:         "matrix",
		Year:         &year,
	}
	mockTitleService.On("List", mock.Anything, expected, 1, 10).
		Return([]models.Title{}, int64(0), nil)

	req, _ := http.NewRequest("GET", "/api/v1/titles?category=movie&genre=drama&name=matrix&year=1999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockTitleService.AssertExpectations(t)
}

func TestListTitles_BadYear(t *testing.T) {
	mockTitleService := new(MockTitleService)
	router := setupTitleRouter(mockTitleService, nil)

	req, _ := http.NewRequest("GET", "/api/v1/titles?year=not-a-year", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockTitleService.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetTitle_HandlerNotFound(t *testing.T) {
	mockTitleService := new(MockTitleService)
	router := setupTitleRouter(mockTitleService, nil)

	mockTitleService.On("Get", mock.Anything, int64(404)).Return(nil, service.ErrTitleNotFound)

	req, _ := http.NewRequest("GET", "/api/v1/titles/404", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTitle_Anonymous(t *testing.T) {
	mockTitleService := new(MockTitleService)
	router := setupTitleRouter(mockTitleService, nil)

	w := postJSON(router, "/api/v1/titles", dto.CreateTitleDTO{
		Name:     "New Film",
		Year:     2020,
		Category: "movie",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockTitleService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTitle_ForbiddenForUser(t *testing.T) {
	mockTitleService := new(MockTitleService)
	router := setupTitleRouter(mockTitleService, asUser("user-id", "someone", models.RoleUser))

	w := postJSON(router, "/api/v1/titles", dto.CreateTitleDTO{
		Name:     "New Film",
		Year:     2020,
		Category: "movie",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockTitleService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTitle_Admin(t *testing.T) {
	mockTitleService := new(MockTitleService)
	router := setupTitleRouter(mockTitleService, asUser("admin-id", "boss", models.RoleAdmin))

	created := &models.Title{ID: 1, Name: "New Film", Year: 2020}
	mockTitleService.On("Create", mock.Anything, mock.AnythingOfType("dto.CreateTitleDTO")).
		Return(created, nil)

	w := postJSON(router, "/api/v1/titles", dto.CreateTitleDTO{
		Name:     "New Film",
		Year:     2020,
		Category: "movie",
		Genre:    []string{"drama"},
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response dto.TitleResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, int64(1), response.ID)
	assert.Equal(t, "New Film", response.Name)
	mockTitleService.AssertExpectations(t)
}

func TestCreateTitle_YearOutOfRange(t *testing.T) {
	mockTitleService := new(MockTitleService)
	router := setupTitleRouter(mockTitleService, asUser("admin-id", "boss", models.RoleAdmin))

	mockTitleService.On("Create", mock.Anything, mock.AnythingOfType("dto.CreateTitleDTO")).
		Return(nil, service.ErrYearOutOfRange)

	w := postJSON(router, "/api/v1/titles", dto.CreateTitleDTO{
		Name:     "Too Old",
		Year:     1500,
		Category: "movie",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteTitle_Admin(t *testing.T) {
	mockTitleService := new(MockTitleService)
	router := setupTitleRouter(mockTitleService, asUser("admin-id", "boss", models.RoleAdmin))

	mockTitleService.On("Delete", mock.Anything, int64(7)).Return(nil)

	req, _ := http.NewRequest("DELETE", "/api/v1/titles/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockTitleService.AssertExpectations(t)
}
