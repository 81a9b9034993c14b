package categories

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/rinlabel/storefront/contract"
	"github.com/rinlabel/storefront/models"
)

// --- Mock Repository ---

type MockCategoryRepo struct {
	Categories []models.Category
	Err        error

	lastCalledSlug string
}

func (m *MockCategoryRepo) GetAllCategories() ([]models.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Categories, nil
}

func (m *MockCategoryRepo) GetBySlug(slug string) (*models.Category, error) {
	m.lastCalledSlug = slug
	if m.Err != nil {
		return nil, m.Err
	}
	for _, c := range m.Categories {
		if c.Slug == slug {
			category := c
			return &category, nil
		}
	}
	return nil, models.ErrCategoryNotFound
}

var mockCategories = []models.Category{
	{ID: 1, Name: "Men's Collection", Slug: "men", Description: "Timeless essentials.", ImageURL: "/images/men.jpg"},
	{ID: 2, Name: "Women's Collection", Slug: "women", ImageURL: "/images/women.jpg"},
}

// --- Tests: GET /api/categories ---

func TestHandleGetAll(t *testing.T) {
	testCases := []struct {
		name               string
		mockRepoSetup      func() *MockCategoryRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Success with multiple categories",
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{Categories: mockCategories}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp []contract.Category
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp, 2)
				assert.Equal(t, "men", resp[0].Slug)
				assert.Equal(t, "Women's Collection", resp[1].Name)
				assert.NoError(t, resp[0].Validate())
			},
		},
		{
			name: "Success with empty list encodes an empty array",
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{Categories: []models.Category{}}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "[]\n", rec.Body.String())
			},
		},
		{
			name: "Repository error",
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{Err: errors.New("db down")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Internal server error", errResp["message"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			handler := NewCategoryHandler(mockRepo, zerolog.Nop())
			req := httptest.NewRequest("GET", "/api/categories", nil)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleGetAll(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

// --- Tests: GET /api/categories/{slug} ---

func TestHandleGetBySlug(t *testing.T) {
	testCases := []struct {
		name               string
		slug               string
		mockRepoSetup      func() *MockCategoryRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCall      func(t *testing.T, repo *MockCategoryRepo)
	}{
		{
			name: "Success",
			slug: "men",
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{Categories: mockCategories}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp contract.Category
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, "men", resp.Slug)
				assert.Equal(t, "Timeless essentials.", resp.Description)
			},
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.Equal(t, "men", repo.lastCalledSlug)
			},
		},
		{
			name: "Slug matching is exact and case-sensitive",
			slug: "MEN",
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{Categories: mockCategories}
			},
			expectedStatusCode: http.StatusNotFound,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Category not found", errResp["message"])
			},
		},
		{
			name: "Repository error",
			slug: "men",
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{Err: errors.New("db down")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Internal server error", errResp["message"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			handler := NewCategoryHandler(mockRepo, zerolog.Nop())
			req := httptest.NewRequest("GET", "/api/categories/"+tc.slug, nil)
			req.SetPathValue("slug", tc.slug)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleGetBySlug(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)

			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}

			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, mockRepo)
			}
		})
	}
}
