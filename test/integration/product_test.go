package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodapp/api/internal/core/domain"
)

type productPage struct {
	Content       []domain.Product `json:"content"`
	Page          int              `json:"page"`
	Size          int              `json:"size"`
	TotalElements int64            `json:"totalElements"`
	TotalPages    int              `json:"totalPages"`
	Last          bool             `json:"last"`
}

func (app *TestApp) createCategory(t *testing.T, adminToken, name string) domain.Category {
	t.Helper()
	resp := app.doJSON(t, http.MethodPost, "/api/categories", adminToken, map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	defer resp.Body.Close()

	var category domain.Category
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&category))
	return category
}

func TestProductFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	adminToken := app.createAdminToken(t)
	category := app.createCategory(t, adminToken, "Pizza")

	resp := app.doJSON(t, http.MethodPost, "/api/products", adminToken, map[string]any{
		"name":       "Margherita",
		"price":      9.90,
		"stock":      5,
		"categoryId": category.ID.String(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created domain.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.Equal(t, "Margherita", created.Name)
	assert.Equal(t, "Pizza", created.CategoryName)
	assert.Equal(t, 5, created.Stock)

	// The price read back from the NUMERIC column keeps its two decimal
	// places instead of passing through a float.
	resp = app.doJSON(t, http.MethodGet, "/api/products/"+created.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched domain.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fetched))
	resp.Body.Close()
	assert.Equal(t, json.Number("9.90"), fetched.Price)

	// Unknown category is rejected.
	resp = app.doJSON(t, http.MethodPost, "/api/products", adminToken, map[string]any{
		"name":       "Orphan",
		"price":      1.00,
		"categoryId": "00000000-0000-0000-0000-000000000001",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Public paginated listing.
	resp = app.doJSON(t, http.MethodGet, "/api/products?page=0&size=10", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page productPage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	resp.Body.Close()
	require.Len(t, page.Content, 1)
	assert.Equal(t, int64(1), page.TotalElements)
	assert.True(t, page.Last)

	// By-category listing.
	resp = app.doJSON(t, http.MethodGet, "/api/products/category/"+category.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page = productPage{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	resp.Body.Close()
	require.Len(t, page.Content, 1)

	// Keyword search.
	resp = app.doJSON(t, http.MethodGet, "/api/products/search?keyword=marg", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page = productPage{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	resp.Body.Close()
	require.Len(t, page.Content, 1)

	// Soft delete hides the product from listings.
	resp = app.doJSON(t, http.MethodDelete, "/api/products/"+created.ID.String(), adminToken, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = app.doJSON(t, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page = productPage{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	resp.Body.Close()
	assert.Empty(t, page.Content)
}

func TestProductPagination(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	adminToken := app.createAdminToken(t)
	category := app.createCategory(t, adminToken, "Burgers")

	for i := 0; i < 15; i++ {
		resp := app.doJSON(t, http.MethodPost, "/api/products", adminToken, map[string]any{
			"name":       fmt.Sprintf("Burger %02d", i),
			"price":      5.50,
			"categoryId": category.ID.String(),
		})
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := app.doJSON(t, http.MethodGet, "/api/products?page=1&size=10&sortBy=name&sortDir=asc", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page productPage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	resp.Body.Close()

	assert.Len(t, page.Content, 5)
	assert.Equal(t, int64(15), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.Last)
	// Second page picks up where the first left off.
	assert.Equal(t, "Burger 10", page.Content[0].Name)
}
