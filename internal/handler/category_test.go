package handler

import (
	"net/http"
	"testing"

	"storefront-be/internal/category"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListCategories(t *testing.T) {
	e := newTestEnv()
	search := "elec"
	e.categories.On("List", mock.Anything, (*string)(nil)).
		Return([]category.Category{{ID: "c1", Name: "Books"}, {ID: "c2", Name: "Electronics"}}, nil)
	e.categories.On("List", mock.Anything, &search).
		Return([]category.Category{{ID: "c2", Name: "Electronics"}}, nil)

	w := e.do(t, http.MethodGet, "/api/categories", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Books"`)

	w = e.do(t, http.MethodGet, "/api/categories?search=elec", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Books")
}

func TestAdminCategories(t *testing.T) {
	e := newTestEnv()
	cookie := e.session(t, administrator())

	t.Run("Create", func(t *testing.T) {
		e.categories.On("Create", mock.Anything, category.CreateInput{Name: "Garden Tools"}).
			Return(&category.Category{ID: "c3", Name: "Garden Tools", Slug: "garden-tools"}, nil)

		w := e.do(t, http.MethodPost, "/api/admin/categories", map[string]string{"name": "Garden Tools"}, cookie)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "garden-tools", decode(t, w)["slug"])
	})

	t.Run("Duplicate", func(t *testing.T) {
		e.categories.On("Create", mock.Anything, category.CreateInput{Name: "Books"}).
			Return(nil, category.ErrDuplicateCategory)

		w := e.do(t, http.MethodPost, "/api/admin/categories", map[string]string{"name": "Books"}, cookie)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"Category already exists"}`, w.Body.String())
	})

	t.Run("NameRequired", func(t *testing.T) {
		w := e.do(t, http.MethodPost, "/api/admin/categories", map[string]string{}, cookie)

		assert.JSONEq(t, `{"message":"name is required"}`, w.Body.String())
	})

	t.Run("Update", func(t *testing.T) {
		desc := "Paper"
		e.categories.On("Update", mock.Anything, "c1", category.UpdateInput{Description: &desc}).
			Return(&category.Category{ID: "c1", Name: "Books", Description: desc}, nil)

		w := e.do(t, http.MethodPut, "/api/admin/categories/c1", map[string]string{"description": "Paper"}, cookie)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("DeleteMissing", func(t *testing.T) {
		e.categories.On("Delete", mock.Anything, "gone").Return(category.ErrCategoryNotFound)

		w := e.do(t, http.MethodDelete, "/api/admin/categories/gone", nil, cookie)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
