package category

import "errors"

var (
	ErrCategoryNotFound  = errors.New("Category not found")
	ErrDuplicateCategory = errors.New("Category already exists")
	ErrNameRequired      = errors.New("Category name is required")
)
