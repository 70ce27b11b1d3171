package product

import "errors"

var (
	ErrProductNotFound = errors.New("Product not found")
	ErrReviewNotFound  = errors.New("Review not found")
	ErrAlreadyReviewed = errors.New("You already reviewed this product")
	ErrInvalidRating   = errors.New("Rating must be between 1 and 5")
	ErrInvalidPrice    = errors.New("Price must be greater than zero")
	ErrInvalidStock    = errors.New("Stock cannot be negative")
	ErrNameRequired    = errors.New("Product name is required")
)

var ErrCategoryNotFound = errors.New("Category not found")
