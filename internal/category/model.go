package category

import "time"

type Category struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateInput struct {
	Name        string
	Description string
}

// UpdateInput leaves nil fields unchanged. A new name also regenerates the slug.
type UpdateInput struct {
	Name        *string
	Description *string
}
