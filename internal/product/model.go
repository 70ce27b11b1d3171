package product

import (
	"strings"
	"time"
)

type Product struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Image        string    `json:"image"`
	Description  string    `json:"description"`
	Category     *string   `json:"category"`
	CategoryName string    `json:"categoryName,omitempty"`
	Stock        int       `json:"stock"`
	Rating       float64   `json:"rating"`
	NumReviews   int       `json:"numReviews"`
	Reviews      []Review  `json:"reviews,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Review struct {
	ID        string    `json:"_id"`
	User      string    `json:"user"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListFilter narrows the catalog. Category matches a category id or slug.
type ListFilter struct {
	Category string
	Search   string
}

type CreateInput struct {
	Name        string
	Price       float64
	Image       string
	Description string
	Category    *string
	Stock       int
}

type UpdateInput struct {
	Name        *string
	Price       *float64
	Image       *string
	Description *string
	Category    *string
	Stock       *int
}

// ApplyUpdate merges the supplied fields of in into p. An empty category
// string detaches the product from its category.
func ApplyUpdate(p Product, in UpdateInput) Product {
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Image != nil && *in.Image != "" {
		p.Image = *in.Image
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		if *in.Category == "" {
			p.Category = nil
		} else {
			c := *in.Category
			p.Category = &c
		}
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	return p
}
