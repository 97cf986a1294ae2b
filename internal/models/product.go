package models

import "time"

type Product struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Photo     string    `json:"photo"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p Product) Created() time.Time { return p.CreatedAt }

// ProductQuery filters the products collection. Zero fields do not filter.
type ProductQuery struct {
	Search      string
	Category    string
	MaxPrice    float64
	OutOfStock  bool
	Created     TimeRange
	SortByPrice SortOrder
	NewestFirst bool
	Skip        int
	Limit       int
}

type ProductPage struct {
	Products  []Product `json:"products"`
	TotalPage int       `json:"totalPage"`
}
