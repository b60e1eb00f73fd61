package model

import (
	"math"
	"time"
)

type Product struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Price              float64   `json:"price"`
	DiscountPercentage float64   `json:"discount_percentage"`
	DiscountPrice      int64     `json:"discount_price"`
	Rating             float64   `json:"rating"`
	Stock              int       `json:"stock"`
	Brand              string    `json:"brand"`
	Category           string    `json:"category"`
	Thumbnail          string    `json:"thumbnail"`
	Images             []string  `json:"images"`
	Colors             []string  `json:"colors,omitempty"`
	Sizes              []string  `json:"sizes,omitempty"`
	Highlights         []string  `json:"highlights,omitempty"`
	Deleted            bool      `json:"deleted"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ComputeDiscountPrice rounds price*(1-discount/100) to the nearest whole unit.
func ComputeDiscountPrice(price float64, discountPercentage float64) int64 {
	return int64(math.Round(price * (1 - discountPercentage/100)))
}

type ProductQuery struct {
	Categories     []string
	Brands         []string
	Sort           string
	Order          string
	Page           int
	Limit          int
	IncludeDeleted bool
}

type ProductList struct {
	Items []Product `json:"items"`
	Total int64     `json:"-"`
}

// Option is a filter value shown in the storefront sidebar (categories, brands).
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}
