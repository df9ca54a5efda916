package models

import "gorm.io/gorm"

// CartItem is a persisted cart line for an authenticated user. The
// (user, product) pair is unique so concurrent adds resolve to a single line.
type CartItem struct {
	gorm.Model
	UserID    uint `json:"userId" gorm:"uniqueIndex:idx_cart_user_product"`
	ProductID uint `json:"productId" gorm:"uniqueIndex:idx_cart_user_product"`
	Quantity  int  `json:"quantity"`

	Product *Product `json:"product,omitempty"`
}

// CartLine is a resolved cart line: the stored quantity plus a live product
// snapshot. Unit price is re-read at view time, so cart totals can drift from
// eventual order totals if prices change before checkout.
type CartLine struct {
	ProductID  uint    `json:"productId"`
	Name       string  `json:"name"`
	PartNumber string  `json:"partNumber"`
	Slug       string  `json:"slug"`
	ImageURL   string  `json:"imageUrl,omitempty"`
	UnitPrice  float64 `json:"unitPrice"`
	Quantity   int     `json:"quantity"`
	LineTotal  float64 `json:"lineTotal"`
}

type CartView struct {
	Items    []CartLine `json:"items"`
	Subtotal float64    `json:"subtotal"`
	Count    int        `json:"count"`
}
