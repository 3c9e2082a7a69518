package models

// LineItem is one cart entry. A cart holds exactly one line item per product
// id, and Quantity never drops below 1 (items are removed, never kept at 0).
type LineItem struct {
	ProductSnapshot
	Quantity int `json:"quantity"`
}

// WishlistEntry is a saved product; membership is a set keyed by product id.
type WishlistEntry = ProductSnapshot
