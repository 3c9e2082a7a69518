package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ProductID is an opaque catalog identifier. The GraphQL backend returns ids
// as strings, the legacy PHP endpoints as bare numbers; both decode here.
type ProductID string

func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProductID(s)
		return nil
	}
	*id = ProductID(data)
	return nil
}

// Number decodes a price that may arrive as a JSON number, a numeric string
// ("499.00"), or null. Anything unparseable decodes to 0.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*n = 0
			return nil
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*n = 0
		return nil
	}
	*n = Number(f)
	return nil
}

// RawProduct is a catalog record as the backend actually sends it. Older shop
// rows spell price as "prize" and image as "featureImage"; Normalize resolves
// the precedence (price over prize, image over featureImage).
type RawProduct struct {
	ID           ProductID `json:"id" binding:"required"`
	Name         string    `json:"name"`
	Price        *Number   `json:"price"`
	Prize        *Number   `json:"prize"`
	Image        string    `json:"image"`
	FeatureImage string    `json:"featureImage"`
}

// ProductSnapshot is the canonical product shape kept in carts and wishlists.
type ProductSnapshot struct {
	ID    ProductID `json:"id"`
	Name  string    `json:"name"`
	Price float64   `json:"price"`
	Image string    `json:"image"`
}

// Normalize maps a raw catalog record to its canonical snapshot. Missing
// price fields default to 0.
func (r RawProduct) Normalize() ProductSnapshot {
	price := 0.0
	if r.Price != nil {
		price = float64(*r.Price)
	} else if r.Prize != nil {
		price = float64(*r.Prize)
	}
	if price < 0 {
		price = 0
	}

	image := r.Image
	if image == "" {
		image = r.FeatureImage
	}

	return ProductSnapshot{
		ID:    r.ID,
		Name:  r.Name,
		Price: price,
		Image: image,
	}
}

// Category as shaped by the catalog query service ("master categories").
type Category struct {
	ID    ProductID `json:"id"`
	Name  string    `json:"category"`
	Image string    `json:"image"`
}

// ShopDetails as returned by the shop resolver.
type ShopDetails struct {
	ID           ProductID `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	FeatureImage string    `json:"featureImage"`
}

// RemoteOrder is one order-history row from the order query service.
type RemoteOrder struct {
	ID        ProductID `json:"id"`
	Timestamp string    `json:"timestamp"`
	Status    string    `json:"status"`
	Total     float64   `json:"total"`
	Products  []string  `json:"products"`
}
