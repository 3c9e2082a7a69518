package shopquery

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/essience-store/storefront-api/models"
)

// ShopState holds the resolver outcome for consumers: the shop id is unknown
// while loading and may stay unknown on error. Mirrors the
// {shopId, shopDetails, loading, error} contract of the shop resolver.
type ShopState struct {
	mu      sync.Mutex
	details *models.ShopDetails
	loading bool
	err     string
}

func NewShopState() *ShopState {
	return &ShopState{loading: true}
}

// SetResolved records a successful resolution.
func (s *ShopState) SetResolved(details *models.ShopDetails) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details = details
	s.loading = false
	s.err = ""
}

// SetError records a failed resolution; the scope stays unresolved.
func (s *ShopState) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.err = err.Error()
}

// ShopID returns the opaque scoping key, or "" while unresolved.
func (s *ShopState) ShopID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.details == nil {
		return ""
	}
	return string(s.details.ID)
}

// Snapshot returns the state for the presentation layer.
func (s *ShopState) Snapshot() (details *models.ShopDetails, loading bool, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.details, s.loading, s.err
}

const shopDetailsQuery = `
  query GetShopDetails($filter: ShopInput) {
    shop(filter: $filter) {
      id
      name
      address
      phone
      featureImage
    }
  }`

// shopField tolerates the backend returning "shop" as either an object or a
// single-element array.
type shopField struct {
	details *models.ShopDetails
}

func (s *shopField) UnmarshalJSON(data []byte) error {
	var list []models.ShopDetails
	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) > 0 {
			s.details = &list[0]
		}
		return nil
	}

	var one models.ShopDetails
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	if one.ID != "" {
		s.details = &one
	}
	return nil
}

// ResolveShop looks up the storefront registered for the given custom
// domain. The caller treats the returned id as an opaque scoping key.
func (c *Client) ResolveShop(ctx context.Context, domain string) (*models.ShopDetails, error) {
	var payload struct {
		Shop shopField `json:"shop"`
	}
	err := c.run(ctx, shopDetailsQuery, map[string]any{
		"filter": map[string]any{"customDomain": domain},
	}, &payload)
	if err != nil {
		return nil, err
	}
	if payload.Shop.details == nil {
		return nil, errors.New("no shop registered for domain " + domain)
	}
	return payload.Shop.details, nil
}
