package store

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/essience-store/storefront-api/models"
)

// Notifier is the toast sink mutations report to. Satisfied by
// notify.Notifier.
type Notifier interface {
	Show(message string, kind models.ToastKind)
}

const themeKey = "theme"

// ShopStore holds the cart, wishlist, order history and theme preference for
// one storefront. Cart/wishlist/order state is namespaced by shop id in the
// KV substrate; until the shop resolver supplies an id the store works purely
// in memory and suppresses writes, so an unresolved session can never leak
// its cart into another shop's bucket.
type ShopStore struct {
	mu     sync.Mutex
	kv     KV
	notify Notifier

	shopID   string
	cart     []models.LineItem
	wishlist []models.WishlistEntry
	orders   []models.Order
	dark     bool
}

// NewShopStore builds an unresolved store. Theme preference is process-wide
// and loads immediately; everything else waits for SetScope.
func NewShopStore(kv KV, notify Notifier) *ShopStore {
	s := &ShopStore{kv: kv, notify: notify}
	if v, ok := kv.Get(themeKey); ok {
		s.dark = v == "dark"
	}
	return s
}

// SetScope switches the store to shopID, discarding the previous shop's
// in-memory state and loading whatever the new scope has persisted. An empty
// shopID resets to the empty, non-persisted fallback.
func (s *ShopStore) SetScope(shopID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shopID = shopID
	if shopID == "" {
		s.cart, s.wishlist, s.orders = nil, nil, nil
		return
	}
	s.cart = loadJSON[[]models.LineItem](s.kv, s.key("cart"))
	s.wishlist = loadJSON[[]models.WishlistEntry](s.kv, s.key("wishlist"))
	s.orders = loadJSON[[]models.Order](s.kv, s.key("orders"))
}

// ShopID returns the active scope, or "" while unresolved.
func (s *ShopStore) ShopID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shopID
}

// AddToCart adds one unit of the product, merging into the existing line
// item if the product is already carted. Never fails.
func (s *ShopStore) AddToCart(raw models.RawProduct) {
	s.mu.Lock()
	item := raw.Normalize()
	merged := false
	for i := range s.cart {
		if s.cart[i].ID == item.ID {
			s.cart[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		s.cart = append(s.cart, models.LineItem{ProductSnapshot: item, Quantity: 1})
	}
	s.persist("cart", s.cart)
	s.mu.Unlock()

	s.toast("Added to cart", models.ToastSuccess)
}

// RemoveFromCart drops the line item for id. No-op if absent.
func (s *ShopStore) RemoveFromCart(id models.ProductID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.cart[:0]
	for _, it := range s.cart {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(s.cart) {
		return
	}
	s.cart = kept
	s.persist("cart", s.cart)
}

// UpdateQuantity overwrites the quantity for id. Quantities below 1 are
// rejected as a no-op; callers that decrement to zero must call
// RemoveFromCart instead.
func (s *ShopStore) UpdateQuantity(id models.ProductID, quantity int) {
	if quantity < 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ID == id {
			s.cart[i].Quantity = quantity
			s.persist("cart", s.cart)
			return
		}
	}
}

// ToggleWishlist adds the product if absent, removes it if present.
func (s *ShopStore) ToggleWishlist(raw models.RawProduct) {
	s.mu.Lock()
	entry := raw.Normalize()
	removed := false
	kept := s.wishlist[:0]
	for _, e := range s.wishlist {
		if e.ID == entry.ID {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if removed {
		s.wishlist = kept
	} else {
		s.wishlist = append(s.wishlist, entry)
	}
	s.persist("wishlist", s.wishlist)
	s.mu.Unlock()

	if removed {
		s.toast("Removed from wishlist", models.ToastInfo)
	} else {
		s.toast("Added to wishlist", models.ToastSuccess)
	}
}

// IsInWishlist reports wishlist membership for id.
func (s *ShopStore) IsInWishlist(id models.ProductID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.wishlist {
		if e.ID == id {
			return true
		}
	}
	return false
}

// PlaceOrder clears the cart into a new local order record and returns it.
// Returns nil on an empty cart, with no side effects and no notification.
// The remote submission happens in the order controller; RollbackOrder
// undoes this if the remote side rejects it.
func (s *ShopStore) PlaceOrder() *models.Order {
	s.mu.Lock()
	if len(s.cart) == 0 {
		s.mu.Unlock()
		return nil
	}

	order := models.Order{
		Ref:    time.Now().Format("20060102150405") + "-" + uuid.NewString(),
		Date:   time.Now().Format("02 Jan 2006"),
		Items:  append([]models.LineItem(nil), s.cart...),
		Total:  s.totalPriceLocked(),
		Status: models.OrderStatusProcessing,
	}
	s.orders = append([]models.Order{order}, s.orders...)
	s.cart = nil
	s.persist("cart", s.cart)
	s.persist("orders", s.orders)
	s.mu.Unlock()

	s.toast("Order placed successfully!", models.ToastSuccess)
	return &order
}

// RollbackOrder reverses a PlaceOrder whose remote submission failed: the
// order record is dropped and its items go back into the cart. Reports
// whether the ref was found.
func (s *ShopStore) RollbackOrder(ref string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, o := range s.orders {
		if o.Ref != ref {
			continue
		}
		s.orders = append(s.orders[:i], s.orders[i+1:]...)
		s.cart = append([]models.LineItem(nil), o.Items...)
		s.persist("cart", s.cart)
		s.persist("orders", s.orders)
		return true
	}
	return false
}

// Cart returns a copy of the current line items.
func (s *ShopStore) Cart() []models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.LineItem(nil), s.cart...)
}

// Wishlist returns a copy of the current wishlist entries.
func (s *ShopStore) Wishlist() []models.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.WishlistEntry(nil), s.wishlist...)
}

// Orders returns a copy of the local order history, newest first.
func (s *ShopStore) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Order(nil), s.orders...)
}

// TotalItems is the sum of line-item quantities, recomputed per call.
func (s *ShopStore) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, it := range s.cart {
		total += it.Quantity
	}
	return total
}

// TotalPrice is Σ price × quantity, recomputed per call.
func (s *ShopStore) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPriceLocked()
}

func (s *ShopStore) totalPriceLocked() float64 {
	total := 0.0
	for _, it := range s.cart {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// IsDarkMode reports the persisted theme preference.
func (s *ShopStore) IsDarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// ToggleTheme flips dark mode. Theme is deliberately not scope-gated: it
// belongs to the profile, not the shop.
func (s *ShopStore) ToggleTheme() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dark = !s.dark
	if s.dark {
		s.kv.Set(themeKey, "dark")
	} else {
		s.kv.Set(themeKey, "light")
	}
	return s.dark
}

// key builds the scoped KV key, e.g. "cart_shop42".
func (s *ShopStore) key(kind string) string {
	return kind + "_" + s.shopID
}

// persist serializes the collection under the scoped key. Writes are
// suppressed while the scope is unresolved. Caller holds the lock.
func (s *ShopStore) persist(kind string, v any) {
	if s.shopID == "" {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("❌ Failed to encode %s state: %v", kind, err)
		return
	}
	s.kv.Set(s.key(kind), string(raw))
}

func (s *ShopStore) toast(message string, kind models.ToastKind) {
	if s.notify != nil {
		s.notify.Show(message, kind)
	}
}

// loadJSON reads and parses a persisted collection. Absent or corrupt data
// resets to empty rather than failing.
func loadJSON[T any](kv KV, key string) T {
	var zero T
	raw, ok := kv.Get(key)
	if !ok {
		return zero
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		log.Printf("⚠️ Discarding corrupt state under %q: %v", key, err)
		return zero
	}
	return v
}
