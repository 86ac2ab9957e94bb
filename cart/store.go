package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/capiwear/storefront/catalog/pkg/response"
)

// LineItem is one product-quantity pair in the cart. Name, price and image are
// captured at add time so the cart keeps rendering even after the product list
// is replaced by a new fetch.
type LineItem struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

// Store owns the cart for the lifetime of the session: line items in insertion
// order, the drawer toggle, and the checkout status surface. It is never
// persisted.
type Store struct {
	mu         sync.Mutex
	items      []LineItem
	drawerOpen bool

	submitting bool
	successMsg string
	errMsg     string
}

func NewStore() *Store {
	return &Store{}
}

// AddItem appends a new line item with quantity 1, or bumps the quantity when
// the product is already in the cart. It opens the drawer and clears any
// stale checkout outcome. It cannot fail.
func (s *Store) AddItem(product response.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	image := product.Image
	if image == "" {
		image = response.PlaceholderImage
	}

	found := false
	for i := range s.items {
		if s.items[i].ProductID == product.ID {
			s.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     image,
			Quantity:  1,
		})
	}

	s.drawerOpen = true
	s.successMsg = ""
	s.errMsg = ""
}

// RemoveItem deletes the line item for productID. Removing an absent item is
// a no-op, not an error.
func (s *Store) RemoveItem(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
}

func (s *Store) removeLocked(productID int64) {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the line item quantity exactly; zero or below removes the
// item. There is no upper clamp.
func (s *Store) SetQuantity(productID int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if quantity <= 0 {
		s.removeLocked(productID)
		return
	}
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			return
		}
	}
}

// Contains reports whether the product is already in the cart.
func (s *Store) Contains(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			return true
		}
	}
	return false
}

// Items returns the line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return items
}

// Subtotal recomputes price times quantity over all line items. Carts are
// small; no caching.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	subtotal := decimal.Zero
	for _, item := range s.items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}

// Count sums the quantities over all line items.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Clear empties the cart without touching the drawer or status messages.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

func (s *Store) OpenDrawer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawerOpen = true
}

func (s *Store) CloseDrawer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawerOpen = false
}

func (s *Store) DrawerOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawerOpen
}

// BeginCheckout marks a checkout attempt as in flight and clears prior
// outcome messages. It returns false when an attempt is already outstanding;
// the caller must not dispatch a second request in that case.
func (s *Store) BeginCheckout() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return false
	}
	s.submitting = true
	s.successMsg = ""
	s.errMsg = ""
	return true
}

// FinishCheckout resets the in-flight flag. Always called on completion,
// success or failure.
func (s *Store) FinishCheckout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
}

func (s *Store) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// RecordSuccess stores the checkout success message and clears any error.
func (s *Store) RecordSuccess(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.successMsg = msg
	s.errMsg = ""
}

// RecordFailure stores the checkout failure message and clears any success.
func (s *Store) RecordFailure(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
	s.successMsg = ""
}

func (s *Store) SuccessMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.successMsg
}

func (s *Store) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}
