// Package cart holds the client-side shopping cart: an in-memory collection of
// line items mirrored to durable keyed storage on every mutation. Nothing in
// here touches the network; "Add to Cart" only mutates local state.
package cart

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rinlabel/storefront/contract"
)

// StorageKey is the fixed namespaced key the cart persists under.
const StorageKey = "rin-cart-storage"

// Item is one cart line: a product snapshot taken at add time plus a quantity.
type Item struct {
	Product  contract.Product `json:"product"`
	Quantity int              `json:"quantity"`
}

// state is the persisted subset of the store; it is exactly what gets restored
// on the next start.
type state struct {
	Items  []Item `json:"items"`
	IsOpen bool   `json:"isOpen"`
}

// Store owns the cart. Mutations persist synchronously; a persistence failure
// is logged and never surfaced to the caller.
type Store struct {
	mu      sync.Mutex
	items   []Item
	isOpen  bool
	storage Storage
	log     zerolog.Logger
}

// NewStore builds a store rehydrated from storage. A missing or malformed
// payload starts the cart empty.
func NewStore(storage Storage, log zerolog.Logger) *Store {
	s := &Store{
		storage: storage,
		log:     log,
	}

	data, ok, err := storage.Load(StorageKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("cart: failed to load persisted state")
		return s
	}
	if !ok {
		return s
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		s.log.Warn().Err(err).Msg("cart: discarding malformed persisted state")
		return s
	}
	s.items = st.Items
	s.isOpen = st.IsOpen
	return s
}

// AddItem merges the product into the cart: an existing line for the same
// product id gains quantity 1, otherwise a new line with quantity 1 is
// appended. The cart drawer opens either way.
func (s *Store) AddItem(product contract.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.items {
		if s.items[i].Product.ID == product.ID {
			s.items[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, Item{Product: product, Quantity: 1})
	}
	s.isOpen = true
	s.persist()
}

// RemoveItem deletes the line for the product id. Removing an absent id is a
// silent no-op.
func (s *Store) RemoveItem(productID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
	s.persist()
}

// UpdateQuantity sets the line's quantity to exactly quantity. A non-positive
// quantity removes the line; an unknown product id is a no-op.
func (s *Store) UpdateQuantity(productID uint, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID)
		s.persist()
		return
	}
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.persist()
}

// ToggleCart flips the drawer open/closed.
func (s *Store) ToggleCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = !s.isOpen
	s.persist()
}

// ClearCart empties the items; the drawer flag is untouched.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persist()
}

// Items returns a copy of the current lines.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

// Total is the decimal sum of price x quantity over all lines.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.items {
		price, err := decimal.NewFromString(item.Product.Price)
		if err != nil {
			// Prices are validated at the contract boundary; an unparseable
			// one can only come from tampered storage.
			s.log.Warn().Str("price", item.Product.Price).Msg("cart: skipping unparseable price")
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Count is the sum of quantities over all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) removeLocked(productID uint) {
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// persist is fire-and-forget; callers hold the lock.
func (s *Store) persist() {
	data, err := json.Marshal(state{Items: s.items, IsOpen: s.isOpen})
	if err != nil {
		s.log.Warn().Err(err).Msg("cart: failed to encode state")
		return
	}
	if err := s.storage.Save(StorageKey, data); err != nil {
		s.log.Warn().Err(err).Msg("cart: failed to persist state")
	}
}
