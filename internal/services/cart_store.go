package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"apotek/internal/models"
	"apotek/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// StorageCorruptionError reports a stored cart that could not be decoded.
// The store recovers by starting empty, so this error is only logged.
type StorageCorruptionError struct {
	Key string
	Err error
}

func (e *StorageCorruptionError) Error() string {
	return fmt.Sprintf("cart storage %s is unreadable: %v", e.Key, e.Err)
}

func (e *StorageCorruptionError) Unwrap() error { return e.Err }

// CartStore holds the shopping cart of one browser session. Every mutation writes the
// full line list to storage before returning.
//
// Quantities are kept within [1, stock] using the stock count carried by the medicine
// at the time of the mutation.
type CartStore struct {
	key     string
	storage repositories.CartStorage
	log     logrus.FieldLogger

	mu    sync.RWMutex
	lines []models.CartLine
}

// NewCartStore loads the cart stored under key. Missing or malformed data yields an empty cart.
func NewCartStore(ctx context.Context, storage repositories.CartStorage, key string, log logrus.FieldLogger) *CartStore {
	s := &CartStore{
		key:     key,
		storage: storage,
		log:     log.WithField("cart", key),
		lines:   []models.CartLine{},
	}

	data, err := storage.Load(ctx, key)
	if err != nil {
		s.log.WithError(err).Warn("could not read stored cart, starting empty")
		return s
	}
	if len(data) == 0 {
		return s
	}
	lines, err := decodeLines(key, data)
	if err != nil {
		s.log.WithError(err).Warn("discarding unreadable cart")
		return s
	}
	s.lines = lines
	return s
}

func decodeLines(key string, data []byte) ([]models.CartLine, error) {
	var stored []models.CartLine
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, &StorageCorruptionError{Key: key, Err: err}
	}

	lines := make([]models.CartLine, 0, len(stored))
	seen := make(map[string]bool, len(stored))
	for _, l := range stored {
		l.Quantity = min(l.Quantity, l.Medicine.StockQuantity)
		if l.Medicine.ID == "" || l.Quantity < 1 || seen[l.Medicine.ID] {
			continue
		}
		seen[l.Medicine.ID] = true
		lines = append(lines, l)
	}
	return lines, nil
}

// Key is the storage key the cart persists under.
func (s *CartStore) Key() string {
	return s.key
}

// AddItem increments the line for medicine by one, or inserts it with quantity 1.
// Adding beyond the medicine's stock leaves the cart unchanged.
func (s *CartStore) AddItem(ctx context.Context, medicine models.Medicine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(medicine.ID); i >= 0 {
		s.lines[i].Medicine = medicine
		if s.lines[i].Quantity < medicine.StockQuantity {
			s.lines[i].Quantity++
		} else {
			s.lines[i].Quantity = max(medicine.StockQuantity, 0)
			if s.lines[i].Quantity == 0 {
				s.removeAt(i)
			}
		}
	} else if medicine.StockQuantity > 0 {
		s.lines = append(s.lines, models.CartLine{Medicine: medicine, Quantity: 1})
	} else {
		s.log.WithField("medicine", medicine.ID).Debug("ignoring add of out-of-stock medicine")
	}
	return s.persist(ctx)
}

// SetQuantity replaces the quantity of a line. A quantity of zero or less removes the line;
// a quantity above stock is clamped. Unknown ids are ignored.
func (s *CartStore) SetQuantity(ctx context.Context, medicineID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(medicineID)
	if i < 0 {
		return nil
	}
	quantity = min(quantity, s.lines[i].Medicine.StockQuantity)
	if quantity <= 0 {
		s.removeAt(i)
	} else {
		s.lines[i].Quantity = quantity
	}
	return s.persist(ctx)
}

// RemoveItem deletes the line for medicineID if present.
func (s *CartStore) RemoveItem(ctx context.Context, medicineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(medicineID); i >= 0 {
		s.removeAt(i)
	}
	return s.persist(ctx)
}

// Clear empties the cart.
func (s *CartStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = []models.CartLine{}
	return s.persist(ctx)
}

// Deduct subtracts the quantities of ordered from the cart, removing lines that reach
// zero. Units added after ordered was taken stay in the cart.
func (s *CartStore) Deduct(ctx context.Context, ordered []models.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range ordered {
		i := s.indexOf(o.Medicine.ID)
		if i < 0 {
			continue
		}
		if s.lines[i].Quantity <= o.Quantity {
			s.removeAt(i)
		} else {
			s.lines[i].Quantity -= o.Quantity
		}
	}
	return s.persist(ctx)
}

// Lines returns a copy of the cart lines in insertion order.
func (s *CartStore) Lines() []models.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Quantity returns the quantity held for medicineID, or 0.
func (s *CartStore) Quantity(medicineID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(medicineID); i >= 0 {
		return s.lines[i].Quantity
	}
	return 0
}

// IsEmpty reports whether the cart has no lines.
func (s *CartStore) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines) == 0
}

// TotalItemCount is the sum of all line quantities.
func (s *CartStore) TotalItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity over all lines.
func (s *CartStore) TotalPrice() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (s *CartStore) indexOf(medicineID string) int {
	for i, l := range s.lines {
		if l.Medicine.ID == medicineID {
			return i
		}
	}
	return -1
}

func (s *CartStore) removeAt(i int) {
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
}

// persist must be called with s.mu held.
func (s *CartStore) persist(ctx context.Context) error {
	data, err := json.Marshal(s.lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart %s: %w", s.key, err)
	}
	if err := s.storage.Save(ctx, s.key, data); err != nil {
		s.log.WithError(err).Error("failed to persist cart")
		return fmt.Errorf("failed to persist cart %s: %w", s.key, err)
	}
	return nil
}

// CartStores hands out one CartStore per browser session.
type CartStores struct {
	storage   repositories.CartStorage
	namespace string
	log       logrus.FieldLogger

	mu     sync.Mutex
	stores map[string]*CartStore
}

// NewCartStores creates a registry whose storage keys are "<namespace>:<session id>".
func NewCartStores(storage repositories.CartStorage, namespace string, log logrus.FieldLogger) *CartStores {
	return &CartStores{
		storage:   storage,
		namespace: namespace,
		log:       log,
		stores:    make(map[string]*CartStore),
	}
}

// For returns the cart of a session, loading it from storage on first use.
func (r *CartStores) For(ctx context.Context, sessionID string) *CartStore {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[sessionID]; ok {
		return s
	}
	s := NewCartStore(ctx, r.storage, r.namespace+":"+sessionID, r.log)
	r.stores[sessionID] = s
	return s
}
