// internal/catalog/store.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/dress-catalog/internal/kvstore"
	"github.com/javajoker/dress-catalog/internal/models"
	"github.com/javajoker/dress-catalog/internal/search"
)

// StorageKey is where the added list snapshot lives.
const StorageKey = "custom_products"

const idPrefix = "custom-"

// Merge returns baseline followed by added, as a new slice.
func Merge(baseline, added []models.Product) []models.Product {
	merged := make([]models.Product, 0, len(baseline)+len(added))
	merged = append(merged, baseline...)
	return append(merged, added...)
}

// Prepend returns a new slice with p in front of existing. Ids are not deduplicated.
func Prepend(existing []models.Product, p models.Product) []models.Product {
	out := make([]models.Product, 0, len(existing)+1)
	out = append(out, p)
	return append(out, existing...)
}

// NewProduct is the user input for Add.
type NewProduct struct {
	Title   string
	Brand   string
	Price   int
	Rating  *float64
	Reviews *int
	Image   string
	InStock *bool
	URL     string
	Tags    []string
	Colors  []string
	Sizes   []string
}

type Options struct {
	// DefaultBrand is used when a new product has no brand.
	DefaultBrand string
	// Merchant labels every user-added product.
	Merchant string
	// NewID overrides id generation, mainly for tests.
	NewID func() string
}

// Store holds the immutable baseline and the user-added list, persisting the latter in full
// on every change.
type Store struct {
	mu       sync.RWMutex
	baseline []models.Product
	added    []models.Product
	kv       kvstore.Store
	opts     Options
}

func NewStore(baseline []models.Product, kv kvstore.Store, opts Options) *Store {
	if opts.NewID == nil {
		opts.NewID = func() string { return idPrefix + uuid.NewString() }
	}
	return &Store{
		baseline: append([]models.Product(nil), baseline...),
		kv:       kv,
		opts:     opts,
	}
}

// Load reads the persisted added list once. Missing or unreadable data leaves it empty.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.added = nil

	data, err := s.kv.Get(ctx, StorageKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return
	}
	if err != nil {
		logrus.WithError(err).WithField("key", StorageKey).Warn("Failed to read saved products, starting empty")
		return
	}

	var added []models.Product
	if err := json.Unmarshal(data, &added); err != nil {
		logrus.WithError(err).WithField("key", StorageKey).Warn("Saved products are not valid JSON, starting empty")
		return
	}

	s.added = added
	logrus.WithField("count", len(added)).Info("Loaded saved products")
}

// Add prepends a product built from np. It declines, returning false, when the title or
// the image reference is missing.
func (s *Store) Add(ctx context.Context, np NewProduct) (models.Product, bool) {
	title := strings.TrimSpace(np.Title)
	image := strings.TrimSpace(np.Image)
	if title == "" || image == "" {
		return models.Product{}, false
	}

	brand := strings.TrimSpace(np.Brand)
	if brand == "" {
		brand = s.opts.DefaultBrand
	}

	inStock := true
	if np.InStock != nil {
		inStock = *np.InStock
	}

	price := np.Price
	if price < 0 {
		price = 0
	}

	p := models.Product{
		ID:       s.opts.NewID(),
		Title:    title,
		Brand:    brand,
		Price:    price,
		Rating:   np.Rating,
		Reviews:  np.Reviews,
		Colors:   nonNil(np.Colors),
		Sizes:    nonNil(np.Sizes),
		Tags:     nonNil(np.Tags),
		Image:    image,
		InStock:  &inStock,
		Merchant: s.opts.Merchant,
		URL:      strings.TrimSpace(np.URL),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.added = Prepend(s.added, p)
	s.persist(ctx)

	return p, true
}

// persist writes the whole added list. Failures are logged and otherwise ignored.
func (s *Store) persist(ctx context.Context) {
	snapshot := s.added
	if snapshot == nil {
		snapshot = []models.Product{}
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		logrus.WithError(err).Error("Failed to encode saved products")
		return
	}

	if err := s.kv.Set(ctx, StorageKey, data); err != nil {
		logrus.WithError(err).WithField("key", StorageKey).Error("Failed to save products")
	}
}

// All is the merged catalog: baseline first, then user-added products newest first.
func (s *Store) All() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Merge(s.baseline, s.added)
}

// Added returns a copy of the user-added list.
func (s *Store) Added() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.added...)
}

// Brands lists every brand in the merged catalog once, in order of first appearance.
func (s *Store) Brands() []string {
	return search.AllBrands(s.All())
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.baseline) + len(s.added)
}

func nonNil(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
