package marketplace

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kosthub/backend/internal/domain/marketplace"
	"github.com/kosthub/backend/internal/domain/property"
	"github.com/kosthub/backend/internal/domain/shared"
	"github.com/kosthub/backend/internal/infrastructure/telemetry"
)

// ListingCache holds the most recent complete derivation. Like the
// entitlement cache, a cache failure degrades to a fresh derivation and
// never fails the request.
type ListingCache interface {
	// Get returns the cached derivation; the bool is false on a miss
	Get(ctx context.Context) ([]marketplace.Listing, bool, error)
	// Set stores a derivation with a TTL
	Set(ctx context.Context, listings []marketplace.Listing, ttl time.Duration) error
	// Invalidate drops the cached derivation
	Invalidate(ctx context.Context) error
}

// ListingServiceConfig contains configuration for the listing service
type ListingServiceConfig struct {
	// DeriveConcurrency caps concurrent per-property catalog reads
	DeriveConcurrency int
	// IncludeZeroAvailability keeps fully-occupied listings in results
	IncludeZeroAvailability bool
	// CacheTTL bounds staleness of the cached derivation; zero disables
	CacheTTL time.Duration
}

// DefaultListingServiceConfig returns default configuration
func DefaultListingServiceConfig() ListingServiceConfig {
	return ListingServiceConfig{
		DeriveConcurrency:       8,
		IncludeZeroAvailability: true,
		CacheTTL:                30 * time.Second,
	}
}

// PropertyFailure marks a property skipped because its catalog could
// not be read. It rides in the response meta so clients can tell a
// complete result from a partial one.
type PropertyFailure struct {
	PropertyID   uuid.UUID `json:"property_id"`
	PropertyName string    `json:"property_name"`
	Reason       string    `json:"reason"`
}

// SearchListingsInput represents a public listing search
type SearchListingsInput struct {
	Filter   marketplace.Filter
	Page     int
	PageSize int
}

// ListingSearchResult represents one page of derived listings
type ListingSearchResult struct {
	Listings   []marketplace.Listing `json:"listings"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
	Failures   []PropertyFailure     `json:"partial_failures,omitempty"`
}

// ListingService derives the public marketplace from owner catalogs on
// read. Nothing here is persisted: a listing is a projection of a
// published property's room types against live room status. The service
// performs no auth checks, privacy comes from deriving only published
// properties.
type ListingService struct {
	catalog property.CatalogReader
	cache   ListingCache
	config  ListingServiceConfig
	logger  *zap.Logger

	businessMetrics *telemetry.BusinessMetrics
}

// NewListingService creates a new listing service
func NewListingService(
	catalog property.CatalogReader,
	cache ListingCache,
	config ListingServiceConfig,
	logger *zap.Logger,
) *ListingService {
	return &ListingService{
		catalog: catalog,
		cache:   cache,
		config:  config,
		logger:  logger,
	}
}

// SetBusinessMetrics sets the business metrics collector
func (s *ListingService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// DeriveListings derives all current listings and applies the filter.
// Properties whose catalog read fails are skipped and reported, one bad
// property must not empty the marketplace. Only the candidate query
// itself failing aborts the derivation.
func (s *ListingService) DeriveListings(ctx context.Context, filter marketplace.Filter) ([]marketplace.Listing, []PropertyFailure, error) {
	listings, failures, err := s.deriveAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	if !s.config.IncludeZeroAvailability {
		listings = marketplace.DropZeroAvailability(listings)
	}

	return filter.Apply(listings), failures, nil
}

// Search derives, filters and paginates listings for the public
// marketplace endpoint
func (s *ListingService) Search(ctx context.Context, input SearchListingsInput) (*ListingSearchResult, error) {
	listings, failures, err := s.DeriveListings(ctx, input.Filter)
	if err != nil {
		return nil, err
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	total := len(listings)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return &ListingSearchResult{
		Listings:   listings[start:end],
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Failures:   failures,
	}, nil
}

// GetListing returns the single listing for a property slug and room
// type name. The zero-availability policy applies here too: a listing
// hidden from search does not deep-link.
func (s *ListingService) GetListing(ctx context.Context, slug, roomTypeName string) (*marketplace.Listing, error) {
	listings, _, err := s.DeriveListings(ctx, marketplace.Filter{})
	if err != nil {
		return nil, err
	}

	for i := range listings {
		if listings[i].PropertySlug == slug && strings.EqualFold(listings[i].RoomTypeName, roomTypeName) {
			return &listings[i], nil
		}
	}

	return nil, shared.NewDomainError("LISTING_NOT_FOUND", "Listing not found")
}

// Cities returns the distinct cities of current listings in display
// casing, alphabetically
func (s *ListingService) Cities(ctx context.Context) ([]string, error) {
	listings, _, err := s.DeriveListings(ctx, marketplace.Filter{})
	if err != nil {
		return nil, err
	}

	// Casers are stateful and must not be shared across goroutines
	fold := cases.Fold()
	title := cases.Title(language.Indonesian)

	seen := make(map[string]string)
	for _, listing := range listings {
		if listing.City == "" {
			continue
		}
		key := fold.String(listing.City)
		if _, ok := seen[key]; !ok {
			seen[key] = title.String(listing.City)
		}
	}

	cities := make([]string, 0, len(seen))
	for _, city := range seen {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	return cities, nil
}

// deriveAll produces the unfiltered listing set, serving from the
// cache when a complete derivation is fresh
func (s *ListingService) deriveAll(ctx context.Context) ([]marketplace.Listing, []PropertyFailure, error) {
	if s.cacheEnabled() {
		cached, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("Listing cache read failed, deriving fresh", zap.Error(err))
		} else if ok {
			return cached, nil, nil
		}
	}

	started := time.Now()

	candidates, err := s.catalog.ListListable(ctx)
	if err != nil {
		s.logger.Error("Listable property query failed", zap.Error(err))
		return nil, nil, shared.ErrCatalogRead
	}

	perProperty := make([][]marketplace.Listing, len(candidates))
	failed := make([]*PropertyFailure, len(candidates))

	// The group only bounds the fan-out. Workers record failures
	// instead of returning them so one bad read cannot cancel the rest,
	// and the indexed slices keep catalog property order.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.deriveConcurrency())
	for i, candidate := range candidates {
		g.Go(func() error {
			catalog, err := s.catalog.ReadCatalog(gctx, candidate.ID)
			if err != nil {
				s.logger.Warn("Catalog read failed, skipping property",
					zap.String("property_id", candidate.ID.String()),
					zap.String("property_name", candidate.Name),
					zap.Error(err))
				failed[i] = &PropertyFailure{
					PropertyID:   candidate.ID,
					PropertyName: candidate.Name,
					Reason:       "catalog_read_failed",
				}
				return nil
			}
			perProperty[i] = marketplace.DeriveFromCatalog(catalog)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	listings := make([]marketplace.Listing, 0, len(candidates))
	var failures []PropertyFailure
	for i := range candidates {
		if failed[i] != nil {
			failures = append(failures, *failed[i])
			continue
		}
		listings = append(listings, perProperty[i]...)
	}

	if s.businessMetrics != nil {
		s.businessMetrics.RecordListingDerivation(ctx, time.Since(started), len(listings))
		for _, failure := range failures {
			s.businessMetrics.RecordPropertySkipped(ctx, failure.Reason)
		}
	}

	// A partial derivation is not cached: a property skipped by a
	// transient failure would stay missing for the whole TTL
	if len(failures) == 0 {
		s.remember(ctx, listings)
	}

	return listings, failures, nil
}

func (s *ListingService) cacheEnabled() bool {
	return s.cache != nil && s.config.CacheTTL > 0
}

func (s *ListingService) deriveConcurrency() int {
	if s.config.DeriveConcurrency < 1 {
		return 1
	}
	return s.config.DeriveConcurrency
}

func (s *ListingService) remember(ctx context.Context, listings []marketplace.Listing) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.cache.Set(ctx, listings, s.config.CacheTTL); err != nil {
		s.logger.Warn("Listing cache write failed", zap.Error(err))
	}
}

// Handle implements shared.EventHandler. Any catalog mutation makes the
// cached derivation stale.
func (s *ListingService) Handle(ctx context.Context, event shared.DomainEvent) error {
	if !s.cacheEnabled() {
		return nil
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("Listing cache invalidation failed",
			zap.String("event_type", event.EventType()),
			zap.Error(err))
	}
	return nil
}

// EventTypes implements shared.EventHandler
func (s *ListingService) EventTypes() []string {
	return []string{
		property.EventTypePropertyCreated,
		property.EventTypePropertyUpdated,
		property.EventTypePropertyPublished,
		property.EventTypePropertyUnpublished,
		property.EventTypePropertyMarketplaceToggled,
		property.EventTypePropertyDeleted,
		property.EventTypeRoomTypeCreated,
		property.EventTypeRoomTypeUpdated,
		property.EventTypeRoomTypeRenamed,
		property.EventTypeRoomTypeDeleted,
		property.EventTypeRoomCreated,
		property.EventTypeRoomUpdated,
		property.EventTypeRoomStatusChanged,
		property.EventTypeRoomDeleted,
	}
}

// Ensure ListingService implements shared.EventHandler
var _ shared.EventHandler = (*ListingService)(nil)
