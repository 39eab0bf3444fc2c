package services

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tokotitoh/marketplace-client/internal/domain/entities"
	"github.com/tokotitoh/marketplace-client/internal/infrastructure/clients/tokotitoh"
)

// ListingQuery is the full query a listing screen is currently showing:
// scope (subcategory or owning user), free-text search and the filter set.
// The page index lives in the controller, not here.
type ListingQuery struct {
	PageSize      int
	SubcategoryID int64
	UserID        int64
	Search        string
	Filters       tokotitoh.FilterSet
}

// ListingService manages the lifecycle of a filtered, searchable,
// paginated list view backed by the remote listing endpoint. It backs both
// the ads-search screen (page size 8) and the my-ads screen (page size 10,
// user-scoped).
//
// Fetch failures are deliberately silent: they are logged and the list
// keeps whatever it already had. In-flight requests are never cancelled;
// a superseded fetch still overwrites state when it resolves (last write
// wins). Both behaviors match the shipped mobile clients and must not be
// "improved" here.
type ListingService struct {
	client tokotitoh.Client
	logger zerolog.Logger

	mu               sync.Mutex
	query            ListingQuery
	accumulated      []entities.Ad
	currentPage      int
	hasMore          bool
	isLoadingInitial bool
	isLoadingMore    bool
	isRefreshing     bool
}

// NewListingService creates a controller with an empty list
func NewListingService(client tokotitoh.Client, logger zerolog.Logger) *ListingService {
	return &ListingService{
		client:  client,
		logger:  logger.With().Str("component", "listing").Logger(),
		hasMore: true,
	}
}

// LoadInitial fetches page 0 for the given query and replaces the
// accumulated list with the result. The query's page index is always
// forced to 0. May be called while a previous load is in flight; the
// resolution that lands last wins.
func (s *ListingService) LoadInitial(ctx context.Context, query ListingQuery) {
	s.mu.Lock()
	s.query = query
	s.isLoadingInitial = true
	req := s.adsRequest(0)
	s.mu.Unlock()

	rows, err := s.client.Ads(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoadingInitial = false
	s.isRefreshing = false
	if err != nil {
		s.logger.Error().Err(err).Int("page", 0).Msg("failed to fetch ads")
		return
	}
	s.accumulated = rows
	s.currentPage = 0
	s.hasMore = len(rows) == req.Size
}

// LoadMore fetches the next page with the current query and appends it.
// A no-op while a previous LoadMore is running or after the end of data
// was reached.
func (s *ListingService) LoadMore(ctx context.Context) {
	s.mu.Lock()
	if s.isLoadingMore || !s.hasMore {
		s.mu.Unlock()
		return
	}
	s.isLoadingMore = true
	s.currentPage++
	req := s.adsRequest(s.currentPage)
	s.mu.Unlock()

	rows, err := s.client.Ads(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoadingMore = false
	if err != nil {
		s.logger.Error().Err(err).Int("page", req.Page).Msg("failed to fetch ads")
		return
	}
	s.accumulated = append(s.accumulated, rows...)
	s.hasMore = len(rows) == req.Size
}

// Refresh re-derives the list from scratch with the current query:
// resets the end-of-data flag, fetches page 0 and replaces the list.
func (s *ListingService) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.isRefreshing = true
	s.hasMore = true
	query := s.query
	s.mu.Unlock()

	s.LoadInitial(ctx, query)
}

// ApplyFilters merges the given filters into the current set and reloads
// from page 0
func (s *ListingService) ApplyFilters(ctx context.Context, filters tokotitoh.FilterSet) {
	s.mu.Lock()
	s.query.Filters = s.query.Filters.Clone().Merge(filters)
	query := s.query
	s.mu.Unlock()

	s.LoadInitial(ctx, query)
}

// SetSearchText records the search term without fetching. The fetch
// happens only on an explicit submit (LoadInitial or Refresh), never per
// keystroke.
func (s *ListingService) SetSearchText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Search = text
}

// ResetFilters clears the filter set to its all-empty default. It does not
// fetch; the screen applies the cleared set explicitly.
func (s *ListingService) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Filters = tokotitoh.FilterSet{}
}

// Ads returns a copy of the accumulated rows in page order
func (s *ListingService) Ads() []entities.Ad {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.Ad, len(s.accumulated))
	copy(out, s.accumulated)
	return out
}

// HasMore reports whether another page is believed to exist. Inferred
// solely from the short-page rule: the last page was full. When the
// remaining count exactly equals the page size this stays true for one
// extra empty fetch; that imprecision is part of the backend contract.
func (s *ListingService) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore
}

// CurrentPage returns the last fetched page index
func (s *ListingService) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPage
}

// Query returns the current query
func (s *ListingService) Query() ListingQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.query
	q.Filters = s.query.Filters.Clone()
	return q
}

// Loading reports the three independent progress flags:
// initial load, load-more and pull-to-refresh.
func (s *ListingService) Loading() (initial, more, refreshing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoadingInitial, s.isLoadingMore, s.isRefreshing
}

func (s *ListingService) adsRequest(page int) tokotitoh.AdsRequest {
	return tokotitoh.AdsRequest{
		Page:          page,
		Size:          s.query.PageSize,
		SubcategoryID: s.query.SubcategoryID,
		UserID:        s.query.UserID,
		Search:        s.query.Search,
		Filters:       s.query.Filters.Clone(),
	}
}
