// Package aggregate builds the combined profile/library/wishlist view
// for one Steam ID and enriches every referenced app with Store catalog
// details. Profile, library and wishlist are all-or-nothing; catalog
// enrichment is best-effort per app.
package aggregate

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/lepinkainen/steamlens/internal/apperrors"
	"github.com/lepinkainen/steamlens/internal/cache"
	"github.com/lepinkainen/steamlens/internal/metrics"
	"github.com/lepinkainen/steamlens/internal/steam"
)

const defaultWorkers = 8

// Builder assembles aggregate results using a Steam client and an
// optional catalog cache.
type Builder struct {
	client      *steam.Client
	cacheDB     *cache.DB
	workers     int
	detailTTL   time.Duration
	negativeTTL time.Duration
}

// NewBuilder creates a Builder with defaults: 8 enrichment workers, no
// cache.
func NewBuilder(client *steam.Client, opts ...BuilderOption) *Builder {
	b := &Builder{
		client:      client,
		workers:     defaultWorkers,
		detailTTL:   cache.DefaultTTL,
		negativeTTL: cache.NegativeTTL,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// BuilderOption is a functional option for configuring the Builder.
type BuilderOption func(*Builder)

// WithWorkers caps concurrent catalog-detail fetches. The Store rate
// limiter bounds throughput either way; this bounds in-flight calls.
func WithWorkers(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithCache enables TTL caching of catalog details.
func WithCache(db *cache.DB) BuilderOption {
	return func(b *Builder) {
		b.cacheDB = db
	}
}

// WithDetailTTL sets the cache TTLs for found and not-found catalog
// results.
func WithDetailTTL(found, notFound time.Duration) BuilderOption {
	return func(b *Builder) {
		if found > 0 {
			b.detailTTL = found
		}
		if notFound > 0 {
			b.negativeTTL = notFound
		}
	}
}

// Build produces the aggregate result for steamID.
//
// Stage 1 fetches profile, library and wishlist concurrently; any
// failure there aborts the build, since the caller's contract needs all
// three sections. Stage 2 fans catalog-detail fetches out over the
// distinct appids the library and wishlist reference; each failure
// there is absorbed, leaving that entry without details. Every call,
// fatal or absorbed, lands in the result's audit trail.
func (b *Builder) Build(ctx context.Context, steamID string) (*Result, error) {
	if steamID == "" {
		return nil, apperrors.NewValidationError("steamId", "is required")
	}
	if !isNumericID(steamID) {
		return nil, apperrors.NewValidationError("steamId", "must be a numeric Steam ID")
	}

	log := &callLog{}

	var (
		profile    *steam.Profile
		ownedGames []steam.OwnedGame
		wishlist   []steam.WishlistItem

		profileErr  error
		libraryErr  error
		wishlistErr error
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		profile, profileErr = b.client.GetPlayerSummary(ctx, steamID)
		metrics.RecordUpstreamCall("playersummaries", profileErr)
		log.record("profile", 0, profile, profileErr)
	}()
	go func() {
		defer wg.Done()
		ownedGames, libraryErr = b.client.GetOwnedGames(ctx, steamID)
		metrics.RecordUpstreamCall("ownedgames", libraryErr)
		log.record("library", 0, ownedGames, libraryErr)
	}()
	go func() {
		defer wg.Done()
		wishlist, wishlistErr = b.client.GetWishlist(ctx, steamID)
		metrics.RecordUpstreamCall("wishlist", wishlistErr)
		log.record("wishlist", 0, wishlist, wishlistErr)
	}()
	wg.Wait()

	for _, err := range []error{profileErr, libraryErr, wishlistErr} {
		if err != nil {
			return nil, err
		}
	}

	details := b.enrichAll(ctx, log, appIDs(ownedGames, wishlist))

	result := &Result{
		Profile:    profile,
		OwnedGames: make([]LibraryEntry, 0, len(ownedGames)),
		Wishlist:   make([]WishlistEntry, 0, len(wishlist)),
	}
	for _, game := range ownedGames {
		result.OwnedGames = append(result.OwnedGames, LibraryEntry{
			OwnedGame: game,
			Details:   details[game.AppID],
		})
	}
	for _, item := range wishlist {
		result.Wishlist = append(result.Wishlist, WishlistEntry{
			WishlistItem: item,
			Details:      details[item.AppID],
		})
	}
	result.Calls = log.all()

	return result, nil
}

// enrichAll fetches catalog details for each appid through a bounded
// worker pool. One fetch per distinct appid: an app that is both owned
// and wishlisted shares its result. Failures are logged and counted but
// never stop siblings.
func (b *Builder) enrichAll(ctx context.Context, log *callLog, ids []int) map[int]*steam.GameDetails {
	details := make(map[int]*steam.GameDetails, len(ids))
	if len(ids) == 0 {
		return details
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, b.workers)
	)

	for _, appID := range ids {
		wg.Add(1)
		go func(appID int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			d, err := b.fetchDetails(ctx, appID)
			log.record("appdetails", appID, d, err)
			if err != nil {
				metrics.EnrichmentFailuresTotal.Inc()
				slog.Warn("Skipping enrichment for app", "appid", appID, "error", err)
				return
			}

			mu.Lock()
			details[appID] = d
			mu.Unlock()
		}(appID)
	}
	wg.Wait()

	return details
}

// cachedDetail is the cache representation of one enrichment result.
// Not-found answers are cached too, with a shorter TTL.
type cachedDetail struct {
	Details  *steam.GameDetails `json:"details"`
	NotFound bool               `json:"not_found"`
}

// Details returns normalized store details for a single app, going
// through the same cache the aggregation pipeline uses.
func (b *Builder) Details(ctx context.Context, appID int) (*steam.GameDetails, error) {
	return b.fetchDetails(ctx, appID)
}

func (b *Builder) fetchDetails(ctx context.Context, appID int) (*steam.GameDetails, error) {
	key := "app:" + strconv.Itoa(appID)

	ttlFor := func(v cachedDetail) time.Duration {
		if v.NotFound {
			return b.negativeTTL
		}
		return b.detailTTL
	}

	fetchFunc := func() (cachedDetail, error) {
		d, err := b.client.GetAppDetails(ctx, appID)
		metrics.RecordUpstreamCall("appdetails", err)
		if err != nil {
			if apperrors.IsNotFoundError(err) {
				return cachedDetail{NotFound: true}, nil
			}
			return cachedDetail{}, err
		}
		return cachedDetail{Details: d}, nil
	}

	value, hit, err := cache.GetOrFetchWithTTL(b.cacheDB, key, fetchFunc, ttlFor)
	if b.cacheDB != nil {
		metrics.RecordCacheLookup(hit)
	}
	if err != nil {
		return nil, err
	}
	if value.NotFound {
		nferr := apperrors.NewNotFoundError("game details")
		nferr.AppID = appID
		return nil, nferr
	}

	return value.Details, nil
}

// appIDs returns the distinct appids referenced by the library and
// wishlist, in first-seen order.
func appIDs(games []steam.OwnedGame, wishlist []steam.WishlistItem) []int {
	seen := make(map[int]bool, len(games)+len(wishlist))
	var ids []int
	for _, g := range games {
		if !seen[g.AppID] {
			seen[g.AppID] = true
			ids = append(ids, g.AppID)
		}
	}
	for _, w := range wishlist {
		if !seen[w.AppID] {
			seen[w.AppID] = true
			ids = append(ids, w.AppID)
		}
	}
	return ids
}

// isNumericID reports whether s is a non-empty string of digits.
func isNumericID(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
