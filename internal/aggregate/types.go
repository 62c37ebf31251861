package aggregate

import "github.com/lepinkainen/steamlens/internal/steam"

// LibraryEntry is one owned game, optionally carrying its catalog
// details. Details stays nil when enrichment failed or found nothing.
type LibraryEntry struct {
	steam.OwnedGame
	Details *steam.GameDetails `json:"game_details,omitempty"`
}

// WishlistEntry is one wishlisted game, optionally enriched the same
// way.
type WishlistEntry struct {
	steam.WishlistItem
	Details *steam.GameDetails `json:"game_details,omitempty"`
}

// Result is the aggregate view for one Steam ID: profile, enriched
// library and wishlist, and the audit log of every upstream call made
// while building it.
type Result struct {
	Profile    *steam.Profile  `json:"profile"`
	OwnedGames []LibraryEntry  `json:"owned_games"`
	Wishlist   []WishlistEntry `json:"wishlist"`
	Calls      []CallRecord    `json:"calls"`
}
