package steam

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/lepinkainen/steamlens/internal/apperrors"
)

// GetWishlist fetches a user's wishlist. Unlike the library fetcher
// this one accepts a response without an items list as a legitimately
// empty wishlist; only a missing top-level response object is treated
// as a broken upstream. Many valid accounts simply have no wishlist.
func (c *Client) GetWishlist(ctx context.Context, steamID string) ([]WishlistItem, error) {
	params := url.Values{}
	params.Set("steamid", steamID)

	endpoint := fmt.Sprintf("%s/IWishlistService/GetWishlist/v1/?%s", c.apiBaseURL, params.Encode())

	var resp wishlistResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, apperrors.NewUpstreamError("wishlist", err)
	}

	if resp.Response == nil {
		return nil, apperrors.NewUpstreamError("wishlist", errors.New("malformed envelope: missing response object"))
	}

	items := make([]WishlistItem, 0, len(resp.Response.Items))
	for _, it := range resp.Response.Items {
		items = append(items, WishlistItem{
			AppID:     it.AppID,
			Priority:  it.Priority,
			DateAdded: time.Unix(it.DateAdded, 0).UTC().Format("1/2/2006"),
		})
	}

	return items, nil
}
