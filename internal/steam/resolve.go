package steam

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/lepinkainen/steamlens/internal/apperrors"
)

// ResolveSteamID resolves free-text user input to a numeric Steam ID.
// It tries vanity-URL resolution first and falls back to treating the
// input as a literal id via the player-summaries endpoint. Best-effort:
// a failed vanity call just moves on to the fallback.
func (c *Client) ResolveSteamID(ctx context.Context, username string) (string, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("vanityurl", username)

	endpoint := fmt.Sprintf("%s/ISteamUser/ResolveVanityURL/v1/?%s", c.apiBaseURL, params.Encode())

	var resp vanityResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		slog.Debug("Vanity resolution failed, falling back to literal id", "username", username, "error", err)
	} else if resp.Response.Success == 1 && resp.Response.SteamID != "" {
		return resp.Response.SteamID, nil
	}

	profile, err := c.GetPlayerSummary(ctx, username)
	if err != nil {
		nferr := apperrors.NewNotFoundError("steam id for username")
		nferr.SteamID = username
		return "", nferr
	}

	return profile.SteamID, nil
}
