package steam

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/lepinkainen/steamlens/internal/apperrors"
)

// GetOwnedGames fetches a user's library with app info and played free
// games included. A response without a games list is an UpstreamError:
// the endpoint always includes the list for readable profiles, so its
// absence means the upstream is broken or the profile unreadable, not
// that the user owns nothing.
func (c *Client) GetOwnedGames(ctx context.Context, steamID string) ([]OwnedGame, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("steamid", steamID)
	params.Set("include_appinfo", "true")
	params.Set("include_played_free_games", "true")

	endpoint := fmt.Sprintf("%s/IPlayerService/GetOwnedGames/v1/?%s", c.apiBaseURL, params.Encode())

	var resp ownedGamesResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, apperrors.NewUpstreamError("ownedgames", err)
	}

	if resp.Response.Games == nil {
		return nil, apperrors.NewUpstreamError("ownedgames", errors.New("response missing games list"))
	}

	games := make([]OwnedGame, 0, len(*resp.Response.Games))
	for _, g := range *resp.Response.Games {
		game := OwnedGame{
			AppID:                    g.AppID,
			Name:                     g.Name,
			PlaytimeForever:          minutesToHours(g.PlaytimeForever),
			ImgIconURL:               g.ImgIconURL,
			HasCommunityVisibleStats: g.HasCommunityVisibleStats,
			PlaytimeWindowsForever:   minutesToHours(g.PlaytimeWindowsForever),
			PlaytimeMacForever:       minutesToHours(g.PlaytimeMacForever),
			PlaytimeLinuxForever:     minutesToHours(g.PlaytimeLinuxForever),
		}
		if g.RtimeLastPlayed > 0 {
			game.RtimeLastPlayed = time.Unix(g.RtimeLastPlayed, 0).UTC().Format(time.RFC3339)
		}
		games = append(games, game)
	}

	return games, nil
}

// minutesToHours converts upstream playtime minutes to whole hours,
// rounding halves away from zero (90min -> 2h, 125min -> 2h).
func minutesToHours(minutes int) int {
	return int(math.Round(float64(minutes) / 60.0))
}
