package steam

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/lepinkainen/steamlens/internal/apperrors"
)

// GetPlayerSummary fetches one account's profile from the
// player-summaries endpoint. A well-formed response with zero player
// records is a NotFoundError; transport and status failures are
// UpstreamErrors.
func (c *Client) GetPlayerSummary(ctx context.Context, steamID string) (*Profile, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("steamids", steamID)

	endpoint := fmt.Sprintf("%s/ISteamUser/GetPlayerSummaries/v2/?%s", c.apiBaseURL, params.Encode())

	var resp playerSummariesResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, apperrors.NewUpstreamError("playersummaries", err)
	}

	if len(resp.Response.Players) == 0 {
		nferr := apperrors.NewNotFoundError("player")
		nferr.SteamID = steamID
		return nil, nferr
	}

	player := resp.Response.Players[0]
	profile := &Profile{
		SteamID:                  player.SteamID,
		PersonaName:              player.PersonaName,
		Avatar:                   player.AvatarFull,
		RealName:                 player.RealName,
		Country:                  player.LocCountryCode,
		TimeCreated:              player.TimeCreated,
		LastLogoff:               player.LastLogoff,
		ProfileURL:               player.ProfileURL,
		PersonaState:             player.PersonaState,
		GameID:                   player.GameID,
		PrimaryClanID:            player.PrimaryClanID,
		CommunityVisibilityState: player.CommunityVisibilityState,
		CommentPermission:        player.CommentPermission,
		CurrentStatus:            PersonaStateLabel(player.PersonaState),
		CurrentGame:              player.GameExtraInfo,
		ProfileVisibility:        VisibilityStateLabel(player.CommunityVisibilityState),
	}

	// Private profiles omit the epoch fields entirely.
	if player.LastLogoff > 0 {
		profile.LastOnline = time.Unix(player.LastLogoff, 0).UTC().Format(time.RFC3339)
	}
	if player.TimeCreated > 0 {
		profile.AccountCreated = time.Unix(player.TimeCreated, 0).UTC().Format(time.RFC3339)
	}

	return profile, nil
}
