package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/lepinkainen/steamlens/internal/apperrors"
)

// GetAppDetails fetches and normalizes catalog metadata for one app
// from the Store appdetails endpoint, going through the retrying fetch
// client since the Store throttles with non-JSON error pages.
//
// The envelope is keyed by the requested app id and must report success
// with a data payload; failing any of those three checks is a
// NotFoundError carrying the raw envelope for diagnostics. Transport
// failures after retries surface as UpstreamError.
func (c *Client) GetAppDetails(ctx context.Context, appID int) (*GameDetails, error) {
	if err := c.storeLimiter.Wait(ctx); err != nil {
		return nil, apperrors.NewUpstreamError("appdetails", err)
	}

	endpoint := fmt.Sprintf("%s/api/appdetails?appids=%d", c.storeBaseURL, appID)

	var raw json.RawMessage
	if err := c.fetcher.GetJSON(ctx, endpoint, &raw); err != nil {
		return nil, apperrors.NewUpstreamError("appdetails", err)
	}

	var envelope map[string]appDetailsEntry
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, apperrors.NewUpstreamError("appdetails", fmt.Errorf("malformed envelope: %w", err))
	}

	entry, ok := envelope[strconv.Itoa(appID)]
	if !ok || !entry.Success || len(entry.Data) == 0 {
		nferr := apperrors.NewNotFoundError("game details")
		nferr.AppID = appID
		nferr.Raw = raw
		return nil, nferr
	}

	var data appDetailsData
	if err := json.Unmarshal(entry.Data, &data); err != nil {
		return nil, apperrors.NewUpstreamError("appdetails", fmt.Errorf("malformed data payload: %w", err))
	}

	return normalizeAppDetails(&data), nil
}

// normalizeAppDetails resolves every optional upstream group to an
// explicit value so the result is structurally complete even when
// sparse. PriceOverview alone stays nil, marking an unpriced game.
func normalizeAppDetails(data *appDetailsData) *GameDetails {
	details := &GameDetails{
		Name:             data.Name,
		ShortDescription: data.ShortDescription,
		HeaderImage:      data.HeaderImage,
		Categories:       make([]Category, 0, len(data.Categories)),
		Genres:           make([]Genre, 0, len(data.Genres)),
		Developers:       data.Developers,
		Publishers:       data.Publishers,
		Screenshots:      data.Screenshots,
		Movies:           data.Movies,
	}

	// Category ids arrive as strings or numbers; they are coerced to
	// int. Genre ids stay strings. Consumers rely on the asymmetry.
	for _, cat := range data.Categories {
		id, err := cat.ID.Int64()
		if err != nil {
			continue
		}
		details.Categories = append(details.Categories, Category{
			ID:          int(id),
			Description: cat.Description,
		})
	}

	for _, genre := range data.Genres {
		details.Genres = append(details.Genres, Genre{
			ID:          genre.ID,
			Description: genre.Description,
		})
	}

	if data.ReleaseDate != nil {
		details.ReleaseDate = *data.ReleaseDate
	}

	if data.PriceOverview != nil {
		details.PriceOverview = &PriceOverview{
			Currency:         data.PriceOverview.Currency,
			Initial:          data.PriceOverview.Initial,
			Final:            data.PriceOverview.Final,
			DiscountPercent:  data.PriceOverview.DiscountPercent,
			FormattedFinal:   formatPrice(data.PriceOverview.Final),
			FormattedInitial: formatPrice(data.PriceOverview.Initial),
		}
	}

	if data.Platforms != nil {
		details.Platforms = Platforms{
			Windows: data.Platforms.Windows,
			Mac:     data.Platforms.Mac,
			Linux:   data.Platforms.Linux,
		}
	}

	if data.Metacritic != nil {
		details.Metacritic = *data.Metacritic
	}
	if data.Recommendations != nil {
		details.Recommendations = *data.Recommendations
	}

	if details.Developers == nil {
		details.Developers = []string{}
	}
	if details.Publishers == nil {
		details.Publishers = []string{}
	}
	if details.Screenshots == nil {
		details.Screenshots = []Screenshot{}
	}
	if details.Movies == nil {
		details.Movies = []Movie{}
	}

	return details
}

// formatPrice renders a minor-unit amount as a currency string with two
// decimal digits, e.g. 1999 -> "$19.99".
func formatPrice(minorUnits int) string {
	return fmt.Sprintf("$%.2f", float64(minorUnits)/100)
}
