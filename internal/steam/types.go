package steam

import "encoding/json"

// Profile holds one account's attributes from the player-summaries
// endpoint. Display fields (CurrentStatus, ProfileVisibility, the
// RFC 3339 timestamps) are derived once at fetch time; downstream code
// never recomputes them.
type Profile struct {
	SteamID                  string `json:"steamid"`
	PersonaName              string `json:"personaname"`
	Avatar                   string `json:"avatar"`
	RealName                 string `json:"realname,omitempty"`
	Country                  string `json:"country,omitempty"`
	TimeCreated              int64  `json:"timecreated"`
	LastLogoff               int64  `json:"lastlogoff"`
	ProfileURL               string `json:"profileurl"`
	PersonaState             int    `json:"personastate"`
	GameID                   string `json:"gameid,omitempty"`
	PrimaryClanID            string `json:"primaryclanid,omitempty"`
	CommunityVisibilityState int    `json:"communityvisibilitystate"`
	CommentPermission        int    `json:"commentpermission,omitempty"`
	LastOnline               string `json:"last_online,omitempty"`
	AccountCreated           string `json:"account_created,omitempty"`
	CurrentStatus            string `json:"current_status"`
	CurrentGame              string `json:"current_game,omitempty"`
	ProfileVisibility        string `json:"profile_visibility"`
}

// OwnedGame is one library entry with playtimes already converted from
// upstream minutes to whole hours.
type OwnedGame struct {
	AppID                    int    `json:"appid"`
	Name                     string `json:"name"`
	PlaytimeForever          int    `json:"playtime_forever"`
	ImgIconURL               string `json:"img_icon_url,omitempty"`
	HasCommunityVisibleStats bool   `json:"has_community_visible_stats"`
	PlaytimeWindowsForever   int    `json:"playtime_windows_forever"`
	PlaytimeMacForever       int    `json:"playtime_mac_forever"`
	PlaytimeLinuxForever     int    `json:"playtime_linux_forever"`
	RtimeLastPlayed          string `json:"rtime_last_played,omitempty"`
}

// WishlistItem is one wishlist entry. Priority is the platform-defined
// ordering value, preserved as-is.
type WishlistItem struct {
	AppID     int    `json:"appid"`
	Priority  int    `json:"priority"`
	DateAdded string `json:"date_added"`
}

// Category is a store category. Upstream serves ids as strings or
// numbers depending on the endpoint vintage; they are coerced to int
// here, unlike genre ids which stay strings.
type Category struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// Genre is a store genre. The id stays a string on purpose; consumers
// key on the asymmetry with Category.
type Genre struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// ReleaseDate is the store release-date record.
type ReleaseDate struct {
	ComingSoon bool   `json:"coming_soon"`
	Date       string `json:"date"`
}

// PriceOverview is the store pricing block. Initial and Final are in
// minor currency units; the formatted strings are derived from them.
// Nil on free or unpriced games.
type PriceOverview struct {
	Currency         string `json:"currency"`
	Initial          int    `json:"initial"`
	Final            int    `json:"final"`
	DiscountPercent  int    `json:"discount_percent"`
	FormattedFinal   string `json:"formatted_final"`
	FormattedInitial string `json:"formatted_initial"`
}

// Platforms reports OS support, each flag defaulting false when the
// store omits it.
type Platforms struct {
	Windows bool `json:"windows"`
	Mac     bool `json:"mac"`
	Linux   bool `json:"linux"`
}

// Metacritic is the review-score record, zeroed when absent upstream.
type Metacritic struct {
	Score int    `json:"score"`
	URL   string `json:"url,omitempty"`
}

// Recommendations is the recommendation-count record, zeroed when
// absent upstream.
type Recommendations struct {
	Total int `json:"total"`
}

// Screenshot is one store screenshot.
type Screenshot struct {
	ID            int    `json:"id"`
	PathThumbnail string `json:"path_thumbnail"`
	PathFull      string `json:"path_full"`
}

// VideoSet holds the two encodings the store serves per trailer.
type VideoSet struct {
	Res480 string `json:"480"`
	Max    string `json:"max"`
}

// Movie is one store trailer.
type Movie struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Thumbnail string   `json:"thumbnail"`
	Webm      VideoSet `json:"webm"`
	MP4       VideoSet `json:"mp4"`
	Highlight bool     `json:"highlight"`
}

// GameDetails is the normalized catalog metadata for one app. Every
// optional upstream group resolves to an explicit empty or zero value
// here; only PriceOverview stays nil, marking a game with no price.
type GameDetails struct {
	Name             string          `json:"name"`
	ShortDescription string          `json:"short_description"`
	HeaderImage      string          `json:"header_image"`
	Categories       []Category      `json:"categories"`
	Genres           []Genre         `json:"genres"`
	ReleaseDate      ReleaseDate     `json:"release_date"`
	Developers       []string        `json:"developers"`
	Publishers       []string        `json:"publishers"`
	PriceOverview    *PriceOverview  `json:"price_overview"`
	Platforms        Platforms       `json:"platforms"`
	Metacritic       Metacritic      `json:"metacritic"`
	Recommendations  Recommendations `json:"recommendations"`
	Screenshots      []Screenshot    `json:"screenshots"`
	Movies           []Movie         `json:"movies"`
}

// Wire envelopes. Pointers distinguish a legitimately empty list from a
// missing key, which the fetchers treat differently.

type playerSummariesResponse struct {
	Response struct {
		Players []playerSummary `json:"players"`
	} `json:"response"`
}

type playerSummary struct {
	SteamID                  string `json:"steamid"`
	PersonaName              string `json:"personaname"`
	AvatarFull               string `json:"avatarfull"`
	RealName                 string `json:"realname"`
	LocCountryCode           string `json:"loccountrycode"`
	TimeCreated              int64  `json:"timecreated"`
	LastLogoff               int64  `json:"lastlogoff"`
	ProfileURL               string `json:"profileurl"`
	PersonaState             int    `json:"personastate"`
	GameExtraInfo            string `json:"gameextrainfo"`
	GameID                   string `json:"gameid"`
	PrimaryClanID            string `json:"primaryclanid"`
	CommunityVisibilityState int    `json:"communityvisibilitystate"`
	CommentPermission        int    `json:"commentpermission"`
}

type ownedGamesResponse struct {
	Response struct {
		GameCount int          `json:"game_count"`
		Games     *[]ownedGame `json:"games"`
	} `json:"response"`
}

type ownedGame struct {
	AppID                    int    `json:"appid"`
	Name                     string `json:"name"`
	PlaytimeForever          int    `json:"playtime_forever"`
	ImgIconURL               string `json:"img_icon_url"`
	HasCommunityVisibleStats bool   `json:"has_community_visible_stats"`
	PlaytimeWindowsForever   int    `json:"playtime_windows_forever"`
	PlaytimeMacForever       int    `json:"playtime_mac_forever"`
	PlaytimeLinuxForever     int    `json:"playtime_linux_forever"`
	RtimeLastPlayed          int64  `json:"rtime_last_played"`
}

type wishlistResponse struct {
	Response *struct {
		Items []wishlistItem `json:"items"`
	} `json:"response"`
}

type wishlistItem struct {
	AppID     int   `json:"appid"`
	Priority  int   `json:"priority"`
	DateAdded int64 `json:"date_added"`
}

type vanityResponse struct {
	Response struct {
		Success int    `json:"success"`
		SteamID string `json:"steamid"`
	} `json:"response"`
}

type appDetailsEntry struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type appDetailsData struct {
	Name             string `json:"name"`
	ShortDescription string `json:"short_description"`
	HeaderImage      string `json:"header_image"`
	Categories       []struct {
		ID          json.Number `json:"id"`
		Description string      `json:"description"`
	} `json:"categories"`
	Genres []struct {
		ID          string `json:"id"`
		Description string `json:"description"`
	} `json:"genres"`
	ReleaseDate   *ReleaseDate `json:"release_date"`
	Developers    []string     `json:"developers"`
	Publishers    []string     `json:"publishers"`
	PriceOverview *struct {
		Currency        string `json:"currency"`
		Initial         int    `json:"initial"`
		Final           int    `json:"final"`
		DiscountPercent int    `json:"discount_percent"`
	} `json:"price_overview"`
	Platforms *struct {
		Windows bool `json:"windows"`
		Mac     bool `json:"mac"`
		Linux   bool `json:"linux"`
	} `json:"platforms"`
	Metacritic      *Metacritic      `json:"metacritic"`
	Recommendations *Recommendations `json:"recommendations"`
	Screenshots     []Screenshot     `json:"screenshots"`
	Movies          []Movie          `json:"movies"`
}
