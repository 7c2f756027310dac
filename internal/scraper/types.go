package scraper

// Activity represents a player's presence on the ratings site
type Activity string

const (
	ActivityOnline  Activity = "Online"
	ActivityOffline Activity = "Offline"
	ActivityUnknown Activity = "Unknown"
)

// Equipment holds the item names shown on a profile page, grouped by slot.
// Lists keep the order the images appear in the markup.
type Equipment struct {
	Turrets []string `json:"turrets"`
	Hulls   []string `json:"hulls"`
	Paints  []string `json:"paints"`
	Modules []string `json:"modules"`
}

// RankingEntry is one row of the per-category rankings table on a profile
type RankingEntry struct {
	Rank  string `json:"rank"`
	Value string `json:"value"`
}

// PlayerProfile represents the data extracted from one player's page.
// Every field except Nickname is best-effort; a zero value or nil pointer
// means the markup did not contain it.
type PlayerProfile struct {
	Nickname   string                  `json:"nickname"`
	Rank       string                  `json:"rank,omitempty"`
	Experience *int                    `json:"experience,omitempty"`
	Kills      *int                    `json:"kills,omitempty"`
	Deaths     *int                    `json:"deaths,omitempty"`
	KDRatio    *float64                `json:"kd_ratio,omitempty"`
	GoldBoxes  *int                    `json:"gold_boxes,omitempty"`
	Premium    *bool                   `json:"premium,omitempty"`
	Group      string                  `json:"group,omitempty"`
	Activity   Activity                `json:"activity"`
	Rankings   map[string]RankingEntry `json:"rankings"`
	Equipment  Equipment               `json:"equipment"`
}

// LeaderboardEntry represents one row of the top-players table
type LeaderboardEntry struct {
	Rank           int    `json:"rank"`
	Name           string `json:"name"`
	Value          int    `json:"value"`
	FormattedValue string `json:"formatted_value"`
}
