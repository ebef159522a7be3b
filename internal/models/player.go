package models

import "encoding/json"

// Usage is the provider-computed share of offensive plays for a player,
// as returned by the player/usage endpoint.
type Usage struct {
	Overall       float64 `json:"overall"`
	Pass          float64 `json:"pass"`
	Rush          float64 `json:"rush"`
	FirstDown     float64 `json:"firstDown"`
	SecondDown    float64 `json:"secondDown"`
	ThirdDown     float64 `json:"thirdDown"`
	StandardDowns float64 `json:"standardDowns"`
	PassingDowns  float64 `json:"passingDowns"`
}

// PlayerRecord is a single player's row in a team-year result set. The
// selector creates it from usage data; the enrichment pipeline fills in
// AveragePPA and Stats afterwards.
type PlayerRecord struct {
	Season     int    `json:"season"`
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Team       string `json:"team"`
	Conference string `json:"conference"`
	Usage      Usage  `json:"usage"`

	// Filled by the enrichment pipeline. AveragePPA stays 0.0 and Stats
	// stays nil when the corresponding upstream fetch fails.
	AveragePPA float64      `json:"averagePPA"`
	Stats      []PlayerStat `json:"stats,omitempty"`
}

// PPABreakdown holds per-situation predicted-points-added averages from
// the ppa/players/season endpoint.
type PPABreakdown struct {
	All  float64 `json:"all"`
	Pass float64 `json:"pass"`
	Rush float64 `json:"rush"`
}

// PlayerPPA is one row of the ppa/players/season response.
type PlayerPPA struct {
	Season     int          `json:"season"`
	ID         int          `json:"id"`
	Name       string       `json:"name"`
	Position   string       `json:"position"`
	Team       string       `json:"team"`
	Conference string       `json:"conference"`
	AveragePPA PPABreakdown `json:"averagePPA"`
	TotalPPA   PPABreakdown `json:"totalPPA"`
}

// PlayerStat is one row of the stats/player/season response. Stat is kept
// as json.Number because the provider mixes numeric and string values.
type PlayerStat struct {
	Season   int         `json:"season"`
	PlayerID int         `json:"playerId"`
	Player   string      `json:"player"`
	Team     string      `json:"team"`
	Category string      `json:"category"`
	StatType string      `json:"statType"`
	Stat     json.Number `json:"stat"`
}
