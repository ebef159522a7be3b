package services

// Statistic categories used to filter relevant stat rows for a player.
const (
	CategoryReceiving = "receiving"
	CategoryPassing   = "passing"
	CategoryRushing   = "rushing"
	CategoryUnknown   = "unknown"
)

// CategoryForPosition maps a player's position to the statistic category
// worth displaying for them. Every input maps to exactly one category;
// unrecognized positions map to "unknown".
func CategoryForPosition(position string) string {
	switch position {
	case "WR", "TE":
		return CategoryReceiving
	case "QB":
		return CategoryPassing
	case "RB":
		return CategoryRushing
	default:
		return CategoryUnknown
	}
}
