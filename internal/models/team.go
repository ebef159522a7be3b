package models

// RecordBreakdown holds win/loss/tie counts for one slice of a season.
type RecordBreakdown struct {
	Games  int `json:"games"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

// TeamRecord is one row of the records endpoint: a team's season record
// and conference. Created once per report and read-only afterwards.
type TeamRecord struct {
	Year            int             `json:"year"`
	Team            string          `json:"team"`
	Conference      string          `json:"conference"`
	Division        string          `json:"division"`
	Total           RecordBreakdown `json:"total"`
	ConferenceGames RecordBreakdown `json:"conferenceGames"`
	HomeGames       RecordBreakdown `json:"homeGames"`
	AwayGames       RecordBreakdown `json:"awayGames"`
}
