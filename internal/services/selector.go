package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/gridironlabs/field-report/internal/models"
	"github.com/gridironlabs/field-report/internal/providers"
)

// TopPlayerCount is the size of the usage-ranked subset a report covers.
const TopPlayerCount = 5

// StatsProvider is the slice of the CFBD client the selector and enricher
// depend on.
type StatsProvider interface {
	PlayerUsage(ctx context.Context, year string) ([]models.PlayerRecord, error)
	PlayerSeasonPPA(ctx context.Context, year, team, player string) ([]models.PlayerPPA, error)
	PlayerSeasonStats(ctx context.Context, year, team, category string) ([]models.PlayerStat, error)
	TeamRecords(ctx context.Context, year, team string) ([]models.TeamRecord, error)
}

// SelectorService ranks a team's players by usage rate and selects the top
// subset for a season.
type SelectorService struct {
	provider StatsProvider
	logger   *logrus.Logger
}

// NewSelectorService creates a new player selector.
func NewSelectorService(provider StatsProvider, logger *logrus.Logger) *SelectorService {
	return &SelectorService{
		provider: provider,
		logger:   logger,
	}
}

// TopUsagePlayers fetches season-wide usage data, filters to players whose
// team matches exactly, and returns up to n records sorted by overall usage
// descending. Ties keep the provider's original ordering. Zero matching
// players surfaces as ErrNoData.
func (s *SelectorService) TopUsagePlayers(ctx context.Context, year, team string, n int) ([]*models.PlayerRecord, error) {
	usage, err := s.provider.PlayerUsage(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("fetching season usage: %w", err)
	}

	var fromTeam []*models.PlayerRecord
	for i := range usage {
		if usage[i].Team == team {
			player := usage[i]
			fromTeam = append(fromTeam, &player)
		}
	}
	if len(fromTeam) == 0 {
		s.logger.WithFields(logrus.Fields{
			"team": team,
			"year": year,
		}).Warn("No players found for team")
		return nil, fmt.Errorf("%w: no players on team %s in %s", providers.ErrNoData, team, year)
	}

	sort.SliceStable(fromTeam, func(i, j int) bool {
		return fromTeam[i].Usage.Overall > fromTeam[j].Usage.Overall
	})
	if len(fromTeam) > n {
		fromTeam = fromTeam[:n]
	}

	return fromTeam, nil
}
