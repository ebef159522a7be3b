package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironlabs/field-report/internal/models"
	"github.com/gridironlabs/field-report/internal/providers"
)

// stubProvider is a StatsProvider backed by function fields. Unset fields
// return empty results.
type stubProvider struct {
	usage   func(ctx context.Context, year string) ([]models.PlayerRecord, error)
	ppa     func(ctx context.Context, year, team, player string) ([]models.PlayerPPA, error)
	stats   func(ctx context.Context, year, team, category string) ([]models.PlayerStat, error)
	records func(ctx context.Context, year, team string) ([]models.TeamRecord, error)
}

func (s *stubProvider) PlayerUsage(ctx context.Context, year string) ([]models.PlayerRecord, error) {
	if s.usage == nil {
		return nil, nil
	}
	return s.usage(ctx, year)
}

func (s *stubProvider) PlayerSeasonPPA(ctx context.Context, year, team, player string) ([]models.PlayerPPA, error) {
	if s.ppa == nil {
		return nil, nil
	}
	return s.ppa(ctx, year, team, player)
}

func (s *stubProvider) PlayerSeasonStats(ctx context.Context, year, team, category string) ([]models.PlayerStat, error) {
	if s.stats == nil {
		return nil, nil
	}
	return s.stats(ctx, year, team, category)
}

func (s *stubProvider) TeamRecords(ctx context.Context, year, team string) ([]models.TeamRecord, error) {
	if s.records == nil {
		return nil, nil
	}
	return s.records(ctx, year, team)
}

func usagePlayer(name, team, position string, overall float64) models.PlayerRecord {
	return models.PlayerRecord{
		Name:     name,
		Team:     team,
		Position: position,
		Usage:    models.Usage{Overall: overall},
	}
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestTopUsagePlayersRanksAndTruncates(t *testing.T) {
	provider := &stubProvider{
		usage: func(ctx context.Context, year string) ([]models.PlayerRecord, error) {
			return []models.PlayerRecord{
				usagePlayer("A Back", "Georgia", "RB", 0.12),
				usagePlayer("B Receiver", "Georgia", "WR", 0.31),
				usagePlayer("C Quarterback", "Georgia", "QB", 0.55),
				usagePlayer("D End", "Georgia", "TE", 0.08),
				usagePlayer("E Receiver", "Georgia", "WR", 0.22),
				usagePlayer("F Back", "Georgia", "RB", 0.18),
				usagePlayer("G Back", "Georgia", "RB", 0.02),
				usagePlayer("Rival Star", "Alabama", "QB", 0.99),
			}, nil
		},
	}
	selector := NewSelectorService(provider, quietLogger())

	players, err := selector.TopUsagePlayers(context.Background(), "2021", "Georgia", 5)
	require.NoError(t, err)
	require.Len(t, players, 5)

	for i, player := range players {
		assert.Equal(t, "Georgia", player.Team)
		if i > 0 {
			assert.GreaterOrEqual(t, players[i-1].Usage.Overall, player.Usage.Overall)
		}
	}
	assert.Equal(t, "C Quarterback", players[0].Name)
	assert.Equal(t, "B Receiver", players[1].Name)
}

func TestTopUsagePlayersStableOnTies(t *testing.T) {
	provider := &stubProvider{
		usage: func(ctx context.Context, year string) ([]models.PlayerRecord, error) {
			return []models.PlayerRecord{
				usagePlayer("First Listed", "Georgia", "WR", 0.20),
				usagePlayer("Second Listed", "Georgia", "WR", 0.20),
				usagePlayer("Third Listed", "Georgia", "WR", 0.20),
			}, nil
		},
	}
	selector := NewSelectorService(provider, quietLogger())

	players, err := selector.TopUsagePlayers(context.Background(), "2021", "Georgia", 5)
	require.NoError(t, err)
	require.Len(t, players, 3)

	// Equal usage keeps the provider's original ordering.
	assert.Equal(t, "First Listed", players[0].Name)
	assert.Equal(t, "Second Listed", players[1].Name)
	assert.Equal(t, "Third Listed", players[2].Name)
}

func TestTopUsagePlayersNoTeamMatches(t *testing.T) {
	provider := &stubProvider{
		usage: func(ctx context.Context, year string) ([]models.PlayerRecord, error) {
			return []models.PlayerRecord{
				usagePlayer("Rival Star", "Alabama", "QB", 0.99),
			}, nil
		},
	}
	selector := NewSelectorService(provider, quietLogger())

	players, err := selector.TopUsagePlayers(context.Background(), "2021", "Georgia", 5)
	assert.Nil(t, players)
	assert.ErrorIs(t, err, providers.ErrNoData)
}

func TestTopUsagePlayersExactTeamMatchOnly(t *testing.T) {
	provider := &stubProvider{
		usage: func(ctx context.Context, year string) ([]models.PlayerRecord, error) {
			return []models.PlayerRecord{
				usagePlayer("Lowercase Player", "georgia", "QB", 0.50),
				usagePlayer("Padded Player", " Georgia", "QB", 0.50),
			}, nil
		},
	}
	selector := NewSelectorService(provider, quietLogger())

	_, err := selector.TopUsagePlayers(context.Background(), "2021", "Georgia", 5)
	assert.ErrorIs(t, err, providers.ErrNoData)
}

func TestTopUsagePlayersFetchFailure(t *testing.T) {
	upstreamErr := errors.New("boom")
	provider := &stubProvider{
		usage: func(ctx context.Context, year string) ([]models.PlayerRecord, error) {
			return nil, upstreamErr
		},
	}
	selector := NewSelectorService(provider, quietLogger())

	players, err := selector.TopUsagePlayers(context.Background(), "2021", "Georgia", 5)
	assert.Nil(t, players)
	assert.ErrorIs(t, err, upstreamErr)
}
