package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironlabs/field-report/internal/models"
	"github.com/gridironlabs/field-report/internal/providers"
)

type captureRenderer struct {
	players []*models.PlayerRecord
	team    *models.TeamRecord
	calls   int
	err     error
}

func (r *captureRenderer) Render(players []*models.PlayerRecord, team *models.TeamRecord) error {
	r.calls++
	r.players = players
	r.team = team
	return r.err
}

func reportProvider() *stubProvider {
	return &stubProvider{
		usage: func(ctx context.Context, year string) ([]models.PlayerRecord, error) {
			return []models.PlayerRecord{
				usagePlayer("C Quarterback", "Georgia", "QB", 0.55),
				usagePlayer("B Receiver", "Georgia", "WR", 0.31),
			}, nil
		},
		ppa: func(ctx context.Context, year, team, player string) ([]models.PlayerPPA, error) {
			return []models.PlayerPPA{{Name: player, AveragePPA: models.PPABreakdown{All: 0.7}}}, nil
		},
		records: func(ctx context.Context, year, team string) ([]models.TeamRecord, error) {
			return []models.TeamRecord{{
				Team:       team,
				Conference: "SEC",
				Total:      models.RecordBreakdown{Wins: 14, Losses: 1},
			}}, nil
		},
	}
}

func newReportService(provider StatsProvider, renderer FieldRenderer) *ReportService {
	logger := quietLogger()
	selector := NewSelectorService(provider, logger)
	enricher := NewEnricherService(provider, 2, logger)
	return NewReportService(provider, selector, enricher, renderer, logger)
}

func TestBuildTeamReport(t *testing.T) {
	renderer := &captureRenderer{}
	service := newReportService(reportProvider(), renderer)

	report, err := service.BuildTeamReport(context.Background(), "2021", "Georgia")
	require.NoError(t, err)
	require.Len(t, report.Players, 2)

	assert.Equal(t, "C Quarterback", report.Players[0].Name)
	assert.Equal(t, 0.7, report.Players[0].AveragePPA)
	assert.Equal(t, "SEC", report.Team.Conference)

	assert.Equal(t, 1, renderer.calls)
	assert.Equal(t, report.Players, renderer.players)
	assert.Equal(t, report.Team, renderer.team)
}

func TestBuildTeamReportSelectorFailureSkipsRender(t *testing.T) {
	provider := reportProvider()
	provider.usage = func(ctx context.Context, year string) ([]models.PlayerRecord, error) {
		return nil, errors.New("usage endpoint down")
	}
	renderer := &captureRenderer{}
	service := newReportService(provider, renderer)

	report, err := service.BuildTeamReport(context.Background(), "2021", "Georgia")
	assert.Nil(t, report)
	assert.Error(t, err)
	assert.Equal(t, 0, renderer.calls)
}

func TestBuildTeamReportEmptyRecordsIsNoData(t *testing.T) {
	provider := reportProvider()
	provider.records = func(ctx context.Context, year, team string) ([]models.TeamRecord, error) {
		return nil, nil
	}
	service := newReportService(provider, &captureRenderer{})

	report, err := service.BuildTeamReport(context.Background(), "2021", "Georgia")
	assert.Nil(t, report)
	assert.ErrorIs(t, err, providers.ErrNoData)
}

func TestBuildTeamReportRendererFailureIsNonFatal(t *testing.T) {
	renderer := &captureRenderer{err: errors.New("disk full")}
	service := newReportService(reportProvider(), renderer)

	report, err := service.BuildTeamReport(context.Background(), "2021", "Georgia")
	require.NoError(t, err)
	assert.NotNil(t, report)
	assert.Equal(t, 1, renderer.calls)
}

func TestBuildTeamReportWithoutRenderer(t *testing.T) {
	service := newReportService(reportProvider(), nil)

	report, err := service.BuildTeamReport(context.Background(), "2021", "Georgia")
	require.NoError(t, err)
	assert.NotNil(t, report)
}
