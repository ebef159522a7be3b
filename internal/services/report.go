package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gridironlabs/field-report/internal/models"
	"github.com/gridironlabs/field-report/internal/providers"
)

// FieldRenderer consumes a finished player list and team record and writes
// the field-diagram artifact. Implementations own the drawing details.
type FieldRenderer interface {
	Render(players []*models.PlayerRecord, team *models.TeamRecord) error
}

// TeamReport is the finished data product for one team-year query.
type TeamReport struct {
	Players []*models.PlayerRecord
	Team    *models.TeamRecord
}

// ReportService sequences selection, enrichment, the team record fetch and
// field rendering into one report.
type ReportService struct {
	provider StatsProvider
	selector *SelectorService
	enricher *EnricherService
	renderer FieldRenderer
	logger   *logrus.Logger
}

// NewReportService creates the report orchestrator. The renderer may be
// nil, in which case no image artifact is produced.
func NewReportService(provider StatsProvider, selector *SelectorService, enricher *EnricherService, renderer FieldRenderer, logger *logrus.Logger) *ReportService {
	return &ReportService{
		provider: provider,
		selector: selector,
		enricher: enricher,
		renderer: renderer,
		logger:   logger,
	}
}

// BuildTeamReport assembles the enriched top-player report for a team and
// season. Rendering is a side effect; a renderer failure is logged and does
// not fail the report.
func (s *ReportService) BuildTeamReport(ctx context.Context, year, team string) (*TeamReport, error) {
	log := s.logger.WithFields(logrus.Fields{
		"report_id": uuid.New().String(),
		"team":      team,
		"year":      year,
	})
	log.Info("Building team report")

	players, err := s.selector.TopUsagePlayers(ctx, year, team, TopPlayerCount)
	if err != nil {
		return nil, err
	}

	s.enricher.Enrich(ctx, year, team, players)

	records, err := s.provider.TeamRecords(ctx, year, team)
	if err != nil {
		return nil, fmt.Errorf("fetching team record: %w", err)
	}
	if len(records) == 0 {
		log.Warn("Unable to retrieve team record")
		return nil, fmt.Errorf("%w: no record for team %s in %s", providers.ErrNoData, team, year)
	}
	teamRecord := &records[0]

	if s.renderer != nil {
		if err := s.renderer.Render(players, teamRecord); err != nil {
			log.WithError(err).Error("Failed to render field plot")
		}
	}

	log.WithField("players", len(players)).Info("Team report built")
	return &TeamReport{Players: players, Team: teamRecord}, nil
}
