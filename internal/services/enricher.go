package services

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/gridironlabs/field-report/internal/models"
)

const defaultEnrichWorkers = 5

// EnricherService concurrently fetches the advanced metric and the
// category statistics for each selected player and merges the results
// into the players' records.
type EnricherService struct {
	provider StatsProvider
	logger   *logrus.Logger
	workers  int
}

// NewEnricherService creates an enricher backed by a worker pool of the
// given size. Sizes below one fall back to the default.
func NewEnricherService(provider StatsProvider, workers int, logger *logrus.Logger) *EnricherService {
	if workers <= 0 {
		workers = defaultEnrichWorkers
	}
	return &EnricherService{
		provider: provider,
		logger:   logger,
		workers:  workers,
	}
}

// enrichResult carries one player's fetched attributes back to the fan-in
// side. The has* flags distinguish "fetch succeeded with no rows" from
// "fetch failed": a failed sub-fetch leaves the player's attribute at its
// default instead of overwriting it.
type enrichResult struct {
	name       string
	averagePPA float64
	hasPPA     bool
	stats      []models.PlayerStat
	hasStats   bool
}

// Enrich runs one enrichment task per player over the worker pool and
// merges results as they arrive. It always returns having attempted all
// players; individual sub-fetch failures are logged only. The slice is
// mutated in place and neither reordered nor resized.
func (e *EnricherService) Enrich(ctx context.Context, year, team string, players []*models.PlayerRecord) {
	if len(players) == 0 {
		return
	}

	workers := e.workers
	if workers > len(players) {
		workers = len(players)
	}

	jobs := make(chan *models.PlayerRecord)
	results := make(chan enrichResult, len(players))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for player := range jobs {
				results <- e.gather(ctx, year, team, player)
			}
		}()
	}

	go func() {
		for _, player := range players {
			jobs <- player
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	// Merge in arrival order. Each result writes only to its own player's
	// record, so the merge is idempotent with respect to completion order.
	for result := range results {
		e.merge(players, result)
	}
}

// gather performs the two sub-fetches for one player: the advanced metric
// first, then the category statistics.
func (e *EnricherService) gather(ctx context.Context, year, team string, player *models.PlayerRecord) enrichResult {
	result := enrichResult{name: player.Name}

	ppa, err := e.provider.PlayerSeasonPPA(ctx, year, team, player.Name)
	if err != nil {
		e.logger.WithError(err).WithField("player", player.Name).Warn("Failed to obtain predicted points added")
	} else {
		result.hasPPA = true
		for i := range ppa {
			if ppa[i].Name == player.Name {
				result.averagePPA = ppa[i].AveragePPA.All
				break
			}
		}
	}

	category := CategoryForPosition(player.Position)
	stats, err := e.provider.PlayerSeasonStats(ctx, year, player.Team, category)
	if err != nil {
		e.logger.WithError(err).WithField("player", player.Name).Warn("Failed to obtain season stats")
	} else {
		result.hasStats = true
		for i := range stats {
			if stats[i].Player == player.Name {
				result.stats = append(result.stats, stats[i])
			}
		}
	}

	return result
}

// merge binds a result to the first player with a matching name. Names are
// assumed unique within a selected set, so first match wins.
func (e *EnricherService) merge(players []*models.PlayerRecord, result enrichResult) {
	for _, player := range players {
		if player.Name != result.name {
			continue
		}
		if result.hasPPA {
			player.AveragePPA = result.averagePPA
		}
		if result.hasStats {
			player.Stats = result.stats
		}
		return
	}
}
