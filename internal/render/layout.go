package render

import (
	"fmt"
	"strings"

	"github.com/gridironlabs/field-report/internal/models"
	"github.com/gridironlabs/field-report/internal/services"
)

// Annotation x offsets and margins, in image pixels. The player column
// layout mirrors the field diagram: marker, main info block, stat block.
const (
	markerX     = 100
	mainInfoX   = 125
	statInfoX   = 350
	cornerInset = 10
)

// Marker is a single player marker position in top-left image coordinates.
type Marker struct {
	X, Y int
}

// Label is a block of text lines anchored at a point. Right-anchored
// labels extend leftwards from X.
type Label struct {
	X, Y        int
	Lines       []string
	AnchorRight bool
}

// Layout is the finished annotation placement for one report, consumed by
// a renderer as-is.
type Layout struct {
	Width, Height int
	Markers       []Marker
	PlayerLabels  []Label
	StatLabels    []Label
	TeamNote      Label
}

// BuildLayout computes deterministic annotation placement for the given
// players and team record on a field image of the given dimensions.
// Players are spaced evenly down the field in list order: player i sits at
// y = (i+1) * height/(len+1).
func BuildLayout(players []*models.PlayerRecord, team *models.TeamRecord, width, height int) Layout {
	layout := Layout{Width: width, Height: height}

	spacing := 0
	if len(players) > 0 {
		spacing = height / (len(players) + 1)
	}

	for i, player := range players {
		y := (i + 1) * spacing
		layout.Markers = append(layout.Markers, Marker{X: markerX, Y: y})
		layout.PlayerLabels = append(layout.PlayerLabels, Label{
			X: mainInfoX,
			Y: y,
			Lines: []string{
				player.Name,
				fmt.Sprintf("Usage Rate: %.4f", player.Usage.Overall),
				fmt.Sprintf("Avg. PPA: %.4f", player.AveragePPA),
			},
		})
		layout.StatLabels = append(layout.StatLabels, Label{
			X:     statInfoX,
			Y:     y,
			Lines: statLines(player),
		})
	}

	layout.TeamNote = Label{
		X:           width - cornerInset,
		Y:           cornerInset,
		AnchorRight: true,
		Lines: []string{
			fmt.Sprintf("Team: %s", team.Team),
			fmt.Sprintf("Conference: %s", team.Conference),
			fmt.Sprintf("Record: %d-%d-%d", team.Total.Wins, team.Total.Losses, team.Total.Ties),
		},
	}

	return layout
}

// statLines renders a player's yardage and touchdown rows for their
// position's category, falling back to a placeholder when no stats were
// enriched in.
func statLines(player *models.PlayerRecord) []string {
	category := services.CategoryForPosition(player.Position)
	lines := []string{capitalize(category)}

	found := false
	for _, stat := range player.Stats {
		if stat.StatType != "YDS" && stat.StatType != "TD" {
			continue
		}
		if stat.Category != category || stat.Player != player.Name {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", stat.StatType, stat.Stat.String()))
		found = true
	}
	if !found {
		lines = append(lines, "No stats available")
	}

	return lines
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
