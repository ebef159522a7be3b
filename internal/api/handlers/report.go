package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gridironlabs/field-report/internal/services"
)

// User-facing failure messages. These are the only three errors the form
// surfaces; everything else is logged server-side only.
const (
	ErrDataMsg      = "Unable to retrieve data for specified team and year."
	ErrNarrativeMsg = "Unable to get a response from ChatGPT."
	ErrBudgetMsg    = "Budget limit exceeded."
)

// ReportBuilder builds the enriched team report for a team-year query.
type ReportBuilder interface {
	BuildTeamReport(ctx context.Context, year, team string) (*services.TeamReport, error)
}

// SummaryGenerator produces the narrative season summary.
type SummaryGenerator interface {
	GenerateSummary(ctx context.Context, team, year string) services.Summary
}

// ReportHandler serves the report form and orchestrates report building,
// the budget check and narrative generation for a submission.
type ReportHandler struct {
	reports   ReportBuilder
	narrative SummaryGenerator
	budget    *services.Budget
	plotPath  string
	logger    *logrus.Logger
}

// NewReportHandler creates the report handler.
func NewReportHandler(reports ReportBuilder, narrative SummaryGenerator, budget *services.Budget, plotPath string, logger *logrus.Logger) *ReportHandler {
	return &ReportHandler{
		reports:   reports,
		narrative: narrative,
		budget:    budget,
		plotPath:  plotPath,
		logger:    logger,
	}
}

// ShowForm renders the empty team/year form.
func (h *ReportHandler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

// CreateReport handles a form submission: builds the report, checks the
// budget, generates the narrative, and charges the cost on success.
func (h *ReportHandler) CreateReport(c *gin.Context) {
	team := c.PostForm("team")
	year := c.PostForm("year")

	report, err := h.reports.BuildTeamReport(c.Request.Context(), year, team)
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"team": team,
			"year": year,
		}).Warn("Failed to build team report")
		c.HTML(http.StatusOK, "index.html", gin.H{"error": ErrDataMsg})
		return
	}

	if h.budget.Remaining() <= 0 {
		h.logger.WithField("spent", h.budget.Spent()).Warn("Narrative budget exhausted")
		c.HTML(http.StatusOK, "index.html", gin.H{"error": ErrBudgetMsg})
		return
	}

	summary := h.narrative.GenerateSummary(c.Request.Context(), team, year)
	if !summary.OK {
		c.HTML(http.StatusOK, "index.html", gin.H{"error": ErrNarrativeMsg})
		return
	}
	h.budget.Charge(summary.Cost)

	c.HTML(http.StatusOK, "results.html", gin.H{
		"players":   report.Players,
		"team":      report.Team,
		"narrative": summary.Text,
		"year":      year,
	})
}

// FieldPlot serves the most recently rendered field diagram.
func (h *ReportHandler) FieldPlot(c *gin.Context) {
	c.File(h.plotPath)
}
