package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"datascope/adapters/tabular"
	"datascope/domain/dataset"
	"datascope/domain/stats"
	apperrors "datascope/internal/errors"
	"datascope/internal/profiling"
)

// ProfileResponse bundles everything the profiling boundary produces for
// one dataset snapshot.
type ProfileResponse struct {
	Profile        *stats.Profile                     `json:"profile"`
	Dependencies   []stats.DependencyMetric           `json:"dependencies"`
	Visualizations map[string]stats.VisualizationType `json:"visualizations"`
	BoxPlots       map[string]stats.BoxPlotSummary    `json:"box_plots"`
}

// handleProfile ingests an uploaded CSV/XLSX file, profiles every column,
// and derives dependencies, chart picks, and box plots. An optional
// "target" form field adds a target-relative dependency scan.
func (s *Server) handleProfile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, apperrors.InvalidInput("multipart field \"file\" is required"))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".csv" && ext != ".xlsx" {
		respondError(c, apperrors.InvalidInputf("unsupported upload type %q, expected .csv or .xlsx", ext))
		return
	}

	tmpPath := filepath.Join(os.TempDir(), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		respondError(c, apperrors.Wrap(err, "failed to store upload"))
		return
	}
	defer os.Remove(tmpPath)

	ds, err := tabular.NewReader(tmpPath).Read()
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ds.Validate(); err != nil {
		respondError(c, apperrors.InvalidInputf("dataset shape is invalid: %v", err))
		return
	}

	c.JSON(http.StatusOK, s.buildProfileResponse(ds, c.PostForm("target")))
}

// buildProfileResponse runs the full profiling pipeline on one snapshot.
func (s *Server) buildProfileResponse(ds *dataset.Dataset, target string) ProfileResponse {
	profile := s.profiler.Profile(ds)

	dependencies := s.detector.DetectAll(ds, profile)
	if target != "" {
		dependencies = append(dependencies, s.detector.DetectForTarget(ds, profile, target)...)
	}

	visualizations := make(map[string]stats.VisualizationType, len(profile.Columns))
	boxPlots := make(map[string]stats.BoxPlotSummary)
	for name, outcome := range profile.Columns {
		viz := profiling.SelectVisualization(outcome.Stats)
		visualizations[name] = viz
		if viz != stats.VizBoxPlot {
			continue
		}
		if col, ok := ds.Column(name); ok {
			if summary, err := profiling.ComputeBoxPlot(col); err == nil {
				boxPlots[name] = summary
			}
		}
	}

	return ProfileResponse{
		Profile:        profile,
		Dependencies:   dependencies,
		Visualizations: visualizations,
		BoxPlots:       boxPlots,
	}
}

// handleSampleSize validates a power-analysis request and returns the
// calculation results. Validation failures block computation and name
// the invalid input.
func (s *Server) handleSampleSize(c *gin.Context) {
	var req stats.PowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.InvalidInputf("invalid power-analysis request body: %v", err))
		return
	}

	results, err := s.calculator.Calculate(req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// respondError maps AppError codes to HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.CodeInvalidInput, apperrors.CodeConfigInvalid:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  apperrors.GetCode(err),
	})
}
