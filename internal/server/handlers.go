package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/export"
	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/ingest"
	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/report"
	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/session"
)

// CreateReport accepts the four CSV uploads as multipart files named after
// their dataset, computes the report, and stores it under a fresh id.
func (s *Server) CreateReport(c *gin.Context) {
	start := time.Now()

	rows := make(map[ingest.Dataset][]ingest.Row, 4)
	var parseWarnings []ingest.Warning
	for _, ds := range ingest.Datasets() {
		raw, err := s.formFile(c, string(ds))
		if err != nil {
			s.metrics.RecordFailure("missing_file")
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("missing upload %q (%s)", ds, ds.Label()),
			})
			return
		}

		parsed, warnings, err := ingest.Parse(raw, ds)
		if err != nil {
			s.metrics.RecordFailure(failureReason(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		rows[ds] = parsed
		parseWarnings = append(parseWarnings, warnings...)
	}

	rep, err := report.Compute(
		rows[ingest.DatasetIngredientInfo],
		rows[ingest.DatasetStock],
		rows[ingest.DatasetUsage],
		rows[ingest.DatasetWaste],
	)
	if err != nil {
		s.metrics.RecordFailure(failureReason(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rep.Warnings = append(parseWarnings, rep.Warnings...)

	id := uuid.NewString()
	s.store.Put(id, rep, s.ttl)
	s.metrics.ObserveReport(len(rep.Metrics), rep.Warnings, time.Since(start))
	s.log.Info("report computed",
		"report_id", id,
		"rows", len(rep.Metrics),
		"warnings", len(rep.Warnings),
	)

	c.JSON(http.StatusCreated, gin.H{
		"report_id":    id,
		"generated_at": rep.GeneratedAt,
		"row_count":    len(rep.Metrics),
		"summary":      rep.Summary,
		"insights":     report.Insights(rep.Metrics, s.thresholds),
		"alerts":       report.Alerts(rep.Metrics, s.thresholds),
		"warnings":     rep.Warnings,
	})
}

// GetReport returns a stored report, optionally filtered and sorted. The
// summary is recomputed over the returned view; insights and alerts always
// cover the full record set.
func (s *Server) GetReport(c *gin.Context) {
	rep, ok := s.lookup(c)
	if !ok {
		return
	}

	view, err := report.Filter(rep.Metrics, c.Query("filter"), s.thresholds)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if field := c.Query("sort"); field != "" {
		view, err = report.Sort(view, field, c.DefaultQuery("order", "desc"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"report_id":    c.Param("id"),
		"generated_at": rep.GeneratedAt,
		"metrics":      view,
		"summary":      report.Summarize(view),
		"insights":     report.Insights(rep.Metrics, s.thresholds),
		"alerts":       report.Alerts(rep.Metrics, s.thresholds),
		"warnings":     rep.Warnings,
	})
}

// ExportReport streams a stored report as a downloadable document.
func (s *Server) ExportReport(c *gin.Context) {
	rep, ok := s.lookup(c)
	if !ok {
		return
	}

	format := c.Param("format")
	var (
		data        []byte
		err         error
		contentType string
		ext         string
	)
	switch format {
	case "excel":
		data, err = export.Excel(rep)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		ext = "xlsx"
	case "pdf":
		data, err = export.PDF(rep)
		contentType = "application/pdf"
		ext = "pdf"
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown export format %q", format)})
		return
	}
	if err != nil {
		s.log.Error("export failed", "format", format, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	s.metrics.RecordExport(format)
	filename := fmt.Sprintf("ingredient-report-%s.%s", c.Param("id"), ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

func (s *Server) lookup(c *gin.Context) (*report.Report, bool) {
	rep, err := s.store.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	return rep, true
}

func (s *Server) formFile(c *gin.Context, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", err
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func failureReason(err error) string {
	var emptyInput *ingest.EmptyInputError
	var emptyData *ingest.EmptyDatasetError
	var missingCols *ingest.MissingColumnsError
	switch {
	case errors.As(err, &emptyInput):
		return "empty_input"
	case errors.As(err, &emptyData):
		return "empty_dataset"
	case errors.As(err, &missingCols):
		return "missing_columns"
	default:
		return "invalid_input"
	}
}
