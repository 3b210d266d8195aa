package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/storeops/salesdash/internal/analytics"
	"github.com/storeops/salesdash/internal/domain"
	"github.com/storeops/salesdash/internal/ingest"
	"github.com/storeops/salesdash/internal/service"
)

type ReportHandler struct {
	reportService *service.ReportService
	uploadDir     string
}

func NewReportHandler(reportService *service.ReportService, uploadDir string) *ReportHandler {
	return &ReportHandler{reportService: reportService, uploadDir: uploadDir}
}

// Upload accepts one sale report export (csv or xlsx), runs the full
// pipeline synchronously, and replaces the current snapshot.
func (h *ReportHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}

	path := filepath.Join(h.uploadDir, filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		log.Error().Err(err).Str("filename", file.Filename).Msg("failed to save uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save uploaded file"})
		return
	}

	bundle, err := h.reportService.ProcessFile(path)
	if err != nil {
		h.writeProcessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":          bundle.RunID,
		"source_file":     bundle.SourceFile,
		"week_scheme":     bundle.WeekScheme,
		"raw_rows":        bundle.RawRows,
		"sales_rows":      bundle.SalesRows,
		"membership_rows": bundle.MembershipRows,
		"current_week":    bundle.CurrentWeek,
		"staff_count":     len(bundle.Staff),
	})
}

// writeProcessError maps the ingestion error taxonomy onto HTTP responses.
// Schema errors include the column set that was found, for diagnosis.
func (h *ReportHandler) writeProcessError(c *gin.Context, err error) {
	var schemaErr *ingest.SchemaError
	if errors.As(err, &schemaErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing required columns; re-export the article sale report",
			"missing": schemaErr.Missing,
			"columns": schemaErr.Columns,
		})
		return
	}

	var dateErr *ingest.DateParseError
	if errors.As(err, &dateErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "no parseable bill dates; fix the source data",
			"column": dateErr.Column,
			"sample": dateErr.Sample,
		})
		return
	}

	var emptyErr *ingest.EmptyInputError
	if errors.As(err, &emptyErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "input file contains no data rows"})
		return
	}

	log.Error().Err(err).Msg("report processing failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (h *ReportHandler) currentOrAbort(c *gin.Context) (*domain.ReportBundle, bool) {
	bundle, err := h.reportService.Current()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return bundle, true
}

// GetStaff returns the master staff KPI table.
func (h *ReportHandler) GetStaff(c *gin.Context) {
	bundle, ok := h.currentOrAbort(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"hints": domain.StaffHints, "rows": bundle.Staff})
}

// GetWeeklyQualifiers returns the current-week incentive qualifiers. An
// empty list means no winners yet.
func (h *ReportHandler) GetWeeklyQualifiers(c *gin.Context) {
	bundle, ok := h.currentOrAbort(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"week":  bundle.CurrentWeek,
		"hints": domain.QualifierHints,
		"rows":  bundle.WeeklyQualifiers,
	})
}

// GetSingleBills returns the staff table ordered by single-bill ratio, the
// bill-splitting watch list.
func (h *ReportHandler) GetSingleBills(c *gin.Context) {
	bundle, ok := h.currentOrAbort(c)
	if !ok {
		return
	}

	rows := make([]domain.StaffMetrics, len(bundle.Staff))
	copy(rows, bundle.Staff)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].SingleBillRatio.Cmp(rows[j].SingleBillRatio) > 0
	})
	c.JSON(http.StatusOK, gin.H{"hints": domain.StaffHints, "rows": rows})
}

// GetDailySales returns the day-wise rollup.
func (h *ReportHandler) GetDailySales(c *gin.Context) {
	bundle, ok := h.currentOrAbort(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"hints": domain.DayRollupHints, "rows": bundle.DayRollups})
}

// GetWeeklySales returns the week-wise rollup.
func (h *ReportHandler) GetWeeklySales(c *gin.Context) {
	bundle, ok := h.currentOrAbort(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"hints": domain.WeekRollupHints, "rows": bundle.WeekRollups})
}

// GetCategoryReport returns the category rollup for the requested filters.
func (h *ReportHandler) GetCategoryReport(c *gin.Context) {
	category := c.DefaultQuery("category", analytics.FilterAll)
	subCategory := c.DefaultQuery("sub_category", analytics.FilterAll)

	report, err := h.reportService.CategoryReport(category, subCategory)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hints": domain.CategoryHints, "report": report})
}

// GetCategoryOptions lists the filter values present in the current upload.
func (h *ReportHandler) GetCategoryOptions(c *gin.Context) {
	category := c.DefaultQuery("category", analytics.FilterAll)

	opts, err := h.reportService.FilterOptions(category)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, opts)
}

// GetMemberships returns the three membership tier matrices.
func (h *ReportHandler) GetMemberships(c *gin.Context) {
	bundle, ok := h.currentOrAbort(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, bundle.Memberships)
}
