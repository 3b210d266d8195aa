// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/storeops/salesdash/internal/api/handlers"
	"github.com/storeops/salesdash/internal/api/middleware"
	"github.com/storeops/salesdash/internal/service"
)

// NewRouter builds the gin engine serving the report API.
func NewRouter(reportService *service.ReportService, uploadDir string, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Logger(),
		middleware.Recovery(),
	)

	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	reportHandler := handlers.NewReportHandler(reportService, uploadDir)
	reports := router.Group("/api/v1/reports")
	{
		reports.POST("/upload", reportHandler.Upload)
		reports.GET("/staff", reportHandler.GetStaff)
		reports.GET("/weekly_qualifiers", reportHandler.GetWeeklyQualifiers)
		reports.GET("/single_bills", reportHandler.GetSingleBills)
		reports.GET("/sales/daily", reportHandler.GetDailySales)
		reports.GET("/sales/weekly", reportHandler.GetWeeklySales)
		reports.GET("/category", reportHandler.GetCategoryReport)
		reports.GET("/category/options", reportHandler.GetCategoryOptions)
		reports.GET("/memberships", reportHandler.GetMemberships)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
