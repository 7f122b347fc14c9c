package reports

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	httperr "github.com/hcvm/opendata-engine/internal/core/errors"
	"github.com/hcvm/opendata-engine/internal/core/opendata"
)

// RegisterRoutes registers all open-data report endpoints.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	group := r.Group("/v1/open-data")
	group.GET("/brand-rankings", buildHandler(s, ReportBrandRankings, s.BrandRankings))
	group.GET("/catalog-performance", buildHandler(s, ReportCatalogPerformance, s.CatalogPerformance))
	group.GET("/price-analysis", buildHandler(s, ReportPriceAnalysis, s.PriceAnalysis))
	group.GET("/products-by-agreement", buildHandler(s, ReportProductsByAgreement, s.ProductsByAgreement))
	group.GET("/products-by-catalog", buildHandler(s, ReportProductsByCatalog, s.ProductsByCatalog))
	group.GET("/rankings-by-catalog", buildHandler(s, ReportRankingsByCatalog, s.RankingsByCatalog))
	group.GET("/supplier-performance", buildHandler(s, ReportSupplierPerformance, s.SupplierPerformance))
}

// buildHandler wraps a report method in the shared request flow: parse
// the period, run the fold, emit the envelope. Report methods only differ
// in their payload type, so the wrapper is generic over it.
func buildHandler[T any](s *Service, report string, run func(context.Context, opendata.Period) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		period, err := opendata.ParsePeriod(c.Query("period"))
		if err != nil {
			c.JSON(http.StatusBadRequest, httperr.New("Invalid period parameter", err))
			return
		}

		data, err := run(c.Request.Context(), period)
		if err != nil {
			slog.Error("Report aggregation failed", "report", report, "period", period, "error", err)
			c.JSON(http.StatusInternalServerError, httperr.New("Failed to build "+report+" report", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
	}
}
