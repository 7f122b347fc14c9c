package alerts

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	httperr "github.com/hcvm/opendata-engine/internal/core/errors"
)

// RegisterRoutes registers the brand-alerts endpoints.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	group := r.Group("/v1/brand-alerts")
	group.POST("/report", s.HandleReport)
	group.POST("/repair", s.HandleRepair)
}

// HandleReport handles POST /v1/brand-alerts/report.
func (s *Service) HandleReport(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.New("Invalid request body", err))
		return
	}

	report, err := s.BuildBrandReport(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, httperr.New("Invalid brand-alerts request", err))
			return
		}
		slog.Error("Brand-alerts report failed", "brands", req.Brands, "error", err)
		c.JSON(http.StatusInternalServerError, httperr.New("Failed to build brand-alerts report", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
}

// HandleRepair handles POST /v1/brand-alerts/repair. No request body; the
// response is the repair tally, not the success envelope, to keep the
// wire shape of the original endpoint.
func (s *Service) HandleRepair(c *gin.Context) {
	report, err := s.Repair(c.Request.Context())
	if err != nil {
		slog.Error("Brand-alert repair run failed", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.New("Failed to run alert repair", err))
		return
	}

	c.JSON(http.StatusOK, report)
}
