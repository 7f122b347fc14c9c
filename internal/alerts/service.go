package alerts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hcvm/opendata-engine/internal/core/storage"
)

// ErrInvalidRequest marks caller errors that should map to HTTP 400.
var ErrInvalidRequest = errors.New("invalid brand-alerts request")

const dateLayout = "2006-01-02"

// Service implements brand-alerts reporting and the repair batch.
type Service struct {
	alertStore  storage.AlertStore
	recordStore storage.RecordStore

	// repairConcurrency bounds the parallel per-alert feed lookups.
	repairConcurrency int
}

// NewService creates the brand-alerts service.
func NewService(alertStore storage.AlertStore, recordStore storage.RecordStore, repairConcurrency int) *Service {
	if repairConcurrency <= 0 {
		repairConcurrency = 8
	}
	return &Service{
		alertStore:        alertStore,
		recordStore:       recordStore,
		repairConcurrency: repairConcurrency,
	}
}

// BuildBrandReport validates the request, fetches the matching alerts and
// folds them into the summary plus detail tree. An empty brand list is a
// caller error; a store failure abandons the whole report.
func (s *Service) BuildBrandReport(ctx context.Context, req ReportRequest) (*Report, error) {
	if len(req.Brands) == 0 {
		return nil, fmt.Errorf("%w: brands must not be empty", ErrInvalidRequest)
	}

	start, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startDate: %v", ErrInvalidRequest, err)
	}
	end, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endDate: %v", ErrInvalidRequest, err)
	}

	alertList, err := s.alertStore.AlertsForBrands(ctx, req.Brands, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch brand alerts: %w", err)
	}

	report := BuildReport(alertList)
	report.Stats = ReportStats{
		Brands:    req.Brands,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	return &report, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
