package alerts

import "github.com/hcvm/opendata-engine/internal/core/opendata"

// ReportRequest is the POST body of the brand-alerts report. Brands is
// required and must be non-empty; the date bounds are optional ISO dates
// (YYYY-MM-DD) applied to the alert creation time.
type ReportRequest struct {
	Brands    []string `json:"brands" binding:"required"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
}

// Summary holds the four independent count-by-dimension maps.
type Summary struct {
	Total         int            `json:"total"`
	ByBrand       map[string]int `json:"byBrand"`
	ByAlertStatus map[string]int `json:"byAlertStatus"`
	ByAgreement   map[string]int `json:"byAgreement"`
	ByOrderStatus map[string]int `json:"byOrderStatus"`
}

// DetailTree nests the full alert records four levels deep:
// brand, framework agreement, alert status, order status. The original
// records are preserved losslessly at the leaves.
type DetailTree map[string]map[string]map[string]map[string][]opendata.BrandAlert

// Report is the brand-alerts reporting payload.
type Report struct {
	Summary Summary     `json:"summary"`
	Detail  DetailTree  `json:"detail"`
	Stats   ReportStats `json:"stats"`
}

// ReportStats echoes the request scope.
type ReportStats struct {
	Brands    []string `json:"brands"`
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
}

// Repair outcome statuses.
const (
	RepairStatusRepaired = "repaired"
	RepairStatusFailed   = "failed"
	RepairStatusSkipped  = "skipped"
)

// RepairResult is the per-alert outcome of a repair run.
type RepairResult struct {
	AlertID string            `json:"alertId"`
	OrderID string            `json:"ordenElectronica"`
	Status  string            `json:"status"`
	Reason  string            `json:"reason,omitempty"`
	Updates map[string]string `json:"updates,omitempty"`
}

// RepairReport tallies one repair run. Skips are visible in Results but
// counted outside Repaired and Failed.
type RepairReport struct {
	Message  string         `json:"message"`
	Total    int            `json:"total"`
	Repaired int            `json:"repaired"`
	Failed   int            `json:"failed"`
	Results  []RepairResult `json:"results"`
}
