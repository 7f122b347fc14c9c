package reports

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Report names double as endpoint identifiers and policy keys.
const (
	ReportBrandRankings       = "brand-rankings"
	ReportCatalogPerformance  = "catalog-performance"
	ReportPriceAnalysis       = "price-analysis"
	ReportProductsByAgreement = "products-by-agreement"
	ReportProductsByCatalog   = "products-by-catalog"
	ReportRankingsByCatalog   = "rankings-by-catalog"
	ReportSupplierPerformance = "supplier-performance"
)

// Heuristic scoring constants for the catalog efficiency score. These are
// policy choices inherited from the source system, not values computed
// from data; their scale is deliberate and must not be renormalized.
const (
	efficiencyVolumeDivisor  = 1000
	efficiencyCategoryWeight = 10
	efficiencySupplierWeight = 5
	efficiencyScoreCap       = 100
)

// priceStableBandPercent is the |change| threshold below which a price
// trend is classified "stable".
const priceStableBandPercent = 2

// topProductsPerGroup caps the nested product list inside brand and
// catalog rankings.
const topProductsPerGroup = 10

// completedStatusKeywords mark a procurement order as completed when its
// status (lowercased) contains any of them. The feed reports statuses in
// Spanish.
var completedStatusKeywords = []string{"entregado", "completado", "aceptado"}

// Policy holds the tunable thresholds of one report.
type Policy struct {
	// TopN truncates the ranked output.
	TopN int

	// MinOrders excludes groups with fewer contributing orders. Zero
	// disables the filter. Only price-analysis and supplier-performance
	// carry a non-zero default; the per-report inconsistency is inherited
	// from the source system as observed.
	MinOrders int
}

// PolicySet maps report name to its effective policy.
type PolicySet map[string]Policy

// DefaultPolicies returns the compiled-in thresholds.
func DefaultPolicies() PolicySet {
	return PolicySet{
		ReportBrandRankings:       {TopN: 10},
		ReportCatalogPerformance:  {TopN: 10},
		ReportPriceAnalysis:       {TopN: 20, MinOrders: 5},
		ReportProductsByAgreement: {TopN: 20},
		ReportProductsByCatalog:   {TopN: 20},
		ReportRankingsByCatalog:   {TopN: 10},
		ReportSupplierPerformance: {TopN: 10, MinOrders: 5},
	}
}

// rawPolicy is the on-disk YAML shape. Each file overrides one report.
type rawPolicy struct {
	Report    string `yaml:"report"`
	TopN      int    `yaml:"top_n"`
	MinOrders int    `yaml:"min_orders"`
}

// LoadPolicies merges YAML overrides from dir onto the defaults. An empty
// or missing dir yields the defaults. Unknown report names and duplicate
// overrides are startup errors.
func LoadPolicies(dir string) (PolicySet, error) {
	policies := DefaultPolicies()
	if dir == "" {
		return policies, nil
	}

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return policies, nil
	}
	if err != nil {
		return nil, fmt.Errorf("report policy dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("report policy path %q is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading report policy dir: %w", err)
	}

	seen := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || (!strings.HasSuffix(e.Name(), ".yaml") && !strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}

		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading policy file %s: %w", path, err)
		}

		var raw rawPolicy
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing policy file %s: %w", path, err)
		}
		if raw.Report == "" {
			continue // skip empty / comment-only files
		}

		base, ok := policies[raw.Report]
		if !ok {
			return nil, fmt.Errorf("policy file %s: unknown report %q", path, raw.Report)
		}
		if prev, dup := seen[raw.Report]; dup {
			return nil, fmt.Errorf("policy file %s: report %q already overridden by %s", path, raw.Report, prev)
		}
		seen[raw.Report] = e.Name()

		if raw.TopN < 0 || raw.MinOrders < 0 {
			return nil, fmt.Errorf("policy file %s: thresholds must not be negative", path)
		}
		if raw.TopN > 0 {
			base.TopN = raw.TopN
		}
		if raw.MinOrders > 0 {
			base.MinOrders = raw.MinOrders
		}
		policies[raw.Report] = base
	}

	return policies, nil
}

// policy returns the effective policy for a report, falling back to the
// defaults if the set was built by hand without that entry.
func (s *Service) policy(report string) Policy {
	if p, ok := s.policies[report]; ok {
		return p
	}
	return DefaultPolicies()[report]
}
