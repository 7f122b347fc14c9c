package reports

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hcvm/opendata-engine/internal/core/opendata"
	"github.com/hcvm/opendata-engine/internal/core/storage"
)

// CatalogPerformance ranks catalogs by a heuristic efficiency score
// built from purchase volume, category diversity and supplier diversity.
// Groups are keyed on catalog id plus framework-agreement code, so the
// same catalog under two agreements scores independently.
func (s *Service) CatalogPerformance(ctx context.Context, period opendata.Period) (*CatalogPerformanceReport, error) {
	now := s.nowFn()
	records, err := s.store.RecordsInWindow(ctx, storage.RecordFilter{
		Start:                period.Start(now),
		RequireCatalog:       true,
		RequirePositiveUnits: true,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch catalog-performance records: %w", err)
	}

	type catalogIdentity struct {
		catalogID     string
		agreementCode string
		agreementName string
	}

	groups := make(map[string]*groupAccumulator)
	identities := make(map[string]catalogIdentity)
	totalUnits, totalAmount := decimal.Zero, decimal.Zero

	for _, rec := range records {
		catalogID := opendata.Text(rec.CatalogID)
		if catalogID == "" {
			continue
		}
		agreementCode := opendata.Text(rec.AgreementCode)
		key := catalogID + "|" + agreementCode

		acc := groupFor(groups, key)
		acc.absorb(rec)
		acc.categories.Add(opendata.Text(rec.Category))
		acc.suppliers.Add(opendata.Text(rec.SupplierTaxID))
		acc.bucketMonth(rec.PublicationDate, rec.UnitsDelivered, rec.TotalAmount)

		if _, ok := identities[key]; !ok {
			identities[key] = catalogIdentity{
				catalogID:     catalogID,
				agreementCode: agreementCode,
				agreementName: opendata.Text(rec.AgreementName),
			}
		}

		totalUnits = totalUnits.Add(rec.UnitsDelivered)
		totalAmount = totalAmount.Add(rec.TotalAmount)
	}

	catalogs := make([]CatalogPerformance, 0, len(groups))
	for key, acc := range groups {
		if !acc.totalUnits.IsPositive() {
			continue
		}
		id := identities[key]
		catalogs = append(catalogs, CatalogPerformance{
			CatalogID:     id.catalogID,
			AgreementCode: id.agreementCode,
			AgreementName: id.agreementName,
			TotalUnits:    acc.totalUnits,
			TotalAmount:   acc.totalAmount,
			AvgPrice:      acc.unitEconomicsAvgPrice(),
			Orders:        acc.rows,
			Categories:    acc.categories.Len(),
			Suppliers:     acc.suppliers.Len(),
			Efficiency:    efficiencyScore(acc),
			Monthly:       monthlySeries(acc.monthly),
		})
	}

	sort.Slice(catalogs, func(i, j int) bool {
		if !catalogs[i].Efficiency.Equal(catalogs[j].Efficiency) {
			return catalogs[i].Efficiency.GreaterThan(catalogs[j].Efficiency)
		}
		return catalogs[i].TotalAmount.GreaterThan(catalogs[j].TotalAmount)
	})

	totalCatalogs := len(catalogs)
	if n := s.policy(ReportCatalogPerformance).TopN; len(catalogs) > n {
		catalogs = catalogs[:n]
	}

	return &CatalogPerformanceReport{
		Catalogs: catalogs,
		Stats: CatalogPerformanceStats{
			Period:        period.String(),
			TotalCatalogs: totalCatalogs,
			TotalRecords:  len(records),
			TotalUnits:    totalUnits,
			TotalAmount:   totalAmount,
		},
	}, nil
}

// efficiencyScore is the source system's heuristic ranking signal:
// three capped components averaged with equal weight. It is not a
// normalized statistical measure; the divisors and weights are policy
// constants and deliberately stay as-is.
func efficiencyScore(acc *groupAccumulator) decimal.Decimal {
	volume := capScore(acc.totalUnits.Div(decimal.NewFromInt(efficiencyVolumeDivisor)))
	diversity := capScore(decimal.NewFromInt(int64(acc.categories.Len() * efficiencyCategoryWeight)))
	suppliers := capScore(decimal.NewFromInt(int64(acc.suppliers.Len() * efficiencySupplierWeight)))

	return volume.Add(diversity).Add(suppliers).Div(decimal.NewFromInt(3)).Round(1)
}

// monthlySeries flattens the month buckets into chronological order.
func monthlySeries(buckets map[string]*monthlyBucket) []MonthlyPoint {
	points := make([]MonthlyPoint, 0, len(buckets))
	for month, b := range buckets {
		points = append(points, MonthlyPoint{
			Month:  month,
			Units:  b.units,
			Amount: b.amount,
			Orders: b.orders,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Month < points[j].Month
	})
	return points
}
