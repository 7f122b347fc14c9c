package reports

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hcvm/opendata-engine/internal/core/opendata"
	"github.com/hcvm/opendata-engine/internal/core/storage"
)

// BrandRankings ranks brands by units delivered, with each brand's
// best-selling products nested. Brands are grouped on their normalized
// (trimmed, uppercased) form so casing and padding variants collapse into
// one group; rows whose brand normalizes to "" are soft-excluded.
func (s *Service) BrandRankings(ctx context.Context, period opendata.Period) (*BrandRankingsReport, error) {
	now := s.nowFn()
	records, err := s.store.RecordsInWindow(ctx, storage.RecordFilter{
		Start:                period.Start(now),
		RequireBrand:         true,
		RequirePositiveUnits: true,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch brand-ranking records: %w", err)
	}

	brands := make(map[string]*groupAccumulator)
	products := make(map[string]map[string]*groupAccumulator)
	totalUnits, totalAmount := decimal.Zero, decimal.Zero

	for _, rec := range records {
		brand := opendata.NormalizeBrand(opendata.Text(rec.Brand))
		if brand == "" {
			continue
		}

		acc := groupFor(brands, brand)
		acc.absorb(rec)
		acc.suppliers.Add(opendata.Text(rec.SupplierTaxID))
		acc.agreements.Add(opendata.Text(rec.AgreementCode))
		acc.catalogs.Add(opendata.Text(rec.CatalogID))

		if desc := opendata.Text(rec.Description); desc != "" {
			perBrand, ok := products[brand]
			if !ok {
				perBrand = make(map[string]*groupAccumulator)
				products[brand] = perBrand
			}
			prod := groupFor(perBrand, desc)
			prod.absorb(rec)
		}

		totalUnits = totalUnits.Add(rec.UnitsDelivered)
		totalAmount = totalAmount.Add(rec.TotalAmount)
	}

	rankings := make([]BrandRanking, 0, len(brands))
	for brand, acc := range brands {
		if !acc.totalUnits.IsPositive() {
			continue
		}
		rankings = append(rankings, BrandRanking{
			Brand:       brand,
			TotalUnits:  acc.totalUnits,
			TotalAmount: acc.totalAmount,
			AvgPrice:    acc.unitEconomicsAvgPrice(),
			Orders:      acc.rows,
			Suppliers:   acc.suppliers.Len(),
			Agreements:  acc.agreements.Len(),
			Catalogs:    acc.catalogs.Len(),
			TopProducts: topProducts(products[brand]),
		})
	}

	sort.Slice(rankings, func(i, j int) bool {
		if !rankings[i].TotalUnits.Equal(rankings[j].TotalUnits) {
			return rankings[i].TotalUnits.GreaterThan(rankings[j].TotalUnits)
		}
		return rankings[i].Brand < rankings[j].Brand
	})

	totalBrands := len(rankings)
	if n := s.policy(ReportBrandRankings).TopN; len(rankings) > n {
		rankings = rankings[:n]
	}

	return &BrandRankingsReport{
		Rankings: rankings,
		Stats: BrandRankingsStats{
			Period:       period.String(),
			TotalBrands:  totalBrands,
			TotalRecords: len(records),
			TotalUnits:   totalUnits,
			TotalAmount:  totalAmount,
		},
	}, nil
}

// topProducts finalizes a nested product map into its ranked, truncated
// form. Product averages are unit-economics, same as the brand level.
func topProducts(groups map[string]*groupAccumulator) []RankedProduct {
	out := make([]RankedProduct, 0, len(groups))
	for desc, acc := range groups {
		if !acc.totalUnits.IsPositive() {
			continue
		}
		out = append(out, RankedProduct{
			Description: desc,
			TotalUnits:  acc.totalUnits,
			TotalAmount: acc.totalAmount,
			AvgPrice:    acc.unitEconomicsAvgPrice(),
			Orders:      acc.rows,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].TotalUnits.Equal(out[j].TotalUnits) {
			return out[i].TotalUnits.GreaterThan(out[j].TotalUnits)
		}
		return out[i].Description < out[j].Description
	})

	if len(out) > topProductsPerGroup {
		out = out[:topProductsPerGroup]
	}
	return out
}
