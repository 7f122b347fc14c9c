package reports

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hcvm/opendata-engine/internal/core/opendata"
	"github.com/hcvm/opendata-engine/internal/core/storage"
)

// RankingsByCatalog builds a two-level ranking: catalogs ordered by units
// delivered, each carrying its own ranked product list. Products nest on
// part number plus description; their averages are unit-economics with
// quoted min/max tracked separately.
func (s *Service) RankingsByCatalog(ctx context.Context, period opendata.Period) (*CatalogRankingsReport, error) {
	now := s.nowFn()
	records, err := s.store.RecordsInWindow(ctx, storage.RecordFilter{
		Start:                period.Start(now),
		RequireCatalog:       true,
		RequirePositiveUnits: true,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch rankings-by-catalog records: %w", err)
	}

	type productIdentity struct {
		partNumber  string
		description string
	}

	catalogs := make(map[string]*groupAccumulator)
	products := make(map[string]map[string]*groupAccumulator)
	identities := make(map[string]map[string]productIdentity)
	totalUnits, totalAmount := decimal.Zero, decimal.Zero

	for _, rec := range records {
		catalogID := opendata.Text(rec.CatalogID)
		if catalogID == "" {
			continue
		}

		acc := groupFor(catalogs, catalogID)
		acc.absorb(rec)

		partNumber := opendata.Text(rec.PartNumber)
		description := opendata.Text(rec.Description)
		if partNumber != "" || description != "" {
			perCatalog, ok := products[catalogID]
			if !ok {
				perCatalog = make(map[string]*groupAccumulator)
				products[catalogID] = perCatalog
				identities[catalogID] = make(map[string]productIdentity)
			}

			key := partNumber + "|" + description
			prod := groupFor(perCatalog, key)
			prod.absorb(rec)
			prod.observePrice(rec.UnitPrice)
			if _, ok := identities[catalogID][key]; !ok {
				identities[catalogID][key] = productIdentity{partNumber: partNumber, description: description}
			}
		}

		totalUnits = totalUnits.Add(rec.UnitsDelivered)
		totalAmount = totalAmount.Add(rec.TotalAmount)
	}

	rankings := make([]CatalogRanking, 0, len(catalogs))
	for catalogID, acc := range catalogs {
		if !acc.totalUnits.IsPositive() {
			continue
		}

		ranked := make([]RankedProduct, 0, len(products[catalogID]))
		for key, prod := range products[catalogID] {
			if !prod.totalUnits.IsPositive() {
				continue
			}
			id := identities[catalogID][key]
			item := RankedProduct{
				Description: id.description,
				PartNumber:  id.partNumber,
				TotalUnits:  prod.totalUnits,
				TotalAmount: prod.totalAmount,
				AvgPrice:    prod.unitEconomicsAvgPrice(),
				Orders:      prod.rows,
			}
			if minPrice, maxPrice, ok := prod.priceRange(); ok {
				item.MinPrice, item.MaxPrice = &minPrice, &maxPrice
			}
			ranked = append(ranked, item)
		}

		sort.Slice(ranked, func(i, j int) bool {
			if !ranked[i].TotalUnits.Equal(ranked[j].TotalUnits) {
				return ranked[i].TotalUnits.GreaterThan(ranked[j].TotalUnits)
			}
			return ranked[i].Description < ranked[j].Description
		})
		if len(ranked) > topProductsPerGroup {
			ranked = ranked[:topProductsPerGroup]
		}

		rankings = append(rankings, CatalogRanking{
			CatalogID:   catalogID,
			TotalUnits:  acc.totalUnits,
			TotalAmount: acc.totalAmount,
			AvgPrice:    acc.unitEconomicsAvgPrice(),
			Orders:      acc.rows,
			Products:    ranked,
		})
	}

	sort.Slice(rankings, func(i, j int) bool {
		if !rankings[i].TotalUnits.Equal(rankings[j].TotalUnits) {
			return rankings[i].TotalUnits.GreaterThan(rankings[j].TotalUnits)
		}
		return rankings[i].CatalogID < rankings[j].CatalogID
	})

	totalCatalogs := len(rankings)
	if n := s.policy(ReportRankingsByCatalog).TopN; len(rankings) > n {
		rankings = rankings[:n]
	}

	return &CatalogRankingsReport{
		Catalogs: rankings,
		Stats: CatalogRankingsStats{
			Period:        period.String(),
			TotalCatalogs: totalCatalogs,
			TotalRecords:  len(records),
			TotalUnits:    totalUnits,
			TotalAmount:   totalAmount,
		},
	}, nil
}
