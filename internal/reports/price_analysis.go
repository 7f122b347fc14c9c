package reports

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hcvm/opendata-engine/internal/core/opendata"
	"github.com/hcvm/opendata-engine/internal/core/storage"
)

// Trend classifications for price movement.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// PriceAnalysis compares each product's quoted mean price in the current
// window against the window immediately preceding it. Products with fewer
// than the policy's minimum contributing orders in the current window are
// excluded from the ranked output; the filter guards against one-off
// quotes dominating the trend signal.
func (s *Service) PriceAnalysis(ctx context.Context, period opendata.Period) (*PriceAnalysisReport, error) {
	now := s.nowFn()
	start := period.Start(now)

	current, err := s.store.RecordsInWindow(ctx, storage.RecordFilter{
		Start:                start,
		RequireProduct:       true,
		RequirePositiveUnits: true,
		RequirePositivePrice: true,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch current-window price records: %w", err)
	}

	previous, err := s.store.RecordsInWindow(ctx, storage.RecordFilter{
		Start:                period.PreviousStart(now),
		End:                  start,
		RequireProduct:       true,
		RequirePositiveUnits: true,
		RequirePositivePrice: true,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch previous-window price records: %w", err)
	}

	currentGroups := foldQuotedPrices(current)
	previousGroups := foldQuotedPrices(previous)

	minOrders := s.policy(ReportPriceAnalysis).MinOrders
	products := make([]PriceTrend, 0, len(currentGroups))
	for key, acc := range currentGroups {
		if acc.rows < minOrders {
			continue
		}
		avg, ok := acc.quotedAvgPrice()
		if !ok {
			continue
		}

		trend := PriceTrend{
			Product:       key,
			Orders:        acc.rows,
			TotalUnits:    acc.totalUnits,
			AvgPrice:      avg,
			ChangePercent: decimal.Zero,
			Trend:         TrendStable,
		}
		if minPrice, maxPrice, ok := acc.priceRange(); ok {
			trend.MinPrice, trend.MaxPrice = &minPrice, &maxPrice
		}

		if prev, ok := previousGroups[key]; ok {
			if prevAvg, ok := prev.quotedAvgPrice(); ok && prevAvg.IsPositive() {
				trend.PreviousAvgPrice = &prevAvg
				trend.ChangePercent = avg.Sub(prevAvg).Div(prevAvg).Mul(decimal.NewFromInt(100)).Round(1)
				trend.Trend = classifyTrend(trend.ChangePercent)
			}
		}

		products = append(products, trend)
	}

	// Order significance first: more contributing orders means a more
	// trustworthy trend.
	sort.Slice(products, func(i, j int) bool {
		if products[i].Orders != products[j].Orders {
			return products[i].Orders > products[j].Orders
		}
		return products[i].Product < products[j].Product
	})

	qualified := len(products)
	if n := s.policy(ReportPriceAnalysis).TopN; len(products) > n {
		products = products[:n]
	}

	return &PriceAnalysisReport{
		Products: products,
		Stats: PriceAnalysisStats{
			Period:            period.String(),
			TotalProducts:     len(currentGroups),
			QualifiedProducts: qualified,
			TotalRecords:      len(current),
		},
	}, nil
}

// foldQuotedPrices groups records by trimmed product description and
// tracks quoted unit prices per group.
func foldQuotedPrices(records []opendata.TransactionRecord) map[string]*groupAccumulator {
	groups := make(map[string]*groupAccumulator)
	for _, rec := range records {
		key := opendata.Text(rec.Description)
		if key == "" {
			continue
		}
		acc := groupFor(groups, key)
		acc.absorb(rec)
		acc.observePrice(rec.UnitPrice)
	}
	return groups
}

// classifyTrend applies the stability band: movements within
// ±priceStableBandPercent are noise, not a trend.
func classifyTrend(changePercent decimal.Decimal) string {
	band := decimal.NewFromInt(priceStableBandPercent)
	switch {
	case changePercent.Abs().LessThan(band):
		return TrendStable
	case changePercent.IsPositive():
		return TrendUp
	default:
		return TrendDown
	}
}
