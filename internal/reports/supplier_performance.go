package reports

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hcvm/opendata-engine/internal/core/opendata"
	"github.com/hcvm/opendata-engine/internal/core/storage"
)

// SupplierPerformance scores suppliers on market share and reliability.
// Suppliers with fewer distinct orders than the policy minimum are
// excluded entirely: one-off suppliers produce meaningless reliability
// figures. The market-share denominator is the monetary total of ALL
// qualifying rows in the window, computed before grouping, so shares of
// the ranked suppliers sum to at most 100.
func (s *Service) SupplierPerformance(ctx context.Context, period opendata.Period) (*SupplierPerformanceReport, error) {
	now := s.nowFn()
	records, err := s.store.RecordsInWindow(ctx, storage.RecordFilter{
		Start:                period.Start(now),
		RequireSupplier:      true,
		RequirePositiveUnits: true,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch supplier-performance records: %w", err)
	}

	groups := make(map[string]*groupAccumulator)
	windowAmount := decimal.Zero

	for _, rec := range records {
		taxID := opendata.Text(rec.SupplierTaxID)
		if taxID == "" {
			continue
		}

		acc := groupFor(groups, taxID)
		if acc.rows == 0 {
			// First row seen wins the display name, even when blank; the
			// feed is not consistent enough to arbitrate conflicts.
			acc.label = opendata.Text(rec.SupplierName)
		}
		acc.absorb(rec)
		acc.orderIDs.Add(rec.OrderID)
		if isCompletedStatus(rec.OrderStatus) {
			acc.completedOrders.Add(rec.OrderID)
		}
		acc.entities.Add(opendata.Text(rec.BuyerEntityID))
		acc.catalogs.Add(opendata.Text(rec.CatalogID))

		windowAmount = windowAmount.Add(rec.TotalAmount)
	}

	minOrders := s.policy(ReportSupplierPerformance).MinOrders
	suppliers := make([]SupplierPerformance, 0, len(groups))
	for taxID, acc := range groups {
		orderCount := acc.orderIDs.Len()
		if orderCount < minOrders {
			continue
		}

		suppliers = append(suppliers, SupplierPerformance{
			SupplierTaxID: taxID,
			SupplierName:  acc.label,
			TotalUnits:    acc.totalUnits,
			TotalAmount:   acc.totalAmount,
			Orders:        orderCount,
			AvgOrderValue: acc.totalAmount.Div(decimal.NewFromInt(int64(orderCount))).Round(2),
			MarketShare:   percent(acc.totalAmount, windowAmount),
			Reliability:   percent(decimal.NewFromInt(int64(acc.completedOrders.Len())), decimal.NewFromInt(int64(orderCount))),
			Entities:      acc.entities.Len(),
			Catalogs:      acc.catalogs.Len(),
		})
	}

	sort.Slice(suppliers, func(i, j int) bool {
		if !suppliers[i].TotalAmount.Equal(suppliers[j].TotalAmount) {
			return suppliers[i].TotalAmount.GreaterThan(suppliers[j].TotalAmount)
		}
		return suppliers[i].SupplierTaxID < suppliers[j].SupplierTaxID
	})

	qualified := len(suppliers)
	if n := s.policy(ReportSupplierPerformance).TopN; len(suppliers) > n {
		suppliers = suppliers[:n]
	}

	return &SupplierPerformanceReport{
		Suppliers: suppliers,
		Stats: SupplierPerformanceStats{
			Period:             period.String(),
			TotalSuppliers:     len(groups),
			QualifiedSuppliers: qualified,
			TotalRecords:       len(records),
			TotalAmount:        windowAmount,
		},
	}, nil
}

// isCompletedStatus reports whether an order status counts as completed.
// Substring match on the lowercased status, since the feed mixes phrasing
// like "Entregado" and "Pedido entregado parcialmente".
func isCompletedStatus(status *string) bool {
	s := strings.ToLower(opendata.Text(status))
	if s == "" {
		return false
	}
	for _, keyword := range completedStatusKeywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
