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

// ProductsByAgreement ranks products scoped to their framework agreement.
// The grouping key is agreement code plus product description; rows
// missing either are soft-excluded.
func (s *Service) ProductsByAgreement(ctx context.Context, period opendata.Period) (*ProductListReport, error) {
	return s.productList(ctx, period, ReportProductsByAgreement,
		storage.RecordFilter{
			Start:                period.Start(s.nowFn()),
			RequireAgreement:     true,
			RequireProduct:       true,
			RequirePositiveUnits: true,
		},
		func(rec opendata.TransactionRecord) (scope, desc string) {
			return opendata.Text(rec.AgreementCode), opendata.Text(rec.Description)
		},
		func(p *ProductSummary, scope string) {
			p.AgreementCode = scope
		},
	)
}

// ProductsByCatalog ranks products scoped to their catalog.
func (s *Service) ProductsByCatalog(ctx context.Context, period opendata.Period) (*ProductListReport, error) {
	return s.productList(ctx, period, ReportProductsByCatalog,
		storage.RecordFilter{
			Start:                period.Start(s.nowFn()),
			RequireCatalog:       true,
			RequireProduct:       true,
			RequirePositiveUnits: true,
		},
		func(rec opendata.TransactionRecord) (scope, desc string) {
			return opendata.Text(rec.CatalogID), opendata.Text(rec.Description)
		},
		func(p *ProductSummary, scope string) {
			p.CatalogID = scope
		},
	)
}

// productList is the shared fold behind both product reports. AvgPrice is
// the quoted mean when any quoted price was captured, otherwise the
// unit-economics fallback; the two reports keep identical semantics.
func (s *Service) productList(
	ctx context.Context,
	period opendata.Period,
	report string,
	filter storage.RecordFilter,
	keyFn func(opendata.TransactionRecord) (scope, desc string),
	setScope func(*ProductSummary, string),
) (*ProductListReport, error) {
	records, err := s.store.RecordsInWindow(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("fetch %s records: %w", report, err)
	}

	groups := make(map[string]*groupAccumulator)
	totalUnits, totalAmount := decimal.Zero, decimal.Zero

	for _, rec := range records {
		scope, desc := keyFn(rec)
		if scope == "" || desc == "" {
			continue
		}

		acc := groupFor(groups, scope+"|"+desc)
		acc.absorb(rec)
		acc.observePrice(rec.UnitPrice)
		acc.suppliers.Add(opendata.Text(rec.SupplierTaxID))

		totalUnits = totalUnits.Add(rec.UnitsDelivered)
		totalAmount = totalAmount.Add(rec.TotalAmount)
	}

	products := make([]ProductSummary, 0, len(groups))
	for key, acc := range groups {
		if !acc.totalUnits.IsPositive() {
			continue
		}

		scope, desc, found := strings.Cut(key, "|")
		if !found {
			continue
		}

		avg, ok := acc.quotedAvgPrice()
		if !ok {
			avg = acc.unitEconomicsAvgPrice()
		}

		summary := ProductSummary{
			Description: desc,
			TotalUnits:  acc.totalUnits,
			TotalAmount: acc.totalAmount,
			AvgPrice:    avg,
			Orders:      acc.rows,
			Suppliers:   acc.suppliers.Len(),
		}
		setScope(&summary, scope)
		products = append(products, summary)
	}

	sort.Slice(products, func(i, j int) bool {
		if !products[i].TotalUnits.Equal(products[j].TotalUnits) {
			return products[i].TotalUnits.GreaterThan(products[j].TotalUnits)
		}
		return products[i].Description < products[j].Description
	})

	totalProducts := len(products)
	if n := s.policy(report).TopN; len(products) > n {
		products = products[:n]
	}

	return &ProductListReport{
		Products: products,
		Stats: ProductListStats{
			Period:        period.String(),
			TotalProducts: totalProducts,
			TotalRecords:  len(records),
			TotalUnits:    totalUnits,
			TotalAmount:   totalAmount,
		},
	}, nil
}
