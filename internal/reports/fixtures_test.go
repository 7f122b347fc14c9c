package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hcvm/opendata-engine/internal/core/opendata"
	"github.com/hcvm/opendata-engine/internal/core/storage"
)

// fakeRecordStore serves canned windows and records every filter it was
// asked for. Bounded fetches (End set) serve the previous window, which
// is how the price-analysis double fetch is told apart.
type fakeRecordStore struct {
	current  []opendata.TransactionRecord
	previous []opendata.TransactionRecord
	err      error
	filters  []storage.RecordFilter
}

func (f *fakeRecordStore) RecordsInWindow(_ context.Context, filter storage.RecordFilter) ([]opendata.TransactionRecord, error) {
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	if filter.End.IsZero() {
		return f.current, nil
	}
	return f.previous, nil
}

func (f *fakeRecordStore) RecordByOrderID(_ context.Context, _ string) (*opendata.TransactionRecord, error) {
	return nil, nil
}

var testNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func newTestService(store storage.RecordStore, policies PolicySet) *Service {
	s := NewService(store, policies)
	s.nowFn = func() time.Time { return testNow }
	return s
}

func str(v string) *string {
	return &v
}

// row builds a feed record with sane defaults; tests override the fields
// the scenario cares about.
func row(mutate ...func(*opendata.TransactionRecord)) opendata.TransactionRecord {
	rec := opendata.TransactionRecord{
		OrderID:         "OC-1",
		UnitsDelivered:  decimal.NewFromInt(1),
		UnitPrice:       decimal.NewFromInt(10),
		TotalAmount:     decimal.NewFromInt(10),
		PublicationDate: testNow.AddDate(0, -1, 0),
	}
	for _, m := range mutate {
		m(&rec)
	}
	return rec
}

func withOrder(id string) func(*opendata.TransactionRecord) {
	return func(r *opendata.TransactionRecord) { r.OrderID = id }
}

func withBrand(brand string) func(*opendata.TransactionRecord) {
	return func(r *opendata.TransactionRecord) { r.Brand = str(brand) }
}

func withProduct(desc string) func(*opendata.TransactionRecord) {
	return func(r *opendata.TransactionRecord) { r.Description = str(desc) }
}

func withCatalog(id string) func(*opendata.TransactionRecord) {
	return func(r *opendata.TransactionRecord) { r.CatalogID = str(id) }
}

func withAgreement(code string) func(*opendata.TransactionRecord) {
	return func(r *opendata.TransactionRecord) { r.AgreementCode = str(code) }
}

func withSupplier(taxID, name string) func(*opendata.TransactionRecord) {
	return func(r *opendata.TransactionRecord) {
		r.SupplierTaxID = str(taxID)
		r.SupplierName = str(name)
	}
}

func withCategory(name string) func(*opendata.TransactionRecord) {
	return func(r *opendata.TransactionRecord) { r.Category = str(name) }
}

func withEntity(id string) func(*opendata.TransactionRecord) {
	return func(r *opendata.TransactionRecord) { r.BuyerEntityID = str(id) }
}

func withStatus(status string) func(*opendata.TransactionRecord) {
	return func(r *opendata.TransactionRecord) { r.OrderStatus = str(status) }
}

func withAmounts(units, unitPrice, total int64) func(*opendata.TransactionRecord) {
	return func(r *opendata.TransactionRecord) {
		r.UnitsDelivered = decimal.NewFromInt(units)
		r.UnitPrice = decimal.NewFromInt(unitPrice)
		r.TotalAmount = decimal.NewFromInt(total)
	}
}

func withPublished(t time.Time) func(*opendata.TransactionRecord) {
	return func(r *opendata.TransactionRecord) { r.PublicationDate = t }
}

// decEq compares decimals by value. require.Equal is unreliable here:
// decimals with different exponents compare unequal even when numerically
// the same.
func decEq(want string, got decimal.Decimal) bool {
	return decimal.RequireFromString(want).Equal(got)
}
