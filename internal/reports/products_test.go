package reports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hcvm/opendata-engine/internal/core/opendata"
)

func TestProductsByAgreement_ScopesAndAverages(t *testing.T) {
	store := &fakeRecordStore{current: []opendata.TransactionRecord{
		row(withAgreement("ACU-1"), withProduct("Cuaderno A5"), withAmounts(10, 4, 40), withSupplier("20100000001", "A")),
		row(withAgreement("ACU-1"), withProduct("Cuaderno A5"), withAmounts(10, 6, 60), withSupplier("20100000002", "B")),
		row(withAgreement("ACU-2"), withProduct("Cuaderno A5"), withAmounts(3, 5, 15), withSupplier("20100000001", "A")),
	}}
	svc := newTestService(store, nil)

	report, err := svc.ProductsByAgreement(context.Background(), opendata.PeriodSixMonths)
	require.NoError(t, err)

	// The same description under two agreements is two products.
	require.Len(t, report.Products, 2)

	first := report.Products[0]
	require.Equal(t, "ACU-1", first.AgreementCode)
	require.Equal(t, "Cuaderno A5", first.Description)
	require.True(t, decEq("20", first.TotalUnits))
	// Quoted mean of 4 and 6, not 100/20.
	require.True(t, decEq("5", first.AvgPrice))
	require.Equal(t, 2, first.Suppliers)

	require.Equal(t, "ACU-2", report.Products[1].AgreementCode)
	require.Equal(t, 2, report.Stats.TotalProducts)
	require.True(t, decEq("23", report.Stats.TotalUnits))
}

func TestProductsByCatalog_SetsCatalogScope(t *testing.T) {
	store := &fakeRecordStore{current: []opendata.TransactionRecord{
		row(withCatalog("CAT-07"), withProduct("Silla giratoria"), withAmounts(2, 150, 300)),
	}}
	svc := newTestService(store, nil)

	report, err := svc.ProductsByCatalog(context.Background(), opendata.PeriodSixMonths)
	require.NoError(t, err)
	require.Len(t, report.Products, 1)

	p := report.Products[0]
	require.Equal(t, "CAT-07", p.CatalogID)
	require.Empty(t, p.AgreementCode)
	require.Equal(t, "Silla giratoria", p.Description)

	require.Len(t, store.filters, 1)
	require.True(t, store.filters[0].RequireCatalog)
	require.True(t, store.filters[0].RequireProduct)
}

func TestProductList_FallsBackToUnitEconomics(t *testing.T) {
	// No positive quoted price on any row: the average falls back to
	// amount over units.
	store := &fakeRecordStore{current: []opendata.TransactionRecord{
		row(withAgreement("ACU-1"), withProduct("Kit escolar"), withAmounts(8, 0, 96)),
	}}
	svc := newTestService(store, nil)

	report, err := svc.ProductsByAgreement(context.Background(), opendata.PeriodSixMonths)
	require.NoError(t, err)
	require.Len(t, report.Products, 1)
	require.True(t, decEq("12", report.Products[0].AvgPrice), "got %s", report.Products[0].AvgPrice)
}

func TestProductList_SoftExcludesIncompleteRows(t *testing.T) {
	store := &fakeRecordStore{current: []opendata.TransactionRecord{
		row(withAgreement("ACU-1"), withProduct("Completo"), withAmounts(1, 10, 10)),
		row(withProduct("Sin acuerdo"), withAmounts(1, 10, 10)),
		row(withAgreement("ACU-1"), withAmounts(1, 10, 10)),
	}}
	svc := newTestService(store, nil)

	report, err := svc.ProductsByAgreement(context.Background(), opendata.PeriodSixMonths)
	require.NoError(t, err)

	require.Len(t, report.Products, 1)
	require.Equal(t, "Completo", report.Products[0].Description)
	// Stats count fetched records, not surviving groups.
	require.Equal(t, 3, report.Stats.TotalRecords)
}
