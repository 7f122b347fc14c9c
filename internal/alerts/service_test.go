package alerts

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hcvm/opendata-engine/internal/core/opendata"
)

func TestBuildBrandReport_ValidatesRequest(t *testing.T) {
	tests := []struct {
		name string
		req  ReportRequest
	}{
		{name: "empty brand list", req: ReportRequest{}},
		{name: "bad start date", req: ReportRequest{Brands: []string{"NIKE"}, StartDate: "01/06/2026"}},
		{name: "bad end date", req: ReportRequest{Brands: []string{"NIKE"}, EndDate: "junio"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(&fakeAlertStore{}, &fakeRecordStore{}, 0)
			_, err := svc.BuildBrandReport(context.Background(), tc.req)
			require.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestBuildBrandReport_PassesDateBoundsToStore(t *testing.T) {
	store := &fakeAlertStore{}
	svc := NewService(store, &fakeRecordStore{}, 0)

	req := ReportRequest{
		Brands:    []string{"NIKE", "ADIDAS"},
		StartDate: "2026-01-01",
		EndDate:   "2026-06-30",
	}
	report, err := svc.BuildBrandReport(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, []string{"NIKE", "ADIDAS"}, store.gotBrands)
	require.NotNil(t, store.gotStart)
	require.True(t, store.gotStart.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, store.gotEnd)
	require.True(t, store.gotEnd.Equal(time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)))

	require.Equal(t, req.Brands, report.Stats.Brands)
	require.Equal(t, "2026-01-01", report.Stats.StartDate)
	require.Equal(t, "2026-06-30", report.Stats.EndDate)
}

func TestBuildBrandReport_OmittedDatesStayNil(t *testing.T) {
	store := &fakeAlertStore{alerts: []opendata.BrandAlert{alert("OC-1", "NIKE")}}
	svc := NewService(store, &fakeRecordStore{}, 0)

	report, err := svc.BuildBrandReport(context.Background(), ReportRequest{Brands: []string{"NIKE"}})
	require.NoError(t, err)
	require.Nil(t, store.gotStart)
	require.Nil(t, store.gotEnd)
	require.Equal(t, 1, report.Summary.Total)
}

func TestBuildBrandReport_StoreErrorSurfaces(t *testing.T) {
	store := &fakeAlertStore{err: fmt.Errorf("db down")}
	svc := NewService(store, &fakeRecordStore{}, 0)

	_, err := svc.BuildBrandReport(context.Background(), ReportRequest{Brands: []string{"NIKE"}})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidRequest)
	require.ErrorContains(t, err, "db down")
}
