package alerts

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hcvm/opendata-engine/internal/core/opendata"
	"github.com/hcvm/opendata-engine/internal/core/storage"
)

// fakeAlertStore records patch calls. The mutex matters: repair patches
// alerts from concurrent workers.
type fakeAlertStore struct {
	alerts  []opendata.BrandAlert
	missing []opendata.BrandAlert
	err     error

	mu       sync.Mutex
	patches  map[string]storage.AlertPatch
	patchErr error

	gotBrands []string
	gotStart  *time.Time
	gotEnd    *time.Time
}

func (f *fakeAlertStore) AlertsForBrands(_ context.Context, brands []string, start, end *time.Time) ([]opendata.BrandAlert, error) {
	f.gotBrands = brands
	f.gotStart, f.gotEnd = start, end
	if f.err != nil {
		return nil, f.err
	}
	return f.alerts, nil
}

func (f *fakeAlertStore) AlertsMissingFields(_ context.Context) ([]opendata.BrandAlert, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.missing, nil
}

func (f *fakeAlertStore) PatchAlert(_ context.Context, id string, patch storage.AlertPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.patchErr != nil {
		return f.patchErr
	}
	if f.patches == nil {
		f.patches = make(map[string]storage.AlertPatch)
	}
	f.patches[id] = patch
	return nil
}

func (f *fakeAlertStore) patchFor(id string) (storage.AlertPatch, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	patch, ok := f.patches[id]
	return patch, ok
}

// fakeRecordStore resolves order ids against a canned feed.
type fakeRecordStore struct {
	byOrder map[string]*opendata.TransactionRecord
	err     error
}

func (f *fakeRecordStore) RecordsInWindow(_ context.Context, _ storage.RecordFilter) ([]opendata.TransactionRecord, error) {
	return nil, nil
}

func (f *fakeRecordStore) RecordByOrderID(_ context.Context, orderID string) (*opendata.TransactionRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byOrder[orderID], nil
}

func str(v string) *string {
	return &v
}

func alert(orderID, brand string, mutate ...func(*opendata.BrandAlert)) opendata.BrandAlert {
	a := opendata.BrandAlert{
		ID:          uuid.NewString(),
		OrderID:     orderID,
		Brand:       brand,
		AlertStatus: "pending",
		CreatedAt:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, m := range mutate {
		m(&a)
	}
	return a
}
