package reports

import (
	"time"

	"github.com/hcvm/opendata-engine/internal/core/storage"
)

// Service implements the open-data aggregation engine. Every report is a
// stateless single-pass fold over a freshly fetched window of records;
// the service holds no mutable state between calls.
type Service struct {
	store    storage.RecordStore
	policies PolicySet
	nowFn    func() time.Time
}

// NewService creates the reporting service. A nil policy set falls back
// to the compiled-in defaults.
func NewService(store storage.RecordStore, policies PolicySet) *Service {
	if policies == nil {
		policies = DefaultPolicies()
	}
	return &Service{
		store:    store,
		policies: policies,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}
