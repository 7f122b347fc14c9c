package storage

import (
	"context"
	"time"

	"github.com/hcvm/opendata-engine/internal/core/opendata"
)

// RecordFilter selects the slice of the open-data feed one report folds
// over. Start is inclusive; a zero End leaves the window open-ended.
// The Require* flags express each report's non-null / positive-value
// preconditions so the store can push them into the query instead of
// shipping unusable rows.
type RecordFilter struct {
	Start time.Time
	End   time.Time

	RequireBrand      bool
	RequireCatalog    bool
	RequireAgreement  bool
	RequireSupplier   bool
	RequireProduct    bool
	RequirePartNumber bool

	RequirePositiveUnits bool
	RequirePositivePrice bool
}

// RecordStore is the read side of the open-data feed.
type RecordStore interface {
	// RecordsInWindow fetches every record matching the filter. The fetch
	// is all-or-nothing: any error means no rows were returned and the
	// caller must abandon the aggregation.
	RecordsInWindow(ctx context.Context, filter RecordFilter) ([]opendata.TransactionRecord, error)

	// RecordByOrderID looks up the most recent feed record for one
	// purchase order. A miss returns (nil, nil); only transport or scan
	// problems surface as errors.
	RecordByOrderID(ctx context.Context, orderID string) (*opendata.TransactionRecord, error)
}

// AlertPatch carries the fields a repair run may fill in. Nil fields are
// left untouched; the store must never overwrite a present value with one
// of these.
type AlertPatch struct {
	SupplierTaxID *string
	SupplierName  *string
	OrderStatus   *string
}

// IsZero reports whether the patch would change nothing.
func (p AlertPatch) IsZero() bool {
	return p.SupplierTaxID == nil && p.SupplierName == nil && p.OrderStatus == nil
}

// AlertStore is the brand-alerts collaborator.
type AlertStore interface {
	// AlertsForBrands fetches alerts for the given brands, optionally
	// bounded by creation date. Brands match exactly as stored.
	AlertsForBrands(ctx context.Context, brands []string, start, end *time.Time) ([]opendata.BrandAlert, error)

	// AlertsMissingFields fetches alerts with a NULL or blank supplier tax
	// id, supplier name, or order status: the repair candidates.
	AlertsMissingFields(ctx context.Context) ([]opendata.BrandAlert, error)

	// PatchAlert applies a partial field update to one alert.
	PatchAlert(ctx context.Context, id string, patch AlertPatch) error
}
