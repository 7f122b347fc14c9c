package opendata

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord is one delivered line item from the public-procurement
// open-data feed. One purchase order usually spans several records.
//
// Text columns that the source system leaves NULL (or blank) are pointers:
// a missing grouping key soft-excludes the record from the aggregate that
// needs it, and the nil check keeps that branch visible.
type TransactionRecord struct {
	OrderID         string
	AgreementCode   *string
	AgreementName   *string
	CatalogID       *string
	PartNumber      *string
	Description     *string
	Brand           *string
	Category        *string
	SupplierTaxID   *string
	SupplierName    *string
	BuyerEntityID   *string
	UnitsDelivered  decimal.Decimal
	UnitPrice       decimal.Decimal
	TotalAmount     decimal.Decimal
	PublicationDate time.Time
	OrderStatus     *string
}

// BrandAlert is a brand-protection alert raised against a purchase order.
// OrderID carries the "orden electrónica" that links the alert back to the
// open-data feed; supplier and order-status fields arrive NULL when the
// alert was created before the feed row existed.
type BrandAlert struct {
	ID            string
	OrderID       string
	Brand         string
	AgreementCode *string
	AgreementName *string
	AlertStatus   string
	OrderStatus   *string
	SupplierTaxID *string
	SupplierName  *string
	CreatedAt     time.Time
}

// Text dereferences a nullable column, trimming surrounding whitespace.
// Both NULL and whitespace-only values collapse to "".
func Text(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// NormalizeBrand folds the free-text brand column into its grouping key.
// The feed mixes casing and padding ("  nike ", "NIKE", "Nike"); trim +
// uppercase is the canonical form. Returns "" for unusable brands.
func NormalizeBrand(brand string) string {
	return strings.ToUpper(strings.TrimSpace(brand))
}

// MonthKey derives the YYYY-MM bucket label used by monthly rollups.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
