package reports

import "github.com/shopspring/decimal"

// Response payloads. JSON keys are camelCase to stay wire-compatible with
// the consumers of the original open-data API.

// RankedProduct is a product-level rollup nested inside brand and catalog
// rankings. MinPrice/MaxPrice are present only when at least two quoted
// prices were observed.
type RankedProduct struct {
	Description string           `json:"description"`
	PartNumber  string           `json:"partNumber,omitempty"`
	TotalUnits  decimal.Decimal  `json:"totalUnits"`
	TotalAmount decimal.Decimal  `json:"totalAmount"`
	AvgPrice    decimal.Decimal  `json:"avgPrice"`
	Orders      int              `json:"orders"`
	MinPrice    *decimal.Decimal `json:"minPrice,omitempty"`
	MaxPrice    *decimal.Decimal `json:"maxPrice,omitempty"`
}

// BrandRanking is one brand's rollup. AvgPrice is unit-economics
// (totalAmount / totalUnits).
type BrandRanking struct {
	Brand       string          `json:"brand"`
	TotalUnits  decimal.Decimal `json:"totalUnits"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	AvgPrice    decimal.Decimal `json:"avgPrice"`
	Orders      int             `json:"orders"`
	Suppliers   int             `json:"suppliers"`
	Agreements  int             `json:"agreements"`
	Catalogs    int             `json:"catalogs"`
	TopProducts []RankedProduct `json:"topProducts"`
}

type BrandRankingsStats struct {
	Period       string          `json:"period"`
	TotalBrands  int             `json:"totalBrands"`
	TotalRecords int             `json:"totalRecords"`
	TotalUnits   decimal.Decimal `json:"totalUnits"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}

type BrandRankingsReport struct {
	Rankings []BrandRanking     `json:"rankings"`
	Stats    BrandRankingsStats `json:"stats"`
}

// MonthlyPoint is one YYYY-MM bucket of a catalog's activity.
type MonthlyPoint struct {
	Month  string          `json:"month"`
	Units  decimal.Decimal `json:"units"`
	Amount decimal.Decimal `json:"amount"`
	Orders int             `json:"orders"`
}

// CatalogPerformance carries the heuristic efficiency score alongside the
// plain rollups. AvgPrice is unit-economics.
type CatalogPerformance struct {
	CatalogID     string          `json:"catalogId"`
	AgreementCode string          `json:"agreementCode,omitempty"`
	AgreementName string          `json:"agreementName,omitempty"`
	TotalUnits    decimal.Decimal `json:"totalUnits"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AvgPrice      decimal.Decimal `json:"avgPrice"`
	Orders        int             `json:"orders"`
	Categories    int             `json:"categories"`
	Suppliers     int             `json:"suppliers"`
	Efficiency    decimal.Decimal `json:"efficiency"`
	Monthly       []MonthlyPoint  `json:"monthly"`
}

type CatalogPerformanceStats struct {
	Period        string          `json:"period"`
	TotalCatalogs int             `json:"totalCatalogs"`
	TotalRecords  int             `json:"totalRecords"`
	TotalUnits    decimal.Decimal `json:"totalUnits"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

type CatalogPerformanceReport struct {
	Catalogs []CatalogPerformance    `json:"catalogs"`
	Stats    CatalogPerformanceStats `json:"stats"`
}

// PriceTrend compares a product's quoted mean price across the current
// and previous windows. AvgPrice here is the quoted mean, never the
// unit-economics average.
type PriceTrend struct {
	Product          string           `json:"product"`
	Orders           int              `json:"orders"`
	TotalUnits       decimal.Decimal  `json:"totalUnits"`
	AvgPrice         decimal.Decimal  `json:"avgPrice"`
	PreviousAvgPrice *decimal.Decimal `json:"previousAvgPrice,omitempty"`
	MinPrice         *decimal.Decimal `json:"minPrice,omitempty"`
	MaxPrice         *decimal.Decimal `json:"maxPrice,omitempty"`
	ChangePercent    decimal.Decimal  `json:"changePercent"`
	Trend            string           `json:"trend"` // up | down | stable
}

type PriceAnalysisStats struct {
	Period            string `json:"period"`
	TotalProducts     int    `json:"totalProducts"`
	QualifiedProducts int    `json:"qualifiedProducts"`
	TotalRecords      int    `json:"totalRecords"`
}

type PriceAnalysisReport struct {
	Products []PriceTrend       `json:"products"`
	Stats    PriceAnalysisStats `json:"stats"`
}

// ProductSummary is one product's rollup scoped to a framework agreement
// or a catalog. AvgPrice is the quoted mean when any quoted price was
// captured, otherwise the unit-economics fallback.
type ProductSummary struct {
	AgreementCode string          `json:"agreementCode,omitempty"`
	CatalogID     string          `json:"catalogId,omitempty"`
	Description   string          `json:"description"`
	TotalUnits    decimal.Decimal `json:"totalUnits"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AvgPrice      decimal.Decimal `json:"avgPrice"`
	Orders        int             `json:"orders"`
	Suppliers     int             `json:"suppliers"`
}

type ProductListStats struct {
	Period        string          `json:"period"`
	TotalProducts int             `json:"totalProducts"`
	TotalRecords  int             `json:"totalRecords"`
	TotalUnits    decimal.Decimal `json:"totalUnits"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

type ProductListReport struct {
	Products []ProductSummary `json:"products"`
	Stats    ProductListStats `json:"stats"`
}

// CatalogRanking nests the best-selling products under each catalog.
type CatalogRanking struct {
	CatalogID   string          `json:"catalogId"`
	TotalUnits  decimal.Decimal `json:"totalUnits"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	AvgPrice    decimal.Decimal `json:"avgPrice"`
	Orders      int             `json:"orders"`
	Products    []RankedProduct `json:"products"`
}

type CatalogRankingsStats struct {
	Period        string          `json:"period"`
	TotalCatalogs int             `json:"totalCatalogs"`
	TotalRecords  int             `json:"totalRecords"`
	TotalUnits    decimal.Decimal `json:"totalUnits"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

type CatalogRankingsReport struct {
	Catalogs []CatalogRanking     `json:"catalogs"`
	Stats    CatalogRankingsStats `json:"stats"`
}

// SupplierPerformance scores one supplier. Orders counts distinct
// purchase orders; AvgOrderValue is totalAmount over that count.
// MarketShare's denominator is the whole window, not the top-N.
type SupplierPerformance struct {
	SupplierTaxID string          `json:"supplierTaxId"`
	SupplierName  string          `json:"supplierName,omitempty"`
	TotalUnits    decimal.Decimal `json:"totalUnits"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Orders        int             `json:"orders"`
	AvgOrderValue decimal.Decimal `json:"avgOrderValue"`
	MarketShare   decimal.Decimal `json:"marketShare"`
	Reliability   decimal.Decimal `json:"reliability"`
	Entities      int             `json:"entities"`
	Catalogs      int             `json:"catalogs"`
}

type SupplierPerformanceStats struct {
	Period             string          `json:"period"`
	TotalSuppliers     int             `json:"totalSuppliers"`
	QualifiedSuppliers int             `json:"qualifiedSuppliers"`
	TotalRecords       int             `json:"totalRecords"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
}

type SupplierPerformanceReport struct {
	Suppliers []SupplierPerformance    `json:"suppliers"`
	Stats     SupplierPerformanceStats `json:"stats"`
}
