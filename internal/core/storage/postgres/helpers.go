package postgres

import (
	"database/sql"
	"fmt"

	"github.com/hcvm/opendata-engine/internal/core/opendata"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// nullableText converts a scanned nullable column to the domain's *string
// representation. NULL stays nil; present values keep their raw text.
func nullableText(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

// scanRecordRow scans one open_data_entries row. Compatible with both
// sql.Row and sql.Rows.
func scanRecordRow(row scanner) (*opendata.TransactionRecord, error) {
	var rec opendata.TransactionRecord
	var agreementCode, agreementName, catalogID, partNumber sql.NullString
	var description, brand, category sql.NullString
	var supplierTaxID, supplierName, buyerEntityID, orderStatus sql.NullString

	err := row.Scan(
		&rec.OrderID,
		&agreementCode,
		&agreementName,
		&catalogID,
		&partNumber,
		&description,
		&brand,
		&category,
		&supplierTaxID,
		&supplierName,
		&buyerEntityID,
		&rec.UnitsDelivered,
		&rec.UnitPrice,
		&rec.TotalAmount,
		&rec.PublicationDate,
		&orderStatus,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan open-data row: %w", err)
	}

	rec.AgreementCode = nullableText(agreementCode)
	rec.AgreementName = nullableText(agreementName)
	rec.CatalogID = nullableText(catalogID)
	rec.PartNumber = nullableText(partNumber)
	rec.Description = nullableText(description)
	rec.Brand = nullableText(brand)
	rec.Category = nullableText(category)
	rec.SupplierTaxID = nullableText(supplierTaxID)
	rec.SupplierName = nullableText(supplierName)
	rec.BuyerEntityID = nullableText(buyerEntityID)
	rec.OrderStatus = nullableText(orderStatus)

	return &rec, nil
}

// scanAlertRow scans one brand_alerts row.
func scanAlertRow(row scanner) (*opendata.BrandAlert, error) {
	var alert opendata.BrandAlert
	var agreementCode, agreementName sql.NullString
	var orderStatus, supplierTaxID, supplierName sql.NullString

	err := row.Scan(
		&alert.ID,
		&alert.OrderID,
		&alert.Brand,
		&agreementCode,
		&agreementName,
		&alert.AlertStatus,
		&orderStatus,
		&supplierTaxID,
		&supplierName,
		&alert.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan brand-alert row: %w", err)
	}

	alert.AgreementCode = nullableText(agreementCode)
	alert.AgreementName = nullableText(agreementName)
	alert.OrderStatus = nullableText(orderStatus)
	alert.SupplierTaxID = nullableText(supplierTaxID)
	alert.SupplierName = nullableText(supplierName)

	return &alert, nil
}
