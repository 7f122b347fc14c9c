package postgres

import (
	"fmt"
	"strings"

	"github.com/hcvm/opendata-engine/internal/core/storage"
)

// SQL for the open-data feed and the brand-alerts table.

const (
	recordColumns = `
		order_id, agreement_code, agreement_name, catalog_id, part_number,
		product_description, brand, category, supplier_tax_id, supplier_name,
		buyer_entity_tax_id, units_delivered, unit_price, total_amount,
		publication_date, order_status
	`

	// queryRecordByOrderID picks the newest feed row for one purchase
	// order. The repair path treats sql.ErrNoRows as a clean miss.
	queryRecordByOrderID = `
		SELECT ` + recordColumns + `
		FROM open_data_entries
		WHERE order_id = $1
		ORDER BY publication_date DESC
		LIMIT 1
	`

	alertColumns = `
		id, order_id, brand, agreement_code, agreement_name,
		alert_status, order_status, supplier_tax_id, supplier_name, created_at
	`

	// queryAlertsMissingFields selects repair candidates: alerts where any
	// of the three repairable columns is NULL or blank.
	queryAlertsMissingFields = `
		SELECT ` + alertColumns + `
		FROM brand_alerts
		WHERE supplier_tax_id IS NULL OR btrim(supplier_tax_id) = ''
		   OR supplier_name IS NULL OR btrim(supplier_name) = ''
		   OR order_status IS NULL OR btrim(order_status) = ''
		ORDER BY created_at ASC
	`
)

// buildRecordsQuery translates a RecordFilter into SQL. Conditions are
// appended in a fixed order so the statement text is deterministic for a
// given filter shape.
func buildRecordsQuery(f storage.RecordFilter) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(recordColumns)
	sb.WriteString(" FROM open_data_entries WHERE publication_date >= $1")
	args := []interface{}{f.Start}

	if !f.End.IsZero() {
		args = append(args, f.End)
		fmt.Fprintf(&sb, " AND publication_date < $%d", len(args))
	}

	notBlank := func(col string) {
		fmt.Fprintf(&sb, " AND %s IS NOT NULL AND btrim(%s) <> ''", col, col)
	}
	if f.RequireBrand {
		notBlank("brand")
	}
	if f.RequireCatalog {
		notBlank("catalog_id")
	}
	if f.RequireAgreement {
		notBlank("agreement_code")
	}
	if f.RequireSupplier {
		notBlank("supplier_tax_id")
	}
	if f.RequireProduct {
		notBlank("product_description")
	}
	if f.RequirePartNumber {
		notBlank("part_number")
	}
	if f.RequirePositiveUnits {
		sb.WriteString(" AND units_delivered > 0")
	}
	if f.RequirePositivePrice {
		sb.WriteString(" AND unit_price > 0")
	}

	sb.WriteString(" ORDER BY publication_date ASC")
	return sb.String(), args
}

// buildAlertsForBrandsQuery selects alerts for a brand list with optional
// creation-date bounds. Uses ANY($1) with a pq.Array bind on the caller side.
func buildAlertsForBrandsQuery(hasStart, hasEnd bool) string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(alertColumns)
	sb.WriteString(" FROM brand_alerts WHERE brand = ANY($1)")
	n := 1
	if hasStart {
		n++
		fmt.Fprintf(&sb, " AND created_at >= $%d", n)
	}
	if hasEnd {
		n++
		fmt.Fprintf(&sb, " AND created_at <= $%d", n)
	}
	sb.WriteString(" ORDER BY created_at DESC")
	return sb.String()
}

// buildPatchAlertQuery updates only the fields present in the patch.
// Callers must not pass a zero patch.
func buildPatchAlertQuery(patch storage.AlertPatch, id string) (string, []interface{}) {
	var sets []string
	var args []interface{}

	add := func(col string, v *string) {
		if v == nil {
			return
		}
		args = append(args, *v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	add("supplier_tax_id", patch.SupplierTaxID)
	add("supplier_name", patch.SupplierName)
	add("order_status", patch.OrderStatus)

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE brand_alerts SET %s, updated_at = NOW() WHERE id = $%d",
		strings.Join(sets, ", "), len(args),
	)
	return query, args
}
