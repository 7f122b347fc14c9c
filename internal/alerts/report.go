package alerts

import (
	"github.com/hcvm/opendata-engine/internal/core/opendata"
)

// Display labels for alert statuses. Unknown statuses pass through
// unchanged rather than being dropped or mistranslated.
var alertStatusLabels = map[string]string{
	"pending":  "Pendiente",
	"attended": "Atendida",
	"observed": "Observada",
}

// Defaulting labels for dimensions the record may lack.
const (
	labelNoOrderStatus = "Sin Estado"
	labelNoAgreement   = "Sin Acuerdo"
)

// BuildReport folds a flat alert list into the summary count maps and the
// four-level detail tree in a single pass. Nesting levels are created
// lazily on first encounter; every record lands losslessly in exactly one
// leaf.
func BuildReport(alertList []opendata.BrandAlert) Report {
	summary := Summary{
		Total:         len(alertList),
		ByBrand:       make(map[string]int),
		ByAlertStatus: make(map[string]int),
		ByAgreement:   make(map[string]int),
		ByOrderStatus: make(map[string]int),
	}
	detail := make(DetailTree)

	for _, alert := range alertList {
		brand := alert.Brand
		agreement := opendata.Text(alert.AgreementCode)
		if agreement == "" {
			agreement = labelNoAgreement
		}
		status := alertStatusLabel(alert.AlertStatus)
		orderStatus := opendata.Text(alert.OrderStatus)
		if orderStatus == "" {
			orderStatus = labelNoOrderStatus
		}

		summary.ByBrand[brand]++
		summary.ByAlertStatus[status]++
		summary.ByAgreement[agreement]++
		summary.ByOrderStatus[orderStatus]++

		byAgreement, ok := detail[brand]
		if !ok {
			byAgreement = make(map[string]map[string]map[string][]opendata.BrandAlert)
			detail[brand] = byAgreement
		}
		byStatus, ok := byAgreement[agreement]
		if !ok {
			byStatus = make(map[string]map[string][]opendata.BrandAlert)
			byAgreement[agreement] = byStatus
		}
		byOrderStatus, ok := byStatus[status]
		if !ok {
			byOrderStatus = make(map[string][]opendata.BrandAlert)
			byStatus[status] = byOrderStatus
		}
		byOrderStatus[orderStatus] = append(byOrderStatus[orderStatus], alert)
	}

	return Report{Summary: summary, Detail: detail}
}

// alertStatusLabel translates a raw alert status to its display label.
func alertStatusLabel(status string) string {
	if label, ok := alertStatusLabels[status]; ok {
		return label
	}
	return status
}
