package alerts

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/hcvm/opendata-engine/internal/core/opendata"
	"github.com/hcvm/opendata-engine/internal/core/storage"
)

// Repair result reasons surfaced to the caller.
const (
	reasonNoOpenData      = "No open data found"
	reasonNothingToRepair = "Nothing to repair"
)

// Repair scans alerts with missing supplier or order-status fields and
// patches them from the authoritative open-data feed. Per-alert lookups
// run in parallel (each is independent and idempotent) under a bounded
// errgroup; a failure on one alert is recorded in its result and never
// aborts the batch. Only the initial candidate fetch is fatal.
//
// A field is patched only when it is currently missing AND the feed has a
// value for it. Present values are never overwritten; when the feed lacks
// the value too, the alert is skipped rather than fabricated.
func (s *Service) Repair(ctx context.Context) (*RepairReport, error) {
	candidates, err := s.alertStore.AlertsMissingFields(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch repair candidates: %w", err)
	}

	results := make([]RepairResult, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.repairConcurrency)
	for i, alert := range candidates {
		g.Go(func() error {
			results[i] = s.repairOne(gctx, alert)
			return nil
		})
	}
	// Workers never return errors; per-alert failures live in results.
	_ = g.Wait()

	report := &RepairReport{
		Total:   len(candidates),
		Results: results,
	}
	for _, res := range results {
		switch res.Status {
		case RepairStatusRepaired:
			report.Repaired++
		case RepairStatusFailed:
			report.Failed++
		}
	}
	report.Message = fmt.Sprintf("Repair run finished: %d alerts checked, %d repaired, %d failed",
		report.Total, report.Repaired, report.Failed)

	slog.Info("Brand-alert repair run finished",
		"total", report.Total,
		"repaired", report.Repaired,
		"failed", report.Failed,
	)

	return report, nil
}

// repairOne resolves a single alert against the feed.
func (s *Service) repairOne(ctx context.Context, alert opendata.BrandAlert) RepairResult {
	result := RepairResult{AlertID: alert.ID, OrderID: alert.OrderID}

	rec, err := s.recordStore.RecordByOrderID(ctx, alert.OrderID)
	if err != nil {
		result.Status = RepairStatusFailed
		result.Reason = fmt.Sprintf("open data lookup failed: %v", err)
		return result
	}
	if rec == nil {
		result.Status = RepairStatusFailed
		result.Reason = reasonNoOpenData
		return result
	}

	patch, updates := buildPatch(alert, rec)
	if patch.IsZero() {
		result.Status = RepairStatusSkipped
		result.Reason = reasonNothingToRepair
		return result
	}

	if err := s.alertStore.PatchAlert(ctx, alert.ID, patch); err != nil {
		result.Status = RepairStatusFailed
		result.Reason = fmt.Sprintf("update failed: %v", err)
		return result
	}

	result.Status = RepairStatusRepaired
	result.Updates = updates
	return result
}

// buildPatch computes the partial update: only currently-missing alert
// fields with a non-blank replacement in the feed record.
func buildPatch(alert opendata.BrandAlert, rec *opendata.TransactionRecord) (storage.AlertPatch, map[string]string) {
	var patch storage.AlertPatch
	updates := make(map[string]string)

	fill := func(current, replacement *string, set func(*string), field string) {
		if opendata.Text(current) != "" {
			return
		}
		value := opendata.Text(replacement)
		if value == "" {
			return
		}
		set(&value)
		updates[field] = value
	}

	fill(alert.SupplierTaxID, rec.SupplierTaxID, func(v *string) { patch.SupplierTaxID = v }, "supplierTaxId")
	fill(alert.SupplierName, rec.SupplierName, func(v *string) { patch.SupplierName = v }, "supplierName")
	fill(alert.OrderStatus, rec.OrderStatus, func(v *string) { patch.OrderStatus = v }, "orderStatus")

	if len(updates) == 0 {
		return storage.AlertPatch{}, nil
	}
	return patch, updates
}
