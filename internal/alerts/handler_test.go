package alerts

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/hcvm/opendata-engine/internal/core/opendata"
)

func newAlertRouter(alertStore *fakeAlertStore, recordStore *fakeRecordStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := NewService(alertStore, recordStore, 2)
	r := gin.New()
	svc.RegisterRoutes(r)
	return r
}

func TestHandleReport_StatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "malformed json returns 400",
			body:           `{"brands": [`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing brands returns 400",
			body:           `{"startDate": "2026-01-01"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid date returns 400",
			body:           `{"brands": ["NIKE"], "startDate": "not-a-date"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "valid request returns 200",
			body:           `{"brands": ["NIKE"]}`,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newAlertRouter(&fakeAlertStore{}, &fakeRecordStore{})

			req := httptest.NewRequest(http.MethodPost, "/v1/brand-alerts/report", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)

			if resp.Code != tc.expectedStatus {
				t.Logf("unexpected response body: %s", resp.Body.String())
			}
			require.Equal(t, tc.expectedStatus, resp.Code)
		})
	}
}

func TestHandleReport_EnvelopeShape(t *testing.T) {
	alertStore := &fakeAlertStore{alerts: []opendata.BrandAlert{
		alert("OC-1", "NIKE"),
	}}
	r := newAlertRouter(alertStore, &fakeRecordStore{})

	req := httptest.NewRequest(http.MethodPost, "/v1/brand-alerts/report",
		strings.NewReader(`{"brands": ["NIKE"]}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Summary struct {
				Total   int            `json:"total"`
				ByBrand map[string]int `json:"byBrand"`
			} `json:"summary"`
			Stats struct {
				Brands []string `json:"brands"`
			} `json:"stats"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, 1, body.Data.Summary.Total)
	require.Equal(t, map[string]int{"NIKE": 1}, body.Data.Summary.ByBrand)
	require.Equal(t, []string{"NIKE"}, body.Data.Stats.Brands)
}

func TestHandleRepair_ReturnsTally(t *testing.T) {
	candidate := alert("OC-1", "NIKE")
	alertStore := &fakeAlertStore{missing: []opendata.BrandAlert{candidate}}
	recordStore := &fakeRecordStore{byOrder: map[string]*opendata.TransactionRecord{
		"OC-1": {OrderID: "OC-1", OrderStatus: str("Entregado")},
	}}
	r := newAlertRouter(alertStore, recordStore)

	req := httptest.NewRequest(http.MethodPost, "/v1/brand-alerts/repair", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Message  string `json:"message"`
		Total    int    `json:"total"`
		Repaired int    `json:"repaired"`
		Failed   int    `json:"failed"`
		Results  []struct {
			AlertID string `json:"alertId"`
			OrderID string `json:"ordenElectronica"`
			Status  string `json:"status"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Equal(t, 1, body.Total)
	require.Equal(t, 1, body.Repaired)
	require.Equal(t, 0, body.Failed)
	require.Len(t, body.Results, 1)
	require.Equal(t, candidate.ID, body.Results[0].AlertID)
	require.Equal(t, "OC-1", body.Results[0].OrderID)
	require.Equal(t, RepairStatusRepaired, body.Results[0].Status)
	require.Contains(t, body.Message, "1 repaired")
}
