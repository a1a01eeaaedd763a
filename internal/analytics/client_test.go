package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardSummary(t *testing.T) {
	var gotPath, gotCompany, gotRange string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCompany = r.URL.Query().Get("company")
		gotRange = r.URL.Query().Get("range")

		json.NewEncoder(w).Encode(DashboardSummary{
			TotalVolume: 3200,
			SuccessRate: 64.5,
			TopPartners: []PartnerActivity{
				{Company: "Tesla Inc", Transactions: 12},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	summary, err := client.GetDashboardSummary(context.Background(), "DBS", 30)
	require.NoError(t, err)

	assert.Equal(t, "/analytics/dashboard", gotPath)
	assert.Equal(t, "DBS", gotCompany)
	assert.Equal(t, "30", gotRange)
	assert.Equal(t, 3200, summary.TotalVolume)
	require.Len(t, summary.TopPartners, 1)
	assert.Equal(t, "Tesla Inc", summary.TopPartners[0].Company)
}

func TestGetDashboardSummaryUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.GetDashboardSummary(context.Background(), "DBS", 30)
	assert.Error(t, err)
}

func TestGetDashboardSummaryUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 500*time.Millisecond)
	_, err := client.GetDashboardSummary(context.Background(), "DBS", 30)
	assert.Error(t, err)
}
