package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSalesRecorder_BillCreated(t *testing.T) {
	before := testutil.ToFloat64(billsCreated.WithLabelValues("box"))
	revenueBefore := testutil.ToFloat64(revenueTotal)

	SalesRecorder{}.BillCreated("box", decimal.RequireFromString("12.50"))

	assert.Equal(t, before+1, testutil.ToFloat64(billsCreated.WithLabelValues("box")))
	assert.InDelta(t, revenueBefore+12.5, testutil.ToFloat64(revenueTotal), 0.0001)
}

func TestObserveHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/medicines", "200"))

	ObserveHTTPRequest("GET", "/api/medicines", "200", 15*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/medicines", "200")))
}
