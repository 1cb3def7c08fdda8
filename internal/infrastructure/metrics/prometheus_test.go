package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	p := NewPrometheus()

	p.AdmissionCreated("CLIA")
	p.AdmissionCreated("CLIA")
	p.AdmissionCreated("EADI")
	p.WithdrawalAccepted()
	p.WithdrawalRejected("insufficient_balance")
	p.AdmissionFinalized()

	assert.Equal(t, 2.0, testutil.ToFloat64(p.admissionsCreated.WithLabelValues("CLIA")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.withdrawals.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.withdrawals.WithLabelValues("insufficient_balance")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.admissionsFinished))
}

func TestHandler_ExposesBusinessCounters(t *testing.T) {
	p := NewPrometheus()
	p.WithdrawalAccepted()

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `biocol_withdrawals_total{result="accepted"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
