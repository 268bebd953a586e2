package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/tcpbbr/tcpbbr/logging"
)

func TestTracerRecordsGauges(t *testing.T) {
	tracer := NewConnectionTracerWithRegisterer(prometheus.NewRegistry())

	tracer.UpdatedMinRTT(50 * time.Millisecond)
	require.InDelta(t, 0.05, testutil.ToFloat64(minRTT), 1e-9)

	tracer.UpdatedPacingGain(2.89)
	require.InDelta(t, 2.89, testutil.ToFloat64(pacingGain), 1e-9)

	tracer.UpdatedCwndGain(2)
	require.InDelta(t, 2, testutil.ToFloat64(cwndGain), 1e-9)
}

func TestTracerRecordsCongestionEstimates(t *testing.T) {
	tracer := NewConnectionTracerWithRegisterer(prometheus.NewRegistry())

	markedBefore := testutil.ToFloat64(markedBytes)
	ackedBefore := testutil.ToFloat64(ackedBytes)

	tracer.UpdatedCongestionEstimate(50, 100, 0.96875)
	tracer.UpdatedCongestionEstimate(25, 200, 0.9)

	require.InDelta(t, 75, testutil.ToFloat64(markedBytes)-markedBefore, 1e-9)
	require.InDelta(t, 300, testutil.ToFloat64(ackedBytes)-ackedBefore, 1e-9)
	require.InDelta(t, 0.9, testutil.ToFloat64(dctcpAlpha), 1e-9)
}

func TestTracerCountsStateTransitions(t *testing.T) {
	tracer := NewConnectionTracerWithRegisterer(prometheus.NewRegistry())

	before := testutil.ToFloat64(stateTransitions.WithLabelValues("probe_bw"))
	tracer.UpdatedCongestionState(logging.CongestionStateProbeBW)
	tracer.UpdatedCongestionState(logging.CongestionStateProbeBW)
	tracer.UpdatedCongestionState(logging.CongestionStateProbeRTT)

	require.InDelta(t, 2, testutil.ToFloat64(stateTransitions.WithLabelValues("probe_bw"))-before, 1e-9)
}

func TestTracerToleratesDoubleRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	require.NotPanics(t, func() {
		NewConnectionTracerWithRegisterer(registry)
		NewConnectionTracerWithRegisterer(registry)
	})
}
