package qlog

import (
	"time"

	"github.com/francoispqt/gojay"
)

func milliseconds(d time.Duration) float64 { return float64(d.Nanoseconds()) / 1e6 }

type eventDetails interface {
	Category() string
	Name() string
	gojay.MarshalerJSONObject
}

type event struct {
	RelativeTime time.Duration
	eventDetails
}

var _ gojay.MarshalerJSONObject = event{}

func (e event) IsNil() bool { return false }
func (e event) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Float64Key("time", milliseconds(e.RelativeTime))
	enc.StringKey("name", e.Category()+":"+e.Name())
	enc.ObjectKey("data", e.eventDetails)
}

const categoryRecovery = "recovery"

type eventCongestionStateUpdated struct {
	state string
}

var _ eventDetails = eventCongestionStateUpdated{}

func (e eventCongestionStateUpdated) Category() string { return categoryRecovery }
func (e eventCongestionStateUpdated) Name() string     { return "congestion_state_updated" }
func (e eventCongestionStateUpdated) IsNil() bool      { return false }

func (e eventCongestionStateUpdated) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("new", e.state)
}

type eventMetricsUpdated struct {
	MinRTT     time.Duration
	PacingGain float64
	CwndGain   float64
}

var _ eventDetails = eventMetricsUpdated{}

func (e eventMetricsUpdated) Category() string { return categoryRecovery }
func (e eventMetricsUpdated) Name() string     { return "metrics_updated" }
func (e eventMetricsUpdated) IsNil() bool      { return false }

func (e eventMetricsUpdated) MarshalJSONObject(enc *gojay.Encoder) {
	if e.MinRTT != 0 {
		enc.Float64Key("min_rtt", milliseconds(e.MinRTT))
	}
	enc.Float64KeyOmitEmpty("pacing_gain", e.PacingGain)
	enc.Float64KeyOmitEmpty("cwnd_gain", e.CwndGain)
}

type eventCongestionEstimateUpdated struct {
	BytesMarked int64
	BytesAcked  int64
	Alpha       float64
}

var _ eventDetails = eventCongestionEstimateUpdated{}

func (e eventCongestionEstimateUpdated) Category() string { return categoryRecovery }
func (e eventCongestionEstimateUpdated) Name() string     { return "congestion_estimate_updated" }
func (e eventCongestionEstimateUpdated) IsNil() bool      { return false }

func (e eventCongestionEstimateUpdated) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Int64Key("bytes_marked", e.BytesMarked)
	enc.Int64Key("bytes_acked", e.BytesAcked)
	enc.Float64Key("alpha", e.Alpha)
}
