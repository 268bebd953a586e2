package tcpbbr

import (
	"errors"
	"time"
)

// Config contains the tunables of the congestion core.
type Config struct {
	// HighGain is the pacing and window gain used in Startup and, inverted,
	// in Drain.
	// If unset, it defaults to 2.89 (2/ln(2)).
	HighGain float64
	// BandwidthWindowLength is the length, in packet-timed rounds, of the
	// windowed max filter tracking the bottleneck bandwidth.
	// If unset, it defaults to 10 rounds.
	BandwidthWindowLength int64
	// RTTWindowLength is the length of the window over which the minimum RTT
	// estimate stays valid before a ProbeRTT is scheduled.
	// If unset, it defaults to 10 seconds.
	RTTWindowLength time.Duration
	// ProbeRTTDuration is the time spent at the reduced window in ProbeRTT.
	// If unset, it defaults to 200ms.
	ProbeRTTDuration time.Duration
	// ExtraAckedWindowLength is the length, in rounds, of each slot of the
	// ACK aggregation filter.
	// If unset, it defaults to 5 rounds.
	ExtraAckedWindowLength int64
	// AckEpochAckedResetThresh is the number of delivered bytes after which
	// the ACK aggregation epoch is restarted.
	// If unset, it defaults to 128 KiB.
	AckEpochAckedResetThresh ByteCount
	// DctcpShiftG is the EWMA gain of the DCTCP alpha estimator.
	// If unset, it defaults to 0.0625 (1/16).
	DctcpShiftG float64
	// DctcpAlphaOnInit is the initial value of the DCTCP alpha estimator.
	// If unset, it defaults to 1.0.
	DctcpAlphaOnInit float64
	// UseEct1 marks outgoing packets with ECT(1) instead of ECT(0).
	UseEct1 bool
	// RandomSeed seeds the pacing-cycle randomization. If unset, a
	// nondeterministic seed is used.
	RandomSeed uint64
}

// Clone clones the Config.
// It returns nil if called on nil.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	copy := *c
	return &copy
}

const (
	defaultHighGain                 = 2.89
	defaultBandwidthWindowLength    = 10
	defaultRTTWindowLength          = 10 * time.Second
	defaultProbeRTTDuration         = 200 * time.Millisecond
	defaultExtraAckedWindowLength   = 5
	defaultAckEpochAckedResetThresh = ByteCount(1 << 17)
	defaultDctcpShiftG              = 0.0625
	defaultDctcpAlphaOnInit         = 1.0
)

func validateConfig(config *Config) error {
	if config == nil {
		return nil
	}
	if config.HighGain < 0 || (config.HighGain > 0 && config.HighGain <= 1) {
		return errors.New("invalid value for Config.HighGain")
	}
	if config.BandwidthWindowLength < 0 {
		return errors.New("invalid value for Config.BandwidthWindowLength")
	}
	if config.RTTWindowLength < 0 {
		return errors.New("invalid value for Config.RTTWindowLength")
	}
	if config.ProbeRTTDuration < 0 {
		return errors.New("invalid value for Config.ProbeRTTDuration")
	}
	if config.ExtraAckedWindowLength < 0 {
		return errors.New("invalid value for Config.ExtraAckedWindowLength")
	}
	if config.AckEpochAckedResetThresh < 0 {
		return errors.New("invalid value for Config.AckEpochAckedResetThresh")
	}
	// 1.0 would disable smoothing entirely; zero means unset.
	if config.DctcpShiftG < 0 || config.DctcpShiftG >= 1 {
		return errors.New("invalid value for Config.DctcpShiftG")
	}
	if config.DctcpAlphaOnInit < 0 || config.DctcpAlphaOnInit > 1 {
		return errors.New("invalid value for Config.DctcpAlphaOnInit")
	}
	return nil
}

// populateConfig populates fields in the Config with their default values, if
// none are set.
// It is invoked on a Clone of the original config.
func populateConfig(config *Config) *Config {
	if config == nil {
		config = &Config{}
	}
	if config.HighGain == 0 {
		config.HighGain = defaultHighGain
	}
	if config.BandwidthWindowLength == 0 {
		config.BandwidthWindowLength = defaultBandwidthWindowLength
	}
	if config.RTTWindowLength == 0 {
		config.RTTWindowLength = defaultRTTWindowLength
	}
	if config.ProbeRTTDuration == 0 {
		config.ProbeRTTDuration = defaultProbeRTTDuration
	}
	if config.ExtraAckedWindowLength == 0 {
		config.ExtraAckedWindowLength = defaultExtraAckedWindowLength
	}
	if config.AckEpochAckedResetThresh == 0 {
		config.AckEpochAckedResetThresh = defaultAckEpochAckedResetThresh
	}
	if config.DctcpShiftG == 0 {
		config.DctcpShiftG = defaultDctcpShiftG
	}
	if config.DctcpAlphaOnInit == 0 {
		config.DctcpAlphaOnInit = defaultDctcpAlphaOnInit
	}
	return config
}
