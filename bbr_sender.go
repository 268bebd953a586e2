package tcpbbr

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	slogutil "github.com/tcpbbr/tcpbbr/internal/slog"
	"github.com/tcpbbr/tcpbbr/internal/utils"
	"github.com/tcpbbr/tcpbbr/logging"
)

// pacingMargin keeps the pacing rate slightly below the raw bandwidth
// estimate so that pacing itself doesn't build a queue at the bottleneck.
const pacingMargin = 0.01

// pacingGainCycle is the cycle of pacing gains used in ProbeBW: one probing
// phase, one draining phase, six cruising phases.
var pacingGainCycle = [8]float64{5.0 / 4, 3.0 / 4, 1, 1, 1, 1, 1, 1}

const gainCycleLength = len(pacingGainCycle)

const (
	// If the measured bandwidth doesn't grow by startupGrowthTarget within
	// roundsWithoutGrowthBeforeExitingStartup round trips, the pipe is
	// considered filled.
	startupGrowthTarget                     = 1.25
	roundsWithoutGrowthBeforeExitingStartup = 3
	// extraAckedGain scales the measured ACK aggregation excess before it is
	// added to the congestion window target.
	extraAckedGain = 1.0
	// extraAckedWinRttMax caps the age counter of the current aggregation slot.
	extraAckedWinRttMax = 31
)

type bbrMode = logging.CongestionControlState

const (
	bbrModeStartup  = logging.CongestionStateStartup
	bbrModeDrain    = logging.CongestionStateDrain
	bbrModeProbeBW  = logging.CongestionStateProbeBW
	bbrModeProbeRTT = logging.CongestionStateProbeRTT
)

// BbrSender is the congestion-control decision core of one TCP connection.
// It models the path's bottleneck bandwidth and round-trip propagation delay
// and derives the pacing rate and congestion window from them.
//
// All methods are invoked synchronously from the connection's event
// processing; a BbrSender is not safe for concurrent use and is never shared
// between connections.
type BbrSender struct {
	clock  Clock
	config *Config
	tracer *logging.ConnectionTracer
	logger *slog.Logger
	rng    *utils.Rand

	mode bbrMode

	pacingGain float64
	cwndGain   float64

	maxBwFilter *utils.WindowedFilter[Bandwidth, int64]
	minRtt      *minRTTFilter
	// Whether the minimum RTT estimate had expired when the current ACK was
	// processed, even if a fresh sample has since been admitted.
	minRttExpired bool
	hasSeenRTT    bool

	// Round counting. A round completes when the delivered-byte count at
	// which the acked data was sent reaches the count recorded at the
	// previous round start.
	delivered          ByteCount
	nextRoundDelivered ByteCount
	roundCount         int64
	roundStart         bool
	packetConservation bool

	// Full-pipe detector (Startup exit).
	isPipeFilled       bool
	fullBandwidth      Bandwidth
	fullBandwidthCount int

	// ProbeBW gain cycle.
	cycleIndex int
	cycleStamp time.Time

	// ProbeRTT exit bookkeeping.
	probeRttDoneStamp time.Time
	probeRttRoundDone bool
	idleRestart       bool

	// Congestion-window estimator.
	priorCwnd   ByteCount
	targetCwnd  ByteCount
	sendQuantum ByteCount
	minPipeCwnd ByteCount

	// ACK aggregation estimator: two slots rotated every
	// ExtraAckedWindowLength rounds.
	extraAcked       [2]ByteCount
	extraAckedIdx    int
	extraAckedWinRtt int64
	ackEpochTime     time.Time
	ackEpochAcked    ByteCount

	dctcp dctcpState

	rttCache *RTTCache

	initialized bool
}

// NewBbrSender creates a new congestion-control core for a single connection.
// A nil clock defaults to the system clock, a nil config to the default
// configuration. The tracer and logger may be nil.
func NewBbrSender(clock Clock, config *Config, tracer *logging.ConnectionTracer, logger *slog.Logger) (*BbrSender, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	config = populateConfig(config.Clone())
	if clock == nil {
		clock = DefaultClock{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	seed := config.RandomSeed
	if seed == 0 {
		seed = rand.Uint64()
	}
	b := &BbrSender{
		clock:       clock,
		config:      config,
		tracer:      tracer,
		logger:      logger.With(slogutil.ComponentKey, "congestion"),
		rng:         utils.NewRand(seed),
		mode:        bbrModeStartup,
		pacingGain:  config.HighGain,
		cwndGain:    config.HighGain,
		maxBwFilter: utils.NewWindowedFilter[Bandwidth, int64](config.BandwidthWindowLength, utils.MaxFilter[Bandwidth]),
		minRtt:      newMinRTTFilter(config.RTTWindowLength),
	}
	b.dctcp = newDctcpState(config, logger.With(slogutil.ComponentKey, "dctcp"))
	return b, nil
}

// AttachRTTCache attaches a shared telemetry cache that receives every newly
// adopted minimum RTT estimate. The cache may be shared between connections.
func (b *BbrSender) AttachRTTCache(cache *RTTCache) { b.rttCache = cache }

// Initialize prepares the connection state for DCTCP-style ECN operation and
// arms the one-time alpha initialization guard. It is called once by the
// connection before any data is exchanged.
func (b *BbrSender) Initialize(ss *SocketState) {
	ss.UseEcn = true
	ss.EcnMode = EcnModeDctcp
	if b.config.UseEct1 {
		ss.EctCodePoint = Ect1
	} else {
		ss.EctCodePoint = Ect0
	}
	ss.SuppressGrowthIfCwndLimited = false
	b.dctcp.initialized = true
}

// BandwidthEstimate returns the current bottleneck bandwidth estimate.
func (b *BbrSender) BandwidthEstimate() Bandwidth { return b.maxBwFilter.GetBest() }

// MinRTT returns the current minimum RTT estimate, or zero if no RTT sample
// has been observed yet.
func (b *BbrSender) MinRTT() time.Duration {
	if !b.minRtt.HasSample() {
		return 0
	}
	return b.minRtt.MinRTT()
}

// PacingGain returns the current pacing gain.
func (b *BbrSender) PacingGain() float64 { return b.pacingGain }

// CwndGain returns the current congestion window gain.
func (b *BbrSender) CwndGain() float64 { return b.cwndGain }

// InRecovery reports whether packet conservation is active.
func (b *BbrSender) InRecovery() bool { return b.packetConservation }

// OnAck is the main control entry point, invoked by the connection for every
// incoming ACK, after the rate sampler has produced the corresponding rate
// sample. It updates the path model, executes mode transitions, and writes
// the new pacing rate and congestion window into ss.
func (b *BbrSender) OnAck(ss *SocketState, totals DeliveryTotals, rs *RateSample) {
	b.delivered = totals.Delivered
	b.handleRestartFromIdle(ss, rs)
	b.updateModelAndState(ss, rs)
	b.updateControlParameters(ss, rs)
}

func (b *BbrSender) updateModelAndState(ss *SocketState, rs *RateSample) {
	b.updateBottleneckBandwidth(rs)
	b.updateAckAggregation(ss, rs)
	b.checkCyclePhase(ss, rs)
	b.checkFullPipe(rs)
	b.checkDrain(ss)
	b.updateMinRtt(ss)
	b.checkProbeRTT(ss, rs)
}

func (b *BbrSender) updateControlParameters(ss *SocketState, rs *RateSample) {
	b.setPacingRate(ss, b.pacingGain)
	b.setSendQuantum(ss)
	b.setCwnd(ss, rs)
}

// handleRestartFromIdle resets the pacing and aggregation state when the
// sender starts transmitting again after an app-limited idle period.
func (b *BbrSender) handleRestartFromIdle(ss *SocketState, rs *RateSample) {
	if ss.BytesInFlight != 0 || !rs.IsAppLimited {
		return
	}
	b.idleRestart = true
	b.ackEpochTime = b.clock.Now()
	b.ackEpochAcked = 0
	if b.mode == bbrModeProbeBW {
		b.setPacingRate(ss, 1)
	}
}

func (b *BbrSender) updateBottleneckBandwidth(rs *RateSample) {
	if rs.Delivered < 0 || rs.Interval <= 0 {
		return
	}
	b.updateRound(rs)
	// Application-limited samples can never lower the estimate.
	if rs.DeliveryRate >= b.maxBwFilter.GetBest() || !rs.IsAppLimited {
		b.maxBwFilter.Update(rs.DeliveryRate, b.roundCount)
	}
}

func (b *BbrSender) updateRound(rs *RateSample) {
	if rs.PriorDelivered >= b.nextRoundDelivered {
		b.nextRoundDelivered = b.delivered
		b.roundCount++
		b.roundStart = true
		b.packetConservation = false
	} else {
		b.roundStart = false
	}
}

func (b *BbrSender) updateAckAggregation(ss *SocketState, rs *RateSample) {
	if rs.AckedSacked <= 0 || rs.Delivered < 0 {
		return
	}
	if b.roundStart {
		b.extraAckedWinRtt = min(extraAckedWinRttMax, b.extraAckedWinRtt+1)
		if b.extraAckedWinRtt >= b.config.ExtraAckedWindowLength {
			b.extraAckedWinRtt = 0
			b.extraAckedIdx = 1 - b.extraAckedIdx
			b.extraAcked[b.extraAckedIdx] = 0
		}
	}

	now := b.clock.Now()
	expectedAcked := b.maxBwFilter.GetBest().toBytesPerInterval(now.Sub(b.ackEpochTime))

	// Restart the epoch once ACKs stop outrunning the bandwidth estimate, or
	// before the accumulated count grows unbounded.
	if b.ackEpochAcked <= expectedAcked ||
		b.ackEpochAcked+rs.AckedSacked >= b.config.AckEpochAckedResetThresh {
		b.ackEpochAcked = 0
		b.ackEpochTime = now
		expectedAcked = 0
	}

	b.ackEpochAcked += rs.AckedSacked
	extraAck := utils.SaturatingSub(b.ackEpochAcked, expectedAcked)
	extraAck = min(extraAck, ss.CongestionWindow)
	if extraAck > b.extraAcked[b.extraAckedIdx] {
		b.extraAcked[b.extraAckedIdx] = extraAck
	}
}

// ackAggregationCwnd returns the extra-acked credit added to the congestion
// window target, capped at 10% of the bandwidth estimate expressed in bytes.
func (b *BbrSender) ackAggregationCwnd() ByteCount {
	if !b.isPipeFilled {
		return 0
	}
	maxAggrBytes := ByteCount(b.maxBwFilter.GetBest() / (10 * 8))
	aggrCwndBytes := ByteCount(extraAckedGain * float64(max(b.extraAcked[0], b.extraAcked[1])))
	return min(aggrCwndBytes, maxAggrBytes)
}

func (b *BbrSender) checkCyclePhase(ss *SocketState, rs *RateSample) {
	if b.mode == bbrModeProbeBW && b.isNextCyclePhase(ss, rs) {
		b.advanceCyclePhase()
	}
}

func (b *BbrSender) isNextCyclePhase(ss *SocketState, rs *RateSample) bool {
	isFullLength := b.clock.Now().Sub(b.cycleStamp) > b.minRtt.MinRTT()
	switch {
	case b.pacingGain == 1:
		return isFullLength
	case b.pacingGain > 1:
		// Probing phases only end once they demonstrably filled the pipe.
		return isFullLength &&
			(rs.BytesLoss > 0 || rs.PriorInFlight >= b.inFlight(ss, b.pacingGain))
	default:
		// Draining phases end as soon as in-flight data is back at the BDP.
		return isFullLength || rs.PriorInFlight <= b.inFlight(ss, 1)
	}
}

func (b *BbrSender) advanceCyclePhase() {
	b.cycleStamp = b.clock.Now()
	b.cycleIndex = (b.cycleIndex + 1) % gainCycleLength
	b.setPacingGain(pacingGainCycle[b.cycleIndex])
}

func (b *BbrSender) checkFullPipe(rs *RateSample) {
	if b.isPipeFilled || !b.roundStart || rs.IsAppLimited {
		return
	}
	if float64(b.maxBwFilter.GetBest()) >= float64(b.fullBandwidth)*startupGrowthTarget {
		// Still growing.
		b.fullBandwidth = b.maxBwFilter.GetBest()
		b.fullBandwidthCount = 0
		return
	}
	b.fullBandwidthCount++
	if b.fullBandwidthCount >= roundsWithoutGrowthBeforeExitingStartup {
		b.isPipeFilled = true
		b.logger.Debug("pipe filled", "bandwidth", uint64(b.fullBandwidth))
	}
}

func (b *BbrSender) enterStartup() {
	b.setMode(bbrModeStartup)
	b.setPacingGain(b.config.HighGain)
	b.setCwndGain(b.config.HighGain)
}

func (b *BbrSender) enterDrain() {
	b.setMode(bbrModeDrain)
	b.setPacingGain(1 / b.config.HighGain)
	b.setCwndGain(b.config.HighGain)
}

func (b *BbrSender) checkDrain(ss *SocketState) {
	if b.mode == bbrModeStartup && b.isPipeFilled {
		b.enterDrain()
		ss.SlowStartThreshold = b.inFlight(ss, 1)
	}
	if b.mode == bbrModeDrain && ss.BytesInFlight <= b.inFlight(ss, 1) {
		b.enterProbeBW()
	}
}

func (b *BbrSender) enterProbeBW() {
	b.setMode(bbrModeProbeBW)
	b.setPacingGain(1)
	b.setCwndGain(2)
	// Start the cycle at a random phase, excluding the draining phase (index
	// 1, reached by the immediate advance below).
	b.cycleIndex = gainCycleLength - 1 - int(b.rng.Int31n(7))
	b.advanceCyclePhase()
}

func (b *BbrSender) updateMinRtt(ss *SocketState) {
	now := b.clock.Now()
	b.minRttExpired = b.minRtt.Expired(now)
	if b.minRtt.Observe(ss.LastRTT, now) {
		rtt := b.minRtt.MinRTT()
		b.logger.Debug("min RTT updated", "rtt", rtt)
		if b.tracer != nil && b.tracer.UpdatedMinRTT != nil {
			b.tracer.UpdatedMinRTT(rtt)
		}
		if b.rttCache != nil {
			b.rttCache.Add(RTTSample{RTT: rtt, Time: now})
		}
	}
}

func (b *BbrSender) enterProbeRTT() {
	b.setMode(bbrModeProbeRTT)
	b.setPacingGain(1)
	b.setCwndGain(1)
}

func (b *BbrSender) checkProbeRTT(ss *SocketState, rs *RateSample) {
	if b.mode != bbrModeProbeRTT && b.minRttExpired && !b.idleRestart {
		b.enterProbeRTT()
		b.saveCwnd(ss)
		b.probeRttDoneStamp = time.Time{}
	}
	if b.mode == bbrModeProbeRTT {
		b.handleProbeRTT(ss)
	}
	if rs.Delivered > 0 {
		b.idleRestart = false
	}
}

func (b *BbrSender) handleProbeRTT(ss *SocketState) {
	// Everything sent from here on is app-limited by the reduced window.
	ss.AppLimitedUntil = max(b.delivered+ss.BytesInFlight, 1)

	now := b.clock.Now()
	if b.probeRttDoneStamp.IsZero() && ss.BytesInFlight <= b.minPipeCwnd {
		b.probeRttDoneStamp = now.Add(b.config.ProbeRTTDuration)
		b.probeRttRoundDone = false
		b.nextRoundDelivered = b.delivered
	} else if !b.probeRttDoneStamp.IsZero() {
		if b.roundStart {
			b.probeRttRoundDone = true
		}
		if b.probeRttRoundDone && now.After(b.probeRttDoneStamp) {
			b.minRtt.ResetStamp(now)
			b.restoreCwnd(ss)
			b.exitProbeRTT()
		}
	}
}

func (b *BbrSender) exitProbeRTT() {
	if b.isPipeFilled {
		b.enterProbeBW()
	} else {
		b.enterStartup()
	}
}

// inFlight returns the gain-scaled estimate of the amount of data that needs
// to be in flight to fully utilize the path. Before the first RTT sample it
// falls back to the initial congestion window.
func (b *BbrSender) inFlight(ss *SocketState, gain float64) ByteCount {
	if !b.minRtt.HasSample() {
		return ss.InitialCongestionWindow
	}
	quanta := 3 * b.sendQuantum
	estimatedBdp := b.maxBwFilter.GetBest().toBytesPerInterval(b.minRtt.MinRTT())
	if b.mode == bbrModeProbeBW && b.cycleIndex == 0 {
		// The probing phase needs headroom for two extra segments to start
		// the cycle without being quantization-limited.
		return ByteCount(gain*float64(estimatedBdp)) + quanta + 2*ss.SegmentSize
	}
	return ByteCount(gain*float64(estimatedBdp)) + quanta
}

func (b *BbrSender) updateTargetCwnd(ss *SocketState) {
	b.targetCwnd = b.inFlight(ss, b.cwndGain) + b.ackAggregationCwnd()
}

// modulateCwndForRecovery shrinks the window by newly lost bytes and, under
// packet conservation, holds it at in-flight plus newly acked. It reports
// whether the window is frozen for this ACK.
func (b *BbrSender) modulateCwndForRecovery(ss *SocketState, rs *RateSample) bool {
	if rs.BytesLoss > 0 {
		ss.CongestionWindow = max(ss.CongestionWindow-rs.BytesLoss, ss.SegmentSize)
	}
	if b.packetConservation {
		ss.CongestionWindow = max(ss.CongestionWindow, ss.BytesInFlight+rs.AckedSacked)
		return true
	}
	return false
}

func (b *BbrSender) modulateCwndForProbeRtt(ss *SocketState) {
	if b.mode == bbrModeProbeRTT {
		ss.CongestionWindow = min(ss.CongestionWindow, b.minPipeCwnd)
	}
}

func (b *BbrSender) setCwnd(ss *SocketState, rs *RateSample) {
	defer b.modulateCwndForProbeRtt(ss)

	if rs.AckedSacked == 0 {
		return
	}
	if ss.CongState == CongStateRecovery && b.modulateCwndForRecovery(ss, rs) {
		return
	}
	b.updateTargetCwnd(ss)
	if b.isPipeFilled {
		ss.CongestionWindow = min(ss.CongestionWindow+rs.AckedSacked, b.targetCwnd)
	} else if ss.CongestionWindow < b.targetCwnd || b.delivered < ss.InitialCongestionWindow {
		ss.CongestionWindow += rs.AckedSacked
	}
	ss.CongestionWindow = max(ss.CongestionWindow, b.minPipeCwnd)
}

// saveCwnd remembers the last known good congestion window before loss
// recovery or ProbeRTT shrinks it.
func (b *BbrSender) saveCwnd(ss *SocketState) {
	if ss.CongState != CongStateRecovery && b.mode != bbrModeProbeRTT {
		b.priorCwnd = ss.CongestionWindow
	} else {
		b.priorCwnd = max(b.priorCwnd, ss.CongestionWindow)
	}
}

// restoreCwnd restores the window saved by saveCwnd. It never shrinks the
// current window and is idempotent.
func (b *BbrSender) restoreCwnd(ss *SocketState) {
	ss.CongestionWindow = max(b.priorCwnd, ss.CongestionWindow)
}

func (b *BbrSender) setSendQuantum(ss *SocketState) {
	b.sendQuantum = ss.SegmentSize
}

func (b *BbrSender) initPacingRate(ss *SocketState) {
	if !ss.Pacing {
		b.logger.Warn("pacing must be enabled, forcing it on")
		ss.Pacing = true
	}
	rtt := time.Millisecond
	if ss.MinRTT > 0 {
		rtt = max(ss.MinRTT, time.Millisecond)
		b.hasSeenRTT = true
	}
	nominalBandwidth := BandwidthFromDelta(ss.CongestionWindow, rtt)
	ss.PacingRate = Bandwidth(b.pacingGain * float64(nominalBandwidth))
	b.maxBwFilter.Reset(nominalBandwidth, b.roundCount)
}

func (b *BbrSender) setPacingRate(ss *SocketState, gain float64) {
	rate := Bandwidth(gain * float64(b.maxBwFilter.GetBest()) * (1 - pacingMargin))
	if ss.MaxPacingRate > 0 {
		rate = min(rate, ss.MaxPacingRate)
	}
	if !b.hasSeenRTT && ss.MinRTT > 0 {
		b.initPacingRate(ss)
	}
	// The pacing rate never decreases until the pipe has been filled once;
	// slower app-limited samples must not slow down Startup.
	if b.isPipeFilled || rate > ss.PacingRate {
		ss.PacingRate = rate
	}
}

// OnCongestionStateChanged is invoked by the connection whenever its generic
// congestion state machine changes state. The first transition into Open
// performs the one-time initialization of the control state.
func (b *BbrSender) OnCongestionStateChanged(ss *SocketState, newState CongestionState) {
	now := b.clock.Now()
	switch {
	case newState == CongStateOpen && !b.initialized:
		if ss.SmoothedRTT > 0 {
			b.minRtt.Observe(ss.SmoothedRTT, now)
		}
		b.priorCwnd = ss.CongestionWindow
		b.targetCwnd = ss.CongestionWindow
		ss.SlowStartThreshold = ss.InitialSlowStartThreshold
		b.minPipeCwnd = 4 * ss.SegmentSize
		b.sendQuantum = ss.SegmentSize

		b.initRoundCounting()
		b.initFullPipe()
		b.enterStartup()
		b.initPacingRate(ss)

		b.ackEpochTime = now
		b.ackEpochAcked = 0
		b.extraAckedWinRtt = 0
		b.extraAckedIdx = 0
		b.extraAcked = [2]ByteCount{}
		b.initialized = true
		b.logger.Debug("initialized",
			"cwnd", int64(ss.CongestionWindow), "pacing rate", uint64(ss.PacingRate))
	case newState == CongStateLoss:
		b.saveCwnd(ss)
		b.roundStart = true
	case newState == CongStateRecovery:
		b.saveCwnd(ss)
		ss.CongestionWindow = ss.BytesInFlight + max(ss.LastAckedSackedBytes, ss.SegmentSize)
		b.packetConservation = true
	}
	ss.CongState = newState
}

func (b *BbrSender) initRoundCounting() {
	b.nextRoundDelivered = 0
	b.roundStart = false
	b.roundCount = 0
}

func (b *BbrSender) initFullPipe() {
	b.isPipeFilled = false
	b.fullBandwidth = 0
	b.fullBandwidthCount = 0
}

// OnCwndEvent is invoked by the connection for congestion-window related
// events: end of window reduction, restart from idle, delayed-ACK
// reservation toggling, and ECN CE transitions.
func (b *BbrSender) OnCwndEvent(ss *SocketState, event CwndEvent) {
	switch event {
	case CwndEventCompleteCWR:
		b.packetConservation = false
		b.restoreCwnd(ss)
	case CwndEventTxStart:
		b.idleRestart = true
		now := b.clock.Now()
		b.ackEpochTime = now
		b.ackEpochAcked = 0
		switch b.mode {
		case bbrModeProbeBW:
			b.setPacingRate(ss, 1)
		case bbrModeProbeRTT:
			// If ProbeRTT was already due to finish, don't hold the reduced
			// window through the restart.
			if b.probeRttRoundDone && now.After(b.probeRttDoneStamp) {
				b.minRtt.ResetStamp(now)
				b.restoreCwnd(ss)
				b.exitProbeRTT()
			}
		}
	case CwndEventEcnIsCE:
		b.ceState0to1(ss)
	case CwndEventEcnNoCE:
		b.ceState1to0(ss)
	case CwndEventDelayedAck, CwndEventNonDelayedAck:
		b.updateAckReserved(event)
	}
}

// GetSlowStartThreshold returns the slow-start threshold, saving the current
// congestion window as a side effect so it can be restored after recovery.
func (b *BbrSender) GetSlowStartThreshold(ss *SocketState, bytesInFlight ByteCount) ByteCount {
	b.saveCwnd(ss)
	return ss.SlowStartThreshold
}

// Fork produces an independent copy of the control state for a connection
// cloned off a listening one. All scalar state is duplicated; the minimum
// RTT estimate is discarded (the child measures its own path), and the child
// gets its own random stream, seeded from the parent's.
func (b *BbrSender) Fork() *BbrSender {
	c := *b
	c.config = b.config.Clone()
	c.rng = utils.NewRand(b.rng.Uint64())
	filter := *b.maxBwFilter
	c.maxBwFilter = &filter
	minRtt := *b.minRtt
	minRtt.Reset()
	c.minRtt = &minRtt
	return &c
}

func (b *BbrSender) setMode(mode bbrMode) {
	if b.mode == mode {
		return
	}
	b.logger.Debug("mode changed", "from", b.mode.String(), "to", mode.String())
	b.mode = mode
	if b.tracer != nil && b.tracer.UpdatedCongestionState != nil {
		b.tracer.UpdatedCongestionState(mode)
	}
}

func (b *BbrSender) setPacingGain(gain float64) {
	if b.pacingGain == gain {
		return
	}
	b.pacingGain = gain
	if b.tracer != nil && b.tracer.UpdatedPacingGain != nil {
		b.tracer.UpdatedPacingGain(gain)
	}
}

func (b *BbrSender) setCwndGain(gain float64) {
	if b.cwndGain == gain {
		return
	}
	b.cwndGain = gain
	if b.tracer != nil && b.tracer.UpdatedCwndGain != nil {
		b.tracer.UpdatedCwndGain(gain)
	}
}
