package fleet

import (
	"math"
	"math/rand"
	"time"

	"github.com/kilianp07/evtolsim/core/charger"
	"github.com/kilianp07/evtolsim/core/logger"
	"github.com/kilianp07/evtolsim/core/metrics"
	"github.com/kilianp07/evtolsim/core/model"
	"github.com/kilianp07/evtolsim/internal/eventbus"
)

// floatTol absorbs accumulated floating-point drift in the hour bookkeeping.
const floatTol = 1e-9

// StateTransition is published on the event bus whenever a unit changes state.
type StateTransition struct {
	VehicleID int
	From      model.State
	To        model.State
	At        time.Time
}

// Deps bundles the observability collaborators shared by all units.
type Deps struct {
	Log  logger.Logger
	Sink metrics.Sink
	Bus  *eventbus.Bus[StateTransition]
}

func (d *Deps) setDefaults() {
	if d.Log == nil {
		d.Log = nopLogger{}
	}
	if d.Sink == nil {
		d.Sink = metrics.NopSink{}
	}
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

// Unit owns one vehicle's state machine and statistics. It is driven by a
// single goroutine and shares nothing with other units except the charger
// pool.
type Unit struct {
	ID   int
	Spec model.VehicleSpec

	// Window is the fixed simulated operating window in hours. At all times
	// FlightHours + ChargeHours + Remaining equals Window.
	Window    float64
	Remaining float64
	Stats     model.Stats

	state       model.State
	rng         *rand.Rand
	pool        *charger.Pool
	chargeScale time.Duration
	deps        Deps
}

// NewUnit creates a vehicle unit. chargeScale is the real-time duration slept
// per simulated charging hour; it only ever blocks the unit's own goroutine.
func NewUnit(id int, spec model.VehicleSpec, window float64, chargeScale time.Duration, pool *charger.Pool, rng *rand.Rand, deps Deps) *Unit {
	deps.setDefaults()
	return &Unit{
		ID:          id,
		Spec:        spec,
		Window:      window,
		Remaining:   window,
		state:       model.StateFlying,
		rng:         rng,
		pool:        pool,
		chargeScale: chargeScale,
		deps:        deps,
	}
}

// State returns the unit's lifecycle state. It is only safe to call from the
// unit's own goroutine, or after Run has returned.
func (u *Unit) State() model.State { return u.state }

// Run drives the unit from Flying to a terminal state.
func (u *Unit) Run() {
	for u.Remaining > 0 {
		u.flightStep()
		if u.state == model.StateDepleted {
			return
		}
		if !u.chargeStep() {
			return
		}
		if u.Remaining <= 0 {
			u.transition(model.StateDepleted)
			return
		}
	}
	u.transition(model.StateDepleted)
}

// flightStep flies until the battery would deplete at cruise, clamped to the
// remaining window, then moves to AwaitingCharge or Depleted.
func (u *Unit) flightStep() {
	dur := math.Min(u.Spec.MaxFlightHours(), u.Remaining)
	dist := dur * u.Spec.CruiseSpeedMPH

	u.Stats.FlightHours += dur
	u.Stats.DistanceMiles += dist
	u.Stats.PassengerMiles += dist * float64(u.Spec.PassengerCount)
	u.Remaining -= dur

	// One fault draw per elapsed hour, including the partial trailing hour.
	faults := 0
	for hour := 0.0; hour < dur; hour++ {
		if u.rng.Float64() < u.Spec.FaultProbability {
			faults++
		}
	}
	u.Stats.Faults += faults

	_ = u.deps.Sink.RecordFlightSegment(metrics.FlightSegment{
		VehicleID:      u.ID,
		Company:        u.Spec.Company,
		Hours:          dur,
		DistanceMiles:  dist,
		PassengerMiles: dist * float64(u.Spec.PassengerCount),
		Faults:         faults,
	})

	if u.Remaining <= floatTol {
		u.Remaining = 0
		u.transition(model.StateDepleted)
		return
	}
	u.transition(model.StateAwaitingCharge)
}

// chargeStep performs exactly one charge attempt: submit, one bounded wait,
// then charge while holding the slot. It returns false when the unit stalls.
func (u *Unit) chargeStep() bool {
	u.pool.Submit(u.ID, u.Remaining)
	start := time.Now()
	if err := u.pool.TryAcquire(u.ID); err != nil {
		u.deps.Log.Warnf("vehicle %d: charge attempt failed: %v", u.ID, err)
		_ = u.deps.Sink.RecordStall(u.ID, u.Spec.Company, "timeout")
		u.transition(model.StateStalled)
		return false
	}
	if !u.charge(time.Since(start)) {
		_ = u.deps.Sink.RecordStall(u.ID, u.Spec.Company, "infeasible")
		u.transition(model.StateStalled)
		return false
	}
	return true
}

// charge runs one charging session. The acquired slot is released on every
// exit path, including the infeasible one.
func (u *Unit) charge(waited time.Duration) bool {
	defer u.pool.Release()

	dur := math.Min(u.Spec.ChargeTimeHours, u.Remaining)
	if u.Stats.FlightHours+u.Stats.ChargeHours+dur > u.Window+floatTol {
		return false
	}

	u.transition(model.StateCharging)
	time.Sleep(time.Duration(dur * float64(u.chargeScale)))

	u.Stats.ChargeHours += dur
	u.Remaining -= dur
	if u.Remaining < 0 {
		u.Remaining = 0
	}
	_ = u.deps.Sink.RecordChargeSession(metrics.ChargeSession{
		VehicleID: u.ID,
		Company:   u.Spec.Company,
		Hours:     dur,
		Waited:    waited,
	})
	u.transition(model.StateFlying)
	return true
}

func (u *Unit) transition(to model.State) {
	from := u.state
	u.state = to
	u.deps.Log.Debugw("state transition", map[string]any{
		"vehicle_id": u.ID,
		"from":       from.String(),
		"to":         to.String(),
		"remaining":  u.Remaining,
	})
	if u.deps.Bus != nil {
		u.deps.Bus.Publish(StateTransition{VehicleID: u.ID, From: from, To: to, At: time.Now()})
	}
}
