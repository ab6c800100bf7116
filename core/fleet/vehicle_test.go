package fleet

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evtolsim/core/charger"
	"github.com/kilianp07/evtolsim/core/model"
)

func alphaSpec() model.VehicleSpec {
	return model.VehicleSpec{
		Company:          "Alpha Company",
		CruiseSpeedMPH:   120,
		BatteryKWh:       320,
		ChargeTimeHours:  0.6,
		EnergyPerMile:    1.6,
		PassengerCount:   4,
		FaultProbability: 0.25,
	}
}

func newTestPool(t *testing.T, capacity int, timeout time.Duration) *charger.Pool {
	t.Helper()
	p, err := charger.NewPool(capacity, timeout, nil)
	require.NoError(t, err)
	return p
}

func TestFlightStepRoundTrip(t *testing.T) {
	pool := newTestPool(t, 1, time.Second)
	u := NewUnit(1, alphaSpec(), 3.0, time.Millisecond, pool, rand.New(rand.NewSource(1)), Deps{})

	u.flightStep()

	// 320 / (1.6 * 120) = 1.6667 hours at cruise.
	assert.InDelta(t, 1.6667, u.Stats.FlightHours, 1e-4)
	assert.InDelta(t, 1.3333, u.Remaining, 1e-4)
	assert.InDelta(t, 200.0, u.Stats.DistanceMiles, 1e-4)
	assert.InDelta(t, 800.0, u.Stats.PassengerMiles, 1e-4)
	assert.Equal(t, model.StateAwaitingCharge, u.State())
}

func TestFlightStepClampsToWindow(t *testing.T) {
	spec := alphaSpec()
	spec.BatteryKWh = 10000 // cruise range far beyond the window
	pool := newTestPool(t, 1, time.Second)
	u := NewUnit(1, spec, 3.0, time.Millisecond, pool, rand.New(rand.NewSource(1)), Deps{})

	u.flightStep()

	assert.InDelta(t, 3.0, u.Stats.FlightHours, 1e-9)
	assert.Zero(t, u.Remaining)
	assert.Equal(t, model.StateDepleted, u.State())
	assert.Equal(t, 0, pool.QueueLen(), "depleted unit never queues")
}

func TestFaultSampling(t *testing.T) {
	spec := alphaSpec()
	spec.FaultProbability = 1.0
	pool := newTestPool(t, 1, time.Second)
	u := NewUnit(1, spec, 3.0, time.Millisecond, pool, rand.New(rand.NewSource(1)), Deps{})

	u.flightStep()
	// One draw per elapsed hour including the partial trailing hour:
	// ceil(1.6667) = 2.
	assert.Equal(t, 2, u.Stats.Faults)

	spec.FaultProbability = 0
	u2 := NewUnit(2, spec, 3.0, time.Millisecond, pool, rand.New(rand.NewSource(1)), Deps{})
	u2.flightStep()
	assert.Zero(t, u2.Stats.Faults)
}

func TestStalledOnTimeoutKeepsChargeTime(t *testing.T) {
	pool := newTestPool(t, 1, 20*time.Millisecond)
	// Occupy the only slot so the unit's single attempt must time out.
	pool.Submit(99, 0.01)
	require.NoError(t, pool.TryAcquire(99))

	u := NewUnit(1, alphaSpec(), 3.0, time.Millisecond, pool, rand.New(rand.NewSource(1)), Deps{})
	u.flightStep()
	require.Equal(t, model.StateAwaitingCharge, u.State())
	before := u.Stats.ChargeHours

	ok := u.chargeStep()

	assert.False(t, ok)
	assert.Equal(t, model.StateStalled, u.State())
	assert.Equal(t, before, u.Stats.ChargeHours, "a timed-out attempt must not accrue charge time")
	assert.Equal(t, 0, pool.QueueLen(), "abandoned request cleaned up")

	pool.Release()
	assert.Equal(t, 1, pool.Free())
}

func TestInfeasibleChargeReleasesSlot(t *testing.T) {
	pool := newTestPool(t, 1, time.Second)
	u := NewUnit(1, alphaSpec(), 3.0, time.Millisecond, pool, rand.New(rand.NewSource(1)), Deps{})

	// Force bookkeeping that makes any further charging exceed the window.
	u.Stats.FlightHours = 2.5
	u.Stats.ChargeHours = 0.5
	u.Remaining = 0.5

	ok := u.chargeStep()

	assert.False(t, ok)
	assert.Equal(t, model.StateStalled, u.State())
	assert.Equal(t, 1, pool.Free(), "slot must be released on the infeasible path")
	assert.Equal(t, 0, pool.QueueLen())
}

func TestRunMaintainsWindowInvariant(t *testing.T) {
	pool := newTestPool(t, 1, time.Second)
	u := NewUnit(1, alphaSpec(), 3.0, time.Millisecond, pool, rand.New(rand.NewSource(1)), Deps{})

	u.Run()

	assert.True(t, u.State().Terminal())
	assert.InDelta(t, 3.0, u.Stats.FlightHours+u.Stats.ChargeHours+u.Remaining, 1e-6)
	assert.GreaterOrEqual(t, u.Stats.FlightHours, 0.0)
	assert.GreaterOrEqual(t, u.Stats.ChargeHours, 0.0)
	assert.GreaterOrEqual(t, u.Remaining, 0.0)
	assert.Equal(t, 1, pool.Free(), "no slot leaked across the run")
}

func TestRunAloneEndsDepleted(t *testing.T) {
	pool := newTestPool(t, 1, time.Second)
	u := NewUnit(1, alphaSpec(), 3.0, time.Millisecond, pool, rand.New(rand.NewSource(1)), Deps{})

	u.Run()

	// With a free charger the unit alternates flight and charge until the
	// window runs out: 1.6667h flight, 0.6h charge, 0.7333h flight.
	assert.Equal(t, model.StateDepleted, u.State())
	assert.InDelta(t, 2.4, u.Stats.FlightHours, 1e-4)
	assert.InDelta(t, 0.6, u.Stats.ChargeHours, 1e-4)
	assert.Zero(t, u.Remaining)
}
