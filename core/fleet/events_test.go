package fleet

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evtolsim/core/model"
	"github.com/kilianp07/evtolsim/internal/eventbus"
)

func TestUnitPublishesStateTransitions(t *testing.T) {
	bus := eventbus.New[StateTransition]()
	ch := bus.SubscribeBuffered(64)

	pool := newTestPool(t, 1, time.Second)
	u := NewUnit(1, alphaSpec(), 3.0, time.Millisecond, pool, rand.New(rand.NewSource(1)), Deps{Bus: bus})
	u.Run()
	bus.Close()

	var states []model.State
	for ev := range ch {
		assert.Equal(t, 1, ev.VehicleID)
		states = append(states, ev.To)
	}
	// Flight, charge, final flight: the full lifecycle of an uncontended unit.
	require.Equal(t, []model.State{
		model.StateAwaitingCharge,
		model.StateCharging,
		model.StateFlying,
		model.StateDepleted,
	}, states)

	charging := 0
	for _, s := range states {
		if s == model.StateCharging {
			charging++
		}
	}
	assert.Equal(t, 1, charging)
}
