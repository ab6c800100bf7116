package fleet

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/evtolsim/core/charger"
	"github.com/kilianp07/evtolsim/core/model"
)

// Options configures a simulation run.
type Options struct {
	FleetSize   int
	WindowHours float64
	// ChargeScale is the real-time duration slept per simulated charging hour.
	ChargeScale time.Duration
	// Seed initialises the master random source. Zero means time-based.
	Seed int64
	Deps Deps
}

// Report is one unit's final statistics, handed to the reporter.
type Report struct {
	VehicleID  int         `json:"vehicle_id"`
	Company    string      `json:"company"`
	Stats      model.Stats `json:"stats"`
	FinalState string      `json:"final_state"`
}

// Orchestrator deploys the fleet, runs every unit to a terminal state and
// collects results.
type Orchestrator struct {
	RunID string

	opts  Options
	specs []model.VehicleSpec
	pool  *charger.Pool
	units []*Unit
	rng   *rand.Rand
}

// NewOrchestrator validates run parameters and prepares an orchestrator. The
// spec table is read-only; each unit receives its own copy of the drawn spec.
func NewOrchestrator(specs []model.VehicleSpec, pool *charger.Pool, opts Options) (*Orchestrator, error) {
	if opts.FleetSize <= 0 {
		return nil, fmt.Errorf("fleet: fleet size must be positive, got %d", opts.FleetSize)
	}
	if opts.WindowHours <= 0 {
		return nil, fmt.Errorf("fleet: simulation window must be positive, got %v", opts.WindowHours)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("fleet: spec table must not be empty")
	}
	if pool == nil {
		return nil, fmt.Errorf("fleet: charger pool is required")
	}
	for _, s := range specs {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("fleet: %w", err)
		}
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts.Deps.setDefaults()
	return &Orchestrator{
		RunID: uuid.NewString(),
		opts:  opts,
		specs: specs,
		pool:  pool,
		rng:   rand.New(rand.NewSource(seed)),
	}, nil
}

// Deploy constructs the fleet: ids 1..n, each spec drawn uniformly from the
// table, each unit with an independent random source derived from the master
// seed.
func (o *Orchestrator) Deploy() {
	o.units = make([]*Unit, 0, o.opts.FleetSize)
	for i := 1; i <= o.opts.FleetSize; i++ {
		spec := o.specs[o.rng.Intn(len(o.specs))]
		unitRng := rand.New(rand.NewSource(o.rng.Int63()))
		o.units = append(o.units, NewUnit(i, spec, o.opts.WindowHours, o.opts.ChargeScale, o.pool, unitRng, o.opts.Deps))
	}
	o.opts.Deps.Log.Infof("run %s: deployed %d vehicles, %d chargers", o.RunID, len(o.units), o.pool.Capacity())
}

// Run executes every unit's lifecycle concurrently and blocks until all reach
// a terminal state. There is no mid-run cancellation; a stalled unit is a
// normal outcome.
func (o *Orchestrator) Run() {
	if o.units == nil {
		o.Deploy()
	}
	var wg sync.WaitGroup
	wg.Add(len(o.units))
	for _, u := range o.units {
		go func(u *Unit) {
			defer wg.Done()
			u.Run()
		}(u)
	}
	wg.Wait()
	o.opts.Deps.Log.Infof("run %s: all vehicles terminal, free chargers %d/%d", o.RunID, o.pool.Free(), o.pool.Capacity())
}

// Results returns the finished units' statistics in vehicle-id order.
func (o *Orchestrator) Results() []Report {
	reports := make([]Report, 0, len(o.units))
	for _, u := range o.units {
		reports = append(reports, Report{
			VehicleID:  u.ID,
			Company:    u.Spec.Company,
			Stats:      u.Stats,
			FinalState: u.State().String(),
		})
	}
	return reports
}

// Units exposes the deployed units for inspection after Run.
func (o *Orchestrator) Units() []*Unit { return o.units }
