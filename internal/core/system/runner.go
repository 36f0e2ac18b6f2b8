package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/uniengine/simcore/internal/core/ecs"
	"github.com/uniengine/simcore/internal/core/event"
)

// TimeScaler supplies the multiplier applied to the fixed step. A nil
// TimeScaler means real time.
type TimeScaler func() float32

// Runner drives a World with a fixed timestep. Each step:
// swap and dispatch events, Flush, Update, FlushDestroyQueue, Render.
type Runner struct {
	world       *ecs.World
	bus         *event.Bus
	log         *zap.Logger
	step        time.Duration
	maxSubSteps int
	timeScale   TimeScaler

	accumulator time.Duration
	steps       uint64
	simTime     float64
}

func NewRunner(world *ecs.World, bus *event.Bus, step time.Duration, maxSubSteps int, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	if maxSubSteps < 1 {
		maxSubSteps = 1
	}
	return &Runner{
		world:       world,
		bus:         bus,
		log:         log,
		step:        step,
		maxSubSteps: maxSubSteps,
	}
}

func (r *Runner) SetTimeScale(fn TimeScaler) { r.timeScale = fn }

// Tick adds elapsed wall time and runs as many whole steps as fit, capped at
// maxSubSteps. Time beyond the cap is dropped so a stall does not snowball.
func (r *Runner) Tick(elapsed time.Duration) int {
	r.accumulator += elapsed
	n := 0
	for r.accumulator >= r.step && n < r.maxSubSteps {
		r.Step()
		r.accumulator -= r.step
		n++
	}
	if n == r.maxSubSteps && r.accumulator >= r.step {
		r.log.Debug("runner behind, dropping time",
			zap.Duration("dropped", r.accumulator),
			zap.Uint64("step", r.steps))
		r.accumulator = 0
	}
	return n
}

// Step runs exactly one fixed step.
func (r *Runner) Step() {
	if r.bus != nil {
		r.bus.SwapBuffers()
		r.bus.DispatchAll()
	}
	r.world.Flush()

	dt := float32(r.step.Seconds())
	if r.timeScale != nil {
		dt *= r.timeScale()
	}
	r.world.Update(dt)
	r.world.FlushDestroyQueue()
	r.world.Render()

	r.steps++
	r.simTime += float64(dt)
}

// Run executes n steps back to back.
func (r *Runner) Run(n int) {
	for i := 0; i < n; i++ {
		r.Step()
	}
}

func (r *Runner) Steps() uint64 { return r.steps }

// SimTime is the scaled simulated time in seconds.
func (r *Runner) SimTime() float64 { return r.simTime }
